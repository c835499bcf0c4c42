package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dxfview/pkg/cache"
	"github.com/matzehuels/dxfview/pkg/errors"
	"github.com/matzehuels/dxfview/pkg/observability"
)

// DefaultMaxBytes caps the size of a fetched drawing.
const DefaultMaxBytes = 64 << 20

// DefaultTimeout bounds a single request attempt.
const DefaultTimeout = 30 * time.Second

const userAgent = "dxfview"

// Fetcher downloads drawings. The zero value is not usable; call [NewFetcher].
type Fetcher struct {
	client   *http.Client
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	backoff  cache.Backoff
	maxBytes int64
	logger   *log.Logger
}

// FetchOption configures a [Fetcher].
type FetchOption func(*Fetcher)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) FetchOption {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithCache stores successful responses in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) FetchOption {
	return func(f *Fetcher) {
		f.cache = c
		f.ttl = ttl
	}
}

// WithKeyer sets the keyer for cached responses.
func WithKeyer(k cache.Keyer) FetchOption {
	return func(f *Fetcher) {
		if k != nil {
			f.keyer = k
		}
	}
}

// WithBackoff overrides the retry schedule.
func WithBackoff(b cache.Backoff) FetchOption {
	return func(f *Fetcher) { f.backoff = b }
}

// WithMaxBytes caps the accepted body size.
func WithMaxBytes(n int64) FetchOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *log.Logger) FetchOption {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFetcher returns a fetcher with no cache and default retry settings.
func NewFetcher(opts ...FetchOption) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: DefaultTimeout},
		cache:    cache.NewNullCache(),
		keyer:    cache.NewDefaultKeyer(),
		backoff:  cache.DefaultBackoff,
		maxBytes: DefaultMaxBytes,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the body at url. The second result reports a cache hit.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, bool, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, false, err
	}

	key := f.keyer.HTTPKey("url", url)
	if data, ok, err := f.cache.Get(ctx, key); err != nil {
		f.logger.Warn("cache read failed", "url", url, "error", err)
	} else if ok {
		f.logger.Debug("fetch cache hit", "url", url)
		return data, true, nil
	}

	var body []byte
	err := f.backoff.Retry(ctx, func() error {
		var err error
		body, err = f.get(ctx, url)
		if err != nil && cache.IsRetryable(err) {
			f.logger.Debug("fetch failed, retrying", "url", url, "error", err)
		}
		return err
	})
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, false, err
		}
		return nil, false, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)
	}

	if err := f.cache.Set(ctx, key, body, f.ttl); err != nil {
		f.logger.Warn("cache write failed", "url", url, "error", err)
	}
	return body, false, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("User-Agent", userAgent)

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "fetch %s: %s", url, resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, cache.Retryable(fmt.Errorf("%w: %s", cache.ErrNetwork, resp.Status))
	case resp.StatusCode >= 400:
		return nil, errors.New(errors.ErrCodeNetwork, "fetch %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: read body: %v", cache.ErrNetwork, err))
	}
	if int64(len(body)) > f.maxBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "fetch %s: body exceeds %d bytes", url, f.maxBytes)
	}
	return body, nil
}
