// Package httputil fetches remote drawings over HTTP.
//
// A [Fetcher] downloads a DXF or JSON drawing from an http(s) URL with
// automatic retry for transient failures:
//
//   - network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Retries use [cache.Backoff] (three attempts, one second doubling by
// default). Other 4xx responses fail immediately.
//
// Responses can be cached in any [cache.Cache] backend, keyed by
// [cache.Keyer.HTTPKey] with the "url" namespace:
//
//	f := httputil.NewFetcher(httputil.WithCache(c, cache.TTLHTTP))
//	data, err := f.Fetch(ctx, "https://example.com/plan.dxf")
//
// Bodies larger than [DefaultMaxBytes] are rejected.
package httputil
