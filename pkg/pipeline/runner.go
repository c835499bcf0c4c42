package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dxfview/pkg/cache"
	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/errors"
	"github.com/matzehuels/dxfview/pkg/httputil"
	dxio "github.com/matzehuels/dxfview/pkg/io"
	"github.com/matzehuels/dxfview/pkg/observability"
	"github.com/matzehuels/dxfview/pkg/render/fallback"
	"github.com/matzehuels/dxfview/pkg/render/surface"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner can serve concurrent runs with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Fetcher *httputil.Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] and a nil logger uses the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache: c,
		Keyer: keyer,
		Fetcher: httputil.NewFetcher(
			httputil.WithCache(c, cache.TTLHTTP),
			httputil.WithKeyer(keyer),
			httputil.WithLogger(logger),
		),
		Logger: logger,
	}
}

// Run loads source and renders it. A source that cannot be parsed yields
// the parse-error placeholder rather than an error; unreadable sources and
// invalid options are errors.
func (r *Runner) Run(ctx context.Context, source string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	src, err := r.Load(ctx, source, opts.Refresh)
	return r.afterLoad(ctx, source, src, err, time.Since(start), opts)
}

// RunBytes parses already-read source bytes and renders them. format may be
// empty to detect it from name and content.
func (r *Runner) RunBytes(ctx context.Context, name string, data []byte, format string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	src, err := r.ParseBytes(ctx, name, data, format, opts.Refresh)
	return r.afterLoad(ctx, name, src, err, time.Since(start), opts)
}

func (r *Runner) afterLoad(ctx context.Context, name string, src *Source, err error, took time.Duration, opts Options) (*Result, error) {
	if err != nil {
		if !errors.Is(err, errors.ErrCodeParseFailure) {
			return nil, err
		}
		opts.Logger.Warn("parse failed", "source", name, "error", err)
		res, ferr := r.ExecuteFallback(fallback.MsgParseError, opts)
		if ferr != nil {
			return nil, ferr
		}
		res.Err = err
		res.Stats.ParseTime = took
		return res, nil
	}

	res, err := r.Execute(ctx, src.Model, opts)
	if err != nil {
		return nil, err
	}
	res.Stats.ParseTime = took
	res.CacheInfo.FetchHit = src.FetchHit
	res.CacheInfo.ParseHit = src.ParseHit
	opts.Logger.Info("loaded drawing",
		"source", name,
		"format", src.Format,
		"entities", len(src.Model.Entities),
		"blocks", len(src.Model.Blocks),
		"duration", took)
	return res, nil
}

// Execute frames and renders a parsed model. Artifacts are cached by model
// hash and render options, except when rendering failed.
func (r *Runner) Execute(ctx context.Context, m *drawing.Model, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if m == nil {
		m = &drawing.Model{}
	}

	res := &Result{Rotation: opts.Rotation, Artifacts: make(map[string][]byte)}
	res.Stats.Blocks = len(m.Blocks)
	if data, err := dxio.Marshal(m); err == nil {
		res.ModelHash = cache.Hash(data)
	}

	frameStart := time.Now()
	fr := ComputeFrame(m, opts)
	res.Stats.FrameTime = time.Since(frameStart)
	res.Stats.Entities = len(fr.Entities)
	res.Bounds = fr.Bounds
	res.Fit = fr.Fit
	res.Skipped = fr.Skipped
	observability.Pipeline().OnBoundsComplete(ctx, len(fr.Entities), fr.Message == "", len(fr.Skipped), res.Stats.FrameTime)

	if !opts.Refresh && res.ModelHash != "" {
		if artifacts, ok := r.cachedArtifacts(ctx, res.ModelHash, opts); ok {
			res.Artifacts = artifacts
			res.Fallback = fr.Message != ""
			res.Message = fr.Message
			res.CacheInfo.RenderHit = true
			return res, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	rec, message, rerr := Draw(m, fr, opts)
	res.Fallback = message != ""
	res.Message = message
	res.Err = rerr

	artifacts, err := Encode(rec, fr, message, opts)
	res.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, message, res.Stats.RenderTime, firstErr(err, rerr))
	if err != nil {
		return nil, err
	}
	res.Artifacts = artifacts

	if rerr == nil && res.ModelHash != "" {
		r.storeArtifacts(ctx, res.ModelHash, artifacts, opts)
	}

	opts.Logger.Debug("rendered preview",
		"formats", opts.Formats,
		"fallback", message,
		"skipped", len(fr.Skipped),
		"duration", res.Stats.RenderTime)
	return res, nil
}

// ExecuteFallback renders only a placeholder in every requested format.
func (r *Runner) ExecuteFallback(message string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	rec := DrawFallback(message, opts)
	artifacts, err := Encode(rec, Frame{}, message, opts)
	if err != nil {
		return nil, err
	}
	return &Result{
		Rotation:  opts.Rotation,
		Fallback:  true,
		Message:   message,
		Artifacts: artifacts,
	}, nil
}

// Record frames and draws m without encoding, for interactive previews that
// replay the recording onto their own surface.
func (r *Runner) Record(m *drawing.Model, opts Options) (*surface.Recorder, Frame, string, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, Frame{}, "", err
	}
	fr := ComputeFrame(m, opts)
	rec, message, err := Draw(m, fr, opts)
	return rec, fr, message, err
}

func (r *Runner) cachedArtifacts(ctx context.Context, modelHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(modelHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		artifacts[format] = data
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return artifacts, true
}

func (r *Runner) storeArtifacts(ctx context.Context, modelHash string, artifacts map[string][]byte, opts Options) {
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(modelHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
