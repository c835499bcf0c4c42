package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dxfview/pkg/cache"
	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/dxf"
	"github.com/matzehuels/dxfview/pkg/errors"
	dxio "github.com/matzehuels/dxfview/pkg/io"
	"github.com/matzehuels/dxfview/pkg/observability"
)

// DetectFormat picks the source format from the file name, falling back to
// the content: JSON drawings start with '{'.
func DetectFormat(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".dxf":
		return SourceDXF
	case ".json":
		return SourceJSON
	}
	if trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff"); len(trimmed) > 0 && trimmed[0] == '{' {
		return SourceJSON
	}
	return SourceDXF
}

// Parse decodes data in the given source format. An empty format is
// detected from the content.
func Parse(data []byte, format string, logger *log.Logger) (*drawing.Model, error) {
	if format == "" {
		format = DetectFormat("", data)
	}
	switch format {
	case SourceDXF:
		return dxf.Read(bytes.NewReader(data), dxf.WithLogger(logger))
	case SourceJSON:
		return dxio.ReadJSON(bytes.NewReader(data))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown source format %q (want dxf or json)", format)
	}
}

// Source is a loaded drawing.
type Source struct {
	Name   string
	Format string
	Hash   string // hash of the raw source bytes
	Model  *drawing.Model

	FetchHit bool
	ParseHit bool
}

// Load reads and parses a drawing from a file path or http(s) URL. Parsed
// models are cached by the hash of their source bytes.
func (r *Runner) Load(ctx context.Context, source string, refresh bool) (*Source, error) {
	data, fetchHit, err := r.read(ctx, source)
	if err != nil {
		return nil, err
	}
	src, err := r.ParseBytes(ctx, source, data, "", refresh)
	if src != nil {
		src.FetchHit = fetchHit
	}
	return src, err
}

// ParseBytes parses already-read source bytes. name is used for format
// detection and logging only.
func (r *Runner) ParseBytes(ctx context.Context, name string, data []byte, format string, refresh bool) (*Source, error) {
	if format == "" {
		format = DetectFormat(name, data)
	}
	src := &Source{Name: name, Format: format, Hash: cache.Hash(data)}
	key := r.Keyer.ModelKey(src.Hash, cache.ModelKeyOpts{Format: format})
	hooks := observability.Pipeline()

	if !refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if m, err := dxio.ReadJSON(bytes.NewReader(cached)); err == nil {
				observability.Cache().OnCacheHit(ctx, "model")
				src.Model = m
				src.ParseHit = true
				return src, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "model")
	}

	hooks.OnParseStart(ctx, name, format)
	start := time.Now()
	m, err := Parse(data, format, r.Logger)
	count := 0
	if m != nil {
		count = len(m.Entities)
	}
	hooks.OnParseComplete(ctx, name, count, time.Since(start), err)
	if err != nil {
		return src, err
	}
	src.Model = m

	if encoded, err := dxio.Marshal(m); err == nil {
		if err := r.Cache.Set(ctx, key, encoded, cache.TTLModel); err == nil {
			observability.Cache().OnCacheSet(ctx, "model", len(encoded))
		}
	}
	return src, nil
}

func (r *Runner) read(ctx context.Context, source string) ([]byte, bool, error) {
	if errors.IsURL(source) {
		return r.Fetcher.Fetch(ctx, source)
	}
	if err := errors.ValidatePath(source); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(source)
	if os.IsNotExist(err) {
		return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", source)
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", source)
	}
	return data, false, nil
}
