// Package pipeline provides the preview pipeline shared by the CLI, the TUI
// and the HTTP server.
//
// # Architecture
//
// A preview runs in three stages:
//
//  1. Load: read DXF or JSON from a path or URL and parse it into a model
//  2. Frame: compute drawing bounds and fit them to the raster
//  3. Render: rasterize onto a recorded surface and encode each format
//
// When a stage cannot produce a drawing, the pipeline still produces
// artifacts: a placeholder with one of the messages from package fallback.
// Parse failures, empty drawings and render failures are reported through
// [Result.Fallback] rather than as errors.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Run(ctx, "plan.dxf", pipeline.Options{
//	    Formats:  []string{"png"},
//	    Rotation: 90,
//	})
//	if err != nil {
//	    return err // unreadable file, bad options
//	}
//	png := res.Artifacts["png"]
//
// The bulk rotation is owned by the caller; [Rotate] advances it the way
// the preview's rotate button does.
package pipeline

import (
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dxfview/pkg/cache"
	"github.com/matzehuels/dxfview/pkg/errors"
	"github.com/matzehuels/dxfview/pkg/render/bounds"
	"github.com/matzehuels/dxfview/pkg/render/fit"
	"github.com/matzehuels/dxfview/pkg/render/pose"
	"github.com/matzehuels/dxfview/pkg/render/sink"
	"github.com/matzehuels/dxfview/pkg/render/surface"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, TUI and Server
// =============================================================================

const (
	// DefaultSize is the default raster width and height in pixels.
	DefaultSize = 800

	// DefaultBackground fills the raster before drawing.
	DefaultBackground = "#ffffff"

	// DefaultStroke is the stroke color for every entity.
	DefaultStroke = "#000000"

	// RotationStep is the increment applied by [Rotate].
	RotationStep = 90.0
)

// DefaultFormat is the output format used when none is requested.
const DefaultFormat = sink.FormatPNG

// Source formats accepted by [Parse].
const (
	SourceDXF  = "dxf"
	SourceJSON = "json"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures the frame and render stages. It supports JSON
// serialization for server requests.
type Options struct {
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
	Rotation float64 `json:"rotation,omitempty"` // degrees, multiple of 90

	Formats           []string `json:"formats,omitempty"`
	Background        string   `json:"background,omitempty"`
	Stroke            string   `json:"stroke,omitempty"`
	IgnoreLineweights bool     `json:"ignore_lineweights,omitempty"`
	Scale             float64  `json:"scale,omitempty"`   // png/jpeg pixel density
	Quality           int      `json:"quality,omitempty"` // jpeg
	EmbedFont         bool     `json:"embed_font,omitempty"`

	// Isolate skips failing entities instead of replacing the whole preview
	// with the render-error placeholder.
	Isolate  bool `json:"isolate,omitempty"`
	MaxDepth int  `json:"max_depth,omitempty"`
	Refresh  bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Bounds is the drawing extent in drawing units.
	Bounds bounds.Bounds

	// Fit maps drawing units onto the raster. Zero when Fallback is set
	// before rendering.
	Fit fit.Transform

	// Rotation is the normalized bulk rotation that was applied.
	Rotation float64

	// Fallback reports that the artifacts show a placeholder; Message is
	// the placeholder text.
	Fallback bool
	Message  string

	// Err is the parse or render failure behind a fallback, if any.
	Err error

	// Skipped holds the per-entity errors collected while computing bounds.
	Skipped []error

	// ModelHash identifies the model for artifact caching.
	ModelHash string

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Entities   int // flattened entity count
	Blocks     int
	ParseTime  time.Duration
	FrameTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	FetchHit  bool // remote source came from cache
	ParseHit  bool // parsed model came from cache
	RenderHit bool // every artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := sink.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateColor checks a "#rgb" or "#rrggbb" color.
func ValidateColor(hex string) error {
	if _, ok := parseColor(hex); !ok {
		return errors.New(errors.ErrCodeInvalidInput, "invalid color %q (want #rgb or #rrggbb)", hex)
	}
	return nil
}

func parseColor(hex string) (color.Color, bool) {
	if len(hex) != 4 && len(hex) != 7 || hex[0] != '#' {
		return nil, false
	}
	for _, c := range hex[1:] {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return nil, false
		}
	}
	return surface.ParseHex(hex), true
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width == 0 {
		o.Width = DefaultSize
	}
	if o.Height == 0 {
		o.Height = o.Width
	}
	if err := errors.ValidateRasterSize(o.Width); err != nil {
		return err
	}
	if err := errors.ValidateRasterSize(o.Height); err != nil {
		return err
	}
	if err := errors.ValidateRotation(o.Rotation); err != nil {
		return err
	}
	o.Rotation = pose.NormalizeDegrees(o.Rotation)

	formats := make([]string, 0, max(len(o.Formats), 1))
	for _, f := range o.Formats {
		formats = append(formats, sink.NormalizeFormat(f))
	}
	if len(formats) == 0 {
		formats = append(formats, DefaultFormat)
	}
	o.Formats = formats
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.Stroke == "" {
		o.Stroke = DefaultStroke
	}
	if err := ValidateColor(o.Background); err != nil {
		return err
	}
	if err := ValidateColor(o.Stroke); err != nil {
		return err
	}
	if o.Scale < 0 || o.Quality < 0 || o.Quality > 100 || o.MaxDepth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale, quality and max_depth must be non-negative (quality at most 100)")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Width:       o.Width,
		Height:      o.Height,
		Rotation:    o.Rotation,
		Lineweights: !o.IgnoreLineweights,
		Scale:       o.Scale,
		Quality:     o.Quality,
		Background:  o.Background,
		Stroke:      o.Stroke,
		EmbedFont:   o.EmbedFont,
		Isolate:     o.Isolate,
		MaxDepth:    o.MaxDepth,
	}
}

// Rotate advances a bulk rotation by step degrees, wrapping into [0, 360).
func Rotate(current, step float64) float64 {
	return pose.NormalizeDegrees(current + step)
}
