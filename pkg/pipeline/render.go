package pipeline

import (
	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/errors"
	"github.com/matzehuels/dxfview/pkg/render/fallback"
	"github.com/matzehuels/dxfview/pkg/render/nodelink"
	"github.com/matzehuels/dxfview/pkg/render/raster"
	"github.com/matzehuels/dxfview/pkg/render/sink"
	"github.com/matzehuels/dxfview/pkg/render/surface"
)

// =============================================================================
// Render Stage
// =============================================================================

// Draw records the preview of a framed model. When fr carries a placeholder
// message, or the rasterizer fails, the returned recording holds only the
// placeholder and message says which one; err is the rasterizer failure.
func Draw(m *drawing.Model, fr Frame, opts Options) (rec *surface.Recorder, message string, err error) {
	rec = surface.NewRecorder(opts.Width, opts.Height)
	if fr.Message != "" {
		fallback.Draw(rec, fr.Message)
		return rec, fr.Message, nil
	}

	var blocks drawing.Library
	if m != nil {
		blocks = m.Blocks
	}
	prepare(rec, opts)
	if err := raster.Draw(rec, fr.Entities, blocks, fr.Fit, opts.Rotation, rasterOptions(opts)...); err != nil {
		rec = surface.NewRecorder(opts.Width, opts.Height)
		fallback.Draw(rec, fallback.MsgRenderError)
		return rec, fallback.MsgRenderError, err
	}
	return rec, "", nil
}

// DrawFallback records a placeholder alone.
func DrawFallback(message string, opts Options) *surface.Recorder {
	rec := surface.NewRecorder(opts.Width, opts.Height)
	fallback.Draw(rec, message)
	return rec
}

// prepare clears the surface to the background and sets the stroke style.
func prepare(s surface.Surface, opts Options) {
	bg, _ := parseColor(opts.Background)
	fg, _ := parseColor(opts.Stroke)
	s.SetFillColor(bg)
	s.FillRect(0, 0, float64(s.Width()), float64(s.Height()))
	s.SetStrokeColor(fg)
	s.SetLineWidth(1)
}

func rasterOptions(opts Options) []raster.Option {
	ro := []raster.Option{raster.WithLogger(opts.Logger)}
	if opts.MaxDepth > 0 {
		ro = append(ro, raster.WithMaxDepth(opts.MaxDepth))
	}
	if opts.Isolate {
		ro = append(ro, raster.WithIsolation())
	}
	if opts.IgnoreLineweights {
		ro = append(ro, raster.WithoutLineweights())
	}
	return ro
}

// Encode renders rec in every requested format.
func Encode(rec *surface.Recorder, fr Frame, message string, opts Options) (map[string][]byte, error) {
	so := sinkOptions(fr, message, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := sink.Render(format, rec, so)
		if err != nil {
			if errors.GetCode(err) == "" {
				err = errors.Wrap(errors.ErrCodeRenderFailure, err, "encode %s", format)
			}
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func sinkOptions(fr Frame, message string, opts Options) sink.Options {
	var so sink.Options
	if opts.Scale > 0 {
		so.PNG = append(so.PNG, sink.WithScale(opts.Scale))
		so.JPEG = append(so.JPEG, sink.WithJPEGScale(opts.Scale))
	}
	if opts.Quality > 0 {
		so.JPEG = append(so.JPEG, sink.WithQuality(opts.Quality))
	}
	if opts.EmbedFont {
		so.SVG = append(so.SVG, sink.WithEmbeddedFont())
	}
	so.JSON = append(so.JSON,
		sink.WithJSONBounds(fr.Bounds),
		sink.WithJSONRotation(opts.Rotation),
	)
	if message == "" {
		so.JSON = append(so.JSON, sink.WithJSONFit(fr.Fit))
	} else {
		so.JSON = append(so.JSON, sink.WithJSONFallback(message))
	}
	return so
}

// =============================================================================
// Block Graph
// =============================================================================

// Block graph output formats.
const (
	GraphFormatDOT = "dot"
	GraphFormatSVG = "svg"
	GraphFormatPNG = "png"
	GraphFormatPDF = "pdf"
)

// RenderBlockGraph draws the block reference graph of m.
func RenderBlockGraph(m *drawing.Model, format string, detailed bool) ([]byte, error) {
	dot := nodelink.ToDOT(m, nodelink.Options{Detailed: detailed})
	var (
		data []byte
		err  error
	)
	switch format {
	case GraphFormatDOT:
		return []byte(dot), nil
	case GraphFormatSVG:
		data, err = nodelink.RenderSVG(dot)
	case GraphFormatPNG:
		data, err = nodelink.RenderPNG(dot, 2.0)
	case GraphFormatPDF:
		data, err = nodelink.RenderPDF(dot)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid graph format: %q (must be one of: dot, svg, png, pdf)", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailure, err, "render block graph as %s", format)
	}
	return data, nil
}
