package sink

import (
	"github.com/matzehuels/dxfview/pkg/render/surface"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	embedFont bool
}

// WithEmbeddedFont embeds the text font in the SVG so fallback messages
// render identically everywhere.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// RenderSVG replays rec on an SVG surface.
func RenderSVG(rec *surface.Recorder, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var svgOpts []surface.SVGOption
	if r.embedFont {
		svgOpts = append(svgOpts, surface.WithEmbeddedFont())
	}
	s := surface.NewSVG(rec.Width(), rec.Height(), svgOpts...)
	rec.Replay(s)
	return s.Bytes()
}
