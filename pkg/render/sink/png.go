package sink

import (
	"bytes"
	"math"

	"github.com/matzehuels/dxfview/pkg/render/surface"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 1.0).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG replays rec on a raster canvas and encodes it as PNG.
func RenderPNG(rec *surface.Recorder, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1.0}
	for _, opt := range opts {
		opt(&r)
	}
	c := rasterize(rec, r.scale)

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rasterize replays rec on a canvas enlarged by scale.
func rasterize(rec *surface.Recorder, scale float64) *surface.Canvas {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Round(float64(rec.Width()) * scale))
	h := int(math.Round(float64(rec.Height()) * scale))
	c := surface.NewCanvas(w, h)
	c.Scale(scale, scale)
	rec.Replay(c)
	return c
}
