package sink

import (
	"bytes"

	"github.com/matzehuels/dxfview/pkg/render/surface"
)

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 90

// JPEGOption configures JPEG rendering.
type JPEGOption func(*jpegRenderer)

type jpegRenderer struct {
	quality int
	scale   float64
}

// WithQuality sets the JPEG quality (1-100).
func WithQuality(q int) JPEGOption {
	return func(r *jpegRenderer) {
		if q >= 1 && q <= 100 {
			r.quality = q
		}
	}
}

// WithJPEGScale sets the JPEG scale factor (default 1.0).
func WithJPEGScale(s float64) JPEGOption {
	return func(r *jpegRenderer) { r.scale = s }
}

// RenderJPEG replays rec on a raster canvas and encodes it as JPEG.
func RenderJPEG(rec *surface.Recorder, opts ...JPEGOption) ([]byte, error) {
	r := jpegRenderer{quality: DefaultJPEGQuality, scale: 1.0}
	for _, opt := range opts {
		opt(&r)
	}
	c := rasterize(rec, r.scale)

	var buf bytes.Buffer
	if err := c.EncodeJPEG(&buf, r.quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
