package surface

import (
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/dxfview/pkg/fonts"
)

// Canvas is a raster [Surface] backed by a gg context.
//
// gg strokes with a device-space width, so Canvas keeps the user-space width
// itself and converts it with the current transform at stroke time.
type Canvas struct {
	dc        *gg.Context
	lineWidth float64
	saved     []float64
}

// NewCanvas returns a transparent width×height canvas.
func NewCanvas(width, height int) *Canvas {
	dc := gg.NewContext(width, height)
	dc.SetLineCap(gg.LineCapButt)
	return &Canvas{dc: dc, lineWidth: 1}
}

func (c *Canvas) Width() int  { return c.dc.Width() }
func (c *Canvas) Height() int { return c.dc.Height() }

func (c *Canvas) Save() {
	c.dc.Push()
	c.saved = append(c.saved, c.lineWidth)
}

// Restore pops the last saved state. Unbalanced calls are ignored.
func (c *Canvas) Restore() {
	if len(c.saved) == 0 {
		return
	}
	c.dc.Pop()
	c.lineWidth = c.saved[len(c.saved)-1]
	c.saved = c.saved[:len(c.saved)-1]
}

func (c *Canvas) Translate(x, y float64) { c.dc.Translate(x, y) }
func (c *Canvas) Rotate(angle float64)   { c.dc.Rotate(angle) }
func (c *Canvas) Scale(sx, sy float64)   { c.dc.Scale(sx, sy) }
func (c *Canvas) SetLineWidth(w float64) { c.lineWidth = w }
func (c *Canvas) LineWidth() float64     { return c.lineWidth }
func (c *Canvas) BeginPath()             { c.dc.ClearPath() }
func (c *Canvas) MoveTo(x, y float64)    { c.dc.MoveTo(x, y) }
func (c *Canvas) LineTo(x, y float64)    { c.dc.LineTo(x, y) }
func (c *Canvas) ClosePath()             { c.dc.ClosePath() }
func (c *Canvas) QuadraticTo(cx, cy, x, y float64) {
	c.dc.QuadraticTo(cx, cy, x, y)
}

func (c *Canvas) SetStrokeColor(col color.Color) {
	c.dc.SetStrokeStyle(gg.NewSolidPattern(col))
}

func (c *Canvas) SetFillColor(col color.Color) {
	c.dc.SetFillStyle(gg.NewSolidPattern(col))
}

func (c *Canvas) Arc(cx, cy, r, start, end float64, anticlockwise bool) {
	c.dc.DrawArc(cx, cy, r, start, ArcSweep(start, end, anticlockwise))
}

// Stroke strokes the current path and keeps it.
func (c *Canvas) Stroke() {
	c.dc.SetLineWidth(c.lineWidth * c.deviceScale())
	c.dc.StrokePreserve()
}

// FillRect fills a rectangle in user space.
func (c *Canvas) FillRect(x, y, w, h float64) {
	c.dc.ClearPath()
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

// FillText draws text with the fill color. If the font cannot be loaded the
// call draws nothing.
func (c *Canvas) FillText(text string, x, y, size float64) {
	face, err := fonts.Face(size)
	if err != nil {
		return
	}
	c.dc.SetFontFace(face)
	c.dc.DrawStringAnchored(text, x, y, 0.5, 0)
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

// EncodeJPEG writes the canvas as JPEG. Transparent pixels come out black,
// so callers fill a background first.
func (c *Canvas) EncodeJPEG(w io.Writer, quality int) error {
	return jpeg.Encode(w, c.dc.Image(), &jpeg.Options{Quality: quality})
}

// deviceScale derives the linear scale of the current transform from how it
// maps the unit vectors.
func (c *Canvas) deviceScale() float64 {
	ox, oy := c.dc.TransformPoint(0, 0)
	xx, xy := c.dc.TransformPoint(1, 0)
	yx, yy := c.dc.TransformPoint(0, 1)
	return math.Sqrt(math.Abs((xx-ox)*(yy-oy) - (xy-oy)*(yx-ox)))
}
