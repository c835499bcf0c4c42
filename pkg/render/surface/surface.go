package surface

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// Surface is an immediate-mode 2D drawing target.
type Surface interface {
	Width() int
	Height() int

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)
	Scale(sx, sy float64)

	SetLineWidth(w float64)
	LineWidth() float64
	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	Arc(cx, cy, r, start, end float64, anticlockwise bool)
	ClosePath()
	Stroke()

	// FillRect fills a rectangle with the fill color. It does not touch the
	// current path.
	FillRect(x, y, w, h float64)
	// FillText draws text horizontally centered on x with its baseline at y.
	FillText(text string, x, y, size float64)
}

// ArcSweep returns the end angle for sweeping linearly from start so that
// the covered arc matches a canvas arc(start, end, anticlockwise).
func ArcSweep(start, end float64, anticlockwise bool) float64 {
	const tau = 2 * math.Pi
	if !anticlockwise {
		if end-start >= tau {
			return start + tau
		}
		return start + positiveMod(end-start, tau)
	}
	if start-end >= tau {
		return start - tau
	}
	return start - positiveMod(start-end, tau)
}

func positiveMod(v, m float64) float64 {
	v = math.Mod(v, m)
	if v < 0 {
		v += m
	}
	return v
}

// arcSegments is the number of quadratic segments per full arc sweep used by
// surfaces that flatten arcs themselves.
const arcSegments = 16

// arcPoints approximates an arc with quadratic curves the way gg does. It
// returns the start point and a list of (control, end) pairs.
func arcPoints(cx, cy, r, a1, a2 float64) (start [2]float64, quads [][4]float64) {
	start = [2]float64{cx + r*math.Cos(a1), cy + r*math.Sin(a1)}
	quads = make([][4]float64, 0, arcSegments)
	for i := range arcSegments {
		p1 := float64(i) / arcSegments
		p2 := float64(i+1) / arcSegments
		t1 := a1 + (a2-a1)*p1
		t2 := a1 + (a2-a1)*p2
		x2, y2 := cx+r*math.Cos(t2), cy+r*math.Sin(t2)
		// control point at the intersection of the two tangents
		mid := (t1 + t2) / 2
		k := r / math.Cos((t2-t1)/2)
		x1, y1 := cx+k*math.Cos(mid), cy+k*math.Sin(mid)
		quads = append(quads, [4]float64{x1, y1, x2, y2})
	}
	return start, quads
}

// matrixScale returns the linear scale factor of m, used to convert a user
// space line width into device pixels.
func matrixScale(m gg.Matrix) float64 {
	return math.Sqrt(math.Abs(m.XX*m.YY - m.XY*m.YX))
}

// Hex formats a color as #rrggbb.
func Hex(c color.Color) string {
	if c == nil {
		return "none"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// ParseHex parses #rgb or #rrggbb. Unparseable input yields black.
func ParseHex(s string) color.Color {
	var r, g, b uint8
	switch len(s) {
	case 4:
		if _, err := fmt.Sscanf(s, "#%1x%1x%1x", &r, &g, &b); err == nil {
			return color.RGBA{r * 17, g * 17, b * 17, 0xff}
		}
	case 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{r, g, b, 0xff}
		}
	}
	return color.Black
}
