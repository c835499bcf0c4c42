package bounds

import (
	"math"

	"github.com/matzehuels/dxfview/pkg/drawing"
)

// Bounds is an axis-aligned box in drawing units.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Default is substituted when a pass found no finite geometry.
var Default = Bounds{MinX: -100, MinY: -100, MaxX: 100, MaxY: 100}

// Empty returns an inverted box that any added point replaces.
func Empty() Bounds {
	return Bounds{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
}

// Add merges a point. Non-finite points are ignored.
func (b *Bounds) Add(x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	b.MinX = min(b.MinX, x)
	b.MinY = min(b.MinY, y)
	b.MaxX = max(b.MaxX, x)
	b.MaxY = max(b.MaxY, y)
}

// Finite reports whether all four edges are finite.
func (b Bounds) Finite() bool {
	return finite(b.MinX) && finite(b.MinY) && finite(b.MaxX) && finite(b.MaxY)
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of the box.
func (b Bounds) Center() drawing.Point {
	return drawing.Point{X: b.MinX + b.Width()/2, Y: b.MinY + b.Height()/2}
}

// Contains reports whether p lies inside or on the box.
func (b Bounds) Contains(p drawing.Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
