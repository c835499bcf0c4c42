// Package fit derives the uniform scale and centering offset that place a
// drawing's bounds on a raster.
//
// The larger drawing dimension is scaled to [FillRatio] of the smaller
// raster dimension and the bounds midpoint lands on the raster midpoint.
// A zero-sized drawing keeps scale 1.
package fit

import (
	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/render/bounds"
)

// FillRatio is the share of the smaller raster dimension the drawing may use.
const FillRatio = 0.9

// Transform maps drawing coordinates to raster coordinates.
type Transform struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// Fit computes the transform for b on a width×height raster.
func Fit(b bounds.Bounds, width, height float64) Transform {
	maxDim := max(b.Width(), b.Height())
	scale := 1.0
	if maxDim > 0 {
		scale = FillRatio * min(width, height) / maxDim
	}
	c := b.Center()
	return Transform{
		Scale:   scale,
		OffsetX: width/2 - c.X*scale,
		OffsetY: height/2 - c.Y*scale,
	}
}

// Apply maps a drawing point to raster coordinates, before any rotation or
// flip applied by the caller.
func (t Transform) Apply(p drawing.Point) drawing.Point {
	return drawing.Point{X: p.X*t.Scale + t.OffsetX, Y: p.Y*t.Scale + t.OffsetY}
}
