package fit

import (
	"math"
	"testing"

	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/render/bounds"
)

const eps = 1e-9

func TestFit(t *testing.T) {
	tests := []struct {
		name string
		b    bounds.Bounds
		w, h float64
		want Transform
	}{
		{
			name: "horizontal line",
			b:    bounds.Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 0},
			w:    100, h: 100,
			want: Transform{Scale: 9, OffsetX: 5, OffsetY: 50},
		},
		{
			name: "default box",
			b:    bounds.Default,
			w:    800, h: 800,
			want: Transform{Scale: 3.6, OffsetX: 400, OffsetY: 400},
		},
		{
			name: "point",
			b:    bounds.Bounds{MinX: 3, MinY: 4, MaxX: 3, MaxY: 4},
			w:    100, h: 50,
			want: Transform{Scale: 1, OffsetX: 47, OffsetY: 21},
		},
		{
			name: "non-square raster",
			b:    bounds.Bounds{MinX: -5, MinY: -5, MaxX: 5, MaxY: 5},
			w:    200, h: 100,
			want: Transform{Scale: 9, OffsetX: 100, OffsetY: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(tt.b, tt.w, tt.h)
			if math.Abs(got.Scale-tt.want.Scale) > eps ||
				math.Abs(got.OffsetX-tt.want.OffsetX) > eps ||
				math.Abs(got.OffsetY-tt.want.OffsetY) > eps {
				t.Errorf("Fit() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFitProperties(t *testing.T) {
	boxes := []bounds.Bounds{
		{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1},
		{MinX: -1000, MinY: 3, MaxX: 250, MaxY: 9},
		{MinX: 1e-3, MinY: -2e-3, MaxX: 4e-3, MaxY: 7e-3},
		{MinX: -7, MinY: -40, MaxX: -6, MaxY: 120},
	}
	sizes := [][2]float64{{100, 100}, {640, 480}, {300, 900}}

	for _, b := range boxes {
		for _, sz := range sizes {
			w, h := sz[0], sz[1]
			tr := Fit(b, w, h)

			c := tr.Apply(b.Center())
			if math.Abs(c.X-w/2) > 1e-6 || math.Abs(c.Y-h/2) > 1e-6 {
				t.Errorf("Fit(%+v, %v, %v): center maps to %v, want (%v, %v)", b, w, h, c, w/2, h/2)
			}

			extent := max(b.Width(), b.Height()) * tr.Scale
			if extent > FillRatio*min(w, h)+1e-6 {
				t.Errorf("Fit(%+v, %v, %v): extent %v exceeds %v", b, w, h, extent, FillRatio*min(w, h))
			}
		}
	}
}

func TestApply(t *testing.T) {
	tr := Transform{Scale: 2, OffsetX: 10, OffsetY: -10}
	got := tr.Apply(drawing.Point{X: 1, Y: 2})
	if got != (drawing.Point{X: 12, Y: -6}) {
		t.Errorf("Apply = %v, want {12 -6}", got)
	}
}
