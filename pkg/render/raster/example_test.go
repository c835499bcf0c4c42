package raster_test

import (
	"fmt"

	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/render/bounds"
	"github.com/matzehuels/dxfview/pkg/render/fit"
	"github.com/matzehuels/dxfview/pkg/render/raster"
	"github.com/matzehuels/dxfview/pkg/render/surface"
)

func ExampleDraw() {
	entities := []drawing.Entity{
		&drawing.Line{Vertices: []drawing.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}},
	}

	b := bounds.Compute(entities, nil)
	t := fit.Fit(b.Bounds, 100, 100)

	rec := surface.NewRecorder(100, 100)
	if err := raster.Draw(rec, entities, nil, t, 0); err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, c := range rec.Commands() {
		if c.Op == surface.OpMoveTo || c.Op == surface.OpLineTo {
			fmt.Printf("%s %.0f,%.0f\n", c.Op, c.Device[0], c.Device[1])
		}
	}
	// Output:
	// move_to 5,50
	// line_to 95,50
}
