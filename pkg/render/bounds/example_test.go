package bounds_test

import (
	"fmt"

	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/render/bounds"
)

func ExampleCompute() {
	door := &drawing.Block{
		Name: "door",
		Entities: []drawing.Entity{
			&drawing.Line{Vertices: []drawing.Point{{X: 0, Y: 0}, {X: 0, Y: 2}}},
			&drawing.Arc{Center: drawing.Point{X: 0, Y: 0}, Radius: 1, EndAngle: 90},
		},
	}
	entities := []drawing.Entity{
		&drawing.Line{Vertices: []drawing.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}},
		&drawing.Insert{Block: "door", Position: &drawing.Point{X: 5, Y: 0}},
	}

	res := bounds.Compute(entities, drawing.Library{"door": door})
	fmt.Printf("%+v visible=%v\n", res.Bounds, res.HasVisible)
	// Output: {MinX:0 MinY:-1 MaxX:10 MaxY:2} visible=true
}
