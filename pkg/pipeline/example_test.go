package pipeline_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/dxfview/pkg/pipeline"
)

func ExampleRunner_Run() {
	runner := pipeline.NewRunner(nil, nil, nil)
	res, err := runner.Run(context.Background(), "../../examples/drawings/floorplan.json", pipeline.Options{
		Width:    400,
		Formats:  []string{"svg"},
		Rotation: 90,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Fallback:", res.Fallback)
	fmt.Println("Entities:", res.Stats.Entities)
	fmt.Println("Blocks:", res.Stats.Blocks)
	fmt.Println("Rotation:", res.Rotation)
	fmt.Println("Has SVG:", len(res.Artifacts["svg"]) > 0)
	// Output:
	// Fallback: false
	// Entities: 13
	// Blocks: 2
	// Rotation: 90
	// Has SVG: true
}

func ExampleRotate() {
	r := 0.0
	for range 5 {
		r = pipeline.Rotate(r, pipeline.RotationStep)
		fmt.Print(r, " ")
	}
	fmt.Println()
	// Output:
	// 90 180 270 0 90
}
