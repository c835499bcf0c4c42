package pose

import (
	"math"
	"testing"

	"github.com/matzehuels/dxfview/pkg/drawing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		pose Pose
		in   drawing.Point
		want drawing.Point
	}{
		{"identity", Identity, drawing.Point{X: 3, Y: 4}, drawing.Point{X: 3, Y: 4}},
		{"translate", Pose{X: 10, Y: -5, Scale: 1}, drawing.Point{X: 1, Y: 1}, drawing.Point{X: 11, Y: -4}},
		{"scale", Pose{Scale: 2}, drawing.Point{X: 1, Y: 3}, drawing.Point{X: 2, Y: 6}},
		{"rotate quarter turn value", Pose{Rotation: math.Pi / 2, Scale: 1}, drawing.Point{X: 1, Y: 0}, drawing.Point{X: 0, Y: 1}},
		{"degrees used unconverted", Pose{Rotation: 90, Scale: 1}, drawing.Point{X: 1, Y: 0}, drawing.Point{X: math.Cos(90), Y: math.Sin(90)}},
		{"scale rotate translate", Pose{X: 1, Y: 1, Rotation: math.Pi, Scale: 2}, drawing.Point{X: 1, Y: 0}, drawing.Point{X: -1, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.pose.Apply(tt.in)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestComposeAdditive(t *testing.T) {
	parent := Pose{X: 10, Y: 10, Rotation: 90, Scale: 2}
	ins := &drawing.Insert{
		Block:    "B",
		Position: &drawing.Point{X: 5, Y: 0},
		Rotation: 30,
		Scale:    &drawing.Scale{X: 0, Y: 3},
	}

	got := parent.ComposeAdditive(ins)

	// Offset is added without applying the parent rotation or scale.
	if got.X != 15 || got.Y != 10 {
		t.Errorf("translation = (%v, %v), want (15, 10)", got.X, got.Y)
	}
	if got.Rotation != 120 {
		t.Errorf("Rotation = %v, want 120", got.Rotation)
	}
	if got.Scale != 6 {
		t.Errorf("Scale = %v, want 6", got.Scale)
	}
}

func TestComposeAdditiveDefaults(t *testing.T) {
	got := Identity.ComposeAdditive(&drawing.Insert{Block: "B"})
	if got != Identity {
		t.Errorf("ComposeAdditive(bare insert) = %+v, want %+v", got, Identity)
	}
}

func TestNested(t *testing.T) {
	parent := Pose{Scale: 2}
	ins := &drawing.Insert{
		Block:    "B",
		Position: &drawing.Point{X: 3, Y: 4},
		Rotation: 90,
		Scale:    &drawing.Scale{X: 1, Y: 5},
	}

	frame, child := parent.Nested(ins)

	if frame.TranslateX != 6 || frame.TranslateY != 8 {
		t.Errorf("frame translation = (%v, %v), want (6, 8)", frame.TranslateX, frame.TranslateY)
	}
	if !near(frame.Rotation, math.Pi/2) {
		t.Errorf("frame rotation = %v, want %v", frame.Rotation, math.Pi/2)
	}
	if child != (Pose{Scale: 10}) {
		t.Errorf("child = %+v, want {Scale: 10}", child)
	}
}

func TestStrokeWidth(t *testing.T) {
	tests := []struct {
		name       string
		scale      float64
		lineweight float64
		base       float64
		want       float64
	}{
		{"no lineweight top level", 1, 0, 0.5, 0.5},
		{"no lineweight nested", 4, 0, 0.5, 0.125},
		{"lineweight top level", 1, 50, 0.5, 0.5},
		{"lineweight nested", 3, 100, 0.5, 3},
		{"negative lineweight", 2, -3, 1, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pose{Scale: tt.scale}
			if got := p.StrokeWidth(tt.lineweight, tt.base); !near(got, tt.want) {
				t.Errorf("StrokeWidth(%v, %v) = %v, want %v", tt.lineweight, tt.base, got, tt.want)
			}
		})
	}
}

func TestStrokeWidthNestedChain(t *testing.T) {
	p := Identity
	factors := []float64{2, 3, 0.5, 4}
	for _, f := range factors {
		_, p = p.Nested(&drawing.Insert{Block: "B", Scale: &drawing.Scale{X: f, Y: f}})
	}
	if got := p.StrokeWidth(100, 1); !near(got, 12) {
		t.Errorf("StrokeWidth after chain = %v, want 12", got)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0}, {90, 90}, {360, 0}, {450, 90}, {-90, 270}, {-720, 0},
	}
	for _, tt := range tests {
		if got := NormalizeDegrees(tt.in); got != tt.want {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
