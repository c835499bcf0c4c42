package raster

import (
	"math"
	"testing"

	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/errors"
	"github.com/matzehuels/dxfview/pkg/render/bounds"
	"github.com/matzehuels/dxfview/pkg/render/fit"
	"github.com/matzehuels/dxfview/pkg/render/surface"
)

const eps = 1e-6

func pt(x, y float64) drawing.Point { return drawing.Point{X: x, Y: y} }

func line(x1, y1, x2, y2 float64) *drawing.Line {
	return &drawing.Line{Vertices: []drawing.Point{pt(x1, y1), pt(x2, y2)}}
}

func ops(r *surface.Recorder, op surface.Op) []surface.Command {
	var out []surface.Command
	for _, c := range r.Commands() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func render(t *testing.T, entities []drawing.Entity, blocks drawing.Library, rotation float64, opts ...Option) *surface.Recorder {
	t.Helper()
	rec := surface.NewRecorder(100, 100)
	tr := fit.Fit(bounds.Compute(entities, blocks).Bounds, 100, 100)
	if err := Draw(rec, entities, blocks, tr, rotation, opts...); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if rec.Depth() != 0 {
		t.Errorf("unbalanced surface stack: depth %d", rec.Depth())
	}
	return rec
}

func assertDevice(t *testing.T, c surface.Command, want ...float64) {
	t.Helper()
	if len(c.Device) < len(want) {
		t.Fatalf("%s device = %v, want %v", c.Op, c.Device, want)
	}
	for i, w := range want {
		if math.Abs(c.Device[i]-w) > eps {
			t.Errorf("%s device = %v, want %v", c.Op, c.Device, want)
			return
		}
	}
}

func TestDrawHorizontalLine(t *testing.T) {
	rec := render(t, []drawing.Entity{line(0, 0, 10, 0)}, nil, 0)

	moves, lines := ops(rec, surface.OpMoveTo), ops(rec, surface.OpLineTo)
	if len(moves) != 1 || len(lines) != 1 {
		t.Fatalf("got %d moves and %d lines, want 1 each", len(moves), len(lines))
	}
	assertDevice(t, moves[0], 5, 50)
	assertDevice(t, lines[0], 95, 50)

	strokes := ops(rec, surface.OpStroke)
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	assertDevice(t, strokes[0], 1)
}

func TestDrawRotation(t *testing.T) {
	entities := []drawing.Entity{line(0, 0, 10, 0)}

	tests := []struct {
		rotation float64
		from, to [2]float64
	}{
		{0, [2]float64{5, 50}, [2]float64{95, 50}},
		{90, [2]float64{50, 95}, [2]float64{50, 5}},
		{180, [2]float64{95, 50}, [2]float64{5, 50}},
		{360, [2]float64{5, 50}, [2]float64{95, 50}},
		{450, [2]float64{50, 95}, [2]float64{50, 5}},
		{-90, [2]float64{50, 5}, [2]float64{50, 95}},
	}

	for _, tt := range tests {
		rec := render(t, entities, nil, tt.rotation)
		assertDevice(t, ops(rec, surface.OpMoveTo)[0], tt.from[0], tt.from[1])
		assertDevice(t, ops(rec, surface.OpLineTo)[0], tt.to[0], tt.to[1])
	}
}

func TestDrawYFlip(t *testing.T) {
	rec := render(t, []drawing.Entity{line(0, 0, 0, 10)}, nil, 0)
	// Larger drawing Y maps to smaller raster Y.
	assertDevice(t, ops(rec, surface.OpMoveTo)[0], 50, 95)
	assertDevice(t, ops(rec, surface.OpLineTo)[0], 50, 5)
}

func TestDrawNestedStrokeWidth(t *testing.T) {
	blocks := drawing.Library{
		"leaf": {Name: "leaf", Entities: []drawing.Entity{
			&drawing.Line{Common: drawing.Common{Lineweight: 50}, Vertices: []drawing.Point{pt(0, 0), pt(1, 0)}},
		}},
		"mid": {Name: "mid", Entities: []drawing.Entity{
			&drawing.Insert{Block: "leaf", Scale: &drawing.Scale{X: 3, Y: 3}},
		}},
	}
	entities := []drawing.Entity{
		&drawing.Line{Common: drawing.Common{Lineweight: 50}, Vertices: []drawing.Point{pt(0, 0), pt(1, 0)}},
		&drawing.Insert{Block: "mid", Scale: &drawing.Scale{X: 2, Y: 1}},
	}
	rec := surface.NewRecorder(100, 100)
	tr := fit.Transform{Scale: 1, OffsetX: 0, OffsetY: 0}
	if err := Draw(rec, entities, blocks, tr, 0); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	strokes := ops(rec, surface.OpStroke)
	if len(strokes) != 2 {
		t.Fatalf("got %d strokes, want 2", len(strokes))
	}
	top, nested := strokes[0].Device[0], strokes[1].Device[0]
	if math.Abs(nested/top-6) > eps {
		t.Errorf("nested/top stroke ratio = %v, want 6", nested/top)
	}
}

func TestDrawBaseWidthCompensated(t *testing.T) {
	blocks := drawing.Library{
		"b": {Name: "b", Entities: []drawing.Entity{line(0, 0, 1, 0)}},
	}
	entities := []drawing.Entity{&drawing.Insert{Block: "b", Scale: &drawing.Scale{X: 4, Y: 4}}}
	rec := surface.NewRecorder(100, 100)
	if err := Draw(rec, entities, blocks, fit.Transform{Scale: 2}, 0); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	// Scale lives in the child pose, so the line is 4 units long in the
	// frame but the stroke stays 1/4 of a pixel.
	lines := ops(rec, surface.OpLineTo)
	if got := lines[0].Args[0]; got != 4 {
		t.Errorf("line end x = %v, want 4", got)
	}
	assertDevice(t, ops(rec, surface.OpStroke)[0], 0.25)
}

func TestDrawInsertFrame(t *testing.T) {
	blocks := drawing.Library{
		"b": {Name: "b", Entities: []drawing.Entity{line(0, 0, 1, 0)}},
	}
	entities := []drawing.Entity{&drawing.Insert{
		Block:    "b",
		Position: &drawing.Point{X: 10, Y: 0},
		Rotation: 90,
	}}
	rec := surface.NewRecorder(100, 100)
	if err := Draw(rec, entities, blocks, fit.Transform{Scale: 1}, 0); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	translates := ops(rec, surface.OpTranslate)
	// outer center, outer back, fit offset, instance frame
	if len(translates) != 4 {
		t.Fatalf("got %d translates, want 4", len(translates))
	}
	if got := translates[3].Args; got[0] != 10 || got[1] != 0 {
		t.Errorf("instance translate = %v, want [10 0]", got)
	}
	rotates := ops(rec, surface.OpRotate)
	if got := rotates[len(rotates)-1].Args[0]; math.Abs(got-math.Pi/2) > eps {
		t.Errorf("instance rotate = %v, want %v", got, math.Pi/2)
	}
}

func TestDrawInsertWithoutPosition(t *testing.T) {
	blocks := drawing.Library{
		"b": {Name: "b", Entities: []drawing.Entity{line(0, 0, 1, 0)}},
	}
	rec := surface.NewRecorder(100, 100)
	if err := Draw(rec, []drawing.Entity{&drawing.Insert{Block: "b"}}, blocks, fit.Transform{Scale: 1}, 0); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if n := rec.Count(surface.OpStroke); n != 1 {
		t.Errorf("got %d strokes, want 1", n)
	}
	translates := ops(rec, surface.OpTranslate)
	if got := translates[len(translates)-1].Args; got[0] != 0 || got[1] != 0 {
		t.Errorf("instance translate = %v, want origin", got)
	}
}

func TestDrawUnresolvedInsert(t *testing.T) {
	blocks := drawing.Library{
		drawing.DefaultBlockName: {Name: drawing.DefaultBlockName, Entities: []drawing.Entity{line(0, 0, 1, 1)}},
	}
	entities := []drawing.Entity{&drawing.Insert{Block: "missing", Position: &drawing.Point{X: 3, Y: 4}}}

	rec := render(t, entities, blocks, 0)
	if n := rec.Count(surface.OpStroke); n != 0 {
		t.Errorf("got %d strokes for unresolved insert, want 0", n)
	}
}

func TestDrawShapes(t *testing.T) {
	tr := fit.Transform{Scale: 1}

	t.Run("arc is negated and anticlockwise", func(t *testing.T) {
		rec := surface.NewRecorder(100, 100)
		arc := &drawing.Arc{Center: pt(1, 2), Radius: 3, StartAngle: 0, EndAngle: 90}
		if err := Draw(rec, []drawing.Entity{arc}, nil, tr, 0); err != nil {
			t.Fatal(err)
		}
		got := ops(rec, surface.OpArc)[0].Args
		want := []float64{1, 2, 3, 0, -math.Pi / 2, 1}
		for i := range want {
			if math.Abs(got[i]-want[i]) > eps {
				t.Fatalf("arc args = %v, want %v", got, want)
			}
		}
	})

	t.Run("circle is a full arc", func(t *testing.T) {
		rec := surface.NewRecorder(100, 100)
		if err := Draw(rec, []drawing.Entity{&drawing.Circle{Center: pt(0, 0), Radius: 2}}, nil, tr, 0); err != nil {
			t.Fatal(err)
		}
		got := ops(rec, surface.OpArc)[0].Args
		if got[3] != 0 || got[4] != 2*math.Pi || got[5] != 0 {
			t.Errorf("circle arc args = %v", got)
		}
	})

	t.Run("closed polyline", func(t *testing.T) {
		rec := surface.NewRecorder(100, 100)
		pl := &drawing.Polyline{Vertices: []drawing.Point{pt(0, 0), pt(1, 0), pt(1, 1)}, Closed: true}
		if err := Draw(rec, []drawing.Entity{pl}, nil, tr, 0); err != nil {
			t.Fatal(err)
		}
		if rec.Count(surface.OpMoveTo) != 1 || rec.Count(surface.OpLineTo) != 2 || rec.Count(surface.OpClosePath) != 1 {
			t.Errorf("unexpected polyline commands: %+v", rec.Commands())
		}
	})

	t.Run("ellipse frame", func(t *testing.T) {
		rec := surface.NewRecorder(100, 100)
		el := &drawing.Ellipse{Center: pt(5, 5), MajorAxis: pt(0, 2), AxisRatio: 0.5, EndParam: math.Pi}
		if err := Draw(rec, []drawing.Entity{el}, nil, tr, 0); err != nil {
			t.Fatal(err)
		}
		scales := ops(rec, surface.OpScale)
		last := scales[len(scales)-1].Args
		if last[0] != 1 || last[1] != 0.5 {
			t.Errorf("ellipse scale = %v, want [1 0.5]", last)
		}
		arc := ops(rec, surface.OpArc)[0].Args
		if arc[0] != 0 || arc[1] != 0 || arc[2] != 2 || arc[4] != math.Pi {
			t.Errorf("ellipse arc args = %v", arc)
		}
	})

	splines := []struct {
		n     int
		quads int
	}{
		{1, 0}, {2, 0}, {3, 1}, {4, 2}, {6, 4},
	}
	for _, tt := range splines {
		rec := surface.NewRecorder(100, 100)
		sp := &drawing.Spline{}
		for i := range tt.n {
			sp.ControlPoints = append(sp.ControlPoints, pt(float64(i), float64(i%2)))
		}
		if err := Draw(rec, []drawing.Entity{sp}, nil, tr, 0); err != nil {
			t.Fatal(err)
		}
		if got := rec.Count(surface.OpQuadratic); got != tt.quads {
			t.Errorf("spline with %d points: %d quadratic segments, want %d", tt.n, got, tt.quads)
		}
	}
}

func TestDrawFailure(t *testing.T) {
	bad := &drawing.Line{Vertices: []drawing.Point{pt(0, 0)}}
	good := line(0, 0, 1, 1)
	blocks := drawing.Library{"b": {Name: "b", Entities: []drawing.Entity{bad}}}

	tests := []struct {
		name     string
		entities []drawing.Entity
	}{
		{"short line", []drawing.Entity{good, bad}},
		{"short line in block", []drawing.Entity{&drawing.Insert{Block: "b"}, good}},
		{"panicking entity", []drawing.Entity{(*drawing.Polyline)(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := surface.NewRecorder(100, 100)
			err := Draw(rec, tt.entities, blocks, fit.Transform{Scale: 1}, 0)
			if !errors.Is(err, errors.ErrCodeRenderFailure) {
				t.Fatalf("Draw() error = %v, want %s", err, errors.ErrCodeRenderFailure)
			}
			if rec.Depth() != 0 {
				t.Errorf("unbalanced surface stack after failure: depth %d", rec.Depth())
			}
		})

		t.Run(tt.name+" isolated", func(t *testing.T) {
			rec := surface.NewRecorder(100, 100)
			err := Draw(rec, tt.entities, blocks, fit.Transform{Scale: 1}, 0, WithIsolation())
			if err != nil {
				t.Fatalf("Draw() error = %v, want nil", err)
			}
			if rec.Depth() != 0 {
				t.Errorf("unbalanced surface stack: depth %d", rec.Depth())
			}
		})
	}
}

func TestDrawCycle(t *testing.T) {
	blocks := drawing.Library{
		"A": {Name: "A", Entities: []drawing.Entity{line(0, 0, 1, 0), &drawing.Insert{Block: "B"}}},
		"B": {Name: "B", Entities: []drawing.Entity{&drawing.Insert{Block: "A"}}},
	}
	rec := render(t, []drawing.Entity{&drawing.Insert{Block: "A"}}, blocks, 0)
	if n := rec.Count(surface.OpStroke); n != 1 {
		t.Errorf("got %d strokes, want 1", n)
	}
}

func TestDrawHidden(t *testing.T) {
	hidden := &drawing.Line{Common: drawing.Common{Hidden: true}, Vertices: []drawing.Point{pt(0, 0), pt(1, 1)}}
	rec := render(t, []drawing.Entity{hidden, line(0, 0, 2, 0)}, nil, 0)
	if n := rec.Count(surface.OpStroke); n != 1 {
		t.Errorf("got %d strokes, want 1", n)
	}
}

func TestDrawWithoutLineweights(t *testing.T) {
	heavy := &drawing.Line{Common: drawing.Common{Lineweight: 200}, Vertices: []drawing.Point{pt(0, 0), pt(1, 0)}}
	rec := surface.NewRecorder(100, 100)
	if err := Draw(rec, []drawing.Entity{heavy}, nil, fit.Transform{Scale: 10}, 0, WithoutLineweights()); err != nil {
		t.Fatal(err)
	}
	assertDevice(t, ops(rec, surface.OpStroke)[0], 1)
}
