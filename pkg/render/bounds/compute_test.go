package bounds

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/errors"
)

const eps = 1e-9

func pt(x, y float64) drawing.Point { return drawing.Point{X: x, Y: y} }

func line(x1, y1, x2, y2 float64) *drawing.Line {
	return &drawing.Line{Vertices: []drawing.Point{pt(x1, y1), pt(x2, y2)}}
}

func assertBounds(t *testing.T, got, want Bounds) {
	t.Helper()
	if math.Abs(got.MinX-want.MinX) > eps || math.Abs(got.MinY-want.MinY) > eps ||
		math.Abs(got.MaxX-want.MaxX) > eps || math.Abs(got.MaxY-want.MaxY) > eps {
		t.Errorf("bounds = %+v, want %+v", got, want)
	}
}

func TestComputeEmpty(t *testing.T) {
	res := Compute(nil, nil)
	if res.HasVisible {
		t.Error("HasVisible = true, want false")
	}
	if res.Bounds != Default {
		t.Errorf("Bounds = %+v, want %+v", res.Bounds, Default)
	}
}

func TestComputeLeaves(t *testing.T) {
	tests := []struct {
		name    string
		entity  drawing.Entity
		want    Bounds
		visible bool
	}{
		{
			name:    "line",
			entity:  line(0, 0, 10, 0),
			want:    Bounds{0, 0, 10, 0},
			visible: true,
		},
		{
			name:    "line with one vertex",
			entity:  &drawing.Line{Vertices: []drawing.Point{pt(1, 1)}},
			want:    Default,
			visible: false,
		},
		{
			name:    "polyline",
			entity:  &drawing.Polyline{Vertices: []drawing.Point{pt(-1, 2), pt(3, -4), pt(0, 0)}},
			want:    Bounds{-1, -4, 3, 2},
			visible: true,
		},
		{
			name:    "circle",
			entity:  &drawing.Circle{Center: pt(5, 5), Radius: 2},
			want:    Bounds{3, 3, 7, 7},
			visible: true,
		},
		{
			name:    "arc counts as full circle",
			entity:  &drawing.Arc{Center: pt(0, 0), Radius: 1, StartAngle: 0, EndAngle: 10},
			want:    Bounds{-1, -1, 1, 1},
			visible: true,
		},
		{
			name:    "axis-aligned ellipse",
			entity:  &drawing.Ellipse{Center: pt(0, 0), MajorAxis: pt(4, 0), AxisRatio: 0.5, EndParam: 2 * math.Pi},
			want:    Bounds{-4, -2, 4, 2},
			visible: true,
		},
		{
			name:    "spline uses control points",
			entity:  &drawing.Spline{ControlPoints: []drawing.Point{pt(0, 0), pt(5, 10), pt(10, 0)}},
			want:    Bounds{0, 0, 10, 10},
			visible: true,
		},
		{
			name:    "hidden line",
			entity:  &drawing.Line{Common: drawing.Common{Hidden: true}, Vertices: []drawing.Point{pt(0, 0), pt(1, 1)}},
			want:    Default,
			visible: false,
		},
		{
			name:    "non-finite vertices",
			entity:  line(math.NaN(), 0, math.Inf(1), 0),
			want:    Default,
			visible: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compute([]drawing.Entity{tt.entity}, nil)
			assertBounds(t, res.Bounds, tt.want)
			if res.HasVisible != tt.visible {
				t.Errorf("HasVisible = %v, want %v", res.HasVisible, tt.visible)
			}
			if len(res.Errors) != 0 {
				t.Errorf("Errors = %v, want none", res.Errors)
			}
		})
	}
}

func TestComputeContainsLineVertices(t *testing.T) {
	l := line(-3.5, 7, 12, -1)
	res := Compute([]drawing.Entity{&drawing.Circle{Center: pt(0, 0), Radius: 1}, l}, nil)
	for _, v := range l.Vertices {
		if !res.Bounds.Contains(v) {
			t.Errorf("bounds %+v do not contain %v", res.Bounds, v)
		}
	}
	if res.Bounds.MinX > res.Bounds.MaxX || res.Bounds.MinY > res.Bounds.MaxY {
		t.Errorf("bounds not normalized: %+v", res.Bounds)
	}
}

func TestComputeInsertAdditive(t *testing.T) {
	blocks := drawing.Library{
		"inner": {Name: "inner", Entities: []drawing.Entity{line(0, 0, 1, 0)}},
		"outer": {Name: "outer", Entities: []drawing.Entity{
			&drawing.Insert{Block: "inner", Position: &drawing.Point{X: 10, Y: 0}, Scale: &drawing.Scale{X: 2, Y: 2}},
		}},
	}
	top := []drawing.Entity{
		&drawing.Insert{Block: "outer", Position: &drawing.Point{X: 0, Y: 5}, Rotation: 90},
	}

	res := Compute(top, blocks)

	// The inner offset (10, 0) is added to (0, 5) without the outer rotation.
	// The line is scaled by 2 and turned by the summed rotation taken as
	// radians: (2, 0) lands on (2cos90, 2sin90).
	dx, dy := 2*math.Cos(90), 2*math.Sin(90)
	assertBounds(t, res.Bounds, Bounds{10 + dx, 5, 10, 5 + dy})
	if !res.HasVisible {
		t.Error("HasVisible = false, want true")
	}
}

func TestComputeInsertFallbacks(t *testing.T) {
	ms := &drawing.Block{Name: drawing.DefaultBlockName, Entities: []drawing.Entity{line(0, 0, 2, 2)}}

	t.Run("missing block falls back to default", func(t *testing.T) {
		res := Compute([]drawing.Entity{
			&drawing.Insert{Block: "nope", Position: &drawing.Point{X: 100, Y: 100}},
		}, drawing.Library{ms.Name: ms})
		assertBounds(t, res.Bounds, Bounds{100, 100, 102, 102})
	})

	t.Run("anonymous insert falls back to default", func(t *testing.T) {
		res := Compute([]drawing.Entity{&drawing.Insert{}}, drawing.Library{ms.Name: ms})
		assertBounds(t, res.Bounds, Bounds{0, 0, 2, 2})
	})

	t.Run("missing block with position is a point", func(t *testing.T) {
		res := Compute([]drawing.Entity{
			&drawing.Insert{Block: "nope", Position: &drawing.Point{X: 3, Y: 4}},
		}, nil)
		assertBounds(t, res.Bounds, Bounds{3, 4, 3, 4})
		if !res.HasVisible {
			t.Error("HasVisible = false, want true")
		}
	})

	t.Run("missing block without position is skipped", func(t *testing.T) {
		res := Compute([]drawing.Entity{&drawing.Insert{Block: "nope"}}, nil)
		if res.HasVisible {
			t.Error("HasVisible = true, want false")
		}
		if res.Bounds != Default {
			t.Errorf("Bounds = %+v, want %+v", res.Bounds, Default)
		}
	})
}

func TestComputeCycle(t *testing.T) {
	blocks := drawing.Library{
		"A": {Name: "A", Entities: []drawing.Entity{line(0, 0, 1, 1), &drawing.Insert{Block: "B"}}},
		"B": {Name: "B", Entities: []drawing.Entity{&drawing.Insert{Block: "A", Position: &drawing.Point{X: 1, Y: 1}}}},
	}

	res := Compute([]drawing.Entity{&drawing.Insert{Block: "A"}}, blocks)

	if len(res.Errors) != 1 {
		t.Fatalf("Errors = %v, want 1 cycle error", res.Errors)
	}
	if !errors.Is(res.Errors[0], errors.ErrCodeEntityProcessing) {
		t.Errorf("error code = %v, want %v", errors.GetCode(res.Errors[0]), errors.ErrCodeEntityProcessing)
	}
	assertBounds(t, res.Bounds, Bounds{0, 0, 1, 1})
}

func TestComputeMaxDepth(t *testing.T) {
	blocks := drawing.Library{
		"a": {Name: "a", Entities: []drawing.Entity{&drawing.Insert{Block: "b"}}},
		"b": {Name: "b", Entities: []drawing.Entity{&drawing.Insert{Block: "c"}}},
		"c": {Name: "c", Entities: []drawing.Entity{line(0, 0, 1, 1)}},
	}

	res := Compute([]drawing.Entity{&drawing.Insert{Block: "a"}}, blocks, WithMaxDepth(2))
	if len(res.Errors) != 1 {
		t.Fatalf("Errors = %v, want 1 depth error", res.Errors)
	}
	if res.HasVisible {
		t.Error("HasVisible = true, want false")
	}
}

func TestComputeIsolatesPanics(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{})

	entities := []drawing.Entity{
		(*drawing.Polyline)(nil),
		line(1, 1, 2, 2),
	}
	res := Compute(entities, nil, WithLogger(logger))

	if len(res.Errors) != 1 {
		t.Fatalf("Errors = %v, want 1", res.Errors)
	}
	if !errors.Is(res.Errors[0], errors.ErrCodeEntityProcessing) {
		t.Errorf("error code = %v, want %v", errors.GetCode(res.Errors[0]), errors.ErrCodeEntityProcessing)
	}
	assertBounds(t, res.Bounds, Bounds{1, 1, 2, 2})
	if !strings.Contains(buf.String(), "skipping entity") {
		t.Errorf("log output = %q, want a skipping entity warning", buf.String())
	}
}
