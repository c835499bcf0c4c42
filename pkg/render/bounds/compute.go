package bounds

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/errors"
	"github.com/matzehuels/dxfview/pkg/render/pose"
)

// DefaultMaxDepth limits block nesting when no other limit is configured.
const DefaultMaxDepth = 64

// Result is the outcome of a bounds pass.
type Result struct {
	Bounds     Bounds
	HasVisible bool    // at least one visible entity contributed
	Errors     []error // per-entity failures that were skipped
}

// Option configures [Compute].
type Option func(*walker)

// WithLogger sets the logger for skipped entities.
func WithLogger(l *log.Logger) Option {
	return func(w *walker) {
		if l != nil {
			w.log = l
		}
	}
}

// WithMaxDepth sets the maximum block nesting depth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(w *walker) {
		if n > 0 {
			w.maxDepth = n
		}
	}
}

// Compute returns the bounds of the visible geometry in entities, resolving
// block references against blocks. It never fails: per-entity errors are
// collected in the result.
func Compute(entities []drawing.Entity, blocks drawing.Library, opts ...Option) Result {
	w := &walker{
		blocks:   blocks,
		log:      log.NewWithOptions(io.Discard, log.Options{}),
		maxDepth: DefaultMaxDepth,
		path:     make(map[*drawing.Block]bool),
		res:      Result{Bounds: Empty()},
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, e := range entities {
		w.entity(e, pose.Identity, 0)
	}

	if !w.res.Bounds.Finite() {
		w.res.Bounds = Default
	}
	return w.res
}

type walker struct {
	blocks   drawing.Library
	log      *log.Logger
	maxDepth int
	path     map[*drawing.Block]bool
	res      Result
}

func (w *walker) entity(e drawing.Entity, p pose.Pose, depth int) {
	if e == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			w.fail(errors.FromPanic(errors.ErrCodeEntityProcessing, r, "process %T", e))
		}
	}()

	if !e.Visible() {
		return
	}
	if ins, ok := e.(*drawing.Insert); ok {
		w.insert(ins, p, depth)
		return
	}
	if err := w.contribute(e, p); err != nil {
		w.fail(err)
	}
}

func (w *walker) insert(ins *drawing.Insert, p pose.Pose, depth int) {
	block, ok := w.blocks.Resolve(ins.Block)
	if !ok {
		if ins.Position != nil {
			w.res.Bounds.Add(ins.Position.X+p.X, ins.Position.Y+p.Y)
			w.res.HasVisible = true
		}
		return
	}
	if w.path[block] {
		w.fail(errors.New(errors.ErrCodeEntityProcessing, "block %q references itself", block.Name))
		return
	}
	if depth >= w.maxDepth {
		w.fail(errors.New(errors.ErrCodeEntityProcessing, "block %q nested deeper than %d", block.Name, w.maxDepth))
		return
	}

	child := p.ComposeAdditive(ins)
	w.path[block] = true
	defer delete(w.path, block)
	for _, e := range block.Entities {
		w.entity(e, child, depth+1)
	}
}

func (w *walker) contribute(e drawing.Entity, p pose.Pose) error {
	switch e := e.(type) {
	case *drawing.Line:
		if len(e.Vertices) >= 2 {
			w.points(p, e.Vertices)
		}
	case *drawing.Polyline:
		if len(e.Vertices) > 0 {
			w.points(p, e.Vertices)
		}
	case *drawing.Circle:
		w.circle(p, e.Center, e.Radius)
	case *drawing.Arc:
		w.circle(p, e.Center, e.Radius)
	case *drawing.Ellipse:
		w.ellipse(p, e)
	case *drawing.Spline:
		if len(e.ControlPoints) > 0 {
			w.points(p, e.ControlPoints)
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported entity %s", e.Kind())
	}
	return nil
}

func (w *walker) points(p pose.Pose, pts []drawing.Point) {
	for _, v := range pts {
		t := p.Apply(v)
		w.res.Bounds.Add(t.X, t.Y)
	}
	w.res.HasVisible = true
}

func (w *walker) circle(p pose.Pose, center drawing.Point, radius float64) {
	c := p.Apply(center)
	r := radius * p.Scale
	w.res.Bounds.Add(c.X-r, c.Y-r)
	w.res.Bounds.Add(c.X+r, c.Y+r)
	w.res.HasVisible = true
}

func (w *walker) ellipse(p pose.Pose, e *drawing.Ellipse) {
	c := p.Apply(e.Center)
	end := p.Apply(drawing.Point{X: e.Center.X + e.MajorAxis.X, Y: e.Center.Y + e.MajorAxis.Y})
	dx, dy := end.X-c.X, end.Y-c.Y
	major := math.Hypot(dx, dy)
	minor := major * e.AxisRatio
	sinA, cosA := math.Sincos(math.Atan2(dy, dx))

	for _, theta := range [...]float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
		sinT, cosT := math.Sincos(theta)
		x := major*cosT*cosA - minor*sinT*sinA
		y := major*cosT*sinA + minor*sinT*cosA
		w.res.Bounds.Add(c.X+x, c.Y+y)
	}
	w.res.HasVisible = true
}

func (w *walker) fail(err error) {
	w.log.Warn("skipping entity", "err", err)
	w.res.Errors = append(w.res.Errors, err)
}
