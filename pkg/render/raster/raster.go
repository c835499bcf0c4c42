package raster

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/errors"
	"github.com/matzehuels/dxfview/pkg/render/fit"
	"github.com/matzehuels/dxfview/pkg/render/pose"
	"github.com/matzehuels/dxfview/pkg/render/surface"
)

// DefaultMaxDepth limits block nesting when no other limit is configured.
const DefaultMaxDepth = 64

// Option configures [Draw].
type Option func(*renderer)

// WithLogger sets the logger for render failures and skipped entities.
func WithLogger(l *log.Logger) Option {
	return func(r *renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMaxDepth sets the maximum block nesting depth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(r *renderer) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// WithIsolation skips failing entities instead of abandoning the pass.
func WithIsolation() Option { return func(r *renderer) { r.isolate = true } }

// WithoutLineweights strokes every entity with the base width.
func WithoutLineweights() Option { return func(r *renderer) { r.noWeights = true } }

// Draw renders entities onto s using the fit transform t and a bulk rotation
// in degrees about the surface center. The surface transform stack is
// balanced when Draw returns, whether or not it failed.
//
// Block instances resolve by exact name only; unknown names draw nothing.
// An instance without an insertion point is drawn at the origin rather
// than failing the whole pass.
func Draw(s surface.Surface, entities []drawing.Entity, blocks drawing.Library, t fit.Transform, rotationDeg float64, opts ...Option) (err error) {
	r := &renderer{
		s:        s,
		blocks:   blocks,
		log:      log.NewWithOptions(io.Discard, log.Options{}),
		maxDepth: DefaultMaxDepth,
		path:     make(map[*drawing.Block]bool),
	}
	for _, opt := range opts {
		opt(r)
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = errors.FromPanic(errors.ErrCodeRenderFailure, rec, "render pass")
		}
		if err != nil {
			r.unwind(0)
			if !errors.Is(err, errors.ErrCodeRenderFailure) {
				err = errors.Wrap(errors.ErrCodeRenderFailure, err, "render pass")
			}
			r.log.Error("render failed", "err", err)
		}
	}()

	w, h := float64(s.Width()), float64(s.Height())
	r.save()
	s.Translate(w/2, h/2)
	s.Scale(1, -1)
	s.Rotate(pose.Radians(pose.NormalizeDegrees(rotationDeg)))
	s.Translate(-w/2, -h/2)

	if err := r.drawAll(entities, t); err != nil {
		return err
	}
	r.restore()
	return nil
}

type renderer struct {
	s         surface.Surface
	blocks    drawing.Library
	log       *log.Logger
	maxDepth  int
	isolate   bool
	noWeights bool

	base  float64
	saves int
	path  map[*drawing.Block]bool
}

func (r *renderer) drawAll(entities []drawing.Entity, t fit.Transform) error {
	r.save()
	r.s.Translate(t.OffsetX, t.OffsetY)
	r.base = 1 / t.Scale
	r.s.SetLineWidth(r.base)
	r.s.Scale(t.Scale, t.Scale)

	if err := r.each(entities, pose.Identity, 0); err != nil {
		return err
	}
	r.restore()
	return nil
}

func (r *renderer) each(entities []drawing.Entity, p pose.Pose, depth int) error {
	for _, e := range entities {
		if !r.isolate {
			if err := r.entity(e, p, depth); err != nil {
				return err
			}
			continue
		}
		if err := r.guarded(e, p, depth); err != nil {
			r.log.Warn("skipping entity", "err", err)
		}
	}
	return nil
}

// guarded draws one entity, converting a panic into an error and restoring
// the surface stack to where it was before the entity.
func (r *renderer) guarded(e drawing.Entity, p pose.Pose, depth int) (err error) {
	mark := r.saves
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.FromPanic(errors.ErrCodeRenderFailure, rec, "draw %T", e)
		}
		if err != nil {
			r.unwind(mark)
		}
	}()
	return r.entity(e, p, depth)
}

func (r *renderer) entity(e drawing.Entity, p pose.Pose, depth int) error {
	if e == nil || !e.Visible() {
		return nil
	}

	weight := e.Weight()
	if r.noWeights {
		weight = 0
	}
	r.s.SetLineWidth(p.StrokeWidth(weight, r.base))

	if ins, ok := e.(*drawing.Insert); ok {
		return r.insert(ins, p, depth)
	}

	r.s.BeginPath()
	if err := r.shape(e, p); err != nil {
		return err
	}
	r.s.Stroke()
	return nil
}

func (r *renderer) insert(ins *drawing.Insert, p pose.Pose, depth int) error {
	block, ok := r.blocks.Lookup(ins.Block)
	if !ok {
		return nil
	}
	if r.path[block] || depth >= r.maxDepth {
		r.log.Warn("skipping block reference", "block", block.Name, "depth", depth)
		return nil
	}

	frame, child := p.Nested(ins)
	r.save()
	r.s.Translate(frame.TranslateX, frame.TranslateY)
	r.s.Rotate(frame.Rotation)

	r.path[block] = true
	defer delete(r.path, block)
	if err := r.each(block.Entities, child, depth+1); err != nil {
		return err
	}
	r.restore()
	return nil
}

func (r *renderer) shape(e drawing.Entity, p pose.Pose) error {
	switch e := e.(type) {
	case *drawing.Line:
		if len(e.Vertices) < 2 {
			return errors.New(errors.ErrCodeInvalidInput, "LINE needs 2 vertices, has %d", len(e.Vertices))
		}
		r.moveTo(p.Point(e.Vertices[0]))
		r.lineTo(p.Point(e.Vertices[1]))
	case *drawing.Polyline:
		for i, v := range e.Vertices {
			if i == 0 {
				r.moveTo(p.Point(v))
			} else {
				r.lineTo(p.Point(v))
			}
		}
		if e.Closed {
			r.s.ClosePath()
		}
	case *drawing.Circle:
		x, y := p.Point(e.Center)
		r.arc(x, y, e.Radius*p.Scale, 0, 2*math.Pi, false)
	case *drawing.Arc:
		x, y := p.Point(e.Center)
		r.arc(x, y, e.Radius*p.Scale, -pose.Radians(e.StartAngle), -pose.Radians(e.EndAngle), true)
	case *drawing.Ellipse:
		r.ellipse(e, p)
	case *drawing.Spline:
		r.spline(e, p)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported entity %s", e.Kind())
	}
	return nil
}

// ellipse draws the true elliptical arc by scaling a circular arc inside a
// scoped frame aligned with the major axis.
func (r *renderer) ellipse(e *drawing.Ellipse, p pose.Pose) {
	major := math.Hypot(e.MajorAxis.X, e.MajorAxis.Y) * p.Scale
	x, y := p.Point(e.Center)

	r.save()
	r.s.Translate(x, y)
	r.s.Rotate(math.Atan2(e.MajorAxis.Y, e.MajorAxis.X))
	r.s.Scale(1, e.AxisRatio)
	r.arc(0, 0, major, e.StartParam, e.EndParam, e.CounterClockwise)
	r.restore()
}

// spline approximates the curve with quadratic segments through the
// midpoints of consecutive control points.
func (r *renderer) spline(e *drawing.Spline, p pose.Pose) {
	n := len(e.ControlPoints)
	if n < 2 {
		return
	}
	pts := make([]drawing.Point, n)
	for i, v := range e.ControlPoints {
		x, y := p.Point(v)
		pts[i] = drawing.Point{X: x, Y: y}
	}

	r.moveTo(pts[0].X, pts[0].Y)
	for i := 1; i < n-2; i++ {
		m := pts[i].Mid(pts[i+1])
		r.quadTo(pts[i], m)
	}
	if n > 2 {
		r.quadTo(pts[n-2], pts[n-1])
	}
}

// Path calls with non-finite arguments are dropped, as a canvas does.

func (r *renderer) moveTo(x, y float64) {
	if finite(x, y) {
		r.s.MoveTo(x, y)
	}
}

func (r *renderer) lineTo(x, y float64) {
	if finite(x, y) {
		r.s.LineTo(x, y)
	}
}

func (r *renderer) quadTo(c, to drawing.Point) {
	if finite(c.X, c.Y, to.X, to.Y) {
		r.s.QuadraticTo(c.X, c.Y, to.X, to.Y)
	}
}

func (r *renderer) arc(x, y, radius, start, end float64, anticlockwise bool) {
	if finite(x, y, radius, start, end) && radius >= 0 {
		r.s.Arc(x, y, radius, start, end, anticlockwise)
	}
}

func (r *renderer) save() {
	r.s.Save()
	r.saves++
}

func (r *renderer) restore() {
	r.s.Restore()
	r.saves--
}

// unwind restores the surface until only mark saves remain.
func (r *renderer) unwind(mark int) {
	for r.saves > mark {
		r.restore()
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
