package dxf

import (
	"math"

	"github.com/matzehuels/dxfview/pkg/drawing"
)

func init() {
	Register("LINE", func() Decoder { return &lineDecoder{} })
	Register("LWPOLYLINE", func() Decoder { return &polylineDecoder{e: drawing.Polyline{Lightweight: true}} })
	Register("POLYLINE", func() Decoder { return &polylineDecoder{} })
	Register("CIRCLE", func() Decoder { return &circleDecoder{} })
	Register("ARC", func() Decoder { return &arcDecoder{} })
	Register("ELLIPSE", func() Decoder { return &ellipseDecoder{e: drawing.Ellipse{AxisRatio: 1}} })
	Register("SPLINE", func() Decoder { return &splineDecoder{} })
	Register("INSERT", func() Decoder { return &insertDecoder{} })
}

// decodeCommon handles the groups every entity shares and reports whether t
// was one of them.
func decodeCommon(c *drawing.Common, t Tag) (bool, error) {
	switch t.Code {
	case 60:
		v, err := t.Int()
		if err != nil {
			return true, err
		}
		c.Hidden = v != 0
	case 370:
		v, err := t.Float()
		if err != nil {
			return true, err
		}
		c.Lineweight = v
	default:
		return false, nil
	}
	return true, nil
}

// float assigns the tag value to dst.
func float(t Tag, dst *float64) error {
	v, err := t.Float()
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// pointList collects repeated 10/20 pairs.
type pointList struct {
	pts []drawing.Point
	x   float64
}

func (l *pointList) decode(t Tag) error {
	switch t.Code {
	case 10:
		return float(t, &l.x)
	case 20:
		var y float64
		if err := float(t, &y); err != nil {
			return err
		}
		l.pts = append(l.pts, drawing.Point{X: l.x, Y: y})
	}
	return nil
}

// ============================================================================
// LINE
// ============================================================================

type lineDecoder struct {
	e          drawing.Line
	start, end drawing.Point
	hasStart   bool
	hasEnd     bool
}

func (d *lineDecoder) Decode(t Tag) error {
	if ok, err := decodeCommon(&d.e.Common, t); ok {
		return err
	}
	switch t.Code {
	case 10:
		d.hasStart = true
		return float(t, &d.start.X)
	case 20:
		return float(t, &d.start.Y)
	case 11:
		d.hasEnd = true
		return float(t, &d.end.X)
	case 21:
		return float(t, &d.end.Y)
	}
	return nil
}

func (d *lineDecoder) Entity() drawing.Entity {
	if d.hasStart {
		d.e.Vertices = append(d.e.Vertices, d.start)
	}
	if d.hasEnd {
		d.e.Vertices = append(d.e.Vertices, d.end)
	}
	return &d.e
}

// ============================================================================
// POLYLINE / LWPOLYLINE
// ============================================================================

type polylineDecoder struct {
	e   drawing.Polyline
	pts pointList
}

func (d *polylineDecoder) Decode(t Tag) error {
	if ok, err := decodeCommon(&d.e.Common, t); ok {
		return err
	}
	switch t.Code {
	case 70:
		flags, err := t.Int()
		if err != nil {
			return err
		}
		d.e.Closed = flags&1 != 0
	case 10, 20:
		// POLYLINE carries a dummy elevation point in its header
		if d.e.Lightweight {
			return d.pts.decode(t)
		}
	}
	return nil
}

func (d *polylineDecoder) AddVertex(p drawing.Point) {
	d.pts.pts = append(d.pts.pts, p)
}

func (d *polylineDecoder) Entity() drawing.Entity {
	d.e.Vertices = d.pts.pts
	return &d.e
}

// vertexDecoder reads one VERTEX record of a POLYLINE.
type vertexDecoder struct {
	p drawing.Point
}

func (d *vertexDecoder) Decode(t Tag) error {
	switch t.Code {
	case 10:
		return float(t, &d.p.X)
	case 20:
		return float(t, &d.p.Y)
	}
	return nil
}

// ============================================================================
// CIRCLE / ARC / ELLIPSE
// ============================================================================

type circleDecoder struct {
	e drawing.Circle
}

func (d *circleDecoder) Decode(t Tag) error {
	if ok, err := decodeCommon(&d.e.Common, t); ok {
		return err
	}
	switch t.Code {
	case 10:
		return float(t, &d.e.Center.X)
	case 20:
		return float(t, &d.e.Center.Y)
	case 40:
		return float(t, &d.e.Radius)
	}
	return nil
}

func (d *circleDecoder) Entity() drawing.Entity { return &d.e }

type arcDecoder struct {
	e drawing.Arc
}

func (d *arcDecoder) Decode(t Tag) error {
	if ok, err := decodeCommon(&d.e.Common, t); ok {
		return err
	}
	switch t.Code {
	case 10:
		return float(t, &d.e.Center.X)
	case 20:
		return float(t, &d.e.Center.Y)
	case 40:
		return float(t, &d.e.Radius)
	case 50:
		return float(t, &d.e.StartAngle)
	case 51:
		return float(t, &d.e.EndAngle)
	}
	return nil
}

func (d *arcDecoder) Entity() drawing.Entity { return &d.e }

type ellipseDecoder struct {
	e       drawing.Ellipse
	hasEnd  bool
	extrude float64
}

func (d *ellipseDecoder) Decode(t Tag) error {
	if ok, err := decodeCommon(&d.e.Common, t); ok {
		return err
	}
	switch t.Code {
	case 10:
		return float(t, &d.e.Center.X)
	case 20:
		return float(t, &d.e.Center.Y)
	case 11:
		return float(t, &d.e.MajorAxis.X)
	case 21:
		return float(t, &d.e.MajorAxis.Y)
	case 40:
		return float(t, &d.e.AxisRatio)
	case 41:
		return float(t, &d.e.StartParam)
	case 42:
		d.hasEnd = true
		return float(t, &d.e.EndParam)
	case 230:
		return float(t, &d.extrude)
	}
	return nil
}

func (d *ellipseDecoder) Entity() drawing.Entity {
	if !d.hasEnd {
		d.e.EndParam = 2 * math.Pi
	}
	// a negative extrusion mirrors the ellipse, reversing its sweep
	d.e.CounterClockwise = d.extrude < 0
	return &d.e
}

// ============================================================================
// SPLINE
// ============================================================================

type splineDecoder struct {
	e   drawing.Spline
	pts pointList
}

func (d *splineDecoder) Decode(t Tag) error {
	if ok, err := decodeCommon(&d.e.Common, t); ok {
		return err
	}
	return d.pts.decode(t)
}

func (d *splineDecoder) Entity() drawing.Entity {
	d.e.ControlPoints = d.pts.pts
	return &d.e
}

// ============================================================================
// INSERT
// ============================================================================

type insertDecoder struct {
	e     drawing.Insert
	pos   drawing.Point
	scale drawing.Scale
	hasSX bool
	hasSY bool
}

func (d *insertDecoder) Decode(t Tag) error {
	if ok, err := decodeCommon(&d.e.Common, t); ok {
		return err
	}
	switch t.Code {
	case 2:
		d.e.Block = t.Value
	case 10:
		if d.e.Position == nil {
			d.e.Position = &d.pos
		}
		return float(t, &d.pos.X)
	case 20:
		if d.e.Position == nil {
			d.e.Position = &d.pos
		}
		return float(t, &d.pos.Y)
	case 41:
		d.hasSX = true
		return float(t, &d.scale.X)
	case 42:
		d.hasSY = true
		return float(t, &d.scale.Y)
	case 50:
		return float(t, &d.e.Rotation)
	}
	return nil
}

func (d *insertDecoder) Entity() drawing.Entity {
	if d.hasSX || d.hasSY {
		if !d.hasSX {
			d.scale.X = 1
		}
		if !d.hasSY {
			d.scale.Y = 1
		}
		d.e.Scale = &d.scale
	}
	return &d.e
}
