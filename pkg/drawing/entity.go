package drawing

import "math"

// Kind identifies the concrete type of an [Entity].
type Kind int

const (
	KindLine Kind = iota
	KindPolyline
	KindLWPolyline
	KindCircle
	KindArc
	KindEllipse
	KindSpline
	KindInsert
)

var kindNames = [...]string{
	KindLine:       "LINE",
	KindPolyline:   "POLYLINE",
	KindLWPolyline: "LWPOLYLINE",
	KindCircle:     "CIRCLE",
	KindArc:        "ARC",
	KindEllipse:    "ELLIPSE",
	KindSpline:     "SPLINE",
	KindInsert:     "INSERT",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// ParseKind returns the Kind for a DXF entity type name such as "LINE".
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Point is a 2D coordinate in drawing units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Mid returns the midpoint between p and q.
func (p Point) Mid(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Entity is one drawable primitive or block instance.
type Entity interface {
	// Kind returns the entity type.
	Kind() Kind
	// Visible reports whether the entity takes part in bounds and rendering.
	Visible() bool
	// Weight returns the line weight in hundredths of a drawing unit,
	// or 0 when none was specified.
	Weight() float64

	isEntity()
}

// Common holds the fields shared by every entity.
type Common struct {
	Hidden     bool    // visibility flag inverted so the zero value is visible
	Lineweight float64 // hundredths of a drawing unit; <= 0 means unset
}

// Visible reports whether the entity is visible.
func (c Common) Visible() bool { return !c.Hidden }

// Weight returns the line weight, or 0 when it is unset.
func (c Common) Weight() float64 {
	if c.Lineweight > 0 {
		return c.Lineweight
	}
	return 0
}

// Line is a straight segment between Vertices[0] and Vertices[1].
type Line struct {
	Common
	Vertices []Point
}

// Polyline is a connected sequence of vertices.
type Polyline struct {
	Common
	Vertices    []Point
	Closed      bool
	Lightweight bool
}

// Circle is a full circle.
type Circle struct {
	Common
	Center Point
	Radius float64
}

// Arc is a circular arc. Angles are in degrees, counter-clockwise from +X.
type Arc struct {
	Common
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

// Ellipse is an elliptical arc. MajorAxis is relative to Center, AxisRatio
// is minor/major, and the parametric angles are in radians.
type Ellipse struct {
	Common
	Center           Point
	MajorAxis        Point
	AxisRatio        float64
	StartParam       float64
	EndParam         float64
	CounterClockwise bool
}

// Spline is approximated from its control points.
type Spline struct {
	Common
	ControlPoints []Point
}

// Scale is the per-axis scale of an [Insert].
type Scale struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Insert places an instance of the block named Block.
// A nil Position means the instance carries no insertion point and a nil
// Scale means {1, 1}.
type Insert struct {
	Common
	Block    string
	Position *Point
	Rotation float64 // degrees
	Scale    *Scale
}

// InsertionPoint returns the position, or the origin when none is set.
func (e *Insert) InsertionPoint() Point {
	if e.Position == nil {
		return Point{}
	}
	return *e.Position
}

// ScaleOrDefault returns the instance scale with nil treated as {1, 1}.
func (e *Insert) ScaleOrDefault() Scale {
	if e.Scale == nil {
		return Scale{X: 1, Y: 1}
	}
	return *e.Scale
}

func (e *Line) Kind() Kind    { return KindLine }
func (e *Circle) Kind() Kind  { return KindCircle }
func (e *Arc) Kind() Kind     { return KindArc }
func (e *Ellipse) Kind() Kind { return KindEllipse }
func (e *Spline) Kind() Kind  { return KindSpline }
func (e *Insert) Kind() Kind  { return KindInsert }

func (e *Polyline) Kind() Kind {
	if e.Lightweight {
		return KindLWPolyline
	}
	return KindPolyline
}

func (*Line) isEntity()     {}
func (*Polyline) isEntity() {}
func (*Circle) isEntity()   {}
func (*Arc) isEntity()      {}
func (*Ellipse) isEntity()  {}
func (*Spline) isEntity()   {}
func (*Insert) isEntity()   {}
