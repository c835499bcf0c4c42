package pose

import (
	"math"

	"github.com/matzehuels/dxfview/pkg/drawing"
)

// Pose is an accumulated instance transform. Rotation is the sum of the
// instance rotations along the path, in degrees.
type Pose struct {
	X, Y     float64
	Rotation float64
	Scale    float64
}

// Identity is the pose at the top level of a drawing.
var Identity = Pose{Scale: 1}

// Apply maps a point from entity space into the pose's parent space: scale,
// then rotate about the origin, then translate. It is the bounds-pass rule
// and hands Rotation to sin/cos without converting it from degrees, so a
// 90 degree instance turns by 90 radians. Bounds of rotated instances
// depend on this; [Pose.Nested] converts.
func (p Pose) Apply(pt drawing.Point) drawing.Point {
	x, y := pt.X*p.Scale, pt.Y*p.Scale
	if p.Rotation != 0 {
		sin, cos := math.Sincos(p.Rotation)
		x, y = x*cos-y*sin, x*sin+y*cos
	}
	return drawing.Point{X: x + p.X, Y: y + p.Y}
}

// ComposeAdditive returns the child pose for an instance in the bounds pass.
// Zero scale components count as 1.
func (p Pose) ComposeAdditive(ins *drawing.Insert) Pose {
	at := ins.InsertionPoint()
	sc := ins.ScaleOrDefault()
	return Pose{
		X:        p.X + at.X,
		Y:        p.Y + at.Y,
		Rotation: p.Rotation + ins.Rotation,
		Scale:    p.Scale * max(orOne(sc.X), orOne(sc.Y)),
	}
}

// Frame is the surface transform pushed for one block instance in the
// render pass. Rotation is in radians, ready for the surface.
type Frame struct {
	TranslateX, TranslateY float64
	Rotation               float64
}

// Nested returns the surface frame and child pose for an instance in the
// render pass. The child pose carries only the cumulative scale because the
// frame already encodes position and rotation.
func (p Pose) Nested(ins *drawing.Insert) (Frame, Pose) {
	at := ins.InsertionPoint()
	sc := ins.ScaleOrDefault()
	f := Frame{
		TranslateX: at.X*p.Scale + p.X,
		TranslateY: at.Y*p.Scale + p.Y,
		Rotation:   Radians(ins.Rotation + p.Rotation),
	}
	return f, Pose{Scale: p.Scale * max(sc.X, sc.Y)}
}

// Point places pt at the current nesting level of the render pass, where
// only scale and translation are applied by hand.
func (p Pose) Point(pt drawing.Point) (float64, float64) {
	return pt.X*p.Scale + p.X, pt.Y*p.Scale + p.Y
}

// StrokeWidth returns the line width for an entity at this nesting level.
// A positive lineweight (hundredths of a unit) grows with the cumulative
// scale; otherwise base is compensated so strokes stay one pixel wide.
func (p Pose) StrokeWidth(lineweight, base float64) float64 {
	if lineweight > 0 {
		return lineweight / 100 * p.Scale
	}
	return base / p.Scale
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// NormalizeDegrees maps an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
