package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/errors"
)

// WriteJSON encodes m as indented JSON. The output can be read back with
// [ReadJSON].
func WriteJSON(m *drawing.Model, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(encodeModel(m)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json drawing")
	}
	return nil
}

// Marshal returns the compact JSON encoding of m. Map keys are sorted, so
// equal models produce equal bytes.
func Marshal(m *drawing.Model) ([]byte, error) {
	data, err := json.Marshal(encodeModel(m))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json drawing")
	}
	return data, nil
}

// ExportJSON writes m to path, replacing any existing file.
func ExportJSON(m *drawing.Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := WriteJSON(m, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encodeModel(m *drawing.Model) model {
	out := model{Entities: []entity{}}
	if m == nil {
		return out
	}
	out.Entities = encodeEntities(m.Entities)
	if len(m.Blocks) > 0 {
		out.Blocks = make(map[string]block, len(m.Blocks))
		for key, b := range m.Blocks {
			if b == nil {
				continue
			}
			out.Blocks[key] = block{Name: b.Name, Entities: encodeEntities(b.Entities)}
		}
	}
	return out
}

func encodeEntities(in []drawing.Entity) []entity {
	out := make([]entity, 0, len(in))
	for _, e := range in {
		if e == nil {
			continue
		}
		out = append(out, encode(e))
	}
	return out
}

func encode(e drawing.Entity) entity {
	out := entity{Type: e.Kind().String()}
	switch v := e.(type) {
	case *drawing.Line:
		out.Vertices = v.Vertices
		setCommon(&out, v.Common)
	case *drawing.Polyline:
		out.Vertices = v.Vertices
		out.Shape = v.Closed
		setCommon(&out, v.Common)
	case *drawing.Circle:
		out.Center = &v.Center
		out.Radius = v.Radius
		setCommon(&out, v.Common)
	case *drawing.Arc:
		out.Center = &v.Center
		out.Radius = v.Radius
		out.StartAngle = v.StartAngle
		out.EndAngle = v.EndAngle
		setCommon(&out, v.Common)
	case *drawing.Ellipse:
		ratio, end := v.AxisRatio, v.EndParam
		out.Center = &v.Center
		out.MajorAxisEndPoint = &v.MajorAxis
		out.AxisRatio = &ratio
		out.StartParam = v.StartParam
		out.EndParam = &end
		out.CounterClockwise = v.CounterClockwise
		setCommon(&out, v.Common)
	case *drawing.Spline:
		out.ControlPoints = v.ControlPoints
		setCommon(&out, v.Common)
	case *drawing.Insert:
		out.Name = v.Block
		out.Position = v.Position
		out.Rotation = v.Rotation
		if v.Scale != nil {
			sx, sy := v.Scale.X, v.Scale.Y
			out.XScale, out.YScale = &sx, &sy
		}
		setCommon(&out, v.Common)
	}
	return out
}

func setCommon(out *entity, c drawing.Common) {
	if c.Hidden {
		visible := false
		out.Visible = &visible
	}
	out.Lineweight = c.Lineweight
}
