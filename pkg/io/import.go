package io

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/errors"
)

// ReadJSON decodes a JSON drawing from r. Malformed JSON and entities with
// no type fail with PARSE_FAILURE; entities of unsupported types are
// dropped. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*drawing.Model, error) {
	var data model
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "decode json drawing")
	}

	es, err := decodeEntities(data.Entities)
	if err != nil {
		return nil, err
	}
	m := &drawing.Model{Entities: es, Blocks: make(drawing.Library, len(data.Blocks))}
	for key, b := range data.Blocks {
		es, err := decodeEntities(b.Entities)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "block %s", key)
		}
		name := b.Name
		if name == "" {
			name = key
		}
		m.Blocks[key] = &drawing.Block{Name: name, Entities: es}
	}
	return m, nil
}

// ImportJSON reads the JSON drawing at path.
func ImportJSON(path string) (*drawing.Model, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

func decodeEntities(in []entity) ([]drawing.Entity, error) {
	out := make([]drawing.Entity, 0, len(in))
	for i, e := range in {
		if e.Type == "" {
			return nil, errors.New(errors.ErrCodeParseFailure, "entity %d: missing type", i)
		}
		if d := e.decode(); d != nil {
			out = append(out, d)
		}
	}
	return out, nil
}

func (e entity) decode() drawing.Entity {
	c := drawing.Common{
		Hidden:     e.Visible != nil && !*e.Visible,
		Lineweight: e.Lineweight,
	}
	center := func() drawing.Point {
		if e.Center == nil {
			return drawing.Point{}
		}
		return *e.Center
	}

	switch e.Type {
	case "LINE":
		return &drawing.Line{Common: c, Vertices: e.Vertices}
	case "POLYLINE", "LWPOLYLINE":
		return &drawing.Polyline{Common: c, Vertices: e.Vertices, Closed: e.Shape, Lightweight: e.Type == "LWPOLYLINE"}
	case "CIRCLE":
		return &drawing.Circle{Common: c, Center: center(), Radius: e.Radius}
	case "ARC":
		return &drawing.Arc{Common: c, Center: center(), Radius: e.Radius, StartAngle: e.StartAngle, EndAngle: e.EndAngle}
	case "ELLIPSE":
		el := &drawing.Ellipse{
			Common:           c,
			Center:           center(),
			AxisRatio:        1,
			StartParam:       e.StartParam,
			EndParam:         2 * math.Pi,
			CounterClockwise: e.CounterClockwise,
		}
		if e.MajorAxisEndPoint != nil {
			el.MajorAxis = *e.MajorAxisEndPoint
		}
		if e.EndParam != nil {
			el.EndParam = *e.EndParam
		}
		if e.AxisRatio != nil {
			el.AxisRatio = *e.AxisRatio
		}
		return el
	case "SPLINE":
		return &drawing.Spline{Common: c, ControlPoints: e.ControlPoints}
	case "INSERT":
		ins := &drawing.Insert{Common: c, Block: e.BlockName, Position: e.Position, Rotation: e.Rotation}
		if ins.Block == "" {
			ins.Block = e.Name
		}
		if e.XScale != nil || e.YScale != nil {
			s := drawing.Scale{X: 1, Y: 1}
			if e.XScale != nil {
				s.X = *e.XScale
			}
			if e.YScale != nil {
				s.Y = *e.YScale
			}
			ins.Scale = &s
		}
		return ins
	}
	return nil
}
