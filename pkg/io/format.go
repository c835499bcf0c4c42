package io

import "github.com/matzehuels/dxfview/pkg/drawing"

type model struct {
	Entities []entity         `json:"entities"`
	Blocks   map[string]block `json:"blocks,omitempty"`
}

type block struct {
	Name     string   `json:"name"`
	Entities []entity `json:"entities"`
}

type entity struct {
	Type       string  `json:"type"`
	Visible    *bool   `json:"visible,omitempty"`
	Lineweight float64 `json:"lineweight,omitempty"`

	Vertices []drawing.Point `json:"vertices,omitempty"`
	Shape    bool            `json:"shape,omitempty"`

	Center     *drawing.Point `json:"center,omitempty"`
	Radius     float64        `json:"radius,omitempty"`
	StartAngle float64        `json:"startAngle,omitempty"`
	EndAngle   float64        `json:"endAngle,omitempty"`

	MajorAxisEndPoint *drawing.Point `json:"majorAxisEndPoint,omitempty"`
	AxisRatio         *float64       `json:"axisRatio,omitempty"`
	StartParam        float64        `json:"startParam,omitempty"`
	EndParam          *float64       `json:"endParam,omitempty"`
	CounterClockwise  bool           `json:"counterClockwise,omitempty"`

	ControlPoints []drawing.Point `json:"controlPoints,omitempty"`

	Name      string         `json:"name,omitempty"`
	BlockName string         `json:"blockName,omitempty"`
	Position  *drawing.Point `json:"position,omitempty"`
	Rotation  float64        `json:"rotation,omitempty"`
	XScale    *float64       `json:"xScale,omitempty"`
	YScale    *float64       `json:"yScale,omitempty"`
}
