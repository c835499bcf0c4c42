package sink

import (
	"encoding/json"

	"github.com/matzehuels/dxfview/pkg/render/bounds"
	"github.com/matzehuels/dxfview/pkg/render/fit"
	"github.com/matzehuels/dxfview/pkg/render/surface"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	bounds   *bounds.Bounds
	fit      *fit.Transform
	rotation float64
	fallback string
}

// WithJSONBounds records the computed drawing bounds.
func WithJSONBounds(b bounds.Bounds) JSONOption { return func(r *jsonRenderer) { r.bounds = &b } }

// WithJSONFit records the fit transform used for the render pass.
func WithJSONFit(t fit.Transform) JSONOption { return func(r *jsonRenderer) { r.fit = &t } }

// WithJSONRotation records the bulk rotation in degrees.
func WithJSONRotation(deg float64) JSONOption { return func(r *jsonRenderer) { r.rotation = deg } }

// WithJSONFallback records the fallback message when a placeholder was drawn.
func WithJSONFallback(msg string) JSONOption { return func(r *jsonRenderer) { r.fallback = msg } }

type jsonOutput struct {
	Width    int               `json:"width"`
	Height   int               `json:"height"`
	Rotation float64           `json:"rotation"`
	Bounds   *bounds.Bounds    `json:"bounds,omitempty"`
	Fit      *fit.Transform    `json:"fit,omitempty"`
	Fallback string            `json:"fallback,omitempty"`
	Commands []surface.Command `json:"commands"`
}

// RenderJSON serializes the recorded commands with their metadata.
func RenderJSON(rec *surface.Recorder, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:    rec.Width(),
		Height:   rec.Height(),
		Rotation: r.rotation,
		Bounds:   r.bounds,
		Fit:      r.fit,
		Fallback: r.fallback,
		Commands: rec.Commands(),
	}
	if out.Commands == nil {
		out.Commands = []surface.Command{}
	}
	return json.MarshalIndent(out, "", "  ")
}
