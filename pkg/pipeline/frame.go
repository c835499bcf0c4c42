package pipeline

import (
	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/render/bounds"
	"github.com/matzehuels/dxfview/pkg/render/fallback"
	"github.com/matzehuels/dxfview/pkg/render/fit"
)

// =============================================================================
// Frame Stage
// =============================================================================

// Frame places a model on the raster.
type Frame struct {
	// Entities is the flattened list both passes walk.
	Entities []drawing.Entity
	Bounds   bounds.Bounds
	Fit      fit.Transform
	// Message is the placeholder to draw instead of the model, or empty.
	Message string
	Skipped []error
}

// ComputeFrame flattens m, computes its bounds and fits them to the raster
// size in opts. A model with no entities or no visible content gets the
// no-content placeholder.
func ComputeFrame(m *drawing.Model, opts Options) Frame {
	var blocks drawing.Library
	if m != nil {
		blocks = m.Blocks
	}
	fr := Frame{Entities: m.Flatten()}

	bopts := []bounds.Option{bounds.WithLogger(opts.Logger)}
	if opts.MaxDepth > 0 {
		bopts = append(bopts, bounds.WithMaxDepth(opts.MaxDepth))
	}
	res := bounds.Compute(fr.Entities, blocks, bopts...)
	fr.Bounds = res.Bounds
	fr.Skipped = res.Errors

	if len(fr.Entities) == 0 || !res.HasVisible {
		fr.Message = fallback.MsgNoContent
		return fr
	}
	fr.Fit = fit.Fit(res.Bounds, float64(opts.Width), float64(opts.Height))
	return fr
}
