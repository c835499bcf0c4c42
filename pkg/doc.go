// Package pkg provides the libraries behind dxfview, a preview renderer for
// 2D DXF drawings.
//
// # Overview
//
// The pkg directory is organized into these areas:
//
//  1. [drawing] - The drawing model: entities, blocks and inserts
//  2. [dxf] and [io] - Readers for ASCII DXF and the JSON drawing format
//  3. [render] - Bounds, fit, rasterization, placeholders and encoders
//  4. [pipeline] - Orchestration (load → frame → render) with caching
//  5. [cache], [httputil], [config], [observability] - Infrastructure
//  6. [server] - HTTP front end over the pipeline
//
// # Architecture
//
// The typical data flow:
//
//	DXF file / JSON drawing / URL
//	         ↓
//	    [dxf] or [io] (parse into a drawing.Model)
//	         ↓
//	    [render/bounds] (extent over visible entities and nested inserts)
//	         ↓
//	    [render/fit] (uniform scale and offset onto the raster)
//	         ↓
//	    [render/raster] (stroke calls on a surface, under rotation and flip)
//	         ↓
//	    PNG/JPEG/SVG/PDF/JSON output
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Run(ctx, "plan.dxf", pipeline.Options{
//	    Width:    800,
//	    Rotation: 90,
//	    Formats:  []string{"png"},
//	})
//	if err != nil {
//	    return err
//	}
//	if res.Fallback {
//	    log.Warn("placeholder", "message", res.Message)
//	}
//	os.WriteFile("plan.png", res.Artifacts["png"], 0o644)
//
// [drawing]: github.com/matzehuels/dxfview/pkg/drawing
// [dxf]: github.com/matzehuels/dxfview/pkg/dxf
// [io]: github.com/matzehuels/dxfview/pkg/io
// [render]: github.com/matzehuels/dxfview/pkg/render
// [render/bounds]: github.com/matzehuels/dxfview/pkg/render/bounds
// [render/fit]: github.com/matzehuels/dxfview/pkg/render/fit
// [render/raster]: github.com/matzehuels/dxfview/pkg/render/raster
// [pipeline]: github.com/matzehuels/dxfview/pkg/pipeline
// [cache]: github.com/matzehuels/dxfview/pkg/cache
// [httputil]: github.com/matzehuels/dxfview/pkg/httputil
// [config]: github.com/matzehuels/dxfview/pkg/config
// [observability]: github.com/matzehuels/dxfview/pkg/observability
// [server]: github.com/matzehuels/dxfview/pkg/server
package pkg
