// Package render provides preview rendering for 2D drawings.
//
// # Overview
//
// This package contains the rendering pipeline that turns a drawing model
// into a fixed-size preview. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Bounds, fit and raster passes (in subpackages)
//   - Output encoders (in [sink])
//   - Block-reference diagrams (in [nodelink])
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The PDF sink and the
// node-link renderer both use them.
//
//	svg := sink.RenderSVG(rec)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Preview Passes
//
// A preview runs these passes over the same drawing:
//
//   - [bounds]: axis-aligned extent of the visible geometry
//   - [fit]: scale and offset placing those bounds on the raster
//   - [raster]: stroke commands on a [surface] under the fit transform
//   - [fallback]: placeholder when there is nothing to draw or a pass failed
//
// Nested block instances compose their transforms through [pose].
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the block reference graph using
// Graphviz. Blocks appear as boxes connected by INSERT edges.
//
//	dot := nodelink.ToDOT(model, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//
// [bounds]: github.com/matzehuels/dxfview/pkg/render/bounds
// [fit]: github.com/matzehuels/dxfview/pkg/render/fit
// [raster]: github.com/matzehuels/dxfview/pkg/render/raster
// [fallback]: github.com/matzehuels/dxfview/pkg/render/fallback
// [surface]: github.com/matzehuels/dxfview/pkg/render/surface
// [pose]: github.com/matzehuels/dxfview/pkg/render/pose
// [sink]: github.com/matzehuels/dxfview/pkg/render/sink
// [nodelink]: github.com/matzehuels/dxfview/pkg/render/nodelink
package render
