// Package nodelink renders the block reference graph of a drawing as a
// node-link diagram.
//
// # Overview
//
// Every block is a node and every group of INSERT entities from one block
// (or the top level) to another is an edge. The diagram helps to understand
// why a nested preview looks the way it does: which blocks are reused, which
// references point at missing blocks, and where reference cycles make the
// render passes stop descending.
//
// # Usage
//
//	dot := nodelink.ToDOT(model, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # DOT Format
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded box
// nodes. The top-level entities appear as the bold [RootID] node, missing
// blocks are dashed and grey, and cycle edges are red. Edges for repeated
// references carry a ×N label.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
