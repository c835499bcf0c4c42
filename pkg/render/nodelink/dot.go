package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/render"
)

// RootID is the node ID used for the top-level entities of a model.
const RootID = "<model>"

// Options configures block diagram rendering.
type Options struct {
	// Detailed includes entity counts by kind in block labels.
	// When false, only the block name and entity total are shown.
	Detailed bool
}

// ToDOT converts the block reference graph of m to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// References to missing blocks are drawn with dashed outlines and grey fill.
// Edges that take part in a reference cycle are drawn in red.
func ToDOT(m *drawing.Model, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if m == nil {
		m = &drawing.Model{}
	}

	fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,bold\"];\n", RootID, fmtRootLabel(m))
	for _, name := range m.Blocks.Names() {
		label := fmtLabel(m.Blocks[name], opts.Detailed)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", name, label)
	}

	refs := m.References()
	missing := make(map[string]bool)
	for _, r := range refs {
		if _, ok := m.Blocks.Lookup(r.To); !ok && !missing[r.To] {
			missing[r.To] = true
			fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey, fontcolor=black];\n",
				nodeID(r.To), fmtMissingLabel(r.To))
		}
	}

	buf.WriteString("\n")
	adj := adjacency(refs)
	for _, r := range refs {
		var attrs []string
		if r.Count > 1 {
			attrs = append(attrs, fmt.Sprintf("label=\"×%d\"", r.Count))
		}
		if r.From != "" && reaches(adj, r.To, r.From) {
			attrs = append(attrs, "color=red", "fontcolor=red")
		}
		fmt.Fprintf(&buf, "  %q -> %q", nodeID(r.From), nodeID(r.To))
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeID maps a reference endpoint to its DOT node ID.
func nodeID(name string) string {
	if name == "" {
		return RootID
	}
	return name
}

func fmtRootLabel(m *drawing.Model) string {
	return fmt.Sprintf("model\n%d entities", len(m.Entities))
}

func fmtMissingLabel(name string) string {
	if name == "" {
		return "(anonymous)"
	}
	return name + "\n(missing)"
}

func fmtLabel(b *drawing.Block, detailed bool) string {
	if b == nil {
		return ""
	}
	label := fmt.Sprintf("%s\n%d entities", b.Name, len(b.Entities))
	if !detailed {
		return label
	}

	counts := make(map[drawing.Kind]int)
	for _, e := range b.Entities {
		if e != nil {
			counts[e.Kind()]++
		}
	}
	var parts []string
	for k := drawing.KindLine; k <= drawing.KindInsert; k++ {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", k, n))
		}
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func adjacency(refs []drawing.Reference) map[string][]string {
	adj := make(map[string][]string)
	for _, r := range refs {
		adj[r.From] = append(adj[r.From], r.To)
	}
	return adj
}

// reaches reports whether to is reachable from from.
func reaches(adj map[string][]string, from, to string) bool {
	seen := map[string]bool{from: true}
	stack := []string{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == to {
			return true
		}
		for _, next := range adj[n] {
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
