// Package fallback draws the placeholder shown when a drawing has nothing to
// render or a pass failed.
package fallback

import (
	"github.com/matzehuels/dxfview/pkg/render/surface"
)

// Placeholder messages.
const (
	MsgNoContent   = "No visible content found in DXF file"
	MsgParseError  = "Error parsing DXF file"
	MsgRenderError = "Error rendering DXF content"
)

// Placeholder style.
const (
	Background = "#f0f0f0"
	TextColor  = "#666"
	TextSize   = 20.0
)

// Draw fills s with the background and centers message on it. It draws in
// surface coordinates, so callers pass a surface with no transform applied.
func Draw(s surface.Surface, message string) {
	w, h := float64(s.Width()), float64(s.Height())
	s.SetFillColor(surface.ParseHex(Background))
	s.FillRect(0, 0, w, h)
	s.SetFillColor(surface.ParseHex(TextColor))
	s.FillText(message, w/2, h/2, TextSize)
}
