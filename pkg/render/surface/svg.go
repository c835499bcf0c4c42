package surface

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"strings"

	"github.com/fogleman/gg"

	"github.com/matzehuels/dxfview/pkg/fonts"
)

// SVG is a [Surface] that writes SVG markup. Paths are stored in device
// coordinates, so the document needs no transform attributes.
type SVG struct {
	width, height int
	matrix        gg.Matrix
	lineWidth     float64
	stroke        color.Color
	fill          color.Color
	saved         []svgState

	path       strings.Builder
	hasCurrent bool
	start      [2]float64

	body      bytes.Buffer
	embedFont bool
}

type svgState struct {
	matrix    gg.Matrix
	lineWidth float64
	stroke    color.Color
	fill      color.Color
}

// SVGOption configures an [SVG] surface.
type SVGOption func(*SVG)

// WithEmbeddedFont embeds the text font as base64 data in the document.
func WithEmbeddedFont() SVGOption { return func(s *SVG) { s.embedFont = true } }

// NewSVG returns an empty width×height SVG surface.
func NewSVG(width, height int, opts ...SVGOption) *SVG {
	s := &SVG{
		width:     width,
		height:    height,
		matrix:    gg.Identity(),
		lineWidth: 1,
		stroke:    color.Black,
		fill:      color.Black,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SVG) Width() int  { return s.width }
func (s *SVG) Height() int { return s.height }

func (s *SVG) Save() {
	s.saved = append(s.saved, svgState{s.matrix, s.lineWidth, s.stroke, s.fill})
}

func (s *SVG) Restore() {
	if len(s.saved) == 0 {
		return
	}
	st := s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	s.matrix, s.lineWidth, s.stroke, s.fill = st.matrix, st.lineWidth, st.stroke, st.fill
}

func (s *SVG) Translate(x, y float64)       { s.matrix = s.matrix.Translate(x, y) }
func (s *SVG) Rotate(angle float64)         { s.matrix = s.matrix.Rotate(angle) }
func (s *SVG) Scale(sx, sy float64)         { s.matrix = s.matrix.Scale(sx, sy) }
func (s *SVG) SetLineWidth(w float64)       { s.lineWidth = w }
func (s *SVG) LineWidth() float64           { return s.lineWidth }
func (s *SVG) SetStrokeColor(c color.Color) { s.stroke = c }
func (s *SVG) SetFillColor(c color.Color)   { s.fill = c }

func (s *SVG) BeginPath() {
	s.path.Reset()
	s.hasCurrent = false
}

func (s *SVG) MoveTo(x, y float64) {
	dx, dy := s.matrix.TransformPoint(x, y)
	fmt.Fprintf(&s.path, "M%.3f %.3f ", dx, dy)
	s.hasCurrent = true
	s.start = [2]float64{dx, dy}
}

func (s *SVG) LineTo(x, y float64) {
	if !s.hasCurrent {
		s.MoveTo(x, y)
		return
	}
	dx, dy := s.matrix.TransformPoint(x, y)
	fmt.Fprintf(&s.path, "L%.3f %.3f ", dx, dy)
}

func (s *SVG) QuadraticTo(cx, cy, x, y float64) {
	if !s.hasCurrent {
		s.MoveTo(cx, cy)
	}
	dcx, dcy := s.matrix.TransformPoint(cx, cy)
	dx, dy := s.matrix.TransformPoint(x, y)
	fmt.Fprintf(&s.path, "Q%.3f %.3f %.3f %.3f ", dcx, dcy, dx, dy)
}

func (s *SVG) Arc(cx, cy, r, start, end float64, anticlockwise bool) {
	p0, quads := arcPoints(cx, cy, r, start, ArcSweep(start, end, anticlockwise))
	if s.hasCurrent {
		s.LineTo(p0[0], p0[1])
	} else {
		s.MoveTo(p0[0], p0[1])
	}
	for _, q := range quads {
		s.QuadraticTo(q[0], q[1], q[2], q[3])
	}
}

func (s *SVG) ClosePath() {
	if !s.hasCurrent {
		return
	}
	s.path.WriteString("Z ")
	dx, dy := s.start[0], s.start[1]
	fmt.Fprintf(&s.path, "M%.3f %.3f ", dx, dy)
}

// Stroke writes the current path and keeps it.
func (s *SVG) Stroke() {
	d := strings.TrimSpace(s.path.String())
	if d == "" {
		return
	}
	fmt.Fprintf(&s.body, `  <path d="%s" fill="none" stroke="%s" stroke-width="%.4f"/>`+"\n",
		d, Hex(s.stroke), s.lineWidth*matrixScale(s.matrix))
}

func (s *SVG) FillRect(x, y, w, h float64) {
	s.BeginPath()
	s.MoveTo(x, y)
	s.LineTo(x+w, y)
	s.LineTo(x+w, y+h)
	s.LineTo(x, y+h)
	s.ClosePath()
	fmt.Fprintf(&s.body, `  <path d="%s" fill="%s"/>`+"\n", strings.TrimSpace(s.path.String()), Hex(s.fill))
	s.BeginPath()
}

func (s *SVG) FillText(text string, x, y, size float64) {
	dx, dy := s.matrix.TransformPoint(x, y)
	var esc bytes.Buffer
	xml.EscapeText(&esc, []byte(text))
	fmt.Fprintf(&s.body, `  <text x="%.3f" y="%.3f" font-size="%.2f" font-family="%s" text-anchor="middle" fill="%s">%s</text>`+"\n",
		dx, dy, size*matrixScale(s.matrix), fonts.FallbackFontFamily, Hex(s.fill), esc.String())
}

// Bytes returns the complete SVG document.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		s.width, s.height, s.width, s.height)
	if s.embedFont {
		fmt.Fprintf(&buf, "  <defs><style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }</style></defs>\n",
			fonts.FontFamily, fonts.RegularTTFBase64())
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
