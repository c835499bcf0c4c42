package surface

import (
	"image/color"

	"github.com/fogleman/gg"
)

// Op names a recorded surface call.
type Op string

const (
	OpSave        Op = "save"
	OpRestore     Op = "restore"
	OpTranslate   Op = "translate"
	OpRotate      Op = "rotate"
	OpScale       Op = "scale"
	OpLineWidth   Op = "line_width"
	OpStrokeColor Op = "stroke_color"
	OpFillColor   Op = "fill_color"
	OpBeginPath   Op = "begin_path"
	OpMoveTo      Op = "move_to"
	OpLineTo      Op = "line_to"
	OpQuadratic   Op = "quadratic_to"
	OpArc         Op = "arc"
	OpClosePath   Op = "close_path"
	OpStroke      Op = "stroke"
	OpFillRect    Op = "fill_rect"
	OpFillText    Op = "fill_text"
)

// Command is one recorded call.
//
// Args holds the call arguments as given, in user space. For path calls
// Device holds the points mapped through the transform in effect (end points
// for moves and lines, control then end point for curves, the center for
// arcs). For strokes Device holds the stroke width in device pixels.
type Command struct {
	Op     Op        `json:"op"`
	Args   []float64 `json:"args,omitempty"`
	Text   string    `json:"text,omitempty"`
	Device []float64 `json:"device,omitempty"`
}

// Recorder is a [Surface] that records calls instead of drawing.
type Recorder struct {
	width, height int
	matrix        gg.Matrix
	lineWidth     float64
	saved         []recorderState
	commands      []Command
}

type recorderState struct {
	matrix    gg.Matrix
	lineWidth float64
}

// NewRecorder returns an empty recorder for a width×height surface.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height, matrix: gg.Identity(), lineWidth: 1}
}

// Commands returns the recorded calls in order.
func (r *Recorder) Commands() []Command { return r.commands }

// Reset drops all recorded calls and state.
func (r *Recorder) Reset() {
	*r = *NewRecorder(r.width, r.height)
}

// Depth returns the number of unmatched Save calls.
func (r *Recorder) Depth() int { return len(r.saved) }

// Count returns the number of recorded calls with the given op.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (r *Recorder) Width() int  { return r.width }
func (r *Recorder) Height() int { return r.height }

func (r *Recorder) Save() {
	r.saved = append(r.saved, recorderState{matrix: r.matrix, lineWidth: r.lineWidth})
	r.record(OpSave, nil, "", nil)
}

func (r *Recorder) Restore() {
	r.record(OpRestore, nil, "", nil)
	if len(r.saved) == 0 {
		return
	}
	s := r.saved[len(r.saved)-1]
	r.saved = r.saved[:len(r.saved)-1]
	r.matrix, r.lineWidth = s.matrix, s.lineWidth
}

func (r *Recorder) Translate(x, y float64) {
	r.matrix = r.matrix.Translate(x, y)
	r.record(OpTranslate, []float64{x, y}, "", nil)
}

func (r *Recorder) Rotate(angle float64) {
	r.matrix = r.matrix.Rotate(angle)
	r.record(OpRotate, []float64{angle}, "", nil)
}

func (r *Recorder) Scale(sx, sy float64) {
	r.matrix = r.matrix.Scale(sx, sy)
	r.record(OpScale, []float64{sx, sy}, "", nil)
}

func (r *Recorder) SetLineWidth(w float64) {
	r.lineWidth = w
	r.record(OpLineWidth, []float64{w}, "", nil)
}

func (r *Recorder) LineWidth() float64 { return r.lineWidth }

func (r *Recorder) SetStrokeColor(c color.Color) { r.record(OpStrokeColor, nil, Hex(c), nil) }
func (r *Recorder) SetFillColor(c color.Color)   { r.record(OpFillColor, nil, Hex(c), nil) }
func (r *Recorder) BeginPath()                   { r.record(OpBeginPath, nil, "", nil) }
func (r *Recorder) ClosePath()                   { r.record(OpClosePath, nil, "", nil) }

func (r *Recorder) MoveTo(x, y float64) {
	r.record(OpMoveTo, []float64{x, y}, "", r.device(x, y))
}

func (r *Recorder) LineTo(x, y float64) {
	r.record(OpLineTo, []float64{x, y}, "", r.device(x, y))
}

func (r *Recorder) QuadraticTo(cx, cy, x, y float64) {
	r.record(OpQuadratic, []float64{cx, cy, x, y}, "", r.device(cx, cy, x, y))
}

func (r *Recorder) Arc(cx, cy, rad, start, end float64, anticlockwise bool) {
	acw := 0.0
	if anticlockwise {
		acw = 1
	}
	r.record(OpArc, []float64{cx, cy, rad, start, end, acw}, "", r.device(cx, cy))
}

func (r *Recorder) Stroke() {
	r.record(OpStroke, nil, "", []float64{r.lineWidth * matrixScale(r.matrix)})
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.record(OpFillRect, []float64{x, y, w, h}, "", r.device(x, y, x+w, y+h))
}

func (r *Recorder) FillText(text string, x, y, size float64) {
	r.record(OpFillText, []float64{x, y, size}, text, r.device(x, y))
}

func (r *Recorder) device(xy ...float64) []float64 {
	out := make([]float64, len(xy))
	for i := 0; i+1 < len(xy); i += 2 {
		out[i], out[i+1] = r.matrix.TransformPoint(xy[i], xy[i+1])
	}
	return out
}

func (r *Recorder) record(op Op, args []float64, text string, device []float64) {
	r.commands = append(r.commands, Command{Op: op, Args: args, Text: text, Device: device})
}

// Replay issues the recorded calls on s in order.
func (r *Recorder) Replay(s Surface) {
	for _, c := range r.commands {
		replay(s, c)
	}
}

func replay(s Surface, c Command) {
	a := c.Args
	switch c.Op {
	case OpSave:
		s.Save()
	case OpRestore:
		s.Restore()
	case OpTranslate:
		s.Translate(a[0], a[1])
	case OpRotate:
		s.Rotate(a[0])
	case OpScale:
		s.Scale(a[0], a[1])
	case OpLineWidth:
		s.SetLineWidth(a[0])
	case OpStrokeColor:
		s.SetStrokeColor(ParseHex(c.Text))
	case OpFillColor:
		s.SetFillColor(ParseHex(c.Text))
	case OpBeginPath:
		s.BeginPath()
	case OpMoveTo:
		s.MoveTo(a[0], a[1])
	case OpLineTo:
		s.LineTo(a[0], a[1])
	case OpQuadratic:
		s.QuadraticTo(a[0], a[1], a[2], a[3])
	case OpArc:
		s.Arc(a[0], a[1], a[2], a[3], a[4], a[5] != 0)
	case OpClosePath:
		s.ClosePath()
	case OpStroke:
		s.Stroke()
	case OpFillRect:
		s.FillRect(a[0], a[1], a[2], a[3])
	case OpFillText:
		s.FillText(c.Text, a[0], a[1], a[2])
	}
}
