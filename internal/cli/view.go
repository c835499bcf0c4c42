package cli

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dxfview/pkg/drawing"
	"github.com/matzehuels/dxfview/pkg/errors"
	"github.com/matzehuels/dxfview/pkg/pipeline"
	"github.com/matzehuels/dxfview/pkg/render/fallback"
	"github.com/matzehuels/dxfview/pkg/render/surface"
)

// Braille cells are 2 dots wide and 4 dots tall.
const (
	dotsX = 2
	dotsY = 4

	// chromeRows is the number of terminal rows taken by the title and
	// status lines.
	chromeRows = 3

	minCells = 8
)

var (
	viewFrameStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	viewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	viewKeyStyle    = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
)

func (c *CLI) viewCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "view [file.dxf|file.json|url]",
		Short: "Preview a drawing in the terminal",
		Long: `Preview a drawing in the terminal.

The drawing is rasterized to fit the terminal and shown with braille
characters. Press r to rotate by 90°, R to rotate back, q to quit.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDrawing,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runView(cmd.Context(), args[0], opts)
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) runView(ctx context.Context, input string, opts pipeline.Options) error {
	runner, err := c.newRunner(ctx, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	vm := newViewModel(runner, input, opts)
	src, err := runner.Load(ctx, input, false)
	switch {
	case err == nil:
		vm.model = src.Model
	case errors.Is(err, errors.ErrCodeParseFailure):
		vm.message = fallback.MsgParseError
		vm.err = err
	default:
		return err
	}

	_, err = tea.NewProgram(vm, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// viewModel - Interactive preview
// =============================================================================

// viewModel is the bubbletea model of the view command. The bulk rotation
// lives here, not in the drawing.
type viewModel struct {
	runner *pipeline.Runner
	title  string
	opts   pipeline.Options
	model  *drawing.Model

	rotation   float64
	cols, rows int
	frame      []string
	message    string
	entities   int
	err        error
}

func newViewModel(runner *pipeline.Runner, title string, opts pipeline.Options) viewModel {
	return viewModel{
		runner:   runner,
		title:    title,
		opts:     opts,
		rotation: opts.Rotation,
		cols:     80,
		rows:     24 - chromeRows,
	}
}

func (m viewModel) Init() tea.Cmd { return nil }

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r", "right":
			m.rotation = pipeline.Rotate(m.rotation, pipeline.RotationStep)
			m = m.redraw()
		case "R", "left":
			m.rotation = pipeline.Rotate(m.rotation, -pipeline.RotationStep)
			m = m.redraw()
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, minCells)
		m.rows = max(msg.Height-chromeRows, minCells)
		m = m.redraw()
	}
	return m, nil
}

// redraw renders the drawing at the current size and rotation. A parse
// failure recorded at load time is kept as the message.
func (m viewModel) redraw() viewModel {
	if m.model == nil && m.message != "" {
		m.frame = nil
		return m
	}
	opts := m.opts
	opts.Width = m.cols * dotsX
	opts.Height = m.rows * dotsY
	opts.Rotation = m.rotation
	opts.Formats = nil

	rec, fr, message, err := m.runner.Record(m.model, opts)
	if err != nil && rec == nil {
		m.err = err
		m.frame = nil
		return m
	}
	m.err = err
	m.message = message
	m.entities = len(fr.Entities)

	canvas := surface.NewCanvas(opts.Width, opts.Height)
	rec.Replay(canvas)
	m.frame = braille(canvas.Image(), m.cols, m.rows)
	return m
}

func (m viewModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")

	switch {
	case m.frame != nil && m.message == "":
		b.WriteString(viewFrameStyle.Render(strings.Join(m.frame, "\n")))
	case m.message != "":
		b.WriteString(StyleWarning.Render(m.message))
		if m.err != nil {
			b.WriteString("\n" + StyleDim.Render(m.err.Error()))
		}
	case m.err != nil:
		b.WriteString(StyleWarning.Render(m.err.Error()))
	default:
		b.WriteString(StyleDim.Render("loading..."))
	}

	b.WriteString("\n")
	status := fmt.Sprintf("%g° · %d entities · ", m.rotation, m.entities)
	b.WriteString(viewStatusStyle.Render(status))
	b.WriteString(viewKeyStyle.Render("r") + viewStatusStyle.Render(" rotate  "))
	b.WriteString(viewKeyStyle.Render("q") + viewStatusStyle.Render(" quit"))
	return b.String()
}

// =============================================================================
// Braille Conversion
// =============================================================================

// brailleBits maps a dot position within a cell to its bit in U+2800.
var brailleBits = [dotsY][dotsX]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// braille converts img into cols×rows braille cells. A dot is set where
// the pixel is darker than mid-grey, so strokes show and the background
// and placeholder fill do not.
func braille(img image.Image, cols, rows int) []string {
	bounds := img.Bounds()
	lines := make([]string, rows)
	var sb strings.Builder
	for row := range rows {
		sb.Reset()
		for col := range cols {
			cell := rune(0x2800)
			for dy := range dotsY {
				for dx := range dotsX {
					x := bounds.Min.X + col*dotsX + dx
					y := bounds.Min.Y + row*dotsY + dy
					if x < bounds.Max.X && y < bounds.Max.Y && ink(img.At(x, y)) {
						cell |= brailleBits[dy][dx]
					}
				}
			}
			sb.WriteRune(cell)
		}
		lines[row] = sb.String()
	}
	return lines
}

func ink(c color.Color) bool {
	g := color.GrayModel.Convert(c).(color.Gray)
	_, _, _, a := c.RGBA()
	return a > 0x8000 && g.Y < 0x80
}
