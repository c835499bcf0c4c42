package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dxfview/pkg/pipeline"
)

// =============================================================================
// Shared Render Flags
// =============================================================================

// renderFlags holds the flags shared by render, bounds and view. Values the
// user did not set fall back to the config file.
type renderFlags struct {
	size        int
	width       int
	height      int
	rotate      float64
	background  string
	stroke      string
	lineweights bool
	isolate     bool
	maxDepth    int
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVarP(&f.size, "size", "s", pipeline.DefaultSize, "raster width and height in pixels")
	fl.IntVar(&f.width, "width", 0, "raster width in pixels (overrides --size)")
	fl.IntVar(&f.height, "height", 0, "raster height in pixels (overrides --size)")
	fl.Float64VarP(&f.rotate, "rotate", "r", 0, "rotation in degrees (multiple of 90)")
	fl.StringVar(&f.background, "background", pipeline.DefaultBackground, "background color (#rrggbb)")
	fl.StringVar(&f.stroke, "stroke", pipeline.DefaultStroke, "stroke color (#rrggbb)")
	fl.BoolVar(&f.lineweights, "lineweights", true, "honour entity line weights")
	fl.BoolVar(&f.isolate, "isolate", false, "skip failing entities instead of drawing the error placeholder")
	fl.IntVar(&f.maxDepth, "max-depth", 0, "maximum block nesting depth (0 = default)")
}

// options merges the flags the user set over the config file defaults.
func (c *CLI) options(cmd *cobra.Command, f *renderFlags) (pipeline.Options, error) {
	opts, err := c.Config.Options()
	if err != nil {
		return opts, err
	}
	fl := cmd.Flags()
	if fl.Changed("size") {
		opts.Width, opts.Height = f.size, f.size
	}
	if fl.Changed("width") {
		opts.Width = f.width
		if !fl.Changed("height") && !fl.Changed("size") {
			opts.Height = f.width
		}
	}
	if fl.Changed("height") {
		opts.Height = f.height
	}
	if fl.Changed("rotate") {
		opts.Rotation = f.rotate
	}
	if fl.Changed("background") {
		opts.Background = f.background
	}
	if fl.Changed("stroke") {
		opts.Stroke = f.stroke
	}
	if fl.Changed("lineweights") {
		opts.IgnoreLineweights = !f.lineweights
	}
	if fl.Changed("isolate") {
		opts.Isolate = f.isolate
	}
	if fl.Changed("max-depth") {
		opts.MaxDepth = f.maxDepth
	}
	opts.Logger = c.Logger
	return opts, nil
}

// =============================================================================
// Render Command
// =============================================================================

func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      renderFlags
		formatsStr string
		output     string
		scale      float64
		quality    int
		embedFont  bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [file.dxf|file.json|url]",
		Short: "Render a drawing preview",
		Long: `Render a drawing preview.

The input may be an ASCII DXF file, a JSON drawing (as written by 'inspect
--json') or an http(s) URL to either. Output formats are png (default), jpeg,
svg, pdf and json; json holds the recorded drawing calls with the bounds and
fit transform.

With a single format, --output names the file ("-" writes to stdout). With
several formats it is the base path and each format gets its extension.

Drawings that cannot be parsed, have nothing visible, or fail to render still
produce a preview: a placeholder with the reason.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDrawing,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			if f := parseFormats(formatsStr); len(f) > 0 {
				opts.Formats = f
			}
			opts.Scale = scale
			opts.Quality = quality
			opts.EmbedFont = embedFont
			opts.Refresh = refresh
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), jpeg, svg, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().Float64Var(&scale, "scale", 0, "pixel density for png/jpeg (default 1)")
	cmd.Flags().IntVar(&quality, "quality", 0, "jpeg quality 1-100 (default 90)")
	cmd.Flags().BoolVar(&embedFont, "embed-font", false, "embed the placeholder font in svg output")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string) error {
	runner, err := c.newRunner(ctx, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	toStdout := output == "-"
	if toStdout && len(opts.Formats) != 1 {
		return fmt.Errorf("--output - needs exactly one format, got %d", len(opts.Formats))
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()
	res, err := runner.Run(ctx, input, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if toStdout {
		_, err := os.Stdout.Write(res.Artifacts[opts.Formats[0]])
		return err
	}

	if res.Fallback {
		printWarning("%s", res.Message)
		if res.Err != nil {
			printDetail("%v", res.Err)
		}
	}
	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}
	printSuccess("Rendered %s", input)
	for _, p := range paths {
		printFile(p)
	}
	printStats(res)
	prog.done("render complete")
	return nil
}

// =============================================================================
// Artifact Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes one file per format and returns the paths written.
// A single format goes to output verbatim when it is set; otherwise each
// format is written to base.format.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if len(p.formats) == 1 && p.output != "" {
		if err := os.WriteFile(p.output, p.artifacts[p.formats[0]], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.output, err)
		}
		return []string{p.output}, nil
	}

	base := basePath(p.output, p.input)
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
