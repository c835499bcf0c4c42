package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dxfview/pkg/pipeline"
)

// boundsReport is the --json output of the bounds command.
type boundsReport struct {
	Source     string  `json:"source"`
	Entities   int     `json:"entities"`
	HasVisible bool    `json:"has_visible"`
	MinX       float64 `json:"min_x"`
	MinY       float64 `json:"min_y"`
	MaxX       float64 `json:"max_x"`
	MaxY       float64 `json:"max_y"`
	Scale      float64 `json:"scale"`
	OffsetX    float64 `json:"offset_x"`
	OffsetY    float64 `json:"offset_y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Skipped    int     `json:"skipped"`
}

func (c *CLI) boundsCommand() *cobra.Command {
	var (
		flags  renderFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "bounds [file.dxf|file.json|url]",
		Short: "Print the drawing extent and raster fit",
		Long: `Print the drawing extent and raster fit.

Bounds are computed over every visible entity, following block inserts
through their position, rotation and scale. The fit is the uniform scale and
offset that centers the drawing on the raster with a margin.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDrawing,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runBounds(cmd.Context(), args[0], opts, asJSON)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON report")
	return cmd
}

func (c *CLI) runBounds(ctx context.Context, input string, opts pipeline.Options, asJSON bool) error {
	runner, err := c.newRunner(ctx, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	src, err := runner.Load(ctx, input, false)
	if err != nil {
		return err
	}
	fr := pipeline.ComputeFrame(src.Model, opts)
	for _, e := range fr.Skipped {
		c.Logger.Warn("skipped entity", "error", e)
	}

	report := boundsReport{
		Source:     input,
		Entities:   len(fr.Entities),
		HasVisible: fr.Message == "",
		MinX:       fr.Bounds.MinX,
		MinY:       fr.Bounds.MinY,
		MaxX:       fr.Bounds.MaxX,
		MaxY:       fr.Bounds.MaxY,
		Scale:      fr.Fit.Scale,
		OffsetX:    fr.Fit.OffsetX,
		OffsetY:    fr.Fit.OffsetY,
		Width:      opts.Width,
		Height:     opts.Height,
		Skipped:    len(fr.Skipped),
	}
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Println(StyleTitle.Render(input))
	if !report.HasVisible {
		printWarning("%s", fr.Message)
		return nil
	}
	printKeyValue("entities", fmt.Sprint(report.Entities))
	printKeyValue("min", fmt.Sprintf("(%g, %g)", report.MinX, report.MinY))
	printKeyValue("max", fmt.Sprintf("(%g, %g)", report.MaxX, report.MaxY))
	printKeyValue("size", fmt.Sprintf("%g × %g", fr.Bounds.Width(), fr.Bounds.Height()))
	printKeyValue("fit scale", fmt.Sprintf("%.6g", report.Scale))
	printKeyValue("fit offset", fmt.Sprintf("(%.6g, %.6g)", report.OffsetX, report.OffsetY))
	printKeyValue("raster", fmt.Sprintf("%d × %d", report.Width, report.Height))
	if report.Skipped > 0 {
		printKeyValue("skipped", StyleWarning.Render(fmt.Sprint(report.Skipped)))
	}
	return nil
}
