package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dxfview/pkg/pipeline"
)

func (c *CLI) blocksCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "blocks [file.dxf|file.json|url]",
		Short: "Draw the block reference graph",
		Long: `Draw the block reference graph.

Nodes are blocks plus the model itself; edges are INSERT references labelled
with their count. References to missing blocks are dashed and reference
cycles are highlighted. Formats: dot (default, no Graphviz needed), svg, png,
pdf.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDrawing,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBlocks(cmd.Context(), args[0], format, output, detailed)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.GraphFormatDOT, "output format: dot, svg, png, pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout for dot, <input>_blocks.<format> otherwise)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label blocks with entity counts")
	return cmd
}

func (c *CLI) runBlocks(ctx context.Context, input, format, output string, detailed bool) error {
	runner, err := c.newRunner(ctx, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	src, err := runner.Load(ctx, input, false)
	if err != nil {
		return err
	}
	data, err := pipeline.RenderBlockGraph(src.Model, format, detailed)
	if err != nil {
		return err
	}

	if output == "" && format == pipeline.GraphFormatDOT {
		_, err := os.Stdout.Write(data)
		return err
	}
	if output == "" {
		output = basePath("", input) + "_blocks." + format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Block graph written")
	printFile(output)
	return nil
}
