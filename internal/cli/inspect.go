package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dxfview/pkg/drawing"
	dxio "github.com/matzehuels/dxfview/pkg/io"
)

func (c *CLI) inspectCommand() *cobra.Command {
	var (
		asJSON bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "inspect [file.dxf|file.json|url]",
		Short: "Summarize entities and blocks",
		Long: `Summarize the entities and blocks of a drawing.

With --json the parsed drawing is written as JSON instead, which 'render'
and the server accept as input.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDrawing,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], asJSON, output)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "write the parsed drawing as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file for --json (default stdout)")
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, asJSON bool, output string) error {
	runner, err := c.newRunner(ctx, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	src, err := runner.Load(ctx, input, false)
	if err != nil {
		return err
	}
	m := src.Model

	if asJSON {
		if output != "" {
			if err := dxio.ExportJSON(m, output); err != nil {
				return err
			}
			printFile(output)
			return nil
		}
		return dxio.WriteJSON(m, os.Stdout)
	}

	stats := m.Stats()
	fmt.Println(StyleTitle.Render(input))
	printKeyValue("format", src.Format)
	printKeyValue("entities", StyleNumber.Render(fmt.Sprint(stats.Entities)))
	printKeyValue("blocks", StyleNumber.Render(fmt.Sprint(stats.Blocks)))
	if stats.Hidden > 0 {
		printKeyValue("hidden", fmt.Sprint(stats.Hidden))
	}

	kinds := make([]drawing.Kind, 0, len(stats.ByKind))
	for k := range stats.ByKind {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	for _, k := range kinds {
		printDetail("%-11s %d", k, stats.ByKind[k])
	}

	for _, name := range m.Blocks.Names() {
		printInfo("block %s %s", StyleValue.Render(name), StyleDim.Render(fmt.Sprintf("(%d entities)", len(m.Blocks[name].Entities))))
	}
	for _, ref := range m.References() {
		from := ref.From
		if from == "" {
			from = "<model>"
		}
		line := fmt.Sprintf("%s %s %s ×%d", from, iconArrow, ref.To, ref.Count)
		if _, ok := m.Blocks.Lookup(ref.To); !ok {
			printWarning("%s (unresolved)", line)
			continue
		}
		printDetail("%s", line)
	}
	if len(m.References()) > 0 {
		printNextStep("Graph the references", fmt.Sprintf("%s blocks %s", appName, input))
	}
	return nil
}
