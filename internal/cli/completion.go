package cli

import (
	"github.com/spf13/cobra"
)

// drawingExtensions are offered when completing a drawing argument.
var drawingExtensions = []string{"dxf", "DXF", "json"}

// completeDrawing completes the single drawing argument of render, bounds,
// inspect, blocks and view with DXF and JSON files.
func completeDrawing(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return drawingExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for dxfview.

Bash:
  $ source <(dxfview completion bash)

Zsh:
  $ dxfview completion zsh > "${fpath[1]}/_dxfview"

Fish:
  $ dxfview completion fish > ~/.config/fish/completions/dxfview.fish

PowerShell:
  PS> dxfview completion powershell | Out-String | Invoke-Expression

Drawing arguments complete to .dxf and .json files.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
