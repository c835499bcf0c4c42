package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dxfview/pkg/buildinfo"
	"github.com/matzehuels/dxfview/pkg/config"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the root command applies --verbose to the
// logger and loads the config file named by --config (or the default
// location, when it exists).
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "dxfview renders previews of DXF drawings",
		Long: `dxfview renders 2D previews of DXF drawings (or their JSON form).

It computes the drawing extent across nested block references, fits it to a
raster and draws every supported entity: lines, polylines, circles, arcs,
ellipses, splines and block inserts. Drawings with nothing to show render a
placeholder instead of failing.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				c.enableHooks()
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable caching")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.boundsCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.blocksCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
