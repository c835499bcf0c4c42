package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dxfview/pkg/cache"
	"github.com/matzehuels/dxfview/pkg/server"
)

// serverKeyPrefix keeps server cache entries apart from CLI entries when
// both share a backend.
const serverKeyPrefix = "srv:"

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve previews over HTTP",
		Long: `Serve previews over HTTP.

  POST /v1/render?format=png&size=800&rotate=90   body: DXF or JSON drawing
  POST /v1/bounds?size=800                        body: DXF or JSON drawing
  GET  /healthz

Render defaults come from the [render] section of the config file; the
listen address from [server] addr unless --addr is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	defaults, err := c.Config.Options()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cache.NewScopedKeyer(nil, serverKeyPrefix))
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := server.New(runner,
		server.WithLogger(c.Logger),
		server.WithDefaults(defaults),
		server.WithMaxBody(c.Config.Server.MaxBody),
	)
	printInfo("Serving on %s", StyleValue.Render(addr))
	return srv.ListenAndServe(ctx, addr)
}
