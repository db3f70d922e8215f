package cli

import (
	"github.com/spf13/cobra"

	"github.com/iishyfishyy/sketchflow/internal/mcp"
)

// serveCommand creates the serve command running the MCP stdio server.
func (c *CLI) serveCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long: `Run the MCP (Model Context Protocol) server on stdio.

The server exposes two tools to assistant clients:
  - diagram.generate: render a diagram definition to SVG (optionally PNG)
  - diagram.validate: check a definition against the schema without rendering

Wire it into an MCP client configuration as a stdio command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := c.newRunner(noCache)
			defer runner.Close()

			c.Logger.Info("starting MCP server on stdio")
			srv := mcp.NewServer(runner, c.Logger)
			return srv.Serve(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
