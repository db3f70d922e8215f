package cli

import (
	"github.com/spf13/cobra"

	"github.com/iishyfishyy/sketchflow/internal/preview"
)

// previewCommand creates the preview command running the live-preview
// HTTP server.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Run the browser live-preview server",
		Long: `Run the browser live-preview server.

Serves a minimal editor page that renders the diagram as you type:
  GET  /        the editor page
  POST /render  diagram JSON in, image/svg+xml out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := c.newRunner(noCache)
			defer runner.Close()

			printInfo("preview server listening on http://%s", addr)
			srv := preview.NewServer(runner, c.Logger)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Addr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
