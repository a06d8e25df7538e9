package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/iconsvg/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		sets []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve icons over HTTP",
		Long: `Serve icons over HTTP:

  GET /{prefix}/{name}.svg?height=32&rotate=90deg&color=%23f00
  GET /{prefix}.json?icons=home,account
  GET /{prefix}
  GET /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, sets)
			if err != nil {
				return err
			}
			defer runner.Close()

			if addr == "" {
				addr = c.config.Server.Addr
			}
			remote := "enabled"
			if runner.Loader == nil {
				remote = "disabled"
			}
			printKeyValue("Address", addr)
			printKeyValue("Icon sets", strings.Join(runner.Registry.Prefixes(), ", "))
			printKeyValue("Remote API", remote)
			printKeyValue("Cache", c.config.Cache.Backend)
			return server.New(runner, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "icon set JSON file (repeatable)")
	return cmd
}
