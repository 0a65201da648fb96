package cli

import (
	"invoices/internal/app"

	"github.com/spf13/cobra"
)

var (
	appRun = app.Run
	runApp = appRun
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the YAML config file (default config.yaml if present)")
	return cmd
}
