package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dpolishuk/repoprofile/backend/internal/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (default: $BACKEND_PORT or 3001)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, svc := newServices(cmd.Context())
	defer svc.Close()

	port := cfg.Port
	if servePort != "" {
		port = servePort
	}

	color.New(color.FgHiCyan, color.Bold).Printf("RepoProfile API listening on :%s\n", port)
	return server.NewApp(svc).Listen(":" + port)
}
