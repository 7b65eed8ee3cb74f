package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/DavidGslade86/VCFEstimator/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve projections over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverSettings := settings.Server
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			serverSettings.Address = addr
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(serverSettings, logger, version).ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.address)")

	rootCmd.AddCommand(serveCmd)
}
