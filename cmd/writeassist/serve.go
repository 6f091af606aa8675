package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"writeassist/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the document over a JSON HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = a.cfg.Server.Addr
	}
	return server.Run(ctx, a.newSession(), server.Options{
		Addr:           addr,
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
		Version:        version,
	})
}
