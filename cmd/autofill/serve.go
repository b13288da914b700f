package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-autofill/internal/server"
)

func newServeCmd(g *globals) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local message server for the browser extension",
		Long: `Start an HTTP server on localhost that accepts extension messages on
POST /message and answers with {success, ...} JSON. AI actions are rate limited.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := g.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = g.cfg.Server.Addr
			}
			srv := server.New(server.Config{
				Addr:           addr,
				AllowedOrigins: g.cfg.Server.AllowedOrigins,
				RateLimit:      g.cfg.Server.RateLimit,
			}, a.handler, g.logger)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
