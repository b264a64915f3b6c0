package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rccgrog/rogsite/internal/server"
)

func newServeCmd() *cobra.Command {
	var listen string
	var tlsMode string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the section content HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			app.Log.Info("starting server",
				zap.String("http_addr", app.Cfg.GetString("http_addr")),
				zap.String("tls_mode", app.Cfg.GetString("tls.mode")))
			return server.New(app.Cfg, app.Store, app.Log).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (override config http_addr)")
	cmd.Flags().StringVar(&tlsMode, "tls.mode", "", "TLS mode: off|file|auto (override config)")
	return cmd
}
