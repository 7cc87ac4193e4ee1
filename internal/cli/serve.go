package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mithrel/answerview/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP render service",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			addr := app.Cfg.GetString("http_addr")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app.Log.Info().
				Str("addr", addr).
				Bool("auth", app.Cfg.GetString("auth.token") != "").
				Msg("render service listening")
			return server.New(app.Cfg, app.Log).ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().String("listen", "", "listen address (override config http_addr)")
	bindFlagKeys(cmd, map[string]string{"listen": "http_addr"})
	return cmd
}
