package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/calumari/ts2mbt/internal/logger"
	"github.com/calumari/ts2mbt/internal/preview"
	"github.com/calumari/ts2mbt/internal/tsast"
)

func (a *app) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve live transpilation over a websocket",
		Long: `Start an HTTP server with a websocket endpoint at /ws. Every text message
is transpiled as a TypeScript source and answered with JSON:

  {"code": "...", "enums": [...], "aliases": [...], "error": ""}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd, args, map[string]string{
				"serve.addr": "addr",
				"mode":       "mode",
			})
			if err != nil {
				return err
			}
			defer logger.Sync()

			mode, _ := tsast.ParseMode(cfg.Mode)
			srv := preview.New(preview.WithMode(mode), preview.WithLogger(logger.Named("preview")))
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, cfg.Serve.Addr)
		},
	}

	cmd.Flags().String("addr", ":7420", "listen address")
	cmd.Flags().String("mode", "named", "traversal mode: named or all")
	return cmd
}
