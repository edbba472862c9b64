package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/calumari/ts2mbt/internal/errors"
	"github.com/calumari/ts2mbt/internal/generator"
	"github.com/calumari/ts2mbt/internal/logger"
	"github.com/calumari/ts2mbt/internal/watch"
)

func (a *app) watchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Regenerate whenever TypeScript inputs change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd, args, map[string]string{
				"output":         "output",
				"mode":           "mode",
				"watch.debounce": "debounce",
			})
			if err != nil {
				return err
			}
			defer logger.Sync()

			gc := cfg.Generator(displayCommand("gen", cfg), a.version)
			gc.Check = false
			gc.Stdout = cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			w, err := watch.New(gc, cfg.Watch.Debounce,
				watch.WithLogger(logger.Named("watch")),
				watch.OnResult(func(r *generator.Report, err error) {
					if err != nil {
						fmt.Fprintf(errOut, "%s %s\n", color.RedString("error:"), errors.UserMessage(err))
						return
					}
					fmt.Fprintf(errOut, "%s regenerated %d file(s)\n", color.GreenString("ok"), len(r.Files))
				}),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return w.Run(ctx)
		},
	}

	cmd.Flags().StringP("output", "o", "", "output directory (default stdout)")
	cmd.Flags().String("mode", "named", "traversal mode: named or all")
	cmd.Flags().Duration("debounce", 0, "quiet period before regenerating (default 300ms)")
	return cmd
}
