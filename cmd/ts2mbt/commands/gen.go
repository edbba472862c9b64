package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/calumari/ts2mbt/internal/check"
	"github.com/calumari/ts2mbt/internal/config"
	"github.com/calumari/ts2mbt/internal/generator"
	"github.com/calumari/ts2mbt/internal/logger"
)

func (a *app) genCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen [paths...]",
		Short: "Transpile TypeScript files or directories",
		Long: `Transpile every .ts and .d.ts file under the given paths. Each input
produces one .mbt file in the output directory, mirroring the input layout.
Without -o the generated code is printed to stdout.

With --check nothing is written; the command fails and prints a diff when
any generated file on disk is out of date.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd, args, map[string]string{
				"output": "output",
				"mode":   "mode",
				"check":  "check",
			})
			if err != nil {
				return err
			}
			defer logger.Sync()

			gc := cfg.Generator(displayCommand("gen", cfg), a.version)
			gc.Stdout = cmd.OutOrStdout()
			report, err := generator.Run(cmd.Context(), gc, generator.WithLogger(logger.Named("generator")))
			if report != nil && cfg.Check {
				out := cmd.OutOrStdout()
				for _, f := range report.Stale() {
					check.Print(out, f.Diff)
				}
				if err == nil {
					fmt.Fprintf(out, "%s %d file(s) up to date\n", color.GreenString("ok"), len(report.Files))
				}
			}
			return err
		},
	}

	cmd.Flags().StringP("output", "o", "", "output directory (default stdout)")
	cmd.Flags().String("mode", "named", "traversal mode: named or all")
	cmd.Flags().Bool("check", false, "compare with existing output instead of writing")
	return cmd
}

// displayCommand renders a canonical command line for generated headers,
// independent of how the binary was invoked.
func displayCommand(sub string, cfg *config.Config) string {
	parts := []string{"ts2mbt", sub}
	parts = append(parts, cfg.Inputs...)
	if cfg.Output != "" {
		parts = append(parts, "-o", cfg.Output)
	}
	if cfg.Mode != "" && cfg.Mode != "named" {
		parts = append(parts, "--mode="+cfg.Mode)
	}
	return strings.Join(parts, " ")
}
