package commands

import (
	"github.com/spf13/cobra"

	"github.com/calumari/ts2mbt/internal/logger"
	"github.com/calumari/ts2mbt/internal/mcpserver"
	"github.com/calumari/ts2mbt/internal/tsast"
)

func (a *app) mcpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start an MCP server on stdio",
		Long: `Start a Model Context Protocol server on stdio transport. It exposes one
tool, transpile_typescript, which takes TypeScript source and returns the
generated MoonBit. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd, args, map[string]string{"mode": "mode"})
			if err != nil {
				return err
			}
			defer logger.Sync()

			mode, _ := tsast.ParseMode(cfg.Mode)
			return mcpserver.New(a.version, mode, logger.Named("mcp")).Serve()
		},
	}

	cmd.Flags().String("mode", "named", "default traversal mode: named or all")
	return cmd
}
