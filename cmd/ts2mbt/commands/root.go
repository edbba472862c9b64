// Package commands implements the ts2mbt command line.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/calumari/ts2mbt/internal/config"
	"github.com/calumari/ts2mbt/internal/errors"
	"github.com/calumari/ts2mbt/internal/logger"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	version    string
	configPath string
	v          *viper.Viper
}

// NewRootCommand builds the ts2mbt command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version, v: config.New()}

	root := &cobra.Command{
		Use:   "ts2mbt",
		Short: "Generate MoonBit bindings from TypeScript declarations",
		Long: `ts2mbt reads TypeScript interfaces and type aliases and writes MoonBit
structs, enums, type aliases and extern "js" shims for them.

Commands:
  gen      Transpile files or directories once
  watch    Regenerate whenever inputs change
  serve    Live preview over a websocket
  mcp      Model Context Protocol server on stdio`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./ts2mbt.yaml when present)")
	root.PersistentFlags().String("log-format", "console", "log format: console or json")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(a.genCommand())
	root.AddCommand(a.watchCommand())
	root.AddCommand(a.serveCommand())
	root.AddCommand(a.mcpCommand())
	root.AddCommand(a.versionCommand())
	return root
}

// load binds the flags of cmd onto their config keys, reads the merged
// configuration and initializes logging. Positional args replace the
// configured inputs.
func (a *app) load(cmd *cobra.Command, args []string, keys map[string]string) (*config.Config, error) {
	bind := map[string]string{"log.format": "log-format", "log.level": "log-level"}
	for key, flag := range keys {
		bind[key] = flag
	}
	for key, flag := range bind {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return nil, errors.Newf("flag --%s is not defined on %s", flag, cmd.Name())
		}
		if err := a.v.BindPFlag(key, f); err != nil {
			return nil, errors.Wrapf(err, "bind flag --%s", flag)
		}
	}

	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Inputs = args
	}
	if err := logger.Initialize(cfg.Log.Format, cfg.Log.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}
