// Package config loads ts2mbt settings from defaults, an optional ts2mbt.yaml,
// TS2MBT_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/calumari/ts2mbt/internal/errors"
	"github.com/calumari/ts2mbt/internal/generator"
	"github.com/calumari/ts2mbt/internal/tsast"
)

// Default configuration values.
const (
	defaultMode      = "named"
	defaultDebounce  = 300 * time.Millisecond
	defaultAddr      = ":7420"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
	envPrefix        = "TS2MBT"
	fileName         = "ts2mbt"
)

// Config holds all ts2mbt settings.
type Config struct {
	Inputs []string    `mapstructure:"inputs"`
	Output string      `mapstructure:"output"`
	Mode   string      `mapstructure:"mode"`
	Check  bool        `mapstructure:"check"`
	Watch  WatchConfig `mapstructure:"watch"`
	Serve  ServeConfig `mapstructure:"serve"`
	Log    LogConfig   `mapstructure:"log"`
}

// WatchConfig holds settings of the watch command.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// ServeConfig holds settings of the preview server.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
}

// New returns a viper instance with defaults and environment lookup set up.
// Callers bind flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("inputs", []string{})
	v.SetDefault("output", "")
	v.SetDefault("mode", defaultMode)
	v.SetDefault("check", false)
	v.SetDefault("watch.debounce", defaultDebounce)
	v.SetDefault("serve.addr", defaultAddr)
	v.SetDefault("log.format", defaultLogFormat)
	v.SetDefault("log.level", defaultLogLevel)
}

// Load reads the config file and decodes the merged settings. An empty
// configPath searches the working directory for ts2mbt.yaml, whose absence is
// not an error; an explicit path must exist.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(fileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that decoding cannot.
func (c *Config) Validate() error {
	if _, ok := tsast.ParseMode(c.Mode); !ok {
		return errors.WithHint(errors.Wrapf(errors.ErrInvalidConfig, "mode %q", c.Mode),
			"use named or all")
	}
	if c.Watch.Debounce <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "watch debounce %s must be positive", c.Watch.Debounce)
	}
	if c.Serve.Addr == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "serve address is empty")
	}
	return nil
}

// Generator converts the settings into a generator run configuration.
func (c *Config) Generator(command, version string) generator.Config {
	mode, _ := tsast.ParseMode(c.Mode)
	return generator.Config{
		Inputs:    c.Inputs,
		OutputDir: c.Output,
		Mode:      mode,
		Check:     c.Check,
		Command:   command,
		Version:   version,
	}
}
