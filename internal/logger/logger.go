package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/calumari/ts2mbt/internal/errors"
)

var (
	// Logger is the process-wide logger. It is a no-op until Initialize runs.
	Logger *zap.SugaredLogger
	// JSONOutput reports whether Initialize selected the JSON encoder.
	JSONOutput bool
)

func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize replaces the global logger. format is "console" or "json";
// level is any zap level name. Logs go to stderr so generated code on stdout
// stays clean.
func Initialize(format, level string) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return errors.WithHint(errors.Wrapf(errors.ErrInvalidConfig, "log level %q", level),
			"use one of debug, info, warn, error")
	}

	var enc zapcore.Encoder
	switch strings.ToLower(format) {
	case "json":
		JSONOutput = true
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case "", "console":
		JSONOutput = false
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	default:
		return errors.WithHint(errors.Wrapf(errors.ErrInvalidConfig, "log format %q", format),
			"use console or json")
	}

	Logger = zap.New(zapcore.NewCore(enc, zapcore.Lock(os.Stderr), lvl)).Sugar()
	return nil
}

// Named returns a child of the global logger.
func Named(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func Sync() {
	_ = Logger.Sync()
}
