package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calumari/ts2mbt/internal/errors"
	"github.com/calumari/ts2mbt/internal/tsast"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ts2mbt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "named", cfg.Mode)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, ":7420", cfg.Serve.Addr)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Check)
	assert.Empty(t, cfg.Inputs)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `inputs:
  - types
  - extra/api.d.ts
output: gen
mode: all
check: true
watch:
  debounce: 1s
serve:
  addr: 127.0.0.1:9000
log:
  level: debug
`)
	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"types", "extra/api.d.ts"}, cfg.Inputs)
	assert.Equal(t, "gen", cfg.Output)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, "127.0.0.1:9000", cfg.Serve.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	gen := cfg.Generator("ts2mbt gen", "v1.2.3")
	assert.Equal(t, tsast.ModeAll, gen.Mode)
	assert.Equal(t, "gen", gen.OutputDir)
	assert.True(t, gen.Check)
	assert.Equal(t, "ts2mbt gen", gen.Command)
	assert.Equal(t, "v1.2.3", gen.Version)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("TS2MBT_LOG_LEVEL", "warn")
	t.Setenv("TS2MBT_WATCH_DEBOUNCE", "50ms")
	path := writeConfig(t, "log:\n  level: debug\n")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.False(t, errors.Is(err, errors.ErrInvalidConfig))
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := Load(New(), writeConfig(t, "mode: sideways\n"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
		assert.Contains(t, errors.FlattenHints(err), "named or all")
	})

	t.Run("non positive debounce", func(t *testing.T) {
		_, err := Load(New(), writeConfig(t, "watch:\n  debounce: 0s\n"))
		assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	})

	t.Run("empty serve address", func(t *testing.T) {
		_, err := Load(New(), writeConfig(t, "serve:\n  addr: \"\"\n"))
		assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	})
}
