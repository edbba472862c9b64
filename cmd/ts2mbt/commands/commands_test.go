package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calumari/ts2mbt/internal/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("v0.0.0-test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeSource(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestGenCommand(t *testing.T) {
	t.Run("prints to stdout without an output dir", func(t *testing.T) {
		path := writeSource(t, "shape.ts", "export type Size = number;\n")
		out, err := execute(t, "gen", path)
		require.NoError(t, err)
		assert.Contains(t, out, "// Code generated by ts2mbt v0.0.0-test. DO NOT EDIT.\n")
		assert.Contains(t, out, "// command: ts2mbt gen "+path+"\n")
		assert.Contains(t, out, "pub(all) typealias Size = Double\n")
	})

	t.Run("writes files and checks them", func(t *testing.T) {
		path := writeSource(t, "shape.ts", "interface Shape { area(): number; }\n")
		dir := t.TempDir()

		_, err := execute(t, "gen", path, "-o", dir, "--mode", "all")
		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "shape.mbt"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "--mode=all")
		assert.Contains(t, string(data), "extern \"js\" fn Shape::area(self : Shape) -> Double =\n")

		out, err := execute(t, "gen", path, "-o", dir, "--mode", "all", "--check")
		require.NoError(t, err)
		assert.Contains(t, out, "1 file(s) up to date")

		require.NoError(t, os.WriteFile(path, []byte("interface Shape { area(): string; }\n"), 0o644))
		out, err = execute(t, "gen", path, "-o", dir, "--mode", "all", "--check")
		require.Error(t, err)
		assert.True(t, errors.IsStale(err))
		assert.Contains(t, out, "-extern \"js\" fn Shape::area(self : Shape) -> Double =")
		assert.Contains(t, out, "+extern \"js\" fn Shape::area(self : Shape) -> String =")
	})

	t.Run("rejects an unknown mode", func(t *testing.T) {
		path := writeSource(t, "a.ts", "type A = string;\n")
		_, err := execute(t, "gen", path, "--mode", "sideways")
		assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	})

	t.Run("reads inputs from a config file", func(t *testing.T) {
		path := writeSource(t, "a.ts", "type A = boolean;\n")
		cfgPath := writeSource(t, "ts2mbt.yaml", "inputs:\n  - "+path+"\n")
		out, err := execute(t, "gen", "--config", cfgPath)
		require.NoError(t, err)
		assert.Contains(t, out, "typealias A = Bool\n")
	})

	t.Run("fails without inputs", func(t *testing.T) {
		_, err := execute(t, "gen")
		assert.True(t, errors.Is(err, errors.ErrNoInputs))
	})

	t.Run("rejects a bad log level", func(t *testing.T) {
		path := writeSource(t, "a.ts", "type A = string;\n")
		_, err := execute(t, "gen", path, "--log-level", "loud")
		assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "ts2mbt v0.0.0-test\n", out)
}

func TestCommandTree(t *testing.T) {
	root := NewRootCommand("devel")
	for _, name := range []string{"gen", "watch", "serve", "mcp", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
		assert.NotEmpty(t, cmd.Short)
	}

	watch, _, err := root.Find([]string{"watch"})
	require.NoError(t, err)
	assert.NotNil(t, watch.Flags().Lookup("debounce"))

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, ":7420", serve.Flags().Lookup("addr").DefValue)
}
