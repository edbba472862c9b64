package generator

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/calumari/ts2mbt/internal/tsast"
)

// Each testdata/*.txtar archive holds an input.ts and the want.mbt it must
// transpile to in both traversal modes.
func TestGolden(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	for _, path := range archives {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)
			files := map[string]string{}
			for _, f := range ar.Files {
				files[f.Name] = string(f.Data)
			}
			input, ok := files["input.ts"]
			require.True(t, ok, "archive lacks input.ts")
			want, ok := files["want.mbt"]
			require.True(t, ok, "archive lacks want.mbt")

			for _, mode := range []tsast.Mode{tsast.ModeNamed, tsast.ModeAll} {
				res, err := TranspileSource(context.Background(), "input.ts", []byte(input), WithMode(mode))
				require.NoError(t, err)
				require.Equal(t, strings.TrimRight(want, "\n"), strings.TrimRight(res.Code, "\n"), "mode %s", mode)
			}
		})
	}
}
