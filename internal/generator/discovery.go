package generator

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/calumari/ts2mbt/internal/errors"
)

// tsExtensions are the recognized TypeScript source suffixes, longest first
// so .d.ts is stripped before .ts.
var tsExtensions = []string{".d.mts", ".d.cts", ".d.ts", ".mts", ".cts", ".ts"}

// input is one discovered source file. rel is its path relative to the
// argument it was found under and determines the output location.
type input struct {
	path string
	rel  string
}

// discoverInputs expands files and directories into TypeScript sources.
// Directories are walked recursively, skipping node_modules and hidden
// directories. Results are sorted by path.
func discoverInputs(paths []string) ([]input, error) {
	seen := map[string]bool{}
	var out []input
	add := func(path, rel string) {
		if seen[path] {
			return
		}
		seen[path] = true
		out = append(out, input{path: path, rel: rel})
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", p)
		}
		if !info.IsDir() {
			if !IsTypeScript(p) {
				return nil, errors.WithHintf(errors.Newf("%s is not a TypeScript file", p),
					"supported extensions: %s", strings.Join(tsExtensions, ", "))
			}
			add(p, filepath.Base(p))
			continue
		}
		root := p
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && IsSkippedDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !IsTypeScript(path) {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			add(path, rel)
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walk %s", root)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out, nil
}

// IsTypeScript reports whether path has a recognized TypeScript suffix.
func IsTypeScript(path string) bool {
	return tsExtension(path) != ""
}

// IsSkippedDir reports whether directory walks skip a directory named name.
func IsSkippedDir(name string) bool {
	return name == "node_modules" || (len(name) > 1 && strings.HasPrefix(name, "."))
}

func tsExtension(path string) string {
	for _, ext := range tsExtensions {
		if strings.HasSuffix(path, ext) {
			return ext
		}
	}
	return ""
}

// outputName maps a source path to its .mbt counterpart: types/shape.d.ts
// becomes types/shape.mbt.
func outputName(rel string) string {
	return strings.TrimSuffix(rel, tsExtension(rel)) + ".mbt"
}
