package generator

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/calumari/ts2mbt/internal/check"
	"github.com/calumari/ts2mbt/internal/errors"
	"github.com/calumari/ts2mbt/internal/tsast"
)

// diffContext is the number of unchanged lines shown around a change.
const diffContext = 3

// FileReport describes the outcome for one source file.
type FileReport struct {
	Source string
	Output string // path written or compared; "" when written to Stdout
	Result Result
	Stale  bool   // check mode: the on-disk output differs
	Diff   string // check mode: unified diff of a stale output
	Errors int    // syntax errors recovered from while parsing
}

// Report collects the outcome of a Run.
type Report struct {
	Files []FileReport
}

// Stale returns the reports of outputs that are out of date.
func (r *Report) Stale() []FileReport {
	var out []FileReport
	for _, f := range r.Files {
		if f.Stale {
			out = append(out, f)
		}
	}
	return out
}

// Run discovers, parses and transpiles every input, then writes the outputs
// or, in check mode, compares them with what is on disk. One symbol index
// spans all inputs so bases and keyof targets may live in sibling files; each
// file gets its own generation state.
func Run(ctx context.Context, cfg Config, opts ...Option) (*Report, error) {
	g := newGenerator(nil, opts...)
	return g.run(ctx, cfg, opts)
}

// run orchestrates discovery, parsing, transformation, and file emission.
func (g *generator) run(ctx context.Context, cfg Config, opts []Option) (*Report, error) {
	if len(cfg.Inputs) == 0 {
		return nil, errors.WithHint(errors.ErrNoInputs, "pass a .ts file or a directory")
	}
	if cfg.Check && cfg.OutputDir == "" {
		return nil, errors.WithHint(errors.Wrap(errors.ErrInvalidConfig, "check mode needs an output directory"), "pass -o <dir>")
	}
	inputs, err := discoverInputs(cfg.Inputs)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, errors.WithHintf(errors.Wrapf(errors.ErrNoInputs, "searched %v", cfg.Inputs),
			"directories are scanned for %v", tsExtensions)
	}
	if cfg.OutputDir != "" {
		if err := checkOutputCollisions(inputs); err != nil {
			return nil, err
		}
	}

	files := make([]*tsast.File, 0, len(inputs))
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := os.ReadFile(in.path)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", in.path)
		}
		f, err := tsast.Parse(ctx, in.path, src)
		if err != nil {
			return nil, err
		}
		if f.Errors > 0 {
			g.log.Warnw("syntax errors recovered", "file", in.path, "errors", f.Errors)
		}
		files = append(files, f)
	}
	idx := tsast.NewIndex(files...)
	g.log.Debugw("indexed declarations", "files", len(files), "names", idx.Len())

	fileOpts := append([]Option{WithMode(cfg.Mode), WithLogger(g.log)}, opts...)
	report := &Report{}
	for i, in := range inputs {
		res := Transpile(files[i].Root, idx, fileOpts...)
		fr := FileReport{Source: in.path, Result: res, Errors: files[i].Errors}
		text := g.header(in.path, cfg) + res.Code

		switch {
		case cfg.OutputDir == "":
			w := cfg.Stdout
			if w == nil {
				w = os.Stdout
			}
			if _, err := io.WriteString(w, text); err != nil {
				return nil, errors.Wrap(err, "write output")
			}
		case cfg.Check:
			fr.Output = filepath.Join(cfg.OutputDir, outputName(in.rel))
			existing, err := os.ReadFile(fr.Output)
			if err != nil && !os.IsNotExist(err) {
				return nil, errors.Wrapf(err, "read %s", fr.Output)
			}
			if check.Changed(string(existing), text) {
				fr.Stale = true
				fr.Diff = check.Unified(fr.Output, string(existing), text, diffContext)
			}
		default:
			fr.Output = filepath.Join(cfg.OutputDir, outputName(in.rel))
			if err := writeFile(fr.Output, text); err != nil {
				return nil, err
			}
			g.log.Infow("generated", "source", in.path, "output", fr.Output,
				"enums", len(res.Enums), "aliases", len(res.Aliases))
		}
		report.Files = append(report.Files, fr)
	}

	if stale := report.Stale(); len(stale) > 0 {
		return report, errors.WithHint(errors.Wrapf(errors.ErrStaleOutput, "%d of %d files", len(stale), len(report.Files)),
			"run ts2mbt gen without --check to regenerate")
	}
	return report, nil
}

func (g *generator) header(source string, cfg Config) string {
	return g.render(tmplHeader, headerModel{Source: filepath.ToSlash(source), Command: cfg.Command, Version: cfg.Version})
}

// checkOutputCollisions rejects inputs that would write the same output
// file, such as a/x.ts and b/x.ts passed as separate arguments.
func checkOutputCollisions(inputs []input) error {
	owner := map[string]string{}
	for _, in := range inputs {
		out := outputName(in.rel)
		if prev, ok := owner[out]; ok {
			return errors.WithHint(
				errors.Wrapf(errors.ErrInvalidConfig, "%s and %s both generate %s", prev, in.path, out),
				"pass their common parent directory instead of the files")
		}
		owner[out] = in.path
	}
	return nil
}

func writeFile(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// TranspileSource parses a single in-memory TypeScript source and transpiles
// it with an index over that source alone.
func TranspileSource(ctx context.Context, name string, src []byte, opts ...Option) (Result, error) {
	f, err := tsast.Parse(ctx, name, src)
	if err != nil {
		return Result{}, err
	}
	res := Transpile(f.Root, tsast.NewIndex(f), opts...)
	if f.Errors > 0 {
		return res, errors.Wrapf(errSyntax, "%s: %d syntax error(s) recovered", name, f.Errors)
	}
	return res, nil
}

// errSyntax marks results produced from a source with recovered syntax
// errors. The result is still usable.
var errSyntax = errors.New("source has syntax errors")

// IsSyntaxError reports whether err only signals recovered syntax errors.
func IsSyntaxError(err error) bool {
	return errors.Is(err, errSyntax)
}
