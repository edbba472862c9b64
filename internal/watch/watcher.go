// Package watch regenerates MoonBit bindings whenever TypeScript inputs
// change on disk.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/calumari/ts2mbt/internal/errors"
	"github.com/calumari/ts2mbt/internal/generator"
)

// RunFunc performs one generation pass.
type RunFunc func(ctx context.Context, cfg generator.Config) (*generator.Report, error)

// ResultFunc receives the outcome of every pass.
type ResultFunc func(*generator.Report, error)

// Watcher watches the input paths and reruns the generator after a quiet
// period following the last change.
type Watcher struct {
	cfg      generator.Config
	debounce time.Duration
	run      RunFunc
	onResult ResultFunc
	log      *zap.SugaredLogger

	watcher *fsnotify.Watcher
	mu      sync.Mutex
	timer   *time.Timer
	passes  chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger. The default discards.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// WithRunFunc replaces generator.Run.
func WithRunFunc(fn RunFunc) Option {
	return func(w *Watcher) { w.run = fn }
}

// OnResult registers a callback for the outcome of each pass.
func OnResult(fn ResultFunc) Option {
	return func(w *Watcher) { w.onResult = fn }
}

// New creates a watcher over cfg.Inputs. Directories are watched
// recursively; file inputs are watched through their parent directory.
func New(cfg generator.Config, debounce time.Duration, opts ...Option) (*Watcher, error) {
	if debounce <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "debounce %s must be positive", debounce)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher")
	}
	w := &Watcher{
		cfg:      cfg,
		debounce: debounce,
		run: func(ctx context.Context, cfg generator.Config) (*generator.Report, error) {
			return generator.Run(ctx, cfg)
		},
		log:     zap.NewNop().Sugar(),
		watcher: fw,
		passes:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	for _, p := range cfg.Inputs {
		if err := w.addPath(p); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addPath(p string) error {
	info, err := os.Stat(p)
	if err != nil {
		return errors.Wrapf(err, "stat %s", p)
	}
	if !info.IsDir() {
		return w.add(filepath.Dir(p))
	}
	return filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != p && generator.IsSkippedDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.add(path)
	})
}

func (w *Watcher) add(dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "watch %s", dir)
	}
	w.log.Debugw("watching", "dir", dir)
	return nil
}

// Run generates once, then regenerates on every debounced change until ctx
// is done. Failed passes are reported and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	w.pass(ctx)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil
		case <-w.passes:
			w.pass(ctx)
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if generator.IsSkippedDir(filepath.Base(event.Name)) {
				return
			}
			if err := w.addPath(event.Name); err != nil {
				w.log.Warnw("watch new directory", "dir", event.Name, "error", err)
			}
			w.schedule()
			return
		}
	}
	if !generator.IsTypeScript(event.Name) {
		return
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	w.log.Debugw("change detected", "file", event.Name, "op", event.Op.String())
	w.schedule()
}

// schedule restarts the debounce timer. The timer only signals the loop so
// passes never overlap.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.passes <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) pass(ctx context.Context) {
	start := time.Now()
	report, err := w.run(ctx, w.cfg)
	switch {
	case err != nil:
		w.log.Errorw("generation failed", "error", err)
	case report != nil:
		w.log.Infow("generated", "files", len(report.Files), "elapsed", time.Since(start).Round(time.Millisecond))
	}
	if w.onResult != nil {
		w.onResult(report, err)
	}
}
