// Package watch re-runs an analysis whenever a source file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/tinylang/tlc/internal/cli"
)

// Handler analyzes path. It is called once at start and again after every
// burst of changes.
type Handler func(ctx context.Context, path string)

// Watcher observes a single file.
type Watcher struct {
	path     string
	debounce time.Duration
	handler  Handler
	logger   *cli.Logger
}

// New creates a watcher for path. A nil logger discards debug output.
func New(path string, debounce time.Duration, handler Handler, logger *cli.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if logger == nil {
		logger = cli.NewLogger(false, false)
	}
	return &Watcher{path: abs, debounce: debounce, handler: handler, logger: logger}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run blocks until ctx is canceled or the file system watcher fails. The
// parent directory is watched so editors that replace files on save are
// still seen.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info("watching %s", w.path)

	changes := make(chan struct{}, 1)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.pump(gctx, fsw, changes)
	})
	g.Go(func() error {
		w.loop(gctx, changes)
		return nil
	})

	return g.Wait()
}

// pump forwards relevant events without blocking; one pending signal is
// enough since the loop re-reads the whole file.
func (w *Watcher) pump(ctx context.Context, fsw *fsnotify.Watcher, changes chan<- struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("event %s", ev)
			select {
			case changes <- struct{}{}:
			default:
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) loop(ctx context.Context, changes <-chan struct{}) {
	w.handler(ctx, w.path)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			timer.Reset(w.debounce)
		case <-timer.C:
			w.logger.Debug("re-analyzing %s", w.path)
			w.handler(ctx, w.path)
		}
	}
}
