// Package watch re-runs a callback when a source file changes on disk.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/mdsplit/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsplit/internal/logfields"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of editor writes into one callback.
const DefaultDebounce = 300 * time.Millisecond

// Handler is invoked after the watched file settles.
type Handler func(ctx context.Context, path string) error

// Option configures a SourceWatcher.
type Option func(*SourceWatcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *SourceWatcher) { w.debounce = d }
}

// WithLogger sets the logger used for watch events.
func WithLogger(l *slog.Logger) Option {
	return func(w *SourceWatcher) { w.logger = l }
}

// SourceWatcher watches the directory holding one file and calls the
// handler when that file is written, created or renamed into place.
type SourceWatcher struct {
	path     string
	handler  Handler
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
}

// New creates a watcher for path. The parent directory is watched so
// editors that replace the file atomically are still seen.
func New(path string, handler Handler, opts ...Option) (*SourceWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve source path").
			WithContext("path", path).
			Build()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}

	w := &SourceWatcher{
		path:     abs,
		handler:  handler,
		watcher:  fw,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	dir := filepath.Dir(abs)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to watch source directory").
			WithContext("path", dir).
			Build()
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *SourceWatcher) Path() string {
	return w.path
}

// Run blocks until ctx is cancelled or the underlying watcher closes.
// Handler errors are logged and do not stop the watch.
func (w *SourceWatcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn("Error closing file watcher", logfields.Error(err))
		}
	}()

	w.logger.Info("Watching source for changes", logfields.Path(w.path))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Has(fsnotify.Remove) {
				w.logger.Warn("Source file removed", logfields.Path(event.Name))
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("Source change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Source watcher error", logfields.Error(err))

		case <-fire:
			fire = nil
			if err := w.handler(ctx, w.path); err != nil {
				w.logger.Error("Re-split failed", logfields.Path(w.path), logfields.Error(err))
			}
		}
	}
}
