// Package watch signals when a directory tree settles after changes.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thoreinstein/ocgen/internal/errors"
	"github.com/thoreinstein/ocgen/internal/logging"
)

// DefaultDebounce is how long the tree must be quiet before a signal.
const DefaultDebounce = 300 * time.Millisecond

// Watcher monitors a directory tree and sends one signal per burst of
// changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      string
	debounce  time.Duration
	logger    *slog.Logger
	onChange  chan struct{}
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Root     string
	Debounce time.Duration
	Logger   *slog.Logger
}

// DefaultConfig returns defaults for watching root.
func DefaultConfig(root string) Config {
	return Config{
		Root:     root,
		Debounce: DefaultDebounce,
	}
}

// New creates a watcher. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating fsnotify watcher")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewDiscard()
	}

	return &Watcher{
		fsWatcher: fsw,
		root:      cfg.Root,
		debounce:  cfg.Debounce,
		logger:    cfg.Logger,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start watches root and every directory below it. The returned channel
// receives a signal once changes have been quiet for the debounce period.
func (w *Watcher) Start() (<-chan struct{}, error) {
	if err := w.addTree(w.root); err != nil {
		return nil, err
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// addTree adds dir and its subdirectories. Subdirectories that vanish or
// cannot be read are skipped; only a failure on dir itself is returned.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return errors.Wrapf(err, "watching %s", dir)
			}
			w.logger.Debug("skipping unreadable directory", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsWatcher.Add(path); err != nil {
			if path == dir {
				return errors.Wrapf(err, "watching %s", dir)
			}
			w.logger.Debug("cannot watch directory", "path", path, "error", err)
			return nil
		}
		w.logger.Log(context.Background(), logging.LevelTrace, "watching", "path", path)
		return nil
	})
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !isRelevant(event) {
				continue
			}

			// New directories are not covered by existing watches.
			if event.Has(fsnotify.Create) {
				w.addNewDir(event.Name)
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-timerC(timer):
			if pending {
				// Drop if a signal is already queued.
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) addNewDir(path string) {
	if err := w.addTree(path); err != nil {
		// Usually a file, or a directory already gone again.
		w.logger.Log(context.Background(), logging.LevelTrace, "not a new directory", "path", path, "error", err)
	}
}

func timerC(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// isRelevant drops chmod-only events, which editors emit without changing
// content.
func isRelevant(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

// Run calls fn each time the tree under root settles, until ctx is done.
// Errors from fn are logged and watching continues.
func Run(ctx context.Context, cfg Config, fn func(context.Context) error) error {
	w, err := New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Start()
	if err != nil {
		return err
	}
	w.logger.InfoContext(ctx, "watching for changes", "root", cfg.Root)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			w.logger.DebugContext(ctx, "change detected", "root", cfg.Root)
			if err := fn(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				w.logger.ErrorContext(ctx, "regeneration failed", "error", err)
			}
		}
	}
}
