// Package watch reports batches of file changes under a set of directory
// trees. Changes are debounced so an editor's save burst arrives as one
// batch.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

// skipDirs are never watched.
var skipDirs = map[string]bool{
	".git": true,
}

// Config configures a Watcher.
type Config struct {
	// Roots are watched recursively. Missing roots are skipped.
	Roots []string
	// Debounce is how long changes accumulate before a batch is emitted.
	Debounce time.Duration
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Batch is a set of changes collected during one debounce window. Paths
// are absolute and sorted; a path appears in at most one list.
type Batch struct {
	Changed []string
	Removed []string
}

// Empty reports whether the batch holds no paths.
func (b Batch) Empty() bool {
	return len(b.Changed) == 0 && len(b.Removed) == 0
}

// Handler is called once per batch. Returning an error stops Run.
type Handler func(ctx context.Context, batch Batch) error

// Watcher watches directory trees and emits debounced batches.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	pending map[string]bool // path -> removed
}

// New creates a Watcher and registers every directory under cfg.Roots.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: cfg.Debounce,
		logger:   cfg.Logger,
		pending:  make(map[string]bool),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}

	for _, root := range cfg.Roots {
		if err := w.addRecursive(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run delivers batches to handle until ctx is cancelled, the watcher is
// closed, or handle returns an error. Cancellation is not an error.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", slog.String("error", err.Error()))

		case <-ticker.C:
			batch := w.drain()
			if batch.Empty() {
				continue
			}
			if err := handle(ctx, batch); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addRecursive(path); err != nil {
				w.logger.Warn("failed to watch new directory", slog.String("path", path), slog.String("error", err.Error()))
			}
			return
		}
	}

	removed := event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
	if !removed && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	w.mu.Lock()
	w.pending[path] = removed
	w.mu.Unlock()

	w.logger.Debug("file change detected", slog.String("path", path), slog.String("op", event.Op.String()))
}

// drain returns and clears the pending changes.
func (w *Watcher) drain() Batch {
	w.mu.Lock()
	pending := w.pending
	w.pending = make(map[string]bool)
	w.mu.Unlock()

	var batch Batch
	for path, removed := range pending {
		if removed {
			batch.Removed = append(batch.Removed, path)
		} else {
			batch.Changed = append(batch.Changed, path)
		}
	}
	sort.Strings(batch.Changed)
	sort.Strings(batch.Removed)
	return batch
}

// addRecursive watches root and every directory beneath it.
func (w *Watcher) addRecursive(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", root, err)
	}

	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == abs && errors.Is(walkErr, fs.ErrNotExist) {
				return filepath.SkipAll
			}
			return walkErr
		}
		if !d.IsDir() {
			return nil
		}
		if path != abs && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		w.logger.Debug("watching directory", slog.String("path", path))
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}
