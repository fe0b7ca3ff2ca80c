// Package watch triggers regeneration when input files change.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/gdbind/errors"
	"github.com/teranos/gdbind/logger"
)

// DefaultDebounce coalesces the burst of events an editor save produces
const DefaultDebounce = 300 * time.Millisecond

// Callback runs after a debounced change. Errors are logged and watching continues.
type Callback func(ctx context.Context, changed []string) error

// Watcher watches a fixed set of files for changes.
//
// Parent directories are watched rather than the files themselves, so a
// file replaced by rename (as most editors save) keeps being watched.
type Watcher struct {
	files    map[string]bool
	watcher  *fsnotify.Watcher
	callback Callback
	debounce time.Duration

	mu            sync.Mutex
	pending       map[string]bool
	debounceTimer *time.Timer

	// runMu serializes callbacks; a change during a run queues the next one
	runMu sync.Mutex
}

// New creates a watcher for files. Paths are cleaned and made absolute.
func New(files []string, callback Callback) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		files:    make(map[string]bool, len(files)),
		watcher:  fsw,
		callback: callback,
		debounce: DefaultDebounce,
		pending:  make(map[string]bool),
	}

	dirs := make(map[string]bool)
	for _, file := range files {
		if file == "" {
			continue
		}
		abs, err := filepath.Abs(file)
		if err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "cannot resolve %s", file)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	return w, nil
}

// SetDebounce changes the debounce period; call before Run
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run watches until ctx is cancelled, then closes the watcher
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.debounceTimer != nil {
				w.debounceTimer.Stop()
			}
			w.mu.Unlock()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debugw("Watcher detected change",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			w.schedule(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	return w.files[filepath.Clean(event.Name)]
}

// schedule debounces rapid changes into one callback
func (w *Watcher) schedule(ctx context.Context, file string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[file] = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounce, func() {
		w.fire(ctx)
	})
}

func (w *Watcher) fire(ctx context.Context) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	w.mu.Lock()
	changed := make([]string, 0, len(w.pending))
	for file := range w.pending {
		changed = append(changed, file)
	}
	w.pending = make(map[string]bool)
	w.mu.Unlock()

	if ctx.Err() != nil || len(changed) == 0 {
		return
	}

	logger.Infow("Inputs changed, regenerating", logger.FieldCount, len(changed))
	if err := w.callback(ctx, changed); err != nil {
		logger.Errorw("Regeneration failed", logger.FieldError, err)
	}
}
