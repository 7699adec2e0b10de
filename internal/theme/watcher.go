package theme

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a style file for changes and triggers hot-reload.
type Watcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	path    string
	watcher *fsnotify.Watcher

	// Callback for changes
	onChangeCallback func(path string)

	// Control channels
	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// NewWatcher creates a watcher for the file at path.
func NewWatcher(path string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		logger: logger,
		path:   path,
	}
}

// SetChangeCallback sets the callback to invoke when the file is written or
// recreated. It runs on the watcher's goroutine.
func (w *Watcher) SetChangeCallback(callback func(path string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChangeCallback = callback
}

// Start begins watching. The file's directory is watched rather than the
// file so editors that replace files on save are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		_ = fsw.Close()
		return err
	}

	w.watcher = fsw
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	go w.watchLoop(ctx, fsw, w.stopCh, w.doneCh)

	w.logger.Debug("style watcher started", "path", w.path)
	return nil
}

// Stop stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	done := w.doneCh
	fsw := w.watcher
	w.mu.Unlock()

	<-done
	_ = fsw.Close()
	w.logger.Debug("style watcher stopped")
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *Watcher) watchLoop(ctx context.Context, fsw *fsnotify.Watcher, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	filename := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			// Only care about our file
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debug("style file changed", "path", w.path, "op", event.Op.String())
				w.mu.RLock()
				callback := w.onChangeCallback
				w.mu.RUnlock()
				if callback != nil {
					callback(w.path)
				}
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("style watcher error", "error", err)
		}
	}
}
