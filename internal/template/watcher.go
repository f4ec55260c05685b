package template

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"dagdraft/internal/logging"
)

// Watcher reloads the registry when template files change on disk, so a
// long-running process picks up template edits without a restart. Reloads
// are debounced: editors fire several write events per save.
type Watcher struct {
	mu       sync.Mutex
	registry *Registry
	watcher  *fsnotify.Watcher
	dirty    bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// StartWatching attaches a filesystem watcher to the registry's directory.
// Non-blocking; stop via StopWatching or by cancelling ctx.
func (r *Registry) StartWatching(ctx context.Context) error {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fs.Add(r.dir); err != nil {
		// Directory may not exist yet; the registry still serves the
		// built-in default.
		logging.Get(logging.CategoryTemplate).Warn("Template watch failed (dir may not exist): %v", err)
	}

	w := &Watcher{
		registry: r,
		watcher:  fs,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		running:  true,
	}
	r.mu.Lock()
	r.watcher = w
	r.mu.Unlock()

	go w.run(ctx)
	logging.Template("Watching template directory %s", r.dir)
	return nil
}

// StopWatching stops the watcher, if any.
func (r *Registry) StopWatching() {
	r.mu.RLock()
	w := r.watcher
	r.mu.RUnlock()
	if w == nil {
		return
	}
	w.stop()
}

func (w *Watcher) stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	debounce := time.NewTicker(500 * time.Millisecond)
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".yaml") && !strings.HasSuffix(event.Name, ".yml") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.dirty = true
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryTemplate).Error("Template watcher error: %v", err)

		case <-debounce.C:
			w.mu.Lock()
			dirty := w.dirty
			w.dirty = false
			w.mu.Unlock()
			if !dirty {
				continue
			}
			if err := w.registry.Reload(); err != nil {
				logging.Get(logging.CategoryTemplate).Error("Template reload failed: %v", err)
			} else {
				logging.Template("Templates reloaded after change")
			}
		}
	}
}
