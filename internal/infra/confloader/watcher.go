// Package confloader provides configuration loading mechanism.
package confloader

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a watched file must stay quiet before
// listeners hear about it. Editors often write a file in several steps.
const DefaultSettle = 200 * time.Millisecond

// Watcher reports changes to a set of configuration files.
type Watcher struct {
	fs     *fsnotify.Watcher
	logger *slog.Logger
	settle time.Duration

	mu        sync.RWMutex
	files     map[string]struct{}
	pending   map[string]*time.Timer
	listeners []func(string)

	done     chan struct{}
	stopOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for the watcher.
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithSettle overrides DefaultSettle. Zero delivers every event.
func WithSettle(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.settle = d
		}
	}
}

// NewWatcher creates a watcher with no files registered.
func NewWatcher(opts ...WatcherOption) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:      fs,
		logger:  slog.Default(),
		settle:  DefaultSettle,
		files:   make(map[string]struct{}),
		pending: make(map[string]*time.Timer),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch registers path. The parent directory is what gets subscribed,
// so atomic rename-over saves are seen; siblings are filtered out.
func (w *Watcher) Watch(path string) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := w.fs.Add(dir); err != nil {
		return err
	}

	w.mu.Lock()
	w.files[path] = struct{}{}
	w.mu.Unlock()

	w.logger.Debug("watching config file", "path", path)
	return nil
}

// OnChange registers fn. It runs on its own goroutine once per settled
// change and may itself call OnChange.
func (w *Watcher) OnChange(fn func(path string)) {
	w.mu.Lock()
	w.listeners = append(w.listeners, fn)
	w.mu.Unlock()
}

// Run consumes file events until ctx is done or Stop is called.
func (w *Watcher) Run(ctx context.Context) {
	w.logger.Info("config watcher started")
	defer w.cancelPending()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.schedule(filepath.Clean(ev.Name))
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
		case <-ctx.Done():
			return
		case <-w.done:
			return
		}
	}
}

// Stop releases the underlying fsnotify handle. Repeated calls return nil.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.logger.Info("config watcher stopped")
	})
	return err
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[path]; !ok {
		return
	}
	if w.settle == 0 {
		go w.notify(path)
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Reset(w.settle)
		return
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.notify(path)
	})
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) notify(path string) {
	w.mu.RLock()
	fns := make([]func(string), len(w.listeners))
	copy(fns, w.listeners)
	w.mu.RUnlock()

	w.logger.Debug("config file changed", "path", path)
	for _, fn := range fns {
		fn(path)
	}
}
