package mapping

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig contains configuration for the mapping file watcher.
type WatcherConfig struct {
	// DebounceInterval is the time to wait after a file change before
	// invalidating, coalescing bursts of events. Default: 100ms.
	DebounceInterval time.Duration

	// Extensions is the list of file extensions to watch.
	// Default: [".pmap", ".imap", ".rmap"].
	Extensions []string

	// SkipHidden controls whether hidden files are ignored.
	// Default: true.
	SkipHidden bool
}

// DefaultWatcherConfig returns the default watcher configuration.
func DefaultWatcherConfig() *WatcherConfig {
	return &WatcherConfig{
		DebounceInterval: 100 * time.Millisecond,
		Extensions:       []string{".pmap", ".imap", ".rmap"},
		SkipHidden:       true,
	}
}

// Watcher invalidates cached mappings when their files change on disk.
// Used in long-running mode so a delivered mapping set takes effect
// without a restart.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	config   *WatcherConfig
	logger   *slog.Logger
	debounce *debouncer

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher over the store's mapping directory.
func NewWatcher(store *Store, config *WatcherConfig) (*Watcher, error) {
	if config == nil {
		config = DefaultWatcherConfig()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		store:    store,
		watcher:  fsw,
		config:   config,
		logger:   slog.Default().With("component", "mapping.watcher"),
		debounce: newDebouncer(config.DebounceInterval),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks processing file events until the context is cancelled or
// Stop is called. Changed mapping files are invalidated in the store's
// registry after debouncing.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	if err := w.watcher.Add(w.store.Loader().Dir()); err != nil {
		return fmt.Errorf("failed to watch mapping directory: %w", err)
	}

	w.logger.Info("mapping watcher started",
		"dir", w.store.Loader().Dir(),
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	// Names changed since the last debounce flush.
	var pendingMu sync.Mutex
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("mapping watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("mapping watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.shouldProcessEvent(event) {
				continue
			}

			name := filepath.Base(event.Name)
			pendingMu.Lock()
			pending[name] = true
			pendingMu.Unlock()

			w.debounce.trigger(func() {
				pendingMu.Lock()
				changed := pending
				pending = make(map[string]bool)
				pendingMu.Unlock()

				for name := range changed {
					w.store.Registry().Invalidate(name)
					w.logger.Info("invalidated cached mapping", "name", name)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("mapping watcher error", "error", err)
		}
	}
}

// Stop stops the watcher and releases its resources.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.debounce.stop()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// shouldProcessEvent filters events down to relevant mapping changes.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}

	name := filepath.Base(event.Name)
	if w.config.SkipHidden && strings.HasPrefix(name, ".") {
		return false
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	for _, validExt := range w.config.Extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}

// debouncer coalesces rapid triggers into a single callback after a
// quiet interval.
type debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	timer    *time.Timer
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
