package hotkey

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const reloadDelay = 250 * time.Millisecond

// Watcher reloads the hotkey set when the cache file is edited by hand.
type Watcher struct {
	service *Service
	log     *log.Logger
}

// NewWatcher creates a watcher for service's cache file.
func NewWatcher(service *Service, logger *log.Logger) *Watcher {
	return &Watcher{service: service, log: logger}
}

// Run watches until ctx is cancelled. The directory is watched rather
// than the file so editors that replace the file are picked up.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	path := filepath.Clean(w.service.cache.Path())
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				pending = time.After(reloadDelay)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("Hotkey cache watcher error", "err", err)
		case <-pending:
			pending = nil
			if err := w.service.reloadIfChanged(ctx); err != nil {
				w.log.Warn("Failed to reload hotkey cache", "err", err)
			}
		}
	}
}
