// Package storewatch nudges the poller when the message store changes on disk
package storewatch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/devricklin/teleport/internal/pkg/logger"
)

// Watcher watches the directory holding the store and its write-ahead log
type Watcher struct {
	path string
}

// NewWatcher creates a watcher for the store at path
func NewWatcher(path string) *Watcher {
	return &Watcher{path: path}
}

// Relevant reports whether ev touches the store or its WAL
func Relevant(storePath string, ev fsnotify.Event) bool {
	base := filepath.Base(storePath)
	name := filepath.Base(ev.Name)
	if name != base && name != base+"-wal" {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

// Run calls nudge for every relevant change until ctx is cancelled
func (w *Watcher) Run(ctx context.Context, nudge func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	log := logger.Named("StoreWatch")
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if Relevant(w.path, event) {
				nudge()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		}
	}
}
