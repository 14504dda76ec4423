// Package filewatcher provides file system monitoring adapters.
// Clean Architecture: Adapter implementing ports.DocumentWatcher.
package filewatcher

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/lawpal/lawpal-go/internal/domain/ports"
)

// FSNotifyWatcher implements ports.DocumentWatcher using fsnotify. It is
// wired up only for the local document source, where a dropped-in PDF should
// be ingested without restarting the process.
type FSNotifyWatcher struct {
	watcher    *fsnotify.Watcher
	extensions []string
}

// NewFSNotifyWatcher creates a new document watcher.
func NewFSNotifyWatcher(extensions []string) (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if len(extensions) == 0 {
		extensions = []string{".pdf"}
	}

	return &FSNotifyWatcher{
		watcher:    w,
		extensions: extensions,
	}, nil
}

// Watch starts monitoring the directory and emits an event per created or
// rewritten document. Deletions are ignored; the index keeps whatever was
// already upserted.
func (w *FSNotifyWatcher) Watch(ctx context.Context, dir string) (<-chan ports.DocumentEvent, error) {
	if err := w.watcher.Add(dir); err != nil {
		return nil, err
	}

	events := make(chan ports.DocumentEvent, 100)

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.isWatchedExtension(event.Name) {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}

				select {
				case events <- ports.DocumentEvent{Name: filepath.Base(event.Name)}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[WARN] watching %s: %v", dir, err)
			}
		}
	}()

	return events, nil
}

// Stop stops the watcher.
func (w *FSNotifyWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *FSNotifyWatcher) isWatchedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, watched := range w.extensions {
		if ext == watched {
			return true
		}
	}
	return false
}
