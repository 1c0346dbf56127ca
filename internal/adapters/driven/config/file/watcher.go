package file

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// Reloader is implemented by stores that cache file contents.
type Reloader interface {
	Reload()
}

// PromptWatcher reloads a prompt store whenever a *.txt file in its
// directory is created, written, removed or renamed.
type PromptWatcher struct {
	dir     string
	store   Reloader
	watcher *fsnotify.Watcher
}

// NewPromptWatcher starts watching dir. The directory must exist.
func NewPromptWatcher(dir string, store Reloader) (*PromptWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &PromptWatcher{
		dir:     dir,
		store:   store,
		watcher: w,
	}, nil
}

// Run dispatches events until ctx is cancelled or Close is called.
func (p *PromptWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if isPromptChange(event) {
				logger.Debug("prompt file changed: %s", filepath.Base(event.Name))
				p.store.Reload()
			}
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("prompt watcher: %v", err)
		}
	}
}

// Close stops the watcher. A running Run returns once its channels close.
func (p *PromptWatcher) Close() error {
	return p.watcher.Close()
}

func isPromptChange(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, ".txt") {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
