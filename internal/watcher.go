package internal

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the source must stay quiet before a sort pass.
const DefaultDebounce = 2 * time.Second

// Watcher wraps fsnotify on a single source directory and reports bursts of
// supported-media changes as one trigger.
type Watcher struct {
	watcher  *fsnotify.Watcher
	exts     []string
	debounce time.Duration
	logger   *slog.Logger
}

// NewWatcher watches dir, not its subdirectories, matching the sorter's scan.
func NewWatcher(dir string, exts []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Watcher{watcher: fsWatcher, exts: exts, debounce: debounce, logger: logger}, nil
}

// Run calls onChange after each quiet period following relevant events, until
// ctx is done.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("source changed", "file", filepath.Base(event.Name), "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-timer.C:
			onChange()
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	name := filepath.Base(event.Name)
	return !isHidden(name) && hasSupportedExt(name, w.exts)
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
