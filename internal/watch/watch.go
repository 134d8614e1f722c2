// Package watch notifies callers when a single file changes on disk.
package watch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events a single editor save emits.
const DefaultDebounce = 150 * time.Millisecond

// File watches path and calls onChange once per burst of writes. It blocks
// until ctx is done.
//
// The parent directory is watched rather than the file itself, so that
// editors which save by rename-and-replace keep triggering events.
// onChange runs on the watcher goroutine; calls never overlap.
func File(ctx context.Context, path string, debounce time.Duration, logger *log.Logger, onChange func()) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("watching", "path", abs)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(event, abs) {
				continue
			}
			logger.Debug("change detected", "file", filepath.Base(event.Name), "op", event.Op)
			timer.Reset(debounce)

		case <-timer.C:
			onChange()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		}
	}
}

func relevant(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
