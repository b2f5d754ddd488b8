// Package watch reruns a callback whenever a file is written.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/listbench/pkg/log"
)

// Run watches path until ctx is done and calls fn once per burst of writes,
// after debounce has passed with no further events. The parent directory is
// watched so editors that replace the file by rename are still seen.
//
// fn runs on the caller's goroutine. Its errors are logged, not returned.
func Run(ctx context.Context, path string, debounce time.Duration, logger log.Logger, fn func() error) error {
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	name := filepath.Base(path)

	logger.Info("watching for changes", log.String("path", path))

	timer := time.NewTimer(debounce)
	stopTimer(timer)
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if pending {
				stopTimer(timer)
			}
			timer.Reset(debounce)
			pending = true

		case <-timer.C:
			pending = false
			logger.Debug("change detected", log.String("path", path))
			if err := fn(); err != nil {
				logger.Error("rerun failed", log.Err(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", log.Err(err))
		}
	}
}

// stopTimer stops t and drains a tick that already fired.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
