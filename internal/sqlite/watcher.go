package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the quiet period after the last file change before
// subscribers are refreshed.
const DefaultWatchDebounce = 250 * time.Millisecond

// ErrNotWatchable indicates an in-memory database, which has no file to watch.
var ErrNotWatchable = errors.New("database is not file-backed")

// Watch refreshes every open subscription when another process writes to
// the database file. It blocks until ctx is cancelled.
func (c *Collection) Watch(ctx context.Context, debounce time.Duration) error {
	path := c.db.Path()
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file::memory:") {
		return ErrNotWatchable
	}
	path, _, _ = strings.Cut(strings.TrimPrefix(path, "file:"), "?")
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	base := filepath.Base(path)
	c.logger.Info("watching database for external changes", "path", path)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// The WAL and journal files change on every commit.
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, c.Refresh)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("database watcher error", "error", err)
		}
	}
}
