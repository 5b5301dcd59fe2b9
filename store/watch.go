package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the write/rename bursts produced by one save.
const watchDebounce = 150 * time.Millisecond

// Watch calls onChange whenever another process rewrites the container
// file. Writes made through this FileStore are ignored. Watch blocks until
// ctx is cancelled.
func (s *FileStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Saves rename a temp file over the data file, so watch the directory.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.filePath), err)
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(watchDebounce)
		case <-pending:
			pending = nil
			if s.changedExternally() {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("store watch error", "path", s.filePath, "error", err)
		}
	}
}

// changedExternally reports whether the file content differs from what
// this process last wrote or observed, and records the new checksum.
func (s *FileStore) changedExternally() bool {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return false
	}
	sum := calculateChecksum(data)
	s.mu.Lock()
	defer s.mu.Unlock()
	if sum == s.lastSum {
		return false
	}
	s.lastSum = sum
	return true
}
