// Package bridge replicates persisted state blobs into a directory read by
// an out-of-process viewer (the browser popup). It is one-way and holds no
// domain logic.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/store"
	"github.com/spf13/afero"
)

// DefaultInterval is the replication period.
const DefaultInterval = time.Second

// MirroredKeys are the blobs the viewer reads.
var MirroredKeys = []string{
	store.KeyTasks,
	store.KeyTimeEntries,
	store.KeyPomodoroSessions,
	store.KeyNotifications,
	store.KeySettings,
}

// Mirror copies store values to <dir>/<key>.json, rewriting a file only
// when its value changed since the last sync.
type Mirror struct {
	mu   sync.Mutex
	fs   afero.Fs
	dir  string
	kv   store.Store
	log  *slog.Logger
	last map[string]string
	poll clock.Handle
}

// NewMirror creates a Mirror on fs. Use afero.NewOsFs() for real
// directories and afero.NewMemMapFs() in tests.
func NewMirror(fs afero.Fs, dir string, kv store.Store, log *slog.Logger) *Mirror {
	if log == nil {
		log = slog.Default()
	}
	return &Mirror{fs: fs, dir: dir, kv: kv, log: log, last: make(map[string]string)}
}

// Path returns the mirror file for key.
func (m *Mirror) Path(key string) string {
	return filepath.Join(m.dir, key+".json")
}

// Sync writes every changed blob and returns how many files were written.
// Keys missing from the store have their mirror file removed.
func (m *Mirror) Sync() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fs.MkdirAll(m.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create bridge directory: %w", err)
	}

	written := 0
	var errs []error
	for _, key := range MirroredKeys {
		data, err := m.kv.Get(key)
		if errors.Is(err, store.ErrNotFound) {
			if _, seen := m.last[key]; seen {
				delete(m.last, key)
				if err := m.fs.Remove(m.Path(key)); err != nil {
					errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
				}
			}
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", key, err))
			continue
		}
		if prev, ok := m.last[key]; ok && prev == string(data) {
			continue
		}
		if err := m.write(key, data); err != nil {
			errs = append(errs, err)
			continue
		}
		m.last[key] = string(data)
		written++
	}
	return written, errors.Join(errs...)
}

func (m *Mirror) write(key string, data []byte) error {
	path := m.Path(key)
	tmp := path + ".tmp"
	if err := afero.WriteFile(m.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := m.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// Start syncs immediately and then every interval until ctx is done or
// Stop is called. Sync errors are logged.
func (m *Mirror) Start(ctx context.Context, clk clock.Clock, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	m.syncAndLog()
	h := clk.Every(interval, m.syncAndLog)

	m.mu.Lock()
	if m.poll != nil {
		m.poll.Stop()
	}
	m.poll = h
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.Stop()
	}()
}

// Stop cancels periodic syncing.
func (m *Mirror) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.poll != nil {
		m.poll.Stop()
		m.poll = nil
	}
}

func (m *Mirror) syncAndLog() {
	n, err := m.Sync()
	if err != nil {
		m.log.Warn("bridge sync failed", "dir", m.dir, "error", err)
		return
	}
	if n > 0 {
		m.log.Debug("bridge synced", "files", n)
	}
}
