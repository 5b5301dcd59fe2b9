package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T, format string) *FileStore {
	t.Helper()

	s, err := NewFileStore(t.TempDir(), format)
	if err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFileStore_BasicOperations(t *testing.T) {
	for _, format := range Formats() {
		t.Run(format, func(t *testing.T) {
			s := setupTestStore(t, format)

			_, err := s.Get(KeyTasks)
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(KeyTasks, []byte(`[{"id":"a"}]`)))
			require.NoError(t, s.Set(KeyLastRollover, []byte(`"2025-10-15"`)))

			got, err := s.Get(KeyTasks)
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":"a"}]`, string(got))

			keys, err := s.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{KeyLastRollover, KeyTasks}, keys)

			require.NoError(t, s.Delete(KeyTasks))
			require.NoError(t, s.Delete("missing"))
			_, err = s.Get(KeyTasks)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	a, err := NewFileStore(dir, "yaml")
	require.NoError(t, err)
	require.NoError(t, a.Set(KeyActiveTaskID, []byte(`"t1"`)))
	require.NoError(t, a.Close())

	b, err := NewFileStore(dir, "yaml")
	require.NoError(t, err)
	defer func() { _ = b.Close() }()
	got, err := b.Get(KeyActiveTaskID)
	require.NoError(t, err)
	assert.Equal(t, `"t1"`, string(got))
}

func TestFileStore_ChecksumMismatchStartsEmpty(t *testing.T) {
	s := setupTestStore(t, "json")
	require.NoError(t, s.Set(KeyTasks, []byte(`[]`)))

	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"version":1,"entries":{"tasks":"[1]"}}`), 0o644))

	_, err := s.Get(KeyTasks)
	assert.ErrorIs(t, err, ErrNotFound)

	aside, err := filepath.Glob(s.Path() + corruptSuffix + "*")
	require.NoError(t, err)
	assert.Len(t, aside, 1)

	require.NoError(t, s.Set(KeyLastRollover, []byte(`"2025-10-15"`)))
	_, err = s.Get(KeyLastRollover)
	assert.NoError(t, err)
}

func TestFileStore_MalformedFileDoesNotBlockOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, defaultDataFile+".json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	s, err := NewFileStore(dir, "json")
	require.NoError(t, err)
	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	aside, err := filepath.Glob(path + corruptSuffix + "*")
	require.NoError(t, err)
	require.Len(t, aside, 1)
	kept, err := os.ReadFile(aside[0])
	require.NoError(t, err)
	assert.Equal(t, `{not json`, string(kept))

	require.NoError(t, s.Set(KeyTasks, []byte(`[{"id":"a"}]`)))
	require.NoError(t, s.Close())

	reopened, err := NewFileStore(dir, "json")
	require.NoError(t, err)
	v, err := reopened.Get(KeyTasks)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"}]`, string(v))
}

func TestFileStore_UnsupportedFormat(t *testing.T) {
	_, err := NewFileStore(t.TempDir(), "xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestBackupRestore_AcrossBackends(t *testing.T) {
	src := setupTestStore(t, "toml")
	require.NoError(t, src.Set(KeyTasks, []byte(`[{"id":"x"}]`)))
	require.NoError(t, src.Set(KeyLastRollover, []byte(`"2025-10-14"`)))

	backupPath := filepath.Join(t.TempDir(), "dayplan.bak")
	require.NoError(t, src.Backup(backupPath))

	dst, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = dst.Close() }()
	require.NoError(t, dst.Set("stale", []byte("1")))

	require.NoError(t, dst.Restore(backupPath))
	snap, err := dst.Snapshot()
	require.NoError(t, err)
	assert.Len(t, snap, 2)
	assert.Equal(t, `[{"id":"x"}]`, string(snap[KeyTasks]))

	mem := NewMemoryStore()
	require.NoError(t, mem.Restore(backupPath))
	keys, _ := mem.Keys()
	assert.Equal(t, []string{KeyLastRollover, KeyTasks}, keys)
}

func TestFileStore_WatchIgnoresOwnWrites(t *testing.T) {
	dir := t.TempDir()
	own, err := NewFileStore(dir, "json")
	require.NoError(t, err)
	other, err := NewFileStore(dir, "json")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan struct{}, 4)
	go func() {
		_ = own.Watch(ctx, func() { changed <- struct{}{} })
	}()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, own.Set(KeyTasks, []byte(`[]`)))
	select {
	case <-changed:
		t.Fatal("own write should not trigger a change notification")
	case <-time.After(500 * time.Millisecond):
	}

	require.NoError(t, other.Set(KeyLastRollover, []byte(`"2025-10-15"`)))
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected change notification for external write")
	}
}
