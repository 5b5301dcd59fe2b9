package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const (
	defaultDataFile = "state"
	checksumSuffix  = ".checksum"
	lockSuffix      = ".lock"
	corruptSuffix   = ".corrupt-"
)

// FileStore implements Store with a single container file. Every operation
// takes a cross-process file lock, reloads the file, applies the change and
// writes it back atomically, so the CLI and a background process can share
// the same data directory.
type FileStore struct {
	mu       sync.Mutex
	filePath string
	format   string
	flk      *flock.Flock
	entries  map[string]string
	// lastSum is the checksum of the content this process last wrote (or
	// found at open); Watch uses it to ignore its own writes.
	lastSum string
}

// NewFileStore opens (creating if needed) a file store in dir using the
// given container format.
func NewFileStore(dir, format string) (*FileStore, error) {
	f, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	s := &FileStore{
		filePath: filepath.Join(dir, defaultDataFile+"."+f),
		format:   f,
		entries:  make(map[string]string),
	}
	s.flk = flock.New(s.filePath + lockSuffix)

	err = s.withLock(func() error {
		if err := s.load(); err != nil {
			return err
		}
		if data, err := os.ReadFile(s.filePath); err == nil {
			s.lastSum = calculateChecksum(data)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the container file path.
func (s *FileStore) Path() string { return s.filePath }

func (s *FileStore) withLock(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock %s: %w", s.filePath, err)
	}
	defer func() { _ = s.flk.Unlock() }()
	return fn()
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// load reads the container file and verifies its checksum. Caller holds
// the lock.
func (s *FileStore) load() error {
	checksumPath := s.filePath + checksumSuffix

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.entries = make(map[string]string)
			_ = os.Remove(checksumPath)
			return nil
		}
		return fmt.Errorf("failed to read data file %s: %w", s.filePath, err)
	}

	if expected, err := os.ReadFile(checksumPath); err == nil {
		actual := calculateChecksum(data)
		if strings.TrimSpace(string(expected)) != actual {
			s.quarantine(fmt.Errorf("%w for %s", ErrChecksumMismatch, s.filePath))
			return nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error checking checksum file %s: %w", checksumPath, err)
	}

	if len(data) == 0 {
		s.entries = make(map[string]string)
		return nil
	}
	entries, err := decodeContainer(s.format, data)
	if err != nil {
		s.quarantine(fmt.Errorf("%s: %w", s.filePath, err))
		return nil
	}
	s.entries = entries
	return nil
}

// quarantine moves an unreadable data file aside and resets to an empty
// store; the next save writes a fresh file and checksum. Caller holds the
// lock.
func (s *FileStore) quarantine(cause error) {
	aside := fmt.Sprintf("%s%s%s", s.filePath, corruptSuffix, time.Now().Format("20060102-150405.000"))
	if err := os.Rename(s.filePath, aside); err != nil {
		slog.Warn("could not move unreadable data file aside", "path", s.filePath, "error", err)
		aside = ""
	}
	_ = os.Remove(s.filePath + checksumSuffix)
	slog.Warn("data file unreadable, starting with an empty store", "path", s.filePath, "moved_to", aside, "error", cause)
	s.entries = make(map[string]string)
}

// save writes the container to a temp file, then renames data and checksum
// into place. Caller holds the lock.
func (s *FileStore) save() error {
	data, err := encodeContainer(s.format, s.entries)
	if err != nil {
		return fmt.Errorf("failed to marshal store to %s: %w", s.format, err)
	}

	tempPath := s.filePath + ".tmp"
	checksumPath := s.filePath + checksumSuffix
	tempChecksumPath := checksumPath + ".tmp"
	defer func() { _ = os.Remove(tempPath) }()
	defer func() { _ = os.Remove(tempChecksumPath) }()

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary data file %s: %w", tempPath, err)
	}
	sum := calculateChecksum(data)
	if err := os.WriteFile(tempChecksumPath, []byte(sum), 0o644); err != nil {
		return fmt.Errorf("failed to write temporary checksum file %s: %w", tempChecksumPath, err)
	}
	if err := os.Rename(tempPath, s.filePath); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", tempPath, s.filePath, err)
	}
	if err := os.Rename(tempChecksumPath, checksumPath); err != nil {
		return fmt.Errorf("data file %s updated, but checksum %s was not: %w", s.filePath, checksumPath, err)
	}
	s.lastSum = sum
	return nil
}

// Get returns the value stored under key.
func (s *FileStore) Get(key string) ([]byte, error) {
	var out []byte
	err := s.withLock(func() error {
		if err := s.load(); err != nil {
			return err
		}
		v, ok := s.entries[key]
		if !ok {
			return ErrNotFound
		}
		out = []byte(v)
		return nil
	})
	return out, err
}

// Set stores value under key.
func (s *FileStore) Set(key string, value []byte) error {
	return s.withLock(func() error {
		if err := s.load(); err != nil {
			return err
		}
		prev, existed := s.entries[key]
		s.entries[key] = string(value)
		if err := s.save(); err != nil {
			if existed {
				s.entries[key] = prev
			} else {
				delete(s.entries, key)
			}
			return fmt.Errorf("failed to save key %q: %w", key, err)
		}
		return nil
	})
}

// Delete removes key.
func (s *FileStore) Delete(key string) error {
	return s.withLock(func() error {
		if err := s.load(); err != nil {
			return err
		}
		if _, ok := s.entries[key]; !ok {
			return nil
		}
		delete(s.entries, key)
		return s.save()
	})
}

// Keys lists stored keys in sorted order.
func (s *FileStore) Keys() ([]string, error) {
	var keys []string
	err := s.withLock(func() error {
		if err := s.load(); err != nil {
			return err
		}
		keys = slices.Sorted(maps.Keys(s.entries))
		return nil
	})
	return keys, err
}

// Snapshot returns a copy of every key and value.
func (s *FileStore) Snapshot() (map[string][]byte, error) {
	out := make(map[string][]byte)
	err := s.withLock(func() error {
		if err := s.load(); err != nil {
			return err
		}
		for k, v := range s.entries {
			out[k] = []byte(v)
		}
		return nil
	})
	return out, err
}

// Backup writes a compressed snapshot of the store to destinationPath.
func (s *FileStore) Backup(destinationPath string) error {
	return s.withLock(func() error {
		if err := s.load(); err != nil {
			return fmt.Errorf("failed to load store for backup: %w", err)
		}
		return writeBackup(destinationPath, s.entries)
	})
}

// Restore replaces the store contents with a backup.
func (s *FileStore) Restore(sourcePath string) error {
	entries, err := readBackup(sourcePath)
	if err != nil {
		return err
	}
	return s.withLock(func() error {
		s.entries = entries
		return s.save()
	})
}

// Close releases the file lock. flock.Unlock is idempotent.
func (s *FileStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
