package store

import "errors"

// Keys of the persisted state layout.
const (
	KeyTasks            = "tasks"
	KeyActiveTaskID     = "activeTaskId"
	KeyTimeEntries      = "timeEntries"
	KeyCurrentEntry     = "currentEntry"
	KeyPomodoroSessions = "pomodoro-sessions"
	KeyNotifications    = "notifications"
	KeyLastRollover     = "lastRollover"
	KeySettings         = "app-settings"
)

var (
	// ErrNotFound is returned by Get when a key has no value.
	ErrNotFound = errors.New("key not found")
	// ErrChecksumMismatch is logged when a data file does not match its
	// checksum sidecar; the file is moved aside and the store starts empty.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrUnsupportedFormat is returned for unknown container formats.
	ErrUnsupportedFormat = errors.New("unsupported data format")
)

// Store is a local string-keyed key-value store. Values are opaque bytes;
// callers store JSON documents.
type Store interface {
	// Get returns the value for key or ErrNotFound.
	Get(key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Keys lists stored keys in sorted order.
	Keys() ([]string, error)

	// Snapshot returns a copy of every key and value.
	Snapshot() (map[string][]byte, error)

	// Backup writes a compressed snapshot of all keys to destinationPath.
	Backup(destinationPath string) error

	// Restore replaces all keys with the contents of a Backup file.
	Restore(sourcePath string) error

	// Close releases any resources held by the store.
	Close() error
}
