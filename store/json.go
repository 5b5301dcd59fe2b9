package store

import (
	"encoding/json"
	"errors"
	"log/slog"
)

// LoadJSON decodes the value under key into v. It reports whether a value
// was decoded. Missing keys leave v untouched; malformed values are logged
// and reported as absent so callers reset to an empty collection instead
// of refusing to start.
func LoadJSON(s Store, key string, v any, log *slog.Logger) bool {
	if log == nil {
		log = slog.Default()
	}
	data, err := s.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn("failed to read stored value", "key", key, "error", err)
		}
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Warn("discarding malformed stored value", "key", key, "error", err)
		return false
	}
	return true
}

// SaveJSON encodes v and writes it under key. Failures are logged and
// swallowed; persistence is best effort.
func SaveJSON(s Store, key string, v any, log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Warn("failed to encode value for storage", "key", key, "error", err)
		return
	}
	if err := s.Set(key, data); err != nil {
		log.Warn("failed to persist value", "key", key, "error", err)
	}
}
