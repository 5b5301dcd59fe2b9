package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
)

// backupDoc is the payload of a backup file before compression.
type backupDoc struct {
	Version int               `json:"version"`
	Entries map[string]string `json:"entries"`
}

func writeBackup(path string, entries map[string]string) error {
	raw, err := json.Marshal(backupDoc{Version: containerVersion, Entries: entries})
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	defer func() { _ = enc.Close() }()

	compressed := enc.EncodeAll(raw, nil)
	tmp := path + ".tmp"
	defer func() { _ = os.Remove(tmp) }()
	if err := os.WriteFile(tmp, compressed, 0o644); err != nil {
		return fmt.Errorf("write backup %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename backup %s: %w", path, err)
	}
	return nil
}

func readBackup(path string) (map[string]string, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup %s: %w", path, err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress backup %s: %w", path, err)
	}
	var doc backupDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode backup %s: %w", path, err)
	}
	if doc.Entries == nil {
		doc.Entries = map[string]string{}
	}
	return doc.Entries, nil
}
