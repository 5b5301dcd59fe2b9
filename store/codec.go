package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	yaml "gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
	formatCBOR = "cbor"
)

// Formats lists the container formats FileStore can read and write.
func Formats() []string {
	return []string{formatJSON, formatYAML, formatTOML, formatCBOR}
}

// container is the on-disk document holding every key.
type container struct {
	Version int               `json:"version" yaml:"version" toml:"version" cbor:"version"`
	Entries map[string]string `json:"entries" yaml:"entries" toml:"entries" cbor:"entries"`
}

const containerVersion = 1

func normalizeFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		return formatJSON, nil
	}
	switch f {
	case formatJSON, formatYAML, formatTOML, formatCBOR:
		return f, nil
	case "yml":
		return formatYAML, nil
	}
	return "", fmt.Errorf("%w: %s. Supported formats are %s", ErrUnsupportedFormat, format, strings.Join(Formats(), ", "))
}

func encodeContainer(format string, entries map[string]string) ([]byte, error) {
	doc := container{Version: containerVersion, Entries: entries}
	if doc.Entries == nil {
		doc.Entries = map[string]string{}
	}
	switch format {
	case formatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case formatYAML:
		return yaml.Marshal(doc)
	case formatTOML:
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to marshal TOML: %w", err)
		}
		return buf.Bytes(), nil
	case formatCBOR:
		return cbor.Marshal(doc)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

func decodeContainer(format string, data []byte) (map[string]string, error) {
	var doc container
	var err error
	switch format {
	case formatJSON:
		err = json.Unmarshal(data, &doc)
	case formatYAML:
		err = yaml.Unmarshal(data, &doc)
	case formatTOML:
		err = toml.Unmarshal(data, &doc)
	case formatCBOR:
		err = cbor.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", strings.ToUpper(format), err)
	}
	if doc.Entries == nil {
		doc.Entries = map[string]string{}
	}
	return doc.Entries, nil
}
