package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// GetGlobalConfigDir returns the path to the global data directory (~/.dayplan).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".dayplan"), nil
}

// GetDataDir returns the directory holding the store, logs and crash logs.
// Resolution order (first match wins):
// 1. Explicit config via "data.dir" (Viper/env/flag)
// 2. XDG_DATA_HOME/dayplan (if XDG_DATA_HOME is set)
// 3. Global fallback: ~/.dayplan
func GetDataDir() string {
	if dir := viper.GetString("data.dir"); dir != "" {
		return ExpandHome(dir)
	}
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "dayplan")
	}
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "./.dayplan"
	}
	return dir
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ResolveIn returns path unchanged when absolute, otherwise joined to base.
func ResolveIn(base, path string) string {
	path = ExpandHome(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
