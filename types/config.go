/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import "time"

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose  bool           `mapstructure:"verbose"`
	Config   string         `mapstructure:"config"`
	JSON     bool           `mapstructure:"json"`
	Data     DataConfig     `mapstructure:"data" validate:"required"`
	Log      LogConfig      `mapstructure:"log"`
	Rollover RolloverConfig `mapstructure:"rollover"`
	Tracking TrackingConfig `mapstructure:"tracking"`
	Bridge   BridgeConfig   `mapstructure:"bridge"`
	Watch    WatchConfig    `mapstructure:"watch"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	Dir     string `mapstructure:"dir" validate:"required"`
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite"`
	// Format applies to the file backend only
	Format string `mapstructure:"format" validate:"required,oneof=json yaml yml toml cbor"`
}

// LogConfig controls the structured log file
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

// RolloverConfig controls how often the day change is checked
type RolloverConfig struct {
	PollInterval time.Duration `mapstructure:"pollInterval" validate:"min=1s"`
}

// TrackingConfig controls the time tracking tick
type TrackingConfig struct {
	TickInterval time.Duration `mapstructure:"tickInterval" validate:"min=100ms"`
}

// BridgeConfig controls replication of state for the browser popup
type BridgeConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Dir      string        `mapstructure:"dir"`
	Interval time.Duration `mapstructure:"interval" validate:"min=100ms"`
}

// WatchConfig controls reloading when another process changes the store
type WatchConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
