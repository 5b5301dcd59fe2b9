// Package config provides centralized configuration constants for dayplan.
// All default values should be defined here to ensure a single source of truth.
package config

import "time"

// Storage defaults
const (
	DefaultBackend = "file"
	DefaultFormat  = "json"
)

// Logging defaults, relative to the data directory
const (
	DefaultLogPath  = "logs/dayplan.log"
	DefaultLogLevel = "info"
	CrashLogDir     = "crash_logs"
)

// Scheduling defaults
const (
	DefaultPollInterval   = time.Minute
	DefaultTickInterval   = time.Second
	DefaultBridgeInterval = time.Second
	DefaultBridgeDir      = "bridge"
)
