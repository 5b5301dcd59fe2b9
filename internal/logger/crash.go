// Package logger configures structured logging and records crash reports
// for dayplan.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

const (
	// CrashLogDir is the directory for crash logs relative to the data directory
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is the maximum number of crash logs to keep
	MaxCrashLogs = 10
)

// CrashContext stores what was going on when a panic happened.
type CrashContext struct {
	mu         sync.RWMutex
	lastInput  string
	activeTask string
	tracking   string
	command    string
	version    string
	basePath   string
}

var globalContext = &CrashContext{}

// SetBasePath sets the data directory crash logs are written under.
func SetBasePath(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.basePath = path
}

// SetVersion sets the application version for crash logs.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand sets the current command being executed.
func SetCommand(cmd string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
}

// SetLastInput sets the command arguments for crash context.
func SetLastInput(input string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.lastInput = truncateForLog(strings.TrimSpace(input), 500)
}

// SetActiveTask records the active task ("id title") and tracking state.
func SetActiveTask(task, trackingState string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.activeTask = truncateForLog(task, 300)
	globalContext.tracking = trackingState
}

func truncateForLog(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// CrashLog represents a crash log entry.
type CrashLog struct {
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
	Command    string    `json:"command"`
	PanicValue string    `json:"panic_value"`
	StackTrace string    `json:"stack_trace"`
	LastInput  string    `json:"last_input,omitempty"`
	ActiveTask string    `json:"active_task,omitempty"`
	Tracking   string    `json:"tracking,omitempty"`
	GoVersion  string    `json:"go_version"`
	OS         string    `json:"os"`
	Arch       string    `json:"arch"`
}

// HandlePanic recovers from a panic, writes a crash log and exits.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	if r := recover(); r != nil {
		log := createCrashLog(r)
		if err := writeCrashLog(log); err != nil {
			fmt.Fprintf(os.Stderr, "\n[CRASH] Failed to write crash log: %v\n", err)
			fmt.Fprintf(os.Stderr, "[CRASH] Panic: %v\n%s\n", r, debug.Stack())
		}

		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "dayplan stopped unexpectedly. Your tasks and time entries are saved.\n")
		fmt.Fprintf(os.Stderr, "A crash log has been written to:\n")
		fmt.Fprintf(os.Stderr, "  %s\n\n", getCrashLogPath(log.Timestamp))

		os.Exit(1)
	}
}

func createCrashLog(panicValue any) CrashLog {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		Version:    globalContext.version,
		Command:    globalContext.command,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		LastInput:  globalContext.lastInput,
		ActiveTask: globalContext.activeTask,
		Tracking:   globalContext.tracking,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

func writeCrashLog(log CrashLog) error {
	dir := getCrashLogDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create crash log dir: %w", err)
	}

	// Make room before writing so the new log is never the one pruned.
	if err := cleanOldCrashLogs(dir, MaxCrashLogs-1); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to clean old crash logs: %v\n", err)
	}

	if err := os.WriteFile(getCrashLogPath(log.Timestamp), []byte(formatCrashLog(log)), 0644); err != nil {
		return fmt.Errorf("write crash log: %w", err)
	}
	return nil
}

func getCrashLogDir() string {
	globalContext.mu.RLock()
	basePath := globalContext.basePath
	globalContext.mu.RUnlock()

	if basePath == "" {
		basePath = ".dayplan"
	}
	return filepath.Join(basePath, CrashLogDir)
}

func getCrashLogPath(t time.Time) string {
	filename := fmt.Sprintf("crash_%s.log", t.Format("20060102_150405"))
	return filepath.Join(getCrashLogDir(), filename)
}

func formatCrashLog(log CrashLog) string {
	var sb strings.Builder
	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 80)

	section := func(title, body string) {
		sb.WriteString("\n" + thin + "\n" + title + "\n" + thin + "\n" + body)
		if !strings.HasSuffix(body, "\n") {
			sb.WriteString("\n")
		}
	}

	sb.WriteString(rule + "\nDAYPLAN CRASH LOG\n" + rule + "\n\n")
	fmt.Fprintf(&sb, "Timestamp: %s\n", log.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Version:   %s\n", log.Version)
	fmt.Fprintf(&sb, "Command:   %s\n", log.Command)
	fmt.Fprintf(&sb, "Go:        %s\n", log.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:   %s/%s\n", log.OS, log.Arch)

	section("PANIC VALUE", log.PanicValue)
	section("STACK TRACE", log.StackTrace)
	if log.LastInput != "" {
		section("ARGUMENTS", log.LastInput)
	}
	if log.ActiveTask != "" || log.Tracking != "" {
		section("ACTIVE WORK", fmt.Sprintf("task:     %s\ntracking: %s", log.ActiveTask, log.Tracking))
	}

	sb.WriteString("\n" + rule + "\nEND OF CRASH LOG\n" + rule + "\n")
	return sb.String()
}

// cleanOldCrashLogs removes the oldest crash logs so at most keep remain.
func cleanOldCrashLogs(dir string, keep int) error {
	logs, err := crashLogNames(dir)
	if err != nil || len(logs) <= keep {
		return err
	}
	// os.ReadDir sorts by name, and names embed the timestamp.
	for _, name := range logs[:len(logs)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", name, err)
		}
	}
	return nil
}

func crashLogNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// ListCrashLogs returns the paths of all crash logs, oldest first.
func ListCrashLogs() ([]string, error) {
	dir := getCrashLogDir()
	names, err := crashLogNames(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}
