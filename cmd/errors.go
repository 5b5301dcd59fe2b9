package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/viper"
)

var (
	// ErrNoTasksFound is returned when an interactive selection is attempted but no tasks are available.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
	// ErrTaskNotFound is returned when an id matches no task.
	ErrTaskNotFound = errors.New("task not found")
	// ErrAmbiguousID is returned when an id prefix matches several tasks.
	ErrAmbiguousID = errors.New("task id prefix matches more than one task")
	// ErrNoTaskID is returned when a task id is needed and no prompt is possible.
	ErrNoTaskID = errors.New("task id required")
	// ErrInvalidTransition is returned when a task cannot move to the requested status.
	ErrInvalidTransition = errors.New("task cannot change to that status")
)

// friendlyMessage maps an error to the line shown without --verbose.
func friendlyMessage(err error) string {
	switch {
	case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		return "Cancelled."
	case errors.Is(err, ErrNoTaskID):
		return "Please pass a task id (run `dayplan list` to see them)."
	default:
		return "Error: " + err.Error()
	}
}

// PrintError prints an error message without exiting, allowing for recovery.
// With --verbose the technical error is printed instead.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// LogError logs an error without printing to stderr if verbose mode is off.
func LogError(msg string, err error) {
	if viper.GetBool("verbose") {
		if err != nil {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s: %v\n", msg, err)
		} else {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)
		}
	}
}
