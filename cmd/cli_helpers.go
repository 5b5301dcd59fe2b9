package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/models"
	"github.com/spf13/viper"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// findTask resolves a full id or a unique id prefix.
func findTask(a *app.App, ref string) (models.Task, error) {
	ref = strings.TrimSpace(ref)
	if t, ok := a.Tasks.Get(ref); ok {
		return t, nil
	}
	var match []models.Task
	for _, t := range a.Tasks.Tasks() {
		if strings.HasPrefix(t.ID, ref) {
			match = append(match, t)
		}
	}
	switch len(match) {
	case 0:
		return models.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, ref)
	case 1:
		return match[0], nil
	default:
		return models.Task{}, fmt.Errorf("%w: %s", ErrAmbiguousID, ref)
	}
}

// resolveTask returns the task named by args[0], or asks the user to pick
// one of candidates when no id was given.
func resolveTask(a *app.App, args []string, candidates []models.Task, label string) (models.Task, error) {
	if len(args) > 0 && args[0] != "" {
		return findTask(a, args[0])
	}
	if !canPrompt() {
		return models.Task{}, ErrNoTaskID
	}
	return selectTaskInteractive(candidates, label)
}

// parseDay accepts YYYY-MM-DD or one of today, yesterday and tomorrow.
func parseDay(clk clock.Clock, s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return clock.Today(clk), nil
	case "yesterday":
		return clock.Yesterday(clk), nil
	case "tomorrow":
		return clock.AddDays(clock.Today(clk), 1), nil
	}
	if _, err := clock.ParseDayKey(s); err != nil {
		return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return s, nil
}

// parseStatus validates a --status value.
func parseStatus(value string) (models.TaskStatus, error) {
	for _, s := range models.AllStatuses() {
		if string(s) == value {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", value)
}

func filterStatus(list []models.Task, statuses ...models.TaskStatus) []models.Task {
	var out []models.Task
	for _, t := range list {
		for _, s := range statuses {
			if t.Status == s {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
