/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/tracking"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/josephgoksu/dayplan/models"
	"github.com/spf13/cobra"
)

var errNotTracking = errors.New("nothing is being tracked")

// trackCmd groups the time tracker commands
var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Track time against a task",
	Long: `The tracker records time entries with pauses and a focus score. A task is
completed automatically once its tracked time reaches the planned duration.`,
}

var trackStartCmd = &cobra.Command{
	Use:   "start [id]",
	Short: "Start tracking a task (stops any running entry)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			open := filterStatus(a.Tasks.TodayTasks(), models.StatusPending, models.StatusInProgress)
			task, err := resolveTask(a, args, open, "Select a task to track")
			if err != nil {
				return err
			}
			entry := a.Ledger.StartTracking(task.ID)
			return reportEntry(cmd, a, entry, "Tracking")
		})
	},
}

var trackPauseCmd = &cobra.Command{
	Use:   "pause [reason]",
	Short: "Pause the running entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			reason := strings.Join(args, " ")
			if reason == "" {
				reason = "manual"
			}
			if !a.Ledger.PauseTracking(reason) {
				return trackingError(a)
			}
			entry, _ := a.Ledger.Current()
			return reportEntry(cmd, a, entry, "Paused")
		})
	},
}

var trackResumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume the paused entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			if !a.Ledger.ResumeTracking() {
				return trackingError(a)
			}
			entry, _ := a.Ledger.Current()
			return reportEntry(cmd, a, entry, "Resumed")
		})
	},
}

var trackStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running entry and record it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			entry, ok := a.Ledger.StopTracking()
			if !ok {
				return errNotTracking
			}
			return reportEntry(cmd, a, entry, "Stopped")
		})
	},
}

var trackStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running entry and today's tracked time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			// A tick applies auto-completion for time tracked while no
			// process was running.
			a.Ledger.Tick()

			out := cmd.OutOrStdout()
			entry, running := a.Ledger.Current()
			if isJSON() {
				status := map[string]any{
					"state":          a.Ledger.State(),
					"totalTimeToday": a.Ledger.TotalTimeToday(),
				}
				if running {
					status["currentEntry"] = entry
				}
				return printJSON(out, status)
			}
			if !running {
				fmt.Fprintln(out, ui.StyleSubtle.Render("Not tracking."))
			} else {
				fmt.Fprintf(out, "%s\n%s", ui.StyleHeader.Render(ui.Title(string(a.Ledger.State()))), ui.RenderEntry(entry, taskTitle(a, entry.TaskID), a.Clock.Now()))
			}
			fmt.Fprintf(out, "%s%s\n", ui.StyleLabel.Render("Today"), ui.FormatMinutes(a.Ledger.TotalTimeToday()))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.AddCommand(trackStartCmd, trackPauseCmd, trackResumeCmd, trackStopCmd, trackStatusCmd)
}

func trackingError(a *app.App) error {
	switch a.Ledger.State() {
	case tracking.StateIdle:
		return errNotTracking
	case tracking.StatePaused:
		return fmt.Errorf("%w: tracking is already paused", ErrInvalidTransition)
	default:
		return fmt.Errorf("%w: tracking is already running", ErrInvalidTransition)
	}
}

func taskTitle(a *app.App, id string) string {
	if t, ok := a.Tasks.Get(id); ok {
		return t.Title
	}
	return "(deleted task)"
}

func reportEntry(cmd *cobra.Command, a *app.App, entry models.TimeEntry, verb string) error {
	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, entry)
	}
	fmt.Fprintf(out, "%s %s %s\n", ui.Icon("●", ui.StylePrimary), verb, ui.StyleTitle.Render(taskTitle(a, entry.TaskID)))
	if entry.EndTime != nil {
		fmt.Fprintf(out, "  %s tracked, focus score %s\n", ui.FormatMinutes(entry.Duration), ui.FormatPercentage(float64(entry.FocusScore)))
	}
	return nil
}
