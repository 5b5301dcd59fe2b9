/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/josephgoksu/dayplan/models"
	"github.com/spf13/cobra"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start [id]",
	Short: "Start working on a task",
	Long: `Mark a pending task in progress and open a time segment on it. Any other
task in progress is stopped first.

With --track the time tracker is started as well, so the task completes
itself once the tracked time reaches the planned duration.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			task, err := resolveTask(a, args, a.Tasks.PendingToday(), "Select a task to start")
			if err != nil {
				return err
			}
			if startTrack {
				a.Ledger.StartTracking(task.ID)
				task, _ = a.Tasks.Get(task.ID)
				return reportTask(cmd, task, "Tracking")
			}
			return transition(cmd, task, "Started", a.Tasks.StartTask)
		})
	},
}

var startTrack bool

// pauseCmd represents the pause command
var pauseCmd = &cobra.Command{
	Use:   "pause [id]",
	Short: "Pause a task in progress",
	Long: `Close the open time segment and return the task to pending. If the tracker
is running on the task, the tracking entry is paused instead and the task
keeps its place.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			task, err := resolveTask(a, args, a.Tasks.InProgress(), "Select a task to pause")
			if err != nil {
				return err
			}
			if a.Tracking(task.ID) {
				if !a.Ledger.PauseTracking("manual") {
					return fmt.Errorf("%w: tracking is already paused", ErrInvalidTransition)
				}
				task, _ = a.Tasks.Get(task.ID)
				return reportTask(cmd, task, "Paused tracking on")
			}
			return transition(cmd, task, "Paused", a.Tasks.PauseTask)
		})
	},
}

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop [id]",
	Short: "Stop working on a task",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			task, err := resolveTask(a, args, a.Tasks.InProgress(), "Select a task to stop")
			if err != nil {
				return err
			}
			if a.Tracking(task.ID) {
				a.Ledger.StopTracking()
				task, _ = a.Tasks.Get(task.ID)
				return reportTask(cmd, task, "Stopped")
			}
			return transition(cmd, task, "Stopped", a.Tasks.StopTask)
		})
	},
}

func init() {
	rootCmd.AddCommand(startCmd, pauseCmd, stopCmd)
	startCmd.Flags().BoolVarP(&startTrack, "track", "t", false, "Also start the time tracker")
}

// transition applies a task state change and reports the result. ok=false
// from the store means the status change is not allowed.
func transition(cmd *cobra.Command, task models.Task, verb string, fn func(id string) (models.Task, bool)) error {
	updated, ok := fn(task.ID)
	if !ok {
		return fmt.Errorf("%w: %q is %s", ErrInvalidTransition, task.Title, task.Status)
	}
	return reportTask(cmd, updated, verb)
}

func reportTask(cmd *cobra.Command, task models.Task, verb string) error {
	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, task)
	}
	fmt.Fprintf(out, "%s %s %s (%s of %s)\n", ui.StatusIcon(task.Status), verb,
		ui.StyleTitle.Render(task.Title), ui.FormatMinutes(task.ActualDuration), ui.FormatMinutes(task.Duration))
	return nil
}
