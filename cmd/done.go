/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/models"
	"github.com/spf13/cobra"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done [id]",
	Aliases: []string{"complete"},
	Short:   "Mark a task completed",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			open := filterStatus(a.Tasks.TodayTasks(), models.StatusPending, models.StatusInProgress)
			task, err := resolveTask(a, args, open, "Select a task to complete")
			if err != nil {
				return err
			}
			if a.Tracking(task.ID) {
				a.Ledger.StopTracking()
			}
			return transition(cmd, task, "Completed", a.Tasks.CompleteTask)
		})
	},
}

// skipCmd represents the skip command
var skipCmd = &cobra.Command{
	Use:   "skip [id]",
	Short: "Skip a pending task for the day",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			task, err := resolveTask(a, args, a.Tasks.PendingToday(), "Select a task to skip")
			if err != nil {
				return err
			}
			return transition(cmd, task, "Skipped", a.Tasks.SkipTask)
		})
	},
}

func init() {
	rootCmd.AddCommand(doneCmd, skipCmd)
}
