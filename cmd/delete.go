/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error { return runDelete(cmd, a, args) })
	},
}

var deleteForce bool

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Delete without confirmation")
}

func runDelete(cmd *cobra.Command, a *app.App, args []string) error {
	task, err := resolveTask(a, args, a.Tasks.TodayTasks(), "Select a task to delete")
	if err != nil {
		return err
	}

	if !deleteForce && canPrompt() {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete %q", task.Title),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	if a.Tracking(task.ID) {
		a.Ledger.StopTracking()
	}
	if !a.Tasks.DeleteTask(task.ID) {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, task.ID)
	}
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]string{"status": "deleted", "id": task.ID})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %s\n", ui.Icon("✓", ui.StyleSuccess), task.Title)
	return nil
}
