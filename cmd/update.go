/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/tasks"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/josephgoksu/dayplan/models"
	"github.com/spf13/cobra"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Change the fields of a task",
	Long: `Update a task. Only the flags you pass are changed.

Examples:
  dayplan update 5f0c1a2b --duration 45
  dayplan update 5f0c1a2b --title "Standup (short)" --recurring=false`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error { return runUpdate(cmd, a, args) })
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().String("title", "", "New title")
	updateCmd.Flags().StringP("desc", "d", "", "New description")
	updateCmd.Flags().String("category", "", "work, personal, learning, health or other")
	updateCmd.Flags().StringP("priority", "p", "", "low, medium, high or urgent")
	updateCmd.Flags().Int("duration", 0, "Planned minutes")
	updateCmd.Flags().String("date", "", "Move to another day (YYYY-MM-DD, today, tomorrow)")
	updateCmd.Flags().String("slot", "", "Start time HH:MM (empty to clear)")
	updateCmd.Flags().BoolP("recurring", "r", false, "Carry the task over to the next day")
	updateCmd.Flags().StringSlice("tags", nil, "Replace the tags")
}

// patchFromFlags builds a Patch from the flags the user actually set.
func patchFromFlags(cmd *cobra.Command, a *app.App) (tasks.Patch, error) {
	var p tasks.Patch
	flags := cmd.Flags()
	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	p.Title = str("title")
	p.Description = str("desc")
	p.TimeSlot = str("slot")
	if v := str("category"); v != nil {
		c := models.Category(strings.ToLower(*v))
		p.Category = &c
	}
	if v := str("priority"); v != nil {
		pr := models.TaskPriority(strings.ToLower(*v))
		p.Priority = &pr
	}
	if v := str("date"); v != nil {
		day, err := parseDay(a.Clock, *v)
		if err != nil {
			return p, err
		}
		p.Date = &day
	}
	if flags.Changed("duration") {
		d, _ := flags.GetInt("duration")
		p.Duration = &d
	}
	if flags.Changed("recurring") {
		r, _ := flags.GetBool("recurring")
		p.Recurring = &r
	}
	if flags.Changed("tags") {
		tags, _ := flags.GetStringSlice("tags")
		p.Tags = &tags
	}
	return p, nil
}

func runUpdate(cmd *cobra.Command, a *app.App, args []string) error {
	task, err := resolveTask(a, args, a.Tasks.TodayTasks(), "Select a task to update")
	if err != nil {
		return err
	}
	patch, err := patchFromFlags(cmd, a)
	if err != nil {
		return err
	}
	updated, ok, err := a.Tasks.UpdateTask(task.ID, patch)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, task.ID)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Updated %s\n", ui.Icon("✓", ui.StyleSuccess), ui.StyleTitle.Render(updated.Title))
	return nil
}
