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

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Plan a new task",
	Long: `Add a task to a day's plan.

Examples:
  dayplan add "Standup" --slot 09:30 --duration 15 --category work --recurring
  dayplan add "Read chapter 4" --category learning --duration 45 --date tomorrow
  dayplan add "Gym" --category health --priority high --tags morning,cardio`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error { return runAdd(cmd, a, args) })
	},
}

var (
	addDesc      string
	addCategory  string
	addPriority  string
	addDuration  int
	addDate      string
	addSlot      string
	addRecurring bool
	addTags      []string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDesc, "desc", "d", "", "Task description")
	addCmd.Flags().StringVar(&addCategory, "category", string(models.CategoryOther), "work, personal, learning, health or other")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", string(models.PriorityMedium), "low, medium, high or urgent")
	addCmd.Flags().IntVar(&addDuration, "duration", 30, "Planned minutes")
	addCmd.Flags().StringVar(&addDate, "date", "today", "Day to plan the task for (YYYY-MM-DD, today, tomorrow)")
	addCmd.Flags().StringVar(&addSlot, "slot", "", "Start time HH:MM")
	addCmd.Flags().BoolVarP(&addRecurring, "recurring", "r", false, "Carry the task over to the next day")
	addCmd.Flags().StringSliceVar(&addTags, "tags", nil, "Comma separated tags")
}

func runAdd(cmd *cobra.Command, a *app.App, args []string) error {
	day, err := parseDay(a.Clock, addDate)
	if err != nil {
		return err
	}
	task, err := a.Tasks.AddTask(tasks.NewTask{
		Title:       strings.Join(args, " "),
		Description: addDesc,
		Category:    models.Category(strings.ToLower(addCategory)),
		Priority:    models.TaskPriority(strings.ToLower(addPriority)),
		Duration:    addDuration,
		Date:        day,
		TimeSlot:    addSlot,
		Recurring:   addRecurring,
		Tags:        addTags,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, task)
	}
	fmt.Fprintf(out, "%s Added %s for %s (%s)\n", ui.Icon("✓", ui.StyleSuccess), ui.StyleTitle.Render(task.Title), task.Date, ui.TruncateID(task.ID))
	return nil
}
