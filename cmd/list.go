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

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the tasks planned for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error { return runList(cmd, a) })
	},
}

var (
	listDate   string
	listStatus string
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listDate, "date", "today", "Day to list (YYYY-MM-DD, today, yesterday, tomorrow)")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Only show tasks with this status")
}

func runList(cmd *cobra.Command, a *app.App) error {
	day, err := parseDay(a.Clock, listDate)
	if err != nil {
		return err
	}
	list := a.Tasks.ByDate(day)
	if listStatus != "" {
		status, err := parseStatus(listStatus)
		if err != nil {
			return err
		}
		list = filterStatus(list, status)
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		if list == nil {
			list = []models.Task{}
		}
		return printJSON(out, list)
	}

	done := len(filterStatus(list, models.StatusCompleted))
	ui.RenderPageHeader(out, "Plan for "+day, fmt.Sprintf("%d of %d done", done, len(list)))
	fmt.Fprint(out, ui.RenderTasks(list))
	return nil
}
