/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one task in detail",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			task, err := resolveTask(a, args, a.Tasks.TodayTasks(), "Select a task to show")
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), task)
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderTask(task))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
