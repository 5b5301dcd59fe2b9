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

// rolloverCmd represents the rollover command
var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Copy yesterday's recurring tasks into today",
	Long: `Run the daily rollover. Recurring tasks from yesterday get a fresh pending
copy today unless today already has a task with the same title, time slot
and category. Without --force nothing happens if the rollover already ran
today.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return openApp(false, func(a *app.App) error {
			ran, created := a.Rollover.CheckAndRun(rolloverForce)
			out := cmd.OutOrStdout()
			if isJSON() {
				if created == nil {
					created = []models.Task{}
				}
				return printJSON(out, map[string]any{"ran": ran, "lastRollover": a.Rollover.LastRun(), "created": created})
			}
			if !ran {
				fmt.Fprintln(out, ui.RenderWarningPanel("Rollover skipped",
					fmt.Sprintf("Already ran on %s. Use --force to run it again.", a.Rollover.LastRun())))
				return nil
			}
			if len(created) == 0 {
				fmt.Fprintln(out, ui.RenderPanel("Rollover", "Nothing to roll over."))
				return nil
			}
			fmt.Fprintln(out, ui.RenderSuccessPanel("Rollover",
				fmt.Sprintf("%s Rolled over %d tasks", ui.Icon("↻", ui.StylePrimary), len(created))))
			fmt.Fprint(out, ui.RenderTasks(created))
			return nil
		})
	},
}

var rolloverForce bool

func init() {
	rootCmd.AddCommand(rolloverCmd)
	rolloverCmd.Flags().BoolVarP(&rolloverForce, "force", "f", false, "Run even if the rollover already ran today")
}
