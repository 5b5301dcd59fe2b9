/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/spf13/cobra"
)

// statsCmd groups the report commands
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Compare planned and tracked time",
}

var statsDailyCmd = &cobra.Command{
	Use:   "daily [date]",
	Short: "Report for one day (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			day, err := parseDay(a.Clock, firstArg(args))
			if err != nil {
				return err
			}
			report := a.Analytics.Daily(day)
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), report)
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderDaily(report))
			return nil
		})
	},
}

var statsWeeklyCmd = &cobra.Command{
	Use:   "weekly [weekStart]",
	Short: "Report for the Monday-based week containing a day (default this week)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			day, err := parseDay(a.Clock, firstArg(args))
			if err != nil {
				return err
			}
			report := a.Analytics.Weekly(clock.WeekStart(day))
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), report)
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderWeekly(report))
			return nil
		})
	},
}

var statsMonthlyCmd = &cobra.Command{
	Use:   "monthly [YYYY-MM]",
	Short: "Report for a month (default this month)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			year, month, err := parseMonth(a.Clock, firstArg(args))
			if err != nil {
				return err
			}
			report := a.Analytics.Monthly(year, month)
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), report)
			}
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderMonthly(report))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsDailyCmd, statsWeeklyCmd, statsMonthlyCmd)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func parseMonth(clk clock.Clock, s string) (int, time.Month, error) {
	if s == "" {
		now := clk.Now()
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, want YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}
