/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/config"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/spf13/cobra"
)

// settingsCmd groups the app settings commands
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change pomodoro and notification settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			s := a.Settings()
			out := cmd.OutOrStdout()
			if isJSON() {
				return printJSON(out, s)
			}
			p := s.Pomodoro
			values := map[string]string{
				"pomodoro.enabled":                  fmt.Sprint(p.Enabled),
				"pomodoro.workDuration":             ui.FormatMinutes(p.WorkDuration),
				"pomodoro.shortBreak":               ui.FormatMinutes(p.ShortBreak),
				"pomodoro.longBreak":                ui.FormatMinutes(p.LongBreak),
				"pomodoro.intervalsBeforeLongBreak": fmt.Sprint(p.IntervalsBeforeLongBreak),
				"pomodoro.autoStartBreaks":          fmt.Sprint(p.AutoStartBreaks),
				"pomodoro.autoStartPomodoros":       fmt.Sprint(p.AutoStartPomodoros),
				"notifications.sound":               fmt.Sprint(s.Notifications.Sound),
			}
			t := &ui.Table{Headers: []string{"Key", "Value"}}
			for _, k := range config.SettingKeys {
				t.Rows = append(t.Rows, []string{k, values[k]})
			}
			fmt.Fprint(out, t.Render())
			return nil
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long:  "Change one setting. Keys:\n  " + strings.Join(config.SettingKeys, "\n  "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			s := a.Settings()
			if err := config.SetSetting(&s, args[0], args[1]); err != nil {
				return err
			}
			if err := a.UpdateSettings(s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", ui.Icon("✓", ui.StyleSuccess), args[0], args[1])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
}
