/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/internal/pomodoro"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/josephgoksu/dayplan/models"
	"github.com/spf13/cobra"
)

var errPomodoroDisabled = errors.New("the pomodoro timer is disabled (dayplan settings set pomodoro.enabled true)")

// pomodoroCmd represents the pomodoro command
var pomodoroCmd = &cobra.Command{
	Use:     "pomodoro [id]",
	Aliases: []string{"pomo"},
	Short:   "Run a pomodoro focus timer, optionally tracking a task",
	Long: `Start a focus phase and keep the timer in the foreground. Breaks pause
the time tracker and going back to work resumes it.

On a terminal an interactive timer is shown. Otherwise a line is printed
every minute until the phase ends.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error { return runPomodoro(cmd, a, args) })
	},
}

var pomodoroStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus time from pomodoro sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error { return runPomodoroStats(cmd, a) })
	},
}

func init() {
	rootCmd.AddCommand(pomodoroCmd)
	pomodoroCmd.AddCommand(pomodoroStatsCmd)
}

func runPomodoro(cmd *cobra.Command, a *app.App, args []string) error {
	var task models.Task
	if len(args) > 0 {
		t, err := findTask(a, args[0])
		if err != nil {
			return err
		}
		task = t
		if !a.Tracking(task.ID) {
			a.Ledger.StartTracking(task.ID)
		}
	}
	if !a.Pomodoro.StartPomodoro(task.ID) {
		return errPomodoroDisabled
	}

	if ui.IsInteractive() && !isJSON() {
		return ui.RunPomodoro(a.Pomodoro, task.Title)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return followTimer(ctx, cmd.OutOrStdout(), a.Pomodoro, time.Second)
}

// followTimer prints the timer state every minute and on phase changes. It
// returns once the engine has stayed idle past the auto-start delay.
func followTimer(ctx context.Context, w io.Writer, timer ui.Timer, poll time.Duration) error {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	last := timer.Snapshot()
	fmt.Fprintf(w, "%s %s\n", phaseLabel(last.Phase), ui.FormatClock(last.Remaining))
	var idleSince time.Time

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case now := <-ticker.C:
			snap := timer.Snapshot()
			switch {
			case snap.Phase != last.Phase:
				fmt.Fprintf(w, "%s %s\n", phaseLabel(snap.Phase), ui.FormatClock(snap.Remaining))
			case snap.Active && !snap.Paused && snap.Remaining%60 == 0 && snap.Remaining != last.Remaining:
				fmt.Fprintf(w, "  %s left\n", ui.FormatClock(snap.Remaining))
			}
			last = snap

			if snap.Phase != models.PhaseIdle {
				idleSince = time.Time{}
				continue
			}
			if idleSince.IsZero() {
				idleSince = now
			}
			if now.Sub(idleSince) > pomodoro.AutoStartDelay {
				fmt.Fprintf(w, "Done. %d pomodoros, %s focus today.\n", snap.Completed, ui.FormatMinutes(timer.TodaysFocusMinutes()))
				return nil
			}
		}
	}
}

func phaseLabel(p models.Phase) string {
	switch p {
	case models.PhaseFocus:
		return ui.StylePrimary.Render("Focus")
	case models.PhaseShortBreak:
		return ui.StyleSuccess.Render("Short break")
	case models.PhaseLongBreak:
		return ui.StyleSuccess.Render("Long break")
	default:
		return ui.StyleSubtle.Render("Idle")
	}
}

func runPomodoroStats(cmd *cobra.Command, a *app.App) error {
	p := a.Pomodoro
	today := p.SessionsForDate(clock.Today(a.Clock))
	completed := 0
	for _, s := range today {
		if s.Type == models.PhaseFocus && s.Completed {
			completed++
		}
	}
	stats := map[string]any{
		"todayFocusMinutes": p.TodaysFocusMinutes(),
		"weekFocusMinutes":  p.WeekFocusMinutes(),
		"monthFocusMinutes": p.MonthFocusMinutes(),
		"dailyFocusScore":   p.DailyFocusScore(),
		"sessionsToday":     len(today),
		"completedToday":    completed,
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, stats)
	}
	rows := []struct{ label, value string }{
		{"Today", ui.FormatMinutes(p.TodaysFocusMinutes())},
		{"Last 7 days", ui.FormatMinutes(p.WeekFocusMinutes())},
		{"Last 30 days", ui.FormatMinutes(p.MonthFocusMinutes())},
		{"Focus score", ui.ScoreStyle(p.DailyFocusScore()).Render(ui.FormatPercentage(float64(p.DailyFocusScore())))},
		{"Pomodoros", fmt.Sprintf("%d completed of %d sessions today", completed, len(today))},
	}
	ui.RenderPageHeader(out, "Pomodoro", "")
	for _, r := range rows {
		fmt.Fprintf(out, "%s%s\n", ui.StyleLabel.Render(r.label), r.value)
	}
	return nil
}
