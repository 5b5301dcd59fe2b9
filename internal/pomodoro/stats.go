package pomodoro

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/models"
)

// Snapshot returns the current timer state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Phase:     e.phase,
		Active:    e.active,
		Paused:    e.paused,
		Remaining: e.remaining,
		Elapsed:   e.elapsed,
		Completed: e.completed,
		TaskID:    e.taskID,
		Progress:  e.progressLocked(),
	}
}

// NextBreakType is the break that follows the current focus phase.
func (e *Engine) NextBreakType() models.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nextBreakLocked()
}

// Progress is the share of the current phase already elapsed, 0 to 100.
func (e *Engine) Progress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progressLocked()
}

func (e *Engine) progressLocked() float64 {
	total := e.phaseMinutesLocked(e.phase) * 60
	if total <= 0 || e.phase == models.PhaseIdle {
		return 0
	}
	return math.Max(0, float64(total-e.remaining)/float64(total)*100)
}

// FormattedTime renders the remaining time as MM:SS.
func (e *Engine) FormattedTime() string {
	e.mu.Lock()
	r := e.remaining
	e.mu.Unlock()
	return fmt.Sprintf("%02d:%02d", r/60, r%60)
}

// Sessions returns the recorded sessions.
func (e *Engine) Sessions() []models.PomodoroSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.sessions)
}

// SessionsForDate returns sessions that started on day.
func (e *Engine) SessionsForDate(day string) []models.PomodoroSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []models.PomodoroSession
	for _, s := range e.sessions {
		if clock.DayKey(s.StartTime) == day {
			out = append(out, s)
		}
	}
	return out
}

// TodaysFocusMinutes sums today's sessions plus the running focus phase.
func (e *Engine) TodaysFocusMinutes() int {
	today := clock.Today(e.clk)
	return e.focusMinutes(func(s models.PomodoroSession) bool {
		return clock.DayKey(s.StartTime) == today
	})
}

// WeekFocusMinutes covers sessions started in the last seven days.
func (e *Engine) WeekFocusMinutes() int {
	return e.focusSince(7 * 24 * time.Hour)
}

// MonthFocusMinutes covers sessions started in the last thirty days.
func (e *Engine) MonthFocusMinutes() int {
	return e.focusSince(30 * 24 * time.Hour)
}

// DailyFocusScore compares today's focus minutes with a four-pomodoro
// target, capped at 100.
func (e *Engine) DailyFocusScore() int {
	target := 4 * e.Settings().WorkDuration
	if target <= 0 {
		return 0
	}
	score := int(math.Round(float64(e.TodaysFocusMinutes()) / float64(target) * 100))
	return min(100, score)
}

func (e *Engine) focusSince(window time.Duration) int {
	cutoff := e.clk.Now().Add(-window)
	return e.focusMinutes(func(s models.PomodoroSession) bool {
		return !s.StartTime.Before(cutoff)
	})
}

func (e *Engine) focusMinutes(keep func(models.PomodoroSession) bool) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := 0
	for _, s := range e.sessions {
		if keep(s) {
			total += s.Duration
		}
	}
	if e.active && e.phase == models.PhaseFocus {
		total += roundMinutes(e.elapsed)
	}
	return total
}
