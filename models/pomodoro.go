package models

import "time"

// Phase is the pomodoro timer phase.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseFocus      Phase = "focus"
	PhaseShortBreak Phase = "shortBreak"
	PhaseLongBreak  Phase = "longBreak"
)

// IsBreak reports whether the phase is a short or long break.
func (p Phase) IsBreak() bool { return p == PhaseShortBreak || p == PhaseLongBreak }

// PomodoroSession records a completed focus phase. Duration is the real
// elapsed focus time in minutes, not the configured preset.
type PomodoroSession struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId,omitempty"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Duration  int       `json:"duration"`
	Type      Phase     `json:"type"`
	Completed bool      `json:"completed"`
}
