package models

import "time"

// Notification is one entry of the in-app notification log.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
	Date      string    `json:"date"`
	Read      bool      `json:"read"`
}

// Notification kinds.
const (
	NotifyRollover     = "rollover"
	NotifyTaskComplete = "task-complete"
	NotifyPomodoro     = "pomodoro"
	NotifyBreak        = "break"
	NotifyInfo         = "info"
)
