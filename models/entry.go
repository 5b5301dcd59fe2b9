package models

import "time"

// Pause is one interruption inside a TimeEntry. A nil EndTime marks the
// pause currently in effect.
type Pause struct {
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Reason    string     `json:"reason,omitempty"`
	// Duration is whole minutes, set when the pause closes.
	Duration int `json:"duration"`
}

// TimeEntry is one tracked work session. TaskID is a weak reference: the
// entry outlives the task it points to.
type TimeEntry struct {
	ID        string     `json:"id"`
	TaskID    string     `json:"taskId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Date      string     `json:"date"`
	Pauses    []Pause    `json:"pauses"`
	// Duration is whole minutes of work, excluding paused time.
	Duration   int `json:"duration"`
	FocusScore int `json:"focusScore"`
}

// IsPaused reports whether the last pause is still open.
func (e *TimeEntry) IsPaused() bool {
	if len(e.Pauses) == 0 {
		return false
	}
	return e.Pauses[len(e.Pauses)-1].EndTime == nil
}

// PausedTime sums pause intervals, treating an open pause as ending at now.
func (e *TimeEntry) PausedTime(now time.Time) time.Duration {
	var total time.Duration
	for _, p := range e.Pauses {
		end := now
		if p.EndTime != nil {
			end = *p.EndTime
		}
		if d := end.Sub(p.StartTime); d > 0 {
			total += d
		}
	}
	return total
}

// PausedMinutes sums the recorded minute durations of closed pauses.
func (e *TimeEntry) PausedMinutes() int {
	total := 0
	for _, p := range e.Pauses {
		total += p.Duration
	}
	return total
}

// Clone returns a deep copy of the entry.
func (e TimeEntry) Clone() TimeEntry {
	c := e
	if e.EndTime != nil {
		v := *e.EndTime
		c.EndTime = &v
	}
	if e.Pauses != nil {
		c.Pauses = make([]Pause, len(e.Pauses))
		for i, p := range e.Pauses {
			c.Pauses[i] = p
			if p.EndTime != nil {
				v := *p.EndTime
				c.Pauses[i].EndTime = &v
			}
		}
	}
	return c
}
