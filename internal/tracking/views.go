package tracking

import (
	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/models"
)

// State reports whether the ledger is idle, tracking or paused.
func (l *Ledger) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case l.current == nil:
		return StateIdle
	case l.current.IsPaused():
		return StatePaused
	default:
		return StateTracking
	}
}

// IsTracking reports whether a current entry exists, paused or not.
func (l *Ledger) IsTracking() bool {
	return l.State() != StateIdle
}

// Current returns a copy of the current entry.
func (l *Ledger) Current() (models.TimeEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current == nil {
		return models.TimeEntry{}, false
	}
	return l.current.Clone(), true
}

// Entries returns every finished entry.
func (l *Ledger) Entries() []models.TimeEntry {
	return l.EntriesInRange("", "9999-12-31")
}

// EntriesInRange returns finished entries dated from..to inclusive.
func (l *Ledger) EntriesInRange(from, to string) []models.TimeEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.TimeEntry, 0, len(l.entries))
	for _, e := range l.entries {
		if clock.InRange(e.Date, from, to) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// TodayEntries returns today's finished entries.
func (l *Ledger) TodayEntries() []models.TimeEntry {
	today := clock.Today(l.clk)
	return l.EntriesInRange(today, today)
}

// TotalTimeToday sums today's tracked minutes, including the running entry.
func (l *Ledger) TotalTimeToday() int {
	today := clock.Today(l.clk)
	total := 0
	for _, e := range l.EntriesInRange(today, today) {
		total += e.Duration
	}
	l.mu.Lock()
	if l.current != nil && l.current.Date == today {
		total += workMinutes(l.current, l.clk.Now())
	}
	l.mu.Unlock()
	return total
}
