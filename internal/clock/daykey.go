package clock

import (
	"fmt"
	"time"
)

// DayKeyLayout is the layout of a calendar-day key.
const DayKeyLayout = "2006-01-02"

// DayKey returns the local calendar day of t as YYYY-MM-DD. The key is
// taken in the device's local zone, never UTC-shifted.
func DayKey(t time.Time) string {
	return t.In(time.Local).Format(DayKeyLayout)
}

// Today returns the day key for c.Now().
func Today(c Clock) string { return DayKey(c.Now()) }

// Yesterday returns the day key preceding Today(c).
func Yesterday(c Clock) string { return AddDays(Today(c), -1) }

// ParseDayKey parses a day key as local midnight.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return t, nil
}

// MustParseDayKey is ParseDayKey for keys already known to be valid.
func MustParseDayKey(key string) time.Time {
	t, err := ParseDayKey(key)
	if err != nil {
		panic(err)
	}
	return t
}

// AddDays shifts a day key by n calendar days. Calendar arithmetic keeps
// the result correct across DST transitions. Invalid keys are returned
// unchanged.
func AddDays(key string, n int) string {
	t, err := ParseDayKey(key)
	if err != nil {
		return key
	}
	return t.AddDate(0, 0, n).Format(DayKeyLayout)
}

// WeekStart returns the Monday on or before the given day.
func WeekStart(key string) string {
	t, err := ParseDayKey(key)
	if err != nil {
		return key
	}
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return t.AddDate(0, 0, -offset).Format(DayKeyLayout)
}

// MonthBounds returns the first and last day keys of a month.
func MonthBounds(year int, month time.Month) (first, last string) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, -1)
	return start.Format(DayKeyLayout), end.Format(DayKeyLayout)
}

// Weekday returns the weekday of a day key.
func Weekday(key string) time.Weekday {
	t, err := ParseDayKey(key)
	if err != nil {
		return time.Sunday
	}
	return t.Weekday()
}

// InRange reports whether from <= key <= to. Day keys sort lexically.
func InRange(key, from, to string) bool {
	return key >= from && key <= to
}
