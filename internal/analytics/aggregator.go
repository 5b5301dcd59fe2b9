// Package analytics computes daily, weekly and monthly statistics from the
// task store and the tracking ledger. It owns no state.
package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/models"
)

// TaskSource supplies task snapshots.
type TaskSource interface {
	Tasks() []models.Task
}

// EntrySource supplies finished time entries.
type EntrySource interface {
	Entries() []models.TimeEntry
}

// Trend classifies a month's second half against its first.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// CategoryStat is one row of a category breakdown. Percentage is the
// category's share of all tracked minutes in the period.
type CategoryStat struct {
	Category   models.Category `json:"category"`
	Planned    int             `json:"planned"`
	Actual     int             `json:"actual"`
	Percentage int             `json:"percentage"`
}

// Daily summarizes one day.
type Daily struct {
	Date            string         `json:"date"`
	TotalPlanned    int            `json:"totalPlanned"`
	TotalActual     int            `json:"totalActual"`
	TasksPlanned    int            `json:"tasksPlanned"`
	TasksPending    int            `json:"tasksPending"`
	TasksInProgress int            `json:"tasksInProgress"`
	TasksCompleted  int            `json:"tasksCompleted"`
	TasksSkipped    int            `json:"tasksSkipped"`
	FocusScore      int            `json:"focusScore"`
	EntryFocusScore int            `json:"entryFocusScore"`
	CompletionRate  int            `json:"completionRate"`
	// PeakHour is the local hour with the most tracked minutes, -1 when
	// nothing was tracked that day.
	PeakHour        int            `json:"peakProductivityHour"`
	Categories      []CategoryStat `json:"categoryBreakdown"`
}

// Active reports whether anything was planned or tracked.
func (d Daily) Active() bool { return d.TotalPlanned > 0 || d.TotalActual > 0 }

// Weekly summarizes seven consecutive days.
type Weekly struct {
	WeekStart         string         `json:"weekStart"`
	WeekEnd           string         `json:"weekEnd"`
	Days              []Daily        `json:"dailyData"`
	TotalPlanned      int            `json:"totalPlanned"`
	TotalActual       int            `json:"totalActual"`
	AverageFocusScore int            `json:"averageFocusScore"`
	BestDay           string         `json:"bestDay"`
	WorstDay          string         `json:"worstDay"`
	StreakDays        int            `json:"streakDays"`
	GoalProgress      int            `json:"weeklyGoalProgress"`
	Categories        []CategoryStat `json:"categoryBreakdown"`
}

// Active reports whether any day of the week was active.
func (w Weekly) Active() bool {
	for _, d := range w.Days {
		if d.Active() {
			return true
		}
	}
	return false
}

// HourStat is one hour of the monthly distribution.
type HourStat struct {
	Hour           int `json:"hour"`
	Minutes        int `json:"minutes"`
	Productivity   int `json:"productivity"`
	TasksCompleted int `json:"tasksCompleted"`
}

// Monthly summarizes the Monday-aligned weeks overlapping a month.
type Monthly struct {
	Month               string         `json:"month"`
	Year                int            `json:"year"`
	Weeks               []Weekly       `json:"weeklyData"`
	TotalPlanned        int            `json:"totalPlanned"`
	TotalActual         int            `json:"totalActual"`
	AverageFocusScore   int            `json:"averageFocusScore"`
	BestWeek            int            `json:"bestWeek"`
	TotalTasksCompleted int            `json:"totalTasksCompleted"`
	Categories          []CategoryStat `json:"categoryBreakdown"`
	Trend               Trend          `json:"monthlyTrend"`
	Hours               []HourStat     `json:"productiveHoursDistribution"`
}

// Aggregator computes reports on demand.
type Aggregator struct {
	tasks   TaskSource
	entries EntrySource
	clk     clock.Clock
}

// New creates an Aggregator.
func New(tasks TaskSource, entries EntrySource, clk clock.Clock) *Aggregator {
	return &Aggregator{tasks: tasks, entries: entries, clk: clk}
}

type snapshot struct {
	tasks   []models.Task
	entries []models.TimeEntry
	byID    map[string]models.Task
}

func (a *Aggregator) snapshot() snapshot {
	s := snapshot{tasks: a.tasks.Tasks(), entries: a.entries.Entries()}
	s.byID = make(map[string]models.Task, len(s.tasks))
	for _, t := range s.tasks {
		s.byID[t.ID] = t
	}
	return s
}

func (s snapshot) tasksIn(from, to string) []models.Task {
	var out []models.Task
	for _, t := range s.tasks {
		if clock.InRange(t.Date, from, to) {
			out = append(out, t)
		}
	}
	return out
}

func (s snapshot) entriesIn(from, to string) []models.TimeEntry {
	var out []models.TimeEntry
	for _, e := range s.entries {
		if clock.InRange(e.Date, from, to) {
			out = append(out, e)
		}
	}
	return out
}

// Daily reports on one day.
func (a *Aggregator) Daily(date string) Daily {
	return a.snapshot().daily(date)
}

func (s snapshot) daily(date string) Daily {
	tasks := s.tasksIn(date, date)
	entries := s.entriesIn(date, date)

	d := Daily{Date: date, TasksPlanned: len(tasks)}
	for _, t := range tasks {
		d.TotalPlanned += t.Duration
		switch t.Status {
		case models.StatusPending:
			d.TasksPending++
		case models.StatusInProgress:
			d.TasksInProgress++
		case models.StatusCompleted:
			d.TasksCompleted++
		case models.StatusSkipped:
			d.TasksSkipped++
		}
	}
	entryScore := 0
	for _, e := range entries {
		d.TotalActual += e.Duration
		entryScore += e.FocusScore
	}
	if len(entries) > 0 {
		d.EntryFocusScore = roundDiv(entryScore, len(entries))
	}
	d.FocusScore = VarianceScore(d.TotalPlanned, d.TotalActual)
	d.CompletionRate = percent(d.TasksCompleted, d.TasksPlanned)
	d.PeakHour = peakHour(entries)
	d.Categories = s.categories(tasks, entries)
	return d
}

// Weekly reports on the seven days starting at weekStart.
func (a *Aggregator) Weekly(weekStart string) Weekly {
	return a.snapshot().weekly(weekStart, clock.Today(a.clk))
}

func (s snapshot) weekly(weekStart, today string) Weekly {
	w := Weekly{WeekStart: weekStart, WeekEnd: clock.AddDays(weekStart, 6)}
	for i := range 7 {
		w.Days = append(w.Days, s.daily(clock.AddDays(weekStart, i)))
	}

	scoreSum, activeDays := 0, 0
	best, worst := 0, 0
	for i, d := range w.Days {
		w.TotalPlanned += d.TotalPlanned
		w.TotalActual += d.TotalActual
		if d.Active() {
			scoreSum += d.FocusScore
			activeDays++
		}
		if d.TotalActual > w.Days[best].TotalActual {
			best = i
		}
		if d.TotalActual < w.Days[worst].TotalActual {
			worst = i
		}
	}
	if activeDays > 0 {
		w.AverageFocusScore = roundDiv(scoreSum, activeDays)
	}
	w.BestDay = w.Days[best].Date
	w.WorstDay = w.Days[worst].Date
	w.StreakDays = streak(w.Days, today)
	w.GoalProgress = percent(w.TotalActual, w.TotalPlanned)
	w.Categories = s.categories(s.tasksIn(w.WeekStart, w.WeekEnd), s.entriesIn(w.WeekStart, w.WeekEnd))
	return w
}

// Monthly reports on a calendar month.
func (a *Aggregator) Monthly(year int, month time.Month) Monthly {
	s := a.snapshot()
	today := clock.Today(a.clk)
	first, last := clock.MonthBounds(year, month)

	m := Monthly{Month: fmt.Sprintf("%04d-%02d", year, int(month)), Year: year}
	for ws := clock.WeekStart(first); ws <= last; ws = clock.AddDays(ws, 7) {
		m.Weeks = append(m.Weeks, s.weekly(ws, today))
	}

	scoreSum, activeWeeks, best := 0, 0, 0
	for i, w := range m.Weeks {
		m.TotalPlanned += w.TotalPlanned
		m.TotalActual += w.TotalActual
		if w.Active() {
			scoreSum += w.AverageFocusScore
			activeWeeks++
		}
		if w.TotalActual > m.Weeks[best].TotalActual {
			best = i
		}
		for _, d := range w.Days {
			m.TotalTasksCompleted += d.TasksCompleted
		}
	}
	if activeWeeks > 0 {
		m.AverageFocusScore = roundDiv(scoreSum, activeWeeks)
	}
	m.BestWeek = best + 1

	half := (len(m.Weeks) + 1) / 2
	firstHalf, secondHalf := 0, 0
	for i, w := range m.Weeks {
		if i < half {
			firstHalf += w.TotalActual
		} else {
			secondHalf += w.TotalActual
		}
	}
	m.Trend = ClassifyTrend(firstHalf, secondHalf)

	tasks := s.tasksIn(first, last)
	entries := s.entriesIn(first, last)
	m.Categories = s.categories(tasks, entries)
	m.Hours = hourly(tasks, entries)
	return m
}

// VarianceScore rates how closely tracked time matched the plan: 100 minus
// the percentage deviation, clamped to [0,100]. Tracked time with nothing
// planned scores 50; an empty day scores 0.
func VarianceScore(planned, actual int) int {
	switch {
	case planned <= 0 && actual <= 0:
		return 0
	case planned <= 0:
		return 50
	}
	variance := math.Abs(float64(actual-planned)) / float64(planned) * 100
	return int(math.Round(math.Max(0, math.Min(100, 100-variance))))
}

// ClassifyTrend compares second-half with first-half totals using a 10%
// band.
func ClassifyTrend(firstHalf, secondHalf int) Trend {
	diff := float64(secondHalf - firstHalf)
	threshold := float64(firstHalf) * 0.1
	switch {
	case diff > threshold:
		return TrendImproving
	case diff < -threshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// categories breaks planned and tracked minutes down by category. Entries
// whose task no longer exists are left out of every row.
func (s snapshot) categories(tasks []models.Task, entries []models.TimeEntry) []CategoryStat {
	planned := make(map[models.Category]int)
	actual := make(map[models.Category]int)
	for _, t := range tasks {
		planned[t.Category] += t.Duration
	}
	total := 0
	for _, e := range entries {
		total += e.Duration
		if t, ok := s.byID[e.TaskID]; ok {
			actual[t.Category] += e.Duration
		}
	}

	out := make([]CategoryStat, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		out = append(out, CategoryStat{
			Category:   c,
			Planned:    planned[c],
			Actual:     actual[c],
			Percentage: percent(actual[c], total),
		})
	}
	return out
}

// peakHour is the local hour with the most tracked minutes, or -1 when
// nothing was tracked.
func peakHour(entries []models.TimeEntry) int {
	var minutes [24]int
	for _, e := range entries {
		minutes[e.StartTime.In(time.Local).Hour()] += e.Duration
	}
	peak := -1
	for h, m := range minutes {
		if m > 0 && (peak < 0 || m > minutes[peak]) {
			peak = h
		}
	}
	return peak
}

func hourly(tasks []models.Task, entries []models.TimeEntry) []HourStat {
	out := make([]HourStat, 24)
	scores := make([]int, 24)
	counts := make([]int, 24)
	for h := range out {
		out[h].Hour = h
	}
	for _, e := range entries {
		h := e.StartTime.In(time.Local).Hour()
		out[h].Minutes += e.Duration
		scores[h] += e.FocusScore
		counts[h]++
	}
	for _, t := range tasks {
		if t.Status == models.StatusCompleted && t.CompletedAt != nil {
			out[t.CompletedAt.In(time.Local).Hour()].TasksCompleted++
		}
	}
	for h := range out {
		if counts[h] > 0 {
			out[h].Productivity = roundDiv(scores[h], counts[h])
		}
	}
	return out
}

// streak counts consecutive days with a completed task, walking back from
// the last day that is not after today.
func streak(days []Daily, today string) int {
	n := 0
	for i := len(days) - 1; i >= 0; i-- {
		if days[i].Date > today {
			continue
		}
		if days[i].TasksCompleted == 0 {
			break
		}
		n++
	}
	return n
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func roundDiv(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}
