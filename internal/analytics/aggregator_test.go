package analytics

import (
	"testing"
	"time"

	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTasks []models.Task

func (f fakeTasks) Tasks() []models.Task { return f }

type fakeEntries []models.TimeEntry

func (f fakeEntries) Entries() []models.TimeEntry { return f }

func at(day string, hour, minute int) time.Time {
	d := clock.MustParseDayKey(day)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.Local)
}

func task(id, day string, cat models.Category, planned int, status models.TaskStatus) models.Task {
	t := models.Task{ID: id, Title: id, Date: day, Category: cat, Duration: planned, Status: status}
	if status == models.StatusCompleted {
		done := at(day, 11, 0)
		t.CompletedAt = &done
	}
	return t
}

func entry(taskID, day string, hour, minutes, score int) models.TimeEntry {
	return models.TimeEntry{ID: taskID + day, TaskID: taskID, Date: day, StartTime: at(day, hour, 0), Duration: minutes, FocusScore: score}
}

func TestVarianceScore(t *testing.T) {
	tests := []struct {
		planned, actual, want int
	}{
		{60, 60, 100},
		{60, 30, 50},
		{100, 90, 90},
		{60, 150, 0},
		{0, 20, 50},
		{0, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VarianceScore(tt.planned, tt.actual), "planned=%d actual=%d", tt.planned, tt.actual)
	}
}

func TestClassifyTrend(t *testing.T) {
	assert.Equal(t, TrendImproving, ClassifyTrend(100, 120))
	assert.Equal(t, TrendStable, ClassifyTrend(100, 110))
	assert.Equal(t, TrendStable, ClassifyTrend(100, 90))
	assert.Equal(t, TrendDeclining, ClassifyTrend(100, 85))
	assert.Equal(t, TrendStable, ClassifyTrend(0, 0))
	assert.Equal(t, TrendImproving, ClassifyTrend(0, 10))
}

func TestDaily(t *testing.T) {
	day := "2025-10-15"
	tasks := fakeTasks{
		task("w", day, models.CategoryWork, 60, models.StatusCompleted),
		task("p", day, models.CategoryPersonal, 30, models.StatusPending),
		task("l", day, models.CategoryLearning, 30, models.StatusSkipped),
		task("other-day", "2025-10-14", models.CategoryWork, 90, models.StatusCompleted),
	}
	entries := fakeEntries{
		entry("w", day, 9, 40, 80),
		entry("p", day, 14, 20, 100),
		entry("deleted", day, 14, 40, 60),
	}
	a := New(tasks, entries, clock.Fake(at(day, 18, 0)))

	d := a.Daily(day)
	assert.Equal(t, 120, d.TotalPlanned)
	assert.Equal(t, 100, d.TotalActual)
	assert.Equal(t, 3, d.TasksPlanned)
	assert.Equal(t, 1, d.TasksCompleted)
	assert.Equal(t, 1, d.TasksPending)
	assert.Equal(t, 1, d.TasksSkipped)
	assert.Equal(t, 83, d.FocusScore)
	assert.Equal(t, 80, d.EntryFocusScore)
	assert.Equal(t, 33, d.CompletionRate)
	assert.Equal(t, 14, d.PeakHour)

	require.Len(t, d.Categories, 5)
	assert.Equal(t, CategoryStat{Category: models.CategoryWork, Planned: 60, Actual: 40, Percentage: 40}, d.Categories[0])
	assert.Equal(t, CategoryStat{Category: models.CategoryPersonal, Planned: 30, Actual: 20, Percentage: 20}, d.Categories[1])
	assert.Equal(t, CategoryStat{Category: models.CategoryLearning, Planned: 30}, d.Categories[2])
	assert.Equal(t, 0, d.Categories[4].Actual, "dangling entries are excluded")
}

func TestDaily_Empty(t *testing.T) {
	a := New(fakeTasks{}, fakeEntries{}, clock.Fake(at("2025-10-15", 9, 0)))
	d := a.Daily("2025-10-15")
	assert.Equal(t, 0, d.FocusScore)
	assert.Equal(t, -1, d.PeakHour)
	assert.Equal(t, 0, d.CompletionRate)
	assert.False(t, d.Active())
}

func TestWeekly(t *testing.T) {
	tasks := fakeTasks{
		task("a", "2025-10-13", models.CategoryWork, 30, models.StatusCompleted),
		task("b", "2025-10-15", models.CategoryWork, 30, models.StatusCompleted),
		task("c", "2025-10-16", models.CategoryHealth, 60, models.StatusCompleted),
		task("future", "2025-10-18", models.CategoryOther, 0, models.StatusCompleted),
	}
	entries := fakeEntries{
		entry("a", "2025-10-13", 9, 30, 100),
		entry("b", "2025-10-15", 10, 60, 90),
		entry("c", "2025-10-16", 7, 45, 70),
	}
	a := New(tasks, entries, clock.Fake(at("2025-10-16", 20, 0)))

	w := a.Weekly("2025-10-13")
	assert.Equal(t, "2025-10-19", w.WeekEnd)
	require.Len(t, w.Days, 7)
	assert.Equal(t, 120, w.TotalPlanned)
	assert.Equal(t, 135, w.TotalActual)
	assert.Equal(t, 58, w.AverageFocusScore, "mean of 100, 0 and 75 over active days only")
	assert.Equal(t, "2025-10-15", w.BestDay)
	assert.Equal(t, "2025-10-14", w.WorstDay)
	assert.Equal(t, 2, w.StreakDays, "days after today are ignored; 10-14 breaks the streak")
	assert.Equal(t, 113, w.GoalProgress)
	assert.Equal(t, 90, w.Categories[0].Actual)
	assert.Equal(t, 45, w.Categories[3].Actual)
}

func TestMonthly_ImprovingTrend(t *testing.T) {
	tasks := fakeTasks{
		task("early", "2025-10-01", models.CategoryLearning, 100, models.StatusCompleted),
		task("late", "2025-10-22", models.CategoryLearning, 100, models.StatusCompleted),
	}
	entries := fakeEntries{
		entry("early", "2025-10-01", 10, 100, 80),
		entry("late", "2025-10-22", 15, 120, 60),
	}
	a := New(tasks, entries, clock.Fake(at("2025-10-31", 12, 0)))

	m := a.Monthly(2025, time.October)
	assert.Equal(t, "2025-10", m.Month)
	require.Len(t, m.Weeks, 5)
	assert.Equal(t, "2025-09-29", m.Weeks[0].WeekStart)
	assert.Equal(t, "2025-10-27", m.Weeks[4].WeekStart)
	assert.Equal(t, 220, m.TotalActual)
	assert.Equal(t, 200, m.TotalPlanned)
	assert.Equal(t, TrendImproving, m.Trend)
	assert.Equal(t, 4, m.BestWeek)
	assert.Equal(t, 2, m.TotalTasksCompleted)
	assert.Equal(t, 90, m.AverageFocusScore, "mean of week scores 100 and 80")
	assert.Equal(t, 220, m.Categories[2].Actual)
	assert.Equal(t, 100, m.Categories[2].Percentage)

	require.Len(t, m.Hours, 24)
	assert.Equal(t, HourStat{Hour: 10, Minutes: 100, Productivity: 80}, m.Hours[10])
	assert.Equal(t, HourStat{Hour: 15, Minutes: 120, Productivity: 60}, m.Hours[15])
	assert.Equal(t, 2, m.Hours[11].TasksCompleted)
}
