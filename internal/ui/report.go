package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/dayplan/internal/analytics"
	"github.com/josephgoksu/dayplan/models"
)

// RenderTasks lays out tasks as a table.
func RenderTasks(tasks []models.Task) string {
	if len(tasks) == 0 {
		return StyleSubtle.Render("No tasks.") + "\n"
	}
	t := &Table{
		Headers:  []string{"", "ID", "Slot", "Title", "Category", "Priority", "Planned", "Actual"},
		MaxWidth: 40,
	}
	for _, task := range tasks {
		title := task.Title
		if task.Recurring {
			title += " ↻"
		}
		slot := task.TimeSlot
		if slot == "" {
			slot = "-"
		}
		t.Rows = append(t.Rows, []string{
			StatusIcon(task.Status),
			TruncateID(task.ID),
			slot,
			title,
			Title(string(task.Category)),
			PriorityStyle(task.Priority).Render(string(task.Priority)),
			FormatMinutes(task.Duration),
			FormatMinutes(task.ActualDuration),
		})
	}
	return t.Render()
}

// RenderTask shows every field of one task.
func RenderTask(task models.Task) string {
	var sb strings.Builder
	row := func(label, value string) {
		if value != "" {
			sb.WriteString(StyleLabel.Render(label) + value + "\n")
		}
	}
	row("ID", task.ID)
	row("Title", StyleTitle.Render(task.Title))
	row("Description", task.Description)
	row("Status", StatusIcon(task.Status)+" "+string(task.Status))
	row("Category", Title(string(task.Category)))
	row("Priority", PriorityStyle(task.Priority).Render(string(task.Priority)))
	row("Date", task.Date)
	row("Time slot", task.TimeSlot)
	row("Planned", FormatMinutes(task.Duration))
	row("Actual", FormatMinutes(task.ActualDuration))
	if task.Recurring {
		row("Recurring", "yes")
	}
	if task.CarryOver {
		row("Carried over", "yes")
	}
	if len(task.Tags) > 0 {
		row("Tags", strings.Join(task.Tags, ", "))
	}
	row("Segments", fmt.Sprintf("%d", len(task.TimeSegments)))
	if task.CompletedAt != nil {
		row("Completed", task.CompletedAt.Local().Format(time.DateTime))
	}
	return sb.String()
}

// RenderEntry summarizes a tracking entry.
func RenderEntry(e models.TimeEntry, taskTitle string, now time.Time) string {
	var sb strings.Builder
	minutes := e.Duration
	if e.EndTime == nil {
		minutes = int(now.Sub(e.StartTime).Minutes())
	}
	sb.WriteString(StyleLabel.Render("Task") + StyleTitle.Render(taskTitle) + "\n")
	sb.WriteString(StyleLabel.Render("Started") + e.StartTime.Local().Format("15:04") + "\n")
	sb.WriteString(StyleLabel.Render("Elapsed") + FormatMinutes(minutes) + "\n")
	sb.WriteString(StyleLabel.Render("Pauses") + fmt.Sprintf("%d", len(e.Pauses)) + "\n")
	if e.EndTime != nil {
		sb.WriteString(StyleLabel.Render("Focus score") + ScoreStyle(e.FocusScore).Render(FormatPercentage(float64(e.FocusScore))) + "\n")
	}
	return sb.String()
}

// RenderDaily renders a daily report.
func RenderDaily(d analytics.Daily) string {
	var sb strings.Builder
	sb.WriteString(StyleSectionTitle.Render("Day "+d.Date) + "\n")
	stat(&sb, "Planned", FormatMinutes(d.TotalPlanned))
	stat(&sb, "Tracked", FormatMinutes(d.TotalActual))
	stat(&sb, "Focus score", score(d.FocusScore))
	stat(&sb, "Entry focus", score(d.EntryFocusScore))
	stat(&sb, "Completion", FormatPercentage(float64(d.CompletionRate)))
	stat(&sb, "Tasks", fmt.Sprintf("%d planned, %d done, %d pending, %d in progress, %d skipped",
		d.TasksPlanned, d.TasksCompleted, d.TasksPending, d.TasksInProgress, d.TasksSkipped))
	stat(&sb, "Peak hour", FormatHour(d.PeakHour))
	sb.WriteString("\n" + renderCategories(d.Categories))
	return sb.String()
}

// RenderWeekly renders a weekly report with one row per day.
func RenderWeekly(w analytics.Weekly) string {
	var sb strings.Builder
	sb.WriteString(StyleSectionTitle.Render(fmt.Sprintf("Week %s to %s", w.WeekStart, w.WeekEnd)) + "\n")
	stat(&sb, "Planned", FormatMinutes(w.TotalPlanned))
	stat(&sb, "Tracked", FormatMinutes(w.TotalActual))
	stat(&sb, "Average focus", score(w.AverageFocusScore))
	stat(&sb, "Goal progress", FormatPercentage(float64(w.GoalProgress)))
	stat(&sb, "Best day", dayLabel(w.BestDay))
	stat(&sb, "Worst day", dayLabel(w.WorstDay))
	stat(&sb, "Streak", fmt.Sprintf("%d days", w.StreakDays))

	t := &Table{Headers: []string{"Day", "Planned", "Tracked", "Done", "Focus"}}
	for _, d := range w.Days {
		t.Rows = append(t.Rows, []string{
			dayLabel(d.Date),
			FormatMinutes(d.TotalPlanned),
			FormatMinutes(d.TotalActual),
			fmt.Sprintf("%d/%d", d.TasksCompleted, d.TasksPlanned),
			score(d.FocusScore),
		})
	}
	sb.WriteString("\n" + t.Render())
	sb.WriteString("\n" + renderCategories(w.Categories))
	return sb.String()
}

// RenderMonthly renders a monthly report with weekly rows and the hours of
// the day that saw tracked work.
func RenderMonthly(m analytics.Monthly) string {
	var sb strings.Builder
	sb.WriteString(StyleSectionTitle.Render("Month "+m.Month) + "\n")
	stat(&sb, "Planned", FormatMinutes(m.TotalPlanned))
	stat(&sb, "Tracked", FormatMinutes(m.TotalActual))
	stat(&sb, "Average focus", score(m.AverageFocusScore))
	stat(&sb, "Tasks done", FormatNumber(m.TotalTasksCompleted))
	stat(&sb, "Trend", Title(string(m.Trend)))
	if m.BestWeek > 0 {
		stat(&sb, "Best week", fmt.Sprintf("week %d", m.BestWeek))
	}

	weeks := &Table{Headers: []string{"#", "Week of", "Planned", "Tracked", "Focus"}}
	for i, w := range m.Weeks {
		weeks.Rows = append(weeks.Rows, []string{
			fmt.Sprintf("%d", i+1),
			w.WeekStart,
			FormatMinutes(w.TotalPlanned),
			FormatMinutes(w.TotalActual),
			score(w.AverageFocusScore),
		})
	}
	sb.WriteString("\n" + weeks.Render())

	hours := &Table{Headers: []string{"Hour", "Tracked", "Productivity", "Completed"}}
	for _, h := range m.Hours {
		if h.Minutes == 0 && h.TasksCompleted == 0 {
			continue
		}
		hours.Rows = append(hours.Rows, []string{
			FormatHour(h.Hour),
			FormatMinutes(h.Minutes),
			score(h.Productivity),
			fmt.Sprintf("%d", h.TasksCompleted),
		})
	}
	if len(hours.Rows) > 0 {
		sb.WriteString("\n" + hours.Render())
	}
	sb.WriteString("\n" + renderCategories(m.Categories))
	return sb.String()
}

// notificationBodyWidth keeps one notification per line in narrow terminals.
const notificationBodyWidth = 72

// RenderNotifications lists notifications newest first.
func RenderNotifications(list []models.Notification) string {
	if len(list) == 0 {
		return StyleSubtle.Render("No notifications.") + "\n"
	}
	var sb strings.Builder
	for _, n := range list {
		marker := Icon("●", StylePrimary)
		if n.Read {
			marker = Icon("○", StyleSubtle)
		}
		fmt.Fprintf(&sb, "%s %s %s %s\n", marker,
			StyleSubtle.Render(n.Timestamp.Local().Format("Jan 2 15:04")),
			StyleTitle.Render(n.Title), Truncate(n.Body, notificationBodyWidth))
		sb.WriteString("  " + StyleSubtle.Render(TruncateID(n.ID)) + "\n")
	}
	return sb.String()
}

func renderCategories(stats []analytics.CategoryStat) string {
	t := &Table{Headers: []string{"Category", "Planned", "Tracked", "Share"}}
	for _, c := range stats {
		if c.Planned == 0 && c.Actual == 0 {
			continue
		}
		t.Rows = append(t.Rows, []string{
			Title(string(c.Category)),
			FormatMinutes(c.Planned),
			FormatMinutes(c.Actual),
			FormatPercentage(float64(c.Percentage)),
		})
	}
	if len(t.Rows) == 0 {
		return ""
	}
	return t.Render()
}

func stat(sb *strings.Builder, label, value string) {
	sb.WriteString(StyleLabel.Render(label) + value + "\n")
}

func score(v int) string {
	return ScoreStyle(v).Render(FormatPercentage(float64(v)))
}

func dayLabel(day string) string {
	if day == "" {
		return "-"
	}
	t, err := time.Parse(time.DateOnly, day)
	if err != nil {
		return day
	}
	return t.Format("Mon Jan 2")
}
