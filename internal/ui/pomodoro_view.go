package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/dayplan/internal/pomodoro"
	"github.com/josephgoksu/dayplan/models"
)

// Timer is the part of the pomodoro engine the timer view drives.
type Timer interface {
	Snapshot() pomodoro.Snapshot
	NextBreakType() models.Phase
	TodaysFocusMinutes() int
	StartPomodoro(taskID string) bool
	StartBreak(kind models.Phase)
	ResumeWork()
	Pause()
	Resume()
	SkipPhase() bool
	Stop()
}

const viewRefresh = 250 * time.Millisecond

type refreshMsg time.Time

// PomodoroModel is the bubbletea model for the interactive timer. The
// engine owns the countdown; the view only polls and forwards keys.
type PomodoroModel struct {
	timer     Timer
	taskTitle string
	bar       progress.Model
	snap      pomodoro.Snapshot
	quitting  bool
}

// NewPomodoroModel creates the timer view for a running engine.
func NewPomodoroModel(timer Timer, taskTitle string) PomodoroModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	return PomodoroModel{timer: timer, taskTitle: taskTitle, bar: bar, snap: timer.Snapshot()}
}

// RunPomodoro shows the timer until the user quits. Quitting stops the
// engine.
func RunPomodoro(timer Timer, taskTitle string) error {
	p := tea.NewProgram(NewPomodoroModel(timer, taskTitle))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("pomodoro view error: %w", err)
	}
	return nil
}

func refresh() tea.Cmd {
	return tea.Tick(viewRefresh, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m PomodoroModel) Init() tea.Cmd { return refresh() }

func (m PomodoroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.timer.Stop()
			m.quitting = true
			return m, tea.Quit
		case " ", "p":
			if m.snap.Paused {
				m.timer.Resume()
			} else {
				m.timer.Pause()
			}
		case "s":
			m.timer.SkipPhase()
		case "b":
			m.timer.StartBreak(m.timer.NextBreakType())
		case "w":
			if m.snap.Phase == models.PhaseIdle {
				m.timer.StartPomodoro(m.snap.TaskID)
			} else {
				m.timer.ResumeWork()
			}
		}
		m.snap = m.timer.Snapshot()
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = min(60, max(10, msg.Width-8))
		return m, nil

	case refreshMsg:
		m.snap = m.timer.Snapshot()
		return m, refresh()
	}
	return m, nil
}

func (m PomodoroModel) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder

	box := StyleTimerBox
	label := "Focus"
	switch m.snap.Phase {
	case models.PhaseShortBreak:
		box, label = StyleBreakBox, "Short break"
	case models.PhaseLongBreak:
		box, label = StyleBreakBox, "Long break"
	case models.PhaseIdle:
		box, label = StyleTimerBox.BorderForeground(ColorSecondary), "Idle"
	}
	if m.snap.Paused {
		label += " (paused)"
	}

	body := StyleTitle.Render(FormatClock(m.snap.Remaining)) + "  " + StyleSubtle.Render(label)
	if m.taskTitle != "" {
		body += "\n" + m.taskTitle
	}
	sb.WriteString(box.Render(body) + "\n\n")
	sb.WriteString(m.bar.ViewAs(m.snap.Progress/100) + "\n\n")
	sb.WriteString(fmt.Sprintf("%s %d   %s %s\n\n",
		StyleSubtle.Render("Pomodoros:"), m.snap.Completed,
		StyleSubtle.Render("Focus today:"), FormatMinutes(m.timer.TodaysFocusMinutes())))
	sb.WriteString(StyleSubtle.Render("space pause/resume · s skip · b break · w work · q quit") + "\n")
	return sb.String()
}
