// Package pomodoro implements the focus/break timer and its session log.
package pomodoro

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/internal/tracking"
	"github.com/josephgoksu/dayplan/models"
	"github.com/josephgoksu/dayplan/store"
)

// AutoStartDelay separates a finished phase from the auto-started next one.
const AutoStartDelay = 2 * time.Second

// Tracker is the part of the tracking ledger the timer pauses and resumes.
type Tracker interface {
	State() tracking.State
	PauseTracking(reason string) bool
	ResumeTracking() bool
}

// Notifier announces phase changes.
type Notifier interface {
	Notify(kind, title, body string) models.Notification
}

// Snapshot is a point-in-time view of the timer.
type Snapshot struct {
	Phase     models.Phase `json:"phase"`
	Active    bool         `json:"active"`
	Paused    bool         `json:"paused"`
	Remaining int          `json:"remainingSeconds"`
	Elapsed   int          `json:"elapsedSeconds"`
	Completed int          `json:"completedPomodoros"`
	TaskID    string       `json:"taskId,omitempty"`
	Progress  float64      `json:"progress"`
}

// Engine is the pomodoro state machine. Ticks arrive on the clock's
// goroutine, so every method locks.
type Engine struct {
	mu       sync.Mutex
	kv       store.Store
	clk      clock.Clock
	tracker  Tracker
	notifier Notifier
	cue      func()
	log      *slog.Logger

	settings  models.PomodoroSettings
	phase     models.Phase
	active    bool
	paused    bool
	remaining int
	completed int
	taskID    string

	sessionStart *time.Time
	elapsed      int
	sessions     []models.PomodoroSession

	tick clock.Handle
	auto clock.Handle
	gen  uint64
}

// New creates an Engine and loads the persisted session log.
func New(kv store.Store, clk clock.Clock, tracker Tracker, settings models.PomodoroSettings, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	e := &Engine{kv: kv, clk: clk, tracker: tracker, settings: settings, log: log, phase: models.PhaseIdle}
	e.Load()
	return e
}

// SetNotifier sets where phase announcements go.
func (e *Engine) SetNotifier(n Notifier) {
	e.mu.Lock()
	e.notifier = n
	e.mu.Unlock()
}

// SetCue sets the sound played when a phase ends.
func (e *Engine) SetCue(fn func()) {
	e.mu.Lock()
	e.cue = fn
	e.mu.Unlock()
}

// Load reloads the session log from storage.
func (e *Engine) Load() {
	e.mu.Lock()
	defer e.mu.Unlock()
	var sessions []models.PomodoroSession
	if !store.LoadJSON(e.kv, store.KeyPomodoroSessions, &sessions, e.log) {
		sessions = nil
	}
	e.sessions = sessions
}

// Settings returns the active settings.
func (e *Engine) Settings() models.PomodoroSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// UpdateSettings replaces the settings. A running phase keeps its
// remaining time.
func (e *Engine) UpdateSettings(s models.PomodoroSettings) error {
	if err := models.ValidateStruct(s); err != nil {
		return fmt.Errorf("invalid pomodoro settings: %w", err)
	}
	e.mu.Lock()
	e.settings = s
	e.mu.Unlock()
	return nil
}

// StartPomodoro begins a focus phase for taskID. It returns false when the
// timer is disabled.
func (e *Engine) StartPomodoro(taskID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.settings.Enabled {
		return false
	}
	e.cancelAutoLocked()
	e.taskID = taskID
	e.beginFocusLocked()
	e.log.Debug("pomodoro started", "taskId", taskID, "minutes", e.settings.WorkDuration)
	return true
}

// StartBreak begins a break. An empty kind picks NextBreakType. Tracking
// of the current task is paused for the break.
func (e *Engine) StartBreak(kind models.Phase) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startBreakLocked(kind)
}

func (e *Engine) startBreakLocked(kind models.Phase) {
	if !kind.IsBreak() {
		kind = e.nextBreakLocked()
	}
	e.cancelAutoLocked()
	e.phase = kind
	e.remaining = e.phaseMinutesLocked(kind) * 60
	e.active = true
	e.paused = false
	if e.taskID != "" && e.tracker != nil && e.tracker.State() == tracking.StateTracking {
		e.tracker.PauseTracking("pomodoro-break")
	}
	e.startTickLocked()

	length := "short"
	if kind == models.PhaseLongBreak {
		length = "long"
	}
	e.notifyLocked(models.NotifyBreak, "Break Time!", fmt.Sprintf("Time for a %s break", length))
}

// ResumeWork starts a new focus phase after a break and resumes tracking.
func (e *Engine) ResumeWork() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resumeWorkLocked()
}

func (e *Engine) resumeWorkLocked() {
	e.cancelAutoLocked()
	e.beginFocusLocked()
	if e.taskID != "" && e.tracker != nil && e.tracker.State() == tracking.StatePaused {
		e.tracker.ResumeTracking()
	}
	e.notifyLocked(models.NotifyPomodoro, "Focus Time!", "Time to get back to work")
}

func (e *Engine) beginFocusLocked() {
	now := e.clk.Now()
	e.phase = models.PhaseFocus
	e.remaining = e.settings.WorkDuration * 60
	e.active = true
	e.paused = false
	e.sessionStart = &now
	e.elapsed = 0
	e.startTickLocked()
}

// Pause freezes the countdown without losing remaining time.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active {
		e.paused = true
	}
}

// Resume unfreezes the countdown.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paused = false
}

// Stop abandons the current phase. No session is recorded.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

// Reset is Stop plus zeroing the completed-pomodoro count.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
	e.completed = 0
}

func (e *Engine) stopLocked() {
	e.stopTickLocked()
	e.cancelAutoLocked()
	e.phase = models.PhaseIdle
	e.active = false
	e.paused = false
	e.remaining = 0
	e.taskID = ""
	e.sessionStart = nil
	e.elapsed = 0
}

// SkipPhase ends the current phase now, as if the countdown had run out.
// A skipped focus phase records the time actually spent.
func (e *Engine) SkipPhase() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase == models.PhaseIdle {
		return false
	}
	e.completeLocked()
	return true
}

func (e *Engine) onTick(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen || !e.active || e.paused {
		return
	}
	e.remaining--
	if e.phase == models.PhaseFocus {
		e.elapsed++
	}
	if e.remaining <= 0 {
		e.completeLocked()
	}
}

func (e *Engine) completeLocked() {
	e.stopTickLocked()
	e.cancelAutoLocked()
	e.remaining = 0
	if e.cue != nil {
		e.cue()
	}

	if e.phase == models.PhaseFocus {
		e.completed++
		if e.sessionStart != nil {
			session := models.PomodoroSession{
				ID:        uuid.NewString(),
				TaskID:    e.taskID,
				StartTime: *e.sessionStart,
				EndTime:   e.clk.Now(),
				Duration:  roundMinutes(e.elapsed),
				Type:      models.PhaseFocus,
				Completed: true,
			}
			e.sessions = append(e.sessions, session)
			store.SaveJSON(e.kv, store.KeyPomodoroSessions, e.sessions, e.log)
			e.log.Debug("pomodoro session recorded", "id", session.ID, "minutes", session.Duration)
		}
		e.sessionStart = nil
		e.elapsed = 0
		if e.taskID != "" && e.tracker != nil && e.tracker.State() == tracking.StateTracking {
			e.tracker.PauseTracking("pomodoro-complete")
		}
		e.notifyLocked(models.NotifyPomodoro, "Pomodoro Complete!",
			fmt.Sprintf("Great work! You've completed %d pomodoro(s)", e.completed))

		if e.settings.AutoStartBreaks {
			e.scheduleLocked(func() { e.startBreakLocked("") })
		} else {
			e.goIdleLocked()
		}
		return
	}

	e.notifyLocked(models.NotifyBreak, "Break Over!", "Ready to start your next focus session?")
	if e.settings.AutoStartPomodoros {
		e.scheduleLocked(e.resumeWorkLocked)
	} else {
		e.goIdleLocked()
	}
}

func (e *Engine) goIdleLocked() {
	e.phase = models.PhaseIdle
	e.active = false
	e.paused = false
}

// scheduleLocked runs fn under the lock after AutoStartDelay unless the
// timer is stopped or restarted first.
func (e *Engine) scheduleLocked(fn func()) {
	gen := e.gen
	e.auto = e.clk.AfterFunc(AutoStartDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if gen != e.gen {
			return
		}
		e.auto = nil
		fn()
	})
}

func (e *Engine) cancelAutoLocked() {
	if e.auto != nil {
		e.auto.Stop()
		e.auto = nil
	}
}

func (e *Engine) startTickLocked() {
	e.stopTickLocked()
	gen := e.gen
	e.tick = e.clk.Every(time.Second, func() { e.onTick(gen) })
}

func (e *Engine) stopTickLocked() {
	e.gen++
	if e.tick != nil {
		e.tick.Stop()
		e.tick = nil
	}
}

func (e *Engine) notifyLocked(kind, title, body string) {
	if e.notifier != nil {
		e.notifier.Notify(kind, title, body)
	}
}

func (e *Engine) phaseMinutesLocked(p models.Phase) int {
	switch p {
	case models.PhaseShortBreak:
		return e.settings.ShortBreak
	case models.PhaseLongBreak:
		return e.settings.LongBreak
	default:
		return e.settings.WorkDuration
	}
}

func (e *Engine) nextBreakLocked() models.Phase {
	n := e.settings.IntervalsBeforeLongBreak
	if n > 0 && (e.completed+1)%n == 0 {
		return models.PhaseLongBreak
	}
	return models.PhaseShortBreak
}

// roundMinutes converts seconds to minutes, rounding halves up.
func roundMinutes(seconds int) int {
	return (seconds + 30) / 60
}
