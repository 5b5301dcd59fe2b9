// Package tracking records tracked work sessions (time entries) with their
// pauses, and mirrors the running session onto the task it belongs to.
package tracking

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/models"
	"github.com/josephgoksu/dayplan/store"
)

// DefaultTickInterval is how often the running entry is recomputed.
const DefaultTickInterval = time.Second

// State is the ledger's tracking state.
type State string

const (
	StateIdle     State = "idle"
	StateTracking State = "tracking"
	StatePaused   State = "paused"
)

// TaskStore is the subset of the task store the ledger drives.
type TaskStore interface {
	Get(id string) (models.Task, bool)
	StartTask(id string) (models.Task, bool)
	StopTask(id string) (models.Task, bool)
	CompleteTask(id string) (models.Task, bool)
	SyncActual(id string) (models.Task, bool)
}

// Ledger owns the time entries and the single current entry.
type Ledger struct {
	mu       sync.Mutex
	kv       store.Store
	clk      clock.Clock
	tasks    TaskStore
	log      *slog.Logger
	interval time.Duration

	entries []models.TimeEntry
	current *models.TimeEntry

	tick clock.Handle
	gen  uint64

	onAutoComplete func(models.Task)
}

// New creates a Ledger and restores persisted entries, including an entry
// left running by a previous process.
func New(kv store.Store, clk clock.Clock, tasks TaskStore, log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.Default()
	}
	l := &Ledger{kv: kv, clk: clk, tasks: tasks, log: log, interval: DefaultTickInterval}
	l.Load()
	return l
}

// SetTickInterval changes the recompute interval. It applies from the next
// tick restart.
func (l *Ledger) SetTickInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultTickInterval
	}
	l.mu.Lock()
	l.interval = d
	l.mu.Unlock()
}

// OnAutoComplete registers fn to run after a task is completed because its
// tracked time reached the planned duration.
func (l *Ledger) OnAutoComplete(fn func(models.Task)) {
	l.mu.Lock()
	l.onAutoComplete = fn
	l.mu.Unlock()
}

// Load replaces in-memory state with the stored entries. A running current
// entry resumes ticking.
func (l *Ledger) Load() {
	l.mu.Lock()
	defer l.mu.Unlock()

	var entries []models.TimeEntry
	if !store.LoadJSON(l.kv, store.KeyTimeEntries, &entries, l.log) {
		entries = nil
	}
	var cur *models.TimeEntry
	if !store.LoadJSON(l.kv, store.KeyCurrentEntry, &cur, l.log) {
		cur = nil
	}
	l.stopTickLocked()
	l.entries = entries
	l.current = cur
	if cur != nil && !cur.IsPaused() {
		l.startTickLocked()
	}
}

// Close stops the tick. The current entry stays open and is persisted.
func (l *Ledger) Close() {
	l.mu.Lock()
	l.stopTickLocked()
	l.mu.Unlock()
}

// StartTracking opens a new current entry for taskID, stopping any entry
// already running.
func (l *Ledger) StartTracking(taskID string) models.TimeEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current != nil {
		l.stopLocked()
	}
	now := l.clk.Now()
	l.current = &models.TimeEntry{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		StartTime: now,
		Date:      clock.DayKey(now),
		Pauses:    []models.Pause{},
	}
	if _, ok := l.tasks.StartTask(taskID); !ok {
		l.log.Debug("tracking entry has no startable task", "taskId", taskID)
	}
	l.persistLocked()
	l.startTickLocked()

	l.log.Debug("tracking started", "entry", l.current.ID, "taskId", taskID)
	return l.current.Clone()
}

// PauseTracking opens a pause on the current entry and suspends the tick.
// It reports false when nothing is tracking or the entry is already paused.
func (l *Ledger) PauseTracking(reason string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil || l.current.IsPaused() {
		return false
	}
	now := l.clk.Now()
	l.stopTickLocked()
	l.current.Duration = workMinutes(l.current, now)
	l.current.Pauses = append(l.current.Pauses, models.Pause{StartTime: now, Reason: reason})
	l.tasks.StopTask(l.current.TaskID)
	l.persistLocked()

	l.log.Debug("tracking paused", "entry", l.current.ID, "reason", reason)
	return true
}

// ResumeTracking closes the open pause and restarts the tick.
func (l *Ledger) ResumeTracking() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil || !l.current.IsPaused() {
		return false
	}
	closePause(l.current, l.clk.Now())
	l.tasks.StartTask(l.current.TaskID)
	l.persistLocked()
	l.startTickLocked()

	l.log.Debug("tracking resumed", "entry", l.current.ID)
	return true
}

// StopTracking finalizes the current entry and appends it to the ledger.
func (l *Ledger) StopTracking() (models.TimeEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return models.TimeEntry{}, false
	}
	return l.stopLocked(), true
}

// Tick recomputes the running entry, mirrors it onto its task and
// auto-completes the task once the planned duration is reached. It is
// called by the periodic tick and may be called directly to catch up.
func (l *Ledger) Tick() {
	l.mu.Lock()
	completed, ok := l.tickLocked()
	fn := l.onAutoComplete
	l.mu.Unlock()

	if ok && fn != nil {
		fn(completed)
	}
}

func (l *Ledger) tickLocked() (models.Task, bool) {
	if l.current == nil || l.current.IsPaused() {
		return models.Task{}, false
	}
	now := l.clk.Now()
	minutes := workMinutes(l.current, now)
	if minutes != l.current.Duration {
		l.current.Duration = minutes
		store.SaveJSON(l.kv, store.KeyCurrentEntry, l.current, l.log)
	}

	task, found := l.tasks.SyncActual(l.current.TaskID)
	if !found || task.Duration <= 0 || task.Status == models.StatusCompleted || minutes < task.Duration {
		return models.Task{}, false
	}

	l.log.Info("auto-completing task", "id", task.ID, "title", task.Title, "tracked", minutes, "planned", task.Duration)
	l.stopLocked()
	done, ok := l.tasks.CompleteTask(task.ID)
	return done, ok
}

// stopLocked closes the current entry. Caller holds l.mu and has checked
// that current is non-nil.
func (l *Ledger) stopLocked() models.TimeEntry {
	now := l.clk.Now()
	l.stopTickLocked()
	e := l.current
	if e.IsPaused() {
		closePause(e, now)
	}
	end := now
	e.EndTime = &end
	e.Duration = workMinutes(e, now)
	e.FocusScore = FocusScore(e.Duration, e.PausedMinutes(), len(e.Pauses))

	l.tasks.StopTask(e.TaskID)
	l.entries = append(l.entries, *e)
	l.current = nil
	l.persistLocked()

	l.log.Debug("tracking stopped", "entry", e.ID, "duration", e.Duration, "focusScore", e.FocusScore)
	return e.Clone()
}

func (l *Ledger) startTickLocked() {
	l.stopTickLocked()
	gen := l.gen
	l.tick = l.clk.Every(l.interval, func() {
		l.mu.Lock()
		if l.gen != gen {
			l.mu.Unlock()
			return
		}
		l.mu.Unlock()
		l.Tick()
	})
}

func (l *Ledger) stopTickLocked() {
	l.gen++
	if l.tick != nil {
		l.tick.Stop()
		l.tick = nil
	}
}

func (l *Ledger) persistLocked() {
	entries := l.entries
	if entries == nil {
		entries = []models.TimeEntry{}
	}
	store.SaveJSON(l.kv, store.KeyTimeEntries, entries, l.log)
	if l.current == nil {
		if err := l.kv.Delete(store.KeyCurrentEntry); err != nil {
			l.log.Warn("failed to clear current entry", "error", err)
		}
		return
	}
	store.SaveJSON(l.kv, store.KeyCurrentEntry, l.current, l.log)
}

// workMinutes is the entry's elapsed time minus paused time, in whole
// minutes.
func workMinutes(e *models.TimeEntry, now time.Time) int {
	work := now.Sub(e.StartTime) - e.PausedTime(now)
	if work < 0 {
		return 0
	}
	return int(work / time.Minute)
}

func closePause(e *models.TimeEntry, now time.Time) {
	p := &e.Pauses[len(e.Pauses)-1]
	end := now
	p.EndTime = &end
	p.Duration = int(end.Sub(p.StartTime) / time.Minute)
}

// FocusScore rates a session from 0 to 100: the share of the session spent
// working, reduced by 5% per pause. A session with neither work nor pauses
// scores 0.
func FocusScore(workMinutes, pauseMinutes, pauseCount int) int {
	total := workMinutes + pauseMinutes
	if total <= 0 {
		return 0
	}
	timeScore := float64(workMinutes) / float64(total)
	penalty := math.Max(0, 1-float64(pauseCount)*0.05)
	return int(math.Round(timeScore * penalty * 100))
}
