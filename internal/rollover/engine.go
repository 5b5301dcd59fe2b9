// Package rollover carries recurring tasks forward into the new day.
package rollover

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/internal/tasks"
	"github.com/josephgoksu/dayplan/models"
	"github.com/josephgoksu/dayplan/store"
)

// DefaultPollInterval is how often Start checks for a day change.
const DefaultPollInterval = time.Minute

// TaskStore is what the engine needs from the task store.
type TaskStore interface {
	ByDate(day string) []models.Task
	AddTask(in tasks.NewTask) (models.Task, error)
}

// Notifier receives the "tasks rolled over" message.
type Notifier interface {
	Notify(kind, title, body string) models.Notification
}

// Engine runs the daily rollover and remembers the last day it ran.
type Engine struct {
	mu       sync.Mutex
	tasks    TaskStore
	kv       store.Store
	clk      clock.Clock
	log      *slog.Logger
	notifier Notifier
	poll     clock.Handle
	cancel   context.CancelFunc
	// done closes when the current poll's watcher goroutine exits.
	done chan struct{}
}

// New creates a rollover Engine.
func New(ts TaskStore, kv store.Store, clk clock.Clock, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{tasks: ts, kv: kv, clk: clk, log: log}
}

// SetNotifier sets where rollover announcements go. nil disables them.
func (e *Engine) SetNotifier(n Notifier) {
	e.mu.Lock()
	e.notifier = n
	e.mu.Unlock()
}

// Rollover copies yesterday's recurring tasks, completed or not, into today
// as fresh pending tasks. A task whose (title, timeSlot, category) already
// exists today is skipped, so repeated runs create nothing new.
func (e *Engine) Rollover() []models.Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rolloverLocked()
}

func (e *Engine) rolloverLocked() []models.Task {
	today := clock.Today(e.clk)
	yesterday := clock.AddDays(today, -1)

	existing := make(map[models.RolloverKey]struct{})
	for _, t := range e.tasks.ByDate(today) {
		existing[t.Key()] = struct{}{}
	}

	var created []models.Task
	for _, src := range e.tasks.ByDate(yesterday) {
		if !src.Recurring {
			continue
		}
		if _, dup := existing[src.Key()]; dup {
			continue
		}
		t, err := e.tasks.AddTask(tasks.NewTask{
			Title:       src.Title,
			Description: src.Description,
			Category:    src.Category,
			Priority:    src.Priority,
			Duration:    src.Duration,
			Date:        today,
			TimeSlot:    src.TimeSlot,
			Recurring:   true,
			Tags:        src.Tags,
			CarryOver:   true,
		})
		if err != nil {
			e.log.Warn("skipping recurring task that failed validation", "id", src.ID, "error", err)
			continue
		}
		existing[t.Key()] = struct{}{}
		created = append(created, t)
	}

	if len(created) > 0 {
		e.log.Info("rolled over recurring tasks", "from", yesterday, "to", today, "count", len(created))
	}
	return created
}

// LastRun returns the stored day key of the last rollover, or "".
func (e *Engine) LastRun() string {
	var day string
	store.LoadJSON(e.kv, store.KeyLastRollover, &day, e.log)
	return day
}

// CheckAndRun runs the rollover when today differs from the stored last
// rollover day, or unconditionally when force is set, then records today.
func (e *Engine) CheckAndRun(force bool) (ran bool, created []models.Task) {
	e.mu.Lock()
	today := clock.Today(e.clk)
	if !force && e.LastRun() == today {
		e.mu.Unlock()
		return false, nil
	}
	created = e.rolloverLocked()
	store.SaveJSON(e.kv, store.KeyLastRollover, today, e.log)
	n := e.notifier
	e.mu.Unlock()

	if n != nil && len(created) > 0 {
		n.Notify(models.NotifyRollover, "Schedule Planner", "Daily tasks have been rolled over!")
	}
	return true, created
}

// Start checks immediately and then every interval until ctx is done or
// Stop is called. A second Start replaces the running poll.
func (e *Engine) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	e.CheckAndRun(false)

	e.mu.Lock()
	e.stopLocked()
	ctx, cancel := context.WithCancel(ctx)
	h := e.clk.Every(interval, func() { e.CheckAndRun(false) })
	done := make(chan struct{})
	e.poll, e.cancel, e.done = h, cancel, done
	e.mu.Unlock()

	go func() {
		defer close(done)
		<-ctx.Done()
		h.Stop()
	}()
}

// Stop cancels polling.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	if e.poll != nil {
		e.poll.Stop()
		e.poll = nil
	}
}
