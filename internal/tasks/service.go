// Package tasks owns the day's task records, their lifecycle state and the
// time segments recorded against them.
package tasks

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/models"
	"github.com/josephgoksu/dayplan/store"
)

// NewTask carries the user-supplied fields of a task to create. Zero values
// are replaced with defaults: today's date, category "other", priority
// "medium".
type NewTask struct {
	Title       string
	Description string
	Category    models.Category
	Priority    models.TaskPriority
	Duration    int
	Date        string
	TimeSlot    string
	Recurring   bool
	Tags        []string
	CarryOver   bool
}

// Patch lists the editable fields of a task. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	Category    *models.Category
	Priority    *models.TaskPriority
	Duration    *int
	Date        *string
	TimeSlot    *string
	Recurring   *bool
	Tags        *[]string
}

// Service is the task store. It is safe for concurrent use; every mutation
// is written through to the key-value store before it returns.
type Service struct {
	mu       sync.Mutex
	kv       store.Store
	clk      clock.Clock
	log      *slog.Logger
	tasks    []models.Task
	activeID string

	subMu  sync.Mutex
	subs   map[int]func()
	nextID int
}

// New creates a Service and loads persisted tasks from kv.
func New(kv store.Store, clk clock.Clock, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{kv: kv, clk: clk, log: log, subs: make(map[int]func())}
	s.Load()
	return s
}

// Load replaces the in-memory state with what is stored. Malformed data
// resets the collection to empty.
func (s *Service) Load() {
	s.mu.Lock()
	var loaded []models.Task
	if !store.LoadJSON(s.kv, store.KeyTasks, &loaded, s.log) {
		loaded = nil
	}
	var active string
	store.LoadJSON(s.kv, store.KeyActiveTaskID, &active, s.log)
	if active != "" && s.indexOf(loaded, active) < 0 {
		s.log.Debug("dropping dangling active task pointer", "id", active)
		active = ""
	}
	s.tasks = loaded
	s.activeID = active
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers fn to run after every change. The returned function
// removes the registration.
func (s *Service) Subscribe(fn func()) (cancel func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Service) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// AddTask validates in, fills defaults and stores the new task.
func (s *Service) AddTask(in NewTask) (models.Task, error) {
	now := s.clk.Now()
	t := models.Task{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Category:     in.Category,
		Priority:     in.Priority,
		Duration:     in.Duration,
		Date:         in.Date,
		TimeSlot:     in.TimeSlot,
		Recurring:    in.Recurring,
		Tags:         slices.Clone(in.Tags),
		Status:       models.StatusPending,
		TimeSegments: []models.TimeSegment{},
		CarryOver:    in.CarryOver,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if t.Category == "" {
		t.Category = models.CategoryOther
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if t.Date == "" {
		t.Date = clock.DayKey(now)
	}
	if err := models.ValidateStruct(t); err != nil {
		return models.Task{}, fmt.Errorf("invalid task: %w", err)
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.persistLocked()
	s.mu.Unlock()

	s.log.Debug("task added", "id", t.ID, "title", t.Title, "date", t.Date, "carryOver", t.CarryOver)
	s.notify()
	return t.Clone(), nil
}

// UpdateTask applies p to the task with id. ok is false when no such task
// exists; err reports a patch that would leave the task invalid.
func (s *Service) UpdateTask(id string, p Patch) (task models.Task, ok bool, err error) {
	s.mu.Lock()
	i := s.indexOf(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		return models.Task{}, false, nil
	}
	t := s.tasks[i].Clone()
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.TimeSlot != nil {
		t.TimeSlot = *p.TimeSlot
	}
	if p.Recurring != nil {
		t.Recurring = *p.Recurring
	}
	if p.Tags != nil {
		t.Tags = slices.Clone(*p.Tags)
	}
	if err := models.ValidateStruct(t); err != nil {
		s.mu.Unlock()
		return models.Task{}, true, fmt.Errorf("invalid update: %w", err)
	}
	t.UpdatedAt = s.clk.Now()
	s.tasks[i] = t
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return t.Clone(), true, nil
}

// DeleteTask removes the task. Time entries and pomodoro sessions that
// reference it are left in place.
func (s *Service) DeleteTask(id string) bool {
	s.mu.Lock()
	i := s.indexOf(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	if s.activeID == id {
		s.activeID = ""
	}
	s.persistLocked()
	s.mu.Unlock()

	s.log.Debug("task deleted", "id", id)
	s.notify()
	return true
}

// StartTask opens a new segment on the task and makes it active. Any other
// in-progress task is stopped first so at most one segment is open.
func (s *Service) StartTask(id string) (models.Task, bool) {
	s.mu.Lock()
	i := s.indexOf(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		return models.Task{}, false
	}
	t := &s.tasks[i]
	if t.Status == models.StatusInProgress && t.OpenSegment() != nil {
		out := t.Clone()
		s.mu.Unlock()
		return out, true
	}
	if !models.ValidateStatusTransition(t.Status, models.StatusInProgress) {
		s.mu.Unlock()
		return models.Task{}, false
	}

	now := s.clk.Now()
	for j := range s.tasks {
		if j != i && s.tasks[j].Status == models.StatusInProgress {
			s.closeLocked(&s.tasks[j], now)
			s.tasks[j].Status = models.StatusPending
			s.log.Debug("stopped previously active task", "id", s.tasks[j].ID)
		}
	}

	t.TimeSegments = append(t.TimeSegments, models.TimeSegment{StartTime: now})
	t.Status = models.StatusInProgress
	if t.StartedAt == nil {
		started := now
		t.StartedAt = &started
	}
	t.UpdatedAt = now
	s.activeID = t.ID
	out := t.Clone()
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return out, true
}

// StopTask closes the open segment and returns the task to pending.
func (s *Service) StopTask(id string) (models.Task, bool) {
	s.mu.Lock()
	i := s.indexOf(s.tasks, id)
	if i < 0 || s.tasks[i].Status != models.StatusInProgress {
		s.mu.Unlock()
		return models.Task{}, false
	}
	t := &s.tasks[i]
	now := s.clk.Now()
	s.closeLocked(t, now)
	t.Status = models.StatusPending
	if s.activeID == id {
		s.activeID = ""
	}
	out := t.Clone()
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return out, true
}

// PauseTask is StopTask: a paused task is pending with its segment closed.
func (s *Service) PauseTask(id string) (models.Task, bool) {
	return s.StopTask(id)
}

// CompleteTask closes any open segment and marks the task completed.
func (s *Service) CompleteTask(id string) (models.Task, bool) {
	s.mu.Lock()
	i := s.indexOf(s.tasks, id)
	if i < 0 || !models.ValidateStatusTransition(s.tasks[i].Status, models.StatusCompleted) {
		s.mu.Unlock()
		return models.Task{}, false
	}
	t := &s.tasks[i]
	now := s.clk.Now()
	s.closeLocked(t, now)
	t.Status = models.StatusCompleted
	completed := now
	t.CompletedAt = &completed
	if s.activeID == id {
		s.activeID = ""
	}
	out := t.Clone()
	s.persistLocked()
	s.mu.Unlock()

	s.log.Debug("task completed", "id", id, "actualDuration", out.ActualDuration)
	s.notify()
	return out, true
}

// SkipTask marks a pending task skipped for the day.
func (s *Service) SkipTask(id string) (models.Task, bool) {
	s.mu.Lock()
	i := s.indexOf(s.tasks, id)
	if i < 0 || s.tasks[i].Status != models.StatusPending {
		s.mu.Unlock()
		return models.Task{}, false
	}
	t := &s.tasks[i]
	t.Status = models.StatusSkipped
	t.UpdatedAt = s.clk.Now()
	out := t.Clone()
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return out, true
}

// SyncActual refreshes the task's actual duration including the running
// segment up to now. It writes through only when the minute count changes.
func (s *Service) SyncActual(id string) (models.Task, bool) {
	s.mu.Lock()
	i := s.indexOf(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		return models.Task{}, false
	}
	t := &s.tasks[i]
	secs := segmentSeconds(t.TimeSegments, s.clk.Now())
	changed := secs/60 != t.ActualDuration
	t.ActualSeconds = secs
	t.ActualDuration = secs / 60
	if changed {
		s.persistLocked()
	}
	out := t.Clone()
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return out, true
}

// closeLocked ends the open segment at now and recomputes actual duration
// from the closed segments.
func (s *Service) closeLocked(t *models.Task, now time.Time) {
	if seg := t.OpenSegment(); seg != nil {
		end := now
		seg.EndTime = &end
	}
	secs := segmentSeconds(t.TimeSegments, time.Time{})
	t.ActualSeconds = secs
	t.ActualDuration = secs / 60
	t.UpdatedAt = now
}

// segmentSeconds sums segment lengths. Open segments count up to now, or
// not at all when now is zero.
func segmentSeconds(segs []models.TimeSegment, now time.Time) int {
	var total time.Duration
	for _, seg := range segs {
		var end time.Time
		switch {
		case seg.EndTime != nil:
			end = *seg.EndTime
		case !now.IsZero():
			end = now
		default:
			continue
		}
		if d := end.Sub(seg.StartTime); d > 0 {
			total += d
		}
	}
	return int(total / time.Second)
}

func (s *Service) indexOf(list []models.Task, id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(list, func(t models.Task) bool { return t.ID == id })
}

func (s *Service) persistLocked() {
	tasks := s.tasks
	if tasks == nil {
		tasks = []models.Task{}
	}
	store.SaveJSON(s.kv, store.KeyTasks, tasks, s.log)
	store.SaveJSON(s.kv, store.KeyActiveTaskID, s.activeID, s.log)
}
