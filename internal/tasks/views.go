package tasks

import (
	"cmp"
	"slices"

	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/models"
)

// Tasks returns a copy of every task.
func (s *Service) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.tasks, nil)
}

// Get returns the task with id.
func (s *Service) Get(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(s.tasks, id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return models.Task{}, false
}

// ByDate returns the tasks for day ordered by time slot. Tasks without a
// slot come last, in creation order.
func (s *Service) ByDate(day string) []models.Task {
	s.mu.Lock()
	out := cloneAll(s.tasks, func(t models.Task) bool { return t.Date == day })
	s.mu.Unlock()
	slices.SortStableFunc(out, bySlot)
	return out
}

// TodayTasks is ByDate for the current day.
func (s *Service) TodayTasks() []models.Task {
	return s.ByDate(clock.Today(s.clk))
}

// ActiveID returns the active task pointer, or "".
func (s *Service) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// ActiveTask returns the task the active pointer refers to.
func (s *Service) ActiveTask() (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(s.tasks, s.activeID); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return models.Task{}, false
}

// CompletedToday returns today's completed tasks.
func (s *Service) CompletedToday() []models.Task {
	return filterStatus(s.TodayTasks(), models.StatusCompleted)
}

// PendingToday returns today's pending tasks.
func (s *Service) PendingToday() []models.Task {
	return filterStatus(s.TodayTasks(), models.StatusPending)
}

// InProgress returns every in-progress task regardless of date.
func (s *Service) InProgress() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.tasks, func(t models.Task) bool { return t.Status == models.StatusInProgress })
}

func bySlot(a, b models.Task) int {
	switch {
	case a.TimeSlot == "" && b.TimeSlot != "":
		return 1
	case a.TimeSlot != "" && b.TimeSlot == "":
		return -1
	}
	if c := cmp.Compare(a.TimeSlot, b.TimeSlot); c != 0 {
		return c
	}
	return a.CreatedAt.Compare(b.CreatedAt)
}

func filterStatus(list []models.Task, status models.TaskStatus) []models.Task {
	return slices.DeleteFunc(list, func(t models.Task) bool { return t.Status != status })
}

func cloneAll(list []models.Task, keep func(models.Task) bool) []models.Task {
	out := make([]models.Task, 0, len(list))
	for _, t := range list {
		if keep == nil || keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}
