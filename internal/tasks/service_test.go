package tasks

import (
	"testing"
	"time"

	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/models"
	"github.com/josephgoksu/dayplan/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *clock.FakeClock, *store.MemoryStore) {
	t.Helper()
	clk := clock.Fake(time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local))
	kv := store.NewMemoryStore()
	return New(kv, clk, nil), clk, kv
}

func mustAdd(t *testing.T, s *Service, in NewTask) models.Task {
	t.Helper()
	task, err := s.AddTask(in)
	require.NoError(t, err)
	return task
}

func TestAddTask_Defaults(t *testing.T) {
	s, _, _ := newTestService(t)

	task := mustAdd(t, s, NewTask{Title: "  Write report  ", Duration: 30})
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "2025-10-15", task.Date)
	assert.Equal(t, models.CategoryOther, task.Category)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Empty(t, task.TimeSegments)
	assert.False(t, task.CarryOver)
}

func TestAddTask_Invalid(t *testing.T) {
	s, _, _ := newTestService(t)

	_, err := s.AddTask(NewTask{Title: ""})
	assert.Error(t, err)
	_, err = s.AddTask(NewTask{Title: "x", Category: "chores"})
	assert.Error(t, err)
	_, err = s.AddTask(NewTask{Title: "x", TimeSlot: "9am"})
	assert.Error(t, err)
	assert.Empty(t, s.Tasks())
}

func TestStartStop_SegmentAccounting(t *testing.T) {
	s, clk, _ := newTestService(t)
	task := mustAdd(t, s, NewTask{Title: "Deep work", Duration: 60})

	started, ok := s.StartTask(task.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusInProgress, started.Status)
	assert.Equal(t, task.ID, s.ActiveID())
	require.Len(t, started.TimeSegments, 1)
	assert.True(t, started.TimeSegments[0].IsOpen())

	clk.Advance(10*time.Minute + 30*time.Second)
	stopped, ok := s.StopTask(task.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, stopped.Status)
	assert.Equal(t, 10, stopped.ActualDuration)
	assert.Empty(t, s.ActiveID())

	clk.Advance(time.Hour)
	_, ok = s.StartTask(task.ID)
	require.True(t, ok)
	clk.Advance(20 * time.Minute)
	done, ok := s.CompleteTask(task.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.Equal(t, 30, done.ActualDuration)
	assert.Equal(t, 1830, done.ActualSeconds)
	require.NotNil(t, done.CompletedAt)
	assert.Len(t, done.TimeSegments, 2)
	for _, seg := range done.TimeSegments {
		assert.False(t, seg.IsOpen())
	}
}

func TestStartTask_StopsOtherInProgress(t *testing.T) {
	s, clk, _ := newTestService(t)
	a := mustAdd(t, s, NewTask{Title: "A"})
	b := mustAdd(t, s, NewTask{Title: "B"})

	_, ok := s.StartTask(a.ID)
	require.True(t, ok)
	clk.Advance(5 * time.Minute)
	_, ok = s.StartTask(b.ID)
	require.True(t, ok)

	inProgress := s.InProgress()
	require.Len(t, inProgress, 1)
	assert.Equal(t, b.ID, inProgress[0].ID)

	gotA, _ := s.Get(a.ID)
	assert.Equal(t, models.StatusPending, gotA.Status)
	assert.Equal(t, 5, gotA.ActualDuration)
	assert.Nil(t, gotA.OpenSegment())
	assert.Equal(t, b.ID, s.ActiveID())
}

func TestInvalidTransitionsAreNoOps(t *testing.T) {
	s, _, _ := newTestService(t)
	task := mustAdd(t, s, NewTask{Title: "A"})

	_, ok := s.StopTask(task.ID)
	assert.False(t, ok, "stop requires in-progress")

	_, ok = s.CompleteTask(task.ID)
	require.True(t, ok)
	_, ok = s.StartTask(task.ID)
	assert.False(t, ok, "completed is terminal")
	_, ok = s.SkipTask(task.ID)
	assert.False(t, ok, "completed cannot be skipped")

	for _, op := range []func(string) (models.Task, bool){s.StartTask, s.StopTask, s.CompleteTask, s.SkipTask, s.SyncActual} {
		_, ok := op("missing")
		assert.False(t, ok)
	}
	assert.False(t, s.DeleteTask("missing"))
	_, ok, err := s.UpdateTask("missing", Patch{})
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestSkipTask(t *testing.T) {
	s, _, _ := newTestService(t)
	task := mustAdd(t, s, NewTask{Title: "Gym", Category: models.CategoryHealth})

	skipped, ok := s.SkipTask(task.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusSkipped, skipped.Status)
	_, ok = s.StartTask(task.ID)
	assert.False(t, ok)
}

func TestDeleteTask_ClearsActivePointer(t *testing.T) {
	s, _, _ := newTestService(t)
	task := mustAdd(t, s, NewTask{Title: "A"})
	_, _ = s.StartTask(task.ID)

	assert.True(t, s.DeleteTask(task.ID))
	assert.Empty(t, s.ActiveID())
	_, ok := s.ActiveTask()
	assert.False(t, ok)
}

func TestUpdateTask(t *testing.T) {
	s, _, _ := newTestService(t)
	task := mustAdd(t, s, NewTask{Title: "A"})

	title := "Renamed"
	slot := "08:30"
	updated, ok, err := s.UpdateTask(task.ID, Patch{Title: &title, TimeSlot: &slot})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "08:30", updated.TimeSlot)

	bad := models.Category("nope")
	_, ok, err = s.UpdateTask(task.ID, Patch{Category: &bad})
	assert.True(t, ok)
	assert.Error(t, err)
	got, _ := s.Get(task.ID)
	assert.Equal(t, models.CategoryOther, got.Category)
}

func TestSyncActual_IncludesOpenSegment(t *testing.T) {
	s, clk, _ := newTestService(t)
	task := mustAdd(t, s, NewTask{Title: "A"})
	_, _ = s.StartTask(task.ID)

	clk.Advance(3*time.Minute + 59*time.Second)
	live, ok := s.SyncActual(task.ID)
	require.True(t, ok)
	assert.Equal(t, 3, live.ActualDuration)
	assert.True(t, live.TimeSegments[0].IsOpen())
}

func TestPersistenceRoundTrip(t *testing.T) {
	s, clk, kv := newTestService(t)
	task := mustAdd(t, s, NewTask{Title: "A", TimeSlot: "10:00"})
	_, _ = s.StartTask(task.ID)

	reloaded := New(kv, clk, nil)
	got, ok := reloaded.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.Equal(t, task.ID, reloaded.ActiveID())
}

func TestLoad_MalformedResets(t *testing.T) {
	kv := store.NewMemoryStore()
	require.NoError(t, kv.Set(store.KeyTasks, []byte(`{"broken"`)))
	require.NoError(t, kv.Set(store.KeyActiveTaskID, []byte(`"ghost"`)))

	s := New(kv, clock.Fake(time.Now()), nil)
	assert.Empty(t, s.Tasks())
	assert.Empty(t, s.ActiveID())
}

func TestViewsAndSubscribe(t *testing.T) {
	s, _, _ := newTestService(t)
	calls := 0
	cancel := s.Subscribe(func() { calls++ })

	late := mustAdd(t, s, NewTask{Title: "Late", TimeSlot: "15:00"})
	mustAdd(t, s, NewTask{Title: "Unslotted"})
	early := mustAdd(t, s, NewTask{Title: "Early", TimeSlot: "08:00"})
	mustAdd(t, s, NewTask{Title: "Tomorrow", Date: "2025-10-16"})
	_, _ = s.CompleteTask(early.ID)

	today := s.TodayTasks()
	require.Len(t, today, 3)
	assert.Equal(t, []string{"Early", "Late", "Unslotted"}, []string{today[0].Title, today[1].Title, today[2].Title})
	assert.Len(t, s.CompletedToday(), 1)
	assert.Len(t, s.PendingToday(), 2)
	assert.Len(t, s.ByDate("2025-10-16"), 1)
	assert.Equal(t, 5, calls)

	cancel()
	_, _ = s.SkipTask(late.ID)
	assert.Equal(t, 5, calls)
}
