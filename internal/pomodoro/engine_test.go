package pomodoro

import (
	"testing"
	"time"

	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/internal/tasks"
	"github.com/josephgoksu/dayplan/internal/tracking"
	"github.com/josephgoksu/dayplan/models"
	"github.com/josephgoksu/dayplan/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct{ titles []string }

func (r *recorder) Notify(kind, title, body string) models.Notification {
	r.titles = append(r.titles, title)
	return models.Notification{Type: kind, Title: title, Body: body}
}

func newEngine(t *testing.T, mutate func(*models.PomodoroSettings)) (*Engine, *clock.FakeClock, *store.MemoryStore) {
	t.Helper()
	settings := models.DefaultSettings().Pomodoro
	if mutate != nil {
		mutate(&settings)
	}
	clk := clock.Fake(time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local))
	kv := store.NewMemoryStore()
	e := New(kv, clk, nil, settings, nil)
	t.Cleanup(e.Stop)
	return e, clk, kv
}

func TestStartPomodoro_Disabled(t *testing.T) {
	e, clk, _ := newEngine(t, func(s *models.PomodoroSettings) { s.Enabled = false })
	assert.False(t, e.StartPomodoro("t1"))
	assert.Equal(t, 0, clk.Pending())
	assert.Equal(t, models.PhaseIdle, e.Snapshot().Phase)
}

func TestFocusCompletesAfterWorkDuration(t *testing.T) {
	e, clk, kv := newEngine(t, nil)
	n := &recorder{}
	e.SetNotifier(n)
	cues := 0
	e.SetCue(func() { cues++ })

	require.True(t, e.StartPomodoro("t1"))
	assert.Equal(t, "25:00", e.FormattedTime())
	clk.Advance(25 * time.Minute)

	sessions := e.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, 25, sessions[0].Duration)
	assert.Equal(t, "t1", sessions[0].TaskID)
	assert.True(t, sessions[0].Completed)
	assert.Equal(t, 1, cues)
	assert.Equal(t, []string{"Pomodoro Complete!"}, n.titles)

	snap := e.Snapshot()
	assert.Equal(t, models.PhaseIdle, snap.Phase)
	assert.False(t, snap.Active)
	assert.Equal(t, 1, snap.Completed)
	assert.Equal(t, 0, clk.Pending())

	var stored []models.PomodoroSession
	require.True(t, store.LoadJSON(kv, store.KeyPomodoroSessions, &stored, nil))
	assert.Len(t, stored, 1)
}

func TestSkipPhase_RecordsRealElapsedTime(t *testing.T) {
	e, clk, _ := newEngine(t, nil)

	e.StartPomodoro("t1")
	clk.Advance(7*time.Minute + 40*time.Second)
	require.True(t, e.SkipPhase())

	sessions := e.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, 8, sessions[0].Duration, "real elapsed minutes, not the 25 minute preset")
	assert.False(t, e.SkipPhase(), "nothing left to skip")
}

func TestPauseFreezesCountdown(t *testing.T) {
	e, clk, _ := newEngine(t, nil)

	e.StartPomodoro("")
	clk.Advance(time.Minute)
	e.Pause()
	clk.Advance(5 * time.Minute)

	snap := e.Snapshot()
	assert.True(t, snap.Paused)
	assert.Equal(t, 24*60, snap.Remaining)
	assert.Equal(t, 60, snap.Elapsed)
	assert.InDelta(t, 4.0, snap.Progress, 0.001)

	e.Resume()
	clk.Advance(30 * time.Second)
	assert.Equal(t, "23:30", e.FormattedTime())
}

func TestNextBreakType(t *testing.T) {
	e, _, _ := newEngine(t, nil)

	for i := 0; i < 3; i++ {
		assert.Equal(t, models.PhaseShortBreak, e.NextBreakType(), "after %d pomodoros", i)
		e.StartPomodoro("")
		e.SkipPhase()
	}
	assert.Equal(t, models.PhaseLongBreak, e.NextBreakType())

	e.StartBreak("")
	snap := e.Snapshot()
	assert.Equal(t, models.PhaseLongBreak, snap.Phase)
	assert.Equal(t, 15*60, snap.Remaining)

	e.Reset()
	assert.Equal(t, 0, e.Snapshot().Completed)
	assert.Equal(t, models.PhaseShortBreak, e.NextBreakType())
}

func TestAutoStartTransitions(t *testing.T) {
	e, clk, _ := newEngine(t, func(s *models.PomodoroSettings) {
		s.AutoStartBreaks = true
		s.AutoStartPomodoros = true
	})

	e.StartPomodoro("")
	clk.Advance(25 * time.Minute)
	assert.True(t, e.Snapshot().Active, "waiting to auto-start the break")
	clk.Advance(AutoStartDelay)
	assert.Equal(t, models.PhaseShortBreak, e.Snapshot().Phase)

	clk.Advance(5*time.Minute + AutoStartDelay)
	snap := e.Snapshot()
	assert.Equal(t, models.PhaseFocus, snap.Phase)
	assert.True(t, snap.Active)

	clk.Advance(25 * time.Minute)
	assert.Len(t, e.Sessions(), 2, "auto-started focus phases are recorded too")
}

func TestStopCancelsPendingAutoStart(t *testing.T) {
	e, clk, _ := newEngine(t, func(s *models.PomodoroSettings) { s.AutoStartBreaks = true })

	e.StartPomodoro("")
	clk.Advance(25 * time.Minute)
	e.Stop()
	clk.Advance(time.Minute)
	assert.Equal(t, models.PhaseIdle, e.Snapshot().Phase)
	assert.Equal(t, 0, clk.Pending())
}

func TestFocusMinutesIncludeLiveSession(t *testing.T) {
	e, clk, _ := newEngine(t, nil)

	e.StartPomodoro("")
	clk.Advance(25 * time.Minute)
	e.StartPomodoro("")
	clk.Advance(10 * time.Minute)

	assert.Equal(t, 35, e.TodaysFocusMinutes())
	assert.Equal(t, 35, e.WeekFocusMinutes())
	assert.Equal(t, 35, e.MonthFocusMinutes())
	assert.Equal(t, 35, e.DailyFocusScore())
	assert.Len(t, e.SessionsForDate("2025-10-15"), 1)

	// The running phase finishes as another full session.
	clk.Advance(8 * 24 * time.Hour)
	assert.Equal(t, 0, e.WeekFocusMinutes())
	assert.Equal(t, 50, e.MonthFocusMinutes())
}

func TestBreaksPauseAndResumeTracking(t *testing.T) {
	clk := clock.Fake(time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local))
	kv := store.NewMemoryStore()
	ts := tasks.New(kv, clk, nil)
	ledger := tracking.New(kv, clk, ts, nil)
	defer ledger.Close()
	task, err := ts.AddTask(tasks.NewTask{Title: "Write"})
	require.NoError(t, err)

	e := New(kv, clk, ledger, models.DefaultSettings().Pomodoro, nil)
	defer e.Stop()

	ledger.StartTracking(task.ID)
	e.StartPomodoro(task.ID)
	clk.Advance(25 * time.Minute)
	assert.Equal(t, tracking.StatePaused, ledger.State())
	cur, _ := ledger.Current()
	assert.Equal(t, "pomodoro-complete", cur.Pauses[0].Reason)

	e.StartBreak("")
	clk.Advance(5 * time.Minute)
	e.ResumeWork()
	assert.Equal(t, tracking.StateTracking, ledger.State())

	clk.Advance(10 * time.Minute)
	entry, ok := ledger.StopTracking()
	require.True(t, ok)
	assert.Equal(t, 35, entry.Duration)
}

func TestUpdateSettings_Validates(t *testing.T) {
	e, _, _ := newEngine(t, nil)
	bad := e.Settings()
	bad.WorkDuration = 0
	assert.Error(t, e.UpdateSettings(bad))

	good := e.Settings()
	good.WorkDuration = 50
	require.NoError(t, e.UpdateSettings(good))
	e.StartPomodoro("")
	assert.Equal(t, "50:00", e.FormattedTime())
}
