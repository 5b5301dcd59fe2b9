package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/internal/config"
	"github.com/josephgoksu/dayplan/internal/tasks"
	"github.com/josephgoksu/dayplan/models"
	"github.com/josephgoksu/dayplan/store"
	"github.com/josephgoksu/dayplan/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, cfg types.AppConfig) (*App, *clock.FakeClock, *bytes.Buffer, store.Store, afero.Fs) {
	t.Helper()
	clk := clock.Fake(time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local))
	kv := store.NewMemoryStore()
	fs := afero.NewMemMapFs()
	var out bytes.Buffer
	a, err := New(Options{Config: cfg, Clock: clk, Store: kv, Fs: fs, Out: &out})
	require.NoError(t, err)
	return a, clk, &out, kv, fs
}

func TestApp_AutoCompleteNotifies(t *testing.T) {
	a, clk, out, _, _ := newTestApp(t, types.AppConfig{})
	defer a.Close()

	task, err := a.Tasks.AddTask(tasks.NewTask{Title: "Inbox zero", Duration: 1})
	require.NoError(t, err)

	a.Ledger.StartTracking(task.ID)
	clk.Advance(61 * time.Second)

	got, ok := a.Tasks.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.False(t, a.Ledger.IsTracking())

	notes := a.Notifications.Log().Sorted()
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotifyTaskComplete, notes[0].Type)
	assert.Contains(t, out.String(), "Task Completed")
}

func TestApp_UpdateSettingsAndReload(t *testing.T) {
	a, _, _, kv, _ := newTestApp(t, types.AppConfig{})
	defer a.Close()

	s := a.Settings()
	s.Pomodoro.WorkDuration = 50
	require.NoError(t, a.UpdateSettings(s))
	assert.Equal(t, 50, a.Pomodoro.Settings().WorkDuration)

	s.Pomodoro.WorkDuration = 0
	assert.Error(t, a.UpdateSettings(s))
	assert.Equal(t, 50, a.Settings().Pomodoro.WorkDuration)

	// Another process changes the settings and adds a task.
	other := models.DefaultSettings()
	other.Notifications.Sound = true
	require.NoError(t, config.SaveSettings(kv, other))
	peer := tasks.New(kv, a.Clock, nil)
	_, err := peer.AddTask(tasks.NewTask{Title: "Added elsewhere"})
	require.NoError(t, err)

	a.Reload()
	assert.True(t, a.Settings().Notifications.Sound)
	assert.Equal(t, 25, a.Pomodoro.Settings().WorkDuration)
	assert.Len(t, a.Tasks.TodayTasks(), 1)
}

func TestApp_RunRollsOverAndMirrors(t *testing.T) {
	cfg := types.AppConfig{
		Data:   types.DataConfig{Dir: "/data"},
		Bridge: types.BridgeConfig{Enabled: true},
	}
	a, clk, _, _, fs := newTestApp(t, cfg)

	_, err := a.Tasks.AddTask(tasks.NewTask{Title: "Standup", Recurring: true, TimeSlot: "09:30", Date: "2025-10-14"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()
	require.NoError(t, <-done)

	today := a.Tasks.ByDate(clock.Today(clk))
	require.Len(t, today, 1)
	assert.True(t, today[0].CarryOver)
	assert.Equal(t, "2025-10-15", a.Rollover.LastRun())

	require.NoError(t, a.Close())
	ok, err := afero.Exists(fs, "/data/bridge/tasks.json")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = afero.Exists(fs, "/data/bridge/notifications.json")
	require.NoError(t, err)
	assert.True(t, ok, "rollover notification is mirrored")
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	fileStore, err := OpenStore(types.DataConfig{Dir: dir, Backend: "file", Format: "yaml"})
	require.NoError(t, err)
	require.NoError(t, fileStore.Close())

	sqliteStore, err := OpenStore(types.DataConfig{Dir: dir, Backend: "sqlite"})
	require.NoError(t, err)
	require.NoError(t, sqliteStore.Close())

	_, err = OpenStore(types.DataConfig{Dir: dir, Backend: "redis"})
	assert.Error(t, err)
}

func TestLogPath(t *testing.T) {
	cfg := types.AppConfig{Data: types.DataConfig{Dir: "/var/dayplan"}}
	assert.Equal(t, "/var/dayplan/logs/dayplan.log", LogPath(cfg))

	cfg.Log.Path = "/tmp/custom.log"
	assert.Equal(t, "/tmp/custom.log", LogPath(cfg))
}
