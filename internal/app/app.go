// Package app wires the stores and engines into one application. The CLI is
// a thin adapter over the App it builds.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/josephgoksu/dayplan/internal/analytics"
	"github.com/josephgoksu/dayplan/internal/bridge"
	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/internal/config"
	"github.com/josephgoksu/dayplan/internal/notify"
	"github.com/josephgoksu/dayplan/internal/pomodoro"
	"github.com/josephgoksu/dayplan/internal/rollover"
	"github.com/josephgoksu/dayplan/internal/tasks"
	"github.com/josephgoksu/dayplan/internal/tracking"
	"github.com/josephgoksu/dayplan/models"
	"github.com/josephgoksu/dayplan/store"
	"github.com/josephgoksu/dayplan/types"
	"github.com/spf13/afero"
)

// Options configures New. Zero fields get production defaults.
type Options struct {
	Config types.AppConfig
	// Clock defaults to the wall clock.
	Clock clock.Clock
	// Store overrides the backend selected by Config.Data.
	Store store.Store
	// Fs is the bridge filesystem; defaults to the OS.
	Fs afero.Fs
	// Out receives delivered notifications; defaults to stderr.
	Out    io.Writer
	Logger *slog.Logger
}

// App holds every service of a running dayplan instance.
type App struct {
	Config        types.AppConfig
	Clock         clock.Clock
	Store         store.Store
	Tasks         *tasks.Service
	Ledger        *tracking.Ledger
	Pomodoro      *pomodoro.Engine
	Rollover      *rollover.Engine
	Analytics     *analytics.Aggregator
	Notifications *notify.Center
	// Bridge is nil unless bridge.enabled is set.
	Bridge *bridge.Mirror

	log *slog.Logger

	mu       sync.RWMutex
	settings models.Settings
}

// OpenStore opens the storage backend named by cfg.
func OpenStore(cfg types.DataConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", "file":
		return store.NewFileStore(cfg.Dir, cfg.Format)
	case "sqlite":
		return store.NewSQLiteStore(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.Backend)
	}
}

// New builds the application graph and loads persisted state.
func New(opts Options) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real()
	}
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	kv := opts.Store
	if kv == nil {
		var err error
		if kv, err = OpenStore(opts.Config.Data); err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
	}

	a := &App{Config: opts.Config, Clock: clk, Store: kv, log: log}
	a.settings = config.LoadSettings(kv, log)

	a.Notifications = notify.NewCenter(
		notify.NewLog(kv, clk, log),
		notify.NewTerminal(out),
		func() bool { return a.Settings().Notifications.Sound },
		log,
	)

	a.Tasks = tasks.New(kv, clk, log)

	a.Ledger = tracking.New(kv, clk, a.Tasks, log)
	a.Ledger.SetTickInterval(opts.Config.Tracking.TickInterval)
	a.Ledger.OnAutoComplete(func(t models.Task) {
		a.Notifications.Notify(models.NotifyTaskComplete, "Task Completed",
			fmt.Sprintf("%q reached its planned %d minutes.", t.Title, t.Duration))
	})

	a.Rollover = rollover.New(a.Tasks, kv, clk, log)
	a.Rollover.SetNotifier(a.Notifications)

	a.Pomodoro = pomodoro.New(kv, clk, a.Ledger, a.settings.Pomodoro, log)
	a.Pomodoro.SetNotifier(a.Notifications)
	a.Pomodoro.SetCue(a.Notifications.Chime)

	a.Analytics = analytics.New(a.Tasks, a.Ledger, clk)

	if opts.Config.Bridge.Enabled {
		fs := opts.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		dir := opts.Config.Bridge.Dir
		if dir == "" {
			dir = config.DefaultBridgeDir
		}
		a.Bridge = bridge.NewMirror(fs, config.ResolveIn(opts.Config.Data.Dir, dir), kv, log)
	}

	log.Debug("app ready", "backend", opts.Config.Data.Backend, "dir", opts.Config.Data.Dir)
	return a, nil
}

// Settings returns the current app settings.
func (a *App) Settings() models.Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.settings
}

// UpdateSettings validates, stores and applies s.
func (a *App) UpdateSettings(s models.Settings) error {
	if err := config.SaveSettings(a.Store, s); err != nil {
		return err
	}
	if err := a.Pomodoro.UpdateSettings(s.Pomodoro); err != nil {
		return err
	}
	a.mu.Lock()
	a.settings = s
	a.mu.Unlock()
	return nil
}

// Tracking reports whether the ledger's current entry belongs to taskID.
func (a *App) Tracking(taskID string) bool {
	cur, ok := a.Ledger.Current()
	return ok && cur.TaskID == taskID
}

// Reload re-reads all state from the store, picking up writes made by
// another process.
func (a *App) Reload() {
	a.mu.Lock()
	a.settings = config.LoadSettings(a.Store, a.log)
	pomo := a.settings.Pomodoro
	a.mu.Unlock()

	if err := a.Pomodoro.UpdateSettings(pomo); err != nil {
		a.log.Warn("reloaded pomodoro settings rejected", "error", err)
	}
	a.Tasks.Load()
	a.Ledger.Load()
	a.Pomodoro.Load()
	a.Notifications.Log().Load()
	a.log.Debug("state reloaded from store")
}

// watcher is implemented by stores that can report external changes.
type watcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// Run starts the background work of the long-lived process and blocks until
// ctx is cancelled: rollover polling, bridge replication and reloading on
// external store changes. The ledger ticks on its own while an entry runs.
func (a *App) Run(ctx context.Context) error {
	a.Rollover.Start(ctx, a.Config.Rollover.PollInterval)
	defer a.Rollover.Stop()

	if a.Bridge != nil {
		a.Bridge.Start(ctx, a.Clock, a.Config.Bridge.Interval)
		defer a.Bridge.Stop()
	}

	w, ok := a.Store.(watcher)
	if !a.Config.Watch.Enabled || !ok {
		<-ctx.Done()
		return nil
	}
	a.log.Info("watching store for external changes")
	return w.Watch(ctx, a.Reload)
}

// Close stops timers and releases the store. An open time entry stays
// persisted and resumes on the next start.
func (a *App) Close() error {
	a.Pomodoro.Stop()
	a.Ledger.Close()
	a.Rollover.Stop()
	if a.Bridge != nil {
		a.Bridge.Stop()
	}
	var errs []error
	if a.Bridge != nil {
		if _, err := a.Bridge.Sync(); err != nil {
			errs = append(errs, fmt.Errorf("final bridge sync: %w", err))
		}
	}
	if err := a.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	return errors.Join(errs...)
}

// LogPath resolves the configured log file against the data directory.
func LogPath(cfg types.AppConfig) string {
	p := cfg.Log.Path
	if p == "" {
		p = config.DefaultLogPath
	}
	return config.ResolveIn(cfg.Data.Dir, p)
}
