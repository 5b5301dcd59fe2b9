package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/josephgoksu/dayplan/models"
)

// Options tune a single delivery.
type Options struct {
	Kind  string
	Sound bool
}

// Deliverer shows a notification to the user. Callers never depend on the
// outcome; errors are only logged.
type Deliverer interface {
	Deliver(title, body string, opts Options) error
}

// Terminal writes notifications as a styled line, ringing the terminal
// bell when sound is requested.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTerminal returns a Terminal writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Deliver(title, body string, opts Options) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if opts.Sound {
		if _, err := io.WriteString(t.w, Bell); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(t.w, "%s %s %s\n", icon(opts.Kind), ui.StyleTitle.Render(title), ui.StyleSubtle.Render(body))
	return err
}

// Chime rings the terminal bell.
func (t *Terminal) Chime() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := io.WriteString(t.w, Bell)
	return err
}

// Bell is the terminal bell control character.
const Bell = "\a"

// Chimer is implemented by deliverers that can play a sound on their own.
type Chimer interface {
	Chime() error
}

func icon(kind string) string {
	switch kind {
	case models.NotifyPomodoro:
		return ui.Icon("●", ui.StylePrimary)
	case models.NotifyBreak:
		return ui.Icon("◐", ui.StyleWarning)
	case models.NotifyTaskComplete:
		return ui.Icon("✓", ui.StyleSuccess)
	case models.NotifyRollover:
		return ui.Icon("↻", lipgloss.NewStyle().Foreground(ui.ColorCyan))
	default:
		return ui.Icon("•", ui.StyleSubtle)
	}
}

// Center records notifications in the Log and delivers them.
type Center struct {
	log       *Log
	deliverer Deliverer
	sound     func() bool
	logger    *slog.Logger
}

// NewCenter wires a Log to a Deliverer. sound is consulted on every
// notification so settings changes apply immediately; nil means silent.
func NewCenter(l *Log, d Deliverer, sound func() bool, logger *slog.Logger) *Center {
	if logger == nil {
		logger = slog.Default()
	}
	if sound == nil {
		sound = func() bool { return false }
	}
	return &Center{log: l, deliverer: d, sound: sound, logger: logger}
}

// Log returns the underlying notification log.
func (c *Center) Log() *Log { return c.log }

// Notify records and delivers a notification.
func (c *Center) Notify(kind, title, body string) models.Notification {
	n := c.log.Add(kind, title, body)
	c.logger.Info("notification", "type", kind, "title", title)
	if c.deliverer != nil {
		if err := c.deliverer.Deliver(title, body, Options{Kind: kind, Sound: c.sound()}); err != nil {
			c.logger.Warn("notification delivery failed", "title", title, "error", err)
		}
	}
	return n
}

// Chime plays the end-of-phase sound when sound is enabled.
func (c *Center) Chime() {
	if !c.sound() {
		return
	}
	if ch, ok := c.deliverer.(Chimer); ok {
		if err := ch.Chime(); err != nil {
			c.logger.Debug("chime failed", "error", err)
		}
	}
}
