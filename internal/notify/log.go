// Package notify keeps the in-app notification log and hands notifications
// to a delivery channel.
package notify

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/models"
	"github.com/josephgoksu/dayplan/store"
)

// Retention is how long notifications are kept.
const Retention = 72 * time.Hour

// Log is the persisted notification list, newest first.
type Log struct {
	mu    sync.Mutex
	kv    store.Store
	clk   clock.Clock
	log   *slog.Logger
	items []models.Notification
}

// NewLog creates a Log and loads it, dropping expired notifications.
func NewLog(kv store.Store, clk clock.Clock, log *slog.Logger) *Log {
	if log == nil {
		log = slog.Default()
	}
	l := &Log{kv: kv, clk: clk, log: log}
	l.Load()
	return l
}

// Load reloads from storage and prunes entries older than Retention.
func (l *Log) Load() {
	l.mu.Lock()
	var items []models.Notification
	found := store.LoadJSON(l.kv, store.KeyNotifications, &items, l.log)
	l.items = items
	l.mu.Unlock()
	if found {
		l.ClearOld()
	}
}

// Add records a new unread notification.
func (l *Log) Add(kind, title, body string) models.Notification {
	now := l.clk.Now()
	n := models.Notification{
		ID:        uuid.NewString(),
		Type:      kind,
		Title:     title,
		Body:      body,
		Timestamp: now,
		Date:      clock.DayKey(now),
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = slices.Insert(l.items, 0, n)
	l.persistLocked()
	return n
}

// MarkRead marks one notification read.
func (l *Log) MarkRead(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(id)
	if i < 0 {
		return false
	}
	l.items[i].Read = true
	l.persistLocked()
	return true
}

// MarkAllRead marks every notification read.
func (l *Log) MarkAllRead() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		l.items[i].Read = true
	}
	l.persistLocked()
}

// Delete removes one notification.
func (l *Log) Delete(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(id)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	l.persistLocked()
	return true
}

// ClearAll empties the log.
func (l *Log) ClearAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
	l.persistLocked()
}

// ClearOld drops notifications older than Retention and returns how many
// were removed.
func (l *Log) ClearOld() int {
	cutoff := l.clk.Now().Add(-Retention)
	l.mu.Lock()
	defer l.mu.Unlock()
	before := len(l.items)
	l.items = slices.DeleteFunc(l.items, func(n models.Notification) bool {
		return !n.Timestamp.After(cutoff)
	})
	removed := before - len(l.items)
	if removed > 0 {
		l.persistLocked()
		l.log.Debug("pruned old notifications", "count", removed)
	}
	return removed
}

// All returns the log in stored order.
func (l *Log) All() []models.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

// Sorted returns the log newest first by timestamp.
func (l *Log) Sorted() []models.Notification {
	out := l.All()
	slices.SortStableFunc(out, func(a, b models.Notification) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

// Today returns notifications dated today.
func (l *Log) Today() []models.Notification {
	today := clock.Today(l.clk)
	return slices.DeleteFunc(l.All(), func(n models.Notification) bool { return n.Date != today })
}

// UnreadCount counts unread notifications.
func (l *Log) UnreadCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, item := range l.items {
		if !item.Read {
			n++
		}
	}
	return n
}

func (l *Log) indexLocked(id string) int {
	return slices.IndexFunc(l.items, func(n models.Notification) bool { return n.ID == id })
}

func (l *Log) persistLocked() {
	items := l.items
	if items == nil {
		items = []models.Notification{}
	}
	store.SaveJSON(l.kv, store.KeyNotifications, items, l.log)
}
