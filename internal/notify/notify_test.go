package notify

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/models"
	"github.com/josephgoksu/dayplan/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_Operations(t *testing.T) {
	clk := clock.Fake(time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local))
	l := NewLog(store.NewMemoryStore(), clk, nil)

	first := l.Add(models.NotifyInfo, "First", "one")
	clk.Advance(time.Minute)
	second := l.Add(models.NotifyPomodoro, "Second", "two")

	all := l.All()
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")
	assert.Equal(t, "2025-10-15", all[0].Date)
	assert.Equal(t, 2, l.UnreadCount())

	assert.True(t, l.MarkRead(first.ID))
	assert.False(t, l.MarkRead("missing"))
	assert.Equal(t, 1, l.UnreadCount())

	l.MarkAllRead()
	assert.Equal(t, 0, l.UnreadCount())

	assert.True(t, l.Delete(first.ID))
	assert.False(t, l.Delete(first.ID))
	assert.Len(t, l.All(), 1)

	l.ClearAll()
	assert.Empty(t, l.All())
}

func TestLog_RetentionOnLoad(t *testing.T) {
	clk := clock.Fake(time.Date(2025, 10, 10, 9, 0, 0, 0, time.Local))
	kv := store.NewMemoryStore()
	l := NewLog(kv, clk, nil)
	l.Add(models.NotifyInfo, "old", "")
	clk.Advance(48 * time.Hour)
	l.Add(models.NotifyInfo, "recent", "")
	clk.Advance(25 * time.Hour)

	reloaded := NewLog(kv, clk, nil)
	items := reloaded.All()
	require.Len(t, items, 1)
	assert.Equal(t, "recent", items[0].Title)
	assert.Empty(t, reloaded.Today())
}

// countingStore counts writes so tests can tell a read-only load apart.
type countingStore struct {
	*store.MemoryStore
	sets int
}

func (c *countingStore) Set(key string, value []byte) error {
	c.sets++
	return c.MemoryStore.Set(key, value)
}

func TestLog_LoadWritesOnlyWhenPruning(t *testing.T) {
	clk := clock.Fake(time.Date(2025, 10, 10, 9, 0, 0, 0, time.Local))
	kv := &countingStore{MemoryStore: store.NewMemoryStore()}
	NewLog(kv, clk, nil).Add(models.NotifyInfo, "fresh", "")
	kv.sets = 0

	NewLog(kv, clk, nil)
	assert.Equal(t, 0, kv.sets, "nothing expired, nothing written")

	clk.Advance(Retention + time.Minute)
	reloaded := NewLog(kv, clk, nil)
	assert.Empty(t, reloaded.All())
	assert.Equal(t, 1, kv.sets)
}

func TestLog_SortedAndToday(t *testing.T) {
	clk := clock.Fake(time.Date(2025, 10, 15, 23, 50, 0, 0, time.Local))
	l := NewLog(store.NewMemoryStore(), clk, nil)
	l.Add(models.NotifyInfo, "yesterday", "")
	clk.Advance(20 * time.Minute)
	l.Add(models.NotifyInfo, "today", "")

	sorted := l.Sorted()
	assert.Equal(t, "today", sorted[0].Title)
	today := l.Today()
	require.Len(t, today, 1)
	assert.Equal(t, "today", today[0].Title)
}

type failingDeliverer struct{ calls int }

func (f *failingDeliverer) Deliver(string, string, Options) error {
	f.calls++
	return errors.New("no display")
}

func TestCenter_DeliveryFailureIsSwallowed(t *testing.T) {
	l := NewLog(store.NewMemoryStore(), clock.Fake(time.Now()), nil)
	d := &failingDeliverer{}
	c := NewCenter(l, d, nil, nil)

	n := c.Notify(models.NotifyRollover, "Schedule Planner", "Daily tasks have been rolled over!")
	assert.Equal(t, 1, d.calls)
	assert.Equal(t, n.ID, l.All()[0].ID)
}

func TestTerminal_SoundAndChime(t *testing.T) {
	var buf bytes.Buffer
	sound := false
	c := NewCenter(NewLog(store.NewMemoryStore(), clock.Fake(time.Now()), nil), NewTerminal(&buf), func() bool { return sound }, nil)

	c.Notify(models.NotifyTaskComplete, "Done", "Task finished")
	c.Chime()
	out := buf.String()
	assert.Contains(t, out, "Done")
	assert.Contains(t, out, "Task finished")
	assert.NotContains(t, out, Bell)

	buf.Reset()
	sound = true
	c.Notify(models.NotifyBreak, "Break", "")
	c.Chime()
	assert.Equal(t, 2, strings.Count(buf.String(), Bell))
}
