package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadJSON_MalformedResets(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Set(KeyTasks, []byte(`{not json`))

	var out []string
	assert.False(t, LoadJSON(s, KeyTasks, &out, nil))
	assert.Nil(t, out)

	assert.False(t, LoadJSON(s, "missing", &out, nil))
}

func TestSaveJSON_RoundTripAndSwallowedFailure(t *testing.T) {
	s := NewMemoryStore()
	SaveJSON(s, KeyLastRollover, "2025-10-15", nil)

	var day string
	assert.True(t, LoadJSON(s, KeyLastRollover, &day, nil))
	assert.Equal(t, "2025-10-15", day)

	s.FailWrites = errors.New("disk full")
	SaveJSON(s, KeyLastRollover, "2025-10-16", nil)
	assert.True(t, LoadJSON(s, KeyLastRollover, &day, nil))
	assert.Equal(t, "2025-10-15", day)
}
