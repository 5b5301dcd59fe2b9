package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd(t *testing.T) {
	b := bytes.NewBufferString("")
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	defer resetCLI()

	rootCmd.SetArgs([]string{"--help"})

	err := rootCmd.Execute()
	assert.NoError(t, err)

	output := b.String()
	assert.Contains(t, output, "dayplan plans your day")
	assert.Contains(t, rootCmd.Short, "daily planner")
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "Commands:")
	for _, name := range []string{"add", "track", "pomodoro", "rollover", "stats", "notifications", "settings", "backup", "run"} {
		assert.Contains(t, output, name)
	}
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "0.1.0", GetVersion())
}
