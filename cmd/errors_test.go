package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	original := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = original }()

	fn()

	_ = w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return strings.TrimSpace(buf.String())
}

func TestFriendlyMessage(t *testing.T) {
	assert.Equal(t, "Cancelled.", friendlyMessage(promptui.ErrInterrupt))
	assert.Contains(t, friendlyMessage(ErrNoTaskID), "dayplan list")
	assert.Equal(t, "Error: task not found: abc", friendlyMessage(fmt.Errorf("%w: abc", ErrTaskNotFound)))
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		verbose bool
		want    string
	}{
		{name: "quiet without cause", err: nil, want: "Could not save task"},
		{name: "quiet hides cause", err: errors.New("disk full"), want: "Could not save task"},
		{name: "verbose shows cause", err: errors.New("disk full"), verbose: true, want: "Error: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Set("verbose", tt.verbose)
			defer viper.Set("verbose", false)

			out := captureStderr(t, func() { PrintError("Could not save task", tt.err) })
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestLogError(t *testing.T) {
	viper.Set("verbose", false)
	assert.Empty(t, captureStderr(t, func() { LogError("rollover", errors.New("boom")) }))

	viper.Set("verbose", true)
	defer viper.Set("verbose", false)
	assert.Equal(t, "[DEBUG] rollover: boom", captureStderr(t, func() { LogError("rollover", errors.New("boom")) }))
	assert.Equal(t, "[DEBUG] rollover", captureStderr(t, func() { LogError("rollover", nil) }))
}
