package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/dayplan/models"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestStyles(t *testing.T) {
	// Force color profile for testing
	lipgloss.SetColorProfile(termenv.ANSI256)

	out := StyleSuccess.Render("Test")
	assert.Contains(t, out, "Test")
	assert.NotEqual(t, "Test", out, "Style should add ANSI codes when forced")
}

func TestIcon(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	out := Icon("X", StyleError)
	assert.Contains(t, out, "X")
	assert.NotEqual(t, "X", out)
}

func TestStatusIcon(t *testing.T) {
	assert.Contains(t, StatusIcon(models.StatusCompleted), "✓")
	assert.Contains(t, StatusIcon(models.StatusInProgress), "▶")
	assert.Contains(t, StatusIcon(models.StatusSkipped), "⤼")
	assert.Contains(t, StatusIcon(models.StatusPending), "○")
}

func TestScoreStyle(t *testing.T) {
	assert.Equal(t, StyleSuccess.GetForeground(), ScoreStyle(80).GetForeground())
	assert.Equal(t, StyleWarning.GetForeground(), ScoreStyle(79).GetForeground())
	assert.Equal(t, StyleWarning.GetForeground(), ScoreStyle(50).GetForeground())
	assert.Equal(t, StyleError.GetForeground(), ScoreStyle(49).GetForeground())
}
