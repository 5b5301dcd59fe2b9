package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "1h 0m", FormatMinutes(60))
	assert.Equal(t, "1h 5m", FormatMinutes(65))
	assert.Equal(t, "25h 1m", FormatMinutes(1501))
	assert.Equal(t, "0m", FormatMinutes(-3))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "83%", FormatPercentage(83.3))
	assert.Equal(t, "84%", FormatPercentage(83.5))
	assert.Equal(t, "0%", FormatPercentage(0))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "12,345", FormatNumber(12345))
}

func TestFormatHourAndClock(t *testing.T) {
	assert.Equal(t, "09:00", FormatHour(9))
	assert.Equal(t, "-", FormatHour(-1))
	assert.Equal(t, "25:00", FormatClock(1500))
	assert.Equal(t, "04:05", FormatClock(245))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Learning", Title("learning"))
	assert.Equal(t, "Improving", Title("improving"))
}
