package ui

import (
	"fmt"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer = message.NewPrinter(language.English)
	titler  = cases.Title(language.English)
)

// FormatMinutes renders a minute count as "1h 5m" or "45m".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if h := minutes / 60; h > 0 {
		return fmt.Sprintf("%dh %dm", h, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatPercentage rounds value to a whole percent.
func FormatPercentage(value float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(value)))
}

// FormatNumber groups thousands: 12345 becomes "12,345".
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatHour renders an hour of day as "09:00".
func FormatHour(h int) string {
	if h < 0 {
		return "-"
	}
	return fmt.Sprintf("%02d:00", h)
}

// FormatClock renders seconds as "MM:SS".
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Title title-cases a label such as a category or trend.
func Title(s string) string {
	return titler.String(s)
}
