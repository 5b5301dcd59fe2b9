package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"empty", "", 10, ""},
		{"short string", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world", 8, "hello..."},
		{"very short max", "hello", 3, "hel"},
		{"zero max", "hello", 0, "hello"},
		{"multibyte", "çalışma saati", 8, "çalış..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Truncate(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestPanel(t *testing.T) {
	t.Run("basic panel", func(t *testing.T) {
		result := NewPanel("Title", "Content").Render()

		if !strings.Contains(result, "Title") {
			t.Error("Panel should contain title")
		}
		if !strings.Contains(result, "Content") {
			t.Error("Panel should contain content")
		}
	})

	t.Run("panel without title", func(t *testing.T) {
		result := NewPanel("", "Content only").Render()

		if !strings.Contains(result, "Content only") {
			t.Error("Panel should contain content")
		}
	})

	t.Run("convenience functions", func(t *testing.T) {
		success := RenderSuccessPanel("Rolled over", "2 tasks")
		warning := RenderWarningPanel("Paused", "break")

		if !strings.Contains(success, "Rolled over") {
			t.Error("Success panel should contain title")
		}
		if !strings.Contains(warning, "Paused") {
			t.Error("Warning panel should contain title")
		}
	})
}

func TestRenderPageHeader(t *testing.T) {
	var buf bytes.Buffer
	RenderPageHeader(&buf, "Weekly report", "2025-10-13 to 2025-10-19")

	out := buf.String()
	if !strings.Contains(out, "Weekly report") || !strings.Contains(out, "2025-10-19") {
		t.Errorf("header missing text: %q", out)
	}
}
