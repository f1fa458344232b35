package headerbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestRender_TooNarrow(t *testing.T) {
	if got := Render("navigation", "/music", 10); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}

func TestRender_Content(t *testing.T) {
	got := ansi.Strip(Render("results", "/music/Abbey Road", 100))

	for _, want := range []string{"tunematch", "Browse", "Candidates", "Tracks", "/music/Abbey Road"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() = %q, missing %q", got, want)
		}
	}
	if w := lipgloss.Width(got); w != 100 {
		t.Errorf("Render() width = %d, want 100", w)
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		path  string
		width int
		want  string
	}{
		{"/music", 10, "/music"},
		{"/music/The Beatles/Abbey Road", 12, "…/Abbey Road"},
	}
	for _, tt := range tests {
		if got := truncatePath(tt.path, tt.width); got != tt.want {
			t.Errorf("truncatePath(%q, %d) = %q, want %q", tt.path, tt.width, got, tt.want)
		}
	}
}
