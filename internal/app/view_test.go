package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestView_ZeroSize(t *testing.T) {
	m := New(Deps{}, "/music", "")
	assert.Empty(t, m.View())
}

func TestView_TooSmall(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 20, Height: 5})
	assert.Contains(t, ansi.Strip(h.m.View()), "Terminal too small")
}

func TestView_Navigation(t *testing.T) {
	h := newHarness(t)
	view := ansi.Strip(h.m.View())

	for _, want := range []string{"tunematch", "Directories", "a/", "b/", "Files", "Come Together", "Candidates", "Found 2 files", "? help"} {
		assert.Contains(t, view, want)
	}
	assert.Equal(t, 30, lipgloss.Height(h.m.View()))
}

func TestView_Results(t *testing.T) {
	h := newHarness(t)
	h.press("s", "j")
	view := ansi.Strip(h.m.View())

	for _, want := range []string{"Score", "musicbrainz", "deezer", "92%", "Preview", "mb-1", "2 tracks"} {
		assert.Contains(t, view, want)
	}
}

func TestView_ResultsWithoutSelection(t *testing.T) {
	h := newHarness(t)
	h.press("s")
	assert.Contains(t, ansi.Strip(h.m.View()), "Select a candidate")
}

func TestView_Details(t *testing.T) {
	h := newHarness(t)
	h.press("s", "j", "enter")
	view := ansi.Strip(h.m.View())

	for _, want := range []string{"The Beatles - Abbey Road", "Local file", "Match", "Come Together", "Something", "Somethin", "100%"} {
		assert.Contains(t, view, want)
	}
}

func TestView_BusyShowsProgress(t *testing.T) {
	h := newHarness(t)
	h.send(keyMsg("s"))

	view := ansi.Strip(h.m.View())
	assert.Contains(t, view, "Searching metadata...")
}

func TestView_LinesFitWidth(t *testing.T) {
	h := newHarness(t)
	h.press("s", "j")

	for i, line := range strings.Split(h.m.View(), "\n") {
		if w := lipgloss.Width(line); w > 120 {
			t.Errorf("line %d is %d wide, want <= 120", i, w)
		}
	}
}

func TestView_NarrowStacksPreview(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 80, Height: 30})
	h.press("s", "j")

	view := h.m.View()
	assert.Equal(t, 30, lipgloss.Height(view))
	assert.LessOrEqual(t, lipgloss.Width(view), 80)

	lines := strings.Split(ansi.Strip(view), "\n")
	var scoreRow, previewRow int
	for i, line := range lines {
		if strings.Contains(line, "Score") && scoreRow == 0 {
			scoreRow = i
		}
		if strings.Contains(line, "Preview") {
			previewRow = i
		}
	}
	assert.Greater(t, previewRow, scoreRow, "preview is below the table")
}

func TestView_StatusHintsFollowState(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, ansi.Strip(h.m.View()), "s search · / query · ? help")

	h.press("s", "j")
	assert.Contains(t, ansi.Strip(h.m.View()), "enter tracks · a apply · f filter · ? help")

	h.press("enter")
	assert.Contains(t, ansi.Strip(h.m.View()), "a apply · esc back · ? help")
}
