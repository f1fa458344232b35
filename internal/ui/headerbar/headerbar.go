// Package headerbar renders the title bar: application name, the screens
// of a review with the current one highlighted, and the current directory.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunematch/internal/ui/render"
	"github.com/llehouerou/tunematch/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

const appName = "tunematch"

// tab is one screen of a review.
type tab struct {
	name  string
	state string
}

var tabs = []tab{
	{"Browse", "navigation"},
	{"Candidates", "results"},
	{"Tracks", "details"},
}

var (
	activeStyle = lipgloss.NewStyle().
			Foreground(styles.T().Primary).
			Bold(true)

	inactiveStyle = lipgloss.NewStyle().
			Foreground(styles.T().FgMuted)

	separatorStyle = lipgloss.NewStyle().
			Foreground(styles.T().FgSubtle)
)

// Render returns the header bar for the given width. state is the name of
// the current screen ("navigation", "results" or "details").
func Render(state, path string, width int) string {
	if width < 20 {
		return ""
	}

	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.state == state {
			parts = append(parts, activeStyle.Render(t.name))
		} else {
			parts = append(parts, inactiveStyle.Render(t.name))
		}
	}

	left := styles.ApplyBoldGradient(appName, styles.T().Primary, styles.T().Secondary) +
		"  " + strings.Join(parts, separatorStyle.Render(" │ "))

	room := width - lipgloss.Width(left) - 2
	if room < 8 {
		return left
	}
	right := styles.T().S().Muted.Render(truncatePath(path, room))
	return render.Row(left, right, width)
}

// truncatePath keeps the end of path, which names the directory.
func truncatePath(path string, width int) string {
	path = render.Sanitize(path)
	r := []rune(path)
	if lipgloss.Width(path) <= width {
		return path
	}
	for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
		r = r[1:]
	}
	return "…" + string(r)
}
