// Package textinput provides the one-line prompt used for free-form
// metadata queries.
package textinput

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunematch/internal/ui/styles"
)

const charLimit = 200

// Result is the outcome of a prompt.
type Result struct {
	Text     string
	Canceled bool // True if user pressed Escape
}

// Model is a text prompt with a title.
type Model struct {
	input  textinput.Model
	title  string
	active bool
}

// New creates an inactive prompt.
func New() Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "artist - title"
	ti.CharLimit = charLimit
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.T().Primary)
	ti.TextStyle = styles.T().S().Base
	ti.PlaceholderStyle = styles.T().S().Subtle
	return Model{input: ti}
}

// Start activates the prompt with a title and initial text.
func (m *Model) Start(title, initialText string, width int) tea.Cmd {
	m.title = title
	m.active = true
	m.input.SetValue(initialText)
	m.input.CursorEnd()
	m.input.Width = max(width-lipgloss.Width(title)-6, 10)
	return m.input.Focus()
}

// Active reports whether the prompt is shown.
func (m Model) Active() bool {
	return m.active
}

// Update handles a key. done is true when the prompt was confirmed or
// canceled; the prompt is then inactive.
func (m *Model) Update(msg tea.Msg) (res Result, done bool, cmd tea.Cmd) {
	if !m.active {
		return Result{}, false, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEsc:
			m.stop()
			return Result{Canceled: true}, true, nil
		case tea.KeyEnter:
			text := m.input.Value()
			m.stop()
			return Result{Text: text}, true, nil
		}
	}
	m.input, cmd = m.input.Update(msg)
	return Result{}, false, cmd
}

func (m *Model) stop() {
	m.active = false
	m.input.Blur()
	m.input.Reset()
}

// View renders the prompt on one line.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.T().Primary).Render(m.title)
	hint := styles.T().S().Subtle.Render("  enter search · esc cancel")
	return title + " " + m.input.View() + hint
}
