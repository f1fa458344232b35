package app

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/llehouerou/tunematch/internal/keymap"
	"github.com/llehouerou/tunematch/internal/review"
	"github.com/llehouerou/tunematch/internal/state"
	"github.com/llehouerou/tunematch/internal/ui/helpbindings"
	"github.com/llehouerou/tunematch/internal/ui/styles"
	"github.com/llehouerou/tunematch/internal/ui/textinput"
)

// NavigationSaver persists the directory being browsed.
type NavigationSaver interface {
	SaveNavigation(state state.NavigationState)
}

// Deps are the collaborators of the TUI.
type Deps struct {
	Scanner  review.Scanner
	Searcher review.Searcher
	Applier  review.Applier
	State    NavigationSaver // optional
	Logger   *zap.Logger     // optional
	MinScore float64
}

// Model is the root application model.
type Model struct {
	session *review.Session

	scanner  review.Scanner
	searcher review.Searcher
	applier  review.Applier
	state    NavigationSaver
	log      *zap.Logger

	keys    *keymap.Resolver
	spinner spinner.Model
	input   textinput.Model
	help    helpbindings.Model

	showHelp bool
	width    int
	height   int

	// Directory entry to select once the pending scan lands.
	reselect string

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates the model browsing startPath. selected, when set, is the
// directory entry to select after the first scan.
func New(deps Deps, startPath, selected string) Model {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := review.New(startPath)
	s.SetMinScore(deps.MinScore)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.T().Primary)

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		session:  s,
		scanner:  deps.Scanner,
		searcher: deps.Searcher,
		applier:  deps.Applier,
		state:    deps.State,
		log:      log,
		keys:     keymap.NewResolver(keymap.Bindings),
		spinner:  sp,
		input:    textinput.New(),
		help:     helpbindings.New(),
		ctx:      ctx,
		cancel:   cancel,
	}
	if selected != "" {
		m.reselect = filepath.Join(startPath, selected)
	}
	return m
}

// Session returns the review session. Used by tests and the view.
func (m Model) Session() *review.Session {
	return m.session
}

// Init implements tea.Model: the start directory is scanned.
func (m Model) Init() tea.Cmd {
	path := m.session.Path()
	if err := m.session.BeginScan(path); err != nil {
		return nil
	}
	return tea.Batch(ScanCmd(m.ctx, m.scanner, path), m.spinner.Tick)
}

// saveNavigation records the current directory and selected entry.
func (m Model) saveNavigation() {
	if m.state == nil {
		return
	}
	nav := state.NavigationState{CurrentPath: m.session.Path()}
	if i, ok := m.session.SelectedDirectory().Index(); ok {
		nav.SelectedName = filepath.Base(m.session.Directories()[i])
	}
	m.state.SaveNavigation(nav)
}
