package app

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/tunematch/internal/keymap"
	"github.com/llehouerou/tunematch/internal/match"
	"github.com/llehouerou/tunematch/internal/review"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.session.Busy() == review.CallNone {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ScanResultMsg:
		return m.handleScanResult(msg)

	case SearchResultMsg:
		return m.handleSearchResult(msg)

	case ApplyResultMsg:
		return m.handleApplyResult(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.input.Active() {
		_, _, cmd := m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleScanResult(msg ScanResultMsg) (tea.Model, tea.Cmd) {
	err := m.session.FinishScan(msg.Path, msg.Listing, msg.Err)
	switch {
	case errors.Is(err, review.ErrStale):
		m.log.Debug("discarded stale scan", zap.String("path", msg.Path))
		return m, nil
	case err != nil:
		m.log.Warn("scan failed", zap.String("path", msg.Path), zap.Error(msg.Err))
		m.reselect = ""
		return m, nil
	}

	if m.reselect != "" {
		m.session.ShowDirectory(m.reselect)
		m.reselect = ""
	}
	if msg.KeepStatus != "" {
		m.session.SetStatus(msg.KeepStatus)
	}
	m.saveNavigation()
	return m, nil
}

func (m Model) handleSearchResult(msg SearchResultMsg) (tea.Model, tea.Cmd) {
	err := m.session.FinishSearch(msg.Path, msg.Results, msg.Err)
	switch {
	case errors.Is(err, review.ErrStale):
		m.log.Debug("discarded stale search", zap.String("path", msg.Path))
	case err != nil:
		m.log.Warn("search failed", zap.String("path", msg.Path), zap.Error(msg.Err))
	default:
		m.log.Info("search finished",
			zap.String("path", msg.Path),
			zap.Int("candidates", len(msg.Results)))
	}
	return m, nil
}

func (m Model) handleApplyResult(msg ApplyResultMsg) (tea.Model, tea.Cmd) {
	err := m.session.FinishApply(msg.Path, msg.Err)
	switch {
	case errors.Is(err, review.ErrStale):
		m.log.Debug("discarded stale apply", zap.String("path", msg.Path))
		return m, nil
	case err != nil:
		m.log.Warn("apply failed", zap.String("path", msg.Path), zap.Error(msg.Err))
		return m, nil
	}

	// Tags changed on disk: reload them, keeping the success message.
	status := m.session.Status()
	if err := m.session.BeginScan(msg.Path); err != nil {
		return m, nil
	}
	return m, tea.Batch(RescanCmd(m.ctx, m.scanner, msg.Path, status), m.spinner.Tick)
}

// handler tries to handle an action; handled is false when it does not
// apply.
type handler func(keymap.Action) (handled bool, cmd tea.Cmd)

// chain runs handlers in order until one handles the action.
func chain(a keymap.Action, handlers ...handler) tea.Cmd {
	for _, h := range handlers {
		if ok, cmd := h(a); ok {
			return cmd
		}
	}
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.showHelp {
		if m.help.Update(msg) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.input.Active() {
		res, done, cmd := m.input.Update(msg)
		if !done {
			return m, cmd
		}
		if res.Canceled || res.Text == "" {
			return m, nil
		}
		return m, m.manualSearch(res.Text)
	}

	action := m.keys.Resolve(msg.String())
	if action == "" {
		return m, nil
	}
	if action == keymap.ActionQuit {
		return m.quit()
	}

	cmd := chain(action, m.handleGlobal, m.handleMovement, m.handleReview)
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	m.saveNavigation()
	return m, tea.Quit
}

func (m *Model) handleGlobal(a keymap.Action) (bool, tea.Cmd) {
	switch a {
	case keymap.ActionHelp:
		m.showHelp = true
		m.help.SetContexts([]string{keymap.ContextGlobal, stateContext(m.session.State())})
		return true, nil
	case keymap.ActionRefresh:
		return true, m.scan(m.session.Path())
	}
	return false, nil
}

func (m *Model) handleMovement(a keymap.Action) (bool, tea.Cmd) {
	switch a {
	case keymap.ActionMoveDown:
		m.session.Next()
	case keymap.ActionMoveUp:
		m.session.Previous()
	case keymap.ActionSwitchFocus:
		m.session.CycleFocus()
		return true, nil
	default:
		return false, nil
	}
	if m.session.State() == review.StateNavigation && m.session.Focus() == review.FocusDirectory {
		m.saveNavigation()
	}
	return true, nil
}

func (m *Model) handleReview(a keymap.Action) (bool, tea.Cmd) {
	s := m.session
	switch a {
	case keymap.ActionSelect:
		if s.State() == review.StateResults {
			m.report(s.Enter())
			return true, nil
		}
		path, err := s.SelectDirectory()
		if err != nil {
			m.report(err)
			return true, nil
		}
		return true, m.scanStarted(path)

	case keymap.ActionParent:
		from := s.Path()
		path, err := s.Parent()
		if err != nil {
			m.report(err)
			return true, nil
		}
		m.reselect = from
		return true, m.scanStarted(path)

	case keymap.ActionBack:
		s.Back()
		return true, nil

	case keymap.ActionSearch:
		if err := s.BeginSearch(); err != nil {
			m.report(err)
			return true, nil
		}
		return true, tea.Batch(SearchCmd(m.ctx, m.searcher, s.Path(), s.Files()), m.spinner.Tick)

	case keymap.ActionManualSearch:
		if s.State() != review.StateNavigation {
			return true, nil
		}
		return true, m.input.Start("Search:", m.manualQuery(), m.width)

	case keymap.ActionApply:
		r, err := s.BeginApply()
		if err != nil {
			m.report(err)
			return true, nil
		}
		return true, tea.Batch(ApplyCmd(m.ctx, m.applier, s.Path(), r, s.Files()), m.spinner.Tick)

	case keymap.ActionToggleFilter:
		s.ToggleFilter()
		return true, nil
	}
	return false, nil
}

// scan starts a scan of path, refusing while another call is in flight.
func (m *Model) scan(path string) tea.Cmd {
	if err := m.session.BeginScan(path); err != nil {
		m.report(err)
		return nil
	}
	return m.scanStarted(path)
}

func (m *Model) scanStarted(path string) tea.Cmd {
	return tea.Batch(ScanCmd(m.ctx, m.scanner, path), m.spinner.Tick)
}

func (m *Model) manualSearch(input string) tea.Cmd {
	s := m.session
	if err := s.BeginSearch(); err != nil {
		m.report(err)
		return nil
	}
	return tea.Batch(ManualSearchCmd(m.ctx, m.searcher, s.Path(), input, s.Files()), m.spinner.Tick)
}

// manualQuery prefills the prompt from the scanned tags.
func (m Model) manualQuery() string {
	files := m.session.Files()
	if len(files) == 0 {
		return ""
	}
	if len(files) == 1 {
		return joinQuery(files[0].Artist, files[0].Title)
	}
	album, artist := match.Consensus(files)
	return joinQuery(artist, album)
}

func joinQuery(artist, title string) string {
	switch {
	case artist == "":
		return title
	case title == "":
		return artist
	}
	return artist + " - " + title
}

// report surfaces a refused action. Busy refusals are shown since the
// session keeps its in-progress status otherwise.
func (m *Model) report(err error) {
	if err == nil {
		return
	}
	m.log.Debug("action refused", zap.Error(err))
	if errors.Is(err, review.ErrBusy) {
		m.session.SetStatus("Please wait: " + err.Error())
	}
}

func stateContext(s review.State) string {
	switch s {
	case review.StateResults:
		return keymap.ContextResults
	case review.StateDetails:
		return keymap.ContextDetails
	}
	return keymap.ContextNavigation
}
