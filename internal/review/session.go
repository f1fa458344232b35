package review

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/llehouerou/tunematch/internal/errmsg"
	"github.com/llehouerou/tunematch/internal/metadata"
)

// Status lines shown by the session.
const (
	StatusWelcome      = "Welcome to tunematch"
	StatusSearching    = "Searching metadata..."
	StatusApplying     = "Applying metadata..."
	StatusApplied      = "Metadata applied successfully"
	StatusNoSelection  = "No metadata selected"
	StatusNoFiles      = "No files to search metadata for"
	StatusNoCandidates = "No metadata found"
)

// Session is the complete mutable state of a review.
//
// Invariants: a set selection is always in range of its list; StateDetails
// implies a selected result; StateNavigation implies no selected result.
type Session struct {
	state State
	focus Focus

	path        string
	directories []string
	files       []metadata.MetadataItem

	candidates []metadata.ProviderResult // Everything the last search returned
	results    []metadata.ProviderResult // candidates, after the score filter

	selectedDirectory Selection
	selectedFile      Selection
	selectedResult    Selection

	detailsScroll int
	status        string

	busy     Call
	busyPath string

	minScore float64
	filtered bool
}

// New returns a session browsing path, in navigation with the directory
// pane focused and nothing selected.
func New(path string) *Session {
	return &Session{
		state:  StateNavigation,
		focus:  FocusDirectory,
		path:   path,
		status: StatusWelcome,
	}
}

// SetMinScore sets the threshold used by the score filter.
func (s *Session) SetMinScore(v float64) {
	s.minScore = v
	if s.filtered {
		s.refilter()
	}
}

func (s *Session) State() State                          { return s.state }
func (s *Session) Focus() Focus                          { return s.focus }
func (s *Session) Path() string                          { return s.path }
func (s *Session) Directories() []string                 { return s.directories }
func (s *Session) Files() []metadata.MetadataItem        { return s.files }
func (s *Session) Results() []metadata.ProviderResult    { return s.results }
func (s *Session) Candidates() []metadata.ProviderResult { return s.candidates }
func (s *Session) SelectedDirectory() Selection          { return s.selectedDirectory }
func (s *Session) SelectedFile() Selection               { return s.selectedFile }
func (s *Session) SelectedResult() Selection             { return s.selectedResult }
func (s *Session) DetailsScroll() int                    { return s.detailsScroll }
func (s *Session) Status() string                        { return s.status }
func (s *Session) Busy() Call                            { return s.busy }
func (s *Session) Filtered() bool                        { return s.filtered }
func (s *Session) MinScore() float64                     { return s.minScore }

// SetStatus replaces the status line.
func (s *Session) SetStatus(msg string) {
	s.status = msg
}

// Selected returns the selected result.
func (s *Session) Selected() (metadata.ProviderResult, bool) {
	i, ok := s.selectedResult.Index()
	if !ok {
		return metadata.ProviderResult{}, false
	}
	return s.results[i], true
}

// Next moves down the active list. In navigation that is the focused pane;
// in results it is the result list; in details it scrolls the track listing.
func (s *Session) Next() {
	switch s.state {
	case StateNavigation:
		s.moveFocused(true)
	case StateResults:
		s.selectedResult.Next(len(s.results))
	case StateDetails:
		if r, ok := s.Selected(); ok && s.detailsScroll < len(r.Tracks)-1 {
			s.detailsScroll++
		}
	}
}

// Previous moves up the active list. See Next.
func (s *Session) Previous() {
	switch s.state {
	case StateNavigation:
		s.moveFocused(false)
	case StateResults:
		s.selectedResult.Previous(len(s.results))
	case StateDetails:
		if s.detailsScroll > 0 {
			s.detailsScroll--
		}
	}
}

func (s *Session) moveFocused(down bool) {
	var sel *Selection
	var n int
	switch s.focus {
	case FocusDirectory:
		sel, n = &s.selectedDirectory, len(s.directories)
	case FocusFiles:
		sel, n = &s.selectedFile, len(s.files)
	default:
		// No result is selected while navigating.
		return
	}
	if down {
		sel.Next(n)
	} else {
		sel.Previous(n)
	}
}

// CycleFocus moves the focus to the next pane. Only in navigation.
func (s *Session) CycleFocus() {
	if s.state != StateNavigation {
		return
	}
	s.focus = s.focus.next()
}

// BeginScan records that path is being scanned and makes it the current
// directory. Moving to another directory drops its results and returns to
// navigation.
func (s *Session) BeginScan(path string) error {
	if s.busy != CallNone {
		return ErrBusy
	}
	if path != s.path {
		s.clearResults()
		s.path = path
		s.state = StateNavigation
		s.detailsScroll = 0
	}
	s.begin(CallScan, fmt.Sprintf("Scanning %s...", path))
	return nil
}

// FinishScan records the outcome of a scan of path.
//
// On failure the state is kept, both lists are emptied and the status shows
// the error. A scan for a directory other than the current one is dropped
// with ErrStale.
func (s *Session) FinishScan(path string, listing metadata.Listing, err error) error {
	if !s.finish(CallScan, path) {
		return ErrStale
	}

	s.selectedDirectory.Clear()
	s.selectedFile.Clear()

	if err != nil {
		s.directories = nil
		s.files = nil
		s.status = errmsg.Format(errmsg.OpScan, err)
		return &ScanError{Path: path, Err: err}
	}

	s.directories = listing.Directories
	s.files = listing.Files
	s.status = fmt.Sprintf("Found %d files in %s", len(s.files), path)
	return nil
}

// SelectDirectory starts a scan of the selected directory and returns it.
// Only in navigation with the directory pane focused.
func (s *Session) SelectDirectory() (string, error) {
	if s.state != StateNavigation || s.focus != FocusDirectory {
		return "", ErrUnavailable
	}
	i, ok := s.selectedDirectory.Index()
	if !ok {
		return "", ErrEmptySelection
	}
	dir := s.directories[i]
	if err := s.BeginScan(dir); err != nil {
		return "", err
	}
	return dir, nil
}

// ShowDirectory selects the directory entry equal to path, as when coming
// back from a subdirectory. It reports whether the entry exists.
func (s *Session) ShowDirectory(path string) bool {
	for i, d := range s.directories {
		if d == path {
			return s.selectedDirectory.Select(i, len(s.directories))
		}
	}
	return false
}

// Parent starts a scan of the parent of the current directory and returns
// it. Only in navigation.
func (s *Session) Parent() (string, error) {
	if s.state != StateNavigation {
		return "", ErrUnavailable
	}
	parent := filepath.Dir(s.path)
	if parent == s.path {
		return "", ErrUnavailable
	}
	if err := s.BeginScan(parent); err != nil {
		return "", err
	}
	return parent, nil
}

// BeginSearch records that candidates are being looked up for the current
// directory. Only in navigation, and only when it holds audio files.
func (s *Session) BeginSearch() error {
	if s.state != StateNavigation {
		return ErrUnavailable
	}
	if s.busy != CallNone {
		return ErrBusy
	}
	if len(s.files) == 0 {
		s.status = StatusNoFiles
		return ErrNoFiles
	}
	s.begin(CallSearch, StatusSearching)
	return nil
}

// FinishSearch records the outcome of a search for path.
//
// On success the session moves to results with no result selected, whatever
// the number of candidates. On failure the state is kept and the results
// are emptied.
func (s *Session) FinishSearch(path string, results []metadata.ProviderResult, err error) error {
	if !s.finish(CallSearch, path) {
		return ErrStale
	}

	if err != nil {
		s.clearResults()
		s.status = errmsg.Format(errmsg.OpSearch, err)
		return &SearchError{Path: path, Err: err}
	}

	s.candidates = results
	s.refilter()
	s.state = StateResults

	switch {
	case len(s.candidates) == 0:
		s.status = StatusNoCandidates
	case len(s.results) < len(s.candidates):
		s.status = fmt.Sprintf("Found %d candidates (%d below %.2f hidden)",
			len(s.candidates), len(s.candidates)-len(s.results), s.minScore)
	default:
		s.status = fmt.Sprintf("Found %d candidates", len(s.candidates))
	}
	return nil
}

// Enter opens the selected result's details. Only in results.
func (s *Session) Enter() error {
	if s.state != StateResults {
		return ErrUnavailable
	}
	if !s.selectedResult.IsSet() {
		return ErrEmptySelection
	}
	s.state = StateDetails
	s.detailsScroll = 0
	return nil
}

// Back leaves details for results, keeping the selection, or results for
// navigation, clearing it. It does nothing in navigation.
func (s *Session) Back() {
	switch s.state {
	case StateDetails:
		s.state = StateResults
	case StateResults:
		s.state = StateNavigation
		s.selectedResult.Clear()
	}
}

// BeginApply returns the selected result and records that it is being
// written to the current files. Only in results and details.
//
// Without a selection the status says so and ErrEmptySelection is returned.
func (s *Session) BeginApply() (metadata.ProviderResult, error) {
	if s.state != StateResults && s.state != StateDetails {
		return metadata.ProviderResult{}, ErrUnavailable
	}
	if s.busy != CallNone {
		return metadata.ProviderResult{}, ErrBusy
	}
	r, ok := s.Selected()
	if !ok {
		s.status = StatusNoSelection
		return metadata.ProviderResult{}, ErrEmptySelection
	}
	s.begin(CallApply, StatusApplying)
	return r, nil
}

// FinishApply records the outcome of an apply to path. The state never
// changes.
func (s *Session) FinishApply(path string, err error) error {
	if !s.finish(CallApply, path) {
		return ErrStale
	}
	if err != nil {
		s.status = errmsg.Format(errmsg.OpApply, err)
		return &ApplyError{Path: path, Err: err}
	}
	s.status = StatusApplied
	return nil
}

// ToggleFilter hides or shows results scoring below the minimum score.
// Only in results; the selection is reset.
func (s *Session) ToggleFilter() {
	if s.state != StateResults {
		return
	}
	s.filtered = !s.filtered
	s.refilter()
	s.selectedResult.Clear()
	if s.filtered {
		s.status = fmt.Sprintf("Showing %d of %d candidates scoring %.2f or more",
			len(s.results), len(s.candidates), s.minScore)
	} else {
		s.status = fmt.Sprintf("Showing all %d candidates", len(s.candidates))
	}
}

func (s *Session) begin(c Call, status string) {
	s.busy = c
	s.busyPath = s.path
	s.status = status
}

// finish clears the in-flight call if it matches c for path. It reports
// whether the outcome belongs to the current directory.
func (s *Session) finish(c Call, path string) bool {
	if s.busy != c || s.busyPath != path {
		return false
	}
	s.busy = CallNone
	s.busyPath = ""
	return path == s.path
}

func (s *Session) refilter() {
	if !s.filtered {
		s.results = s.candidates
	} else {
		s.results = make([]metadata.ProviderResult, 0, len(s.candidates))
		for _, r := range s.candidates {
			if r.Score >= s.minScore {
				s.results = append(s.results, r)
			}
		}
	}
	s.selectedResult.Clamp(len(s.results))
}

func (s *Session) clearResults() {
	s.candidates = nil
	s.results = nil
	s.selectedResult.Clear()
}

// IsBenign reports whether err is a refusal the user caused, as opposed to
// a collaborator failure.
func IsBenign(err error) bool {
	return errors.Is(err, ErrEmptySelection) ||
		errors.Is(err, ErrBusy) ||
		errors.Is(err, ErrNoFiles) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrStale)
}
