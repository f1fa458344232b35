package review

import (
	"errors"
	"strings"
	"testing"

	"github.com/llehouerou/tunematch/internal/metadata"
)

func listing() metadata.Listing {
	return metadata.Listing{
		Directories: []string{"/music/a", "/music/b", "/music/c"},
		Files: []metadata.MetadataItem{
			{Path: "/music/01.mp3", Title: "Intro", Track: "1"},
			{Path: "/music/02.mp3", Title: "Song", Track: "2"},
		},
	}
}

// scanned returns a session that finished scanning /music.
func scanned(t *testing.T) *Session {
	t.Helper()
	s := New("/music")
	if err := s.BeginScan("/music"); err != nil {
		t.Fatalf("BeginScan: %v", err)
	}
	if err := s.FinishScan("/music", listing(), nil); err != nil {
		t.Fatalf("FinishScan: %v", err)
	}
	return s
}

// searched returns a session in results with the given candidates.
func searched(t *testing.T, results ...metadata.ProviderResult) *Session {
	t.Helper()
	s := scanned(t)
	if err := s.BeginSearch(); err != nil {
		t.Fatalf("BeginSearch: %v", err)
	}
	if err := s.FinishSearch("/music", results, nil); err != nil {
		t.Fatalf("FinishSearch: %v", err)
	}
	return s
}

func TestNew(t *testing.T) {
	s := New("/music")

	if s.State() != StateNavigation {
		t.Errorf("state = %v, want navigation", s.State())
	}
	if s.Focus() != FocusDirectory {
		t.Errorf("focus = %v, want directories", s.Focus())
	}
	if s.SelectedDirectory().IsSet() || s.SelectedFile().IsSet() || s.SelectedResult().IsSet() {
		t.Error("new session should have no selection")
	}
	if s.Busy() != CallNone {
		t.Errorf("busy = %v, want none", s.Busy())
	}
}

func TestCycleFocus(t *testing.T) {
	s := New("/music")
	want := []Focus{FocusFiles, FocusResults, FocusDirectory, FocusFiles}
	for i, w := range want {
		s.CycleFocus()
		if s.Focus() != w {
			t.Errorf("cycle %d: focus = %v, want %v", i+1, s.Focus(), w)
		}
	}
}

func TestCycleFocus_OnlyInNavigation(t *testing.T) {
	s := searched(t, metadata.ProviderResult{Title: "A"})
	s.CycleFocus()
	if s.Focus() != FocusDirectory {
		t.Errorf("focus changed in results: %v", s.Focus())
	}
}

func TestNext_FollowsFocus(t *testing.T) {
	s := scanned(t)

	s.Next()
	if !s.SelectedDirectory().Is(0) {
		t.Errorf("directory selection = %v, want 0", s.SelectedDirectory())
	}
	if s.SelectedFile().IsSet() {
		t.Error("file selection moved while directories focused")
	}

	s.CycleFocus()
	s.Previous()
	if !s.SelectedFile().Is(0) {
		t.Errorf("file selection = %v, want 0", s.SelectedFile())
	}
	s.Previous()
	if !s.SelectedFile().Is(1) {
		t.Errorf("file selection after wrap = %v, want 1", s.SelectedFile())
	}
}

func TestNext_ResultsPaneInNavigationSelectsNothing(t *testing.T) {
	s := searched(t, metadata.ProviderResult{Title: "A"})
	s.Back()
	s.CycleFocus()
	s.CycleFocus()
	if s.Focus() != FocusResults {
		t.Fatalf("focus = %v", s.Focus())
	}

	s.Next()
	s.Previous()
	if s.SelectedResult().IsSet() {
		t.Error("navigation must not select a result")
	}
}

func TestNext_EmptyListsAreNoOps(t *testing.T) {
	s := New("/empty")
	if err := s.BeginScan("/empty"); err != nil {
		t.Fatal(err)
	}
	if err := s.FinishScan("/empty", metadata.Listing{}, nil); err != nil {
		t.Fatal(err)
	}

	for range 3 {
		s.Next()
		s.Previous()
		s.CycleFocus()
	}
	if s.SelectedDirectory().IsSet() || s.SelectedFile().IsSet() || s.SelectedResult().IsSet() {
		t.Error("selection set on empty lists")
	}
}

func TestFinishScan_Success(t *testing.T) {
	s := scanned(t)

	if len(s.Directories()) != 3 || len(s.Files()) != 2 {
		t.Fatalf("lists = %d dirs, %d files", len(s.Directories()), len(s.Files()))
	}
	if s.Busy() != CallNone {
		t.Errorf("busy = %v after scan", s.Busy())
	}
	if s.Status() != "Found 2 files in /music" {
		t.Errorf("status = %q", s.Status())
	}
}

func TestFinishScan_FailureKeepsStateAndEmptiesLists(t *testing.T) {
	s := scanned(t)
	s.Next()

	ioErr := errors.New("open /music: permission denied")
	if err := s.BeginScan("/music"); err != nil {
		t.Fatal(err)
	}
	err := s.FinishScan("/music", metadata.Listing{}, ioErr)

	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("err = %v, want *ScanError", err)
	}
	if !errors.Is(err, ioErr) {
		t.Error("ScanError should unwrap to the I/O error")
	}
	if s.State() != StateNavigation {
		t.Errorf("state = %v, want navigation", s.State())
	}
	if len(s.Directories()) != 0 || len(s.Files()) != 0 {
		t.Error("lists should be empty after a failed scan")
	}
	if s.SelectedDirectory().IsSet() {
		t.Error("directory selection should be cleared")
	}
	if !strings.Contains(s.Status(), "open /music: permission denied") {
		t.Errorf("status %q should carry the error verbatim", s.Status())
	}
}

func TestSelectDirectory(t *testing.T) {
	s := scanned(t)

	if _, err := s.SelectDirectory(); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("without selection err = %v, want ErrEmptySelection", err)
	}

	s.Next()
	s.Next()
	dir, err := s.SelectDirectory()
	if err != nil {
		t.Fatalf("SelectDirectory: %v", err)
	}
	if dir != "/music/b" {
		t.Errorf("dir = %q, want /music/b", dir)
	}
	if s.Path() != "/music/b" {
		t.Errorf("path = %q, want /music/b", s.Path())
	}
	if s.Busy() != CallScan {
		t.Errorf("busy = %v, want scan", s.Busy())
	}
	if s.State() != StateNavigation {
		t.Errorf("state = %v, want navigation", s.State())
	}
}

func TestSelectDirectory_RequiresDirectoryFocus(t *testing.T) {
	s := scanned(t)
	s.Next()
	s.CycleFocus()

	if _, err := s.SelectDirectory(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestParent(t *testing.T) {
	s := New("/music/albums")
	dir, err := s.Parent()
	if err != nil {
		t.Fatalf("Parent: %v", err)
	}
	if dir != "/music" || s.Path() != "/music" {
		t.Errorf("dir = %q, path = %q, want /music", dir, s.Path())
	}

	root := New("/")
	if _, err := root.Parent(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Parent of / err = %v, want ErrUnavailable", err)
	}
}

func TestBeginSearch_NoFiles(t *testing.T) {
	s := New("/empty")

	err := s.BeginSearch()
	if !errors.Is(err, ErrNoFiles) {
		t.Fatalf("err = %v, want ErrNoFiles", err)
	}
	if s.Status() != StatusNoFiles {
		t.Errorf("status = %q", s.Status())
	}
	if s.Busy() != CallNone {
		t.Error("no call should be in flight")
	}
}

func TestSearch_AlwaysLandsInResultsWithoutSelection(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		results := make([]metadata.ProviderResult, n)
		s := searched(t, results...)

		if s.State() != StateResults {
			t.Errorf("%d results: state = %v, want results", n, s.State())
		}
		if s.SelectedResult().IsSet() {
			t.Errorf("%d results: result selected", n)
		}
		if len(s.Results()) != n {
			t.Errorf("%d results: got %d", n, len(s.Results()))
		}
	}
}

func TestSearch_FailureKeepsNavigation(t *testing.T) {
	s := scanned(t)
	if err := s.BeginSearch(); err != nil {
		t.Fatal(err)
	}

	err := s.FinishSearch("/music", nil, errors.New("connection refused"))

	var searchErr *SearchError
	if !errors.As(err, &searchErr) {
		t.Fatalf("err = %v, want *SearchError", err)
	}
	if s.State() != StateNavigation {
		t.Errorf("state = %v, want navigation", s.State())
	}
	if len(s.Results()) != 0 {
		t.Error("results should be empty")
	}
	if !strings.Contains(s.Status(), "connection refused") {
		t.Errorf("status = %q", s.Status())
	}
}

func TestScenario_EnterAndBack(t *testing.T) {
	s := searched(t, metadata.ProviderResult{Provider: "deezer", Title: "Album", Score: 0.92})

	if s.State() != StateResults || len(s.Results()) != 1 {
		t.Fatalf("state = %v, results = %d", s.State(), len(s.Results()))
	}

	if err := s.Enter(); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("Enter without selection err = %v", err)
	}
	if s.State() != StateResults {
		t.Fatalf("Enter without selection changed state to %v", s.State())
	}

	s.Next()
	if err := s.Enter(); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if s.State() != StateDetails || s.DetailsScroll() != 0 {
		t.Fatalf("state = %v, scroll = %d", s.State(), s.DetailsScroll())
	}

	s.Back()
	if s.State() != StateResults {
		t.Errorf("state = %v, want results", s.State())
	}
	if !s.SelectedResult().Is(0) {
		t.Error("selection should be kept going back to results")
	}

	s.Back()
	if s.State() != StateNavigation {
		t.Errorf("state = %v, want navigation", s.State())
	}
	if s.SelectedResult().IsSet() {
		t.Error("selection should be cleared going back to navigation")
	}

	s.Back()
	if s.State() != StateNavigation {
		t.Errorf("back in navigation changed state to %v", s.State())
	}
}

func TestDetails_Scroll(t *testing.T) {
	s := searched(t, metadata.ProviderResult{Tracks: []metadata.TrackInfo{{Title: "a"}, {Title: "b"}, {Title: "c"}}})
	s.Next()
	if err := s.Enter(); err != nil {
		t.Fatal(err)
	}

	s.Previous()
	if s.DetailsScroll() != 0 {
		t.Errorf("scroll = %d, want 0", s.DetailsScroll())
	}
	for range 5 {
		s.Next()
	}
	if s.DetailsScroll() != 2 {
		t.Errorf("scroll = %d, want 2", s.DetailsScroll())
	}

	s.Back()
	if err := s.Enter(); err != nil {
		t.Fatal(err)
	}
	if s.DetailsScroll() != 0 {
		t.Errorf("scroll after reopening = %d, want 0", s.DetailsScroll())
	}
}

func TestApply_NoSelectionIsBenign(t *testing.T) {
	s := searched(t, metadata.ProviderResult{Title: "A"})

	_, err := s.BeginApply()
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("err = %v, want ErrEmptySelection", err)
	}
	if !IsBenign(err) {
		t.Error("empty selection should be benign")
	}
	if s.Status() != StatusNoSelection {
		t.Errorf("status = %q", s.Status())
	}
	if s.Busy() != CallNone || s.State() != StateResults {
		t.Error("empty selection should not change anything else")
	}
}

func TestApply_Lifecycle(t *testing.T) {
	s := searched(t, metadata.ProviderResult{Title: "A"}, metadata.ProviderResult{Title: "B"})
	s.Next()
	s.Next()
	if err := s.Enter(); err != nil {
		t.Fatal(err)
	}

	r, err := s.BeginApply()
	if err != nil {
		t.Fatalf("BeginApply: %v", err)
	}
	if r.Title != "B" {
		t.Errorf("applying %q, want B", r.Title)
	}
	if s.Status() != StatusApplying {
		t.Errorf("status = %q", s.Status())
	}

	if err := s.FinishApply("/music", nil); err != nil {
		t.Fatalf("FinishApply: %v", err)
	}
	if s.State() != StateDetails {
		t.Errorf("apply changed state to %v", s.State())
	}
	if s.Status() != StatusApplied {
		t.Errorf("status = %q", s.Status())
	}
}

func TestApply_Failure(t *testing.T) {
	s := searched(t, metadata.ProviderResult{Title: "A"})
	s.Next()
	if _, err := s.BeginApply(); err != nil {
		t.Fatal(err)
	}

	err := s.FinishApply("/music", errors.New("read-only file system"))

	var applyErr *ApplyError
	if !errors.As(err, &applyErr) {
		t.Fatalf("err = %v, want *ApplyError", err)
	}
	if s.State() != StateResults {
		t.Errorf("state = %v", s.State())
	}
	if !s.SelectedResult().Is(0) {
		t.Error("selection lost after failed apply")
	}
}

func TestApply_NotInNavigation(t *testing.T) {
	s := scanned(t)
	if _, err := s.BeginApply(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestBusyGate(t *testing.T) {
	s := scanned(t)
	if err := s.BeginSearch(); err != nil {
		t.Fatal(err)
	}

	if err := s.BeginSearch(); !errors.Is(err, ErrBusy) {
		t.Errorf("second search err = %v, want ErrBusy", err)
	}
	if err := s.BeginScan("/music"); !errors.Is(err, ErrBusy) {
		t.Errorf("scan during search err = %v, want ErrBusy", err)
	}
	s.Next()
	if _, err := s.SelectDirectory(); !errors.Is(err, ErrBusy) {
		t.Errorf("select directory during search err = %v, want ErrBusy", err)
	}
	if s.Path() != "/music" {
		t.Errorf("path changed to %q while busy", s.Path())
	}
	if s.Status() != StatusSearching {
		t.Errorf("status = %q, want in-progress status", s.Status())
	}

	if err := s.FinishSearch("/music", nil, nil); err != nil {
		t.Fatal(err)
	}
	if s.Busy() != CallNone {
		t.Errorf("busy = %v after finish", s.Busy())
	}
}

func TestStaleOutcomesAreDiscarded(t *testing.T) {
	s := scanned(t)
	if err := s.BeginSearch(); err != nil {
		t.Fatal(err)
	}

	results := []metadata.ProviderResult{{Title: "Elsewhere"}}
	if err := s.FinishSearch("/music/other", results, nil); !errors.Is(err, ErrStale) {
		t.Fatalf("err = %v, want ErrStale", err)
	}
	if s.State() != StateNavigation || len(s.Results()) != 0 {
		t.Error("stale results must not be applied")
	}
	if s.Busy() != CallSearch {
		t.Error("the pending search must stay in flight")
	}

	if err := s.FinishScan("/music", listing(), nil); !errors.Is(err, ErrStale) {
		t.Errorf("scan outcome without a scan in flight err = %v, want ErrStale", err)
	}
}

func TestBeginScan_NewDirectoryDropsResults(t *testing.T) {
	s := searched(t, metadata.ProviderResult{Title: "A"})
	s.Back()

	if err := s.BeginScan("/music/b"); err != nil {
		t.Fatal(err)
	}
	if len(s.Results()) != 0 || len(s.Candidates()) != 0 {
		t.Error("results of the previous directory should be dropped")
	}
}

func TestToggleFilter(t *testing.T) {
	s := scanned(t)
	s.SetMinScore(0.5)
	if err := s.BeginSearch(); err != nil {
		t.Fatal(err)
	}
	if err := s.FinishSearch("/music", []metadata.ProviderResult{
		{Title: "high", Score: 0.9},
		{Title: "low", Score: 0.2},
		{Title: "edge", Score: 0.5},
	}, nil); err != nil {
		t.Fatal(err)
	}
	s.Next()

	s.ToggleFilter()
	if !s.Filtered() || len(s.Results()) != 2 {
		t.Fatalf("filtered = %v, results = %d", s.Filtered(), len(s.Results()))
	}
	if s.SelectedResult().IsSet() {
		t.Error("selection should reset when filtering")
	}

	s.ToggleFilter()
	if s.Filtered() || len(s.Results()) != 3 {
		t.Errorf("filtered = %v, results = %d", s.Filtered(), len(s.Results()))
	}
}

func TestIsBenign(t *testing.T) {
	benign := []error{ErrBusy, ErrEmptySelection, ErrNoFiles, ErrUnavailable, ErrStale}
	for _, err := range benign {
		if !IsBenign(err) {
			t.Errorf("IsBenign(%v) = false", err)
		}
	}
	if IsBenign(&ScanError{Path: "/x", Err: errors.New("boom")}) {
		t.Error("ScanError should not be benign")
	}
}

func TestShowDirectory(t *testing.T) {
	s := scanned(t)

	if !s.ShowDirectory("/music/b") {
		t.Fatal("ShowDirectory(/music/b) = false")
	}
	if i, ok := s.SelectedDirectory().Index(); !ok || i != 1 {
		t.Errorf("selected directory = %d, %v, want 1", i, ok)
	}

	if s.ShowDirectory("/elsewhere") {
		t.Error("ShowDirectory of an unknown path should fail")
	}
	if i, _ := s.SelectedDirectory().Index(); i != 1 {
		t.Errorf("selection changed to %d", i)
	}
}

func TestBeginScan_NewDirectoryLeavesDetails(t *testing.T) {
	s := searched(t, metadata.ProviderResult{Title: "A", Tracks: []metadata.TrackInfo{{Title: "a"}}})
	s.Next()
	if err := s.Enter(); err != nil {
		t.Fatalf("Enter: %v", err)
	}

	if err := s.BeginScan("/music/b"); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateNavigation {
		t.Errorf("state = %v, want navigation", s.State())
	}
	if _, ok := s.Selected(); ok {
		t.Error("no candidate should stay selected")
	}
}

func TestBeginScan_SameDirectoryKeepsDetails(t *testing.T) {
	s := searched(t, metadata.ProviderResult{Title: "A"})
	s.Next()
	if err := s.Enter(); err != nil {
		t.Fatalf("Enter: %v", err)
	}

	if err := s.BeginScan("/music"); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateDetails {
		t.Errorf("rescan changed state to %v", s.State())
	}
	if _, ok := s.Selected(); !ok {
		t.Error("rescan should keep the selected candidate")
	}
}
