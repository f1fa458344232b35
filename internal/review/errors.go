package review

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy is returned when a scan, search or apply is already in flight.
	ErrBusy = errors.New("another operation is in progress")

	// ErrEmptySelection is returned when an action needs a selection that is
	// not there. It is benign: the session reports it and stays unchanged.
	ErrEmptySelection = errors.New("nothing selected")

	// ErrNoFiles is returned when a search is requested for a directory
	// without audio files.
	ErrNoFiles = errors.New("no files to search metadata for")

	// ErrUnavailable is returned when an action does not apply to the
	// current state, such as a search outside navigation.
	ErrUnavailable = errors.New("action not available here")

	// ErrStale is returned when a finished call belongs to a directory the
	// session has since left. Its outcome is discarded.
	ErrStale = errors.New("result for a directory no longer shown")
)

// ScanError is a failure enumerating a directory.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// SearchError is a failure looking up candidates.
type SearchError struct {
	Path string
	Err  error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search %s: %v", e.Path, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }

// ApplyError is a failure writing a candidate's tags.
type ApplyError struct {
	Path string
	Err  error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("apply to %s: %v", e.Path, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }
