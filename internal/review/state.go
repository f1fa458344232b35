// Package review holds the session state of one review: browsing local
// directories, inspecting ranked metadata candidates and applying one.
//
// A Session never performs I/O. Scans, searches and tag writes run
// elsewhere; the session is told when they begin and when they finish.
package review

// State is the screen the session is on.
type State int

const (
	StateNavigation State = iota // Browsing directories and files
	StateResults                 // Ranked candidates for the current directory
	StateDetails                 // Track listing of one candidate
)

func (s State) String() string {
	switch s {
	case StateNavigation:
		return "navigation"
	case StateResults:
		return "results"
	case StateDetails:
		return "details"
	}
	return "unknown"
}

// Focus is the pane receiving list navigation while in StateNavigation.
type Focus int

const (
	FocusDirectory Focus = iota
	FocusFiles
	FocusResults
)

func (f Focus) String() string {
	switch f {
	case FocusDirectory:
		return "directories"
	case FocusFiles:
		return "files"
	case FocusResults:
		return "results"
	}
	return "unknown"
}

// next returns the pane after f: directories, files, results, directories.
func (f Focus) next() Focus {
	switch f {
	case FocusDirectory:
		return FocusFiles
	case FocusFiles:
		return FocusResults
	default:
		return FocusDirectory
	}
}

// Call identifies the collaborator call in flight.
type Call int

const (
	CallNone Call = iota
	CallScan
	CallSearch
	CallApply
)

func (c Call) String() string {
	switch c {
	case CallNone:
		return "none"
	case CallScan:
		return "scan"
	case CallSearch:
		return "search"
	case CallApply:
		return "apply"
	}
	return "unknown"
}
