// Package app contains the bubbletea model of the review TUI.
package app

import (
	"github.com/llehouerou/tunematch/internal/metadata"
)

// ScanResultMsg carries the outcome of a directory scan.
type ScanResultMsg struct {
	Path    string
	Listing metadata.Listing
	Err     error

	// Status to show once the scan lands, instead of the scan summary.
	KeepStatus string
}

// SearchResultMsg carries the outcome of a metadata search.
type SearchResultMsg struct {
	Path    string
	Results []metadata.ProviderResult
	Err     error
}

// ApplyResultMsg carries the outcome of writing a candidate to the files.
type ApplyResultMsg struct {
	Path   string
	Result metadata.ProviderResult
	Err    error
}
