package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunematch/internal/metadata"
	"github.com/llehouerou/tunematch/internal/review"
)

// ScanCmd scans path off the event loop.
func ScanCmd(ctx context.Context, s review.Scanner, path string) tea.Cmd {
	return func() tea.Msg {
		listing, err := s.Scan(ctx, path)
		return ScanResultMsg{Path: path, Listing: listing, Err: err}
	}
}

// RescanCmd scans path again after its files changed, keeping status.
func RescanCmd(ctx context.Context, s review.Scanner, path, status string) tea.Cmd {
	return func() tea.Msg {
		listing, err := s.Scan(ctx, path)
		return ScanResultMsg{Path: path, Listing: listing, Err: err, KeepStatus: status}
	}
}

// SearchCmd looks up candidates for the files of path.
func SearchCmd(ctx context.Context, s review.Searcher, path string, files []metadata.MetadataItem) tea.Cmd {
	return func() tea.Msg {
		results, err := s.Search(ctx, files)
		return SearchResultMsg{Path: path, Results: results, Err: err}
	}
}

// ManualSearchCmd looks up candidates for a free-form query.
func ManualSearchCmd(ctx context.Context, s review.Searcher, path, input string, files []metadata.MetadataItem) tea.Cmd {
	return func() tea.Msg {
		results, err := s.SearchManual(ctx, input, files)
		return SearchResultMsg{Path: path, Results: results, Err: err}
	}
}

// ApplyCmd writes r to the files of path.
func ApplyCmd(ctx context.Context, a review.Applier, path string, r metadata.ProviderResult, files []metadata.MetadataItem) tea.Cmd {
	return func() tea.Msg {
		err := a.Apply(ctx, r, files)
		return ApplyResultMsg{Path: path, Result: r, Err: err}
	}
}
