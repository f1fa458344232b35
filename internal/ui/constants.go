// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// ScrollMargin is the number of rows kept visible below the selection.
	ScrollMargin = 2

	// BorderHeight is the vertical space consumed by a standard panel border.
	BorderHeight = 2

	// StatusHeight is the height of the status bar.
	StatusHeight = 1

	// DirectoryWidthDivisor gives the directory pane 1/DirectoryWidthDivisor
	// of the width in the browse screen.
	DirectoryWidthDivisor = 3

	// PreviewWidthDivisor gives the candidate preview 1/PreviewWidthDivisor
	// of the width in the candidates screen.
	PreviewWidthDivisor = 3

	// MinWidth and MinHeight are the smallest terminal the layout supports.
	MinWidth  = 40
	MinHeight = 10
)
