// Package layout provides pure functions for UI dimension calculations.
package layout

import "github.com/llehouerou/tunematch/internal/ui"

// NarrowThreshold is the terminal width below which the candidate preview
// is displayed below the candidate table instead of beside it.
const NarrowThreshold = 100

// BodyHeight is the window height left between the header and the status
// bar.
func BodyHeight(windowHeight, headerHeight int) int {
	return max(windowHeight-headerHeight-ui.StatusHeight, 0)
}

// IsNarrowMode returns true if the terminal width is below the narrow threshold.
func IsNarrowMode(width int) bool {
	return width < NarrowThreshold
}

// Browse holds the pane sizes of the browse screen: directories on the
// left, files above the last candidates on the right.
type Browse struct {
	DirWidth         int
	RightWidth       int
	FilesHeight      int
	CandidatesHeight int
}

// BrowseLayout splits the body of the browse screen.
func BrowseLayout(width, height int) Browse {
	dirW := width / ui.DirectoryWidthDivisor
	filesH := height * 2 / 3
	return Browse{
		DirWidth:         dirW,
		RightWidth:       width - dirW,
		FilesHeight:      filesH,
		CandidatesHeight: height - filesH,
	}
}

// Candidates holds the pane sizes of the candidates screen.
type Candidates struct {
	TableWidth    int
	TableHeight   int
	PreviewWidth  int
	PreviewHeight int
	// Stacked is true when the preview sits below the table.
	Stacked bool
}

// CandidatesLayout splits the body of the candidates screen. In narrow
// mode the preview takes the bottom third, otherwise the right third.
func CandidatesLayout(width, height int) Candidates {
	if IsNarrowMode(width) {
		tableH := height * 2 / 3
		return Candidates{
			TableWidth:    width,
			TableHeight:   tableH,
			PreviewWidth:  width,
			PreviewHeight: height - tableH,
			Stacked:       true,
		}
	}
	previewW := width / ui.PreviewWidthDivisor
	return Candidates{
		TableWidth:    width - previewW,
		TableHeight:   height,
		PreviewWidth:  previewW,
		PreviewHeight: height,
	}
}

// ListHeight is the number of rows a bordered panel of the given height
// can show below headerLines lines of title and column header.
func ListHeight(panelHeight, headerLines int) int {
	return max(panelHeight-ui.BorderHeight-headerLines, 0)
}
