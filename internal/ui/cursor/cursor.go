// Package cursor computes the visible part of a scrollable list.
//
// Views are pure functions of the session, so no scroll offset is stored:
// the window is derived from the selected row every frame.
package cursor

// Window returns the visible range [start, end) of a list of listLen rows
// drawn in height lines with the row at pos selected. The selection stays
// at least margin rows away from the bottom edge while the list can
// scroll. A negative pos shows the top of the list.
func Window(pos, listLen, height, margin int) (start, end int) {
	if listLen <= 0 || height <= 0 {
		return 0, 0
	}
	margin = clamp(margin, (height-1)/2)

	if pos >= 0 {
		start = pos - (height - 1 - margin)
	}
	start = clamp(start, max(listLen-height, 0))
	return start, min(start+height, listLen)
}

// Scroll returns the visible range [start, end) of listLen rows drawn in
// height lines and scrolled by offset rows. The offset is clamped so the
// last page stays full.
func Scroll(offset, listLen, height int) (start, end int) {
	if listLen <= 0 || height <= 0 {
		return 0, 0
	}
	start = clamp(offset, max(listLen-height, 0))
	return start, min(start+height, listLen)
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
