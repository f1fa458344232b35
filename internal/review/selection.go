package review

// Selection is an optional index into a list.
// The zero value selects nothing.
type Selection struct {
	idx int
	set bool
}

// Index returns the selected index and whether one is set.
func (s Selection) Index() (int, bool) {
	return s.idx, s.set
}

// IsSet reports whether an index is selected.
func (s Selection) IsSet() bool {
	return s.set
}

// Is reports whether i is the selected index.
func (s Selection) Is(i int) bool {
	return s.set && s.idx == i
}

// Clear unsets the selection.
func (s *Selection) Clear() {
	*s = Selection{}
}

// Next advances within a list of n items, wrapping past the last index to 0.
// Without a selection it selects 0. On an empty list it does nothing.
func (s *Selection) Next(n int) {
	if n <= 0 {
		return
	}
	if !s.set || s.idx >= n-1 {
		*s = Selection{idx: 0, set: true}
		return
	}
	s.idx++
}

// Previous retreats within a list of n items, wrapping before 0 to n-1.
// Without a selection it selects 0. On an empty list it does nothing.
func (s *Selection) Previous(n int) {
	if n <= 0 {
		return
	}
	switch {
	case !s.set:
		*s = Selection{idx: 0, set: true}
	case s.idx <= 0:
		s.idx = n - 1
	default:
		s.idx--
	}
}

// Select sets the selection to i if it is in range for n items.
func (s *Selection) Select(i, n int) bool {
	if i < 0 || i >= n {
		return false
	}
	*s = Selection{idx: i, set: true}
	return true
}

// Clamp unsets the selection when it no longer fits a list of n items.
func (s *Selection) Clamp(n int) {
	if s.set && s.idx >= n {
		s.Clear()
	}
}
