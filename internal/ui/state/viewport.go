package state

// Viewport tracks which slice of a list is on screen. The selection itself
// lives in the navigation state; the viewport only follows it.
type Viewport struct {
	Offset int
}

// Follow adjusts the offset so selection stays inside a window of maxVisible
// rows over a list of total entries. A non-positive maxVisible shows
// everything.
func (v *Viewport) Follow(selection, total, maxVisible int) {
	if total == 0 || maxVisible <= 0 {
		v.Offset = 0
		return
	}
	if selection < 0 {
		selection = 0
	}
	if selection >= total {
		selection = total - 1
	}
	maxOffset := total - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.Offset > maxOffset {
		v.Offset = maxOffset
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
	if selection < v.Offset {
		v.Offset = selection
	}
	if upper := v.Offset + maxVisible - 1; selection > upper {
		v.Offset = selection - maxVisible + 1
	}
}

// Window returns the half-open range [start, end) of rows to draw.
func (v Viewport) Window(total, maxVisible int) (int, int) {
	if maxVisible <= 0 || maxVisible >= total {
		return 0, total
	}
	start := v.Offset
	if start > total-maxVisible {
		start = total - maxVisible
	}
	if start < 0 {
		start = 0
	}
	return start, start + maxVisible
}

// Reset scrolls back to the top.
func (v *Viewport) Reset() {
	v.Offset = 0
}
