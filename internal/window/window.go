// Package window implements a fixed-capacity cursor of contiguous indices
// over a longer ordered sequence. File lists, the record viewer and the
// editor all page through their content with it.
package window

// Window shows at most Cap consecutive positions of a sequence of length
// Len. The visible positions are always First(), First()+1, ... and never
// leave [0, Len-1].
type Window struct {
	n     int
	k     int
	first int
}

// New returns a window of capacity k over a sequence of length n,
// positioned at the top. k below 1 is treated as 1, n below 0 as 0.
func New(n, k int) *Window {
	if k < 1 {
		k = 1
	}
	if n < 0 {
		n = 0
	}
	return &Window{n: n, k: k}
}

// Len is the length of the underlying sequence.
func (w *Window) Len() int { return w.n }

// Cap is the window capacity.
func (w *Window) Cap() int { return w.k }

// First is the index shown in the top slot.
func (w *Window) First() int { return w.first }

// Size is the number of slots backed by a real index: min(Cap, Len).
func (w *Window) Size() int { return min(w.k, w.n) }

// Indices returns the visible indices in order.
func (w *Window) Indices() []int {
	out := make([]int, w.Size())
	for i := range out {
		out[i] = w.first + i
	}
	return out
}

// At maps a slot to its index. ok is false for slots past the end of a
// short sequence or outside [0, Cap).
func (w *Window) At(slot int) (idx int, ok bool) {
	if slot < 0 || slot >= w.k {
		return 0, false
	}
	idx = w.first + slot
	if idx >= w.n {
		return 0, false
	}
	return idx, true
}

// CanScrollUp reports whether ScrollUp would move the window.
func (w *Window) CanScrollUp() bool { return w.first > 0 }

// CanScrollDown reports whether ScrollDown would move the window.
func (w *Window) CanScrollDown() bool { return w.first+w.k-1 < w.n-1 }

// ScrollUp moves every visible index up by one. It is a no-op at the top.
func (w *Window) ScrollUp() bool {
	if !w.CanScrollUp() {
		return false
	}
	w.first--
	return true
}

// ScrollDown moves every visible index down by one. It is a no-op once the
// last index of the sequence is visible.
func (w *Window) ScrollDown() bool {
	if !w.CanScrollDown() {
		return false
	}
	w.first++
	return true
}

// Resize changes the sequence length, keeping the window in range. It is
// used after the sequence shrinks or grows under an open view.
func (w *Window) Resize(n int) {
	if n < 0 {
		n = 0
	}
	w.n = n
	w.first = max(0, min(w.first, n-w.k))
}

// Reveal scrolls the minimum distance needed for idx to be visible.
func (w *Window) Reveal(idx int) {
	if idx < 0 || idx >= w.n {
		return
	}
	switch {
	case idx < w.first:
		w.first = idx
	case idx >= w.first+w.k:
		w.first = idx - w.k + 1
	}
}

// Visible returns the elements of src currently inside w. src should have
// length w.Len().
func Visible[T any](w *Window, src []T) []T {
	lo := min(w.first, len(src))
	hi := min(w.first+w.k, len(src))
	return src[lo:hi]
}
