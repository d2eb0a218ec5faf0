// Package minheap is an array-backed binary min-heap over an explicit active
// range. Extracted elements are parked past the range, so draining the heap
// leaves the backing slice sorted in descending order.
package minheap

// MinHeap orders items with a caller-supplied less function. The children of
// index p live at 2p+1 and 2p+2.
type MinHeap[T any] struct {
	items []T
	less  func(a, b T) bool
}

// New wraps items without copying; the heap mutates the slice in place.
func New[T any](items []T, less func(a, b T) bool) *MinHeap[T] {
	return &MinHeap[T]{items: items, less: less}
}

// Len returns the size of the backing slice, including parked elements.
func (h *MinHeap[T]) Len() int { return len(h.items) }

// Items exposes the backing slice.
func (h *MinHeap[T]) Items() []T { return h.items }

// Peek returns the root, the minimum of the active range.
func (h *MinHeap[T]) Peek() T { return h.items[0] }

// Build restores heap order over the whole slice bottom-up, sinking every
// internal node from the last non-leaf down to the root.
func (h *MinHeap[T]) Build() {
	end := len(h.items) - 1
	if end < 1 {
		return
	}
	for p := (end - 1) / 2; p >= 0; p-- {
		h.Sink(p, end)
	}
}

// Sink moves the node at p down within [0, end] until no child is strictly
// smaller. When both children are equal the left one is taken.
func (h *MinHeap[T]) Sink(p, end int) {
	for c := 2*p + 1; c <= end; c = 2*p + 1 {
		if c+1 <= end && h.less(h.items[c+1], h.items[c]) {
			c++
		}
		if !h.less(h.items[c], h.items[p]) {
			return
		}
		h.swap(c, p)
		p = c
	}
}

// ExtractMin swaps the root with items[end] and re-sinks the root over
// [0, end-1]. The old root stays at index end and is never touched again.
func (h *MinHeap[T]) ExtractMin(end int) {
	h.swap(0, end)
	h.Sink(0, end-1)
}

func (h *MinHeap[T]) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}
