// Package rank selects the top entries of a stream of named sizes.
//
// Entries are ranked by size descending; entries with equal sizes are
// ranked by name ascending. The selector holds at most its limit, so
// feeding n entries costs O(n log limit) regardless of n.
package rank

import "container/heap"

// Entry is one candidate in the selection.
type Entry struct {
	Name string
	Size int64
}

// worse reports whether a ranks below b.
func worse(a, b Entry) bool {
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	return a.Name > b.Name
}

// entryHeap is a min-heap whose root is the worst kept entry, so the
// root is the one to evict when the selector overflows.
type entryHeap []Entry

func (h entryHeap) Len() int           { return len(h) }
func (h entryHeap) Less(i, j int) bool { return worse(h[i], h[j]) }
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)        { *h = append(*h, x.(Entry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// TopK keeps the best entries seen so far, up to a fixed limit.
type TopK struct {
	limit int
	heap  entryHeap
}

// NewTopK returns a selector keeping at most limit entries. A limit
// of zero or less keeps nothing.
func NewTopK(limit int) *TopK {
	return &TopK{limit: limit}
}

// Add offers an entry to the selection.
func (t *TopK) Add(name string, size int64) {
	if t.limit <= 0 {
		return
	}
	heap.Push(&t.heap, Entry{Name: name, Size: size})
	if len(t.heap) > t.limit {
		heap.Pop(&t.heap)
	}
}

// Len returns the number of entries currently kept.
func (t *TopK) Len() int {
	return len(t.heap)
}

// Names drains the selection and returns the kept names best-first.
// The selector is empty afterwards.
func (t *TopK) Names() []string {
	out := make([]string, len(t.heap))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&t.heap).(Entry).Name
	}
	return out
}
