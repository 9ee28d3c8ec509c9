package memory

import (
	"slices"
	"sort"

	"github.com/chronostore/chronostore/pkg/timeline"
)

// history is the ordered version list for one file name.
//
// Records are sorted by CreatedAt non-decreasing; records sharing an
// instant stay in arrival order. Every operation below relies on that
// invariant and insert is the only way records enter the slice.
type history struct {
	versions []timeline.Version
}

// upperBound returns the index of the first record created strictly
// after t, or len(versions) if there is none.
func (h *history) upperBound(t timeline.Timestamp) int {
	return sort.Search(len(h.versions), func(i int) bool {
		return h.versions[i].CreatedAt > t
	})
}

// insert places v in CreatedAt order, after any records created at
// the same instant.
func (h *history) insert(v timeline.Version) {
	idx := h.upperBound(v.CreatedAt)
	h.versions = slices.Insert(h.versions, idx, v)
}

// activeAt returns the record visible at t. Only the newest record
// created at or before t can be visible: older records are superseded
// even when their TTL has not run out. The newest candidate is then
// checked against its own expiry.
func (h *history) activeAt(t timeline.Timestamp) (timeline.Version, bool) {
	idx := h.upperBound(t) - 1
	if idx < 0 {
		return timeline.Version{}, false
	}

	candidate := h.versions[idx]
	if !candidate.ActiveAt(t) {
		return timeline.Version{}, false
	}
	return candidate, true
}

// truncateAfter drops every record created strictly after t and
// returns the number of records removed.
func (h *history) truncateAfter(t timeline.Timestamp) int {
	idx := h.upperBound(t)
	removed := len(h.versions) - idx
	if removed > 0 {
		h.versions = slices.Delete(h.versions, idx, len(h.versions))
	}
	return removed
}

// len returns the number of records in the history.
func (h *history) len() int {
	return len(h.versions)
}

// list returns a copy of the history, oldest first.
func (h *history) list() []timeline.Version {
	return slices.Clone(h.versions)
}
