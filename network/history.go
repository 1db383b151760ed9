package network

import "sort"

// Snapshot is one timestamped observation of a remote ship. Immutable once
// appended.
type Snapshot struct {
	X, Y float64
	Rot  float64 // radians, [0, 2π)
	TS   float64 // seconds
}

// History is a bounded snapshot buffer for one remote ship, kept ascending
// by timestamp across every mutation. Callers synchronize access; the
// Manager's lock covers all histories.
type History struct {
	snaps []Snapshot
	max   int
}

func NewHistory(max int) *History {
	return &History{max: max}
}

// Append inserts s in timestamp order and drops the oldest entries once the
// buffer exceeds its cap. Duplicate timestamps are kept.
func (h *History) Append(s Snapshot) {
	i := sort.Search(len(h.snaps), func(i int) bool {
		return h.snaps[i].TS > s.TS
	})
	h.snaps = append(h.snaps, Snapshot{})
	copy(h.snaps[i+1:], h.snaps[i:])
	h.snaps[i] = s

	if h.max > 0 && len(h.snaps) > h.max {
		drop := len(h.snaps) - h.max
		h.snaps = append(h.snaps[:0], h.snaps[drop:]...)
	}
}

func (h *History) Len() int {
	return len(h.snaps)
}

// Oldest returns the first snapshot. Only valid when Len() > 0.
func (h *History) Oldest() Snapshot {
	return h.snaps[0]
}

// Newest returns the last snapshot. Only valid when Len() > 0.
func (h *History) Newest() Snapshot {
	return h.snaps[len(h.snaps)-1]
}

// At returns the i-th snapshot in timestamp order.
func (h *History) At(i int) Snapshot {
	return h.snaps[i]
}

// Bracket finds the consecutive pair (s0, s1) with s0.TS <= t <= s1.TS.
// Returns ok=false when t falls before the first or after the last
// snapshot, or when fewer than two snapshots exist.
func (h *History) Bracket(t float64) (s0, s1 Snapshot, ok bool) {
	for i := 0; i+1 < len(h.snaps); i++ {
		if h.snaps[i].TS <= t && t <= h.snaps[i+1].TS {
			return h.snaps[i], h.snaps[i+1], true
		}
	}
	return Snapshot{}, Snapshot{}, false
}
