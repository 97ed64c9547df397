// Package winnow selects a sparse fingerprint subset from a shingle hash
// sequence. A window of w consecutive hashes slides over the sequence; each
// window contributes its minimum hash, rightmost occurrence on ties, and a
// fingerprint is recorded only when the selected (hash, position) changes
// between consecutive windows. Edits confined to a single window that stay
// above the local minimum cannot change what is selected, which is what
// makes the fingerprints robust to small edits.
package winnow

import "sort"

// DefaultW is the default winnowing window size.
const DefaultW = 4

// Fingerprint is a selected (hash, position) pair. Position is the shingle
// index within the file.
type Fingerprint struct {
	Hash uint64
	Pos  int
}

// Winnow returns the selected fingerprints in selection order. Sequences
// shorter than w are treated as a single window. An empty hash sequence or
// w < 1 yields nil.
func Winnow(hashes []uint64, w int) []Fingerprint {
	n := len(hashes)
	if w < 1 || n == 0 {
		return nil
	}
	if w > n {
		w = n
	}

	var selected []Fingerprint

	// Monotonic deque of indices into hashes. Values are non-decreasing
	// front to back; pushing index j evicts every back index whose hash is
	// >= hashes[j], so on equal hashes the rightmost index survives and the
	// front is always the window's tie-broken minimum.
	deque := make([]int, 0, w)

	push := func(j int) {
		for len(deque) > 0 && hashes[deque[len(deque)-1]] >= hashes[j] {
			deque = deque[:len(deque)-1]
		}
		deque = append(deque, j)
	}

	last := Fingerprint{Pos: -1}
	for right := 0; right < n; right++ {
		push(right)
		if right < w-1 {
			continue
		}
		left := right - w + 1
		for deque[0] < left {
			deque = deque[1:]
		}
		pick := Fingerprint{Hash: hashes[deque[0]], Pos: deque[0]}
		if pick != last {
			selected = append(selected, pick)
			last = pick
		}
	}

	return selected
}

// Set is a file's fingerprint set: distinct hash values in ascending order,
// with every selected position retained per hash for match reporting.
type Set struct {
	Hashes    []uint64
	Positions map[uint64][]int
}

// NewSet builds a Set from winnowed fingerprints. Hash values are
// deduplicated; positions accumulate in selection order.
func NewSet(fps []Fingerprint) *Set {
	s := &Set{Positions: make(map[uint64][]int, len(fps))}
	for _, fp := range fps {
		if _, seen := s.Positions[fp.Hash]; !seen {
			s.Hashes = append(s.Hashes, fp.Hash)
		}
		s.Positions[fp.Hash] = append(s.Positions[fp.Hash], fp.Pos)
	}
	sort.Slice(s.Hashes, func(i, j int) bool { return s.Hashes[i] < s.Hashes[j] })
	return s
}

// Len returns the number of distinct fingerprint hashes.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Hashes)
}
