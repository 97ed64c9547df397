// Package index builds the run-scoped inverted index: fingerprint hash to
// the sorted postings of every (file, position) where it occurs. The index
// is what keeps cross-file matching sparse; only files sharing at least one
// bucket are ever compared.
package index

import (
	"sort"

	"github.com/Rudra2712/Plagiarism-detection-system/pkg/winnow"
)

// Posting records one occurrence of a fingerprint hash.
type Posting struct {
	File uint32
	Pos  int
}

// Inverted maps fingerprint hashes to their postings. Built once per run via
// a Builder; read-only afterwards.
type Inverted struct {
	buckets map[uint64][]Posting
}

// Builder accumulates postings before the single sort pass that fixes
// iteration order.
type Builder struct {
	buckets map[uint64][]Posting
}

// NewBuilder returns an empty index builder.
func NewBuilder() *Builder {
	return &Builder{buckets: make(map[uint64][]Posting)}
}

// Add inserts every fingerprint of one file. The winnower has already
// deduplicated (hash, position) pairs, so no bucket receives duplicates
// for the same file.
func (b *Builder) Add(file uint32, set *winnow.Set) {
	if set == nil {
		return
	}
	for _, h := range set.Hashes {
		for _, pos := range set.Positions[h] {
			b.buckets[h] = append(b.buckets[h], Posting{File: file, Pos: pos})
		}
	}
}

// Build sorts every bucket by (file, position) and seals the index. The
// ordering is deterministic regardless of insertion order, so parallel
// fingerprinting upstream cannot change the result.
func (b *Builder) Build() *Inverted {
	for _, postings := range b.buckets {
		sort.Slice(postings, func(i, j int) bool {
			if postings[i].File != postings[j].File {
				return postings[i].File < postings[j].File
			}
			return postings[i].Pos < postings[j].Pos
		})
	}
	idx := &Inverted{buckets: b.buckets}
	b.buckets = nil
	return idx
}

// Lookup returns the postings for a hash, or nil.
func (ix *Inverted) Lookup(hash uint64) []Posting {
	return ix.buckets[hash]
}

// Len returns the number of distinct fingerprint hashes in the index.
func (ix *Inverted) Len() int {
	return len(ix.buckets)
}

// Buckets calls fn for every (hash, postings) pair. Iteration order over
// hashes is unspecified; callers needing determinism must sort what they
// derive from it.
func (ix *Inverted) Buckets(fn func(hash uint64, postings []Posting)) {
	for h, postings := range ix.buckets {
		fn(h, postings)
	}
}
