// Package similarity turns the inverted index into pairwise Jaccard scores.
// Candidate pairs come from index buckets shared by two or more files, so
// files with no fingerprint overlap are never compared; the score itself is
// exact, computed from the full fingerprint sets rather than the index.
package similarity

import (
	"runtime"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/Rudra2712/Plagiarism-detection-system/pkg/index"
	"github.com/Rudra2712/Plagiarism-detection-system/pkg/winnow"
)

// DefaultFileThreshold is the default file-level Jaccard threshold.
const DefaultFileThreshold = 0.40

// Pair is the similarity result for one unordered file pair, A < B.
type Pair struct {
	A, B    uint32
	Jaccard float64
	Shared  int
	Union   int
}

// Similar reports whether the pair meets the threshold. The boundary counts:
// a score exactly equal to the threshold is similar.
func (p Pair) Similar(threshold float64) bool {
	return p.Jaccard >= threshold
}

// Jaccard computes |a∩b| / |a∪b| over two ascending hash slices by merging.
// Two empty sets score 0 by convention rather than erroring on 0/0.
func Jaccard(a, b []uint64) (score float64, shared, union int) {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			shared++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	union = len(a) + len(b) - shared
	if union == 0 {
		return 0, 0, 0
	}
	return float64(shared) / float64(union), shared, union
}

// Compare scores every candidate pair drawn from the index. sets is indexed
// by file id and must cover every file that contributed postings. The result
// is sorted by (A, B) regardless of the parallel schedule, and contains every
// candidate pair, similar or not, so callers can both threshold and report
// best matches below the threshold.
func Compare(ix *index.Inverted, sets []*winnow.Set) []Pair {
	partners := candidatePartners(ix, len(sets))

	// Score in parallel per left-hand file; slot per file keeps the final
	// merge deterministic.
	scored := make([][]Pair, len(sets))
	p := pool.New().WithMaxGoroutines(runtime.NumCPU())
	for a := range sets {
		if partners[a] == nil || partners[a].IsEmpty() {
			continue
		}
		a := uint32(a)
		p.Go(func() {
			var pairs []Pair
			it := partners[a].Iterator()
			for it.HasNext() {
				b := it.Next()
				if b <= a {
					continue
				}
				score, shared, union := Jaccard(sets[a].Hashes, sets[b].Hashes)
				pairs = append(pairs, Pair{A: a, B: b, Jaccard: score, Shared: shared, Union: union})
			}
			scored[a] = pairs
		})
	}
	p.Wait()

	var out []Pair
	for _, pairs := range scored {
		out = append(out, pairs...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// candidatePartners collects, per file, the bitmap of files it shares at
// least one index bucket with.
func candidatePartners(ix *index.Inverted, files int) []*roaring.Bitmap {
	partners := make([]*roaring.Bitmap, files)
	bucketFiles := roaring.New()

	ix.Buckets(func(_ uint64, postings []index.Posting) {
		bucketFiles.Clear()
		for _, p := range postings {
			bucketFiles.Add(p.File)
		}
		if bucketFiles.GetCardinality() < 2 {
			return
		}
		it := bucketFiles.Iterator()
		for it.HasNext() {
			f := it.Next()
			if partners[f] == nil {
				partners[f] = roaring.New()
			}
			partners[f].Or(bucketFiles)
			partners[f].Remove(f)
		}
	})

	return partners
}
