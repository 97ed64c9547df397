package similarity

import (
	"math"
	"testing"

	"github.com/Rudra2712/Plagiarism-detection-system/pkg/index"
	"github.com/Rudra2712/Plagiarism-detection-system/pkg/winnow"
)

func TestJaccardIdenticalSets(t *testing.T) {
	a := []uint64{1, 2, 3, 4}
	score, shared, union := Jaccard(a, a)
	if score != 1.0 || shared != 4 || union != 4 {
		t.Errorf("Jaccard(a, a) = (%v, %d, %d), want (1, 4, 4)", score, shared, union)
	}
}

func TestJaccardDisjointSets(t *testing.T) {
	score, shared, union := Jaccard([]uint64{1, 2}, []uint64{3, 4})
	if score != 0 || shared != 0 || union != 4 {
		t.Errorf("Jaccard = (%v, %d, %d), want (0, 0, 4)", score, shared, union)
	}
}

func TestJaccardBothEmpty(t *testing.T) {
	score, shared, union := Jaccard(nil, nil)
	if score != 0 || shared != 0 || union != 0 {
		t.Errorf("Jaccard(nil, nil) = (%v, %d, %d), want (0, 0, 0)", score, shared, union)
	}
}

func TestJaccardOneEmpty(t *testing.T) {
	score, _, union := Jaccard([]uint64{1, 2, 3}, nil)
	if score != 0 || union != 3 {
		t.Errorf("Jaccard(a, nil) = (%v, union %d), want (0, union 3)", score, union)
	}
}

func TestJaccardSymmetry(t *testing.T) {
	a := []uint64{1, 3, 5, 7, 9}
	b := []uint64{3, 4, 5, 6}
	sAB, _, _ := Jaccard(a, b)
	sBA, _, _ := Jaccard(b, a)
	if sAB != sBA {
		t.Errorf("Jaccard(a, b) = %v but Jaccard(b, a) = %v", sAB, sBA)
	}
	// |{3,5}| / |{1,3,4,5,6,7,9}|
	if want := 2.0 / 7.0; math.Abs(sAB-want) > 1e-12 {
		t.Errorf("Jaccard(a, b) = %v, want %v", sAB, want)
	}
}

func TestSimilarBoundaryCounts(t *testing.T) {
	p := Pair{Jaccard: 0.40}
	if !p.Similar(0.40) {
		t.Error("score exactly at the threshold must count as similar")
	}
	if (Pair{Jaccard: 0.39999}).Similar(0.40) {
		t.Error("score below the threshold must not count as similar")
	}
}

func set(hashes ...uint64) *winnow.Set {
	fps := make([]winnow.Fingerprint, len(hashes))
	for i, h := range hashes {
		fps[i] = winnow.Fingerprint{Hash: h, Pos: i}
	}
	return winnow.NewSet(fps)
}

func TestCompareScoresSharedBucketPairs(t *testing.T) {
	sets := []*winnow.Set{
		set(1, 2, 3),
		set(2, 3, 4),
		set(9), // shares nothing
	}
	b := buildIndex(sets)
	pairs := Compare(b, sets)

	if len(pairs) != 1 {
		t.Fatalf("Compare returned %d pairs, want 1: %v", len(pairs), pairs)
	}
	p := pairs[0]
	if p.A != 0 || p.B != 1 {
		t.Errorf("pair = (%d, %d), want (0, 1)", p.A, p.B)
	}
	if want := 2.0 / 4.0; p.Jaccard != want {
		t.Errorf("Jaccard = %v, want %v", p.Jaccard, want)
	}
}

func TestCompareEmptyIndex(t *testing.T) {
	sets := []*winnow.Set{set(1), set(2)}
	if pairs := Compare(buildIndex(sets), sets); pairs != nil {
		t.Errorf("Compare with no shared buckets = %v, want nil", pairs)
	}
}

func TestCompareDeterministicOrder(t *testing.T) {
	// Three mutually overlapping files; every run must yield the same
	// (A, B)-sorted pair list despite parallel scoring.
	sets := []*winnow.Set{set(1, 2), set(2, 3), set(1, 3)}
	first := Compare(buildIndex(sets), sets)
	for i := 0; i < 5; i++ {
		again := Compare(buildIndex(sets), sets)
		if len(again) != len(first) {
			t.Fatalf("run %d returned %d pairs, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d pair %d = %+v, want %+v", i, j, again[j], first[j])
			}
		}
	}
	want := [][2]uint32{{0, 1}, {0, 2}, {1, 2}}
	for j, p := range first {
		if p.A != want[j][0] || p.B != want[j][1] {
			t.Errorf("pair %d = (%d, %d), want (%d, %d)", j, p.A, p.B, want[j][0], want[j][1])
		}
	}
}

// buildIndex indexes every set under its slice position as file id.
func buildIndex(sets []*winnow.Set) *index.Inverted {
	b := index.NewBuilder()
	for i, s := range sets {
		b.Add(uint32(i), s)
	}
	return b.Build()
}
