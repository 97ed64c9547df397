package detector

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Rudra2712/Plagiarism-detection-system/pkg/similarity"
)

type pairKey struct{ a, b uint32 }

// aggregate rolls file-pair scores up to assignment level. An assignment
// pair is suspicious when the fraction of files on either side with at
// least one similar counterpart on the other side meets the assignment
// threshold; the check is directional and either direction suffices.
func (c *Corpus) aggregate(result *RunResult, records []*FileRecord, pairs []similarity.Pair) {
	scores := make(map[pairKey]float64, len(pairs))
	for _, p := range pairs {
		scores[pairKey{p.A, p.B}] = p.Jaccard
		if p.Similar(c.params.FileThreshold) {
			result.Summary.SimilarPairs++
		}
		if records[p.A].Digest == records[p.B].Digest {
			result.Summary.ExactCopies++
		}
	}

	// Files grouped by assignment, both already in sorted order because
	// records are sorted by (assignment, id).
	var names []string
	files := make(map[string][]uint32)
	for i, rec := range records {
		if _, seen := files[rec.Assignment]; !seen {
			names = append(names, rec.Assignment)
		}
		files[rec.Assignment] = append(files[rec.Assignment], uint32(i))
	}
	result.Summary.Assignments = len(names)

	score := func(a, b uint32) float64 {
		if a > b {
			a, b = b, a
		}
		return scores[pairKey{a, b}] // absent pairs share nothing: 0
	}

	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			nameA, nameB := names[i], names[j]
			filesA, filesB := files[nameA], files[nameB]

			bestAToB := bestMatches(filesA, filesB, score)
			bestBToA := bestMatches(filesB, filesA, score)

			suspicious := c.fractionMatched(bestAToB) >= c.params.AssignmentThreshold ||
				c.fractionMatched(bestBToA) >= c.params.AssignmentThreshold
			if suspicious {
				result.SuspiciousPairs = append(result.SuspiciousPairs, [2]string{nameA, nameB})
				c.log.Info().Str("a", nameA).Str("b", nameB).Msg("suspicious assignment pair")
			}

			result.Details = append(result.Details, PairDetail{
				Pair:    [2]string{nameA, nameB},
				TopAToB: c.topMatches(records, bestAToB),
				TopBToA: c.topMatches(records, bestBToA),
			})
		}
	}

	summarizeScores(&result.Summary, pairs)
}

// bestMatch pairs one source file with its best-scoring counterpart.
type bestMatch struct {
	src, dst uint32
	score    float64
}

// bestMatches finds, for every file in src, the destination file with the
// highest Jaccard score. Earlier destination files win ties, which is
// deterministic because destinations are sorted by (assignment, id).
func bestMatches(src, dst []uint32, score func(a, b uint32) float64) []bestMatch {
	if len(dst) == 0 {
		return nil
	}
	out := make([]bestMatch, 0, len(src))
	for _, fa := range src {
		best := bestMatch{src: fa, dst: dst[0], score: score(fa, dst[0])}
		for _, fb := range dst[1:] {
			if s := score(fa, fb); s > best.score {
				best = bestMatch{src: fa, dst: fb, score: s}
			}
		}
		out = append(out, best)
	}
	return out
}

// fractionMatched is the share of source files whose best match meets the
// file threshold. The boundary counts as a match.
func (c *Corpus) fractionMatched(best []bestMatch) float64 {
	if len(best) == 0 {
		return 0
	}
	matched := 0
	for _, bm := range best {
		if bm.score >= c.params.FileThreshold {
			matched++
		}
	}
	return float64(matched) / float64(len(best))
}

// topMatches keeps the strongest TopMatches entries, highest score first,
// ties broken by source file id.
func (c *Corpus) topMatches(records []*FileRecord, best []bestMatch) []Match {
	ranked := make([]bestMatch, len(best))
	copy(ranked, best)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return records[ranked[i].src].ID < records[ranked[j].src].ID
	})
	if len(ranked) > c.params.TopMatches {
		ranked = ranked[:c.params.TopMatches]
	}
	matches := make([]Match, 0, len(ranked))
	for _, bm := range ranked {
		matches = append(matches, Match{
			Left:          records[bm.src].ID,
			Right:         records[bm.dst].ID,
			SimilarityPct: bm.score * 100,
		})
	}
	return matches
}

func summarizeScores(s *Summary, pairs []similarity.Pair) {
	if len(pairs) == 0 {
		return
	}
	scores := make([]float64, len(pairs))
	for i, p := range pairs {
		scores[i] = p.Jaccard
	}
	sort.Float64s(scores)
	s.MeanSimilarity = stat.Mean(scores, nil)
	s.P50Similarity = stat.Quantile(0.50, stat.Empirical, scores, nil)
	s.P95Similarity = stat.Quantile(0.95, stat.Empirical, scores, nil)
}
