package detector

// Match is one reported file-to-file similarity, direction left to right.
// SimilarityPct is the Jaccard score scaled to [0,100].
type Match struct {
	Left          string  `json:"left"`
	Right         string  `json:"right"`
	SimilarityPct float64 `json:"similarityPct"`
}

// PairDetail carries the top matches for one assignment pair, both
// directions.
type PairDetail struct {
	Pair    [2]string `json:"pair"`
	TopAToB []Match   `json:"topAtoB"`
	TopBToA []Match   `json:"topBtoA"`
}

// FileFailure reports a file excluded from the run.
type FileFailure struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Summary aggregates run-level statistics. ComparedPairs counts candidate
// file pairs that shared at least one fingerprint bucket; everything else is
// implicitly dissimilar. ExactCopies counts file pairs whose normalized
// token streams are byte-identical.
type Summary struct {
	FilesIngested  int     `json:"files_ingested"`
	FilesFailed    int     `json:"files_failed"`
	Assignments    int     `json:"assignments"`
	ComparedPairs  int     `json:"compared_pairs"`
	SimilarPairs   int     `json:"similar_pairs"`
	ExactCopies    int     `json:"exact_copies"`
	MeanSimilarity float64 `json:"mean_similarity"`
	P50Similarity  float64 `json:"p50_similarity"`
	P95Similarity  float64 `json:"p95_similarity"`
}

// RunResult is the full outcome of one detection run. Ordering of every
// slice is deterministic for identical corpora and parameters.
type RunResult struct {
	SuspiciousPairs [][2]string   `json:"suspiciousPairs"`
	Details         []PairDetail  `json:"details"`
	Failures        []FileFailure `json:"failures,omitempty"`
	Summary         Summary       `json:"summary"`
}
