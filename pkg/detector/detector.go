// Package detector owns the run-scoped corpus: files are ingested through
// the tokenize/shingle/hash/winnow pipeline, indexed once, compared through
// the inverted index, and rolled up to assignment-level suspicious pairs.
// All corpus state lives on a Corpus value with an explicit Reset boundary;
// nothing is process-global.
package detector

import (
	"context"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/zeebo/blake3"

	"github.com/Rudra2712/Plagiarism-detection-system/internal/fileproc"
	"github.com/Rudra2712/Plagiarism-detection-system/pkg/config"
	"github.com/Rudra2712/Plagiarism-detection-system/pkg/index"
	"github.com/Rudra2712/Plagiarism-detection-system/pkg/preprocess"
	"github.com/Rudra2712/Plagiarism-detection-system/pkg/shingle"
	"github.com/Rudra2712/Plagiarism-detection-system/pkg/similarity"
	"github.com/Rudra2712/Plagiarism-detection-system/pkg/token"
	"github.com/Rudra2712/Plagiarism-detection-system/pkg/winnow"
)

// Corpus is one run's worth of file records. Ingest may run concurrently
// from many goroutines; Run snapshots the records and never mutates one
// after it reaches StateIndexed.
type Corpus struct {
	params config.DetectConfig
	log    zerolog.Logger

	mu      sync.Mutex
	records []*FileRecord
}

// Option configures a Corpus.
type Option func(*Corpus)

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Corpus) {
		c.log = log
	}
}

// New validates the detection parameters and returns an empty corpus.
// Invalid parameters abort here, before any work starts.
func New(params config.DetectConfig, opts ...Option) (*Corpus, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	c := &Corpus{
		params: params,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Params returns the validated detection parameters.
func (c *Corpus) Params() config.DetectConfig {
	return c.params
}

// Submission is one file handed to IngestAll.
type Submission struct {
	Assignment string
	FileID     string
	Hint       string
	Raw        []byte
}

// Ingest runs the per-file pipeline for one submission and records the
// result. Undecodable content fails the single file (recorded and reported
// at Run, never aborting the batch); empty or short files proceed normally
// and simply contribute no fingerprints.
func (c *Corpus) Ingest(assignment, fileID string, raw []byte, hint string) (*FileRecord, error) {
	rec := &FileRecord{
		Assignment: assignment,
		ID:         fileID,
		Hint:       hint,
		State:      StateRaw,
	}

	if !utf8.Valid(raw) {
		rec.State = StateFailed
		rec.Err = &DecodeError{File: fileID, Reason: "content is not valid UTF-8"}
		c.append(rec)
		c.log.Warn().Str("file", fileID).Msg("undecodable submission excluded")
		return rec, rec.Err
	}

	tokens := preprocess.Preprocess(string(raw), hint)
	rec.State = StateTokenized
	rec.TokenCount = len(tokens)
	rec.Digest = blake3.Sum256([]byte(token.Join(tokens)))

	k := c.params.K
	rec.ShingleCount = shingleCount(len(tokens), k)
	rec.State = StateShingled

	hashes := shingle.HashAll(tokens, k)
	rec.State = StateHashed

	fps := winnow.Winnow(hashes, c.params.W)
	rec.Fingerprints = winnow.NewSet(fps)
	rec.State = StateFingerprinted

	c.append(rec)
	c.log.Debug().
		Str("assignment", assignment).
		Str("file", fileID).
		Int("tokens", rec.TokenCount).
		Int("shingles", rec.ShingleCount).
		Int("fingerprints", rec.Fingerprints.Len()).
		Msg("file ingested")
	return rec, nil
}

func shingleCount(tokens, k int) int {
	if tokens < k {
		return 0
	}
	return tokens - k + 1
}

func (c *Corpus) append(rec *FileRecord) {
	c.mu.Lock()
	c.records = append(c.records, rec)
	c.mu.Unlock()
}

// IngestAll ingests submissions in parallel. Per-file decode failures are
// recorded in the corpus, not returned; the only error is a cancelled
// context, in which case the corpus should be discarded via Reset.
func (c *Corpus) IngestAll(ctx context.Context, subs []Submission, onProgress fileproc.ProgressFunc) error {
	// Decode failures are recorded on the corpus by Ingest itself, so the
	// batch error collection is not consulted here.
	fileproc.Map(ctx, subs, 0,
		func(s Submission) string { return s.FileID },
		func(ctx context.Context, s Submission) (struct{}, error) {
			_, err := c.Ingest(s.Assignment, s.FileID, s.Raw, s.Hint)
			return struct{}{}, err
		}, onProgress)
	return ctx.Err()
}

// Len returns the number of ingested records, failed ones included.
func (c *Corpus) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Reset discards all run-scoped state. The corpus can be reused afterwards
// with the same parameters.
func (c *Corpus) Reset() {
	c.mu.Lock()
	c.records = nil
	c.mu.Unlock()
	c.log.Debug().Msg("corpus reset")
}

// Run builds the inverted index over every fingerprinted record, scores all
// candidate pairs, and aggregates to assignment level. An empty corpus
// yields an empty result, not an error. Cancellation makes the run return
// ctx.Err() with all partial state discarded; there is no partial result.
func (c *Corpus) Run(ctx context.Context) (*RunResult, error) {
	records := c.snapshot()

	result := &RunResult{
		SuspiciousPairs: make([][2]string, 0),
		Details:         make([]PairDetail, 0),
	}

	var ok []*FileRecord
	for _, rec := range records {
		if rec.Failed() {
			result.Failures = append(result.Failures, FileFailure{File: rec.ID, Reason: rec.Err.Error()})
			continue
		}
		ok = append(ok, rec)
	}
	result.Summary.FilesIngested = len(ok)
	result.Summary.FilesFailed = len(result.Failures)

	if len(ok) == 0 {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Deterministic file ids regardless of ingest order.
	sort.Slice(ok, func(i, j int) bool {
		if ok[i].Assignment != ok[j].Assignment {
			return ok[i].Assignment < ok[j].Assignment
		}
		return ok[i].ID < ok[j].ID
	})

	builder := index.NewBuilder()
	sets := make([]*winnow.Set, len(ok))
	for i, rec := range ok {
		sets[i] = rec.Fingerprints
		builder.Add(uint32(i), rec.Fingerprints)
		rec.State = StateIndexed
	}
	ix := builder.Build()
	c.log.Debug().Int("files", len(ok)).Int("buckets", ix.Len()).Msg("inverted index built")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pairs := similarity.Compare(ix, sets)
	result.Summary.ComparedPairs = len(pairs)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.aggregate(result, ok, pairs)
	return result, nil
}

func (c *Corpus) snapshot() []*FileRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	records := make([]*FileRecord, len(c.records))
	copy(records, c.records)
	return records
}
