package detector

import (
	"fmt"

	"github.com/Rudra2712/Plagiarism-detection-system/pkg/winnow"
)

// State tracks a file through the per-file pipeline.
type State uint8

const (
	StateRaw State = iota
	StateTokenized
	StateShingled
	StateHashed
	StateFingerprinted
	StateIndexed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRaw:
		return "raw"
	case StateTokenized:
		return "tokenized"
	case StateShingled:
		return "shingled"
	case StateHashed:
		return "hashed"
	case StateFingerprinted:
		return "fingerprinted"
	case StateIndexed:
		return "indexed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FileRecord owns one submitted file's derived data for the duration of a
// run. Assignment and ID are opaque caller-supplied strings. Records reach
// StateIndexed during Run, or StateFailed at ingest for undecodable input;
// short or empty files proceed normally with empty sequences.
type FileRecord struct {
	Assignment string
	ID         string
	Hint       string

	State        State
	Err          error
	TokenCount   int
	ShingleCount int
	Fingerprints *winnow.Set
	// Digest is a BLAKE3 digest of the normalized token stream; equal
	// digests mean byte-identical token streams.
	Digest [32]byte
}

// Failed reports whether this record was rejected at ingest.
func (r *FileRecord) Failed() bool {
	return r.State == StateFailed
}

// DecodeError marks a single file whose content could not be decoded. The
// file is excluded and reported; the run is not aborted.
type DecodeError struct {
	File   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.File, e.Reason)
}
