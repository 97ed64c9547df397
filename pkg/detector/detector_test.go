package detector

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Rudra2712/Plagiarism-detection-system/pkg/config"
)

func params() config.DetectConfig {
	return config.DetectConfig{
		K:                   5,
		W:                   4,
		FileThreshold:       0.40,
		AssignmentThreshold: 0.40,
		TopMatches:          5,
	}
}

const loopSrc = `
int total = 0;
for (int i = 0; i < n; i = i + 1) {
    total = total + i;
}
return total;
`

// loopSrcRenamed is loopSrc with every identifier renamed.
const loopSrcRenamed = `
int sum = 0;
for (int idx = 0; idx < count; idx = idx + 1) {
    sum = sum + idx;
}
return sum;
`

const otherSrc = `
while (depth > 0) {
    depth = depth / 2;
    log(depth);
}
if (depth == 0) {
    reset();
}
switch (mode) {
    case 1: break;
    default: break;
}
`

func TestNewRejectsInvalidParams(t *testing.T) {
	bad := params()
	bad.K = 0
	_, err := New(bad)
	var cerr *config.ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("New with k=0 returned %v, want *config.ConfigError", err)
	}
	if cerr.Field != "detect.k" {
		t.Errorf("ConfigError.Field = %q, want %q", cerr.Field, "detect.k")
	}
}

func TestRunFlagsRenamedCopy(t *testing.T) {
	c, err := New(params())
	if err != nil {
		t.Fatal(err)
	}
	mustIngest(t, c, "alice", "alice/main.c", loopSrc)
	mustIngest(t, c, "bob", "bob/main.c", loopSrcRenamed)

	result, err := c.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := [][2]string{{"alice", "bob"}}
	if !reflect.DeepEqual(result.SuspiciousPairs, want) {
		t.Fatalf("SuspiciousPairs = %v, want %v", result.SuspiciousPairs, want)
	}
	if len(result.Details) != 1 {
		t.Fatalf("len(Details) = %d, want 1", len(result.Details))
	}
	d := result.Details[0]
	if d.Pair != [2]string{"alice", "bob"} {
		t.Errorf("Details[0].Pair = %v, want [alice bob]", d.Pair)
	}
	if len(d.TopAToB) != 1 || d.TopAToB[0].SimilarityPct != 100 {
		t.Errorf("TopAToB = %+v, want one match at 100%%", d.TopAToB)
	}
	if len(d.TopBToA) != 1 || d.TopBToA[0].Left != "bob/main.c" || d.TopBToA[0].Right != "alice/main.c" {
		t.Errorf("TopBToA = %+v, want bob/main.c matched to alice/main.c", d.TopBToA)
	}
	// Identical normalized token streams count as an exact copy.
	if result.Summary.ExactCopies != 1 {
		t.Errorf("Summary.ExactCopies = %d, want 1", result.Summary.ExactCopies)
	}
}

func TestRunPartialOverlapMeetsAssignmentThreshold(t *testing.T) {
	c, err := New(params())
	if err != nil {
		t.Fatal(err)
	}
	// One of alice's two files is a renamed copy of bob's; 1/2 = 0.50 meets
	// the 0.40 assignment threshold.
	mustIngest(t, c, "alice", "alice/a1.c", loopSrc)
	mustIngest(t, c, "alice", "alice/a2.c", otherSrc)
	mustIngest(t, c, "bob", "bob/b1.c", loopSrcRenamed)

	result, err := c.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := [][2]string{{"alice", "bob"}}
	if !reflect.DeepEqual(result.SuspiciousPairs, want) {
		t.Fatalf("SuspiciousPairs = %v, want %v", result.SuspiciousPairs, want)
	}
	if result.Summary.Assignments != 2 {
		t.Errorf("Summary.Assignments = %d, want 2", result.Summary.Assignments)
	}
}

func TestRunUnrelatedAssignmentsNotFlagged(t *testing.T) {
	c, err := New(params())
	if err != nil {
		t.Fatal(err)
	}
	mustIngest(t, c, "alice", "alice/main.c", loopSrc)
	mustIngest(t, c, "bob", "bob/main.c", otherSrc)

	result, err := c.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.SuspiciousPairs) != 0 {
		t.Errorf("SuspiciousPairs = %v, want none", result.SuspiciousPairs)
	}
	// Details carry the pair regardless of suspicion.
	if len(result.Details) != 1 {
		t.Errorf("len(Details) = %d, want 1", len(result.Details))
	}
}

func TestDecodeFailureDoesNotAbortRun(t *testing.T) {
	c, err := New(params())
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Ingest("alice", "alice/bad.c", []byte{0xff, 0xfe, 0x00}, "c")
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("Ingest of invalid UTF-8 returned %v, want *DecodeError", err)
	}
	mustIngest(t, c, "alice", "alice/good.c", loopSrc)
	mustIngest(t, c, "bob", "bob/main.c", loopSrcRenamed)

	result, err := c.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Summary.FilesFailed != 1 || result.Summary.FilesIngested != 2 {
		t.Errorf("failed/ingested = %d/%d, want 1/2", result.Summary.FilesFailed, result.Summary.FilesIngested)
	}
	if len(result.Failures) != 1 || result.Failures[0].File != "alice/bad.c" {
		t.Errorf("Failures = %+v, want alice/bad.c", result.Failures)
	}
	if len(result.SuspiciousPairs) != 1 {
		t.Errorf("SuspiciousPairs = %v, want the surviving files still compared", result.SuspiciousPairs)
	}
}

func TestShortFileContributesNoFingerprints(t *testing.T) {
	c, err := New(params())
	if err != nil {
		t.Fatal(err)
	}
	rec, err := c.Ingest("alice", "alice/tiny.c", []byte("int x;"), "c")
	if err != nil {
		t.Fatal(err)
	}
	if rec.ShingleCount != 0 || rec.Fingerprints.Len() != 0 {
		t.Errorf("shingles = %d, fingerprints = %d, want 0 and 0", rec.ShingleCount, rec.Fingerprints.Len())
	}
	mustIngest(t, c, "bob", "bob/main.c", loopSrc)

	result, err := c.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Summary.ComparedPairs != 0 || len(result.SuspiciousPairs) != 0 {
		t.Errorf("compared = %d, suspicious = %v, want no pairs", result.Summary.ComparedPairs, result.SuspiciousPairs)
	}
}

func TestRunEmptyCorpus(t *testing.T) {
	c, err := New(params())
	if err != nil {
		t.Fatal(err)
	}
	result, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run on empty corpus returned error %v", err)
	}
	if len(result.SuspiciousPairs) != 0 || len(result.Details) != 0 {
		t.Errorf("empty corpus result = %+v, want empty", result)
	}
}

func TestResetClearsCorpus(t *testing.T) {
	c, err := New(params())
	if err != nil {
		t.Fatal(err)
	}
	mustIngest(t, c, "alice", "alice/main.c", loopSrc)
	if c.Len() != 1 {
		t.Fatalf("Len = %d before reset, want 1", c.Len())
	}
	c.Reset()
	if c.Len() != 0 {
		t.Errorf("Len = %d after reset, want 0", c.Len())
	}
	result, err := c.Run(context.Background())
	if err != nil || len(result.SuspiciousPairs) != 0 {
		t.Errorf("Run after reset = (%+v, %v), want empty result", result, err)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	c, err := New(params())
	if err != nil {
		t.Fatal(err)
	}
	mustIngest(t, c, "alice", "alice/main.c", loopSrc)
	mustIngest(t, c, "bob", "bob/main.c", loopSrcRenamed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := c.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run with cancelled context returned %v, want context.Canceled", err)
	}
	if result != nil {
		t.Errorf("cancelled Run returned a partial result: %+v", result)
	}
}

func TestRunDeterministicAcrossIngestOrder(t *testing.T) {
	run := func(order []int) *RunResult {
		c, err := New(params())
		if err != nil {
			t.Fatal(err)
		}
		subs := []struct{ assignment, id, src string }{
			{"alice", "alice/a1.c", loopSrc},
			{"alice", "alice/a2.c", otherSrc},
			{"bob", "bob/b1.c", loopSrcRenamed},
			{"carol", "carol/c1.c", otherSrc},
		}
		for _, i := range order {
			mustIngest(t, c, subs[i].assignment, subs[i].id, subs[i].src)
		}
		result, err := c.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return result
	}

	first := run([]int{0, 1, 2, 3})
	second := run([]int{3, 1, 0, 2})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ across ingest order:\n%+v\n%+v", first, second)
	}
}

func mustIngest(t *testing.T, c *Corpus, assignment, fileID, src string) {
	t.Helper()
	if _, err := c.Ingest(assignment, fileID, []byte(src), "c"); err != nil {
		t.Fatalf("Ingest(%s) failed: %v", fileID, err)
	}
}
