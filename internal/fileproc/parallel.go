// Package fileproc provides the concurrent map used for bulk ingestion:
// every submission is processed independently on a bounded worker pool, with
// per-item failures collected instead of aborting the batch.
package fileproc

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// DefaultWorkerMultiplier is applied to NumCPU for the worker count.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each item finishes, success or failure.
type ProgressFunc func()

// ItemError records one failed work item.
type ItemError struct {
	ID  string
	Err error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("%s: %v", e.ID, e.Err)
}

func (e ItemError) Unwrap() error {
	return e.Err
}

// ItemErrors collects failures across a batch. Safe for concurrent Add.
type ItemErrors struct {
	mu     sync.Mutex
	Errors []ItemError
}

// Add appends a failure.
func (e *ItemErrors) Add(id string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ItemError{ID: id, Err: err})
	e.mu.Unlock()
}

// HasErrors reports whether any item failed.
func (e *ItemErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

func (e *ItemErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	default:
		return fmt.Sprintf("%d items failed (first: %v)", len(e.Errors), e.Errors[0])
	}
}

// Map processes items in parallel and returns results in input order.
// Failed items leave their slot as the zero value and are reported through
// the returned ItemErrors (nil when everything succeeded). A cancelled
// context stops scheduling new work; ctx.Err() is recorded for every item
// not yet started.
func Map[T, R any](ctx context.Context, items []T, maxWorkers int, idOf func(T) string, fn func(context.Context, T) (R, error), onProgress ProgressFunc) ([]R, *ItemErrors) {
	if len(items) == 0 {
		return nil, nil
	}
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	results := make([]R, len(items))
	errs := &ItemErrors{}

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for i, item := range items {
		p.Go(func() {
			if onProgress != nil {
				defer onProgress()
			}
			if err := ctx.Err(); err != nil {
				errs.Add(idOf(item), err)
				return
			}
			r, err := fn(ctx, item)
			if err != nil {
				errs.Add(idOf(item), err)
				return
			}
			results[i] = r
		})
	}
	p.Wait()

	if !errs.HasErrors() {
		return results, nil
	}
	return results, errs
}
