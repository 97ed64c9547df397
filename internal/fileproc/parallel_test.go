package fileproc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPreservesInputOrder(t *testing.T) {
	items := []int{5, 1, 9, 2, 7, 3}
	results, errs := Map(context.Background(), items, 4,
		func(i int) string { return strconv.Itoa(i) },
		func(_ context.Context, i int) (int, error) { return i * 10, nil },
		nil)

	require.Nil(t, errs)
	assert.Equal(t, []int{50, 10, 90, 20, 70, 30}, results)
}

func TestMapCollectsFailuresWithoutAborting(t *testing.T) {
	items := []string{"a", "bad", "c"}
	results, errs := Map(context.Background(), items, 2,
		func(s string) string { return s },
		func(_ context.Context, s string) (string, error) {
			if s == "bad" {
				return "", errors.New("boom")
			}
			return s + "!", nil
		}, nil)

	require.NotNil(t, errs)
	assert.True(t, errs.HasErrors())
	require.Len(t, errs.Errors, 1)
	assert.Equal(t, "bad", errs.Errors[0].ID)
	assert.Equal(t, "a!", results[0])
	assert.Equal(t, "c!", results[2])
	assert.Empty(t, results[1], "failed item should leave zero value")
}

func TestMapEmptyInput(t *testing.T) {
	results, errs := Map(context.Background(), nil, 0,
		func(i int) string { return "" },
		func(_ context.Context, i int) (int, error) { return i, nil },
		nil)
	assert.Nil(t, results)
	assert.Nil(t, errs)
}

func TestMapCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []int{1, 2, 3}
	_, errs := Map(ctx, items, 1,
		func(i int) string { return strconv.Itoa(i) },
		func(_ context.Context, i int) (int, error) { return i, nil },
		nil)

	require.NotNil(t, errs)
	assert.Len(t, errs.Errors, len(items))
	for _, ie := range errs.Errors {
		assert.ErrorIs(t, ie, context.Canceled)
	}
}

func TestMapProgressCalledPerItem(t *testing.T) {
	var ticks atomic.Int64
	items := make([]int, 25)
	_, errs := Map(context.Background(), items, 8,
		func(int) string { return "" },
		func(_ context.Context, i int) (int, error) { return i, nil },
		func() { ticks.Add(1) })

	require.Nil(t, errs)
	assert.Equal(t, int64(25), ticks.Load())
}

func TestItemErrorsError(t *testing.T) {
	errs := &ItemErrors{}
	assert.Equal(t, "no errors", errs.Error())

	errs.Add("one", errors.New("first"))
	assert.Equal(t, "one: first", errs.Error())

	errs.Add("two", fmt.Errorf("second"))
	assert.Contains(t, errs.Error(), "2 items failed")
}
