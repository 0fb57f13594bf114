package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	closes map[string][]float64
	err    map[string]error
	calls  []string
}

func (f *fakeFetcher) DailyCloses(_ context.Context, symbol string, n int) ([]float64, error) {
	f.calls = append(f.calls, symbol)
	if err, ok := f.err[symbol]; ok {
		return nil, err
	}
	closes := f.closes[symbol]
	if len(closes) < n {
		return nil, &InsufficientHistoryError{Symbol: symbol, Need: n, Got: len(closes)}
	}
	return closes[len(closes)-n:], nil
}

func TestRankOrdersBestTrendFirst(t *testing.T) {
	assertion := assert.New(t)

	fetcher := &fakeFetcher{closes: map[string][]float64{
		"FLAT": {10, 10, 10, 10, 10},
		"UP":   {1, 2, 3, 4, 5},
		"DOWN": {5, 4, 3, 2, 1},
	}}

	ranked, skips, err := Rank(context.Background(), fetcher, []string{"FLAT", "UP", "DOWN"}, 2, 5)
	require.NoError(t, err)
	assertion.Empty(skips)

	require.Len(t, ranked, 3)
	assertion.Equal("UP", ranked[0].Symbol)
	assertion.Equal("FLAT", ranked[1].Symbol)
	assertion.Equal("DOWN", ranked[2].Symbol)
	assertion.Equal([]string{"FLAT", "UP", "DOWN"}, fetcher.calls)
}

func TestRankSkipsInsufficientHistory(t *testing.T) {
	assertion := assert.New(t)

	fetcher := &fakeFetcher{closes: map[string][]float64{
		"UP":  {1, 2, 3, 4, 5},
		"NEW": {9, 9},
	}}

	ranked, skips, err := Rank(context.Background(), fetcher, []string{"NEW", "UP"}, 2, 5)
	require.NoError(t, err)

	require.Len(t, ranked, 1)
	assertion.Equal("UP", ranked[0].Symbol)
	require.Len(t, skips, 1)
	assertion.Equal("NEW", skips[0].Symbol)

	var insufficient *InsufficientHistoryError
	assertion.ErrorAs(skips[0].Err, &insufficient)
}

func TestRankAbortsOnUpstreamError(t *testing.T) {
	upstream := errors.New("data provider unavailable")
	fetcher := &fakeFetcher{
		closes: map[string][]float64{"UP": {1, 2, 3, 4, 5}},
		err:    map[string]error{"BAD": upstream},
	}

	_, _, err := Rank(context.Background(), fetcher, []string{"UP", "BAD"}, 2, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream)
}

func TestRankIsDeterministic(t *testing.T) {
	fetcher := &fakeFetcher{closes: map[string][]float64{
		"A": {1, 2, 3, 4, 5},
		"B": {2, 2, 2, 4, 6},
		"C": {3, 3, 3, 3, 3},
	}}
	symbols := []string{"A", "B", "C"}

	first, _, err := Rank(context.Background(), fetcher, symbols, 2, 5)
	require.NoError(t, err)
	second, _, err := Rank(context.Background(), fetcher, symbols, 2, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
