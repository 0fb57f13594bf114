package ranking

import (
	"context"
	"errors"
	"fmt"
)

// CloseFetcher supplies daily closing prices, oldest first. Implementations
// return *InsufficientHistoryError when fewer than n bars exist.
type CloseFetcher interface {
	DailyCloses(ctx context.Context, symbol string, n int) ([]float64, error)
}

// Skip records a symbol left out of a ranking because it could not be scored.
type Skip struct {
	Symbol string
	Err    error
}

// Rank scores every watchlist symbol and returns the ranking best-trend
// first. Symbols are fetched and inserted in watchlist order; the ranking is
// the score tree's descending traversal. A symbol with insufficient history
// is reported as a Skip and the pass continues; any other fetch failure
// aborts the whole pass.
func Rank(ctx context.Context, fetcher CloseFetcher, symbols []string, shortWindow, longWindow int) ([]ScoreEntry, []Skip, error) {
	tree := NewTree[ScoreEntry]()
	var skips []Skip

	for _, symbol := range symbols {
		closes, err := fetcher.DailyCloses(ctx, symbol, longWindow)
		if err != nil {
			var insufficient *InsufficientHistoryError
			if errors.As(err, &insufficient) {
				skips = append(skips, Skip{Symbol: symbol, Err: err})
				continue
			}
			return nil, nil, fmt.Errorf("fetch closes for %s: %w", symbol, err)
		}
		entry, err := Score(symbol, closes, shortWindow, longWindow)
		if err != nil {
			var insufficient *InsufficientHistoryError
			if errors.As(err, &insufficient) {
				skips = append(skips, Skip{Symbol: symbol, Err: err})
				continue
			}
			return nil, nil, err
		}
		tree.Insert(entry.Score, entry)
	}

	return tree.DescendingEntries(), skips, nil
}
