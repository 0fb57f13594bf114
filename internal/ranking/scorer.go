// Package ranking scores watchlist symbols by moving-average trend and
// produces a descending ranking, best trend first.
package ranking

import "fmt"

// ScoreEntry is the scored snapshot of one symbol for one evaluation cycle.
// Score is the sort key; the averages and latest close ride along for
// display and decisioning.
type ScoreEntry struct {
	Symbol      string
	Score       float64
	ShortAvg    float64
	LongAvg     float64
	LatestPrice float64
}

// InsufficientHistoryError reports a symbol with too few daily bars to score.
type InsufficientHistoryError struct {
	Symbol string
	Need   int
	Got    int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("not enough daily bars for %s: need %d, got %d", e.Symbol, e.Need, e.Got)
}

// Score computes the trend score for one symbol from its daily closes,
// oldest first. The score is SMA(shortWindow) minus SMA(longWindow), both
// taken over the most recent closes; a positive score means recent momentum
// above the longer baseline.
func Score(symbol string, closes []float64, shortWindow, longWindow int) (ScoreEntry, error) {
	if len(closes) < longWindow {
		return ScoreEntry{}, &InsufficientHistoryError{Symbol: symbol, Need: longWindow, Got: len(closes)}
	}
	longCloses := closes[len(closes)-longWindow:]
	shortCloses := longCloses[len(longCloses)-shortWindow:]

	longAvg := mean(longCloses)
	shortAvg := mean(shortCloses)

	return ScoreEntry{
		Symbol:      symbol,
		Score:       shortAvg - longAvg,
		ShortAvg:    shortAvg,
		LongAvg:     longAvg,
		LatestPrice: closes[len(closes)-1],
	}, nil
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
