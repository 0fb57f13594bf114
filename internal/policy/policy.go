// Package policy turns a trend ranking into sell and buy decisions, gated by
// cooldown, position-size, and cash constraints.
package policy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stockbot/internal/ranking"
	"stockbot/internal/state"
)

type Action string

const (
	Sell  Action = "SELL"
	Buy   Action = "BUY"
	NoBuy Action = "NO_BUY"
)

// BuyGates are the three buy-pass conditions, all evaluated and reported
// even when the first one already fails.
type BuyGates struct {
	WaitedEnough bool `json:"waited_enough"`
	UnderMax     bool `json:"under_max"`
	CanAfford    bool `json:"can_afford"`
}

// Decision is one emitted action for one symbol. Qty is 0 for NO_BUY, and
// Gates is set only on buy-pass decisions.
type Decision struct {
	Action   Action    `json:"action"`
	Symbol   string    `json:"symbol"`
	Qty      int       `json:"qty"`
	EstValue float64   `json:"est_value"`
	Score    float64   `json:"score"`
	Gates    *BuyGates `json:"gates,omitempty"`
}

// PositionReader reports the currently held share quantity, 0 when flat.
type PositionReader interface {
	PositionQty(ctx context.Context, symbol string) (int, error)
}

type Params struct {
	SharesPerTrade int
	MaxShares      int
	WaitDays       int
}

// Inputs is everything one rebalance pass consumes. Cash is the starting
// running-cash value; the pass tracks the effect of its own queued orders
// and never re-reads the account.
type Inputs struct {
	Today      time.Time
	MarketOpen bool
	Cash       float64
	Ranked     []ranking.ScoreEntry
}

// Rebalance runs one sell pass then one buy pass over the ranking and
// returns the decisions in emission order, sells strictly first. The ledger
// is marked for every executed side. When the market is closed no decisions
// are produced at all.
func Rebalance(ctx context.Context, in Inputs, positions PositionReader, ledger *state.Ledger, p Params) ([]Decision, error) {
	if !in.MarketOpen {
		slog.Info("market closed, skipping rebalance")
		return nil, nil
	}

	cash := in.Cash
	var decisions []Decision

	// Sell pass: dump every held position whose short average has fallen
	// below its long average, regardless of the scalar score sign.
	for _, entry := range in.Ranked {
		qty, err := positions.PositionQty(ctx, entry.Symbol)
		if err != nil {
			return nil, fmt.Errorf("position for %s: %w", entry.Symbol, err)
		}
		if qty <= 0 {
			continue
		}
		if entry.ShortAvg >= entry.LongAvg {
			continue
		}
		proceeds := float64(qty) * entry.LatestPrice
		cash += proceeds
		ledger.MarkTraded(entry.Symbol, in.Today)
		slog.Info("sell", "symbol", entry.Symbol, "qty", qty, "est_proceeds", proceeds)
		decisions = append(decisions, Decision{
			Action:   Sell,
			Symbol:   entry.Symbol,
			Qty:      qty,
			EstValue: proceeds,
			Score:    entry.Score,
		})
	}

	// Buy pass: same ranking order, so when cash runs short the strongest
	// trends are funded first.
	for _, entry := range in.Ranked {
		if entry.Score <= 0 {
			continue
		}
		qty, err := positions.PositionQty(ctx, entry.Symbol)
		if err != nil {
			return nil, fmt.Errorf("position for %s: %w", entry.Symbol, err)
		}
		cost := float64(p.SharesPerTrade) * entry.LatestPrice
		waited := ledger.DaysSince(entry.Symbol, in.Today)
		gates := BuyGates{
			WaitedEnough: waited >= p.WaitDays,
			UnderMax:     qty+p.SharesPerTrade <= p.MaxShares,
			CanAfford:    cash >= cost,
		}

		if gates.WaitedEnough && gates.UnderMax && gates.CanAfford {
			cash -= cost
			ledger.MarkTraded(entry.Symbol, in.Today)
			slog.Info("buy", "symbol", entry.Symbol, "qty", p.SharesPerTrade, "est_cost", cost)
			decisions = append(decisions, Decision{
				Action:   Buy,
				Symbol:   entry.Symbol,
				Qty:      p.SharesPerTrade,
				EstValue: cost,
				Score:    entry.Score,
			})
			continue
		}

		slog.Info("no buy", "symbol", entry.Symbol,
			"waited_days", waited, "need_days", p.WaitDays,
			"under_max", gates.UnderMax, "position", qty,
			"can_afford", gates.CanAfford, "cash", cash)
		decisions = append(decisions, Decision{
			Action: NoBuy,
			Symbol: entry.Symbol,
			Score:  entry.Score,
			Gates:  &gates,
		})
	}

	return decisions, nil
}
