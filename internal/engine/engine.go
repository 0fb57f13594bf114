// Package engine runs one full evaluation cycle: rank the watchlist, check
// the market clock, rebalance, submit orders, persist the cooldown ledger.
package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"stockbot/internal/broker"
	"stockbot/internal/config"
	"stockbot/internal/policy"
	"stockbot/internal/ranking"
	"stockbot/internal/state"
)

// Broker is the slice of the brokerage/data client the cycle consumes.
type Broker interface {
	DailyCloses(ctx context.Context, symbol string, n int) ([]float64, error)
	PositionQty(ctx context.Context, symbol string) (int, error)
	Cash(ctx context.Context) (float64, error)
	Clock(ctx context.Context) (bool, time.Time, error)
	SubmitOrder(ctx context.Context, symbol string, qty int, side broker.Side) error
}

type Engine struct {
	cfg       config.Config
	broker    Broker
	ledger    *state.Ledger
	decisions *DecisionLogger
	now       func() time.Time
}

func New(cfg config.Config, brokerClient Broker, ledger *state.Ledger, decisions *DecisionLogger) *Engine {
	return &Engine{
		cfg:       cfg,
		broker:    brokerClient,
		ledger:    ledger,
		decisions: decisions,
		now:       time.Now,
	}
}

// RunCycle executes one ranking-and-rebalance pass. The cooldown ledger is
// persisted before returning on every path that completes ranking, including
// a closed market.
func (e *Engine) RunCycle(ctx context.Context) error {
	today := e.now().UTC()

	cash, err := e.broker.Cash(ctx)
	if err != nil {
		return err
	}
	log.Printf("starting cycle cash=%.2f watchlist=%v", cash, e.cfg.Watchlist)

	ranked, skips, err := ranking.Rank(ctx, e.broker, e.cfg.Watchlist, e.cfg.ShortWindow, e.cfg.LongWindow)
	if err != nil {
		return err
	}
	for _, skip := range skips {
		log.Printf("skipping %s: %v", skip.Symbol, skip.Err)
	}
	e.printRanking(ranked)

	open, nextOpen, err := e.broker.Clock(ctx)
	if err != nil {
		return err
	}
	if !open {
		log.Printf("market closed, no orders this cycle (next open %s)", nextOpen.Format(time.RFC1123))
		return e.ledger.Save(e.cfg.StatePath)
	}

	decisions, err := policy.Rebalance(ctx, policy.Inputs{
		Today:      today,
		MarketOpen: open,
		Cash:       cash,
		Ranked:     ranked,
	}, e.broker, e.ledger, policy.Params{
		SharesPerTrade: e.cfg.SharesPerTrade,
		MaxShares:      e.cfg.MaxShares,
		WaitDays:       e.cfg.WaitDays,
	})
	if err != nil {
		return err
	}

	for _, decision := range decisions {
		record := DecisionRecord{
			Timestamp: e.now().UTC(),
			Action:    decision.Action,
			Symbol:    decision.Symbol,
			Qty:       decision.Qty,
			Score:     decision.Score,
			EstValue:  decision.EstValue,
			Gates:     decision.Gates,
			Result:    "skipped",
		}
		switch decision.Action {
		case policy.Sell, policy.Buy:
			if err := e.submit(ctx, decision); err != nil {
				record.Result = "order_failed"
				e.decisions.Append(record)
				return err
			}
			record.Result = "order_submitted"
		}
		e.decisions.Append(record)
	}

	log.Printf("cycle complete decisions=%d last_trade_day=%v", len(decisions), e.ledger.LastTradeDay)
	return e.ledger.Save(e.cfg.StatePath)
}

func (e *Engine) submit(ctx context.Context, decision policy.Decision) error {
	side := broker.SideBuy
	if decision.Action == policy.Sell {
		side = broker.SideSell
	}
	return e.broker.SubmitOrder(ctx, decision.Symbol, decision.Qty, side)
}

// companies gives display names for a few long-term holdings on the default
// watchlist. Unknown symbols print without the annotation.
var companies = map[string]struct{ Name, Sector string }{
	"PFE":  {Name: "Pfizer Inc.", Sector: "Healthcare"},
	"T":    {Name: "AT&T Inc.", Sector: "Telecommunications"},
	"AAPL": {Name: "Apple Inc.", Sector: "Technology"},
}

func (e *Engine) printRanking(ranked []ranking.ScoreEntry) {
	log.Printf("ranked symbols (best first):")
	for _, entry := range ranked {
		label := entry.Symbol
		if info, ok := companies[entry.Symbol]; ok {
			label = fmt.Sprintf("%s (%s, %s)", entry.Symbol, info.Name, info.Sector)
		}
		log.Printf("- %s: trend=%.4f (short=%.2f, long=%.2f, last=%.2f)",
			label, entry.Score, entry.ShortAvg, entry.LongAvg, entry.LatestPrice)
	}
}
