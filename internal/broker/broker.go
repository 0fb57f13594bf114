// Package broker adapts the Alpaca trading and market-data clients to the
// narrow surface the engine consumes.
package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"

	"stockbot/internal/ranking"
)

// historyLookbackDays is the calendar window requested for daily bars.
// Roughly 252 trading days per year, so 400 calendar days comfortably covers
// a 200-bar long window.
const historyLookbackDays = 400

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

type Client struct {
	trading *alpaca.Client
	data    *marketdata.Client
	feed    marketdata.Feed
}

func New(apiKey, apiSecret, baseURL, feed string) *Client {
	return &Client{
		trading: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}),
		data: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
		feed: parseFeed(feed),
	}
}

// DailyCloses returns the last n daily closing prices for symbol, oldest
// first. Fewer than n available bars is reported as insufficient history.
func (c *Client) DailyCloses(ctx context.Context, symbol string, n int) ([]float64, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -historyLookbackDays)

	bars, err := c.data.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.Raw,
		Start:      start,
		End:        end,
		Feed:       c.feed,
	})
	if err != nil {
		slog.Error("fetch daily bars failed", "symbol", symbol, "error", err)
		return nil, fmt.Errorf("get daily bars for %s: %w", symbol, err)
	}

	closes := make([]float64, 0, len(bars))
	for _, bar := range bars {
		closes = append(closes, bar.Close)
	}
	if len(closes) < n {
		return nil, &ranking.InsufficientHistoryError{Symbol: symbol, Need: n, Got: len(closes)}
	}

	slog.Info("daily bars fetched", "symbol", symbol, "bars", len(closes), "want", n)
	return closes[len(closes)-n:], nil
}

// PositionQty returns the held share quantity for symbol, 0 when flat.
func (c *Client) PositionQty(ctx context.Context, symbol string) (int, error) {
	pos, err := c.trading.GetPosition(symbol)
	if err != nil {
		var apiErr *alpaca.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return 0, nil
		}
		slog.Error("fetch position failed", "symbol", symbol, "error", err)
		return 0, fmt.Errorf("get position for %s: %w", symbol, err)
	}
	return int(pos.Qty.IntPart()), nil
}

// Cash returns the account's current cash balance.
func (c *Client) Cash(ctx context.Context) (float64, error) {
	acct, err := c.trading.GetAccount()
	if err != nil {
		slog.Error("fetch account failed", "error", err)
		return 0, fmt.Errorf("get account: %w", err)
	}
	cash, _ := acct.Cash.Float64()
	slog.Info("account fetched", "id", acct.ID, "cash", cash)
	return cash, nil
}

// Clock reports whether the market is open and, when closed, the next open.
func (c *Client) Clock(ctx context.Context) (bool, time.Time, error) {
	clock, err := c.trading.GetClock()
	if err != nil {
		slog.Error("fetch clock failed", "error", err)
		return false, time.Time{}, fmt.Errorf("get clock: %w", err)
	}
	return clock.IsOpen, clock.NextOpen, nil
}

// SubmitOrder places a market day order. Fills are not tracked; the order ID
// is only logged.
func (c *Client) SubmitOrder(ctx context.Context, symbol string, qty int, side Side) error {
	decQty := decimal.NewFromInt(int64(qty))
	order, err := c.trading.PlaceOrder(alpaca.PlaceOrderRequest{
		Symbol:      symbol,
		Qty:         &decQty,
		Side:        alpaca.Side(side),
		Type:        alpaca.Market,
		TimeInForce: alpaca.Day,
	})
	if err != nil {
		slog.Error("place order failed", "side", side, "symbol", symbol, "qty", qty, "error", err)
		return fmt.Errorf("place %s order for %s: %w", side, symbol, err)
	}
	slog.Info("place order success", "order_id", order.ID, "side", side, "symbol", symbol, "qty", qty, "status", order.Status)
	return nil
}

func parseFeed(feed string) marketdata.Feed {
	switch feed {
	case "sip":
		return marketdata.SIP
	default:
		return marketdata.IEX
	}
}
