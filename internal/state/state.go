// Package state persists the per-symbol cooldown ledger between runs.
package state

import (
	"encoding/json"
	"math"
	"os"
	"time"
)

const dayFormat = "2006-01-02"

// NeverTraded is returned by DaysSince for symbols with no recorded trade;
// it is larger than any wait-days setting.
const NeverTraded = math.MaxInt32

// Ledger maps each symbol to the UTC calendar day of its last trade.
// The on-disk form is a flat {"last_trade_day": {symbol: "YYYY-MM-DD"}}
// JSON document.
type Ledger struct {
	LastTradeDay map[string]string `json:"last_trade_day"`
}

func NewLedger() *Ledger {
	return &Ledger{LastTradeDay: map[string]string{}}
}

// Load reads the ledger from path. A missing file yields an empty ledger.
func Load(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewLedger(), nil
		}
		return nil, err
	}
	var ledger Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, err
	}
	if ledger.LastTradeDay == nil {
		ledger.LastTradeDay = map[string]string{}
	}
	return &ledger, nil
}

func (l *Ledger) Save(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// MarkTraded records day as the symbol's last trade day.
func (l *Ledger) MarkTraded(symbol string, day time.Time) {
	l.LastTradeDay[symbol] = day.UTC().Format(dayFormat)
}

// DaysSince returns the number of calendar days between the symbol's last
// trade day and today, or NeverTraded when no trade is recorded. Malformed
// entries are treated as never traded.
func (l *Ledger) DaysSince(symbol string, today time.Time) int {
	raw, ok := l.LastTradeDay[symbol]
	if !ok {
		return NeverTraded
	}
	last, err := time.ParseInLocation(dayFormat, raw, time.UTC)
	if err != nil {
		return NeverTraded
	}
	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(todayMidnight.Sub(last).Hours() / 24)
}
