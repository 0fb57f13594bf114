package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsEmptyLedger(t *testing.T) {
	ledger, err := Load(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	assert.Empty(t, ledger.LastTradeDay)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	assertion := assert.New(t)
	path := filepath.Join(t.TempDir(), "state.json")

	ledger := NewLedger()
	ledger.MarkTraded("PFE", time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC))
	ledger.MarkTraded("T", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, ledger.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assertion.Equal("2024-03-15", loaded.LastTradeDay["PFE"])
	assertion.Equal("2024-03-10", loaded.LastTradeDay["T"])
}

func TestSaveWritesFlatDateMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	ledger := NewLedger()
	ledger.MarkTraded("AAPL", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, ledger.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"last_trade_day": {"AAPL": "2024-01-02"}}`, string(data))
}

func TestDaysSince(t *testing.T) {
	assertion := assert.New(t)
	today := time.Date(2024, 3, 15, 14, 45, 0, 0, time.UTC)

	ledger := NewLedger()
	assertion.Equal(NeverTraded, ledger.DaysSince("PFE", today))

	ledger.LastTradeDay["PFE"] = "2024-03-12"
	assertion.Equal(3, ledger.DaysSince("PFE", today))

	ledger.LastTradeDay["T"] = "2024-03-15"
	assertion.Equal(0, ledger.DaysSince("T", today))

	ledger.LastTradeDay["AAPL"] = "not-a-date"
	assertion.Equal(NeverTraded, ledger.DaysSince("AAPL", today))
}
