// Package config loads settings from flags, the environment, and an
// optional .env file. Flags win over environment values; credentials come
// from the environment only.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	paperBaseURL = "https://paper-api.alpaca.markets"
	liveBaseURL  = "https://api.alpaca.markets"
)

type Config struct {
	Watchlist      []string
	ShortWindow    int
	LongWindow     int
	WaitDays       int
	SharesPerTrade int
	MaxShares      int
	Feed           string
	Paper          bool
	BaseURL        string
	StatePath      string
	DecisionsPath  string
	APIKey         string
	APISecret      string
}

func Load(args []string) (Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	fs := flag.NewFlagSet("stockbot", flag.ContinueOnError)
	var cfg Config
	var watchlist string

	fs.StringVar(&watchlist, "watchlist", envOr("WATCHLIST", "PFE,T"), "comma-separated symbols, rank order as listed")
	fs.IntVar(&cfg.ShortWindow, "short-window", envIntOr("SHORT_WINDOW", 50), "short moving-average window in trading days")
	fs.IntVar(&cfg.LongWindow, "long-window", envIntOr("LONG_WINDOW", 200), "long moving-average window in trading days")
	fs.IntVar(&cfg.WaitDays, "wait-days", envIntOr("WAIT_DAYS", 5), "cooldown between trades on one symbol, calendar days")
	fs.IntVar(&cfg.SharesPerTrade, "shares-per-trade", envIntOr("SHARES_PER_TRADE", 50), "shares bought per buy decision")
	fs.IntVar(&cfg.MaxShares, "max-shares", envIntOr("MAX_SHARES", 300), "max shares held per symbol")
	fs.StringVar(&cfg.Feed, "feed", envOr("ALPACA_DATA_FEED", "iex"), "market data feed: iex or sip")
	fs.BoolVar(&cfg.Paper, "paper", envBoolOr("ALPACA_PAPER", true), "use the paper trading endpoint")
	fs.StringVar(&cfg.StatePath, "state-path", envOr("STATE_PATH", "state.json"), "path to the cooldown state file")
	fs.StringVar(&cfg.DecisionsPath, "decisions-path", envOr("DECISIONS_PATH", "decisions.ndjson"), "path to the decision audit log")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.Watchlist = parseWatchlist(watchlist)
	cfg.APIKey = strings.TrimSpace(os.Getenv("APCA_API_KEY_ID"))
	cfg.APISecret = strings.TrimSpace(os.Getenv("APCA_API_SECRET_KEY"))
	cfg.BaseURL = paperBaseURL
	if !cfg.Paper {
		cfg.BaseURL = liveBaseURL
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return fmt.Errorf("missing Alpaca credentials: set APCA_API_KEY_ID and APCA_API_SECRET_KEY in the environment or .env")
	}
	if len(cfg.Watchlist) == 0 {
		return fmt.Errorf("watchlist is empty")
	}
	if cfg.ShortWindow < 1 {
		return fmt.Errorf("short-window must be >= 1")
	}
	if cfg.ShortWindow > cfg.LongWindow {
		return fmt.Errorf("short-window (%d) must be <= long-window (%d)", cfg.ShortWindow, cfg.LongWindow)
	}
	if cfg.WaitDays < 0 {
		return fmt.Errorf("wait-days must be >= 0")
	}
	if cfg.SharesPerTrade < 1 {
		return fmt.Errorf("shares-per-trade must be >= 1")
	}
	if cfg.MaxShares < cfg.SharesPerTrade {
		return fmt.Errorf("max-shares (%d) must be >= shares-per-trade (%d)", cfg.MaxShares, cfg.SharesPerTrade)
	}
	if cfg.Feed != "iex" && cfg.Feed != "sip" {
		return fmt.Errorf("feed must be iex or sip, got %q", cfg.Feed)
	}
	return nil
}

func parseWatchlist(raw string) []string {
	var symbols []string
	for _, part := range strings.Split(raw, ",") {
		symbol := strings.ToUpper(strings.TrimSpace(part))
		if symbol != "" {
			symbols = append(symbols, symbol)
		}
	}
	return symbols
}

func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envIntOr(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	var value int
	if _, err := fmt.Sscanf(raw, "%d", &value); err != nil {
		return fallback
	}
	return value
}

func envBoolOr(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	return fallback
}
