package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockbot/internal/broker"
	"stockbot/internal/config"
	"stockbot/internal/engine"
	"stockbot/internal/state"
)

const version = "1.0.0"

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("stockbot v%s\n", version)
		return
	}

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	runID := generateRunID()
	decisions, err := engine.NewDecisionLogger(cfg.DecisionsPath, runID)
	if err != nil {
		log.Fatalf("decision logger error: %v", err)
	}
	defer func() {
		if err := decisions.Close(); err != nil {
			log.Printf("failed to close decision logger: %v", err)
		}
	}()

	ledger, err := state.Load(cfg.StatePath)
	if err != nil {
		log.Fatalf("state error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mode := "LIVE"
	if cfg.Paper {
		mode = "PAPER"
	}
	log.Printf("stockbot v%s mode=%s feed=%s run_id=%s", version, mode, cfg.Feed, runID)

	brokerClient := broker.New(cfg.APIKey, cfg.APISecret, cfg.BaseURL, cfg.Feed)
	engineImpl := engine.New(cfg, brokerClient, ledger, decisions)

	if err := engineImpl.RunCycle(ctx); err != nil {
		log.Fatalf("cycle failed: %v", err)
	}
}

func generateRunID() string {
	timestamp := time.Now().UTC().Format("20060102T150405")
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return timestamp
	}
	return timestamp + "-" + hex.EncodeToString(randomBytes)
}
