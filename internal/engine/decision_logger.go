package engine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"stockbot/internal/policy"
)

// DecisionRecord is one audit-log line: a rebalance decision plus the run
// and cycle context it was made in.
type DecisionRecord struct {
	RunID     string           `json:"run_id"`
	Timestamp time.Time        `json:"timestamp"`
	Action    policy.Action    `json:"action"`
	Symbol    string           `json:"symbol"`
	Qty       int              `json:"qty"`
	Score     float64          `json:"score"`
	EstValue  float64          `json:"est_value,omitempty"`
	Gates     *policy.BuyGates `json:"gates,omitempty"`
	Result    string           `json:"result"`
}

// DecisionLogger appends decision records as NDJSON to an audit file.
type DecisionLogger struct {
	runID  string
	file   *os.File
	writer *bufio.Writer
	mu     sync.Mutex
}

func NewDecisionLogger(path string, runID string) (*DecisionLogger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &DecisionLogger{
		runID:  runID,
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

func (d *DecisionLogger) RunID() string {
	return d.runID
}

// Append writes one record. Failures are reported on stderr rather than
// failing the cycle; the audit log is best-effort.
func (d *DecisionLogger) Append(record DecisionRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	record.RunID = d.runID
	payload, err := json.Marshal(record)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal decision: %v\n", err)
		return
	}
	if _, err := d.writer.Write(append(payload, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write decision: %v\n", err)
		return
	}
	if err := d.writer.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to flush decision log: %v\n", err)
	}
}

func (d *DecisionLogger) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.writer.Flush(); err != nil {
		_ = d.file.Close()
		return err
	}
	return d.file.Close()
}
