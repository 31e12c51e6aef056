/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package scheduler

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

const ledgerTimeFormat = "2006-01-02 15:04:05"

// Ledger is the append-only batch status file. One line per event:
//
//	BATCH: <run id> - <timestamp>
//	DISPATCHED: <sample> - <timestamp>
//	SUCCESS: <sample> - <timestamp>
//	FAILED: <sample> - <timestamp>
//
// Lines are appended with O_APPEND so an interrupted batch can be re-run
// against the same file and audited afterwards.
type Ledger struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

func OpenLedger(path string) (*Ledger, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	return &Ledger{path: path, f: f}, nil
}

func (l *Ledger) appendLine(tag, subject string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := fmt.Fprintf(l.f, "%s: %s - %s\n", tag, subject, time.Now().Format(ledgerTimeFormat))
	return err
}

func (l *Ledger) Batch(runID string) error {
	return l.appendLine("BATCH", runID)
}

func (l *Ledger) Dispatched(sample string) error {
	return l.appendLine("DISPATCHED", sample)
}

func (l *Ledger) Record(res JobResult) error {
	return l.appendLine(string(res.Outcome), res.SampleName)
}

// Flush forces buffered ledger state to disk. Called before the scheduler
// aborts on an internal error so no recorded result is lost.
func (l *Ledger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Sync()
}

func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

// CompletedSamples reads the ledger back and returns the set of samples with
// a SUCCESS line. Used by scheduler-level resume to skip finished work.
func CompletedSamples(path string) (map[string]bool, error) {
	done := make(map[string]bool)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return done, nil
		}
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		rest, ok := strings.CutPrefix(line, "SUCCESS: ")
		if !ok {
			continue
		}
		sample, _, ok := strings.Cut(rest, " - ")
		if !ok {
			continue
		}
		done[strings.TrimSpace(sample)] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return done, nil
}
