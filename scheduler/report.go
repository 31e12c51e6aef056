/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package scheduler

import (
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"
)

// BatchReport summarizes one batch run: one result per dispatched job plus
// the samples resume skipped.
type BatchReport struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Results  []JobResult
	Skipped  []string
}

func (r *BatchReport) record(l *Ledger, res JobResult) {
	r.Results = append(r.Results, res)
	if l != nil {
		_ = l.Record(res)
	}
}

func (r *BatchReport) Succeeded() []JobResult {
	return lo.Filter(r.Results, func(res JobResult, _ int) bool { return res.Outcome == OutcomeSuccess })
}

func (r *BatchReport) Failed() []JobResult {
	return lo.Filter(r.Results, func(res JobResult, _ int) bool { return res.Outcome == OutcomeFailed })
}

// AllSucceeded drives the process exit code: true for an empty batch.
func (r *BatchReport) AllSucceeded() bool {
	return len(r.Failed()) == 0
}

// Write renders the human-readable batch report. The report is written even
// when every job failed, so post-mortem diagnosis never depends on stdout.
func (r *BatchReport) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	defer f.Close()

	fmt.Fprintf(f, "Batch assembly report\n")
	fmt.Fprintf(f, "=====================\n")
	fmt.Fprintf(f, "Run ID:    %s\n", r.RunID)
	fmt.Fprintf(f, "Started:   %s\n", r.Started.Format(ledgerTimeFormat))
	fmt.Fprintf(f, "Finished:  %s\n", r.Finished.Format(ledgerTimeFormat))
	fmt.Fprintf(f, "Samples:   %d run, %d skipped\n", len(r.Results), len(r.Skipped))
	fmt.Fprintf(f, "Succeeded: %d\n", len(r.Succeeded()))
	fmt.Fprintf(f, "Failed:    %d\n\n", len(r.Failed()))

	for _, res := range r.Results {
		switch {
		case res.TimedOut:
			fmt.Fprintf(f, "%s: %s (timed out) - %s\n", res.Outcome, res.SampleName, res.Timestamp.Format(ledgerTimeFormat))
		case res.Outcome == OutcomeFailed:
			fmt.Fprintf(f, "%s: %s (exit code %d) - %s\n", res.Outcome, res.SampleName, res.ExitCode, res.Timestamp.Format(ledgerTimeFormat))
		default:
			fmt.Fprintf(f, "%s: %s - %s\n", res.Outcome, res.SampleName, res.Timestamp.Format(ledgerTimeFormat))
		}
	}
	for _, name := range r.Skipped {
		fmt.Fprintf(f, "SKIPPED: %s (already completed)\n", name)
	}
	return nil
}
