/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Options controls one batch run.
type Options struct {
	// Jobs is the concurrency limit. Must be >= 1.
	Jobs int
	// Timeout kills a job that runs longer than this. Zero disables it.
	Timeout time.Duration
	// Resume skips samples that already have a SUCCESS line in the ledger.
	Resume bool
	// Ledger receives a line per dispatch and per completion. Optional.
	Ledger *Ledger
	// Logger receives structured progress events. Optional.
	Logger *slog.Logger
}

// completion is what a job watcher pushes onto the control loop's channel
// once its handle's Wait returns.
type completion struct {
	desc     JobDescriptor
	exitCode int
	timedOut bool
	err      error
}

// RunBatch dispatches jobs in sample-sheet order, never running more than
// opts.Jobs at once, and collects one JobResult per job in completion order.
//
// A job that exits nonzero is recorded as FAILED and the batch carries on.
// RunBatch itself only returns an error when it can no longer honor its own
// bookkeeping (a handle's Wait fails for a reason other than the process
// exiting); the ledger is flushed before that error is returned.
func RunBatch(jobs []JobDescriptor, opts Options, launch LaunchFunc) (BatchReport, error) {
	report := BatchReport{RunID: uuid.NewString(), Started: time.Now()}
	if opts.Jobs < 1 {
		return report, fmt.Errorf("concurrency limit must be >= 1, got %d", opts.Jobs)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	queue := make([]JobDescriptor, 0, len(jobs))
	if opts.Resume && opts.Ledger != nil {
		done, err := CompletedSamples(opts.Ledger.path)
		if err != nil {
			return report, err
		}
		for _, desc := range jobs {
			if done[desc.SampleName] {
				logger.Info("BATCH", "SAMPLE", desc.SampleName, "STATUS", "SKIPPED", "REASON", "already completed in ledger")
				report.Skipped = append(report.Skipped, desc.SampleName)
				continue
			}
			queue = append(queue, desc)
		}
	} else {
		queue = append(queue, jobs...)
	}

	if opts.Ledger != nil {
		if err := opts.Ledger.Batch(report.RunID); err != nil {
			return report, err
		}
	}

	// Single control loop. Each dispatched job gets a watcher goroutine that
	// blocks in Wait and reports on completions; no handle is ever touched
	// by two goroutines.
	completions := make(chan completion)
	active := 0
	next := 0

	for next < len(queue) || active > 0 {
		for active < opts.Jobs && next < len(queue) {
			desc := queue[next]
			next++

			h, err := launch(desc)
			if err != nil {
				// The sample never got a process; that is a job failure,
				// not a scheduler failure.
				logger.Error("BATCH", "SAMPLE", desc.SampleName, "STATUS", "FAILED", "ERROR", err)
				report.record(opts.Ledger, JobResult{
					SampleName: desc.SampleName,
					Outcome:    OutcomeFailed,
					ExitCode:   -1,
					Timestamp:  time.Now(),
				})
				continue
			}
			if opts.Ledger != nil {
				if lErr := opts.Ledger.Dispatched(desc.SampleName); lErr != nil {
					return report, lErr
				}
			}
			logger.Info("BATCH", "SAMPLE", desc.SampleName, "STATUS", "DISPATCHED")
			active++
			go watch(desc, h, opts.Timeout, completions)
		}

		if active == 0 {
			break
		}
		c := <-completions
		active--

		if c.err != nil {
			// Lost track of a running process. Fatal: flush what we have
			// and surface it, per-job results already on disk stay there.
			if opts.Ledger != nil {
				_ = opts.Ledger.Flush()
			}
			report.Finished = time.Now()
			return report, fmt.Errorf("waiting on job %s: %w", c.desc.SampleName, c.err)
		}

		res := JobResult{
			SampleName: c.desc.SampleName,
			Outcome:    OutcomeSuccess,
			ExitCode:   c.exitCode,
			TimedOut:   c.timedOut,
			Timestamp:  time.Now(),
		}
		if c.exitCode != 0 || c.timedOut {
			res.Outcome = OutcomeFailed
		}
		if res.Outcome == OutcomeSuccess {
			logger.Info("BATCH", "SAMPLE", res.SampleName, "STATUS", "COMPLETED")
		} else {
			logger.Error("BATCH", "SAMPLE", res.SampleName, "STATUS", "FAILED", "EXIT_CODE", res.ExitCode, "TIMED_OUT", res.TimedOut)
		}
		report.record(opts.Ledger, res)
	}

	report.Finished = time.Now()
	if opts.Ledger != nil {
		_ = opts.Ledger.Flush()
	}
	return report, nil
}

// watch blocks on one handle and pushes a single completion record. When a
// timeout is set and fires first, the process is killed and the completion
// is marked timed out.
func watch(desc JobDescriptor, h Handle, timeout time.Duration, out chan<- completion) {
	var timer *time.Timer
	if timeout > 0 {
		timer = time.AfterFunc(timeout, func() {
			_ = h.Kill()
		})
	}

	code, err := h.Wait()
	timedOut := false
	if timer != nil {
		// Stop reports false once the timer has fired, i.e. we killed it.
		timedOut = !timer.Stop()
	}
	if timedOut && err != nil {
		// A killed process reports a wait error on some platforms; the
		// timeout is the real story.
		err = nil
		code = -1
	}
	out <- completion{desc: desc, exitCode: code, timedOut: timedOut, err: err}
}
