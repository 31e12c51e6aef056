/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package scheduler

import (
	"fmt"
	"time"
)

// ReadType is the sequencing technology of a sample's reads. It selects the
// flye input flag for the sample.
type ReadType string

const (
	ReadTypeNanopore   ReadType = "nanopore"
	ReadTypePacbio     ReadType = "pacbio"
	ReadTypePacbioHifi ReadType = "pacbio-hifi"
)

func ParseReadType(s string) (ReadType, error) {
	switch ReadType(s) {
	case ReadTypeNanopore, ReadTypePacbio, ReadTypePacbioHifi:
		return ReadType(s), nil
	}
	return "", fmt.Errorf("unrecognized read type %q (valid: nanopore, pacbio, pacbio-hifi)", s)
}

// JobDescriptor is one sample taken from the sample sheet. It is immutable
// once parsed.
type JobDescriptor struct {
	SampleName string
	InputPath  string
	ReadType   ReadType
	GenomeSize string
}

type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeFailed  Outcome = "FAILED"
)

// JobResult records the terminal status of one job. Results are append-only:
// a job gets exactly one result, in completion order.
type JobResult struct {
	SampleName string
	Outcome    Outcome
	ExitCode   int
	TimedOut   bool
	Timestamp  time.Time
}

// Handle is an opaque reference to a running external process. Wait blocks
// until the process exits and returns its exit code. Kill is only used to
// enforce the per-job timeout.
type Handle interface {
	Wait() (int, error)
	Kill() error
}

// LaunchFunc starts the external pipeline for one sample and returns a
// handle for it. Provided by the assembly runner.
type LaunchFunc func(JobDescriptor) (Handle, error)
