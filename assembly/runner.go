/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package assembly

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/gmaffy/assembly-whisperer/scheduler"
)

// Runner launches one whole per-sample pipeline as a child process, by
// re-invoking this binary's assemble subcommand. The batch scheduler only
// ever sees the handle.
type Runner struct {
	OutputDir  string
	Threads    int
	Polish     bool
	ParamsFile string

	selfPath string
}

func NewRunner(outputDir string, threads int, polish bool, paramsFile string) (*Runner, error) {
	selfPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolving own executable: %w", err)
	}
	return &Runner{
		OutputDir:  outputDir,
		Threads:    threads,
		Polish:     polish,
		ParamsFile: paramsFile,
		selfPath:   selfPath,
	}, nil
}

// Launch starts the assembly pipeline for one sample, with its combined
// output redirected to <out>/<sample>/<sample>.log. Arguments are passed as
// a discrete list, never through a shell.
func (r *Runner) Launch(desc scheduler.JobDescriptor) (scheduler.Handle, error) {
	sampleDir := filepath.Join(r.OutputDir, desc.SampleName)
	if err := os.MkdirAll(sampleDir, 0755); err != nil {
		return nil, fmt.Errorf("creating sample directory: %w", err)
	}

	logFile, err := os.Create(filepath.Join(sampleDir, desc.SampleName+".log"))
	if err != nil {
		return nil, fmt.Errorf("creating sample log: %w", err)
	}

	args := []string{
		"assemble",
		"--input", desc.InputPath,
		"--sample", desc.SampleName,
		"--read-type", string(desc.ReadType),
		"--out", sampleDir,
		"--threads", strconv.Itoa(r.Threads),
	}
	if desc.GenomeSize != "" {
		args = append(args, "--genome-size", desc.GenomeSize)
	}
	if r.Polish {
		args = append(args, "--polish")
	}
	if r.ParamsFile != "" {
		args = append(args, "--params", r.ParamsFile)
	}

	cmd := exec.Command(r.selfPath, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		logFile.Close()
		return nil, fmt.Errorf("starting pipeline for %s: %w", desc.SampleName, err)
	}
	return &processHandle{cmd: cmd, log: logFile}, nil
}

// processHandle adapts exec.Cmd to the scheduler's Handle. A nonzero exit
// is an exit code, not a wait error.
type processHandle struct {
	cmd *exec.Cmd
	log *os.File
}

func (h *processHandle) Wait() (int, error) {
	defer h.log.Close()
	err := h.cmd.Wait()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

func (h *processHandle) Kill() error {
	if h.cmd.Process == nil {
		return nil
	}
	return h.cmd.Process.Kill()
}
