/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package assembly

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gmaffy/assembly-whisperer/scheduler"
	"github.com/gmaffy/assembly-whisperer/stats"
	"github.com/gmaffy/assembly-whisperer/utils"
)

func readTypeFlag(rt scheduler.ReadType) string {
	switch rt {
	case scheduler.ReadTypePacbio:
		return "--pacbio-raw"
	case scheduler.ReadTypePacbioHifi:
		return "--pacbio-hifi"
	default:
		return "--nano-raw"
	}
}

// Flye runs the flye assembler on the given reads and returns the path of
// the assembly fasta.
func Flye(readsPath string, rt scheduler.ReadType, genomeSize string, flyeDir string, threads int, extra []string) (string, error) {
	args := []string{readTypeFlag(rt), readsPath, "--out-dir", flyeDir, "--threads", strconv.Itoa(threads)}
	if genomeSize != "" {
		args = append(args, "--genome-size", genomeSize)
	}
	args = append(args, extra...)

	if err := utils.RunCmdVerbose("flye", args...); err != nil {
		return "", fmt.Errorf("flye: %w", err)
	}
	return filepath.Join(flyeDir, "assembly.fasta"), nil
}

// RunPipeline is the whole per-sample pipeline: filter reads, assemble with
// flye, optionally polish, then compute assembly statistics. Stages already
// marked COMPLETED in the sample's run log are skipped, so an interrupted
// sample can be re-run in place.
func RunPipeline(desc scheduler.JobDescriptor, outDir string, threads int, polish bool, p utils.Params) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	logger, logFile, err := utils.NewPipelineLogger(filepath.Join(outDir, "pipeline.log"))
	if err != nil {
		return fmt.Errorf("opening pipeline log: %w", err)
	}
	defer logFile.Close()
	logged := utils.ParseLogFile(filepath.Join(outDir, "pipeline.log"))

	sn := desc.SampleName
	logger.Info("ASSEMBLY", "PROGRAM", "INITIALISE", "SAMPLE", sn, "STATUS", "STARTED")

	// ---------------------------------------- Read filtering --------------------------------------------- //
	filtered := filepath.Join(outDir, sn+".filtered.fastq")
	if utils.StageHasCompleted(logged, "FILTER", sn) {
		fmt.Printf("FILTER for %s has already completed. Skipping...\n", sn)
	} else {
		logger.Info("ASSEMBLY", "PROGRAM", "FILTER", "SAMPLE", sn, "STATUS", "STARTED")
		if _, err := FilterReads(desc.InputPath, filtered, p); err != nil {
			logger.Error("ASSEMBLY", "PROGRAM", "FILTER", "SAMPLE", sn, "STATUS", fmt.Sprintf("FAILED: %v", err))
			return err
		}
		logger.Info("ASSEMBLY", "PROGRAM", "FILTER", "SAMPLE", sn, "STATUS", "COMPLETED")
	}

	// ------------------------------------------- Assembly ------------------------------------------------ //
	flyeDir := filepath.Join(outDir, "flye")
	assemblyFasta := filepath.Join(flyeDir, "assembly.fasta")
	if utils.StageHasCompleted(logged, "FLYE", sn) {
		fmt.Printf("FLYE for %s has already completed. Skipping...\n", sn)
	} else {
		logger.Info("ASSEMBLY", "PROGRAM", "FLYE", "SAMPLE", sn, "STATUS", "STARTED")
		if _, err := Flye(filtered, desc.ReadType, desc.GenomeSize, flyeDir, threads, p.FlyeExtra); err != nil {
			logger.Error("ASSEMBLY", "PROGRAM", "FLYE", "SAMPLE", sn, "STATUS", fmt.Sprintf("FAILED: %v", err))
			return err
		}
		logger.Info("ASSEMBLY", "PROGRAM", "FLYE", "SAMPLE", sn, "STATUS", "COMPLETED")
	}

	finalAssembly := assemblyFasta

	// ------------------------------------------- Polishing ----------------------------------------------- //
	if polish {
		if utils.StageHasCompleted(logged, "POLISH", sn) {
			fmt.Printf("POLISH for %s has already completed. Skipping...\n", sn)
			finalAssembly = filepath.Join(outDir, sn+".polished.fasta")
		} else {
			logger.Info("ASSEMBLY", "PROGRAM", "POLISH", "SAMPLE", sn, "STATUS", "STARTED")
			polished, pErr := Polish(assemblyFasta, filtered, desc.ReadType, outDir, sn, threads, p)
			if pErr != nil {
				logger.Error("ASSEMBLY", "PROGRAM", "POLISH", "SAMPLE", sn, "STATUS", fmt.Sprintf("FAILED: %v", pErr))
				return pErr
			}
			finalAssembly = polished
			logger.Info("ASSEMBLY", "PROGRAM", "POLISH", "SAMPLE", sn, "STATUS", "COMPLETED")
		}
	}

	// ------------------------------------------- Statistics ---------------------------------------------- //
	logger.Info("ASSEMBLY", "PROGRAM", "STATS", "SAMPLE", sn, "STATUS", "STARTED")
	st, sErr := stats.Analyze(finalAssembly)
	if sErr != nil {
		logger.Error("ASSEMBLY", "PROGRAM", "STATS", "SAMPLE", sn, "STATUS", fmt.Sprintf("FAILED: %v", sErr))
		return sErr
	}
	st.Print(os.Stdout)
	if err := st.WriteJSON(filepath.Join(outDir, sn+".stats.json")); err != nil {
		return err
	}
	if err := st.WriteTSV(filepath.Join(outDir, sn+".stats.tsv")); err != nil {
		return err
	}
	logger.Info("ASSEMBLY", "PROGRAM", "STATS", "SAMPLE", sn, "STATUS", "COMPLETED")

	logger.Info("ASSEMBLY", "PROGRAM", "INITIALISE", "SAMPLE", sn, "STATUS", "COMPLETED")
	fmt.Printf("Assembly pipeline for %s done. Final assembly: %s\n", sn, finalAssembly)
	return nil
}
