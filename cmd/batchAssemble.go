/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gmaffy/assembly-whisperer/assembly"
	"github.com/gmaffy/assembly-whisperer/samples"
	"github.com/gmaffy/assembly-whisperer/scheduler"
	"github.com/gmaffy/assembly-whisperer/utils"
	"github.com/spf13/cobra"
)

// batchAssembleCmd represents the batchAssemble command
var batchAssembleCmd = &cobra.Command{
	Use:   "batchAssemble -c <sample sheet> -o <output dir> [flags]",
	Short: "Assemble many samples with a bounded pool of parallel jobs",
	Long: `Reads a tab-separated sample sheet (sample_name, input_file, read_type,
genome_size), validates it, then runs the assembly pipeline for every sample
as its own child process, never more than --jobs at a time.

Each sample writes to <output>/<sample>/<sample>.log. The batch appends a
status ledger (<output>/batch_status.log) on every dispatch and completion,
and writes a final report (<output>/batch_report.txt). The exit code is 0
only when every job succeeded.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Checking dependencies ...\n\n")
		if err := utils.CheckDeps("flye", "seqtk"); err != nil {
			log.Fatalf("Dependency check failed: %v", err)
		}
		fmt.Printf("Dependencies OK\n\n----------------------------------------------------------\n\n")

		outDir, outErr := cmd.Flags().GetString("output")
		if outErr != nil {
			log.Fatalf("Error getting output flag: %v", outErr)
		}
		jobs, jErr := cmd.Flags().GetInt("jobs")
		if jErr != nil {
			log.Fatalf("Error getting jobs flag: %v", jErr)
		}
		threads, tErr := cmd.Flags().GetInt("threads")
		if tErr != nil {
			log.Fatalf("Error getting threads flag: %v", tErr)
		}
		polish, pErr := cmd.Flags().GetBool("polish")
		if pErr != nil {
			log.Fatalf("Error getting polish flag: %v", pErr)
		}
		resume, rErr := cmd.Flags().GetBool("resume")
		if rErr != nil {
			log.Fatalf("Error getting resume flag: %v", rErr)
		}
		timeout, toErr := cmd.Flags().GetDuration("timeout")
		if toErr != nil {
			log.Fatalf("Error getting timeout flag: %v", toErr)
		}
		paramsFile, pfErr := cmd.Flags().GetString("params")
		if pfErr != nil {
			log.Fatalf("Error getting params flag: %v", pfErr)
		}

		if cfgFile == "" {
			fmt.Println("Please provide a sample sheet with flag -c")
			os.Exit(2)
		}
		if outDir == "" {
			fmt.Println("Please provide an output directory with flag -o")
			os.Exit(2)
		}
		if err := os.MkdirAll(outDir, 0755); err != nil {
			log.Fatalf("Error creating output directory: %v", err)
		}

		fmt.Println("Validating sample sheet ...")
		descs, err := samples.ReadSampleSheet(cfgFile)
		if err != nil {
			fmt.Printf("Sample sheet is not valid: %v\n", err)
			os.Exit(2)
		}
		fmt.Printf("Sample sheet OK: %d samples\n\n", len(descs))

		logger, logFile, err := utils.NewPipelineLogger(filepath.Join(outDir, "batch.log"))
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer logFile.Close()

		ledger, err := scheduler.OpenLedger(filepath.Join(outDir, "batch_status.log"))
		if err != nil {
			log.Fatalf("Failed to open batch ledger: %v", err)
		}
		defer ledger.Close()

		runner, err := assembly.NewRunner(outDir, threads, polish, paramsFile)
		if err != nil {
			log.Fatalf("Failed to set up sample runner: %v", err)
		}

		fmt.Printf("Running up to %d jobs in parallel with %d threads each\n\n", jobs, threads)
		report, err := scheduler.RunBatch(descs, scheduler.Options{
			Jobs:    jobs,
			Timeout: timeout,
			Resume:  resume,
			Ledger:  ledger,
			Logger:  logger,
		}, runner.Launch)

		reportPath := filepath.Join(outDir, "batch_report.txt")
		if wErr := report.Write(reportPath); wErr != nil {
			fmt.Printf("Error writing batch report: %v\n", wErr)
		} else {
			fmt.Println("Batch report saved at:", reportPath)
		}

		if err != nil {
			log.Fatalf("Batch scheduler failed: %v", err)
		}

		fmt.Printf("\nBatch done in %s: %d succeeded, %d failed, %d skipped\n",
			report.Finished.Sub(report.Started).Round(time.Second),
			len(report.Succeeded()), len(report.Failed()), len(report.Skipped))

		if !report.AllSucceeded() {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(batchAssembleCmd)

	batchAssembleCmd.Flags().StringP("output", "o", "", "Output directory for the batch")
	batchAssembleCmd.Flags().IntP("jobs", "j", 1, "Maximum number of samples assembled in parallel")
	batchAssembleCmd.Flags().IntP("threads", "t", 4, "Threads passed to each sample's tools")
	batchAssembleCmd.Flags().BoolP("polish", "p", false, "Polish each assembly (racon + medaka)")
	batchAssembleCmd.Flags().Bool("resume", false, "Skip samples already recorded as SUCCESS in the ledger")
	batchAssembleCmd.Flags().Duration("timeout", 0, "Per-sample timeout (0 means none), e.g. 12h")
	batchAssembleCmd.Flags().String("params", "", "Optional pipeline params file (key: value)")
}
