/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/gmaffy/assembly-whisperer/assembly"
	"github.com/gmaffy/assembly-whisperer/scheduler"
	"github.com/gmaffy/assembly-whisperer/utils"
	"github.com/spf13/cobra"
)

// assembleCmd represents the assemble command
var assembleCmd = &cobra.Command{
	Use:   "assemble -i <reads.fastq> -s <sample> -o <output dir> [flags]",
	Short: "Run the assembly pipeline for a single sample",
	Long: `Runs the following pipeline for one sample:

1. seqtk quality/length filtering of the input reads
2. flye de novo assembly
3. optional polishing (minimap2 + racon rounds, then medaka for nanopore)
4. assembly statistics (JSON + TSV)

This is also what batchAssemble launches once per sample.`,
	Run: func(cmd *cobra.Command, args []string) {
		input, iErr := cmd.Flags().GetString("input")
		if iErr != nil {
			log.Fatalf("Error getting input flag: %v", iErr)
		}
		sample, sErr := cmd.Flags().GetString("sample")
		if sErr != nil {
			log.Fatalf("Error getting sample flag: %v", sErr)
		}
		readTypeStr, rtErr := cmd.Flags().GetString("read-type")
		if rtErr != nil {
			log.Fatalf("Error getting read-type flag: %v", rtErr)
		}
		outDir, oErr := cmd.Flags().GetString("out")
		if oErr != nil {
			log.Fatalf("Error getting out flag: %v", oErr)
		}
		threads, tErr := cmd.Flags().GetInt("threads")
		if tErr != nil {
			log.Fatalf("Error getting threads flag: %v", tErr)
		}
		genomeSize, gErr := cmd.Flags().GetString("genome-size")
		if gErr != nil {
			log.Fatalf("Error getting genome-size flag: %v", gErr)
		}
		polish, pErr := cmd.Flags().GetBool("polish")
		if pErr != nil {
			log.Fatalf("Error getting polish flag: %v", pErr)
		}
		paramsFile, pfErr := cmd.Flags().GetString("params")
		if pfErr != nil {
			log.Fatalf("Error getting params flag: %v", pfErr)
		}

		if input == "" || sample == "" || outDir == "" {
			fmt.Println("Flags -i, -s and -o are all required")
			os.Exit(2)
		}
		if _, err := os.Stat(input); err != nil {
			fmt.Printf("Input reads path %s is not valid\n", input)
			os.Exit(2)
		}
		readType, err := scheduler.ParseReadType(readTypeStr)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		params := utils.DefaultParams()
		if paramsFile != "" {
			params, err = utils.ReadParams(paramsFile)
			if err != nil {
				log.Fatalf("Error reading params file: %v", err)
			}
		}

		desc := scheduler.JobDescriptor{
			SampleName: sample,
			InputPath:  input,
			ReadType:   readType,
			GenomeSize: genomeSize,
		}
		if err := assembly.RunPipeline(desc, outDir, threads, polish, params); err != nil {
			log.Fatalf("Assembly pipeline failed for %s: %v", sample, err)
		}
	},
}

func init() {
	rootCmd.AddCommand(assembleCmd)

	assembleCmd.Flags().StringP("input", "i", "", "Long reads in FASTQ format")
	assembleCmd.Flags().StringP("sample", "s", "", "Sample name")
	assembleCmd.Flags().String("read-type", "nanopore", "Read type: nanopore, pacbio or pacbio-hifi")
	assembleCmd.Flags().StringP("out", "o", "", "Output directory for this sample")
	assembleCmd.Flags().IntP("threads", "t", 4, "Threads for the external tools")
	assembleCmd.Flags().StringP("genome-size", "g", "", "Estimated genome size, e.g. 5m, 4.6m, 2.1g")
	assembleCmd.Flags().BoolP("polish", "p", false, "Polish the assembly (racon + medaka)")
	assembleCmd.Flags().String("params", "", "Optional pipeline params file (key: value)")
}
