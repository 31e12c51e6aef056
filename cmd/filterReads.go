/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/gmaffy/assembly-whisperer/assembly"
	"github.com/gmaffy/assembly-whisperer/utils"
	"github.com/spf13/cobra"
)

// filterReadsCmd represents the filterReads command
var filterReadsCmd = &cobra.Command{
	Use:   "filterReads -i <reads.fastq> -o <filtered.fastq> [flags]",
	Short: "Quality-filter long reads with seqtk",
	Long: `Quality-trims reads with seqtk trimfq, drops reads shorter than the
minimum length with seqtk seq, and optionally subsamples a fraction of the
filtered reads.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := utils.CheckDeps("seqtk"); err != nil {
			log.Fatalf("Dependency check failed: %v", err)
		}

		input, iErr := cmd.Flags().GetString("input")
		if iErr != nil {
			log.Fatalf("Error getting input flag: %v", iErr)
		}
		output, oErr := cmd.Flags().GetString("out")
		if oErr != nil {
			log.Fatalf("Error getting out flag: %v", oErr)
		}
		minLength, mlErr := cmd.Flags().GetInt("min-length")
		if mlErr != nil {
			log.Fatalf("Error getting min-length flag: %v", mlErr)
		}
		minQuality, mqErr := cmd.Flags().GetFloat64("min-quality")
		if mqErr != nil {
			log.Fatalf("Error getting min-quality flag: %v", mqErr)
		}
		fraction, fErr := cmd.Flags().GetFloat64("fraction")
		if fErr != nil {
			log.Fatalf("Error getting fraction flag: %v", fErr)
		}

		if input == "" || output == "" {
			fmt.Println("Flags -i and -o are required")
			os.Exit(2)
		}
		if _, err := os.Stat(input); err != nil {
			fmt.Printf("Input reads path %s is not valid\n", input)
			os.Exit(2)
		}

		params := utils.DefaultParams()
		params.MinLength = minLength
		params.MinQuality = minQuality
		params.SampleFrac = fraction

		if _, err := assembly.FilterReads(input, output, params); err != nil {
			log.Fatalf("Read filtering failed: %v", err)
		}
		fmt.Println("Filtered reads saved at:", output)
	},
}

func init() {
	rootCmd.AddCommand(filterReadsCmd)

	filterReadsCmd.Flags().StringP("input", "i", "", "Long reads in FASTQ format")
	filterReadsCmd.Flags().StringP("out", "o", "", "Output path for filtered reads")
	filterReadsCmd.Flags().Int("min-length", 1000, "Minimum read length to keep")
	filterReadsCmd.Flags().Float64("min-quality", 7, "Phred quality threshold for trimming")
	filterReadsCmd.Flags().Float64("fraction", 0, "Subsample this fraction of reads (0 disables)")
}
