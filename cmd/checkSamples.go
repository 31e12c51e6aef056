/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/gmaffy/assembly-whisperer/samples"
	"github.com/spf13/cobra"
)

// checkSamplesCmd represents the checkSamples command
var checkSamplesCmd = &cobra.Command{
	Use:   "checkSamples -c <sample sheet>",
	Short: "Validate a sample sheet without running anything",
	Long: `Parses the tab-separated sample sheet and reports the first problem it
finds (line number, field and reason), or lists the samples that would be
assembled. No jobs are started.`,
	Run: func(cmd *cobra.Command, args []string) {
		if cfgFile == "" {
			fmt.Println("Please provide a sample sheet with flag -c")
			os.Exit(2)
		}

		descs, err := samples.ReadSampleSheet(cfgFile)
		if err != nil {
			fmt.Printf("Sample sheet is not valid: %v\n", err)
			os.Exit(2)
		}

		fmt.Printf("Sample sheet OK: %d samples\n\n", len(descs))
		for i, desc := range descs {
			size := desc.GenomeSize
			if size == "" {
				size = "-"
			}
			fmt.Printf("%d.\t%s\t%s\t%s\t%s\n", i+1, desc.SampleName, desc.InputPath, desc.ReadType, size)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkSamplesCmd)
}
