/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "assembly-whisperer",
	Short: "A toolkit for long-read genome assembly",
	Long: `A long-read genome assembly toolkit for performing:
1.	Read filtering: (seqtk)
2.	De novo assembly: (Flye)
3.	Assembly polishing: (minimap2, Racon, Medaka)
4.	Assembly QC and statistics: (QUAST, built-in stats)
5.	Batch assembly of many samples with bounded parallelism
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to tab-separated sample sheet")
}
