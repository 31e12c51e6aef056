/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gmaffy/assembly-whisperer/stats"
	"github.com/spf13/cobra"
)

// assemblyStatsCmd represents the assemblyStats command
var assemblyStatsCmd = &cobra.Command{
	Use:   "assemblyStats -i <assembly.fasta> [-i <other.fasta> ...] [flags]",
	Short: "Compute assembly statistics (N50, GC content, length distribution)",
	Long: `Computes contig statistics for one or more assembly FASTA files:
number of contigs, total length, N50/N90, L50/L90, GC and N content.

With one input, statistics are printed and optionally saved as JSON/TSV and
HTML charts. With several inputs (or --compare), assemblies are compared
side by side.`,
	Run: func(cmd *cobra.Command, args []string) {
		inputs, iErr := cmd.Flags().GetStringSlice("input")
		if iErr != nil {
			log.Fatalf("Error getting input flag: %v", iErr)
		}
		outDir, oErr := cmd.Flags().GetString("out")
		if oErr != nil {
			log.Fatalf("Error getting out flag: %v", oErr)
		}
		plot, pErr := cmd.Flags().GetBool("plot")
		if pErr != nil {
			log.Fatalf("Error getting plot flag: %v", pErr)
		}
		compare, cErr := cmd.Flags().GetBool("compare")
		if cErr != nil {
			log.Fatalf("Error getting compare flag: %v", cErr)
		}
		bins, bErr := cmd.Flags().GetInt("bins")
		if bErr != nil {
			log.Fatalf("Error getting bins flag: %v", bErr)
		}

		if len(inputs) == 0 {
			fmt.Println("Provide at least one assembly with flag -i")
			os.Exit(2)
		}
		for _, input := range inputs {
			if _, err := os.Stat(input); err != nil {
				fmt.Printf("Assembly path %s is not valid\n", input)
				os.Exit(2)
			}
		}
		if outDir != "" {
			if err := os.MkdirAll(outDir, 0755); err != nil {
				log.Fatalf("Error creating output directory: %v", err)
			}
		}

		if len(inputs) > 1 || compare {
			if outDir == "" {
				fmt.Println("Comparison needs an output directory, flag -o")
				os.Exit(2)
			}
			if err := stats.Compare(inputs, outDir); err != nil {
				log.Fatalf("Assembly comparison failed: %v", err)
			}
			return
		}

		st, err := stats.Analyze(inputs[0])
		if err != nil {
			log.Fatalf("Error analyzing assembly: %v", err)
		}
		st.Print(os.Stdout)

		if outDir != "" {
			base := filepath.Join(outDir, "assembly_stats")
			if err := st.WriteJSON(base + ".json"); err != nil {
				log.Fatalf("Error writing JSON stats: %v", err)
			}
			if err := st.WriteTSV(base + ".tsv"); err != nil {
				log.Fatalf("Error writing TSV stats: %v", err)
			}
			fmt.Printf("Statistics saved at: %s.json and %s.tsv\n", base, base)

			if plot {
				chartPath := filepath.Join(outDir, "assembly_charts.html")
				if err := st.WriteCharts(chartPath, bins); err != nil {
					log.Fatalf("Error writing charts: %v", err)
				}
				fmt.Println("Charts saved at:", chartPath)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(assemblyStatsCmd)

	assemblyStatsCmd.Flags().StringSliceP("input", "i", []string{}, "Assembly FASTA file(s), plain or gzipped")
	assemblyStatsCmd.Flags().StringP("out", "o", "", "Output directory for reports and charts")
	assemblyStatsCmd.Flags().Bool("plot", false, "Write HTML charts (length distribution, Nx curve)")
	assemblyStatsCmd.Flags().Bool("compare", false, "Compare multiple assemblies")
	assemblyStatsCmd.Flags().Int("bins", 50, "Number of bins for the length histogram")
}
