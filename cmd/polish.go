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

// polishCmd represents the polish command
var polishCmd = &cobra.Command{
	Use:   "polish -a <assembly.fasta> -i <reads.fastq> -s <sample> -o <output dir> [flags]",
	Short: "Polish an existing assembly with racon and medaka",
	Long: `Runs the configured number of minimap2 + racon polishing rounds over an
existing assembly, then a medaka consensus pass for nanopore reads.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := utils.CheckDeps("minimap2", "racon"); err != nil {
			log.Fatalf("Dependency check failed: %v", err)
		}

		assemblyFasta, aErr := cmd.Flags().GetString("assembly")
		if aErr != nil {
			log.Fatalf("Error getting assembly flag: %v", aErr)
		}
		reads, iErr := cmd.Flags().GetString("input")
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
		rounds, rErr := cmd.Flags().GetInt("rounds")
		if rErr != nil {
			log.Fatalf("Error getting rounds flag: %v", rErr)
		}
		model, mErr := cmd.Flags().GetString("medaka-model")
		if mErr != nil {
			log.Fatalf("Error getting medaka-model flag: %v", mErr)
		}

		if assemblyFasta == "" || reads == "" || sample == "" || outDir == "" {
			fmt.Println("Flags -a, -i, -s and -o are all required")
			os.Exit(2)
		}
		for _, p := range []string{assemblyFasta, reads} {
			if _, err := os.Stat(p); err != nil {
				fmt.Printf("Path %s is not valid\n", p)
				os.Exit(2)
			}
		}
		readType, err := scheduler.ParseReadType(readTypeStr)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		params := utils.DefaultParams()
		params.RaconRounds = rounds
		params.MedakaModel = model

		polished, err := assembly.Polish(assemblyFasta, reads, readType, outDir, sample, threads, params)
		if err != nil {
			log.Fatalf("Polishing failed for %s: %v", sample, err)
		}
		fmt.Println("Polished assembly saved at:", polished)
	},
}

func init() {
	rootCmd.AddCommand(polishCmd)

	polishCmd.Flags().StringP("assembly", "a", "", "Assembly FASTA to polish")
	polishCmd.Flags().StringP("input", "i", "", "Long reads used for polishing")
	polishCmd.Flags().StringP("sample", "s", "", "Sample name")
	polishCmd.Flags().String("read-type", "nanopore", "Read type: nanopore, pacbio or pacbio-hifi")
	polishCmd.Flags().StringP("out", "o", "", "Output directory")
	polishCmd.Flags().IntP("threads", "t", 4, "Threads for the external tools")
	polishCmd.Flags().Int("rounds", 2, "Number of racon polishing rounds")
	polishCmd.Flags().String("medaka-model", "r1041_e82_400bps_sup_v5.0.0", "Medaka model (empty skips medaka)")
}
