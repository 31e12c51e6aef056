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
	"github.com/gmaffy/assembly-whisperer/utils"
)

func minimapPreset(rt scheduler.ReadType) string {
	switch rt {
	case scheduler.ReadTypePacbio:
		return "map-pb"
	case scheduler.ReadTypePacbioHifi:
		return "map-hifi"
	default:
		return "map-ont"
	}
}

// Polish runs the configured number of minimap2+racon rounds, then a medaka
// consensus pass for nanopore reads. Returns the path of the final polished
// assembly, copied to <out>/<sample>.polished.fasta.
func Polish(assemblyFasta string, readsPath string, rt scheduler.ReadType, outDir string, sampleName string, threads int, p utils.Params) (string, error) {
	polishDir := filepath.Join(outDir, "polish")
	if err := os.MkdirAll(polishDir, 0755); err != nil {
		return "", fmt.Errorf("creating polish directory: %w", err)
	}

	threadsArg := strconv.Itoa(threads)
	preset := minimapPreset(rt)
	current := assemblyFasta

	for round := 1; round <= p.RaconRounds; round++ {
		fmt.Printf("Racon polishing round %d of %d ...\n", round, p.RaconRounds)

		alnSam := filepath.Join(polishDir, fmt.Sprintf("round%d.sam", round))
		err := utils.RunCmdToFile(alnSam, "minimap2", "-ax", preset, "-t", threadsArg, current, readsPath)
		if err != nil {
			return "", fmt.Errorf("minimap2 round %d: %w", round, err)
		}

		polished := filepath.Join(polishDir, fmt.Sprintf("racon_round%d.fasta", round))
		err = utils.RunCmdToFile(polished, "racon", "-t", threadsArg, readsPath, alnSam, current)
		if err != nil {
			return "", fmt.Errorf("racon round %d: %w", round, err)
		}

		_ = os.Remove(alnSam) // sams are huge, drop them as we go
		current = polished
	}

	if rt == scheduler.ReadTypeNanopore && p.MedakaModel != "" {
		fmt.Println("Running medaka consensus ...")
		medakaDir := filepath.Join(polishDir, "medaka")
		err := utils.RunCmdVerbose("medaka_consensus",
			"-i", readsPath, "-d", current, "-o", medakaDir, "-t", threadsArg, "-m", p.MedakaModel)
		if err != nil {
			return "", fmt.Errorf("medaka: %w", err)
		}
		current = filepath.Join(medakaDir, "consensus.fasta")
	}

	finalPath := filepath.Join(outDir, sampleName+".polished.fasta")
	if err := utils.RunCmdVerbose("cp", current, finalPath); err != nil {
		return "", err
	}
	return finalPath, nil
}

// Quast runs QUAST quality checks on an assembly. Optional: a missing quast
// install is reported, not fatal to the pipeline.
func Quast(assemblyFasta string, outDir string, threads int) error {
	if err := utils.CheckDeps("quast.py"); err != nil {
		fmt.Println("QUAST not found on PATH, skipping QC:", err)
		return nil
	}
	return utils.RunCmdVerbose("quast.py", assemblyFasta, "-o", filepath.Join(outDir, "quast"), "-t", strconv.Itoa(threads))
}
