/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package assembly

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gmaffy/assembly-whisperer/utils"
	"golang.org/x/exp/rand"
)

// FilterReads quality-trims and length-filters long reads with seqtk, and
// optionally subsamples them. Returns the path of the filtered reads.
func FilterReads(inputPath string, outputPath string, p utils.Params) (string, error) {
	fmt.Printf("Filtering reads %s ...\n", inputPath)

	trimmed := outputPath + ".trim.tmp"
	errRate := qualityToErrorRate(p.MinQuality)
	if err := utils.RunCmdToFile(trimmed, "seqtk", "trimfq", "-q", strconv.FormatFloat(errRate, 'f', -1, 64), inputPath); err != nil {
		return "", fmt.Errorf("quality trimming: %w", err)
	}

	if err := utils.RunCmdToFile(outputPath, "seqtk", "seq", "-L", strconv.Itoa(p.MinLength), trimmed); err != nil {
		return "", fmt.Errorf("length filtering: %w", err)
	}

	if p.SampleFrac > 0 && p.SampleFrac < 1 {
		seed := rand.New(rand.NewSource(uint64(time.Now().UnixNano()))).Uint64() % 100000
		fmt.Printf("Subsampling to fraction %.2f (seed %d) ...\n", p.SampleFrac, seed)
		sampled := outputPath + ".sample.tmp"
		err := utils.RunCmdToFile(sampled, "seqtk", "sample",
			"-s"+strconv.FormatUint(seed, 10), outputPath, strconv.FormatFloat(p.SampleFrac, 'f', -1, 64))
		if err != nil {
			return "", fmt.Errorf("subsampling: %w", err)
		}
		if err := utils.RunCmdVerbose("mv", sampled, outputPath); err != nil {
			return "", err
		}
	}

	_ = utils.RunCmdVerbose("rm", "-f", trimmed)
	return outputPath, nil
}

// qualityToErrorRate converts a phred quality threshold to the error-rate
// argument seqtk trimfq expects.
func qualityToErrorRate(q float64) float64 {
	if q <= 0 {
		return 0.05
	}
	return math.Pow(10, -q/10)
}
