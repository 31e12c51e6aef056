/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package utils

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Params are the pipeline tuning knobs, read from a colon-separated
// key: value file so a whole run can be reproduced from one file.
type Params struct {
	Threads     int
	MinLength   int
	MinQuality  float64
	SampleFrac  float64
	RaconRounds int
	MedakaModel string
	FlyeExtra   []string
}

// DefaultParams are used when no params file is given.
func DefaultParams() Params {
	return Params{
		Threads:     4,
		MinLength:   1000,
		MinQuality:  7,
		RaconRounds: 2,
		MedakaModel: "r1041_e82_400bps_sup_v5.0.0",
	}
}

func ReadParams(paramsPath string) (Params, error) {
	paramsFile, err := os.Open(paramsPath)
	if err != nil {
		return Params{}, err
	}
	defer paramsFile.Close()
	cfg := DefaultParams()

	scanner := bufio.NewScanner(paramsFile)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "threads":
			cfg.Threads, err = strconv.Atoi(value)
		case "min_length":
			cfg.MinLength, err = strconv.Atoi(value)
		case "min_quality":
			cfg.MinQuality, err = strconv.ParseFloat(value, 64)
		case "sample_fraction":
			cfg.SampleFrac, err = strconv.ParseFloat(value, 64)
		case "racon_rounds":
			cfg.RaconRounds, err = strconv.Atoi(value)
		case "medaka_model":
			cfg.MedakaModel = value
		case "flye_extra":
			cfg.FlyeExtra = strings.Fields(value)
		}
		if err != nil {
			return cfg, fmt.Errorf("params file line %d: bad value for %s: %w", lineNo, key, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// RunCmdVerbose runs an external tool with a discrete argument list, wiring
// its output to the terminal. No shell is involved, so sample names and
// paths never get re-interpreted.
func RunCmdVerbose(name string, args ...string) error {
	fmt.Println(name, strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// RunCmdToFile is RunCmdVerbose with stdout redirected to a file, for tools
// that write their result to stdout (seqtk, minimap2).
func RunCmdToFile(outPath string, name string, args ...string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	fmt.Println(name, strings.Join(args, " "), ">", outPath)
	cmd := exec.Command(name, args...)
	cmd.Stdout = out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// CheckDeps verifies the external tools are on PATH before any job starts.
func CheckDeps(tools ...string) error {
	var missing []string
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required tools on PATH: %s", strings.Join(missing, ", "))
	}
	return nil
}
