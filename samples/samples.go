/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package samples

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/gmaffy/assembly-whisperer/scheduler"
)

// genome sizes the way flye accepts them, e.g. 5m, 4.6m, 2.1g, 350k.
var genomeSizeRe = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?[kmgKMG]?$`)

// ValidationError points at the offending sample-sheet line.
type ValidationError struct {
	Path   string
	Line   int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s:%d: field %q: %s", e.Path, e.Line, e.Field, e.Reason)
}

// ReadSampleSheet parses a tab-separated sample sheet into job descriptors,
// preserving line order. Columns:
//
//	sample_name  input_file  read_type  genome_size(optional)
//
// Lines starting with # and blank lines are skipped. Any malformed line
// aborts parsing with a ValidationError, so a bad sheet never dispatches
// a partial batch.
func ReadSampleSheet(path string) ([]scheduler.JobDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sample sheet: %w", err)
	}
	defer f.Close()

	var jobs []scheduler.JobDescriptor
	seen := make(map[string]int)

	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		desc, vErr := parseRow(fields)
		if vErr != nil {
			vErr.Path = path
			vErr.Line = lineNo
			return nil, vErr
		}
		if prev, dup := seen[desc.SampleName]; dup {
			return nil, &ValidationError{Path: path, Line: lineNo, Field: "sample_name",
				Reason: fmt.Sprintf("duplicate sample name %q (first seen on line %d)", desc.SampleName, prev)}
		}
		seen[desc.SampleName] = lineNo
		jobs = append(jobs, desc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading sample sheet: %w", err)
	}
	return jobs, nil
}

func parseRow(fields []string) (scheduler.JobDescriptor, *ValidationError) {
	var desc scheduler.JobDescriptor

	if len(fields) < 3 {
		missing := []string{"sample_name", "input_file", "read_type"}[len(fields)]
		return desc, &ValidationError{Field: missing, Reason: "missing field"}
	}

	name := strings.TrimSpace(fields[0])
	if name == "" {
		return desc, &ValidationError{Field: "sample_name", Reason: "missing field"}
	}
	if strings.ContainsAny(name, " /") {
		return desc, &ValidationError{Field: "sample_name",
			Reason: fmt.Sprintf("sample name %q may not contain spaces or slashes", name)}
	}

	input := strings.TrimSpace(fields[1])
	if input == "" {
		return desc, &ValidationError{Field: "input_file", Reason: "missing field"}
	}
	if _, err := os.Stat(input); err != nil {
		return desc, &ValidationError{Field: "input_file",
			Reason: fmt.Sprintf("input path %s does not exist", input)}
	}

	readType, err := scheduler.ParseReadType(strings.TrimSpace(fields[2]))
	if err != nil {
		return desc, &ValidationError{Field: "read_type", Reason: err.Error()}
	}

	genomeSize := ""
	if len(fields) >= 4 {
		genomeSize = strings.TrimSpace(fields[3])
		if genomeSize != "" && !genomeSizeRe.MatchString(genomeSize) {
			return desc, &ValidationError{Field: "genome_size",
				Reason: fmt.Sprintf("malformed size token %q (expected e.g. 5m, 4.6m, 350k)", genomeSize)}
		}
	}

	desc = scheduler.JobDescriptor{
		SampleName: name,
		InputPath:  input,
		ReadType:   readType,
		GenomeSize: genomeSize,
	}
	return desc, nil
}
