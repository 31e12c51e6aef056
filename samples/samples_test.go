/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package samples

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gmaffy/assembly-whisperer/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSheet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "samples.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func touchReads(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("@r1\nACGT\n+\nIIII\n"), 0644))
	return path
}

func TestReadSampleSheet(t *testing.T) {
	reads1 := touchReads(t, "barley_01.fastq")
	reads2 := touchReads(t, "barley_02.fastq")

	sheet := writeSheet(t, fmt.Sprintf(`# sample_name	input_file	read_type	genome_size
barley_01	%s	nanopore	5.1m

barley_02	%s	pacbio-hifi
`, reads1, reads2))

	jobs, err := ReadSampleSheet(sheet)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, scheduler.JobDescriptor{
		SampleName: "barley_01",
		InputPath:  reads1,
		ReadType:   scheduler.ReadTypeNanopore,
		GenomeSize: "5.1m",
	}, jobs[0])
	assert.Equal(t, "barley_02", jobs[1].SampleName)
	assert.Equal(t, scheduler.ReadTypePacbioHifi, jobs[1].ReadType)
	assert.Empty(t, jobs[1].GenomeSize)
}

func TestMissingInputFileField(t *testing.T) {
	sheet := writeSheet(t, "# header comment\nbarley_01\n")

	_, err := ReadSampleSheet(sheet)
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 2, vErr.Line)
	assert.Equal(t, "input_file", vErr.Field)
	assert.Equal(t, "missing field", vErr.Reason)
}

func TestNonexistentInputPath(t *testing.T) {
	sheet := writeSheet(t, "barley_01\t/no/such/reads.fastq\tnanopore\n")

	_, err := ReadSampleSheet(sheet)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "input_file", vErr.Field)
	assert.Contains(t, vErr.Reason, "does not exist")
}

func TestUnrecognizedReadType(t *testing.T) {
	reads := touchReads(t, "reads.fastq")
	sheet := writeSheet(t, "barley_01\t"+reads+"\tillumina\n")

	_, err := ReadSampleSheet(sheet)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "read_type", vErr.Field)
	assert.Contains(t, vErr.Reason, "illumina")
}

func TestMalformedGenomeSize(t *testing.T) {
	reads := touchReads(t, "reads.fastq")
	sheet := writeSheet(t, "barley_01\t"+reads+"\tnanopore\tfive-megabases\n")

	_, err := ReadSampleSheet(sheet)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "genome_size", vErr.Field)
	assert.Contains(t, vErr.Reason, "malformed size token")
}

func TestDuplicateSampleName(t *testing.T) {
	reads := touchReads(t, "reads.fastq")
	row := "barley_01\t" + reads + "\tnanopore\n"
	sheet := writeSheet(t, row+row)

	_, err := ReadSampleSheet(sheet)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 2, vErr.Line)
	assert.Contains(t, vErr.Reason, "duplicate sample name")
}

func TestOrderPreserved(t *testing.T) {
	var rows string
	names := []string{"zulu", "alpha", "mike", "echo"}
	for _, name := range names {
		rows += name + "\t" + touchReads(t, name+".fastq") + "\tnanopore\n"
	}
	jobs, err := ReadSampleSheet(writeSheet(t, rows))
	require.NoError(t, err)
	require.Len(t, jobs, len(names))
	for i, name := range names {
		assert.Equal(t, name, jobs[i].SampleName)
	}
}
