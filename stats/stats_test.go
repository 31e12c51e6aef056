/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package stats

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Three contigs with hand-checkable numbers: lengths 100, 60 and 40,
// total 200, 100 GC bases and 20 Ns.
func testFasta() string {
	return ">contig_1 circular=false\n" +
		strings.Repeat("G", 50) + strings.Repeat("C", 50) + "\n" +
		">contig_2\n" +
		strings.Repeat("A", 60) + "\n" +
		">contig_3\n" +
		strings.Repeat("T", 20) + strings.Repeat("N", 20) + "\n"
}

func TestAnalyze(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assembly.fasta")
	require.NoError(t, os.WriteFile(path, []byte(testFasta()), 0644))

	st, err := Analyze(path)
	require.NoError(t, err)

	assert.Equal(t, 3, st.NumContigs)
	assert.Equal(t, 200, st.TotalLength)
	assert.Equal(t, 100, st.LongestContig)
	assert.Equal(t, 40, st.ShortestContig)
	assert.Equal(t, []int{100, 60, 40}, st.Lengths)

	// 50% of 200 is covered by the first contig alone.
	assert.Equal(t, 100, st.N50)
	assert.Equal(t, 1, st.L50)
	// 90% needs all three contigs.
	assert.Equal(t, 40, st.N90)
	assert.Equal(t, 3, st.L90)

	assert.InDelta(t, 66.67, st.MeanLength, 0.01)
	assert.InDelta(t, 60, st.MedianLength, 0.01)
	assert.InDelta(t, 50.0, st.GCContent, 0.01)
	assert.InDelta(t, 10.0, st.NContent, 0.01)
}

func TestAnalyzeGzipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assembly.fasta.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(testFasta()))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	st, err := Analyze(path)
	require.NoError(t, err)
	assert.Equal(t, 3, st.NumContigs)
	assert.Equal(t, 200, st.TotalLength)
	assert.Equal(t, 100, st.N50)
}

func TestAnalyzeEmptyFasta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.fasta")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	_, err := Analyze(path)
	assert.Error(t, err)
}

func TestCalculateNx(t *testing.T) {
	lengths := []int{50, 30, 20} // total 100
	assert.Equal(t, 50, calculateNx(lengths, 100, 50))
	assert.Equal(t, 30, calculateNx(lengths, 100, 80))
	assert.Equal(t, 20, calculateNx(lengths, 100, 90))
	assert.Equal(t, 3, calculateLx(lengths, 100, 90))
	assert.Equal(t, 1, calculateLx(lengths, 100, 50))
}

func TestWriteOutputs(t *testing.T) {
	dir := t.TempDir()
	fastaPath := filepath.Join(dir, "assembly.fasta")
	require.NoError(t, os.WriteFile(fastaPath, []byte(testFasta()), 0644))

	st, err := Analyze(fastaPath)
	require.NoError(t, err)

	jsonPath := filepath.Join(dir, "stats.json")
	require.NoError(t, st.WriteJSON(jsonPath))
	jsonData, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), `"n50": 100`)
	assert.NotContains(t, string(jsonData), "Lengths", "raw lengths stay out of the export")

	tsvPath := filepath.Join(dir, "stats.tsv")
	require.NoError(t, st.WriteTSV(tsvPath))
	tsvData, err := os.ReadFile(tsvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(tsvData)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "file\tnum_contigs"))

	chartPath := filepath.Join(dir, "charts.html")
	require.NoError(t, st.WriteCharts(chartPath, 10))
	info, err := os.Stat(chartPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "run_a.fasta")
	b := filepath.Join(dir, "run_b.fasta")
	require.NoError(t, os.WriteFile(a, []byte(testFasta()), 0644))
	require.NoError(t, os.WriteFile(b, []byte(">only\n"+strings.Repeat("A", 80)+"\n"), 0644))

	outDir := filepath.Join(dir, "cmp")
	require.NoError(t, Compare([]string{a, b}, outDir))

	table, err := os.ReadFile(filepath.Join(outDir, "assembly_comparison.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(table), "run_a")
	assert.Contains(t, string(table), "run_b")

	_, err = os.Stat(filepath.Join(outDir, "assembly_comparison.html"))
	assert.NoError(t, err)
}

func TestCompareNeedsTwoAssemblies(t *testing.T) {
	err := Compare([]string{"one.fasta"}, t.TempDir())
	assert.Error(t, err)
}
