/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package stats

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"gonum.org/v1/gonum/stat"
)

// AssemblyStats are the summary statistics of one assembly fasta.
type AssemblyStats struct {
	File           string  `json:"file"`
	NumContigs     int     `json:"num_contigs"`
	TotalLength    int     `json:"total_length"`
	LongestContig  int     `json:"longest_contig"`
	ShortestContig int     `json:"shortest_contig"`
	MeanLength     float64 `json:"mean_length"`
	MedianLength   float64 `json:"median_length"`
	N50            int     `json:"n50"`
	N90            int     `json:"n90"`
	L50            int     `json:"l50"`
	L90            int     `json:"l90"`
	GCContent      float64 `json:"gc_content"`
	NContent       float64 `json:"n_content"`

	// Lengths holds contig lengths sorted longest first. Kept out of the
	// JSON/TSV exports, used by the charts.
	Lengths []int `json:"-"`
}

// Analyze reads an assembly fasta (plain or gzipped) and computes its
// summary statistics.
func Analyze(fastaPath string) (AssemblyStats, error) {
	var st AssemblyStats
	st.File = fastaPath

	fna, err := os.Open(fastaPath)
	if err != nil {
		return st, fmt.Errorf("opening assembly %s: %w", fastaPath, err)
	}
	defer fna.Close()

	var reader io.Reader = fna
	if strings.HasSuffix(fastaPath, ".gz") {
		gzReader, gzErr := gzip.NewReader(fna)
		if gzErr != nil {
			return st, fmt.Errorf("reading gzipped assembly: %w", gzErr)
		}
		defer gzReader.Close()
		reader = gzReader
	}

	r := fasta.NewReader(reader, linear.NewSeq("", nil, alphabet.DNA))
	sc := seqio.NewScanner(r)

	var gcCount, nCount int
	for sc.Next() {
		seq := sc.Seq().(*linear.Seq)
		st.Lengths = append(st.Lengths, seq.Len())
		for _, letter := range seq.Seq {
			switch letter {
			case 'G', 'C', 'g', 'c':
				gcCount++
			case 'N', 'n':
				nCount++
			}
		}
	}
	if err := sc.Error(); err != nil {
		return st, fmt.Errorf("parsing assembly %s: %w", fastaPath, err)
	}
	if len(st.Lengths) == 0 {
		return st, fmt.Errorf("no sequences found in %s", fastaPath)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(st.Lengths)))

	st.NumContigs = len(st.Lengths)
	for _, l := range st.Lengths {
		st.TotalLength += l
	}
	st.LongestContig = st.Lengths[0]
	st.ShortestContig = st.Lengths[len(st.Lengths)-1]
	st.MeanLength = float64(st.TotalLength) / float64(st.NumContigs)
	st.MedianLength = medianLength(st.Lengths)
	st.N50 = calculateNx(st.Lengths, st.TotalLength, 50)
	st.N90 = calculateNx(st.Lengths, st.TotalLength, 90)
	st.L50 = calculateLx(st.Lengths, st.TotalLength, 50)
	st.L90 = calculateLx(st.Lengths, st.TotalLength, 90)
	st.GCContent = 100 * float64(gcCount) / float64(st.TotalLength)
	st.NContent = 100 * float64(nCount) / float64(st.TotalLength)
	return st, nil
}

// calculateNx is the length of the shortest contig in the minimal set
// covering x% of the assembly. Lengths must be sorted longest first.
func calculateNx(lengths []int, total int, x int) int {
	target := float64(total) * float64(x) / 100
	cumulative := 0
	for _, l := range lengths {
		cumulative += l
		if float64(cumulative) >= target {
			return l
		}
	}
	return 0
}

// calculateLx is the number of contigs needed to reach x% of total length.
func calculateLx(lengths []int, total int, x int) int {
	target := float64(total) * float64(x) / 100
	cumulative := 0
	for i, l := range lengths {
		cumulative += l
		if float64(cumulative) >= target {
			return i + 1
		}
	}
	return len(lengths)
}

func medianLength(lengths []int) float64 {
	asc := make([]float64, len(lengths))
	for i, l := range lengths {
		asc[len(lengths)-1-i] = float64(l)
	}
	return stat.Quantile(0.5, stat.Empirical, asc, nil)
}

func (st AssemblyStats) Print(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(w, "Assembly Statistics: %s\n", st.File)
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(w, "Number of contigs:     %d\n", st.NumContigs)
	fmt.Fprintf(w, "Total length:          %d bp\n", st.TotalLength)
	fmt.Fprintf(w, "Longest contig:        %d bp\n", st.LongestContig)
	fmt.Fprintf(w, "Shortest contig:       %d bp\n", st.ShortestContig)
	fmt.Fprintf(w, "Mean contig length:    %.0f bp\n", st.MeanLength)
	fmt.Fprintf(w, "Median contig length:  %.0f bp\n", st.MedianLength)
	fmt.Fprintf(w, "N50:                   %d bp\n", st.N50)
	fmt.Fprintf(w, "N90:                   %d bp\n", st.N90)
	fmt.Fprintf(w, "L50:                   %d contigs\n", st.L50)
	fmt.Fprintf(w, "L90:                   %d contigs\n", st.L90)
	fmt.Fprintf(w, "GC content:            %.2f%%\n", st.GCContent)
	fmt.Fprintf(w, "N content:             %.2f%%\n", st.NContent)
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", 50))
}

func (st AssemblyStats) WriteJSON(path string) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func (st AssemblyStats) WriteTSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "file\tnum_contigs\ttotal_length\tlongest_contig\tshortest_contig\tmean_length\tmedian_length\tn50\tn90\tl50\tl90\tgc_content\tn_content")
	_, err = fmt.Fprintf(f, "%s\t%d\t%d\t%d\t%d\t%.2f\t%.2f\t%d\t%d\t%d\t%d\t%.2f\t%.2f\n",
		st.File, st.NumContigs, st.TotalLength, st.LongestContig, st.ShortestContig,
		st.MeanLength, st.MedianLength, st.N50, st.N90, st.L50, st.L90, st.GCContent, st.NContent)
	return err
}
