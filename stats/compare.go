/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package stats

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/go-gota/gota/dataframe"
	"golang.org/x/sync/errgroup"
)

// Compare analyzes several assemblies in parallel and writes a comparison
// table (CSV via a gota dataframe) plus side-by-side bar charts.
func Compare(fastaPaths []string, outDir string) error {
	if len(fastaPaths) < 2 {
		return fmt.Errorf("need at least 2 assemblies for comparison, got %d", len(fastaPaths))
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	results := make([]AssemblyStats, len(fastaPaths))
	var g errgroup.Group
	for i := range fastaPaths {
		i := i
		g.Go(func() error {
			st, err := Analyze(fastaPaths[i])
			if err != nil {
				return err
			}
			results[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// ------------------------------------------- Table ----------------------------------------------- //
	type comparisonRow struct {
		Assembly    string  `dataframe:"assembly"`
		NumContigs  int     `dataframe:"num_contigs"`
		TotalLength int     `dataframe:"total_length"`
		N50         int     `dataframe:"n50"`
		L50         int     `dataframe:"l50"`
		GCContent   float64 `dataframe:"gc_content"`
	}
	rows := make([]comparisonRow, len(results))
	for i, st := range results {
		rows[i] = comparisonRow{
			Assembly:    assemblyName(st.File),
			NumContigs:  st.NumContigs,
			TotalLength: st.TotalLength,
			N50:         st.N50,
			L50:         st.L50,
			GCContent:   st.GCContent,
		}
	}
	df := dataframe.LoadStructs(rows)
	fmt.Println("\nAssembly Comparison:")
	fmt.Println(df)

	tablePath := filepath.Join(outDir, "assembly_comparison.csv")
	tableFile, err := os.Create(tablePath)
	if err != nil {
		return err
	}
	defer tableFile.Close()
	if err := df.WriteCSV(tableFile, dataframe.WriteHeader(true)); err != nil {
		return fmt.Errorf("writing comparison table: %w", err)
	}
	fmt.Println("Comparison table saved at:", tablePath)

	// ------------------------------------------- Charts ----------------------------------------------- //
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		comparisonBar("Number of Contigs", results, func(st AssemblyStats) any { return st.NumContigs }),
		comparisonBar("Total Length (bp)", results, func(st AssemblyStats) any { return st.TotalLength }),
		comparisonBar("N50 (bp)", results, func(st AssemblyStats) any { return st.N50 }),
		comparisonBar("GC Content (%)", results, func(st AssemblyStats) any { return st.GCContent }),
	)

	htmlPath := filepath.Join(outDir, "assembly_comparison.html")
	f, err := os.Create(htmlPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return err
	}
	fmt.Println("Comparison charts saved at:", htmlPath)
	return nil
}

func comparisonBar(title string, results []AssemblyStats, value func(AssemblyStats) any) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: title}),
	)

	var names []string
	var data []opts.BarData
	for _, st := range results {
		names = append(names, assemblyName(st.File))
		data = append(data, opts.BarData{Value: value(st)})
	}
	bar.SetXAxis(names).AddSeries(title, data)
	return bar
}

func assemblyName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base
}
