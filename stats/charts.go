/*
Copyright © 2025 Godwin Mafireyi (mafireyi@gmail.com)
*/
package stats

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// lengthHistogram bins the contig lengths into a bar chart.
func lengthHistogram(st AssemblyStats, bins int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: "Contig Length Distribution"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Contigs"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Length (bp)"}),
	)

	if bins < 1 {
		bins = 50
	}
	width := st.LongestContig/bins + 1
	counts := make([]int, bins)
	for _, l := range st.Lengths {
		idx := l / width
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	var labels []string
	var data []opts.BarData
	for i, c := range counts {
		labels = append(labels, fmt.Sprintf("%d", i*width))
		data = append(data, opts.BarData{Value: c})
	}
	bar.SetXAxis(labels).AddSeries("contigs", data)
	return bar
}

// cumulativeChart plots cumulative assembly length by contig rank.
func cumulativeChart(st AssemblyStats) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: "Cumulative Length"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cumulative length (bp)"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Contig rank"}),
	)

	var x []int
	var yData []opts.LineData
	cumulative := 0
	for i, l := range st.Lengths {
		cumulative += l
		x = append(x, i+1)
		yData = append(yData, opts.LineData{Value: cumulative})
	}
	line.SetXAxis(x).AddSeries("cumulative", yData)
	return line
}

// nxChart plots the Nx curve for x in 1..99, with the N50 called out.
func nxChart(st AssemblyStats) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Nx Curve (N50 = %d bp)", st.N50)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Nx (bp)"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X (%)"}),
	)

	var x []int
	var yData []opts.LineData
	for pct := 1; pct < 100; pct++ {
		x = append(x, pct)
		yData = append(yData, opts.LineData{Value: calculateNx(st.Lengths, st.TotalLength, pct)})
	}
	line.SetXAxis(x).AddSeries("Nx", yData)
	return line
}

// WriteCharts renders the length distribution, cumulative length and Nx
// curve for one assembly into a single HTML page.
func (st AssemblyStats) WriteCharts(outputHTML string, bins int) error {
	fmt.Printf("Creating assembly charts ...\n\n")

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(lengthHistogram(st, bins), cumulativeChart(st), nxChart(st))

	f, err := os.Create(outputHTML)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
