// Package report renders analysis results as HTML charts and text summaries.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/spectra"
)

func toBarItems(counts []uint64) []opts.BarData {
	out := make([]opts.BarData, len(counts))
	for i, c := range counts {
		out[i] = opts.BarData{Value: c}
	}
	return out
}

// buckets returns the labels and counts of the nonzero buckets.
func buckets(s spectra.Spectrum) ([]string, []uint64) {
	var labels []string
	var counts []uint64
	for v, c := range s {
		if c == 0 {
			continue
		}
		labels = append(labels, strconv.Itoa(v))
		counts = append(counts, c)
	}
	return labels, counts
}

func newSpectrumChart(title, name string, s spectra.Spectrum) *charts.Bar {
	labels, counts := buckets(s)
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    name,
			Subtitle: fmt.Sprintf("%s, total %d", title, s.Total()),
		}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "450px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)
	bar.SetXAxis(labels).
		AddSeries(name, toBarItems(counts)).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return bar
}

// SpectrumChart writes an HTML page with one bar chart per spectrum. A nil
// spectrum is skipped.
func SpectrumChart(w io.Writer, title string, odds, odws spectra.Spectrum) error {
	if odds == nil && odws == nil {
		return fmt.Errorf("no spectrum to render")
	}
	page := components.NewPage()
	page.PageTitle = title
	if odds != nil {
		page.AddCharts(newSpectrumChart(title, "ODDS", odds))
	}
	if odws != nil {
		page.AddCharts(newSpectrumChart(title, "ODWS", odws))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render spectrum page: %w", err)
	}
	return nil
}
