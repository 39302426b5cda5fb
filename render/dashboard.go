package render

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/paleodata/lipdk"
)

// Dashboard assembles a one-page overview of the table: the site map, row
// counts by ocean and by variable, a resolution histogram, and temporal
// coverage through time.
func Dashboard(ts lipdk.TimeSeries, options ...Option) *components.Page {
	o := newOptions(options...)
	title := o.Title
	if title == "" {
		title = fmt.Sprintf("%d series", len(ts))
	}

	page := components.NewPage()
	page.AddCharts(
		SiteMap(ts, append(options, WithTitle(title, o.Subtitle))...),
		countBar(ts, "ocean", "Series per ocean"),
		countBar(ts, "variable", "Series per variable"),
		resolutionHist(ts),
		coverageLine(ts),
	)
	return page
}

// countBar charts row counts per distinct value of a string column, most
// frequent first.
func countBar(ts lipdk.TimeSeries, col, title string) *charts.Bar {
	counts := ts.CountBy(col)
	keys := lipdk.SortedKeys(counts)
	data := make([]opts.BarData, 0, len(keys))
	for _, k := range keys {
		data = append(data, opts.BarData{Value: counts[k]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	bar.SetXAxis(keys).AddSeries("series", data)
	return bar
}

var resolutionBins = []struct {
	label string
	hi    float64
}{
	{"subannual", 1},
	{"1-5 yr", 5},
	{"5-20 yr", 20},
	{"20+ yr", math.Inf(1)},
}

// resolutionHist buckets rows by mean time step.
func resolutionHist(ts lipdk.TimeSeries) *charts.Bar {
	counts := make([]int, len(resolutionBins))
	for i := range ts {
		r := ts[i].Resolution.Mean
		if math.IsNaN(r) {
			continue
		}
		for j, bin := range resolutionBins {
			if r < bin.hi {
				counts[j]++
				break
			}
		}
	}
	labels := make([]string, len(resolutionBins))
	data := make([]opts.BarData, len(resolutionBins))
	for j, bin := range resolutionBins {
		labels[j] = bin.label
		data[j] = opts.BarData{Value: counts[j]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Resolution (mean time step)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	bar.SetXAxis(labels).AddSeries("series", data)
	return bar
}

// coverageLine counts, per decade, how many series' time spans cover it.
func coverageLine(ts lipdk.TimeSeries) *charts.Line {
	lo, hi := math.NaN(), math.NaN()
	spans := make([][2]float64, 0, len(ts))
	for i := range ts {
		min, max := ts[i].TimeSpan()
		if math.IsNaN(min) {
			continue
		}
		spans = append(spans, [2]float64{min, max})
		if math.IsNaN(lo) || min < lo {
			lo = min
		}
		if math.IsNaN(hi) || max > hi {
			hi = max
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Temporal coverage"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	if len(spans) == 0 {
		return line
	}

	start := int(math.Floor(lo/10) * 10)
	end := int(math.Ceil(hi/10) * 10)
	labels := []string{}
	data := []opts.LineData{}
	for decade := start; decade <= end; decade += 10 {
		n := 0
		for _, sp := range spans {
			if sp[0] <= float64(decade+10) && sp[1] >= float64(decade) {
				n++
			}
		}
		labels = append(labels, fmt.Sprintf("%d", decade))
		data = append(data, opts.LineData{Value: n})
	}
	line.SetXAxis(labels).AddSeries("series covering decade", data)
	return line
}
