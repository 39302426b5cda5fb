package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/paleodata/lipdk"
)

// TimeseriesStack plots each series as its own line chart, stacked
// vertically on one page in SortBy order (table order when unset). The
// table is exploded to long form and the charts built from that, one
// observation per point; missing values break the line rather than
// interpolating through it.
func TimeseriesStack(ts lipdk.TimeSeries, options ...Option) *components.Page {
	o := newOptions(options...)

	rows := make(lipdk.TimeSeries, len(ts))
	copy(rows, ts)
	if o.SortBy != "" {
		sortRows(rows, o.SortBy)
	}
	if o.MaxSeries > 0 && len(rows) > o.MaxSeries {
		rows = rows[:o.MaxSeries]
	}
	// The vectors are rebuilt from the long form so the plot draws exactly
	// what Explode reports; units come back from the source rows by series
	// identity.
	type seriesKey struct{ dataset, site, variable, tsid string }
	units := make(map[seriesKey][2]string, len(rows))
	for i := range rows {
		k := seriesKey{rows[i].Dataset, rows[i].Site, rows[i].Variable, rows[i].TSid}
		units[k] = [2]string{rows[i].Units, rows[i].TimeUnits}
	}
	long := lipdk.Collapse(rows.Explode())
	for i := range long {
		u := units[seriesKey{long[i].Dataset, long[i].Site, long[i].Variable, long[i].TSid}]
		long[i].Units, long[i].TimeUnits = u[0], u[1]
	}
	rows = long

	page := components.NewPage()
	for _, s := range rows {
		page.AddCharts(seriesLine(&s, o))
	}
	if len(rows) == 0 {
		// degenerate figure: a titled, empty chart
		empty := charts.NewLine()
		empty.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: o.Title, Subtitle: "no series matched"}))
		page.AddCharts(empty)
	}
	return page
}

func seriesLine(s *lipdk.Series, o Options) *charts.Line {
	labels := make([]string, len(s.Time))
	data := make([]opts.LineData, len(s.Values))
	for j := range s.Time {
		labels[j] = fmt.Sprintf("%g", s.Time[j])
		if math.IsNaN(s.Values[j]) {
			data[j] = opts.LineData{Value: nil}
		} else {
			data[j] = opts.LineData{Value: s.Values[j]}
		}
	}

	subtitle := s.Site
	if s.Units != "" {
		subtitle = fmt.Sprintf("%v (%v)", subtitle, s.Units)
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: o.Width, Height: "260px"}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%v %v", s.Dataset, s.Variable), Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	line.SetXAxis(labels).AddSeries(s.Variable, data)
	return line
}

// sortRows orders the table by a column, numerically when the column is
// numeric and lexically otherwise. Unknown columns leave the order alone.
func sortRows(rows lipdk.TimeSeries, col string) {
	if len(rows) == 0 {
		return
	}
	if _, ok := rows[0].Num(col); ok {
		sort.SliceStable(rows, func(i, j int) bool {
			a, _ := rows[i].Num(col)
			b, _ := rows[j].Num(col)
			return a < b || math.IsNaN(b) && !math.IsNaN(a)
		})
		return
	}
	if _, ok := rows[0].Attr(col); ok {
		sort.SliceStable(rows, func(i, j int) bool {
			a, _ := rows[i].Attr(col)
			b, _ := rows[j].Attr(col)
			return a < b
		})
	}
}
