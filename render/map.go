// Package render builds HTML figures (site maps, dashboards, stacked time
// series plots) from a TimeSeries table using go-echarts. Builders return
// chart values; WriteHTML renders one to a file. All builders accept an
// empty table and produce a degenerate figure rather than failing.
package render

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/paleodata/lipdk"
)

// site is one map point: a dataset with the number of series it contributes.
type site struct {
	name  string
	lon   float64
	lat   float64
	count int
}

// SiteMap draws the table's sites on a map, one point per dataset, sized by
// how many series the dataset contributes. With ColorBy set, datasets are
// split into one colored series per distinct value of that column.
func SiteMap(ts lipdk.TimeSeries, options ...Option) *charts.Geo {
	o := newOptions(options...)

	groups := []string{}
	sites := map[string][]site{}
	idx := map[[2]string]int{} // (group, dataset) -> position in its group
	maxCount := 0
	for i := range ts {
		s := &ts[i]
		group := ""
		if o.ColorBy != "" {
			group, _ = s.Attr(o.ColorBy)
			if group == "" {
				group = "(none)"
			}
		}
		if _, ok := sites[group]; !ok {
			groups = append(groups, group)
		}
		k := [2]string{group, s.Dataset}
		j, ok := idx[k]
		if !ok {
			idx[k] = len(sites[group])
			sites[group] = append(sites[group], site{name: siteLabel(s), lon: s.Lon, lat: s.Lat})
			j = idx[k]
		}
		sites[group][j].count++
		if sites[group][j].count > maxCount {
			maxCount = sites[group][j].count
		}
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: o.Width, Height: o.Height}),
		charts.WithTitleOpts(opts.Title{Title: o.Title, Subtitle: o.Subtitle}),
		charts.WithGeoComponentOpts(opts.GeoComponent{Map: o.MapName}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithVisualMapOpts(opts.VisualMap{Calculable: true, Max: float32(maxCount)}),
	)
	for _, group := range groups {
		data := make([]opts.GeoData, 0, len(sites[group]))
		for _, st := range sites[group] {
			data = append(data, opts.GeoData{
				Name:  st.name,
				Value: []float64{st.lon, st.lat, float64(st.count)},
			})
		}
		name := group
		if name == "" {
			name = "sites"
		}
		seriesOpts := []charts.SeriesOpts{}
		if o.Labels {
			seriesOpts = append(seriesOpts, charts.WithLabelOpts(opts.Label{Show: true, Formatter: "{b}"}))
		}
		geo.AddSeries(name, types.ChartScatter, data, seriesOpts...)
	}
	return geo
}

func siteLabel(s *lipdk.Series) string {
	if s.Site != "" {
		return s.Site
	}
	return s.Dataset
}
