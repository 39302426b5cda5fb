package lipdk

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Series is one row of the flattened time series table: a single measured
// variable at a single site, with the metadata attributes that filters and
// plots key off of, and parallel Time/Values vectors.
type Series struct {
	Dataset     string
	Site        string
	ArchiveType string
	Ocean       string
	Lat         float64
	Lon         float64
	Elevation   float64
	Species     string
	Group       string
	Variable    string
	Units       string
	TSid        string
	TimeUnits   string
	Region      string
	Resolution  Resolution
	Time        []float64
	Values      []float64
}

// Resolution summarizes the spacing of a series' time axis.
type Resolution struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// TimeSeries is the flattened table: one Series per (dataset, table,
// variable). Filtering produces subsets in input row order.
type TimeSeries []Series

// Attr returns the named string attribute of the series. The second return
// is false for column names that are not string-valued.
func (s *Series) Attr(name string) (string, bool) {
	switch name {
	case "dataset":
		return s.Dataset, true
	case "site":
		return s.Site, true
	case "archive":
		return s.ArchiveType, true
	case "ocean":
		return s.Ocean, true
	case "species":
		return s.Species, true
	case "group":
		return s.Group, true
	case "variable":
		return s.Variable, true
	case "units":
		return s.Units, true
	case "tsid":
		return s.TSid, true
	case "region":
		return s.Region, true
	}
	return "", false
}

// Num returns the named numeric attribute of the series. The second return
// is false for column names that are not numeric.
func (s *Series) Num(name string) (float64, bool) {
	switch name {
	case "lat":
		return s.Lat, true
	case "lon":
		return s.Lon, true
	case "elevation":
		return s.Elevation, true
	case "resolution_min":
		return s.Resolution.Min, true
	case "resolution_max":
		return s.Resolution.Max, true
	case "resolution_mean":
		return s.Resolution.Mean, true
	case "resolution_median":
		return s.Resolution.Median, true
	}
	return 0, false
}

// StringColumns lists the filterable string-valued column names.
func StringColumns() []string {
	return []string{"dataset", "site", "archive", "ocean", "species", "group", "variable", "units", "tsid", "region"}
}

// NumericColumns lists the filterable numeric column names.
func NumericColumns() []string {
	return []string{"lat", "lon", "elevation", "resolution_min", "resolution_max", "resolution_mean", "resolution_median"}
}

// IsColumn reports whether name is a known filterable column.
func IsColumn(name string) bool {
	s := Series{}
	if _, ok := s.Attr(name); ok {
		return true
	}
	_, ok := s.Num(name)
	return ok
}

// TimeSpan returns the min and max of the series' time axis, ignoring NaN
// entries. Both returns are NaN for a series with no finite times.
func (s *Series) TimeSpan() (min, max float64) {
	min, max = math.NaN(), math.NaN()
	for _, t := range s.Time {
		if math.IsNaN(t) {
			continue
		}
		if math.IsNaN(min) || t < min {
			min = t
		}
		if math.IsNaN(max) || t > max {
			max = t
		}
	}
	return min, max
}

// ExtractTimeSeries flattens a Library into a TimeSeries table. Each
// measurement table must have exactly one time column (year or age); each
// numeric non-time column becomes one row. Text columns carry no measurement
// values and are skipped.
func ExtractTimeSeries(lib *Library) (TimeSeries, error) {
	ts := TimeSeries{}
	for _, ds := range lib.Datasets {
		for _, tbl := range ds.Tables {
			var timeVar *Variable
			for i := range tbl.Columns {
				if tbl.Columns[i].IsTime() {
					if timeVar != nil {
						return nil, errors.Errorf("dataset %v table %v: multiple time columns ('%v' and '%v')",
							ds.Name, tbl.Name, timeVar.Name, tbl.Columns[i].Name)
					}
					timeVar = &tbl.Columns[i]
				}
			}
			if timeVar == nil {
				return nil, errors.Errorf("dataset %v table %v: no time column", ds.Name, tbl.Name)
			}
			if !timeVar.IsNumeric() {
				return nil, errors.Errorf("dataset %v table %v: time column '%v' is not numeric", ds.Name, tbl.Name, timeVar.Name)
			}
			for i := range tbl.Columns {
				col := &tbl.Columns[i]
				if col.IsTime() || !col.IsNumeric() {
					continue
				}
				if len(col.Values) != len(timeVar.Values) {
					return nil, errors.Errorf("dataset %v table %v: column '%v' has %d values but time has %d",
						ds.Name, tbl.Name, col.Name, len(col.Values), len(timeVar.Values))
				}
				s := Series{
					Dataset:     ds.Name,
					Site:        ds.Geo.SiteName,
					ArchiveType: ds.ArchiveType,
					Ocean:       ds.Geo.Ocean,
					Lat:         ds.Geo.Lat,
					Lon:         ds.Geo.Lon,
					Elevation:   ds.Geo.Elevation,
					Species:     col.Species,
					Group:       col.Group,
					Variable:    col.Name,
					Units:       col.Units,
					TSid:        col.TSid,
					TimeUnits:   timeVar.Units,
					Resolution:  resolution(timeVar.Values),
					Time:        timeVar.Values,
					Values:      col.Values,
				}
				ts = append(ts, s)
			}
		}
	}
	return ts, nil
}

// resolution computes spacing statistics from consecutive finite time steps.
func resolution(times []float64) Resolution {
	diffs := make([]float64, 0, len(times))
	prev := math.NaN()
	for _, t := range times {
		if math.IsNaN(t) {
			continue
		}
		if !math.IsNaN(prev) {
			diffs = append(diffs, math.Abs(t-prev))
		}
		prev = t
	}
	if len(diffs) == 0 {
		return Resolution{Min: math.NaN(), Max: math.NaN(), Mean: math.NaN(), Median: math.NaN()}
	}
	sort.Float64s(diffs)
	sum := 0.0
	for _, d := range diffs {
		sum += d
	}
	med := diffs[len(diffs)/2]
	if len(diffs)%2 == 0 {
		med = (diffs[len(diffs)/2-1] + diffs[len(diffs)/2]) / 2
	}
	return Resolution{
		Min:    diffs[0],
		Max:    diffs[len(diffs)-1],
		Mean:   sum / float64(len(diffs)),
		Median: med,
	}
}

// Observation is one row of the long-form table: a single timestamped value
// of a single series. TSid distinguishes series that share a variable name,
// which happens when a dataset carries the same variable in more than one
// measurement table.
type Observation struct {
	Dataset  string
	Site     string
	Variable string
	TSid     string
	Time     float64
	Value    float64
}

// Explode converts the table to long form: one Observation per entry of each
// series' value vector, in table order. Missing (NaN) values are carried
// through rather than dropped, so Collapse can rebuild the exact vectors.
func (ts TimeSeries) Explode() []Observation {
	n := 0
	for i := range ts {
		n += len(ts[i].Values)
	}
	obs := make([]Observation, 0, n)
	for i := range ts {
		s := &ts[i]
		for j := range s.Values {
			obs = append(obs, Observation{
				Dataset:  s.Dataset,
				Site:     s.Site,
				Variable: s.Variable,
				TSid:     s.TSid,
				Time:     s.Time[j],
				Value:    s.Values[j],
			})
		}
	}
	return obs
}

// Collapse rebuilds a TimeSeries from long-form observations, grouping by
// (dataset, site, variable, TSid) in order of first appearance. Only the
// identity attributes and the time/value vectors survive the round trip;
// the other metadata lives in the Library, not the long form.
func Collapse(obs []Observation) TimeSeries {
	type key struct{ dataset, site, variable, tsid string }
	idx := make(map[key]int)
	ts := TimeSeries{}
	for _, o := range obs {
		k := key{o.Dataset, o.Site, o.Variable, o.TSid}
		i, ok := idx[k]
		if !ok {
			i = len(ts)
			idx[k] = i
			ts = append(ts, Series{Dataset: o.Dataset, Site: o.Site, Variable: o.Variable, TSid: o.TSid})
		}
		ts[i].Time = append(ts[i].Time, o.Time)
		ts[i].Values = append(ts[i].Values, o.Value)
	}
	return ts
}
