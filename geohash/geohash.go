// Package geohash buckets series into regions by geohashing their site
// coordinates, so maps and dashboards can group or color nearby sites
// together without a gazetteer.
package geohash

import (
	"github.com/mmcloughlin/geohash"
	"github.com/paleodata/lipdk"
	"github.com/pkg/errors"
)

// Transformer sets the Region attribute of series from their lat/lon.
// Precision is the geohash length in characters; shorter means coarser
// regions (3 is roughly country-sized cells).
type Transformer struct {
	Precision int
}

// Transform hashes the series' coordinates and sets the result as its
// Region.
func (t *Transformer) Transform(s *lipdk.Series) error {
	if t.Precision < 1 || t.Precision > 12 {
		return errors.Errorf("precision %d out of range [1,12]", t.Precision)
	}
	if s.Lat < -90 || s.Lat > 90 || s.Lon < -180 || s.Lon > 180 {
		return errors.Errorf("series %v/%v has implausible coordinates (%v, %v)", s.Dataset, s.Variable, s.Lat, s.Lon)
	}
	s.Region = geohash.EncodeWithPrecision(s.Lat, s.Lon, uint(t.Precision))
	return nil
}

// Annotate transforms every row of the table in place.
func (t *Transformer) Annotate(ts lipdk.TimeSeries) error {
	for i := range ts {
		if err := t.Transform(&ts[i]); err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
	}
	return nil
}
