package render

import (
	"log"
	"os"

	"github.com/paleodata/lipdk"
	"github.com/paleodata/lipdk/fetch"
	"github.com/paleodata/lipdk/geohash"
	"github.com/pkg/errors"
)

// loadTimeSeries runs the shared load-extract-filter-annotate sequence the
// figure subcommands start with.
func loadTimeSeries(archive string, where []string, cacheBackend, cacheDir, s3Region string, geohashPrec int) (lipdk.TimeSeries, error) {
	if archive == "" {
		return nil, errors.New("archive location is required")
	}
	ts, err := fetch.LoadTimeSeries(archive, where, fetch.Config{
		CacheBackend: cacheBackend,
		CacheDir:     cacheDir,
		S3Region:     s3Region,
		Log:          lipdk.StdLogger{Logger: log.New(os.Stderr, "", log.LstdFlags)},
	})
	if err != nil {
		return nil, errors.Wrap(err, "loading time series")
	}
	if geohashPrec > 0 {
		tr := &geohash.Transformer{Precision: geohashPrec}
		if err := tr.Annotate(ts); err != nil {
			return nil, errors.Wrap(err, "annotating regions")
		}
	}
	return ts, nil
}

// MapMain contains the configuration for the map subcommand.
type MapMain struct {
	Archive      string   `help:"Archive location: local path, http(s) URL, or s3://bucket/key."`
	Where        []string `help:"Filter clauses (col=val, col~val, col!~pat, col=lo..hi)."`
	Out          string   `help:"Output HTML file."`
	Title        string   `help:"Figure title."`
	MapName      string   `help:"Echarts map name: world for the global extent, or a named region."`
	ColorBy      string   `help:"String column to color map points by."`
	Labels       bool     `help:"Label map points with site names."`
	Geohash      int      `help:"Geohash precision for the region column (0 disables)."`
	CacheDir     string   `help:"Directory for the archive cache."`
	CacheBackend string   `help:"Archive cache backend: bolt, leveldb, or empty for none."`
	S3Region     string   `help:"AWS region for s3:// archives."`
}

// NewMapMain gets a new MapMain with the default configuration.
func NewMapMain() *MapMain {
	return &MapMain{
		Out:          "sites.html",
		MapName:      "world",
		ColorBy:      "ocean",
		CacheDir:     ".lipdk-cache",
		CacheBackend: "bolt",
	}
}

// Run renders the site map.
func (m *MapMain) Run() error {
	ts, err := loadTimeSeries(m.Archive, m.Where, m.CacheBackend, m.CacheDir, m.S3Region, m.Geohash)
	if err != nil {
		return err
	}
	fig := SiteMap(ts,
		WithTitle(m.Title, ""),
		WithMap(m.MapName),
		WithColorBy(m.ColorBy),
		WithLabels(m.Labels),
	)
	if err := WriteHTML(fig, m.Out); err != nil {
		return errors.Wrap(err, "writing figure")
	}
	log.Printf("wrote %v (%d series)", m.Out, len(ts))
	return nil
}

// DashMain contains the configuration for the dash subcommand.
type DashMain struct {
	Archive      string   `help:"Archive location: local path, http(s) URL, or s3://bucket/key."`
	Where        []string `help:"Filter clauses (col=val, col~val, col!~pat, col=lo..hi)."`
	Out          string   `help:"Output HTML file."`
	Title        string   `help:"Figure title."`
	ColorBy      string   `help:"String column to color map points by."`
	Geohash      int      `help:"Geohash precision for the region column (0 disables)."`
	CacheDir     string   `help:"Directory for the archive cache."`
	CacheBackend string   `help:"Archive cache backend: bolt, leveldb, or empty for none."`
	S3Region     string   `help:"AWS region for s3:// archives."`
}

// NewDashMain gets a new DashMain with the default configuration.
func NewDashMain() *DashMain {
	return &DashMain{
		Out:          "dashboard.html",
		ColorBy:      "ocean",
		CacheDir:     ".lipdk-cache",
		CacheBackend: "bolt",
	}
}

// Run renders the dashboard.
func (m *DashMain) Run() error {
	ts, err := loadTimeSeries(m.Archive, m.Where, m.CacheBackend, m.CacheDir, m.S3Region, m.Geohash)
	if err != nil {
		return err
	}
	fig := Dashboard(ts, WithTitle(m.Title, ""), WithColorBy(m.ColorBy))
	if err := WriteHTML(fig, m.Out); err != nil {
		return errors.Wrap(err, "writing figure")
	}
	log.Printf("wrote %v (%d series)", m.Out, len(ts))
	return nil
}

// StackMain contains the configuration for the plot subcommand.
type StackMain struct {
	Archive      string   `help:"Archive location: local path, http(s) URL, or s3://bucket/key."`
	Where        []string `help:"Filter clauses (col=val, col~val, col!~pat, col=lo..hi)."`
	Out          string   `help:"Output HTML file."`
	Title        string   `help:"Figure title."`
	SortBy       string   `help:"Column to order the stacked charts by."`
	MaxSeries    int      `help:"Maximum number of charts to draw."`
	CacheDir     string   `help:"Directory for the archive cache."`
	CacheBackend string   `help:"Archive cache backend: bolt, leveldb, or empty for none."`
	S3Region     string   `help:"AWS region for s3:// archives."`
}

// NewStackMain gets a new StackMain with the default configuration.
func NewStackMain() *StackMain {
	return &StackMain{
		Out:          "stack.html",
		SortBy:       "dataset",
		MaxSeries:    30,
		CacheDir:     ".lipdk-cache",
		CacheBackend: "bolt",
	}
}

// Run renders the stacked time series plot.
func (m *StackMain) Run() error {
	ts, err := loadTimeSeries(m.Archive, m.Where, m.CacheBackend, m.CacheDir, m.S3Region, 0)
	if err != nil {
		return err
	}
	fig := TimeseriesStack(ts,
		WithTitle(m.Title, ""),
		WithSortBy(m.SortBy),
		WithMaxSeries(m.MaxSeries),
	)
	if err := WriteHTML(fig, m.Out); err != nil {
		return errors.Wrap(err, "writing figure")
	}
	log.Printf("wrote %v (%d series)", m.Out, len(ts))
	return nil
}
