// Package coral replays the CoralHydro2k walkthrough: fetch the published
// archive, flatten it, and write the standard set of maps and plots.
package coral

import (
	"log"
	"os"
	"path/filepath"

	"github.com/paleodata/lipdk"
	"github.com/paleodata/lipdk/fetch"
	"github.com/paleodata/lipdk/geohash"
	"github.com/paleodata/lipdk/render"
	"github.com/paleodata/lipdk/termstat"
	"github.com/pkg/errors"
)

// DefaultArchive is the published CoralHydro2k bundle.
const DefaultArchive = "https://lipdverse.org/CoralHydro2k/current_version/CoralHydro2k1_0_0.zip"

// Main holds options and execution state for the coral usecase.
type Main struct {
	Archive      string `help:"Location of the CoralHydro2k archive (file path, http(s) URL, or s3:// URL)."`
	OutDir       string `help:"Directory the HTML reports are written to."`
	CacheDir     string `help:"Directory for the archive cache."`
	CacheBackend string `help:"Archive cache backend: bolt, leveldb, or empty for no caching."`
	S3Region     string `help:"AWS region for s3:// archive locations."`
	Geohash      int    `help:"Geohash precision for the region column (0 disables)."`
	Verbose      bool   `help:"Print download stats to the terminal."`
}

// NewMain returns a new Main.
func NewMain() *Main {
	return &Main{
		Archive:      DefaultArchive,
		OutDir:       "coralhydro2k",
		CacheDir:     ".lipdk-cache",
		CacheBackend: "bolt",
		Geohash:      4,
	}
}

// Run fetches the archive and writes each report into OutDir.
func (m *Main) Run() error {
	if err := os.MkdirAll(m.OutDir, 0755); err != nil {
		return errors.Wrap(err, "making output directory")
	}
	conf := fetch.Config{
		CacheBackend: m.CacheBackend,
		CacheDir:     m.CacheDir,
		S3Region:     m.S3Region,
		Log:          lipdk.StdLogger{Logger: log.New(os.Stderr, "", log.LstdFlags)},
	}
	if m.Verbose {
		conf.Stats = termstat.NewCollector(os.Stderr)
	}

	lib, err := fetch.Load(m.Archive, conf)
	if err != nil {
		return errors.Wrap(err, "loading archive")
	}
	ts, err := lipdk.ExtractTimeSeries(lib)
	if err != nil {
		return errors.Wrap(err, "extracting time series")
	}
	if m.Geohash > 0 {
		gh := &geohash.Transformer{Precision: m.Geohash}
		if err := gh.Annotate(ts); err != nil {
			return errors.Wrap(err, "geohashing sites")
		}
	}

	for _, rep := range reports(ts) {
		out := filepath.Join(m.OutDir, rep.file)
		if err := render.WriteHTML(rep.chart, out); err != nil {
			return errors.Wrapf(err, "writing %v", rep.file)
		}
		log.Printf("wrote %v (%d series)", out, len(rep.rows))
	}
	return nil
}

type report struct {
	file  string
	rows  lipdk.TimeSeries
	chart render.Renderable
}

// reports builds the walkthrough's outputs from the flattened table: an
// all-sites map, an overview dashboard, two regional site maps, and a
// stacked plot of the Porites oxygen isotope records.
func reports(ts lipdk.TimeSeries) []report {
	indian := ts.Filter(lipdk.Eq("ocean", "Indian Ocean"))
	tropPac := ts.Filter(
		lipdk.Eq("ocean", "Pacific Ocean"),
		lipdk.Between("lat", -10, 10),
	)
	porites := ts.Filter(
		lipdk.Contains("species", "Porites"),
		lipdk.Eq("variable", "d18O"),
	)

	return []report{
		{
			file: "sites.html",
			rows: ts,
			chart: render.SiteMap(ts,
				render.WithTitle("CoralHydro2k sites", "all records"),
				render.WithColorBy("ocean"),
			),
		},
		{
			file: "dashboard.html",
			rows: ts,
			chart: render.Dashboard(ts,
				render.WithTitle("CoralHydro2k overview", ""),
			),
		},
		{
			file: "indian_ocean.html",
			rows: indian,
			chart: render.SiteMap(indian,
				render.WithTitle("Indian Ocean sites", "ocean=Indian Ocean"),
				render.WithLabels(true),
			),
		},
		{
			file: "tropical_pacific.html",
			rows: tropPac,
			chart: render.SiteMap(tropPac,
				render.WithTitle("Tropical Pacific sites", "ocean=Pacific Ocean, lat=-10..10"),
				render.WithLabels(true),
			),
		},
		{
			file: "porites_d18o.html",
			rows: porites,
			chart: render.TimeseriesStack(porites,
				render.WithTitle("Porites d18O records", "species~Porites, variable=d18O"),
				render.WithSortBy("lat"),
			),
		},
	}
}
