package fetch

import (
	"io"
	"log"
	"os"

	"github.com/paleodata/lipdk"
	"github.com/pkg/errors"
)

// SummaryMain contains the configuration for the summary subcommand, which
// loads an archive, applies filters, and prints per-column statistics of
// the resulting table.
type SummaryMain struct {
	Archive      string   `help:"Archive location: local path, http(s) URL, or s3://bucket/key."`
	Where        []string `help:"Filter clauses (col=val, col~val, col!~pat, col=lo..hi)."`
	CacheDir     string   `help:"Directory for the archive cache."`
	CacheBackend string   `help:"Archive cache backend: bolt, leveldb, or empty for none."`
	S3Region     string   `help:"AWS region for s3:// archives."`

	out io.Writer
}

// NewSummaryMain gets a new SummaryMain with the default configuration
// which writes the summary to out.
func NewSummaryMain(out io.Writer) *SummaryMain {
	return &SummaryMain{
		CacheDir:     ".lipdk-cache",
		CacheBackend: "bolt",
		out:          out,
	}
}

// Run runs the summary.
func (m *SummaryMain) Run() error {
	if m.Archive == "" {
		return errors.New("archive location is required")
	}
	ts, err := LoadTimeSeries(m.Archive, m.Where, Config{
		CacheBackend: m.CacheBackend,
		CacheDir:     m.CacheDir,
		S3Region:     m.S3Region,
		Log:          lipdk.StdLogger{Logger: log.New(os.Stderr, "", log.LstdFlags)},
	})
	if err != nil {
		return errors.Wrap(err, "loading time series")
	}
	ts.Summarize().Print(m.out)
	return nil
}
