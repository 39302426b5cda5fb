// Package fetch resolves archive locations to the right source and runs
// the load half of the pipeline: fetch, decode, extract, filter. It is the
// glue the subcommands are built on.
package fetch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/paleodata/lipdk"
	"github.com/paleodata/lipdk/aws/s3"
	"github.com/paleodata/lipdk/cache"
	"github.com/paleodata/lipdk/cache/boltdb"
	"github.com/paleodata/lipdk/cache/leveldb"
	"github.com/paleodata/lipdk/file"
	lipdhttp "github.com/paleodata/lipdk/http"
	"github.com/paleodata/lipdk/lipd"
	"github.com/pkg/errors"
)

// Config holds the cross-cutting settings of a load: caching, AWS region,
// and where stats and logs go. The zero value fetches without a cache and
// reports nothing.
type Config struct {
	// CacheBackend selects the archive cache: "bolt", "leveldb", or ""
	// for no caching.
	CacheBackend string
	// CacheDir is the directory the cache lives in.
	CacheDir string
	// S3Region is the AWS region for s3:// locations.
	S3Region string
	// Stats receives download counters.
	Stats lipdk.Statter
	// Log receives progress messages.
	Log lipdk.Logger
}

func (c *Config) stats() lipdk.Statter {
	if c.Stats == nil {
		return lipdk.NopStatter{}
	}
	return c.Stats
}

func (c *Config) logger() lipdk.Logger {
	if c.Log == nil {
		return lipdk.NopLogger{}
	}
	return c.Log
}

// OpenCache opens the archive cache named by backend in dir. An empty
// backend means no cache (nil, nil).
func OpenCache(backend, dir string) (cache.Cache, error) {
	if backend == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrap(err, "making cache directory")
	}
	switch backend {
	case "bolt":
		return boltdb.NewCache(filepath.Join(dir, "archives.bolt"))
	case "leveldb":
		return leveldb.NewCache(filepath.Join(dir, "archives.leveldb"))
	}
	return nil, errors.Errorf("unknown cache backend '%v' (want bolt or leveldb)", backend)
}

// Resolve picks a source for a location string: s3://bucket/key, an
// http(s) URL, or a local file path. The cache (which may be nil) is only
// consulted for remote downloads.
func Resolve(location string, c cache.Cache, conf Config) (lipdk.OpenStringer, error) {
	switch {
	case strings.HasPrefix(location, "s3://"):
		opts := []s3.SrcOption{}
		if conf.S3Region != "" {
			opts = append(opts, s3.OptSrcRegion(conf.S3Region))
		}
		return s3.NewSource(location, opts...)
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		opts := []lipdhttp.Option{
			lipdhttp.WithStatter(conf.stats()),
			lipdhttp.WithLogger(conf.logger()),
		}
		if c != nil {
			opts = append(opts, lipdhttp.WithCache(c))
		}
		return lipdhttp.NewSource(location, opts...), nil
	}
	return file.NewSource(location)
}

// Load fetches and decodes the archive at location.
func Load(location string, conf Config) (*lipdk.Library, error) {
	c, err := OpenCache(conf.CacheBackend, conf.CacheDir)
	if err != nil {
		return nil, errors.Wrap(err, "opening cache")
	}
	if c != nil {
		defer c.Close()
	}

	src, err := Resolve(location, c, conf)
	if err != nil {
		return nil, errors.Wrap(err, "resolving location")
	}
	// A fetch time recorded before the load means the source will serve the
	// cached copy; one recorded by the load itself is not worth announcing.
	if c != nil {
		if when, ok, terr := c.FetchedAt(location); terr == nil && ok {
			conf.logger().Printf("%v: using copy fetched %v", location, when)
		}
	}
	conf.logger().Debugf("loading %v", src)
	lib, err := lipd.ReadOpener(src)
	if err != nil {
		return nil, err
	}
	conf.logger().Printf("loaded %d datasets from %v", len(lib.Datasets), src)
	return lib, nil
}

// LoadTimeSeries loads the archive, flattens it, and applies the filter
// clauses (see lipdk.ParseClause for the syntax).
func LoadTimeSeries(location string, clauses []string, conf Config) (lipdk.TimeSeries, error) {
	pred, err := lipdk.ParseClauses(clauses)
	if err != nil {
		return nil, errors.Wrap(err, "parsing filters")
	}
	lib, err := Load(location, conf)
	if err != nil {
		return nil, err
	}
	ts, err := lipdk.ExtractTimeSeries(lib)
	if err != nil {
		return nil, errors.Wrap(err, "extracting time series")
	}
	return ts.Filter(pred), nil
}
