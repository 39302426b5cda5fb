package fetch

import (
	"bytes"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paleodata/lipdk"
	"github.com/paleodata/lipdk/aws/s3"
	"github.com/paleodata/lipdk/file"
	lipdhttp "github.com/paleodata/lipdk/http"
	"github.com/paleodata/lipdk/test"
)

func mustArchiveFile(t *testing.T) string {
	f, err := ioutil.TempFile("", "lipdk-archive")
	if err != nil {
		t.Fatalf("getting temp file: %v", err)
	}
	if _, err := f.Write(test.Archive(t)); err != nil {
		t.Fatalf("writing archive: %v", err)
	}
	f.Close()
	return f.Name()
}

func TestResolve(t *testing.T) {
	fname := mustArchiveFile(t)
	defer os.Remove(fname)

	src, err := Resolve(fname, nil, Config{})
	if err != nil {
		t.Fatalf("resolving file: %v", err)
	}
	if _, ok := src.(*file.Source); !ok {
		t.Fatalf("expected file source, got %T", src)
	}

	src, err = Resolve("https://lipdverse.org/arc.zip", nil, Config{})
	if err != nil {
		t.Fatalf("resolving url: %v", err)
	}
	if _, ok := src.(*lipdhttp.Source); !ok {
		t.Fatalf("expected http source, got %T", src)
	}

	src, err = Resolve("s3://bucket/arc.zip", nil, Config{S3Region: "us-west-2"})
	if err != nil {
		t.Fatalf("resolving s3: %v", err)
	}
	if _, ok := src.(*s3.Source); !ok {
		t.Fatalf("expected s3 source, got %T", src)
	}

	if _, err := Resolve("/no/such/archive.zip", nil, Config{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOpenCache(t *testing.T) {
	c, err := OpenCache("", "")
	if err != nil || c != nil {
		t.Fatalf("expected nil cache for empty backend, got %v, %v", c, err)
	}
	dir, err := ioutil.TempDir("", "lipdk-fetch")
	if err != nil {
		t.Fatalf("getting temp dir: %v", err)
	}
	defer os.RemoveAll(dir)
	for _, backend := range []string{"bolt", "leveldb"} {
		c, err := OpenCache(backend, filepath.Join(dir, backend))
		if err != nil {
			t.Fatalf("opening %v cache: %v", backend, err)
		}
		if err := c.Close(); err != nil {
			t.Fatalf("closing %v cache: %v", backend, err)
		}
	}
	if _, err := OpenCache("redis", dir); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoadTimeSeries(t *testing.T) {
	fname := mustArchiveFile(t)
	defer os.Remove(fname)

	ts, err := LoadTimeSeries(fname, nil, Config{})
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if len(ts) != 1 || ts[0].Variable != "d18O" {
		t.Fatalf("unexpected table: %+v", ts)
	}

	ts, err = LoadTimeSeries(fname, []string{"ocean=Pacific Ocean"}, Config{})
	if err != nil {
		t.Fatalf("loading filtered: %v", err)
	}
	if len(ts) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(ts))
	}

	if _, err := LoadTimeSeries(fname, []string{"bogus=1"}, Config{}); err == nil {
		t.Fatal("expected error for bad clause")
	}
}

func TestLoadCachedCopyLog(t *testing.T) {
	archive := test.Archive(t)
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write(archive)
	}))
	defer server.Close()

	dir, err := ioutil.TempDir("", "lipdk-fetchlog")
	if err != nil {
		t.Fatalf("getting temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	buf := &bytes.Buffer{}
	conf := Config{
		CacheBackend: "bolt",
		CacheDir:     dir,
		Log:          lipdk.StdLogger{Logger: log.New(buf, "", 0)},
	}

	if _, err := Load(server.URL, conf); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if strings.Contains(buf.String(), "using copy fetched") {
		t.Fatalf("fresh download logged as cached copy: %v", buf.String())
	}

	buf.Reset()
	if _, err := Load(server.URL, conf); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !strings.Contains(buf.String(), "using copy fetched") {
		t.Fatalf("cached load not announced: %v", buf.String())
	}
	if hits != 1 {
		t.Fatalf("cache not used: %d requests", hits)
	}
}

func TestSummaryMain(t *testing.T) {
	fname := mustArchiveFile(t)
	defer os.Remove(fname)

	buf := &bytes.Buffer{}
	m := NewSummaryMain(buf)
	m.Archive = fname
	m.CacheBackend = ""
	if err := m.Run(); err != nil {
		t.Fatalf("running: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "rows: 1") {
		t.Fatalf("unexpected summary: %v", out)
	}
	if !strings.Contains(out, "Indian Ocean=1") {
		t.Fatalf("ocean counts missing: %v", out)
	}

	m = NewSummaryMain(&bytes.Buffer{})
	if err := m.Run(); err == nil {
		t.Fatal("expected error for missing archive")
	}
}
