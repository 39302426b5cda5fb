package coral

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paleodata/lipdk"
	lipdktest "github.com/paleodata/lipdk/test"
)

func testTable() lipdk.TimeSeries {
	return lipdk.TimeSeries{
		{Dataset: "CO95MAFE01A", Site: "Mafia Island", Ocean: "Indian Ocean", Lat: -7.9, Lon: 39.5, Species: "Porites lutea", Variable: "d18O"},
		{Dataset: "CO03RAPA01A", Site: "Rarotonga", Ocean: "Pacific Ocean", Lat: -21.2, Lon: -159.8, Species: "Porites lutea", Variable: "SrCa"},
		{Dataset: "CO05PALM01A", Site: "Palmyra", Ocean: "Pacific Ocean", Lat: 5.9, Lon: -162.1, Species: "Porites lobata", Variable: "d18O"},
		{Dataset: "CO00BERM01A", Site: "Bermuda", Ocean: "Atlantic Ocean", Lat: 32.5, Lon: -64.7, Species: "Diploria labyrinthiformis", Variable: "d18O_sw"},
	}
}

func TestReports(t *testing.T) {
	reps := reports(testTable())
	rows := make(map[string][]string)
	for _, rep := range reps {
		for _, s := range rep.rows {
			rows[rep.file] = append(rows[rep.file], s.Dataset)
		}
		if rep.chart == nil {
			t.Fatalf("report %v has no chart", rep.file)
		}
	}

	tests := []struct {
		file string
		exp  []string
	}{
		{"sites.html", []string{"CO95MAFE01A", "CO03RAPA01A", "CO05PALM01A", "CO00BERM01A"}},
		{"dashboard.html", []string{"CO95MAFE01A", "CO03RAPA01A", "CO05PALM01A", "CO00BERM01A"}},
		{"indian_ocean.html", []string{"CO95MAFE01A"}},
		{"tropical_pacific.html", []string{"CO05PALM01A"}},
		{"porites_d18o.html", []string{"CO95MAFE01A", "CO05PALM01A"}},
	}
	for _, test := range tests {
		got := rows[test.file]
		if len(got) != len(test.exp) {
			t.Fatalf("%v: expected rows %v, got %v", test.file, test.exp, got)
		}
		for i, ds := range test.exp {
			if got[i] != ds {
				t.Fatalf("%v: expected rows %v, got %v", test.file, test.exp, got)
			}
		}
	}
}

func TestRun(t *testing.T) {
	dir, err := ioutil.TempDir("", "coral")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	fname := filepath.Join(dir, "archive.zip")
	if err := ioutil.WriteFile(fname, lipdktest.Archive(t), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewMain()
	m.Archive = fname
	m.OutDir = filepath.Join(dir, "out")
	m.CacheBackend = ""
	if err := m.Run(); err != nil {
		t.Fatalf("running: %v", err)
	}

	for _, f := range []string{"sites.html", "dashboard.html", "indian_ocean.html", "tropical_pacific.html", "porites_d18o.html"} {
		body, err := ioutil.ReadFile(filepath.Join(m.OutDir, f))
		if err != nil {
			t.Fatalf("reading %v: %v", f, err)
		}
		if !strings.Contains(string(body), "<html") {
			t.Fatalf("%v is not an HTML document", f)
		}
	}
}
