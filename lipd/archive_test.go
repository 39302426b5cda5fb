package lipd_test

import (
	"math"
	"strings"
	"testing"

	"github.com/paleodata/lipdk/lipd"
	"github.com/paleodata/lipdk/test"
)

func TestReadBytes(t *testing.T) {
	lib, err := lipd.ReadBytes(test.Archive(t))
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	if len(lib.Datasets) != 1 {
		t.Fatalf("expected 1 dataset, got %d", len(lib.Datasets))
	}
	ds := lib.Datasets[0]
	if ds.Name != "CO95MAFE01A" || ds.ArchiveType != "Coral" {
		t.Fatalf("unexpected dataset: %+v", ds)
	}
	if ds.Geo.Lat != -7.9 || ds.Geo.Lon != 39.5 || ds.Geo.Elevation != -4 {
		t.Fatalf("geo coordinates not decoded: %+v", ds.Geo)
	}
	if ds.Geo.SiteName != "Mafia Island" || ds.Geo.Ocean != "Indian Ocean" {
		t.Fatalf("geo properties not decoded: %+v", ds.Geo)
	}
	if len(ds.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(ds.Tables))
	}
	tbl := ds.Tables[0]
	if len(tbl.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(tbl.Columns))
	}

	year := tbl.Columns[0]
	if year.Name != "year" || !year.IsNumeric() || len(year.Values) != 4 {
		t.Fatalf("unexpected year column: %+v", year)
	}
	d18O := tbl.Columns[1]
	if d18O.Species != "Porites lutea" || d18O.Group != "T2" {
		t.Fatalf("column properties not decoded: %+v", d18O)
	}
	if !math.IsNaN(d18O.Values[1]) {
		t.Fatalf("missing value sentinel not NaN: %v", d18O.Values[1])
	}
	if d18O.Values[2] != -5.3 {
		t.Fatalf("unexpected value: %v", d18O.Values[2])
	}
	notes := tbl.Columns[2]
	if notes.IsNumeric() {
		t.Fatalf("notes should be a text column: %+v", notes)
	}
	if notes.Text[1] != "bleached" {
		t.Fatalf("unexpected text value: %v", notes.Text[1])
	}
}

func TestReadNestedBundles(t *testing.T) {
	inner := test.Archive(t)
	meta2 := strings.Replace(test.MafiaMeta, "CO95MAFE01A", "CO03RAPA01A", 1)
	outer := test.MustZip(t, map[string]string{
		"CO95MAFE01A.lpd":  string(inner),
		"data/meta.jsonld": meta2,
		"data/paleo0measurement0.csv": test.MafiaCSV,
	})
	lib, err := lipd.ReadBytes(outer)
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	if len(lib.Datasets) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(lib.Datasets))
	}
	if _, err := lib.Dataset("CO03RAPA01A"); err != nil {
		t.Fatalf("missing flat dataset: %v", err)
	}
	if _, err := lib.Dataset("CO95MAFE01A"); err != nil {
		t.Fatalf("missing nested dataset: %v", err)
	}
	if _, err := lib.Dataset("CO99NOPE01A"); err == nil {
		t.Fatal("expected error for unknown dataset")
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]string
		experr  string
	}{
		{
			name:    "empty archive",
			entries: map[string]string{"readme.txt": "nothing here"},
			experr:  "no datasets",
		},
		{
			name:    "bad metadata",
			entries: map[string]string{"data/m.jsonld": "{"},
			experr:  "unmarshaling metadata",
		},
		{
			name:    "no dataset name",
			entries: map[string]string{"data/m.jsonld": `{"archiveType": "Coral"}`},
			experr:  "no dataSetName",
		},
		{
			name: "missing csv",
			entries: map[string]string{
				"data/m.jsonld": test.MafiaMeta,
			},
			experr: "no entry",
		},
		{
			name: "column out of range",
			entries: map[string]string{
				"data/m.jsonld": strings.Replace(test.MafiaMeta, `"number": 3`, `"number": 7`, 1),
				"data/paleo0measurement0.csv": test.MafiaCSV,
			},
			experr: "out of range",
		},
		{
			name: "ragged csv",
			entries: map[string]string{
				"data/m.jsonld":               test.MafiaMeta,
				"data/paleo0measurement0.csv": "1990,-5.1,good\n1991,-5.2\n",
			},
			experr: "reading csv",
		},
	}
	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			_, err := lipd.ReadBytes(test.MustZip(t, tst.entries))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tst.experr) {
				t.Fatalf("expected error containing '%v', got: %v", tst.experr, err)
			}
		})
	}

	if _, err := lipd.ReadBytes([]byte("not a zip")); err == nil {
		t.Fatal("expected error for non-zip input")
	}
}
