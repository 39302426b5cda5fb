package lipdk_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/paleodata/lipdk"
)

func testLibrary() *lipdk.Library {
	return &lipdk.Library{
		Datasets: []lipdk.Dataset{
			{
				Name:        "CO95MAFE01A",
				ArchiveType: "Coral",
				Geo:         lipdk.Geo{Lat: -7.9, Lon: 39.5, Elevation: -4, SiteName: "Mafia Island", Ocean: "Indian Ocean"},
				Tables: []lipdk.MeasurementTable{
					{
						Name: "paleo0measurement0",
						Columns: []lipdk.Variable{
							{Number: 1, Name: "year", Units: "yr AD", Values: []float64{1990, 1991, 1992, 1994}},
							{Number: 2, Name: "d18O", Units: "permil", TSid: "CH2K001", Species: "Porites lutea", Group: "T2",
								Values: []float64{-5.1, math.NaN(), -5.3, -5.2}},
							{Number: 3, Name: "notes", Text: []string{"a", "b", "c", "d"}},
						},
					},
				},
			},
			{
				Name:        "CO03RAPA01A",
				ArchiveType: "Coral",
				Geo:         lipdk.Geo{Lat: -21.2, Lon: -159.8, SiteName: "Rarotonga", Ocean: "Pacific Ocean"},
				Tables: []lipdk.MeasurementTable{
					{
						Name: "paleo0measurement0",
						Columns: []lipdk.Variable{
							{Number: 1, Name: "year", Units: "yr AD", Values: []float64{1950, 1951}},
							{Number: 2, Name: "SrCa", Units: "mmol/mol", TSid: "CH2K002", Species: "Porites lutea", Group: "T1",
								Values: []float64{9.1, 9.2}},
							{Number: 3, Name: "d18O", Units: "permil", TSid: "CH2K003", Species: "Porites lutea", Group: "T1",
								Values: []float64{-4.9, -4.8}},
						},
					},
				},
			},
		},
	}
}

func TestExtractTimeSeries(t *testing.T) {
	ts, err := lipdk.ExtractTimeSeries(testLibrary())
	if err != nil {
		t.Fatalf("extracting: %v", err)
	}
	if len(ts) != 3 {
		t.Fatalf("expected 3 series, got %d", len(ts))
	}
	s := ts[0]
	if s.Dataset != "CO95MAFE01A" || s.Variable != "d18O" || s.Ocean != "Indian Ocean" {
		t.Fatalf("unexpected first series: %+v", s)
	}
	if s.Species != "Porites lutea" || s.Group != "T2" || s.TimeUnits != "yr AD" {
		t.Fatalf("metadata not carried: %+v", s)
	}
	if len(s.Time) != 4 || len(s.Values) != 4 {
		t.Fatalf("vectors not carried: %d times, %d values", len(s.Time), len(s.Values))
	}
	if !math.IsNaN(s.Values[1]) {
		t.Fatalf("missing value not NaN: %v", s.Values[1])
	}
}

func TestExtractResolution(t *testing.T) {
	ts, err := lipdk.ExtractTimeSeries(testLibrary())
	if err != nil {
		t.Fatalf("extracting: %v", err)
	}
	// time steps 1, 1, 2
	r := ts[0].Resolution
	if r.Min != 1 || r.Max != 2 {
		t.Fatalf("unexpected min/max: %+v", r)
	}
	if math.Abs(r.Mean-4.0/3.0) > 1e-9 {
		t.Fatalf("unexpected mean: %v", r.Mean)
	}
	if r.Median != 1 {
		t.Fatalf("unexpected median: %v", r.Median)
	}
}

func TestExtractErrors(t *testing.T) {
	lib := testLibrary()
	lib.Datasets[0].Tables[0].Columns[0].Name = "depth"
	_, err := lipdk.ExtractTimeSeries(lib)
	if err == nil || !strings.Contains(err.Error(), "no time column") {
		t.Fatalf("expected no-time-column error, got %v", err)
	}

	lib = testLibrary()
	lib.Datasets[0].Tables[0].Columns[1].Values = []float64{-5.1}
	_, err = lipdk.ExtractTimeSeries(lib)
	if err == nil || !strings.Contains(err.Error(), "has 1 values") {
		t.Fatalf("expected length mismatch error, got %v", err)
	}

	lib = testLibrary()
	lib.Datasets[1].Tables[0].Columns[2].Name = "age"
	_, err = lipdk.ExtractTimeSeries(lib)
	if err == nil || !strings.Contains(err.Error(), "multiple time columns") {
		t.Fatalf("expected multiple-time-columns error, got %v", err)
	}
}

func TestExplodeCollapse(t *testing.T) {
	ts, err := lipdk.ExtractTimeSeries(testLibrary())
	if err != nil {
		t.Fatalf("extracting: %v", err)
	}
	obs := ts.Explode()
	want := 0
	for _, s := range ts {
		want += len(s.Values)
	}
	if len(obs) != want {
		t.Fatalf("expected %d observations, got %d", want, len(obs))
	}

	back := lipdk.Collapse(obs)
	if len(back) != len(ts) {
		t.Fatalf("expected %d series after collapse, got %d", len(ts), len(back))
	}
	got := 0
	for i := range back {
		if len(back[i].Time) != len(back[i].Values) {
			t.Fatalf("series %d: ragged vectors", i)
		}
		if len(back[i].Time) != len(ts[i].Time) {
			t.Fatalf("series %d: expected %d entries, got %d", i, len(ts[i].Time), len(back[i].Time))
		}
		got += len(back[i].Values)
	}
	if got != want {
		t.Fatalf("tuple count not preserved: %d vs %d", got, want)
	}
}

func TestCollapseKeepsSameVariableSeries(t *testing.T) {
	// Two measurement tables in one dataset can carry the same variable
	// name; only the TSid tells the series apart.
	ts := lipdk.TimeSeries{
		{Dataset: "CO95MAFE01A", Site: "Mafia Island", Variable: "d18O", TSid: "CH2K001",
			Time: []float64{1990, 1991}, Values: []float64{-5.1, -5.2}},
		{Dataset: "CO95MAFE01A", Site: "Mafia Island", Variable: "d18O", TSid: "CH2K009",
			Time: []float64{1950, 1951, 1952}, Values: []float64{-4.7, -4.8, -4.9}},
	}
	back := lipdk.Collapse(ts.Explode())
	if len(back) != 2 {
		t.Fatalf("expected 2 series after collapse, got %d", len(back))
	}
	if back[0].TSid != "CH2K001" || back[1].TSid != "CH2K009" {
		t.Fatalf("TSids not preserved: %v, %v", back[0].TSid, back[1].TSid)
	}
	if len(back[0].Values) != 2 || len(back[1].Values) != 3 {
		t.Fatalf("vectors merged: %d and %d values", len(back[0].Values), len(back[1].Values))
	}
}

func TestTimeSpan(t *testing.T) {
	s := lipdk.Series{Time: []float64{math.NaN(), 1951, 1950, 1990}}
	min, max := s.TimeSpan()
	if min != 1950 || max != 1990 {
		t.Fatalf("unexpected span: %v..%v", min, max)
	}
	empty := lipdk.Series{}
	min, max = empty.TimeSpan()
	if !math.IsNaN(min) || !math.IsNaN(max) {
		t.Fatalf("expected NaN span for empty series, got %v..%v", min, max)
	}
}

func TestSummarize(t *testing.T) {
	ts, err := lipdk.ExtractTimeSeries(testLibrary())
	if err != nil {
		t.Fatalf("extracting: %v", err)
	}
	sum := ts.Summarize()
	if sum.Rows != 3 {
		t.Fatalf("expected 3 rows, got %d", sum.Rows)
	}
	if sum.Strings["ocean"]["Pacific Ocean"] != 2 {
		t.Fatalf("unexpected ocean counts: %v", sum.Strings["ocean"])
	}
	if sum.Strings["variable"]["d18O"] != 2 {
		t.Fatalf("unexpected variable counts: %v", sum.Strings["variable"])
	}
	r, ok := sum.Numbers["lat"]
	if !ok || r.Min != -21.2 || r.Max != -7.9 {
		t.Fatalf("unexpected lat range: %+v", r)
	}

	counts := ts.CountBy("ocean")
	keys := lipdk.SortedKeys(counts)
	if len(keys) != 2 || keys[0] != "Pacific Ocean" {
		t.Fatalf("unexpected sorted keys: %v", keys)
	}

	buf := &bytes.Buffer{}
	sum.Print(buf)
	out := buf.String()
	if !strings.HasPrefix(out, "rows: 3\n") {
		t.Fatalf("unexpected summary output: %v", out)
	}
	if !strings.Contains(out, "ocean: Pacific Ocean=2 Indian Ocean=1") {
		t.Fatalf("ocean counts not printed in order: %v", out)
	}
}
