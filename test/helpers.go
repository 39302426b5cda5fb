// Package test holds helpers shared by tests across the repo.
package test

import (
	"archive/zip"
	"bytes"
	"reflect"
	"testing"
)

// MustBe uses reflect.DeepEqual to assert that thing1 and thing2 are equal,
// and fails otherwise.
func MustBe(t *testing.T, thing1, thing2 interface{}, context ...string) {
	var ctx string
	if len(context) == 0 {
		ctx = ""
	} else {
		ctx = context[0] + ": "
	}
	if !reflect.DeepEqual(thing1, thing2) {
		t.Fatalf("%v'%#v' != '%#v'", ctx, thing1, thing2)
	}
}

// ErrNil asserts that the err is nil and fails otherwise.
func ErrNil(t *testing.T, err error, ctx string) {
	if err != nil {
		t.Fatalf("%v: %v", ctx, err)
	}
}

// MustZip builds a zip archive from a name->content map.
func MustZip(t *testing.T, entries map[string]string) []byte {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		ErrNil(t, err, "creating zip entry "+name)
		_, err = w.Write([]byte(content))
		ErrNil(t, err, "writing zip entry "+name)
	}
	ErrNil(t, zw.Close(), "closing zip")
	return buf.Bytes()
}

// MafiaMeta is the jsonld metadata of the fixture dataset used throughout
// the tests: a coral d18O record from Mafia Island with one text column and
// one missing measurement.
const MafiaMeta = `{
  "dataSetName": "CO95MAFE01A",
  "archiveType": "Coral",
  "geo": {
    "geometry": {"type": "Point", "coordinates": [39.5, -7.9, -4]},
    "properties": {"siteName": "Mafia Island", "ocean": "Indian Ocean"}
  },
  "paleoData": [{
    "measurementTable": [{
      "tableName": "paleo0measurement0",
      "filename": "paleo0measurement0.csv",
      "missingValue": "-999",
      "columns": [
        {"number": 1, "variableName": "year", "units": "yr AD", "TSid": "CH2K000"},
        {"number": 2, "variableName": "d18O", "units": "permil", "TSid": "CH2K001",
         "sensorSpecies": "Porites lutea", "coralHydro2kGroup": "T2"},
        {"number": 3, "variableName": "notes"}
      ]
    }]
  }]
}`

// MafiaCSV is the fixture dataset's measurement table.
const MafiaCSV = "1990,-5.1,good\n1991,-999,bleached\n1992,-5.3,good\n1994,-5.2,good\n"

// Archive builds a single-dataset archive in the bagit-style layout.
func Archive(t *testing.T) []byte {
	return MustZip(t, map[string]string{
		"CO95MAFE01A/data/CO95MAFE01A.jsonld":       MafiaMeta,
		"CO95MAFE01A/data/paleo0measurement0.csv":   MafiaCSV,
		"CO95MAFE01A/data/paleo0measurement0.extra": "ignored",
	})
}
