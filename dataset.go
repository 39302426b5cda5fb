package lipdk

import (
	"github.com/pkg/errors"
)

// Library is the in-memory representation of a whole archive: every dataset
// in the bundle, fully decoded. It is produced by the lipd package and
// consumed read-only by everything downstream.
type Library struct {
	Datasets []Dataset
}

// Dataset gets the dataset with the given name, or an error if the library
// holds no dataset by that name.
func (l *Library) Dataset(name string) (*Dataset, error) {
	for i := range l.Datasets {
		if l.Datasets[i].Name == name {
			return &l.Datasets[i], nil
		}
	}
	return nil, errors.Errorf("no dataset '%v' in library", name)
}

// Dataset is one site record: its metadata plus the measurement tables
// decoded from its CSV files.
type Dataset struct {
	Name        string
	ArchiveType string
	Geo         Geo
	Tables      []MeasurementTable
}

// Geo is the location block of a dataset. Ocean and SiteName come from the
// geo properties when present.
type Geo struct {
	Lat       float64
	Lon       float64
	Elevation float64
	SiteName  string
	Ocean     string
}

// MeasurementTable is one decoded CSV table. Columns appear in the order
// given by their column numbers in the metadata.
type MeasurementTable struct {
	Name     string
	Filename string
	Columns  []Variable
}

// Variable is a single column of a measurement table. Numeric columns have
// Values populated (with NaN for missing entries); columns that fail numeric
// parsing wholesale keep their raw strings in Text instead.
type Variable struct {
	Number      int
	Name        string
	Units       string
	TSid        string
	Description string
	Species     string
	Group       string
	Values      []float64
	Text        []string
}

// IsNumeric reports whether the variable decoded as a numeric column.
func (v *Variable) IsNumeric() bool {
	return v.Values != nil
}

// IsTime reports whether the variable is a time axis (year or age).
func (v *Variable) IsTime() bool {
	switch v.Name {
	case "year", "Year", "age", "Age":
		return true
	}
	return false
}

// Len is the number of entries in the column.
func (v *Variable) Len() int {
	if v.Values != nil {
		return len(v.Values)
	}
	return len(v.Text)
}
