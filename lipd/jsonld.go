package lipd

import (
	"encoding/json"
	"fmt"

	"github.com/paleodata/lipdk"
	"github.com/pkg/errors"
)

// The jsonld metadata document, reduced to the fields the toolkit uses.
// Geo follows GeoJSON: coordinates are [lon, lat] or [lon, lat, elevation].
type metaRoot struct {
	DataSetName string      `json:"dataSetName"`
	ArchiveType string      `json:"archiveType"`
	Geo         geoMeta     `json:"geo"`
	PaleoData   []paleoMeta `json:"paleoData"`
}

type geoMeta struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		SiteName string `json:"siteName"`
		Ocean    string `json:"ocean"`
	} `json:"properties"`
}

type paleoMeta struct {
	MeasurementTable []tableMeta `json:"measurementTable"`
}

type tableMeta struct {
	TableName    string       `json:"tableName"`
	Filename     string       `json:"filename"`
	MissingValue interface{}  `json:"missingValue"`
	Columns      []columnMeta `json:"columns"`
}

// missing returns the missing-value sentinel as the string it appears as in
// the CSV. Archives use strings ("NaN"), numbers (-999), or omit it.
func (t *tableMeta) missing() string {
	if t.MissingValue == nil {
		return ""
	}
	if f, ok := t.MissingValue.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(t.MissingValue)
}

type columnMeta struct {
	Number        int    `json:"number"`
	VariableName  string `json:"variableName"`
	Units         string `json:"units"`
	TSid          string `json:"TSid"`
	Description   string `json:"description"`
	SensorSpecies string `json:"sensorSpecies"`
	Group         string `json:"coralHydro2kGroup"`
}

// decodeDataset decodes one dataset's metadata and pulls in its measurement
// tables through lookup, which resolves a filename from the metadata to the
// raw CSV bytes.
func decodeDataset(meta []byte, lookup func(name string) ([]byte, error)) (lipdk.Dataset, error) {
	var root metaRoot
	if err := json.Unmarshal(meta, &root); err != nil {
		return lipdk.Dataset{}, errors.Wrap(err, "unmarshaling metadata")
	}
	if root.DataSetName == "" {
		return lipdk.Dataset{}, errors.New("metadata has no dataSetName")
	}

	ds := lipdk.Dataset{
		Name:        root.DataSetName,
		ArchiveType: root.ArchiveType,
		Geo: lipdk.Geo{
			SiteName: root.Geo.Properties.SiteName,
			Ocean:    root.Geo.Properties.Ocean,
		},
	}
	coords := root.Geo.Geometry.Coordinates
	if len(coords) >= 2 {
		ds.Geo.Lon, ds.Geo.Lat = coords[0], coords[1]
	}
	if len(coords) >= 3 {
		ds.Geo.Elevation = coords[2]
	}

	for _, pd := range root.PaleoData {
		for _, tm := range pd.MeasurementTable {
			if tm.Filename == "" {
				return lipdk.Dataset{}, errors.Errorf("table '%v' names no file", tm.TableName)
			}
			data, err := lookup(tm.Filename)
			if err != nil {
				return lipdk.Dataset{}, errors.Wrapf(err, "table '%v'", tm.TableName)
			}
			tbl, err := decodeTable(tm, data)
			if err != nil {
				return lipdk.Dataset{}, errors.Wrapf(err, "table '%v'", tm.TableName)
			}
			ds.Tables = append(ds.Tables, tbl)
		}
	}
	return ds, nil
}
