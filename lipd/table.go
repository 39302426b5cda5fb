package lipd

import (
	"bytes"
	"encoding/csv"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/paleodata/lipdk"
	"github.com/pkg/errors"
)

// decodeTable decodes one CSV measurement table. LiPD CSVs carry no header
// row; columns are addressed by the 1-based numbers in the metadata. A cell
// equal to the table's missing-value sentinel (or empty, or "NaN") decodes
// to NaN. A column where any other cell fails numeric parsing is kept as a
// text column instead.
func decodeTable(tm tableMeta, data []byte) (lipdk.MeasurementTable, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	rows, err := cr.ReadAll()
	if err != nil {
		return lipdk.MeasurementTable{}, errors.Wrap(err, "reading csv")
	}
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}

	tbl := lipdk.MeasurementTable{
		Name:     tm.TableName,
		Filename: tm.Filename,
	}
	missing := tm.missing()

	cols := make([]columnMeta, len(tm.Columns))
	copy(cols, tm.Columns)
	sort.Slice(cols, func(i, j int) bool { return cols[i].Number < cols[j].Number })

	for _, cm := range cols {
		if cm.Number < 1 || cm.Number > width {
			return lipdk.MeasurementTable{}, errors.Errorf("column '%v' number %d out of range (table has %d columns)",
				cm.VariableName, cm.Number, width)
		}
		v := lipdk.Variable{
			Number:      cm.Number,
			Name:        cm.VariableName,
			Units:       cm.Units,
			TSid:        cm.TSid,
			Description: cm.Description,
			Species:     cm.SensorSpecies,
			Group:       cm.Group,
		}
		raw := make([]string, len(rows))
		for i, row := range rows {
			raw[i] = strings.TrimSpace(row[cm.Number-1])
		}
		vals, numeric := parseColumn(raw, missing)
		if numeric {
			v.Values = vals
		} else {
			v.Text = raw
		}
		tbl.Columns = append(tbl.Columns, v)
	}
	return tbl, nil
}

// parseColumn tries to decode a raw column as numeric. The second return is
// false if any non-missing cell fails to parse.
func parseColumn(raw []string, missing string) ([]float64, bool) {
	vals := make([]float64, len(raw))
	for i, cell := range raw {
		if cell == "" || cell == "NaN" || (missing != "" && cell == missing) {
			vals[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		vals[i] = f
	}
	return vals, true
}
