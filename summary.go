package lipdk

import (
	"fmt"
	"io"
	"math"
	"sort"
)

// Summary holds per-column statistics of a TimeSeries table: distinct value
// counts for string columns and ranges for numeric columns. The dashboard
// and the summary subcommand both feed off of it.
type Summary struct {
	Rows    int
	Strings map[string]map[string]int
	Numbers map[string]NumRange
}

// NumRange is the observed range of a numeric column, NaN entries excluded.
type NumRange struct {
	Min float64
	Max float64
	N   int
}

// Summarize computes a Summary of the table.
func (ts TimeSeries) Summarize() *Summary {
	sum := &Summary{
		Rows:    len(ts),
		Strings: make(map[string]map[string]int),
		Numbers: make(map[string]NumRange),
	}
	for _, col := range StringColumns() {
		counts := make(map[string]int)
		for i := range ts {
			v, _ := ts[i].Attr(col)
			if v != "" {
				counts[v]++
			}
		}
		if len(counts) > 0 {
			sum.Strings[col] = counts
		}
	}
	for _, col := range NumericColumns() {
		r := NumRange{Min: math.NaN(), Max: math.NaN()}
		for i := range ts {
			v, _ := ts[i].Num(col)
			if math.IsNaN(v) {
				continue
			}
			if r.N == 0 || v < r.Min {
				r.Min = v
			}
			if r.N == 0 || v > r.Max {
				r.Max = v
			}
			r.N++
		}
		if r.N > 0 {
			sum.Numbers[col] = r
		}
	}
	return sum
}

// CountBy counts rows per distinct value of a string column, for bar charts
// and the like. Rows with an empty value are counted under "(none)".
func (ts TimeSeries) CountBy(col string) map[string]int {
	counts := make(map[string]int)
	for i := range ts {
		v, ok := ts[i].Attr(col)
		if !ok {
			continue
		}
		if v == "" {
			v = "(none)"
		}
		counts[v]++
	}
	return counts
}

// SortedKeys returns the keys of a count map sorted by descending count,
// ties broken alphabetically.
func SortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Print writes the summary in a stable order.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "rows: %d\n", s.Rows)
	cols := make([]string, 0, len(s.Strings))
	for col := range s.Strings {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		fmt.Fprintf(w, "%s:", col)
		for _, k := range SortedKeys(s.Strings[col]) {
			fmt.Fprintf(w, " %s=%d", k, s.Strings[col][k])
		}
		fmt.Fprintln(w)
	}
	cols = cols[:0]
	for col := range s.Numbers {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		r := s.Numbers[col]
		fmt.Fprintf(w, "%s: min=%v max=%v n=%d\n", col, r.Min, r.Max, r.N)
	}
}
