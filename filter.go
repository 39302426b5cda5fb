package lipdk

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Predicate decides whether a series row belongs in a filtered table.
// Predicates are pure functions of the row, so applying them one at a time
// gives the same result as applying their conjunction once.
type Predicate func(*Series) bool

// Eq matches rows whose string column col equals val exactly.
func Eq(col, val string) Predicate {
	return func(s *Series) bool {
		v, ok := s.Attr(col)
		return ok && v == val
	}
}

// Contains matches rows whose string column col contains substr.
func Contains(col, substr string) Predicate {
	return func(s *Series) bool {
		v, ok := s.Attr(col)
		return ok && strings.Contains(v, substr)
	}
}

// Between matches rows whose numeric column col lies in the closed interval
// [lo, hi]. Rows without that numeric column never match.
func Between(col string, lo, hi float64) Predicate {
	return func(s *Series) bool {
		v, ok := s.Num(col)
		return ok && v >= lo && v <= hi
	}
}

// NotMatch excludes rows whose string column col matches the regular
// expression pattern. Rows without that column are kept.
func NotMatch(col, pattern string) (Predicate, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling pattern '%v'", pattern)
	}
	return func(s *Series) bool {
		v, ok := s.Attr(col)
		if !ok {
			return true
		}
		return !re.MatchString(v)
	}, nil
}

// And combines predicates into their conjunction.
func And(preds ...Predicate) Predicate {
	return func(s *Series) bool {
		for _, p := range preds {
			if !p(s) {
				return false
			}
		}
		return true
	}
}

// Filter returns the subset of rows satisfying all predicates, in input row
// order. Filtering never modifies the receiver; an unmatched filter yields
// an empty (non-nil) table.
func (ts TimeSeries) Filter(preds ...Predicate) TimeSeries {
	out := TimeSeries{}
	p := And(preds...)
	for i := range ts {
		if p(&ts[i]) {
			out = append(out, ts[i])
		}
	}
	return out
}

// ParseClause parses a filter clause from a string, for building predicates
// out of command line flags. Supported forms:
//
//	col=val     exact string equality
//	col~val     substring containment
//	col!~pat    exclude rows matching the regexp pat
//	col=lo..hi  closed numeric interval (numeric columns only)
//
// On a numeric column, col=v is the degenerate interval [v, v].
func ParseClause(clause string) (Predicate, error) {
	if i := strings.Index(clause, "!~"); i > 0 {
		col := clause[:i]
		if !IsColumn(col) {
			return nil, errors.Errorf("unknown column '%v' in clause '%v'", col, clause)
		}
		return NotMatch(col, clause[i+2:])
	}
	if i := strings.Index(clause, "~"); i > 0 {
		col := clause[:i]
		if !IsColumn(col) {
			return nil, errors.Errorf("unknown column '%v' in clause '%v'", col, clause)
		}
		return Contains(col, clause[i+1:]), nil
	}
	i := strings.Index(clause, "=")
	if i <= 0 {
		return nil, errors.Errorf("clause '%v' has no operator (want =, ~, or !~)", clause)
	}
	col, val := clause[:i], clause[i+1:]
	if !IsColumn(col) {
		return nil, errors.Errorf("unknown column '%v' in clause '%v'", col, clause)
	}
	if j := strings.Index(val, ".."); j >= 0 && isNumericColumn(col) {
		lo, err := strconv.ParseFloat(val[:j], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing lower bound of '%v'", clause)
		}
		hi, err := strconv.ParseFloat(val[j+2:], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing upper bound of '%v'", clause)
		}
		return Between(col, lo, hi), nil
	}
	if isNumericColumn(col) {
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing value of '%v'", clause)
		}
		return Between(col, v, v), nil
	}
	return Eq(col, val), nil
}

func isNumericColumn(col string) bool {
	s := Series{}
	_, ok := s.Num(col)
	return ok
}

// ParseClauses parses each clause and returns the conjunction.
func ParseClauses(clauses []string) (Predicate, error) {
	preds := make([]Predicate, 0, len(clauses))
	for _, c := range clauses {
		p, err := ParseClause(c)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return And(preds...), nil
}
