package dataset

import (
	"math"

	"github.com/eborriello/genfigs/pkg/errors"
)

// GenerationStep is the number of generations between two consecutive rows
// of a fitness trajectory.
const GenerationStep = 100

// Table is an immutable set of equally long float64 columns.
type Table struct {
	names   []string
	columns [][]float64
	index   map[string]int
}

// NewTable builds a table from column names and values. All columns must
// have the same length. The slices are copied.
func NewTable(names []string, columns [][]float64) (*Table, error) {
	if len(names) != len(columns) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%d names for %d columns", len(names), len(columns))
	}
	t := &Table{
		names:   append([]string(nil), names...),
		columns: make([][]float64, len(columns)),
		index:   make(map[string]int, len(names)),
	}
	for i, col := range columns {
		if i > 0 && len(col) != len(columns[0]) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"column %q has %d rows, want %d", names[i], len(col), len(columns[0]))
		}
		if _, dup := t.index[names[i]]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate column %q", names[i])
		}
		t.index[names[i]] = i
		t.columns[i] = append([]float64(nil), col...)
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.columns[0])
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]float64, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no column %q (have %v)", name, t.names)
	}
	return append([]float64(nil), t.columns[i]...), nil
}

// Extent returns the minimum and maximum of the named column, ignoring
// missing and infinite values.
func (t *Table) Extent(name string) (min, max float64, err error) {
	col, err := t.Column(name)
	if err != nil {
		return 0, 0, err
	}
	min, max, ok := Extent(col)
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "column %q has no values", name)
	}
	return min, max, nil
}

// Extent returns the range of the finite values in vs. ok is false, and the
// range zero, when there are none.
func Extent(vs []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return 0, 0, false
	}
	return lo, hi, true
}

// TimeAxis returns n time points spaced step generations apart, expressed in
// millions of generations: x[i] = i*step/1e6.
func TimeAxis(n int, step float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i) * step / 1e6
	}
	return x
}
