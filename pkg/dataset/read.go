package dataset

import (
	"encoding/csv"
	goerrors "errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/eborriello/genfigs/pkg/errors"
)

// HeaderMode says how the first line of a file is interpreted.
type HeaderMode int

const (
	// HeaderNamed binds schema columns to header names.
	HeaderNamed HeaderMode = iota
	// HeaderReplaced ignores the header text and binds columns by position.
	HeaderReplaced
)

func (m HeaderMode) String() string {
	switch m {
	case HeaderNamed:
		return "named"
	case HeaderReplaced:
		return "replaced"
	}
	return "unknown"
}

// Schema describes the columns a figure expects from its input file.
type Schema struct {
	Columns      []string
	Header       HeaderMode
	DropSentinel bool
}

// Load opens path and reads it with [Read]. Errors name the file.
func Load(path string, s Schema) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if goerrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	t, err := Read(f, s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return t, nil
}

// Read parses a comma-separated table from r according to s.
//
// Blank lines are skipped. Cells are trimmed before parsing as float64.
// The sentinel row, when dropped, is not required to be numeric.
func Read(r io.Reader, s Schema) (*Table, error) {
	if len(s.Columns) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "schema has no columns")
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty file")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "header")
	}

	fields, err := bindColumns(header, s)
	if err != nil {
		return nil, err
	}

	columns := make([][]float64, len(s.Columns))
	skip := s.DropSentinel
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse")
		}
		line, _ := cr.FieldPos(0)
		if len(rec) != len(header) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"line %d: %d fields, want %d", line, len(rec), len(header))
		}
		if skip {
			skip = false
			continue
		}
		for i, field := range fields {
			v, err := parseCell(rec[field])
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"line %d, column %q: %q is not a number", line, s.Columns[i], rec[field])
			}
			columns[i] = append(columns[i], v)
		}
	}

	if len(columns[0]) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no data rows")
	}
	return NewTable(s.Columns, columns)
}

// missingCells are the cell values read as NaN. Layers leave a gap there.
var missingCells = map[string]bool{
	"": true, "NA": true, "N/A": true, "NaN": true, "nan": true, "null": true, "NULL": true,
}

func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if missingCells[cell] {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}

// bindColumns maps each schema column to its field index in the file.
func bindColumns(header []string, s Schema) ([]int, error) {
	fields := make([]int, len(s.Columns))
	switch s.Header {
	case HeaderReplaced:
		if len(header) != len(s.Columns) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"%d columns, want %d (%s)", len(header), len(s.Columns), strings.Join(s.Columns, ", "))
		}
		for i := range fields {
			fields[i] = i
		}
	case HeaderNamed:
		pos := make(map[string]int, len(header))
		for i, h := range header {
			if i == 0 {
				h = strings.TrimPrefix(h, "\ufeff")
			}
			pos[strings.TrimSpace(h)] = i
		}
		for i, name := range s.Columns {
			p, ok := pos[name]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "missing column %q", name)
			}
			fields[i] = p
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown header mode %d", s.Header)
	}
	return fields, nil
}
