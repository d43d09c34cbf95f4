package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eborriello/genfigs/pkg/errors"
)

var fitnessSchema = Schema{
	Columns:      []string{"fitness"},
	Header:       HeaderReplaced,
	DropSentinel: true,
}

func TestReadDropsSentinel(t *testing.T) {
	in := "0\n9.5\n1.0\n2.0\n3.0\n"
	tbl, err := Read(strings.NewReader(in), fitnessSchema)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}
	got, _ := tbl.Column("fitness")
	want := []float64{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fitness[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReadSentinelNeedNotBeNumeric(t *testing.T) {
	in := "x\nplaceholder\n4\n"
	tbl, err := Read(strings.NewReader(in), fitnessSchema)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}
}

func TestReadNamed(t *testing.T) {
	in := "perf,g_comp,extra,e_comp\n0.5,100,x,10\n0.25, 200 ,y,20\n"
	s := Schema{Columns: []string{"g_comp", "e_comp", "perf"}, Header: HeaderNamed}
	tbl, err := Read(strings.NewReader(in), s)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got := tbl.Names(); strings.Join(got, ",") != "g_comp,e_comp,perf" {
		t.Errorf("Names() = %v", got)
	}
	g, _ := tbl.Column("g_comp")
	if g[0] != 100 || g[1] != 200 {
		t.Errorf("g_comp = %v, want [100 200]", g)
	}
	p, _ := tbl.Column("perf")
	if p[1] != 0.25 {
		t.Errorf("perf[1] = %v, want 0.25", p[1])
	}
}

func TestReadReplacedHeader(t *testing.T) {
	in := "a,b,c,d\n1,2,3,4\n5,6,7,8\n"
	s := Schema{Columns: []string{"fit1", "fit2", "fit3", "average"}, Header: HeaderReplaced}
	tbl, err := Read(strings.NewReader(in), s)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	avg, err := tbl.Column("average")
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	if avg[0] != 4 || avg[1] != 8 {
		t.Errorf("average = %v, want [4 8]", avg)
	}
}

func TestReadErrors(t *testing.T) {
	fourCols := Schema{Columns: []string{"fit1", "fit2", "fit3", "average"}, Header: HeaderReplaced}
	named := Schema{Columns: []string{"len1", "len2", "num"}, Header: HeaderNamed}

	tests := []struct {
		name   string
		in     string
		schema Schema
		substr string
	}{
		{"empty", "", fitnessSchema, "empty file"},
		{"header only", "fitness\n", fitnessSchema, "no data rows"},
		{"sentinel only", "fitness\n1\n", fitnessSchema, "no data rows"},
		{"wrong column count", "a,b,c\n1,2,3\n", fourCols, "3 columns, want 4"},
		{"ragged row", "a,b,c,d\n1,2,3,4\n1,2,3\n", fourCols, "3 fields, want 4"},
		{"missing name", "len1,num\n1,2\n", named, `missing column "len2"`},
		{"not a number", "len1,len2,num\n1,abc,3\n", named, `"abc" is not a number`},
		{"no columns", "a\n1\n", Schema{}, "no columns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in), tt.schema)
			if err == nil {
				t.Fatal("Read() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
			if !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("error %q does not contain %q", err, tt.substr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "figure_3A.txt")
	if err := os.WriteFile(path, []byte("0\n0\n1\n2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := Load(path, fitnessSchema)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}

	_, err = Load(filepath.Join(dir, "missing.txt"), fitnessSchema)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
	if err == nil || !strings.Contains(err.Error(), "missing.txt") {
		t.Errorf("missing file error %v should name the path", err)
	}

	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad, fitnessSchema)
	if !errors.IsInput(err) || !strings.Contains(err.Error(), "bad.txt") {
		t.Errorf("Load(bad) error = %v, want input error naming the file", err)
	}
}

func TestTimeAxis(t *testing.T) {
	x := TimeAxis(3, GenerationStep)
	want := []float64{0, 0.0001, 0.0002}
	if len(x) != len(want) {
		t.Fatalf("len = %d, want %d", len(x), len(want))
	}
	for i := range want {
		if math.Abs(x[i]-want[i]) > 1e-15 {
			t.Errorf("x[%d] = %v, want %v", i, x[i], want[i])
		}
	}

	n := 25001
	x = TimeAxis(n, GenerationStep)
	if x[0] != 0 {
		t.Errorf("x[0] = %v, want 0", x[0])
	}
	if last := float64(n-1) * GenerationStep / 1e6; x[n-1] != last {
		t.Errorf("x[n-1] = %v, want %v", x[n-1], last)
	}
}

func TestTableExtent(t *testing.T) {
	tbl, err := NewTable([]string{"v"}, [][]float64{{3, -1, 7, 2}})
	if err != nil {
		t.Fatal(err)
	}
	min, max, err := tbl.Extent("v")
	if err != nil {
		t.Fatal(err)
	}
	if min != -1 || max != 7 {
		t.Errorf("Extent() = (%v, %v), want (-1, 7)", min, max)
	}
	if _, _, err := tbl.Extent("nope"); err == nil {
		t.Error("Extent(nope) error = nil, want error")
	}
}

func TestExtentSkipsMissing(t *testing.T) {
	tests := []struct {
		name           string
		in             []float64
		wantLo, wantHi float64
		wantOK         bool
	}{
		{"plain", []float64{2, 5, 1}, 1, 5, true},
		{"missing", []float64{math.NaN(), 4, math.NaN(), -2}, -2, 4, true},
		{"infinite", []float64{math.Inf(1), 3, math.Inf(-1)}, 3, 3, true},
		{"all missing", []float64{math.NaN(), math.NaN()}, 0, 0, false},
		{"empty", nil, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := Extent(tt.in)
			if lo != tt.wantLo || hi != tt.wantHi || ok != tt.wantOK {
				t.Errorf("Extent() = (%v, %v, %v), want (%v, %v, %v)", lo, hi, ok, tt.wantLo, tt.wantHi, tt.wantOK)
			}
		})
	}

	tbl, err := NewTable([]string{"v"}, [][]float64{{math.NaN(), math.NaN()}})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := tbl.Extent("v"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Extent(all missing) error = %v, want %v", err, errors.ErrCodeInvalidInput)
	}
}

func TestReadMissingCells(t *testing.T) {
	named := Schema{Columns: []string{"Organism_1", "Organism_2"}, Header: HeaderNamed}
	in := "Organism_1,Organism_2\n1,2\n3,\n5,NA\nnan,null\n"
	tbl, err := Read(strings.NewReader(in), named)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if tbl.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", tbl.Len())
	}
	o1, _ := tbl.Column("Organism_1")
	o2, _ := tbl.Column("Organism_2")
	if o2[0] != 2 || !math.IsNaN(o2[1]) || !math.IsNaN(o2[2]) || !math.IsNaN(o2[3]) {
		t.Errorf("Organism_2 = %v, want [2 NaN NaN NaN]", o2)
	}
	if o1[2] != 5 || !math.IsNaN(o1[3]) {
		t.Errorf("Organism_1 = %v, want [1 3 5 NaN]", o1)
	}
}

func TestReadByteOrderMark(t *testing.T) {
	s := Schema{Columns: []string{"g_comp", "e_comp", "perf"}, Header: HeaderNamed}
	tbl, err := Read(strings.NewReader("\ufeffg_comp,e_comp,perf\n100,10,0.5\n"), s)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	g, _ := tbl.Column("g_comp")
	if len(g) != 1 || g[0] != 100 {
		t.Errorf("g_comp = %v, want [100]", g)
	}
}

func TestNewTableValidates(t *testing.T) {
	if _, err := NewTable([]string{"a", "b"}, [][]float64{{1}, {1, 2}}); err == nil {
		t.Error("ragged columns: error = nil")
	}
	if _, err := NewTable([]string{"a", "a"}, [][]float64{{1}, {2}}); err == nil {
		t.Error("duplicate names: error = nil")
	}
	if _, err := NewTable([]string{"a"}, nil); err == nil {
		t.Error("name/column mismatch: error = nil")
	}
}
