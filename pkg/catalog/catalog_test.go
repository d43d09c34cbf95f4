package catalog

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/eborriello/genfigs/pkg/dataset"
	"github.com/eborriello/genfigs/pkg/figure"
	"github.com/eborriello/genfigs/pkg/figure/sink"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1", "1", true},
		{"3A", "3a", true},
		{"fig3a", "3a", true},
		{"figure_3a", "3a", true},
		{"Figure 3D", "3d", true},
		{"8", "8", true},
		{"figure_8_all", "8", true},
		{"figure_8_rep", "8rep", true},
		{"8-replicates", "8rep", true},
		{"2", "", false},
		{"", "", false},
		{"figure", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s, ok := Lookup(tt.in)
			if ok != tt.ok {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && s.ID != tt.want {
				t.Errorf("Lookup(%q).ID = %q, want %q", tt.in, s.ID, tt.want)
			}
		})
	}
}

func TestCatalogComplete(t *testing.T) {
	ids := IDs()
	if len(ids) != 12 {
		t.Fatalf("got %d figures, want 12", len(ids))
	}
	seenOut := map[string]bool{}
	for i, s := range All() {
		if s.ID != ids[i] {
			t.Errorf("All()[%d].ID = %q, IDs()[%d] = %q", i, s.ID, i, ids[i])
		}
		if s.Output == "" || seenOut[s.Output] {
			t.Errorf("%s: output %q empty or shared", s.ID, s.Output)
		}
		seenOut[s.Output] = true
		if s.NeedsInput() != (s.Input != "") {
			t.Errorf("%s: schema and default input disagree", s.ID)
		}
		if filepath.Ext(s.Output) != ".pdf" {
			t.Errorf("%s: default output %q is not a PDF", s.ID, s.Output)
		}
	}
}

func TestLookupReturnsFreshSpec(t *testing.T) {
	a, _ := Lookup("3c")
	a.Layers[0] = nil
	a.X.Max = 99
	b, _ := Lookup("3c")
	if b.Layers[0] == nil || b.X.Max != 1.5 {
		t.Error("modifying a looked-up spec affected a later lookup")
	}
}

// synthetic builds a plausible table for s: positive, increasing columns,
// with the figure 1 size column spanning several decades.
func synthetic(t *testing.T, s figure.Spec) *dataset.Table {
	t.Helper()
	const rows = 8
	cols := make([][]float64, len(s.Schema.Columns))
	for j, name := range s.Schema.Columns {
		cols[j] = make([]float64, rows)
		for i := range cols[j] {
			switch name {
			case "size":
				cols[j][i] = math.Pow(10, float64(i)-3)
			default:
				cols[j][i] = float64(i+1) * 0.1 * float64(j+1)
			}
		}
	}
	tbl, err := dataset.NewTable(s.Schema.Columns, cols)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return tbl
}

func TestEveryFigureRenders(t *testing.T) {
	for _, s := range All() {
		t.Run(s.ID, func(t *testing.T) {
			var tbl *dataset.Table
			if s.NeedsInput() {
				tbl = synthetic(t, s)
			}
			ch, err := figure.Build(s, tbl)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			w, h := s.Size()
			data, err := sink.Encode(ch, sink.PDF, w, h)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !bytes.HasPrefix(data, []byte("%PDF")) {
				t.Error("output is not a PDF")
			}
		})
	}
}

func TestFigureDeterministic(t *testing.T) {
	for _, id := range []string{"1", "4", "3d"} {
		s, _ := Lookup(id)
		tbl := synthetic(t, s)
		render := func() []byte {
			ch, err := figure.Build(s, tbl)
			if err != nil {
				t.Fatalf("%s: Build: %v", id, err)
			}
			w, h := s.Size()
			data, err := sink.Encode(ch, sink.PDF, w, h)
			if err != nil {
				t.Fatalf("%s: Encode: %v", id, err)
			}
			return data
		}
		if !bytes.Equal(render(), render()) {
			t.Errorf("figure %s: repeated renders differ", id)
		}
	}
}

func TestFigure3ATimeAxis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figure_3A.txt")
	if err := os.WriteFile(path, []byte("fitness\n999\n1\n2\n3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, _ := Lookup("3a")
	tbl, err := dataset.Load(path, *s.Schema)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ch, err := figure.Build(s, tbl)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	xys := ch.Lines[0].XYs
	want := []struct{ x, y float64 }{{0, 1}, {1e-4, 2}, {2e-4, 3}}
	if len(xys) != len(want) {
		t.Fatalf("got %d points, want %d", len(xys), len(want))
	}
	for i, w := range want {
		if math.Abs(xys[i].X-w.x) > 1e-15 || xys[i].Y != w.y {
			t.Errorf("point %d = (%v, %v), want (%v, %v)", i, xys[i].X, xys[i].Y, w.x, w.y)
		}
	}
	if ch.Plot.X.Max != 2.5 || ch.Plot.Y.Max != 30 {
		t.Errorf("limits = %v, %v; want 2.5, 30", ch.Plot.X.Max, ch.Plot.Y.Max)
	}
}

func TestFigure5Data(t *testing.T) {
	s, _ := Lookup("5")
	if s.NeedsInput() {
		t.Fatal("figure 5 should not read a file")
	}
	ch, err := figure.Build(s, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(ch.ErrorBars) != 2 || len(ch.Lines) != 2 {
		t.Fatalf("got %d error bar sets and %d lines, want 2 and 2", len(ch.ErrorBars), len(ch.Lines))
	}
	series := []struct {
		y, sd []float64
	}{
		{fig5All, fig5AllSD},
		{fig5Pos, fig5PosSD},
	}
	for k, want := range series {
		eb := ch.ErrorBars[k]
		if len(eb.XYs) != 5 {
			t.Fatalf("series %d: %d points, want 5", k, len(eb.XYs))
		}
		for i := range want.y {
			if eb.XYs[i].X != fig5X[i] || eb.XYs[i].Y != want.y[i] {
				t.Errorf("series %d point %d = %v, want (%v, %v)", k, i, eb.XYs[i], fig5X[i], want.y[i])
			}
			if eb.YErrors[i].Low != want.sd[i] || eb.YErrors[i].High != want.sd[i] {
				t.Errorf("series %d error %d = %v, want ±%v", k, i, eb.YErrors[i], want.sd[i])
			}
		}
	}
	if ch.Legend == nil {
		t.Error("figure 5 has no legend")
	}
}

func TestLogGrid(t *testing.T) {
	g := logGrid(-3, 5, 0.01)
	if len(g) != 800 {
		t.Fatalf("len = %d, want 800", len(g))
	}
	if math.Abs(g[0]-1e-3) > 1e-18 {
		t.Errorf("first = %v, want 1e-3", g[0])
	}
	if last := g[len(g)-1]; math.Abs(math.Log10(last)-4.99) > 1e-9 {
		t.Errorf("last = %v, want 10^4.99", last)
	}
}
