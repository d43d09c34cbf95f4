package catalog

import (
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/eborriello/genfigs/pkg/dataset"
	"github.com/eborriello/genfigs/pkg/figure"
	"github.com/eborriello/genfigs/pkg/figure/plot3d"
)

const (
	timeLabel    = "Time (millions of generations)"
	fitnessLabel = "Average fitness"
)

func input(name string) string { return filepath.Join(DataDir, name) }

// logGrid returns 10^e for e = from, from+step, ... below to.
func logGrid(from, to, step float64) []float64 {
	n := int(math.Round((to - from) / step))
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = math.Pow(10, from+float64(i)*step)
	}
	return xs
}

func figure1() figure.Spec {
	cols := []string{"size", "bacteria", "archaea", "eukarya", "virus"}
	samples := logGrid(-3, 5, 0.01)

	layers := []figure.Layer{
		// White baseline masking the y=0 gridline under the curves.
		figure.Line{
			X: figure.Values(1e-3, 1e4), Y: figure.Values(0, 0),
			Color: figure.White, Width: 7.6, Z: figure.ZBelow,
		},
	}
	for _, d := range []struct {
		col, label string
		c          color.Color
	}{
		{"bacteria", "Bacteria", figure.Orange},
		{"archaea", "Archaea", figure.DarkGray},
		{"eukarya", "Eukarya", figure.TabBlue},
		{"virus", "Virus", figure.TabGreen},
	} {
		layers = append(layers, figure.Curve{
			Line: figure.Line{
				X: figure.Col("size"), Y: figure.Col(d.col),
				Color: d.c, Width: 2, Label: d.label,
				Halo: 6, HaloZ: figure.ZScatter,
			},
			Samples: samples,
		})
	}

	return figure.Spec{
		ID:          "1",
		Name:        "Figure 1",
		Description: "Genome size distribution per domain of life",
		Schema:      &dataset.Schema{Columns: cols, Header: dataset.HeaderReplaced},
		Input:       input("figure_1.csv"),
		Output:      "figure_1.pdf",
		X:           figure.Axis{Label: "Genome size (megabases)", Min: 1e-3, Max: 1e4, Scale: figure.Log},
		Y:           figure.Axis{Label: "Relative number of genomes", Min: 0, Max: 0.5},
		Layers:      layers,
		Legend:      &figure.Legend{FontSize: 11, Top: true},
	}
}

// fitnessTrace is the shared shape of figures 3A, 3B and 3E: one column of
// average fitness, sampled every GenerationStep generations.
func fitnessTrace(id, file string, xmax float64, desc string) figure.Spec {
	return figure.Spec{
		ID:          id,
		Name:        "Figure " + strings.ToUpper(id),
		Description: desc,
		Schema: &dataset.Schema{
			Columns:      []string{"fitness"},
			Header:       dataset.HeaderReplaced,
			DropSentinel: true,
		},
		Input:  input(file),
		Output: "figure_" + id + ".pdf",
		X:      figure.Axis{Label: timeLabel, Min: 0, Max: xmax},
		Y:      figure.Axis{Label: fitnessLabel, Min: 0, Max: 30},
		Layers: []figure.Layer{
			figure.Line{X: figure.Time(), Y: figure.Col("fitness"), Color: figure.TabBlue, Width: 2},
		},
	}
}

func figure3A() figure.Spec {
	return fitnessTrace("3a", "figure_3A.txt", 2.5, "Average fitness over time")
}

func figure3B() figure.Spec {
	return fitnessTrace("3b", "figure_3B.txt", 0.7, "Average fitness over time, early phase")
}

func figure3E() figure.Spec {
	return fitnessTrace("3e", "figure_3E.txt", 1.2, "Average fitness over time, alternative run")
}

func figure3C() figure.Spec {
	var layers []figure.Layer
	for _, d := range []struct {
		col, label string
		c          color.Color
	}{
		{"fit1", "Environment 1", figure.TabBlue},
		{"fit2", "Environment 2", figure.Orange},
		{"fit3", "Environment 3", figure.TabGreen},
		{"average", "Average", figure.Black},
	} {
		layers = append(layers, figure.Line{
			X: figure.Time(), Y: figure.Col(d.col),
			Color: d.c, Width: 2, Halo: 4, Label: d.label,
		})
	}
	return figure.Spec{
		ID:          "3c",
		Name:        "Figure 3C",
		Description: "Average fitness over time in three environments",
		Schema: &dataset.Schema{
			Columns: []string{"fit1", "fit2", "fit3", "average"},
			Header:  dataset.HeaderReplaced,
		},
		Input:  input("figure_3C.csv"),
		Output: "figure_3c.pdf",
		X:      figure.Axis{Label: timeLabel, Min: 0, Max: 1.5},
		Y:      figure.Axis{Label: fitnessLabel, Min: 0, Max: 30},
		Layers: layers,
		Legend: &figure.Legend{FontSize: 11.2},
	}
}

func figure3D() figure.Spec {
	colors := []color.Color{figure.TabBlue, figure.Orange, figure.TabGreen, figure.DarkGray, figure.Black}
	cols := make([]string, len(colors))
	series := make([]figure.Trajectory, len(colors))
	for i, c := range colors {
		cols[i] = "Organism_" + string(rune('1'+i))
		series[i] = figure.Trajectory{Value: figure.Col(cols[i]), Color: c}
	}
	return figure.Spec{
		ID:          "3d",
		Name:        "Figure 3D",
		Description: "Individual fitness over time for five organisms",
		Schema:      &dataset.Schema{Columns: cols, Header: dataset.HeaderNamed},
		Input:       input("figure_3D.csv"),
		Output:      "figure_3d.pdf",
		Layers: []figure.Layer{figure.Trajectories3D{
			Time:     figure.Time(),
			Series:   series,
			XLabel:   timeLabel,
			YLabel:   "Organism",
			ZLabel:   "Individual fitness",
			XRange:   plot3d.Range{Min: 0, Max: 0.85},
			ZRange:   plot3d.Range{Min: 0, Max: 30},
			View:     plot3d.View{Elevation: 30, Azimuth: -75},
			Width:    2,
			Halo:     4,
			FontSize: 18,
		}},
		HideAxes: true,
		NoGrid:   true,
	}
}

func figure4() figure.Spec {
	return figure.Spec{
		ID:          "4",
		Name:        "Figure 4",
		Description: "Perfection index against genome and environmental complexity",
		Schema: &dataset.Schema{
			Columns: []string{"g_comp", "e_comp", "perf"},
			Header:  dataset.HeaderNamed,
		},
		Input:  input("figure_4.csv"),
		Output: "figure_4.pdf",
		Title:  "Perfection Index",
		X:      figure.Axis{Label: "Genome complexity", Min: 1e2, Max: 1e4, Scale: figure.Log},
		Y:      figure.Axis{Label: "Environmental complexity", Min: 1e1, Max: 1e5, Scale: figure.Log},
		Layers: []figure.Layer{figure.Scatter{
			X: figure.Col("g_comp"), Y: figure.Col("e_comp"),
			Color: figure.Col("perf"), Size: figure.Col("perf"), SizeFactor: 400,
		}},
		Colorbar: &figure.Colorbar{
			Label:    "Perfection Index",
			Ticks:    []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9},
			FontSize: 12,
		},
	}
}

// Figure 5 summarises model fits; its values are fixed.
var (
	fig5X     = []float64{0, 0.25, 0.5, 0.75, 1}
	fig5All   = []float64{0, 0.752, 0.875, 0.962, 1}
	fig5AllSD = []float64{0, 0.405, 0.443, 0.438, 0}
	fig5Pos   = []float64{0, 0.644, 0.792, 0.924, 1}
	fig5PosSD = []float64{0, 0.213, 0.220, 0.187, 0}
)

func figure5() figure.Spec {
	var layers []figure.Layer
	for _, d := range []struct {
		y, sd []float64
		c     color.Color
		glyph figure.Glyph
		label string
	}{
		{fig5All, fig5AllSD, figure.TabBlue, figure.Circle, "All 118 models"},
		{fig5Pos, fig5PosSD, figure.Orange, figure.Square, "101 models with positive curve parameter"},
	} {
		x, y := figure.Values(fig5X...), figure.Values(d.y...)
		layers = append(layers,
			figure.Line{X: x, Y: y, Color: d.c, Width: 2, Glyph: d.glyph, GlyphSize: 10, Label: d.label},
			figure.ErrorBars{X: x, Y: y, Err: figure.Values(d.sd...), Color: d.c, Width: 2, CapWidth: 10},
		)
	}
	return figure.Spec{
		ID:          "5",
		Name:        "Figure 5",
		Description: "Average fitness before plateau for two model sets",
		Output:      "figure_5.pdf",
		// Data extent plus a 5% margin on each side.
		X:      figure.Axis{Label: "Fraction of time before fitness plateau", Min: -0.05, Max: 1.05},
		Y:      figure.Axis{Label: "Average fitness ± 1 STD", Min: -0.07, Max: 1.39},
		Layers: layers,
		Legend: &figure.Legend{FontSize: 11.2},
	}
}

func replicateScatter(sizeFactor float64) figure.Layer {
	return figure.Scatter{
		X: figure.Col("frac"), Y: figure.Col("avg"),
		Color: figure.Col("time"), Size: figure.Col("time"), SizeFactor: sizeFactor,
	}
}

func figure6() figure.Spec {
	return figure.Spec{
		ID:          "6",
		Name:        "Figure 6",
		Description: "Coding sequence length at plateau against starting gene length",
		Schema: &dataset.Schema{
			Columns: []string{"len1", "len2", "num"},
			Header:  dataset.HeaderNamed,
		},
		Input:  input("figure_6.csv"),
		Output: "figure_6.pdf",
		Title:  "Gene number",
		X:      figure.Axis{Label: "Starting gene length", Min: 1, Max: 6},
		Y:      figure.Axis{Label: "Average coding sequence length\nat fitness plateau", Min: 0, Max: 12},
		Layers: []figure.Layer{figure.Scatter{
			X: figure.Col("len1"), Y: figure.Col("len2"),
			Color: figure.Col("num"), Size: figure.Col("num"), SizeFactor: 1,
		}},
		Colorbar:  &figure.Colorbar{Ticks: []float64{25, 50, 75, 100}},
		GridBelow: true,
	}
}

func figure7() figure.Spec {
	return figure.Spec{
		ID:          "7",
		Name:        "Figure 7",
		Description: "Fraction of genes expressed against element length ratio",
		Schema: &dataset.Schema{
			Columns: []string{"min", "frac", "size"},
			Header:  dataset.HeaderNamed,
		},
		Input:  input("figure_7.csv"),
		Output: "figure_7.pdf",
		Title:  "Genome size",
		X:      figure.Axis{Label: "min -ve / min +ve", Min: 0.5, Max: 2.5},
		Y:      figure.Axis{Label: "Fraction of genes expressed", Min: 0, Max: 1},
		Layers: []figure.Layer{figure.Scatter{
			X: figure.Col("min"), Y: figure.Col("frac"),
			Color: figure.Col("size"), Size: figure.Col("size"), SizeFactor: 2,
		}},
		Colorbar:  &figure.Colorbar{Ticks: []float64{25, 50, 75, 100}},
		GridBelow: true,
	}
}

var replicateSchema = dataset.Schema{
	Columns: []string{"frac", "avg", "time"},
	Header:  dataset.HeaderNamed,
}

const (
	perfectionLabel = "Perfection index"
	ratioLabel      = "Average -ve el. len. / avg. +ve el. len."
)

func figure8() figure.Spec {
	schema := replicateSchema
	return figure.Spec{
		ID:          "8",
		Name:        "Figure 8",
		Description: "Element length ratio against perfection index, all runs",
		Schema:      &schema,
		Input:       input("figure_8_all.csv"),
		Output:      "figure_8_all.pdf",
		Title:       "Time to plateau\n(all data)",
		X:           figure.Axis{Label: perfectionLabel, Min: -0.1, Max: 1.1},
		Y:           figure.Axis{Label: ratioLabel, Min: 0.5, Max: 2.5},
		Layers:      []figure.Layer{replicateScatter(0.05)},
		Colorbar: &figure.Colorbar{
			Ticks: []float64{0, 2500, 5000, 7500, 10000, 12500, 15000, 17500},
		},
		GridBelow: true,
	}
}

func figure8Replicates() figure.Spec {
	schema := replicateSchema
	return figure.Spec{
		ID:          "8rep",
		Name:        "Figure 8 (replicates)",
		Description: "Element length ratio against perfection index, replicate sets",
		Schema:      &schema,
		Input:       input("figure_8_rep.csv"),
		Output:      "figure_8_rep.pdf",
		Title:       "Time to plateau\n(replicate sets)",
		X:           figure.Axis{Label: perfectionLabel, Min: 0, Max: 1},
		Y:           figure.Axis{Label: ratioLabel, Min: 0.6, Max: 1.8},
		Layers: []figure.Layer{
			replicateScatter(0.05),
			figure.Segment{X1: 0.625, Y1: 0.6, X2: 0.625, Y2: 1.8, Color: figure.DarkGray},
			figure.Segment{X1: 0, Y1: 1.1, X2: 0.625, Y2: 1.1, Color: figure.DarkGray},
			figure.Text{X: 0.05, Y: 1.65, Text: "set 3", FontSize: 12},
			figure.Text{X: 0.05, Y: 0.95, Text: "set 2", FontSize: 12},
			figure.Text{X: 0.68, Y: 1.65, Text: "set 1", FontSize: 12},
		},
		Colorbar:  &figure.Colorbar{},
		GridBelow: true,
	}
}
