package figure

import (
	"cmp"
	"math"
	"slices"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/eborriello/genfigs/pkg/dataset"
	"github.com/eborriello/genfigs/pkg/errors"
)

// Grid line widths in points.
const (
	majorGridWidth = 0.8
	minorGridWidth = 0.6
)

type part struct {
	z float64
	p plot.Plotter
}

type legendEntry struct {
	label  string
	thumbs []plot.Thumbnailer
}

// builder collects the parts of one chart while its layers are built.
type builder struct {
	spec    Spec
	table   *dataset.Table
	plot    *plot.Plot
	chart   *Chart
	parts   []part
	entries []legendEntry
}

func (b *builder) add(z float64, p plot.Plotter) {
	b.parts = append(b.parts, part{z: z, p: p})
}

// stack returns the collected plotters in drawing order: ascending z, and
// insertion order among equal z.
func (b *builder) stack() []plot.Plotter {
	slices.SortStableFunc(b.parts, func(x, y part) int { return cmp.Compare(x.z, y.z) })
	ps := make([]plot.Plotter, len(b.parts))
	for i, pt := range b.parts {
		ps[i] = pt.p
	}
	return ps
}

func (b *builder) entry(label string, thumbs ...plot.Thumbnailer) {
	b.entries = append(b.entries, legendEntry{label: label, thumbs: thumbs})
}

// resolve returns the values of c, checking they number n when n >= 0.
func (b *builder) resolve(c Channel, n int) ([]float64, error) {
	vs, err := c.Resolve(b.table)
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(vs) != n {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s has %d values, want %d", c, len(vs), n)
	}
	return vs, nil
}

func (b *builder) pair(x, y Channel) (xs, ys []float64, err error) {
	if xs, err = b.resolve(x, -1); err != nil {
		return nil, nil, err
	}
	if ys, err = b.resolve(y, len(xs)); err != nil {
		return nil, nil, err
	}
	return xs, ys, nil
}

// points returns the (x, y) pairs that can be placed on the figure's axes,
// with the row index each came from. Non-finite values, and non-positive
// values on a log axis, are dropped.
func (b *builder) points(xs, ys []float64) (plotter.XYs, []int) {
	pts := make(plotter.XYs, 0, len(xs))
	kept := make([]int, 0, len(xs))
	for i := range xs {
		if !plottable(xs[i], b.spec.X) || !plottable(ys[i], b.spec.Y) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
		kept = append(kept, i)
	}
	return pts, kept
}

func plottable(v float64, a Axis) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return a.Scale != Log || v > 0
}

// Build lays out the figure described by s over table t. The table may be
// nil when s needs no input.
func Build(s Spec, t *dataset.Table) (*Chart, error) {
	if s.NeedsInput() && t == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s needs an input table", s.Name)
	}

	p := plot.New()
	applyStyle(p, s)
	p.Title.Text = s.Title
	p.X.Label.Text = s.X.Label
	p.Y.Label.Text = s.Y.Label
	configureAxis(&p.X, s.X)
	configureAxis(&p.Y, s.Y)

	ch := &Chart{Spec: s, Plot: p}
	b := &builder{spec: s, table: t, plot: p, chart: ch}

	for i, l := range s.Layers {
		if err := l.build(b); err != nil {
			if errors.GetCode(err) != "" {
				return nil, err
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "layer %d", i)
		}
	}

	if !s.NoGrid {
		gridZ := ZGrid
		if s.GridBelow {
			gridZ = ZGridLow
		}
		grid := plotter.NewGrid()
		grid.Vertical = lineStyle(WhiteSmoke, vg.Points(majorGridWidth))
		grid.Horizontal = grid.Vertical
		b.add(gridZ, grid)

		if s.X.Scale == Log || s.Y.Scale == Log {
			minor := minorGrid{
				style: lineStyle(MinorGrid, vg.Points(minorGridWidth)),
				x:     s.X.Scale == Log,
				y:     s.Y.Scale == Log,
			}
			minor.style.Dashes = dotted(minor.style.Width)
			b.add(gridZ, minor)
		}
	}

	p.Add(b.stack()...)

	// Pinned ranges override whatever the data asked for.
	if s.X.Fixed() {
		p.X.Min, p.X.Max = s.X.Min, s.X.Max
	}
	if s.Y.Fixed() {
		p.Y.Min, p.Y.Max = s.Y.Min, s.Y.Max
	}
	if s.HideAxes {
		p.HideAxes()
	}

	if s.Legend != nil && len(b.entries) > 0 {
		ch.Legend = newLegend(s, p, b.entries)
	}
	if s.Colorbar != nil {
		if ch.Colors == nil {
			return nil, errors.New(errors.ErrCodeInternal, "%s: colorbar without a scatter layer", s.Name)
		}
		ch.Colorbar = newColorbar(s, ch.Colors)
	}
	return ch, nil
}

func configureAxis(a *plot.Axis, s Axis) {
	if s.Scale == Log {
		a.Scale = plot.LogScale{}
		a.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if s.Ticks != nil {
		a.Tick.Marker = fixedTicks(s.Ticks, math.Inf(-1), math.Inf(1))
	}
}

// fixedTicks returns labelled major ticks at the values inside [lo, hi].
func fixedTicks(values []float64, lo, hi float64) plot.ConstantTicks {
	var ticks plot.ConstantTicks
	for _, v := range values {
		if v < lo || v > hi {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return ticks
}

// minorGrid draws grid lines at the minor ticks of log axes. plotter.Grid
// only draws major ticks.
type minorGrid struct {
	style draw.LineStyle
	x, y  bool
}

func (g minorGrid) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	if g.x {
		for _, tk := range plt.X.Tick.Marker.Ticks(plt.X.Min, plt.X.Max) {
			if !tk.IsMinor() {
				continue
			}
			x := trX(tk.Value)
			c.StrokeLine2(g.style, x, c.Min.Y, x, c.Max.Y)
		}
	}
	if g.y {
		for _, tk := range plt.Y.Tick.Marker.Ticks(plt.Y.Min, plt.Y.Max) {
			if !tk.IsMinor() {
				continue
			}
			y := trY(tk.Value)
			c.StrokeLine2(g.style, c.Min.X, y, c.Max.X, y)
		}
	}
}
