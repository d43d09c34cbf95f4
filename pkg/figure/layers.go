package figure

import (
	"cmp"
	"image/color"
	"math"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/eborriello/genfigs/pkg/dataset"
	"github.com/eborriello/genfigs/pkg/errors"
	"github.com/eborriello/genfigs/pkg/figure/colormap"
	"github.com/eborriello/genfigs/pkg/figure/plot3d"
)

// Layer is one visual element of a figure. Layers are built in order and
// then stacked by their z value.
type Layer interface {
	build(b *builder) error
}

// Glyph is the marker drawn at each point of a Line.
type Glyph int

const (
	NoGlyph Glyph = iota
	Circle
	Square
)

func (g Glyph) shape() draw.GlyphDrawer {
	switch g {
	case Square:
		return draw.SquareGlyph{}
	default:
		return draw.CircleGlyph{}
	}
}

// Line is a polyline through (X, Y), optionally with a halo and glyphs.
type Line struct {
	X, Y  Channel
	Color color.Color
	// Width of the stroke in points.
	Width float64

	// Halo is the width in points of a white stroke drawn beneath the line.
	Halo float64
	// HaloZ places the halo; zero puts it directly beneath its own line.
	HaloZ float64

	// Label, when set, adds the line to the legend.
	Label string

	Glyph Glyph
	// GlyphSize is the glyph diameter in points.
	GlyphSize float64

	Z float64
}

func (l Line) build(b *builder) error {
	xs, ys, err := b.pair(l.X, l.Y)
	if err != nil {
		return err
	}
	pts, _ := b.points(xs, ys)
	if len(pts) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s against %s: no plottable points", l.Y, l.X)
	}

	z := orDefault(l.Z, ZLine)
	if l.Halo > 0 {
		halo, err := plotter.NewLine(pts)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "halo")
		}
		halo.LineStyle = lineStyle(White, vg.Points(l.Halo))
		b.add(orDefault(l.HaloZ, z), halo)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "line")
	}
	line.LineStyle = lineStyle(l.Color, vg.Points(l.Width))
	b.add(z, line)
	b.chart.Lines = append(b.chart.Lines, line)
	thumbs := []plot.Thumbnailer{line}

	if l.Glyph != NoGlyph {
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "glyphs")
		}
		sc.GlyphStyle = draw.GlyphStyle{
			Color:  l.Color,
			Radius: vg.Points(l.GlyphSize / 2),
			Shape:  l.Glyph.shape(),
		}
		b.add(z, sc)
		thumbs = append(thumbs, sc)
	}

	if l.Label != "" {
		b.entry(l.Label, thumbs...)
	}
	return nil
}

// Curve is a Line through a cubic interpolation of Y against log10 of X,
// sampled at the given X values. Samples outside the data range are
// dropped.
type Curve struct {
	Line
	Samples []float64
}

func (c Curve) build(b *builder) error {
	xs, ys, err := b.pair(c.X, c.Y)
	if err != nil {
		return err
	}
	type knot struct{ x, y float64 }
	knots := make([]knot, 0, len(xs))
	for i := range xs {
		if !(xs[i] > 0) || math.IsNaN(ys[i]) {
			continue
		}
		knots = append(knots, knot{math.Log10(xs[i]), ys[i]})
	}
	if len(knots) < 4 {
		return errors.New(errors.ErrCodeInvalidInput, "interpolate %s against %s: %d points, need at least 4", c.Y, c.X, len(knots))
	}
	slices.SortStableFunc(knots, func(a, b knot) int { return cmp.Compare(a.x, b.x) })

	lx := make([]float64, len(knots))
	ly := make([]float64, len(knots))
	for i, k := range knots {
		lx[i], ly[i] = k.x, k.y
	}

	var fit interp.NotAKnotCubic
	if err := fit.Fit(lx, ly); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "interpolate %s against %s", c.Y, c.X)
	}

	var sx, sy []float64
	for _, s := range c.Samples {
		if s <= 0 {
			continue
		}
		v := math.Log10(s)
		if v < lx[0] || v > lx[len(lx)-1] {
			continue
		}
		sx = append(sx, s)
		sy = append(sy, fit.Predict(v))
	}

	line := c.Line
	line.X, line.Y = Values(sx...), Values(sy...)
	return line.build(b)
}

// Scatter draws one marker per row. Marker color follows the Color channel
// through the Spectral colormap; marker area is SizeFactor times the Size
// channel, in square points.
type Scatter struct {
	X, Y       Channel
	Color      Channel
	Size       Channel
	SizeFactor float64

	// Alpha of the marker fill; zero means 0.75.
	Alpha float64

	Z float64
}

// MarkerArea returns the marker area in square points for value v.
func MarkerArea(factor, v float64) float64 {
	return factor * v
}

// MarkerRadius returns the radius of a round marker of the given area.
func MarkerRadius(area float64) vg.Length {
	return vg.Points(math.Sqrt(math.Max(area, 0)) / 2)
}

func (s Scatter) build(b *builder) error {
	xs, ys, err := b.pair(s.X, s.Y)
	if err != nil {
		return err
	}
	cs, err := b.resolve(s.Color, len(xs))
	if err != nil {
		return err
	}
	ss, err := b.resolve(s.Size, len(xs))
	if err != nil {
		return err
	}

	pts, kept := b.points(xs, ys)
	if len(pts) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s against %s: no plottable points", s.Y, s.X)
	}

	cmap, err := colormap.Spectral()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "colormap")
	}
	lo, hi, _ := dataset.Extent(cs)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	cmap.SetMin(lo)
	cmap.SetMax(hi)
	cmap.SetAlpha(orDefault(s.Alpha, 0.75))

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "scatter")
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		row := kept[i]
		c, err := cmap.At(cs[row])
		if err != nil {
			c = color.Transparent
		}
		return draw.GlyphStyle{
			Color:  c,
			Radius: MarkerRadius(MarkerArea(s.SizeFactor, ss[row])),
			Shape:  draw.CircleGlyph{},
		}
	}
	b.add(orDefault(s.Z, ZScatter), sc)
	b.chart.Scatters = append(b.chart.Scatters, sc)
	if b.chart.Colors == nil {
		b.chart.Colors = cmap
	}
	return nil
}

// ErrorBars draws vertical error bars of half-height Err around (X, Y).
type ErrorBars struct {
	X, Y, Err Channel
	Color     color.Color
	Width     float64
	// CapWidth is the full width of the caps in points.
	CapWidth float64
	Z        float64
}

type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

func (e ErrorBars) build(b *builder) error {
	xs, ys, err := b.pair(e.X, e.Y)
	if err != nil {
		return err
	}
	es, err := b.resolve(e.Err, len(xs))
	if err != nil {
		return err
	}

	pts := errorPoints{XYs: make(plotter.XYs, len(xs)), YErrors: make(plotter.YErrors, len(xs))}
	for i := range xs {
		pts.XYs[i].X, pts.XYs[i].Y = xs[i], ys[i]
		pts.YErrors[i].Low, pts.YErrors[i].High = es[i], es[i]
	}
	bars, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "error bars")
	}
	bars.LineStyle = lineStyle(e.Color, vg.Points(e.Width))
	bars.CapWidth = vg.Points(e.CapWidth)
	b.add(orDefault(e.Z, ZLine), bars)
	b.chart.ErrorBars = append(b.chart.ErrorBars, bars)
	return nil
}

// Segment is a straight dashed divider between two data points.
type Segment struct {
	X1, Y1, X2, Y2 float64
	Color          color.Color
	// Width in points; zero means 1.5.
	Width float64
	Z     float64
}

func (s Segment) build(b *builder) error {
	line, err := plotter.NewLine(plotter.XYs{{X: s.X1, Y: s.Y1}, {X: s.X2, Y: s.Y2}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "segment")
	}
	w := vg.Points(orDefault(s.Width, 1.5))
	line.LineStyle = lineStyle(s.Color, w)
	line.LineStyle.Dashes = dashed(w)
	b.add(orDefault(s.Z, ZLine), line)
	return nil
}

// Text is an annotation whose bottom-left corner sits at (X, Y).
type Text struct {
	X, Y     float64
	Text     string
	FontSize float64
	Z        float64
}

func (t Text) build(b *builder) error {
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: t.X, Y: t.Y}},
		Labels: []string{t.Text},
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "text %q", t.Text)
	}
	labels.TextStyle[0] = text.Style{
		Color:   Black,
		Font:    sans(vg.Points(orDefault(t.FontSize, b.spec.fontSize()))),
		XAlign:  draw.XLeft,
		YAlign:  draw.YBottom,
		Handler: b.plot.TextHandler,
	}
	b.add(orDefault(t.Z, ZText), labels)
	return nil
}

// Trajectory is one category of a Trajectories3D layer.
type Trajectory struct {
	Value Channel
	Color color.Color
}

// Trajectories3D plots each series against time and its 1-based category
// index inside a projected box. Series are drawn from the highest index to
// the lowest, each as a white halo followed by its colored stroke.
type Trajectories3D struct {
	Time   Channel
	Series []Trajectory

	XLabel, YLabel, ZLabel string
	XRange, ZRange         plot3d.Range
	View                   plot3d.View

	Width, Halo float64
	// FontSize of tick and axis labels; zero uses the figure's font size.
	FontSize float64
}

func (t Trajectories3D) build(b *builder) error {
	if len(t.Series) == 0 {
		return errors.New(errors.ErrCodeInternal, "3D layer has no series")
	}
	xs, err := b.resolve(t.Time, -1)
	if err != nil {
		return err
	}

	n := len(t.Series)
	yr := plot3d.Range{Min: 1, Max: float64(n)}
	box := &plot3d.Box{
		Proj: plot3d.NewProjection(t.XRange, yr, t.ZRange, t.View),
		X:    plot3d.Axis{Label: t.XLabel, Ticks: plot.DefaultTicks{}.Ticks(t.XRange.Min, t.XRange.Max)},
		Y:    plot3d.Axis{Label: t.YLabel, Ticks: indexTicks(n)},
		Z:    plot3d.Axis{Label: t.ZLabel, Ticks: plot.DefaultTicks{}.Ticks(t.ZRange.Min, t.ZRange.Max)},

		GridStyle: lineStyle(color.NRGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff}, vg.Points(0.8)),
		EdgeStyle: lineStyle(Black, vg.Points(0.8)),
	}

	size := vg.Points(orDefault(t.FontSize, b.spec.fontSize()))
	box.TickLabel = text.Style{Color: Black, Font: sans(size), Handler: b.plot.TextHandler}
	box.AxisLabel = box.TickLabel
	box.TickPad = size * 0.9
	box.LabelPad = size * 2.6

	for i := n - 1; i >= 0; i-- {
		zs, err := b.resolve(t.Series[i].Value, len(xs))
		if err != nil {
			return err
		}
		ys := make([]float64, len(xs))
		for j := range ys {
			ys[j] = float64(i + 1)
		}
		if t.Halo > 0 {
			box.Series = append(box.Series, plot3d.Series{
				X: xs, Y: ys, Z: zs,
				Style: lineStyle(White, vg.Points(t.Halo)),
			})
		}
		box.Series = append(box.Series, plot3d.Series{
			X: xs, Y: ys, Z: zs,
			Style: lineStyle(t.Series[i].Color, vg.Points(t.Width)),
		})
	}

	b.add(ZLine, box)
	b.chart.Projected = box
	return nil
}

func indexTicks(n int) []plot.Tick {
	ticks := make([]plot.Tick, n)
	for i := range ticks {
		ticks[i] = plot.Tick{Value: float64(i + 1), Label: strconv.Itoa(i + 1)}
	}
	return ticks
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
