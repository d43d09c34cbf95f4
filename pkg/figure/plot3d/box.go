package plot3d

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// labelMargin widens the projected data range so tick and axis labels fit
// inside the plot's data area.
const labelMargin = 0.22

// Axis describes one axis of the box.
type Axis struct {
	Label string
	Ticks []plot.Tick
}

// Series is one polyline in data coordinates.
type Series struct {
	X, Y, Z []float64
	Style   draw.LineStyle
}

// Box is a plot.Plotter drawing a 3D box with grid, ticks, labels and line
// series. Series are drawn in slice order, so later series cover earlier
// ones.
type Box struct {
	Proj    Projection
	X, Y, Z Axis
	Series  []Series

	GridStyle draw.LineStyle
	EdgeStyle draw.LineStyle
	TickLabel text.Style
	AxisLabel text.Style

	// TickPad and LabelPad are the distances of tick labels and axis labels
	// from their edge.
	TickPad  vg.Length
	LabelPad vg.Length
}

// DataRange implements plot.DataRanger in projected coordinates.
func (b *Box) DataRange() (xmin, xmax, ymin, ymax float64) {
	umin, umax, vmin, vmax := b.Proj.Bounds()
	du, dv := (umax-umin)*labelMargin, (vmax-vmin)*labelMargin
	return umin - du, umax + du, vmin - dv, vmax + dv
}

// Plot implements plot.Plotter.
func (b *Box) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	at := func(x, y, z float64) vg.Point {
		u, v, _ := b.Proj.Project(x, y, z)
		return vg.Point{X: trX(u), Y: trY(v)}
	}
	p := b.Proj
	center := at((p.X.Min+p.X.Max)/2, (p.Y.Min+p.Y.Max)/2, (p.Z.Min+p.Z.Max)/2)

	b.drawPanes(c, at)

	// Axis edges: x and y along the floor on the sides nearest the viewer,
	// z up the leftmost vertical edge.
	ny, nx := p.nearY(), p.nearX()
	zx, zy := b.leftCorner()
	edges := []struct {
		axis     Axis
		from, to [3]float64
		tick     func(v float64) [3]float64
		rotation float64
	}{
		{b.X, [3]float64{p.X.Min, ny, p.Z.Min}, [3]float64{p.X.Max, ny, p.Z.Min},
			func(v float64) [3]float64 { return [3]float64{v, ny, p.Z.Min} }, 0},
		{b.Y, [3]float64{nx, p.Y.Min, p.Z.Min}, [3]float64{nx, p.Y.Max, p.Z.Min},
			func(v float64) [3]float64 { return [3]float64{nx, v, p.Z.Min} }, 0},
		{b.Z, [3]float64{zx, zy, p.Z.Min}, [3]float64{zx, zy, p.Z.Max},
			func(v float64) [3]float64 { return [3]float64{zx, zy, v} }, math.Pi / 2},
	}
	ranges := []Range{p.X, p.Y, p.Z}

	for i, e := range edges {
		from, to := at(e.from[0], e.from[1], e.from[2]), at(e.to[0], e.to[1], e.to[2])
		c.StrokeLine2(b.EdgeStyle, from.X, from.Y, to.X, to.Y)

		mid := vg.Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2}
		out := unit(mid.Sub(center))

		for _, t := range e.axis.Ticks {
			if t.IsMinor() || !ranges[i].Contains(t.Value) {
				continue
			}
			q := e.tick(t.Value)
			tp := at(q[0], q[1], q[2])
			sty := b.TickLabel
			sty.XAlign, sty.YAlign = draw.XCenter, draw.YCenter
			c.FillText(sty, tp.Add(out.Scale(b.TickPad)), t.Label)
		}

		if e.axis.Label != "" {
			sty := b.AxisLabel
			sty.XAlign, sty.YAlign = draw.XCenter, draw.YCenter
			sty.Rotation = e.rotation
			c.FillText(sty, mid.Add(out.Scale(b.LabelPad)), e.axis.Label)
		}
	}

	for _, s := range b.Series {
		for _, run := range b.runs(s) {
			pts := make([]vg.Point, len(run))
			for j, q := range run {
				pts[j] = at(q[0], q[1], q[2])
			}
			c.StrokeLines(s.Style, pts)
		}
	}
}

// drawPanes draws grid lines on the floor and the two far walls.
func (b *Box) drawPanes(c draw.Canvas, at func(x, y, z float64) vg.Point) {
	p := b.Proj
	fx, fy := p.farX(), p.farY()
	line := func(a, z [3]float64) {
		from, to := at(a[0], a[1], a[2]), at(z[0], z[1], z[2])
		c.StrokeLine2(b.GridStyle, from.X, from.Y, to.X, to.Y)
	}
	for _, t := range majors(b.X.Ticks, p.X) {
		line([3]float64{t, p.Y.Min, p.Z.Min}, [3]float64{t, p.Y.Max, p.Z.Min})
		line([3]float64{t, fy, p.Z.Min}, [3]float64{t, fy, p.Z.Max})
	}
	for _, t := range majors(b.Y.Ticks, p.Y) {
		line([3]float64{p.X.Min, t, p.Z.Min}, [3]float64{p.X.Max, t, p.Z.Min})
		line([3]float64{fx, t, p.Z.Min}, [3]float64{fx, t, p.Z.Max})
	}
	for _, t := range majors(b.Z.Ticks, p.Z) {
		line([3]float64{p.X.Min, fy, t}, [3]float64{p.X.Max, fy, t})
		line([3]float64{fx, p.Y.Min, t}, [3]float64{fx, p.Y.Max, t})
	}
}

// leftCorner returns the vertical edge that appears leftmost on screen.
func (b *Box) leftCorner() (x, y float64) {
	p := b.Proj
	best := math.Inf(1)
	for _, cx := range []float64{p.X.Min, p.X.Max} {
		for _, cy := range []float64{p.Y.Min, p.Y.Max} {
			u, _, _ := p.Project(cx, cy, p.Z.Min)
			if u < best {
				best, x, y = u, cx, cy
			}
		}
	}
	return x, y
}

// runs splits a series into maximal runs of consecutive points inside the
// box; points outside any axis range are dropped.
func (b *Box) runs(s Series) [][][3]float64 {
	n := min(len(s.X), len(s.Y), len(s.Z))
	var (
		out [][][3]float64
		cur [][3]float64
	)
	for i := 0; i < n; i++ {
		x, y, z := s.X[i], s.Y[i], s.Z[i]
		if !b.Proj.X.Contains(x) || !b.Proj.Y.Contains(y) || !b.Proj.Z.Contains(z) {
			if len(cur) > 1 {
				out = append(out, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, [3]float64{x, y, z})
	}
	if len(cur) > 1 {
		out = append(out, cur)
	}
	return out
}

func majors(ticks []plot.Tick, r Range) []float64 {
	var v []float64
	for _, t := range ticks {
		if !t.IsMinor() && r.Contains(t.Value) {
			v = append(v, t.Value)
		}
	}
	return v
}

func unit(p vg.Point) vg.Point {
	l := vg.Length(math.Hypot(float64(p.X), float64(p.Y)))
	if l == 0 {
		return vg.Point{}
	}
	return vg.Point{X: p.X / l, Y: p.Y / l}
}

var (
	_ plot.Plotter    = (*Box)(nil)
	_ plot.DataRanger = (*Box)(nil)
)
