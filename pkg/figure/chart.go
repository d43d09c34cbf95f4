package figure

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/eborriello/genfigs/pkg/figure/colormap"
	"github.com/eborriello/genfigs/pkg/figure/plot3d"
)

// Colorbar layout, as fractions of the page width.
const (
	colorbarShare = 0.2
	colorbarGap   = 0.03
)

// Chart is a laid-out figure, ready to be drawn onto any vg canvas.
//
// The exported plotters give access to what was placed on the chart; they
// are owned by the chart and must not be modified after Build returns.
type Chart struct {
	Spec Spec
	Plot *plot.Plot

	Legend   *plot.Legend
	Colorbar *plot.Plot
	// Colors is the colormap of the first scatter layer, if any.
	Colors *colormap.Interpolated

	Lines     []*plotter.Line
	Scatters  []*plotter.Scatter
	ErrorBars []*plotter.YErrorBars
	Projected *plot3d.Box
}

// Draw renders the chart onto dc, leaving Padding on every side.
func (ch *Chart) Draw(dc draw.Canvas) {
	dc = draw.Crop(dc, Padding, -Padding, Padding, -Padding)

	main := dc
	if ch.Colorbar != nil {
		w := dc.Max.X - dc.Min.X
		main = draw.Crop(dc, 0, -w*colorbarShare, 0, 0)

		// Align the bar with the main data area.
		data := ch.Plot.DataCanvas(main)
		bar := draw.Crop(dc, w*(1-colorbarShare+colorbarGap), 0, 0, 0)
		bar.Min.Y, bar.Max.Y = data.Min.Y, data.Max.Y
		ch.Colorbar.Draw(bar)
	}

	ch.Plot.Draw(main)

	if ch.Legend != nil {
		drawLegend(ch.Plot.DataCanvas(main), ch.Legend, ch.Spec.legendFontSize())
	}
}

func newColorbar(s Spec, cm *colormap.Interpolated) *plot.Plot {
	p := plot.New()
	applyStyle(p, s)
	p.HideX()
	p.X.Padding = 0
	p.Title.Padding = 0

	cb := &plotter.ColorBar{ColorMap: cm, Vertical: true}
	p.Add(cb)

	if s.Colorbar.Ticks != nil {
		if ticks := fixedTicks(s.Colorbar.Ticks, cm.Min(), cm.Max()); len(ticks) > 0 {
			p.Y.Tick.Marker = ticks
		}
	}
	p.Y.Label.Text = s.Colorbar.Label
	if s.Colorbar.FontSize != 0 {
		p.Y.Label.TextStyle.Font = sans(vg.Points(s.Colorbar.FontSize))
	}
	return p
}
