package figure

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	legendEdge   = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	legendShadow = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80}
)

// legendShadowOffset is in points.
const legendShadowOffset vg.Length = 2

func (s Spec) legendFontSize() float64 {
	if s.Legend != nil && s.Legend.FontSize != 0 {
		return s.Legend.FontSize
	}
	return 0.8 * s.fontSize()
}

func newLegend(s Spec, p *plot.Plot, entries []legendEntry) *plot.Legend {
	size := vg.Points(s.legendFontSize())

	l := plot.NewLegend()
	l.TextStyle.Font = sans(size)
	l.TextStyle.Handler = p.TextHandler
	l.Top = s.Legend.Top
	l.Left = s.Legend.Left
	l.ThumbnailWidth = 2 * size
	l.Padding = size * 0.4

	// Inset from the data area edges, leaving room for the box.
	inset := size
	l.XOffs, l.YOffs = -inset, inset
	if l.Left {
		l.XOffs = inset
	}
	if l.Top {
		l.YOffs = -inset
	}

	for _, e := range entries {
		l.Add(e.label, e.thumbs...)
	}
	return &l
}

// drawLegend draws l inside a rounded, opaque box with a drop shadow.
func drawLegend(c draw.Canvas, l *plot.Legend, fontSize float64) {
	pad := vg.Points(fontSize * 0.5)
	r := l.Rectangle(c)
	box := vg.Rectangle{
		Min: vg.Point{X: r.Min.X - pad, Y: r.Min.Y - pad},
		Max: vg.Point{X: r.Max.X + pad, Y: r.Max.Y + pad},
	}
	radius := vg.Points(fontSize * 0.3)

	shadow := box.Add(vg.Point{X: legendShadowOffset, Y: -legendShadowOffset})
	c.SetColor(legendShadow)
	c.Fill(roundedRect(shadow, radius))

	path := roundedRect(box, radius)
	c.SetColor(White)
	c.Fill(path)
	c.SetLineStyle(lineStyle(legendEdge, vg.Points(1)))
	c.Stroke(path)

	l.Draw(c)
}

func roundedRect(r vg.Rectangle, rad vg.Length) vg.Path {
	var p vg.Path
	p.Move(vg.Point{X: r.Min.X + rad, Y: r.Min.Y})
	p.Line(vg.Point{X: r.Max.X - rad, Y: r.Min.Y})
	p.Arc(vg.Point{X: r.Max.X - rad, Y: r.Min.Y + rad}, rad, -math.Pi/2, math.Pi/2)
	p.Line(vg.Point{X: r.Max.X, Y: r.Max.Y - rad})
	p.Arc(vg.Point{X: r.Max.X - rad, Y: r.Max.Y - rad}, rad, 0, math.Pi/2)
	p.Line(vg.Point{X: r.Min.X + rad, Y: r.Max.Y})
	p.Arc(vg.Point{X: r.Min.X + rad, Y: r.Max.Y - rad}, rad, math.Pi/2, math.Pi/2)
	p.Line(vg.Point{X: r.Min.X, Y: r.Min.Y + rad})
	p.Arc(vg.Point{X: r.Min.X + rad, Y: r.Min.Y + rad}, rad, math.Pi, math.Pi/2)
	p.Close()
	return p
}
