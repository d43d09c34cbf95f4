package figure

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Named colors used by the paper's figures.
var (
	TabBlue    = color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	TabGreen   = color.NRGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
	Orange     = color.NRGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}
	DarkGray   = color.NRGBA{R: 0xa9, G: 0xa9, B: 0xa9, A: 0xff}
	Black      = color.NRGBA{A: 0xff}
	White      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	WhiteSmoke = color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}

	// MinorGrid is #999999 at 20% opacity.
	MinorGrid = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0x33}
)

// Page geometry and type sizes.
const (
	DefaultWidth  = 6.4 * vg.Inch
	DefaultHeight = 4.8 * vg.Inch

	// Padding is left around the drawing when it is saved.
	Padding = 0.1 * vg.Inch

	// DPI applies to raster output; vector formats ignore it.
	DPI = 100

	DefaultFontSize = 14
	AxisLineWidth   = 1.5
)

// Typeface used for all text. The Liberation family ships with gonum, so
// rendering never depends on system fonts.
const (
	typeface = "Liberation"
	variant  = "Sans"
)

// Stacking order of chart parts. Scatter markers sit below the grid, lines
// above it, text on top. A layer whose Z is zero takes its kind's default.
const (
	ZBelow   = 0.25
	ZGridLow = 0.5
	ZScatter = 1.0
	ZGrid    = 1.5
	ZLine    = 2.0
	ZText    = 3.0
)

func sans(size vg.Length) font.Font {
	return font.Font{Typeface: typeface, Variant: variant, Size: size}
}

// applyStyle sets fonts, axis strokes and tick styling on p.
func applyStyle(p *plot.Plot, s Spec) {
	size := vg.Points(s.fontSize())

	p.Title.TextStyle.Font = sans(size)
	p.Title.Padding = vg.Points(8)

	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Font = sans(size)
		ax.Tick.Label.Font = sans(size)
		ax.LineStyle.Width = vg.Points(AxisLineWidth)
		ax.Tick.LineStyle.Width = vg.Points(AxisLineWidth * 2 / 3)
		ax.Padding = 0
	}
	p.Legend.TextStyle.Font = sans(size)
}

// dashed returns the dash pattern of a dashed stroke of the given width.
func dashed(width vg.Length) []vg.Length {
	return []vg.Length{3.7 * width, 1.6 * width}
}

// dotted returns the dash pattern of a dotted stroke of the given width.
func dotted(width vg.Length) []vg.Length {
	return []vg.Length{width, 1.65 * width}
}

func lineStyle(c color.Color, width vg.Length) draw.LineStyle {
	return draw.LineStyle{Color: c, Width: width}
}
