// Package colormap provides the continuous color scales used by the
// scatter figures.
//
// [Spectral] interpolates the ColorBrewer "Spectral" diverging scheme
// (red at the low end, blue at the high end) in linear RGB steps between the
// eleven control colors, and satisfies [palette.ColorMap] so it can drive a
// gonum [plotter.ColorBar] directly.
//
// [plotter.ColorBar]: https://pkg.go.dev/gonum.org/v1/plot/plotter#ColorBar
package colormap

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
)

// spectralControls is the number of ColorBrewer classes used as control points.
const spectralControls = 11

// Interpolated is a piecewise-linear ColorMap through a list of control
// colors spread evenly over [Min, Max].
type Interpolated struct {
	controls []color.NRGBA
	min, max float64
	alpha    float64
}

// Spectral returns the Spectral color map over [0, 1] at full opacity.
func Spectral() (*Interpolated, error) {
	p, err := brewer.GetPalette(brewer.TypeAny, "Spectral", spectralControls)
	if err != nil {
		return nil, fmt.Errorf("spectral palette: %w", err)
	}
	return NewInterpolated(p.Colors())
}

// NewInterpolated returns a map through the given control colors, which
// must number at least two.
func NewInterpolated(controls []color.Color) (*Interpolated, error) {
	if len(controls) < 2 {
		return nil, fmt.Errorf("need at least 2 control colors, got %d", len(controls))
	}
	m := &Interpolated{min: 0, max: 1, alpha: 1}
	for _, c := range controls {
		m.controls = append(m.controls, color.NRGBAModel.Convert(c).(color.NRGBA))
	}
	return m, nil
}

// Position returns where v falls on the scale as a fraction in [0, 1],
// clamping values outside [Min, Max]. A degenerate range maps to 0.5.
func (m *Interpolated) Position(v float64) float64 {
	if m.max == m.min {
		return 0.5
	}
	f := (v - m.min) / (m.max - m.min)
	return math.Max(0, math.Min(1, f))
}

// At implements palette.ColorMap. Values outside [Min, Max] are clamped
// rather than reported as errors so that every data point gets a color.
func (m *Interpolated) At(v float64) (color.Color, error) {
	if math.IsNaN(v) {
		return nil, palette.ErrNaN
	}
	f := m.Position(v) * float64(len(m.controls)-1)
	i := int(math.Floor(f))
	if i >= len(m.controls)-1 {
		i = len(m.controls) - 2
	}
	frac := f - float64(i)
	lo, hi := m.controls[i], m.controls[i+1]
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + frac*(float64(b)-float64(a))))
	}
	return color.NRGBA{
		R: lerp(lo.R, hi.R),
		G: lerp(lo.G, hi.G),
		B: lerp(lo.B, hi.B),
		A: uint8(math.Round(255 * m.alpha)),
	}, nil
}

// SetMax implements palette.ColorMap.
func (m *Interpolated) SetMax(v float64) { m.max = v }

// SetMin implements palette.ColorMap.
func (m *Interpolated) SetMin(v float64) { m.min = v }

// Max implements palette.ColorMap.
func (m *Interpolated) Max() float64 { return m.max }

// Min implements palette.ColorMap.
func (m *Interpolated) Min() float64 { return m.min }

// SetAlpha implements palette.ColorMap. Alpha is clamped to [0, 1].
func (m *Interpolated) SetAlpha(a float64) { m.alpha = math.Max(0, math.Min(1, a)) }

// Alpha implements palette.ColorMap.
func (m *Interpolated) Alpha() float64 { return m.alpha }

// Palette implements palette.ColorMap, sampling n evenly spaced colors.
func (m *Interpolated) Palette(n int) palette.Palette {
	if n < 1 {
		n = 1
	}
	cols := make([]color.Color, n)
	for i := range cols {
		v := m.min
		if n > 1 {
			v = m.min + float64(i)*(m.max-m.min)/float64(n-1)
		}
		c, _ := m.At(v)
		cols[i] = c
	}
	return plain(cols)
}

type plain []color.Color

func (p plain) Colors() []color.Color { return p }

var _ palette.ColorMap = (*Interpolated)(nil)
