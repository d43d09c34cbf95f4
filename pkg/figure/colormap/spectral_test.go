package colormap

import (
	"image/color"
	"math"
	"testing"
)

func TestSpectralEnds(t *testing.T) {
	m, err := Spectral()
	if err != nil {
		t.Fatalf("Spectral() error = %v", err)
	}
	lo, _ := m.At(0)
	hi, _ := m.At(1)
	l := color.NRGBAModel.Convert(lo).(color.NRGBA)
	h := color.NRGBAModel.Convert(hi).(color.NRGBA)
	// Low end is red, high end is blue.
	if l.R <= l.B {
		t.Errorf("At(0) = %+v, want red-dominant", l)
	}
	if h.B <= h.R {
		t.Errorf("At(1) = %+v, want blue-dominant", h)
	}
}

func TestPositionMonotonic(t *testing.T) {
	m, err := Spectral()
	if err != nil {
		t.Fatal(err)
	}
	m.SetMin(25)
	m.SetMax(100)

	prev := -1.0
	for v := 0.0; v <= 120; v += 2.5 {
		p := m.Position(v)
		if p < prev {
			t.Fatalf("Position(%v) = %v < previous %v", v, p, prev)
		}
		if p < 0 || p > 1 {
			t.Fatalf("Position(%v) = %v outside [0,1]", v, p)
		}
		prev = p
	}
	if got := m.Position(62.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Position(62.5) = %v, want 0.5", got)
	}
}

func TestAtInterpolates(t *testing.T) {
	m, err := NewInterpolated([]color.Color{
		color.NRGBA{R: 0, A: 255},
		color.NRGBA{R: 200, A: 255},
	})
	if err != nil {
		t.Fatal(err)
	}
	m.SetMin(10)
	m.SetMax(20)

	tests := []struct {
		v     float64
		wantR uint8
	}{
		{10, 0},
		{15, 100},
		{20, 200},
		{-5, 0},   // clamped
		{99, 200}, // clamped
	}
	for _, tt := range tests {
		c, err := m.At(tt.v)
		if err != nil {
			t.Fatalf("At(%v) error = %v", tt.v, err)
		}
		if got := c.(color.NRGBA).R; got != tt.wantR {
			t.Errorf("At(%v).R = %d, want %d", tt.v, got, tt.wantR)
		}
	}

	if _, err := m.At(math.NaN()); err == nil {
		t.Error("At(NaN) error = nil, want error")
	}
}

func TestAlpha(t *testing.T) {
	m, err := Spectral()
	if err != nil {
		t.Fatal(err)
	}
	m.SetAlpha(0.75)
	c, _ := m.At(0.3)
	if got := c.(color.NRGBA).A; got != 191 {
		t.Errorf("alpha byte = %d, want 191", got)
	}
	m.SetAlpha(3)
	if m.Alpha() != 1 {
		t.Errorf("Alpha() = %v, want clamped 1", m.Alpha())
	}
}

func TestPalette(t *testing.T) {
	m, err := Spectral()
	if err != nil {
		t.Fatal(err)
	}
	if got := len(m.Palette(5).Colors()); got != 5 {
		t.Errorf("Palette(5) has %d colors", got)
	}
	if got := len(m.Palette(0).Colors()); got != 1 {
		t.Errorf("Palette(0) has %d colors, want 1", got)
	}
}

func TestNewInterpolatedNeedsTwo(t *testing.T) {
	if _, err := NewInterpolated([]color.Color{color.Black}); err == nil {
		t.Error("NewInterpolated(1 color) error = nil")
	}
}
