package plot3d

import (
	"math"
	"testing"
)

var (
	testX = Range{Min: 0, Max: 0.85}
	testY = Range{Min: 1, Max: 5}
	testZ = Range{Min: 0, Max: 30}
	paper = View{Elevation: 30, Azimuth: -75}
)

func TestRangeNorm(t *testing.T) {
	r := Range{Min: 2, Max: 6}
	tests := []struct {
		v, want float64
	}{
		{2, -0.5},
		{4, 0},
		{6, 0.5},
	}
	for _, tt := range tests {
		if got := r.Norm(tt.v); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Norm(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
	if got := (Range{Min: 1, Max: 1}).Norm(1); got != 0 {
		t.Errorf("degenerate Norm = %v, want 0", got)
	}
}

func TestProjectCentre(t *testing.T) {
	p := NewProjection(testX, testY, testZ, paper)
	u, v, d := p.Project(0.425, 3, 15)
	for name, got := range map[string]float64{"u": u, "v": v, "depth": d} {
		if math.Abs(got) > 1e-12 {
			t.Errorf("%s = %v, want 0", name, got)
		}
	}
}

func TestProjectZIsUp(t *testing.T) {
	p := NewProjection(testX, testY, testZ, paper)
	u0, v0, _ := p.Project(0.2, 2, 0)
	u1, v1, _ := p.Project(0.2, 2, 30)
	if math.Abs(u0-u1) > 1e-12 {
		t.Errorf("vertical edge moved horizontally: %v -> %v", u0, u1)
	}
	if v1 <= v0 {
		t.Errorf("v(z=max) = %v, want above v(z=min) = %v", v1, v0)
	}
}

func TestNearCorner(t *testing.T) {
	p := NewProjection(testX, testY, testZ, paper)
	if got := p.nearX(); got != testX.Max {
		t.Errorf("nearX = %v, want %v", got, testX.Max)
	}
	if got := p.nearY(); got != testY.Min {
		t.Errorf("nearY = %v, want %v", got, testY.Min)
	}
	if p.farX() != testX.Min || p.farY() != testY.Max {
		t.Errorf("far corner = (%v, %v)", p.farX(), p.farY())
	}

	_, _, near := p.Project(p.nearX(), p.nearY(), testZ.Max)
	for _, c := range p.Corners() {
		if _, _, d := p.Project(c[0], c[1], c[2]); d > near+1e-12 {
			t.Errorf("corner %v depth %v exceeds near corner depth %v", c, d, near)
		}
	}
}

func TestBoundsSymmetric(t *testing.T) {
	p := NewProjection(testX, testY, testZ, paper)
	umin, umax, vmin, vmax := p.Bounds()
	if math.Abs(umin+umax) > 1e-12 || math.Abs(vmin+vmax) > 1e-12 {
		t.Errorf("Bounds = (%v, %v, %v, %v), want symmetric about 0", umin, umax, vmin, vmax)
	}

	b := &Box{Proj: p}
	xmin, xmax, ymin, ymax := b.DataRange()
	if xmin >= umin || xmax <= umax || ymin >= vmin || ymax <= vmax {
		t.Errorf("DataRange (%v, %v, %v, %v) does not enclose the box", xmin, xmax, ymin, ymax)
	}
}

func TestLeftCorner(t *testing.T) {
	p := NewProjection(testX, testY, testZ, paper)
	b := &Box{Proj: p}
	x, y := b.leftCorner()
	u, _, _ := p.Project(x, y, 0)
	for _, c := range p.Corners() {
		if cu, _, _ := p.Project(c[0], c[1], c[2]); cu < u-1e-12 {
			t.Errorf("corner %v is left of chosen edge (%v, %v)", c, x, y)
		}
	}
}

func TestRunsClip(t *testing.T) {
	b := &Box{Proj: NewProjection(testX, testY, testZ, paper)}
	s := Series{
		X: []float64{0, 0.1, 0.2, 0.9, 1.0, 0.3, 0.4, 0.5},
		Y: []float64{1, 1, 1, 1, 1, 1, 1, 1},
		Z: []float64{1, 2, 3, 4, 5, 6, 7, 8},
	}
	runs := b.runs(s)
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if len(runs[0]) != 3 || len(runs[1]) != 3 {
		t.Errorf("run lengths = %d, %d, want 3, 3", len(runs[0]), len(runs[1]))
	}
	if runs[1][0][0] != 0.3 {
		t.Errorf("second run starts at x=%v, want 0.3", runs[1][0][0])
	}
}

func TestRunsDropsIsolatedPoints(t *testing.T) {
	b := &Box{Proj: NewProjection(testX, testY, testZ, paper)}
	s := Series{
		X: []float64{0.1, 2, 0.2},
		Y: []float64{1, 1, 1},
		Z: []float64{1, 1, 1},
	}
	if runs := b.runs(s); len(runs) != 0 {
		t.Errorf("got %d runs, want 0", len(runs))
	}
}
