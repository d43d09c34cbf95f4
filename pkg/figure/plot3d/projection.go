// Package plot3d draws line series inside a projected 3D box on an ordinary
// gonum plot.
//
// gonum has no 3D axes, so the box, its grid and its tick labels are drawn
// by a single [Box] plotter in projected coordinates. The hosting plot's own
// axes should be hidden. Projection is orthographic: each axis range is
// normalised to a unit cube centred on the origin, which is then rotated by
// the view's azimuth (about z) and elevation (about the screen's horizontal).
package plot3d

import "math"

// View is a camera direction in degrees.
type View struct {
	Elevation float64
	Azimuth   float64
}

// Range is a closed data interval on one axis.
type Range struct {
	Min, Max float64
}

// Norm maps v into [-0.5, 0.5] for v inside the range.
func (r Range) Norm(v float64) float64 {
	if r.Max == r.Min {
		return 0
	}
	return (v-r.Min)/(r.Max-r.Min) - 0.5
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Projection maps data coordinates to screen coordinates.
type Projection struct {
	X, Y, Z Range
	View    View

	// basis vectors: screen right, screen up, toward the eye
	right, up, eye [3]float64
}

// NewProjection returns the projection of the given box seen from v.
func NewProjection(x, y, z Range, v View) Projection {
	el := v.Elevation * math.Pi / 180
	az := v.Azimuth * math.Pi / 180
	return Projection{
		X: x, Y: y, Z: z, View: v,
		right: [3]float64{-math.Sin(az), math.Cos(az), 0},
		up:    [3]float64{-math.Sin(el) * math.Cos(az), -math.Sin(el) * math.Sin(az), math.Cos(el)},
		eye:   [3]float64{math.Cos(el) * math.Cos(az), math.Cos(el) * math.Sin(az), math.Sin(el)},
	}
}

// Project returns the screen position (u, v) of a data point and its depth
// toward the viewer; larger depth is closer.
func (p Projection) Project(x, y, z float64) (u, v, depth float64) {
	n := [3]float64{p.X.Norm(x), p.Y.Norm(y), p.Z.Norm(z)}
	return dot(n, p.right), dot(n, p.up), dot(n, p.eye)
}

// Corners returns the eight corners of the box in data coordinates.
func (p Projection) Corners() [8][3]float64 {
	var c [8][3]float64
	for i := range c {
		c[i] = [3]float64{
			pick(i&1 != 0, p.X),
			pick(i&2 != 0, p.Y),
			pick(i&4 != 0, p.Z),
		}
	}
	return c
}

// Bounds returns the extent of the projected box.
func (p Projection) Bounds() (umin, umax, vmin, vmax float64) {
	umin, vmin = math.Inf(1), math.Inf(1)
	umax, vmax = math.Inf(-1), math.Inf(-1)
	for _, c := range p.Corners() {
		u, v, _ := p.Project(c[0], c[1], c[2])
		umin, umax = math.Min(umin, u), math.Max(umax, u)
		vmin, vmax = math.Min(vmin, v), math.Max(vmax, v)
	}
	return umin, umax, vmin, vmax
}

// nearX returns the x extreme closer to the viewer, likewise nearY.
func (p Projection) nearX() float64 {
	if p.eye[0] >= 0 {
		return p.X.Max
	}
	return p.X.Min
}

func (p Projection) nearY() float64 {
	if p.eye[1] >= 0 {
		return p.Y.Max
	}
	return p.Y.Min
}

func (p Projection) farX() float64 {
	if p.nearX() == p.X.Max {
		return p.X.Min
	}
	return p.X.Max
}

func (p Projection) farY() float64 {
	if p.nearY() == p.Y.Max {
		return p.Y.Min
	}
	return p.Y.Max
}

func pick(hi bool, r Range) float64 {
	if hi {
		return r.Max
	}
	return r.Min
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
