// Package figure turns a declarative [Spec] and a [dataset.Table] into a
// drawable [Chart].
//
// Every figure of the paper is the same pattern with different constants:
// bind table columns (or the derived time axis, or literal values) to the
// channels of a few layer kinds, pin the axis limits, apply the house style
// and draw. A Spec is a plain value; [Build] never mutates it and keeps no
// state between calls, so the same Spec can be built repeatedly or from
// several goroutines.
//
// # Layers
//
//   - [Line]: a polyline with optional halo (a wider neutral stroke drawn
//     beneath it) and optional glyphs
//   - [Curve]: cubic interpolation of a column against log10 of another
//   - [Scatter]: points colored through a [colormap.Interpolated] and sized
//     by area
//   - [ErrorBars]: vertical error bars with caps
//   - [Segment]: a straight divider between two data points
//   - [Text]: an annotation anchored at a data point
//   - [Trajectories3D]: category-indexed series in a projected 3D box
//
// Draw order follows each part's z value, ties broken by insertion order.
//
// # Output
//
// [Chart.Draw] draws onto any gonum draw.Canvas; package
// [github.com/eborriello/genfigs/pkg/figure/sink] encodes it to PDF, SVG or
// raster bytes.
package figure
