package figure

import (
	"gonum.org/v1/plot/vg"

	"github.com/eborriello/genfigs/pkg/dataset"
	"github.com/eborriello/genfigs/pkg/errors"
)

// Scale selects how an axis maps data to position.
type Scale int

const (
	Linear Scale = iota
	Log
)

func (s Scale) String() string {
	if s == Log {
		return "log"
	}
	return "linear"
}

// Axis is the fixed configuration of one plot axis.
//
// Min and Max pin the visible range. When both are zero the range is taken
// from the data instead.
type Axis struct {
	Label string
	Min   float64
	Max   float64
	Scale Scale

	// Ticks, when set, replaces automatic major tick placement.
	Ticks []float64
}

// Fixed reports whether the axis range is pinned.
func (a Axis) Fixed() bool {
	return a.Min != 0 || a.Max != 0
}

// Legend configures the boxed legend drawn inside the data area.
type Legend struct {
	// FontSize in points; zero uses 0.8 of the figure's font size.
	FontSize float64
	// Top and Left choose the corner the legend is anchored to.
	Top, Left bool
}

// Colorbar configures the vertical color scale next to a scatter plot.
// It shows the color channel of the first Scatter layer.
type Colorbar struct {
	Label string
	// Ticks lists the labelled values; those outside the data range are
	// dropped. Nil uses automatic ticks.
	Ticks []float64
	// FontSize for the label in points; zero uses the figure's font size.
	FontSize float64
}

// Spec is a complete, static description of one figure.
type Spec struct {
	// ID is the short identifier used on the command line ("3a").
	ID string
	// Name is the display name ("Figure 3A").
	Name string
	// Description is a one-line summary of what the figure shows.
	Description string

	// Schema describes the input table. Nil means the figure has no input
	// file and all channels are literal.
	Schema *dataset.Schema
	// Input and Output are the default file paths.
	Input  string
	Output string

	Title string
	X, Y  Axis

	Layers   []Layer
	Legend   *Legend
	Colorbar *Colorbar

	// GridBelow draws grid lines beneath scatter points as well as lines.
	GridBelow bool
	// NoGrid disables grid lines altogether.
	NoGrid bool
	// HideAxes hides the 2D axes; used by projected 3D figures.
	HideAxes bool

	// FontSize in points for labels and ticks; zero means DefaultFontSize.
	FontSize float64
	// Width and Height of the page; zero means DefaultWidth/DefaultHeight.
	Width, Height vg.Length
}

// NeedsInput reports whether the figure reads a table.
func (s Spec) NeedsInput() bool {
	return s.Schema != nil
}

// Size returns the page size.
func (s Spec) Size() (w, h vg.Length) {
	w, h = s.Width, s.Height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	return w, h
}

func (s Spec) fontSize() float64 {
	if s.FontSize == 0 {
		return DefaultFontSize
	}
	return s.FontSize
}

// Channel binds a layer input to data. Exactly one of Column, Time or
// Values is used, in that order of precedence.
type Channel struct {
	// Column names a table column.
	Column string
	// Time derives the generation axis from the row count of the table.
	Time bool
	// Values holds literal data.
	Values []float64
}

// Col binds a table column.
func Col(name string) Channel { return Channel{Column: name} }

// Time binds the derived generation axis, in millions of generations.
func Time() Channel { return Channel{Time: true} }

// Values binds literal data.
func Values(v ...float64) Channel { return Channel{Values: v} }

// Resolve returns the values the channel denotes.
func (c Channel) Resolve(t *dataset.Table) ([]float64, error) {
	switch {
	case c.Column != "":
		if t == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "column %q bound without a table", c.Column)
		}
		return t.Column(c.Column)
	case c.Time:
		if t == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "time axis bound without a table")
		}
		return dataset.TimeAxis(t.Len(), dataset.GenerationStep), nil
	case c.Values != nil:
		return append([]float64(nil), c.Values...), nil
	}
	return nil, errors.New(errors.ErrCodeInternal, "empty channel")
}

func (c Channel) String() string {
	switch {
	case c.Column != "":
		return c.Column
	case c.Time:
		return "time"
	case c.Values != nil:
		return "literal"
	}
	return "empty"
}

// Kinds names the chart types the figure is made of, in layer order and
// without repeats: "line", "scatter", "error bars" or "3d". Annotation
// layers are not counted.
func (s Spec) Kinds() []string {
	var kinds []string
	seen := make(map[string]bool)
	for _, l := range s.Layers {
		var k string
		switch l.(type) {
		case Line, Curve:
			k = "line"
		case Scatter:
			k = "scatter"
		case ErrorBars:
			k = "error bars"
		case Trajectories3D:
			k = "3d"
		default:
			continue
		}
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return kinds
}
