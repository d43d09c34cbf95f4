// Package pipeline provides the render pipeline shared by the CLI and the
// preview server.
//
// One render runs load → build → encode → persist → (display), moving
// through the stages named in [observability]:
//
//	unstarted → data_loaded → rendered → persisted → (displayed) → closed
//
// Encoded artifacts are cached by figure, format, build and input hash.
// Rendering is deterministic, so a cached artifact is byte-identical to a
// fresh one.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	defer runner.Close()
//
//	job, err := pipeline.NewJob("3a")
//	if err != nil {
//	    return err
//	}
//	job.Input = "data/figure_3A.txt"
//	res, err := runner.Render(ctx, job)
package pipeline

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/eborriello/genfigs/pkg/catalog"
	"github.com/eborriello/genfigs/pkg/errors"
	"github.com/eborriello/genfigs/pkg/figure"
	"github.com/eborriello/genfigs/pkg/figure/sink"
)

// DefaultFormat is used when neither the job nor the output path names one.
const DefaultFormat = sink.PDF

// Job describes one figure render.
type Job struct {
	// Figure is the figure to draw. Use [NewJob] to take it from the catalog.
	Figure figure.Spec

	// Input is the data file. Empty means the figure's default path.
	// Ignored for figures without input.
	Input string
	// Output is the file to write. Empty means the figure's default path
	// with the extension of Format.
	Output string

	// Format of the output. Empty means the format named by Output's
	// extension, else DefaultFormat.
	Format sink.Format
	// DPI for raster formats; zero means sink.DefaultDPI.
	DPI int

	// Show opens the written file in the platform viewer.
	Show bool
	// Refresh skips the cache lookup; the fresh artifact is still stored.
	Refresh bool
}

// NewJob returns a job for the catalog figure id.
func NewJob(id string) (Job, error) {
	if err := errors.ValidateFigureID(id); err != nil {
		return Job{}, err
	}
	s, ok := catalog.Lookup(id)
	if !ok {
		return Job{}, errors.New(errors.ErrCodeFigureNotFound, "unknown figure %q (known: %s)", id, strings.Join(catalog.IDs(), ", "))
	}
	return Job{Figure: s}, nil
}

// ValidateAndSetDefaults checks the job and fills in defaulted fields.
func (j *Job) ValidateAndSetDefaults() error {
	if j.Figure.ID == "" {
		return errors.New(errors.ErrCodeFigureNotFound, "job has no figure")
	}

	if j.Format == "" {
		if f, ok := sink.FromPath(j.Output); ok {
			j.Format = f
		} else {
			j.Format = DefaultFormat
		}
	} else {
		f, err := sink.ParseFormat(string(j.Format))
		if err != nil {
			return err
		}
		j.Format = f
		if ext, ok := sink.FromPath(j.Output); ok && ext != f {
			return errors.New(errors.ErrCodeInvalidFormat,
				"output %s has a .%s extension but format is %s", j.Output, ext, f)
		}
	}

	if j.Output == "" {
		j.Output = WithExt(j.Figure.Output, j.Format)
	}
	if err := errors.ValidatePath(j.Output); err != nil {
		return err
	}

	if j.Figure.NeedsInput() {
		if j.Input == "" {
			j.Input = j.Figure.Input
		}
		if err := errors.ValidatePath(j.Input); err != nil {
			return err
		}
	} else {
		j.Input = ""
	}

	if j.DPI <= 0 {
		j.DPI = sink.DefaultDPI
	}
	return nil
}

// WithExt replaces the extension of path with the one for f.
func WithExt(path string, f sink.Format) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + f.Ext()
}

// Result describes a finished render.
type Result struct {
	Figure   string
	Output   string
	Format   sink.Format
	Bytes    int
	CacheHit bool
	Duration time.Duration
	// Displayed is set when the viewer was launched.
	Displayed bool
}
