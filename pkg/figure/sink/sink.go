package sink

import (
	"bytes"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-pdf/fpdf"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/eborriello/genfigs/pkg/errors"
)

// Format is an output file format.
type Format string

const (
	PDF  Format = "pdf"
	SVG  Format = "svg"
	PNG  Format = "png"
	JPEG Format = "jpg"
	TIFF Format = "tiff"
)

// DefaultDPI is the resolution of raster output.
const DefaultDPI = 100

// Formats lists the supported formats, PDF first.
func Formats() []Format {
	return []Format{PDF, SVG, PNG, JPEG, TIFF}
}

// ParseFormat resolves a format name or file extension, with or without the
// leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "pdf":
		return PDF, nil
	case "svg":
		return SVG, nil
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", s, formatList())
}

// FromPath returns the format implied by path's extension.
func FromPath(path string) (Format, bool) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	return f, err == nil
}

// Ext returns the file extension of the format including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case PDF:
		return "application/pdf"
	case SVG:
		return "image/svg+xml"
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	case TIFF:
		return "image/tiff"
	}
	return "application/octet-stream"
}

func formatList() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// Drawer is anything that can draw itself onto a canvas.
type Drawer interface {
	Draw(c draw.Canvas)
}

// Option configures [Encode].
type Option func(*encoder)

type encoder struct {
	dpi int
}

// WithDPI sets the resolution of raster formats. Vector formats ignore it.
func WithDPI(dpi int) Option {
	return func(e *encoder) {
		if dpi > 0 {
			e.dpi = dpi
		}
	}
}

// pdfEpoch is written as the creation and modification date of every PDF.
var pdfEpoch = time.Date(2021, time.May, 1, 0, 0, 0, 0, time.UTC)

var pinPDF sync.Once

func pinPDFMetadata() {
	pinPDF.Do(func() {
		fpdf.SetDefaultCreationDate(pdfEpoch)
		fpdf.SetDefaultModificationDate(pdfEpoch)
		fpdf.SetDefaultCatalogSort(true)
	})
}

// Encode draws d onto a w×h page in format f and returns the encoded file.
func Encode(d Drawer, f Format, w, h vg.Length, opts ...Option) (out []byte, err error) {
	e := encoder{dpi: DefaultDPI}
	for _, opt := range opts {
		opt(&e)
	}

	c, err := e.canvas(f, w, h)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = nil, errors.New(errors.ErrCodeInternal, "draw %s: %v", f, r)
		}
	}()
	d.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", f)
	}
	return buf.Bytes(), nil
}

func (e encoder) canvas(f Format, w, h vg.Length) (vg.CanvasWriterTo, error) {
	switch f {
	case PDF:
		pinPDFMetadata()
		c := vgpdf.New(w, h)
		c.EmbedFonts(true)
		return c, nil
	case SVG:
		return vgsvg.New(w, h), nil
	case PNG, JPEG, TIFF:
		img := vgimg.NewWith(
			vgimg.UseWH(w, h),
			vgimg.UseDPI(e.dpi),
			vgimg.UseBackgroundColor(color.White),
		)
		switch f {
		case PNG:
			return vgimg.PngCanvas{Canvas: img}, nil
		case JPEG:
			return vgimg.JpegCanvas{Canvas: img}, nil
		default:
			return vgimg.TiffCanvas{Canvas: img}, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", string(f))
}

// WriteFile replaces path with data. The bytes go to a temporary file in the
// same directory first, so path is either left untouched or fully written.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeOutput, err, "write %s", path)
	}
	name := tmp.Name()
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(name)
		return errors.Wrap(errors.ErrCodeOutput, err, "write %s", path)
	}

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return errors.Wrap(errors.ErrCodeOutput, err, "write %s", path)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return errors.Wrap(errors.ErrCodeOutput, err, "write %s", path)
	}
	return nil
}

func (f Format) String() string { return string(f) }

// Raster reports whether f is a pixel format, whose size depends on DPI.
func (f Format) Raster() bool {
	switch f {
	case PNG, JPEG, TIFF:
		return true
	}
	return false
}
