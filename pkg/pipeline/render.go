package pipeline

import (
	"bytes"
	goerrors "errors"
	"os"

	"github.com/eborriello/genfigs/pkg/dataset"
	"github.com/eborriello/genfigs/pkg/errors"
	"github.com/eborriello/genfigs/pkg/figure"
	"github.com/eborriello/genfigs/pkg/figure/sink"
)

// ReadInput returns the raw bytes of a figure's input file.
func ReadInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if goerrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	return data, nil
}

// Parse reads the table of s from data. path only names the source in
// errors.
func Parse(s figure.Spec, path string, data []byte) (*dataset.Table, error) {
	if !s.NeedsInput() {
		return nil, nil
	}
	t, err := dataset.Read(bytes.NewReader(data), *s.Schema)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return t, nil
}

// Encode lays out s over t and encodes it in format f.
func Encode(s figure.Spec, t *dataset.Table, f sink.Format, dpi int) ([]byte, error) {
	ch, err := figure.Build(s, t)
	if err != nil {
		return nil, err
	}
	w, h := s.Size()
	return sink.Encode(ch, f, w, h, sink.WithDPI(dpi))
}
