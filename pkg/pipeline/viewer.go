package pipeline

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/eborriello/genfigs/pkg/errors"
)

// Viewer displays a written figure.
type Viewer interface {
	Open(ctx context.Context, path string) error
}

// SystemViewer hands the file to the desktop's default application.
type SystemViewer struct{}

// Open launches the platform opener for path and returns once it exits.
// The openers return as soon as the application has been started.
func (SystemViewer) Open(ctx context.Context, path string) error {
	name, args := openCommand(runtime.GOOS, path)
	if err := exec.CommandContext(ctx, name, args...).Run(); err != nil {
		return errors.Wrap(errors.ErrCodeOutput, err, "open %s with %s", path, name)
	}
	return nil
}

func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}
