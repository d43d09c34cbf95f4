package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("rendered figure") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("render stage") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("render stage") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Rendered 12 figures")

	if !strings.Contains(buf.String(), "Rendered 12 figures (") {
		t.Errorf("progress output = %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := logHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnRenderStart(ctx, "4")
	h.OnCacheMiss(ctx, "4")
	h.OnCacheSet(ctx, "4", 1024)
	h.OnRenderComplete(ctx, "4", 1024, time.Millisecond, nil)
	h.OnRenderComplete(ctx, "6", 0, time.Millisecond, errors.New("no such column"))
	h.OnResponse(ctx, "GET", "/figures/4.pdf", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"render start", "miss", "stored", "render done", "render failed", "no such column", "/figures/4.pdf"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output lacks %q:\n%s", want, out)
		}
	}
}
