package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 12 figures (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports pipeline and server events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnRenderStart(_ context.Context, figure string) {
	h.logger.Debug("render start", "figure", figure)
}

func (h logHooks) OnStage(context.Context, string, string) {}

func (h logHooks) OnRenderComplete(_ context.Context, figure string, bytes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "figure", figure, "duration", d, "err", err)
		return
	}
	h.logger.Debug("render done", "figure", figure, "bytes", bytes, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, figure string) {
	h.logger.Debug("cache", "figure", figure, "result", "hit")
}

func (h logHooks) OnCacheMiss(_ context.Context, figure string) {
	h.logger.Debug("cache", "figure", figure, "result", "miss")
}

func (h logHooks) OnCacheSet(_ context.Context, figure string, size int) {
	h.logger.Debug("cache", "figure", figure, "result", "stored", "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("served", "method", method, "path", path, "status", status, "duration", d)
}
