// Package cli implements the genfigs command-line interface.
//
// The commands are:
//   - render: draw one figure
//   - all: draw every figure
//   - list: show the figure catalog
//   - pick: choose a figure interactively and draw it
//   - serve: preview figures over HTTP
//   - cache: manage the artifact cache
//
// All commands support --verbose (-v) for debug-level logging and
// --config to read a genfigs.toml. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/eborriello/genfigs/pkg/cache"
	"github.com/eborriello/genfigs/pkg/catalog"
	"github.com/eborriello/genfigs/pkg/figure/sink"
	"github.com/eborriello/genfigs/pkg/pipeline"
)

const appName = "genfigs"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	var keyer cache.Keyer
	if ns := c.cfg.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(nil, ns+":")
	}
	r := pipeline.NewRunner(c.newCache(ctx, noCache), keyer, c.Logger)
	if ttl := c.cfg.Cache.TTL.Duration; ttl > 0 {
		r.TTL = ttl
	}
	return r
}

// newCache picks the configured backend. A cache that cannot be opened
// disables caching rather than failing the render.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	cc := c.cfg.Cache
	if noCache || cc.Disabled {
		return cache.NewNullCache()
	}
	if cc.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: cc.RedisURL, Prefix: cc.Prefix})
		if err == nil {
			c.Logger.Debug("using redis cache", "prefix", cc.Prefix)
			return rc
		}
		c.Logger.Warn("redis cache unavailable, falling back to file cache", "err", err)
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the configured cache directory, else the user cache
// directory (~/.cache/genfigs on Linux).
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// jobFlags are the per-figure flags shared by render, all, pick and serve.
type jobFlags struct {
	input   string
	output  string
	format  string
	dpi     int
	show    bool
	refresh bool
}

// job builds the render job for figure id. Flags take precedence over
// the config file, which takes precedence over the catalog defaults.
func (c *CLI) job(id string, f jobFlags) (pipeline.Job, error) {
	job, err := pipeline.NewJob(id)
	if err != nil {
		return job, err
	}
	s := job.Figure
	fc := c.cfg.figure(s.ID)

	// A configured format yields to the extension of an explicit output.
	name := f.format
	if name == "" {
		if _, ok := sink.FromPath(firstNonEmpty(f.output, fc.Output)); !ok {
			name = c.cfg.Format
		}
	}
	if name != "" {
		if job.Format, err = sink.ParseFormat(name); err != nil {
			return job, err
		}
	}

	switch {
	case f.input != "":
		job.Input = f.input
	case fc.Input != "":
		job.Input = fc.Input
	case c.cfg.DataDir != "" && s.NeedsInput():
		job.Input = rebase(c.cfg.DataDir, s.Input)
	}

	switch {
	case f.output != "":
		job.Output = f.output
	case fc.Output != "":
		job.Output = fc.Output
	case c.cfg.OutDir != "":
		out := s.Output
		if job.Format != "" {
			out = pipeline.WithExt(out, job.Format)
		}
		job.Output = rebase(c.cfg.OutDir, out)
	}

	job.DPI = c.cfg.DPI
	if f.dpi > 0 {
		job.DPI = f.dpi
	}
	job.Show = f.show || c.cfg.Show
	job.Refresh = f.refresh
	return job, nil
}

// rebase moves the file name of path into dir.
func rebase(dir, path string) string {
	return filepath.Join(dir, filepath.Base(path))
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}

// dataDir is where figures read their default inputs from.
func (c *CLI) dataDir() string {
	return firstNonEmpty(c.cfg.DataDir, catalog.DataDir)
}
