package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/eborriello/genfigs/pkg/buildinfo"
	"github.com/eborriello/genfigs/pkg/cache"
	"github.com/eborriello/genfigs/pkg/catalog"
	"github.com/eborriello/genfigs/pkg/errors"
	"github.com/eborriello/genfigs/pkg/figure/sink"
	"github.com/eborriello/genfigs/pkg/observability"
)

// Runner renders figures with caching.
//
// The Runner holds no per-render state: every render owns its table, plot
// and canvas. Multiple goroutines can use the same Runner with different
// jobs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// Viewer opens written files for jobs with Show set.
	Viewer Viewer
	// TTL of cached artifacts; zero means cache.DefaultTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Viewer: SystemViewer{},
		TTL:    cache.DefaultTTL,
	}
}

// Render draws the job's figure and writes it to job.Output. A failed render
// leaves any existing output file untouched.
func (r *Runner) Render(ctx context.Context, job Job) (*Result, error) {
	if err := job.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	id := job.Figure.ID
	start := time.Now()
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, id)

	res, err := r.render(ctx, job)
	if res != nil {
		res.Duration = time.Since(start)
	}
	r.stage(ctx, id, observability.StageClosed)

	if err != nil {
		hooks.OnRenderComplete(ctx, id, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnRenderComplete(ctx, id, res.Bytes, res.Duration, nil)

	r.Logger.Info("rendered figure",
		"figure", id,
		"output", res.Output,
		"bytes", res.Bytes,
		"cache", res.CacheHit,
		"duration", res.Duration)
	return res, nil
}

func (r *Runner) render(ctx context.Context, job Job) (*Result, error) {
	data, hit, err := r.ArtifactWithCacheInfo(ctx, job)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := sink.WriteFile(job.Output, data); err != nil {
		return nil, err
	}
	r.stage(ctx, job.Figure.ID, observability.StagePersisted)

	res := &Result{
		Figure:   job.Figure.ID,
		Output:   job.Output,
		Format:   job.Format,
		Bytes:    len(data),
		CacheHit: hit,
	}

	if job.Show && r.Viewer != nil {
		// The file is already written; a viewer failure does not fail the render.
		if err := r.Viewer.Open(ctx, job.Output); err != nil {
			r.Logger.Warn("could not open viewer", "output", job.Output, "err", err)
		} else {
			res.Displayed = true
			r.stage(ctx, job.Figure.ID, observability.StageDisplayed)
		}
	}
	return res, nil
}

// Artifact returns the encoded figure without writing it anywhere.
func (r *Runner) Artifact(ctx context.Context, job Job) ([]byte, error) {
	if err := job.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	data, _, err := r.ArtifactWithCacheInfo(ctx, job)
	return data, err
}

// ArtifactWithCacheInfo returns the encoded figure and whether it came from
// the cache. job must already have its defaults set.
func (r *Runner) ArtifactWithCacheInfo(ctx context.Context, job Job) ([]byte, bool, error) {
	s := job.Figure

	var input []byte
	if s.NeedsInput() {
		var err error
		if input, err = ReadInput(job.Input); err != nil {
			return nil, false, err
		}
	}

	key := r.Keyer.ArtifactKey(r.keyOpts(job, input))
	if !job.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, s.ID)
			r.Logger.Debug("cache hit", "figure", s.ID, "format", job.Format)
			r.stage(ctx, s.ID, observability.StageDataLoaded)
			r.stage(ctx, s.ID, observability.StageRendered)
			return data, true, nil
		} else if err != nil {
			r.Logger.Warn("cache lookup failed", "figure", s.ID, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, s.ID)
	}

	t, err := Parse(s, job.Input, input)
	if err != nil {
		return nil, false, err
	}
	r.stage(ctx, s.ID, observability.StageDataLoaded)

	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := Encode(s, t, job.Format, job.DPI)
	if err != nil {
		if errors.IsInput(err) && job.Input != "" {
			return nil, false, errors.Wrap(errors.GetCode(err), err, "%s", job.Input)
		}
		return nil, false, err
	}
	r.stage(ctx, s.ID, observability.StageRendered)

	if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
		r.Logger.Warn("cache store failed", "figure", s.ID, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, s.ID, len(data))
	}
	return data, false, nil
}

func (r *Runner) keyOpts(job Job, input []byte) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Figure:   job.Figure.ID,
		Format:   string(job.Format),
		Revision: catalog.Revision,
		Version:  buildinfo.Short(),
	}
	if job.Format.Raster() {
		opts.DPI = job.DPI
	}
	if input != nil {
		opts.InputHash = cache.Hash(input)
	}
	return opts
}

func (r *Runner) ttl() time.Duration {
	if r.TTL <= 0 {
		return cache.DefaultTTL
	}
	return r.TTL
}

func (r *Runner) stage(ctx context.Context, figure, stage string) {
	r.Logger.Debug("render stage", "figure", figure, "stage", stage)
	observability.Render().OnStage(ctx, figure, stage)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
