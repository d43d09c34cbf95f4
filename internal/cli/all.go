package cli

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/eborriello/genfigs/pkg/catalog"
	"github.com/eborriello/genfigs/pkg/errors"
	"github.com/eborriello/genfigs/pkg/pipeline"
)

// batchResult is the outcome of one figure in a batch.
type batchResult struct {
	job pipeline.Job
	res *pipeline.Result
	err error
}

// allCommand creates the all command, which renders the whole catalog.
func (c *CLI) allCommand() *cobra.Command {
	var (
		dataDir, outDir string
		flags           jobFlags
		jobs            int
		noCache         bool
	)

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Render every figure",
		Long: `Render every figure in the catalog.

A failing figure is reported and the rest are still rendered; the command
exits non-zero if any figure failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataDir != "" {
				c.cfg.DataDir = dataDir
			}
			if outDir != "" {
				c.cfg.OutDir = outDir
			}
			if jobs <= 0 {
				jobs = c.cfg.Jobs
			}
			ctx := cmd.Context()
			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			results, err := c.renderAll(ctx, runner, flags, jobs)
			if err != nil {
				return err
			}
			return reportBatch(results)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory holding the input tables (default \""+catalog.DataDir+"\")")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory to write figures to (default working directory)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: "+formatNames())
	cmd.Flags().IntVar(&flags.dpi, "dpi", 0, "resolution of raster formats")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "re-render even if artifacts are cached")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "figures to render concurrently (default 1)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	return cmd
}

// renderAll renders the catalog with at most jobs renders in flight. Per
// figure failures are returned in the results; the error is only set when
// the batch itself could not run.
func (c *CLI) renderAll(ctx context.Context, runner *pipeline.Runner, flags jobFlags, jobs int) ([]batchResult, error) {
	if jobs <= 0 {
		jobs = 1
	}
	if n := runtime.NumCPU(); jobs > n {
		jobs = n
	}

	runID := uuid.NewString()
	logger := loggerFromContext(ctx).With("run", runID[:8])
	ids := catalog.IDs()
	logger.Info("rendering catalog", "figures", len(ids), "jobs", jobs)
	prog := newProgress(logger)

	results := make([]batchResult, len(ids))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, id := range ids {
		i, id := i, id // per-iteration copies; go.mod targets go1.21 loop semantics
		job, err := c.job(id, flags)
		if err != nil {
			return nil, err
		}
		results[i].job = job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			start := time.Now()
			res, err := runner.Render(ctx, job)
			results[i].res, results[i].err = res, err
			if err != nil {
				logger.Error("figure failed", "figure", id, "duration", time.Since(start), "err", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	prog.done(fmt.Sprintf("Rendered %d figures", countOK(results)))
	return results, nil
}

func countOK(results []batchResult) int {
	n := 0
	for _, r := range results {
		if r.err == nil {
			n++
		}
	}
	return n
}

// reportBatch prints one line per figure and fails if any figure failed.
func reportBatch(results []batchResult) error {
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			printError("%s: %s", r.job.Figure.Name, errors.UserMessage(r.err))
			continue
		}
		printSuccess("%s %s %s", r.job.Figure.Name, StyleDim.Render(iconArrow), r.res.Output)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d figures failed", failed, len(results))
	}
	return nil
}
