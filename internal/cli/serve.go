package cli

import (
	"context"
	goerrors "errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/eborriello/genfigs/internal/server"
	"github.com/eborriello/genfigs/pkg/pipeline"
)

const (
	defaultServeAddr = "127.0.0.1:8080"
	shutdownTimeout  = 5 * time.Second
)

// serveCommand creates the serve command, an HTTP server that renders
// figures on request.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, dataDir string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview figures over HTTP",
		Long: `Serve the catalog over HTTP, rendering figures on request.

  GET /figures                  catalog as JSON
  GET /figures/{id}.{format}    rendered figure (?dpi=N, ?refresh=1)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataDir != "" {
				c.cfg.DataDir = dataDir
			}
			addr = firstNonEmpty(addr, c.cfg.Serve.Addr, defaultServeAddr)

			ctx := cmd.Context()
			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			jobs := func(id string) (pipeline.Job, error) {
				return c.job(id, jobFlags{})
			}
			return c.serve(ctx, addr, server.New(runner, jobs, c.Logger))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+defaultServeAddr+")")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory holding the input tables")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

// serve runs h on addr until ctx is done, then shuts down gracefully.
func (c *CLI) serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	printSuccess("Serving figures on %s", StyleLink.Render("http://"+addr+"/figures"))
	printDetail("data dir: %s", c.dataDir())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !goerrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
