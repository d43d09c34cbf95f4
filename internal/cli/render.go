package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eborriello/genfigs/pkg/catalog"
	"github.com/eborriello/genfigs/pkg/figure/sink"
	"github.com/eborriello/genfigs/pkg/pipeline"
)

// renderCommand creates the render command for drawing one figure.
func (c *CLI) renderCommand() *cobra.Command {
	var flags jobFlags
	var noCache bool

	cmd := &cobra.Command{
		Use:   "render <figure>",
		Short: "Render one figure",
		Long: `Render one figure of the paper from its data table.

The figure is named by its catalog id (1, 3a ... 8rep); "fig3a" and
"figure_3A" work too. Run "genfigs list" for the catalog.`,
		Example: `  genfigs render 3a
  genfigs render 4 -i data/figure_4.csv -o out/figure_4.svg
  genfigs render 8rep -f png --dpi 300 --show`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFigureIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			job, err := c.job(args[0], flags)
			if err != nil {
				return err
			}
			return c.runRender(ctx, runner, job)
		},
	}

	addJobFlags(cmd, &flags)
	cmd.Flags().BoolVar(&flags.show, "show", false, "open the figure in the system viewer")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

func addJobFlags(cmd *cobra.Command, f *jobFlags) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "input data file (default from catalog)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default from catalog)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: "+formatNames()+" (default from output extension, else pdf)")
	cmd.Flags().IntVar(&f.dpi, "dpi", 0, fmt.Sprintf("resolution of raster formats (default %d)", sink.DefaultDPI))
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even if the artifact is cached")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func (c *CLI) runRender(ctx context.Context, runner *pipeline.Runner, job pipeline.Job) error {
	spin := newSpinnerWithContext(ctx, "Rendering "+job.Figure.Name+"...")
	spin.Start()

	res, err := runner.Render(ctx, job)
	if err != nil {
		spin.StopWithError(job.Figure.Name + " failed")
		return err
	}
	spin.StopWithSuccess(job.Figure.Name)
	printFile(res.Output)
	printRenderStats(res)
	if job.Show && !res.Displayed {
		printWarning("Could not open a viewer for %s", res.Output)
	}
	return nil
}

func formatNames() string {
	var names []string
	for _, f := range sink.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// completeFigureIDs offers the catalog ids for shell completion.
func completeFigureIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, s := range catalog.All() {
		if strings.HasPrefix(s.ID, strings.ToLower(toComplete)) {
			out = append(out, s.ID+"\t"+s.Description)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
