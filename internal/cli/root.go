package cli

import (
	"github.com/spf13/cobra"

	"github.com/eborriello/genfigs/pkg/buildinfo"
	"github.com/eborriello/genfigs/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "genfigs regenerates the figures of the default genetic control paper",
		Long: `genfigs draws the published figures of "Evolution of default genetic control
mechanisms" (PLoS ONE, 2021) from their pre-computed data tables.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg

			hooks := logHooks{logger: c.Logger}
			observability.SetRenderHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetServeHooks(hooks)

			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+defaultConfigFile+" if present)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.allCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
