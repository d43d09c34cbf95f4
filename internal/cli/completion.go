package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/eborriello/genfigs/pkg/figure/sink"
)

// completionCommand writes a shell completion script to stdout. Besides
// commands and flags, the scripts complete figure ids for render and format
// names for --format.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for genfigs. Figure ids complete after
"genfigs render" and output formats complete after --format:

  $ genfigs render 3<TAB>
  3a  3b  3c  3d  3e

To load completions:

Bash:
  $ source <(genfigs completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ genfigs completion bash > /etc/bash_completion.d/genfigs
  # macOS:
  $ genfigs completion bash > $(brew --prefix)/etc/bash_completion.d/genfigs

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ genfigs completion zsh > "${fpath[1]}/_genfigs"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ genfigs completion fish | source

  # To load completions for each session, execute once:
  $ genfigs completion fish > ~/.config/fish/completions/genfigs.fish

PowerShell:
  PS> genfigs completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> genfigs completion powershell > genfigs.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeFormats offers the output format names for --format.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, f := range sink.Formats() {
		if strings.HasPrefix(string(f), strings.ToLower(toComplete)) {
			out = append(out, string(f))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
