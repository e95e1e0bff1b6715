package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layerroute/pkg/pipeline"
)

// completionCommand prints shell completion scripts. Besides commands and
// flags, the scripts complete source files and diagram formats.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for layerroute.

Bash:
  $ source <(layerroute completion bash)

Zsh:
  $ layerroute completion zsh > "${fpath[1]}/_layerroute"

Fish:
  $ layerroute completion fish > ~/.config/fish/completions/layerroute.fish

PowerShell:
  PS> layerroute completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeFormats completes --format with the diagram formats.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, f := range pipeline.Formats() {
		if strings.HasPrefix(f, strings.ToLower(toComplete)) {
			out = append(out, f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
