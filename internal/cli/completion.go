package cli

import (
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	graphio "github.com/matzehuels/netgraph/pkg/io"
)

// shellCompletions maps each supported shell to its script generator.
var shellCompletions = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        (*cobra.Command).GenZshCompletion,
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": (*cobra.Command).GenPowerShellCompletionWithDesc,
}

func (c *CLI) completionCommand() *cobra.Command {
	shells := slices.Sorted(maps.Keys(shellCompletions))
	return &cobra.Command{
		Use:   "completion " + strings.Join(shells, "|"),
		Short: "Print a shell completion script",
		Long: `Print a completion script for your shell. Node names complete from the
graph selected with --file; --colour, --shape and --engine complete from
their fixed sets.

  bash:        source <(netgraph completion bash)
  zsh:         netgraph completion zsh > "${fpath[1]}/_netgraph"
  fish:        netgraph completion fish > ~/.config/fish/completions/netgraph.fish
  powershell:  netgraph completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return shellCompletions[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// completeNodeNames completes positional arguments with the names of the
// nodes in the --file graph, up to max arguments. A negative max means no
// limit, which is what flag completion wants.
func (c *CLI) completeNodeNames(max int) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if max >= 0 && len(args) >= max {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		s, err := graphio.ReadFile(c.graphFile)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var names []string
		for _, name := range s.NodeNames() {
			if strings.HasPrefix(name, toComplete) {
				names = append(names, name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
