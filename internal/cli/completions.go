package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rccgrog/rogsite/pkg/api"
)

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "completion [bash|zsh|fish]",
		Short:       "Generate shell completion scripts",
		Args:        cobra.ExactArgs(1),
		ValidArgs:   []string{"bash", "zsh", "fish"},
		Annotations: map[string]string{noAppAnnotation: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}

// completeKind completes the first positional argument with section kinds.
func completeKind(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return api.KindNames(), cobra.ShellCompDirectiveNoFileComp
}
