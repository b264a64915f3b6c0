package cli

import (
	"github.com/spf13/cobra"

	"github.com/rccgrog/rogsite/internal/present"
	"github.com/rccgrog/rogsite/pkg/api"
)

func newSectionListCmd() *cobra.Command {
	var asJSON, pretty bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List sections that have content",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := outputOptions(cmd, asJSON, pretty)
			if err != nil {
				return err
			}
			app := getApp(cmd)
			secs, err := app.Store.Sections.ListSections(cmd.Context())
			if err != nil {
				return err
			}
			out := make([]api.SectionSummary, 0, len(secs))
			for _, s := range secs {
				out = append(out, s.Summary())
			}
			return present.RenderSections(cmd.OutOrStdout(), out, opts)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "print a styled table")
	return cmd
}
