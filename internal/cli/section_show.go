package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rccgrog/rogsite/internal/content"
	"github.com/rccgrog/rogsite/internal/db"
	"github.com/rccgrog/rogsite/internal/present"
	"github.com/rccgrog/rogsite/pkg/textfmt"
)

func newSectionShowCmd() *cobra.Command {
	var asJSON, pretty bool
	var format string
	cmd := &cobra.Command{
		Use:               "show <kind>",
		Short:             "Display a section",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeKind,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			opts, err := outputOptions(cmd, asJSON, pretty)
			if err != nil {
				return err
			}
			var mode textfmt.Mode
			if format != "raw" {
				if mode, err = textfmt.ParseMode(format); err != nil {
					return err
				}
			}
			app := getApp(cmd)
			sec, err := app.Store.Sections.GetSection(cmd.Context(), kind)
			if errors.Is(err, db.ErrNotFound) {
				return fmt.Errorf("section %s has no content yet (try `rogsite section seed`)", kind)
			}
			if err != nil {
				return err
			}
			c, err := content.Decode(kind, sec.Record)
			if err != nil {
				return err
			}
			if mode != "" {
				c = content.Display(c, mode)
			}
			return present.RenderSection(cmd.OutOrStdout(), sec.Summary(), c, opts)
		},
	}
	cmd.Flags().StringVar(&format, "format", "plain", "text projection: raw|plain|markup")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "render with glamour")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"raw", "plain", "markup"}, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}
