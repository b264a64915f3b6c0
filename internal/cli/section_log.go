package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rccgrog/rogsite/internal/present"
	"github.com/rccgrog/rogsite/internal/util"
	"github.com/rccgrog/rogsite/pkg/api"
)

func newSectionLogCmd() *cobra.Command {
	var since string
	var limit int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the history of section writes",
		Long: `Log lists section writes and deletes, oldest first.
--since accepts relative expressions such as 90m, 3d, 2w or 1mo, or an
absolute time (2006-01-02, 2006-01-02T15:04, RFC3339).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cur api.Cursor
			if since != "" {
				t, err := util.ParseTimeExpr(since, time.Now())
				if err != nil {
					return err
				}
				cur.After = t
			}
			evs, _, err := getApp(cmd).Store.Events.List(cmd.Context(), cur, limit)
			if err != nil {
				return err
			}
			opts := present.Options{Mode: present.ModePlain, Headers: true, JSONIndent: true}
			if asJSON {
				opts.Mode = present.ModeJSON
			}
			return present.RenderEvents(cmd.OutOrStdout(), evs, opts)
		},
	}
	cmd.Flags().StringVar(&since, "since", "", "only show writes after this time")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of entries (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
