package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rccgrog/rogsite/internal/content"
	"github.com/rccgrog/rogsite/internal/db"
	"github.com/rccgrog/rogsite/pkg/api"
)

func newSectionSetCmd() *cobra.Command {
	var file string
	var ifVersion int64
	cmd := &cobra.Command{
		Use:   "set <kind> --file <path>",
		Short: "Replace a section from a JSON or YAML file",
		Long: `Set replaces a section with the document in --file. Files ending in
.yaml or .yml are read as YAML, anything else as JSON; "-" reads JSON from
stdin. With --if-version the write only succeeds while the stored version
still matches.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeKind,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			if file == "" {
				return errors.New("--file is required")
			}
			if ifVersion < 0 {
				return errors.New("--if-version must be positive")
			}
			var data []byte
			if file == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(file)
			}
			if err != nil {
				return err
			}
			var c api.Content
			switch strings.ToLower(filepath.Ext(file)) {
			case ".yaml", ".yml":
				c, err = content.DecodeViewYAML(kind, data)
			default:
				c, err = content.DecodeView(kind, data)
			}
			if err != nil {
				return err
			}
			rec, err := content.Encode(c)
			if err != nil {
				return err
			}
			app := getApp(cmd)
			sec, err := app.Store.Sections.PutSection(cmd.Context(), api.Section{Kind: kind, Record: rec}, ifVersion)
			switch {
			case errors.Is(err, db.ErrConflict):
				return fmt.Errorf("section %s changed since version %d; show it again and retry", kind, ifVersion)
			case errors.Is(err, db.ErrNotFound):
				return fmt.Errorf("section %s has no content yet; drop --if-version to create it", kind)
			case err != nil:
				return err
			}
			app.Log.Debug("section updated", zap.String("kind", string(kind)), zap.Int64("version", sec.Version))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", sec.Kind, sec.Version)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "section document (json|yaml, - for stdin)")
	cmd.Flags().Int64Var(&ifVersion, "if-version", 0, "only write if the stored version matches")
	return cmd
}

func newSectionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "delete <kind>",
		Aliases:           []string{"rm"},
		Short:             "Remove a section's content",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeKind,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			err = getApp(cmd).Store.Sections.DeleteSection(cmd.Context(), kind)
			if errors.Is(err, db.ErrNotFound) {
				return fmt.Errorf("section %s has no content", kind)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", kind)
			return nil
		},
	}
}
