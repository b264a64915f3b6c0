package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rccgrog/rogsite/internal/content"
	"github.com/rccgrog/rogsite/internal/db"
	"github.com/rccgrog/rogsite/internal/editor"
	"github.com/rccgrog/rogsite/pkg/api"
)

func newSectionEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <kind>",
		Short: "Edit a section in $EDITOR",
		Long: `Edit opens the section as YAML in $VISUAL or $EDITOR and saves it when
the editor exits. The write is refused if someone else wrote the section in
the meantime, including creating one that did not exist; the edit is then
kept next to the temp file with a .rej suffix.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeKind,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			app := getApp(cmd)
			sec, err := app.Store.Sections.GetSection(cmd.Context(), kind)
			if err != nil && !errors.Is(err, db.ErrNotFound) {
				return err
			}
			c, err := content.Decode(kind, sec.Record)
			if err != nil {
				return err
			}
			view, err := content.ViewMap(c)
			if err != nil {
				return err
			}
			doc, err := yaml.Marshal(view)
			if err != nil {
				return err
			}

			path, err := editor.PathForKind(string(kind))
			if err != nil {
				return err
			}
			defer os.Remove(path)
			out, changed, err := editor.OpenAt(path, []byte(editor.ComposeContent(string(kind), sec.Version, doc)))
			if err != nil {
				return err
			}
			if !changed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes")
				return nil
			}
			if editor.IsBlank(out) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}
			edited, err := content.DecodeViewYAML(kind, out)
			if err != nil {
				return fmt.Errorf("%w (your edit is kept at %s)", err, keepEdit(path, out))
			}
			rec, err := content.Encode(edited)
			if err != nil {
				return err
			}
			saved, err := saveEdit(cmd.Context(), app.Store, kind, rec, sec.Version)
			if errors.Is(err, db.ErrConflict) || errors.Is(err, db.ErrNotFound) {
				return fmt.Errorf("section %s changed while you were editing (your edit is kept at %s)", kind, keepEdit(path, out))
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", saved.Kind, saved.Version)
			return nil
		},
	}
}

// saveEdit writes rec if the stored section is still at version base. A base
// of zero means the section did not exist when editing began.
func saveEdit(ctx context.Context, store *db.Store, kind api.Kind, rec json.RawMessage, base int64) (api.Section, error) {
	if base > 0 {
		return store.Sections.PutSection(ctx, api.Section{Kind: kind, Record: rec}, base)
	}
	var saved api.Section
	err := store.RunInTx(ctx, func(ctx context.Context) error {
		_, err := store.Sections.GetSection(ctx, kind)
		switch {
		case err == nil:
			return db.ErrConflict
		case !errors.Is(err, db.ErrNotFound):
			return err
		}
		saved, err = store.Sections.PutSection(ctx, api.Section{Kind: kind, Record: rec}, 0)
		return err
	})
	return saved, err
}

// keepEdit copies a rejected edit next to the temp file so it survives
// cleanup.
func keepEdit(path string, data []byte) string {
	kept := path + ".rej"
	if err := os.WriteFile(kept, data, 0o600); err != nil {
		return path
	}
	return kept
}
