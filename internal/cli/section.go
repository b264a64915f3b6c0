package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rccgrog/rogsite/internal/present"
	"github.com/rccgrog/rogsite/internal/util"
	"github.com/rccgrog/rogsite/pkg/api"
)

func newSectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "section",
		Aliases: []string{"sections", "s"},
		Short:   "Manage site sections",
	}
	cmd.AddCommand(newSectionListCmd())
	cmd.AddCommand(newSectionShowCmd())
	cmd.AddCommand(newSectionSetCmd())
	cmd.AddCommand(newSectionEditCmd())
	cmd.AddCommand(newSectionDeleteCmd())
	cmd.AddCommand(newSectionSeedCmd())
	cmd.AddCommand(newSectionExportCmd())
	cmd.AddCommand(newSectionLogCmd())
	return cmd
}

// parseKindArg resolves a section name and points at the closest kinds when
// it does not match.
func parseKindArg(name string) (api.Kind, error) {
	kind, err := api.ParseKind(name)
	if err == nil {
		return kind, nil
	}
	if s := util.Suggest(strings.ToLower(name), api.KindNames(), 3); len(s) > 0 {
		return "", fmt.Errorf("unknown section %q (did you mean %s?)", name, strings.Join(s, ", "))
	}
	return "", fmt.Errorf("unknown section %q (want one of %s)", name, strings.Join(api.KindNames(), ", "))
}

// outputOptions picks the presenter mode from --json/--pretty. Without either
// flag, pretty output is used only when stdout is a terminal.
func outputOptions(cmd *cobra.Command, asJSON, pretty bool) (present.Options, error) {
	if asJSON && pretty {
		return present.Options{}, errors.New("choose either --json or --pretty")
	}
	cfg := getConfig(cmd)
	opts := present.Options{
		Mode:       present.ModePlain,
		JSONIndent: true,
		Headers:    true,
		Style:      cfg.GetString("render.style"),
		WordWrap:   cfg.GetInt("render.word_wrap"),
	}
	switch {
	case asJSON:
		opts.Mode = present.ModeJSON
	case pretty || isTerminal(cmd):
		opts.Mode = present.ModePretty
	}
	return opts, nil
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
