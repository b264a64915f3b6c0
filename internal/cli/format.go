package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rccgrog/rogsite/pkg/textfmt"
)

func newFormatCmd() *cobra.Command {
	var markup, asHTML, noWrapper bool
	cmd := &cobra.Command{
		Use:   "format [text...]",
		Short: "Format stored text for display (reads stdin when no text is given)",
		Long: `Format applies the display rules used by the site to raw section text.

Stored text marks a line break as the two characters \n and a paragraph
break as \n\n. The mistyped /n is read as a line break too. By default the
plain-text rendering is printed; --markup prints the HTML fragment with <br>
tags and --html prints the escaped paragraph element.`,
		Annotations: map[string]string{noAppAnnotation: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			if markup && asHTML {
				return fmt.Errorf("choose either --markup or --html")
			}
			raw := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				raw = strings.TrimSuffix(strings.TrimSuffix(string(b), "\n"), "\r")
			}
			var opts []textfmt.PlainOption
			if noWrapper {
				opts = append(opts, textfmt.WithNoWrapper())
			}
			var out string
			switch {
			case markup:
				out = textfmt.FormatMarkup(raw)
			case asHTML:
				out = textfmt.Paragraph(raw, opts...)
			default:
				out = textfmt.FormatPlain(raw, opts...)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&markup, "markup", false, "emit an HTML fragment with <br> breaks")
	cmd.Flags().BoolVar(&asHTML, "html", false, "emit an escaped <p> element")
	cmd.Flags().BoolVar(&noWrapper, "no-wrapper", false, "omit the paragraph wrapper with --html")
	return cmd
}
