package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rccgrog/rogsite/internal/content"
	"github.com/rccgrog/rogsite/internal/seed"
	"github.com/rccgrog/rogsite/pkg/api"
)

func newSectionSeedCmd() *cobra.Command {
	var overwrite bool
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill empty sections with default content",
		Long: `Seed writes the built-in default content for every section that has none.
--file reads the content from a document written by "section export" instead,
and --overwrite replaces sections that already have content.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var contents []api.Content
			var err error
			if file != "" {
				data, rerr := os.ReadFile(file)
				if rerr != nil {
					return rerr
				}
				contents, err = seed.Parse(data)
			} else {
				contents, err = seed.Load()
			}
			if err != nil {
				return err
			}
			app := getApp(cmd)
			written, err := seed.Apply(cmd.Context(), app.Store, contents, overwrite)
			if err != nil {
				return err
			}
			if len(written) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Nothing to seed; every section already has content")
				return nil
			}
			names := make([]string, len(written))
			for i, k := range written {
				names[i] = string(k)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s\n", strings.Join(names, ", "))
			return nil
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace sections that already have content")
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed from an exported YAML document")
	return cmd
}

func newSectionExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every section to a YAML document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			secs, err := app.Store.Sections.ListSections(cmd.Context())
			if err != nil {
				return err
			}
			contents := make([]api.Content, 0, len(secs))
			for _, s := range secs {
				c, err := content.Decode(s.Kind, s.Record)
				if err != nil {
					return err
				}
				contents = append(contents, c)
			}
			doc, err := exportYAML(contents)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(out, doc, 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path (default stdout)")
	return cmd
}

// exportYAML encodes contents as one mapping keyed by kind, in api.Kinds
// order, using the camelCase view field names so seed.Parse reads it back.
func exportYAML(contents []api.Content) ([]byte, error) {
	byKind := make(map[api.Kind]api.Content, len(contents))
	for _, c := range contents {
		byKind[c.Kind()] = c
	}
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, kind := range api.Kinds() {
		c, ok := byKind[kind]
		if !ok {
			continue
		}
		view, err := content.ViewMap(c)
		if err != nil {
			return nil, err
		}
		var val yaml.Node
		if err := val.Encode(view); err != nil {
			return nil, fmt.Errorf("export %s: %w", kind, err)
		}
		root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: string(kind)}, &val)
	}
	return yaml.Marshal(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}})
}
