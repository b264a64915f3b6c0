// Package seed holds the default content a fresh site starts with.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rccgrog/rogsite/internal/content"
	"github.com/rccgrog/rogsite/internal/db"
	"github.com/rccgrog/rogsite/pkg/api"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Load parses the embedded defaults, one content value per kind in
// api.Kinds order.
func Load() ([]api.Content, error) {
	return Parse(defaultsYAML)
}

// Parse reads a document keyed by section kind. Kinds missing from the
// document are skipped.
func Parse(data []byte) ([]api.Content, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	byKind := make(map[api.Kind]yaml.Node, len(doc))
	for name, node := range doc {
		kind, err := api.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("parse seed: %q: %w", name, err)
		}
		byKind[kind] = node
	}
	out := make([]api.Content, 0, len(byKind))
	for _, kind := range api.Kinds() {
		node, ok := byKind[kind]
		if !ok {
			continue
		}
		raw, err := yaml.Marshal(&node)
		if err != nil {
			return nil, fmt.Errorf("parse seed %s: %w", kind, err)
		}
		c, err := content.DecodeViewYAML(kind, raw)
		if err != nil {
			return nil, fmt.Errorf("parse seed: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Apply writes contents to the store in one transaction. Sections that
// already exist are left alone unless overwrite is set, and identical content
// is never rewritten. It returns the kinds that were written.
func Apply(ctx context.Context, store *db.Store, contents []api.Content, overwrite bool) ([]api.Kind, error) {
	var written []api.Kind
	err := store.RunInTx(ctx, func(ctx context.Context) error {
		for _, c := range contents {
			cur, err := store.Sections.GetSection(ctx, c.Kind())
			found := err == nil
			switch {
			case err == nil && !overwrite:
				continue
			case err != nil && !errors.Is(err, db.ErrNotFound):
				return err
			}
			rec, err := content.Encode(c)
			if err != nil {
				return err
			}
			if found && cur.Hash() == (api.Section{Kind: c.Kind(), Record: rec}).Hash() {
				continue
			}
			if _, err := store.Sections.PutSection(ctx, api.Section{Kind: c.Kind(), Record: rec}, 0); err != nil {
				return fmt.Errorf("seed %s: %w", c.Kind(), err)
			}
			written = append(written, c.Kind())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}
