package content

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rccgrog/rogsite/pkg/api"
)

// DecodeViewYAML parses a section written as YAML with the same camelCase
// field names as the JSON view.
func DecodeViewYAML(kind api.Kind, data []byte) (api.Content, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	if doc == nil {
		return Empty(kind)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return DecodeView(kind, b)
}

// ViewMap returns c as a generic map keyed by its camelCase view field
// names, ready for a YAML encoder.
func ViewMap(c api.Content) (map[string]any, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.Kind(), err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.Kind(), err)
	}
	return m, nil
}
