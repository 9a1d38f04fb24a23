package lang

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLParser implements the Parser interface for YAML catalog files.
type YAMLParser struct{}

// NewYAMLParser creates a new YAMLParser instance.
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

// Parse parses YAML content into a flat catalog. Every value must be a string
// template; nested structures are rejected.
func (p *YAMLParser) Parse(ctx context.Context, content string) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrYAMLParsingCancelled, err)
	}

	var data map[string]any
	if err := yaml.Unmarshal([]byte(content), &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	catalog := make(Catalog, len(data))
	for rule, val := range data {
		template, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("%w: entry %q: expected string template, got %T", ErrFailedToParseYAML, rule, val)
		}
		catalog[rule] = template
	}

	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: no entries found", ErrFailedToParseYAML)
	}

	return catalog, nil
}

// SupportsFileExtension checks if the parser supports the given file extension.
func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}
