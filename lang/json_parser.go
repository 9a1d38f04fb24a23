package lang

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// JSONParser implements the Parser interface for JSON catalog files.
type JSONParser struct{}

// NewJSONParser creates a new JSONParser instance.
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

// Parse parses JSON content into a flat catalog.
func (p *JSONParser) Parse(ctx context.Context, content string) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrJSONParsingCancelled, err)
	}

	var catalog Catalog
	if err := json.Unmarshal([]byte(content), &catalog); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}

	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: no entries found", ErrFailedToParseJSON)
	}

	return catalog, nil
}

// SupportsFileExtension checks if the parser supports the given file extension.
func (p *JSONParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "json")
}
