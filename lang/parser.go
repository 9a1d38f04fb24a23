package lang

import (
	"context"
	"strings"
)

// Parser parses message catalog content from a supported file format.
type Parser interface {
	// Parse processes the given content and returns a flat catalog: rule name
	// to message template.
	Parse(ctx context.Context, content string) (Catalog, error)

	// SupportsFileExtension checks if the parser supports a given file
	// extension. The extension may or may not include a leading dot (e.g.
	// both "json" and ".json" are valid).
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns a parser based on the file extension, or nil when
// the format is not supported.
func NewParserForFile(filename string) Parser {
	ext := getFileExtension(filename)

	switch strings.ToLower(ext) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

func getFileExtension(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx != -1 {
		return filename[idx+1:]
	}
	return ""
}
