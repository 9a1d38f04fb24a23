package binder

import (
	"fmt"
	"net/http"
	"strings"
)

// Form parses an application/x-www-form-urlencoded request body into a data
// tree. Bracket notation in field names expresses nesting: "user[email]"
// becomes a nested map, "tags[]" collects repeated values into a list.
func Form(r *http.Request) (map[string]any, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: expected application/x-www-form-urlencoded", ErrMissingContentType)
	}

	mediaType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(contentType[:idx])
	}
	if mediaType != "application/x-www-form-urlencoded" {
		return nil, fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded", ErrUnsupportedMediaType, mediaType)
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}

	data, err := assemble(r.PostForm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return data, nil
}
