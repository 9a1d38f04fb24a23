package binder

import (
	"fmt"
	"net/http"
)

// Query parses URL query parameters into a data tree, with the same bracket
// notation as Form. No content type is required, so it composes with JSON for
// requests that carry both a body and query parameters.
func Query(r *http.Request) (map[string]any, error) {
	data, err := assemble(r.URL.Query())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return data, nil
}
