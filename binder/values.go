package binder

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// assemble converts decoded key/value pairs into a nested data tree. Keys are
// processed in sorted order so repeated binds of the same input produce the
// same tree.
func assemble(values url.Values) (map[string]any, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	data := make(map[string]any, len(keys))
	for _, key := range keys {
		segments, list, err := parseKey(key)
		if err != nil {
			return nil, err
		}
		if err := setPath(data, segments, list, values[key]); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// parseKey splits a bracket-notation key into its path segments. A trailing
// empty bracket marks a list field; empty brackets anywhere else are
// malformed.
func parseKey(key string) (segments []string, list bool, err error) {
	base, rest, found := strings.Cut(key, "[")
	if !found {
		return []string{key}, false, nil
	}
	if base == "" {
		return nil, false, fmt.Errorf("%w: %q", ErrMalformedKey, key)
	}

	segments = []string{base}
	rest = "[" + rest
	for rest != "" {
		if !strings.HasPrefix(rest, "[") {
			return nil, false, fmt.Errorf("%w: %q", ErrMalformedKey, key)
		}
		end := strings.Index(rest, "]")
		if end == -1 {
			return nil, false, fmt.Errorf("%w: %q", ErrMalformedKey, key)
		}
		segment := rest[1:end]
		rest = rest[end+1:]

		if segment == "" {
			if rest != "" {
				return nil, false, fmt.Errorf("%w: %q", ErrMalformedKey, key)
			}
			return segments, true, nil
		}
		segments = append(segments, segment)
	}
	return segments, false, nil
}

// setPath writes the values at the nested location named by segments,
// creating intermediate maps. A conflict with an existing scalar is an error
// rather than a silent overwrite.
func setPath(data map[string]any, segments []string, list bool, values []string) error {
	node := data
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node[segment]
		if !ok {
			next := make(map[string]any)
			node[segment] = next
			node = next
			continue
		}
		next, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %q redefines a scalar field", ErrMalformedKey, strings.Join(segments, "."))
		}
		node = next
	}

	last := segments[len(segments)-1]
	switch {
	case list || len(values) > 1:
		elements, _ := node[last].([]any)
		for _, v := range values {
			elements = append(elements, v)
		}
		node[last] = elements
	case len(values) == 1:
		node[last] = values[0]
	}
	return nil
}
