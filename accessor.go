package valicomb

import (
	"sort"
	"strconv"
	"strings"
)

// resolveValue walks a dotted path against a nested data tree and returns the
// resolved value together with an aggregate flag. The flag is true when a `*`
// segment fanned the resolution out over multiple elements, in which case the
// value is a flattened []any of every match.
//
// With presence set, the second return doubles as a "key existed" signal for
// terminal literal segments, which lets the required rule distinguish an
// absent key from a key holding an empty value.
//
// Resolution is total: no tree shape or path produces an error. A missing key
// or a non-container in the middle of the path is a dead end reported as
// (nil, false), not a failure.
func resolveValue(data any, path []string, presence bool) (any, bool) {
	if len(path) == 0 {
		return data, false
	}

	seg, rest := path[0], path[1:]

	if seg == "*" {
		return resolveWildcard(data, rest, presence)
	}

	switch container := data.(type) {
	case map[string]any:
		value, exists := container[seg]
		if len(rest) == 0 {
			if !exists {
				return nil, false
			}
			return value, presence
		}
		if !exists {
			return nil, false
		}
		return resolveValue(value, rest, presence)
	case []any:
		// Numeric segments index into sequences so paths like "tags.0" work
		// the same as they do for string-keyed levels.
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(container) {
			return nil, false
		}
		if len(rest) == 0 {
			return container[idx], presence
		}
		return resolveValue(container[idx], rest, presence)
	default:
		return nil, false
	}
}

// resolveWildcard fans out over every element of the current level, resolves
// the remaining path against each and flattens one level: matches that are
// themselves aggregates are spliced in, single matches are appended.
func resolveWildcard(data any, rest []string, presence bool) (any, bool) {
	var elements []any

	switch container := data.(type) {
	case []any:
		elements = container
	case map[string]any:
		// Map iteration order is unspecified; sort keys so wildcard results
		// are deterministic across runs.
		keys := make([]string, 0, len(container))
		for k := range container {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		elements = make([]any, 0, len(container))
		for _, k := range keys {
			elements = append(elements, container[k])
		}
	default:
		return nil, false
	}

	out := make([]any, 0, len(elements))
	for _, el := range elements {
		value, aggregate := resolveValue(el, rest, presence)
		if aggregate {
			if spliced, ok := value.([]any); ok {
				out = append(out, spliced...)
				continue
			}
		}
		out = append(out, value)
	}
	return out, true
}

// fieldPath splits a dotted field name into its path segments.
func fieldPath(field string) []string {
	return strings.Split(field, ".")
}

// isAssociative reports whether at least one key of the map is not a base-10
// integer. The in, notIn, listContains and subset rules use it to decide
// whether a map parameter should be compared against its keys or its values,
// mirroring how decoded PHP-style arrays distinguish lists from dictionaries.
func isAssociative(m map[string]any) bool {
	for k := range m {
		if _, err := strconv.Atoi(k); err != nil {
			return true
		}
	}
	return false
}

// containerValues returns the comparable members of an in/subset parameter:
// the elements of a slice, the keys of an associative map, or the values of a
// numeric-keyed map.
func containerValues(param any) ([]any, bool) {
	switch c := param.(type) {
	case []any:
		return c, true
	case []string:
		out := make([]any, len(c))
		for i, s := range c {
			out[i] = s
		}
		return out, true
	case []int:
		out := make([]any, len(c))
		for i, n := range c {
			out[i] = n
		}
		return out, true
	case map[string]any:
		if isAssociative(c) {
			keys := make([]any, 0, len(c))
			for k := range c {
				keys = append(keys, k)
			}
			return keys, true
		}
		values := make([]any, 0, len(c))
		for _, v := range c {
			values = append(values, v)
		}
		return values, true
	default:
		return nil, false
	}
}
