package valicomb

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// paramRequired fetches the i-th rule parameter, reporting a configuration
// error when the rule was registered without it.
func paramRequired(ruleName string, params []any, i int) (any, error) {
	if i >= len(params) {
		return nil, fmt.Errorf("%w: %s needs parameter %d", ErrMissingParameter, ruleName, i+1)
	}
	return params[i], nil
}

func paramFloat(ruleName string, params []any, i int) (float64, error) {
	p, err := paramRequired(ruleName, params, i)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(p)
	if !ok {
		return 0, fmt.Errorf("%w: %s parameter %d must be numeric", ErrInvalidParameter, ruleName, i+1)
	}
	return f, nil
}

func paramInt(ruleName string, params []any, i int) (int, error) {
	f, err := paramFloat(ruleName, params, i)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func paramString(ruleName string, params []any, i int) (string, error) {
	p, err := paramRequired(ruleName, params, i)
	if err != nil {
		return "", err
	}
	s, ok := p.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s parameter %d must be a string", ErrInvalidParameter, ruleName, i+1)
	}
	return s, nil
}

// paramFields reads a parameter that names one field or a list of fields.
func paramFields(ruleName string, params []any, i int) ([]string, error) {
	p, err := paramRequired(ruleName, params, i)
	if err != nil {
		return nil, err
	}
	switch t := p.(type) {
	case string:
		return []string{t}, nil
	case []string:
		return t, nil
	case []any:
		fields := make([]string, 0, len(t))
		for _, el := range t {
			s, ok := el.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s parameter %d must name fields", ErrInvalidParameter, ruleName, i+1)
			}
			fields = append(fields, s)
		}
		return fields, nil
	default:
		return nil, fmt.Errorf("%w: %s parameter %d must name fields", ErrInvalidParameter, ruleName, i+1)
	}
}

// flagAt reads an optional boolean-ish parameter, defaulting when absent.
func flagAt(params []any, i int, def bool) bool {
	if i >= len(params) {
		return def
	}
	return truthy(params[i])
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "1" || strings.EqualFold(t, "true")
	case nil:
		return false
	default:
		f, ok := toFloat(v)
		return ok && f != 0
	}
}

// toFloat converts any numeric kind, or a numeric string, to float64.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// looseEqual compares two scalars the way loosely-typed input expects: by
// numeric value when both sides are numeric, booleans as 1/0, otherwise by
// their canonical string form.
func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	av, aNum := looseNumber(a)
	bv, bNum := looseNumber(b)
	if aNum && bNum {
		return av == bv
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func looseNumber(v any) (float64, bool) {
	if b, ok := v.(bool); ok {
		if b {
			return 1, true
		}
		return 0, true
	}
	return toFloat(v)
}

// strictEqual is type-sensitive: an int never equals a float or a string.
func strictEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// runeLength is the length notion used by the length* rules.
func runeLength(s string) int {
	return utf8.RuneCountInString(s)
}

// fieldFilled reports whether another field resolves to a present, non-empty
// value. The requiredWith and requiredWithout rules use it to observe
// siblings through the same accessor contract as the engine.
func fieldFilled(data map[string]any, field string) bool {
	value, exists := resolveValue(data, fieldPath(field), true)
	if !exists && value == nil {
		return false
	}
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	if seq, ok := value.([]any); ok {
		return len(seq) > 0
	}
	return true
}

// requiredValue is the shared emptiness check behind required, requiredWith
// and requiredWithout: nil and blank strings fail.
func requiredValue(value any) bool {
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}
