package valicomb

import (
	"fmt"
	"regexp"
	"strings"
)

func init() {
	registerBuiltin("numeric", ruleNumeric)
	registerBuiltin("integer", ruleInteger)
	registerBuiltin("boolean", ruleBoolean)
	registerBuiltin("array", ruleArray)
	registerBuiltin("equals", ruleEquals)
	registerBuiltin("different", ruleDifferent)
	registerBuiltin("min", ruleMin)
	registerBuiltin("max", ruleMax)
	registerBuiltin("between", ruleBetween)
	registerBuiltin("length", ruleLength)
	registerBuiltin("lengthBetween", ruleLengthBetween)
	registerBuiltin("lengthMin", ruleLengthMin)
	registerBuiltin("lengthMax", ruleLengthMax)
	registerBuiltin("in", ruleIn)
	registerBuiltin("notIn", ruleNotIn)
	registerBuiltin("listContains", ruleListContains)
	registerBuiltin("contains", ruleContains)
}

var (
	integerRe       = regexp.MustCompile(`^-?\d+$`)
	strictIntegerRe = regexp.MustCompile(`^(0|-?[1-9]\d*)$`)
)

func ruleNumeric(field string, value any, params []any, data map[string]any) (bool, string, error) {
	if _, ok := value.(bool); ok {
		return false, "", nil
	}
	_, ok := toFloat(value)
	return ok, "", nil
}

// ruleInteger accepts integer kinds, floats without a fractional part (JSON
// numbers decode as float64) and integer strings. A truthy first parameter
// switches to strict string syntax: no leading zeros, no "-0".
func ruleInteger(field string, value any, params []any, data map[string]any) (bool, string, error) {
	switch t := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true, "", nil
	case float64:
		return t == float64(int64(t)), "", nil
	case float32:
		return t == float32(int64(t)), "", nil
	case string:
		if flagAt(params, 0, false) {
			return strictIntegerRe.MatchString(t), "", nil
		}
		return integerRe.MatchString(t), "", nil
	default:
		return false, "", nil
	}
}

func ruleBoolean(field string, value any, params []any, data map[string]any) (bool, string, error) {
	_, ok := value.(bool)
	return ok, "", nil
}

func ruleArray(field string, value any, params []any, data map[string]any) (bool, string, error) {
	switch value.(type) {
	case []any, map[string]any:
		return true, "", nil
	default:
		return false, "", nil
	}
}

// ruleEquals passes when the field loosely equals the sibling field named by
// the first parameter. The sibling must be present.
func ruleEquals(field string, value any, params []any, data map[string]any) (bool, string, error) {
	sibling, err := paramString("equals", params, 0)
	if err != nil {
		return false, "", err
	}
	other, exists := resolveValue(data, fieldPath(sibling), true)
	if !exists && other == nil {
		return false, "", nil
	}
	return looseEqual(value, other), "", nil
}

func ruleDifferent(field string, value any, params []any, data map[string]any) (bool, string, error) {
	sibling, err := paramString("different", params, 0)
	if err != nil {
		return false, "", err
	}
	other, exists := resolveValue(data, fieldPath(sibling), true)
	if !exists && other == nil {
		return false, "", nil
	}
	return !looseEqual(value, other), "", nil
}

func ruleMin(field string, value any, params []any, data map[string]any) (bool, string, error) {
	limit, err := paramFloat("min", params, 0)
	if err != nil {
		return false, "", err
	}
	f, ok := toFloat(value)
	return ok && f >= limit, "", nil
}

func ruleMax(field string, value any, params []any, data map[string]any) (bool, string, error) {
	limit, err := paramFloat("max", params, 0)
	if err != nil {
		return false, "", err
	}
	f, ok := toFloat(value)
	return ok && f <= limit, "", nil
}

// ruleBetween expects a two-element [min, max] parameter and checks the
// numeric value inclusively.
func ruleBetween(field string, value any, params []any, data map[string]any) (bool, string, error) {
	p, err := paramRequired("between", params, 0)
	if err != nil {
		return false, "", err
	}
	bounds, ok := containerValues(p)
	if !ok || len(bounds) != 2 {
		return false, "", fmt.Errorf("%w: between needs a [min, max] parameter", ErrInvalidParameter)
	}
	lo, okLo := toFloat(bounds[0])
	hi, okHi := toFloat(bounds[1])
	if !okLo || !okHi {
		return false, "", fmt.Errorf("%w: between bounds must be numeric", ErrInvalidParameter)
	}
	f, ok := toFloat(value)
	return ok && f >= lo && f <= hi, "", nil
}

func ruleLength(field string, value any, params []any, data map[string]any) (bool, string, error) {
	want, err := paramInt("length", params, 0)
	if err != nil {
		return false, "", err
	}
	s, ok := value.(string)
	return ok && runeLength(s) == want, "", nil
}

func ruleLengthBetween(field string, value any, params []any, data map[string]any) (bool, string, error) {
	lo, err := paramInt("lengthBetween", params, 0)
	if err != nil {
		return false, "", err
	}
	hi, err := paramInt("lengthBetween", params, 1)
	if err != nil {
		return false, "", err
	}
	s, ok := value.(string)
	if !ok {
		return false, "", nil
	}
	n := runeLength(s)
	return n >= lo && n <= hi, "", nil
}

func ruleLengthMin(field string, value any, params []any, data map[string]any) (bool, string, error) {
	lo, err := paramInt("lengthMin", params, 0)
	if err != nil {
		return false, "", err
	}
	s, ok := value.(string)
	return ok && runeLength(s) >= lo, "", nil
}

func ruleLengthMax(field string, value any, params []any, data map[string]any) (bool, string, error) {
	hi, err := paramInt("lengthMax", params, 0)
	if err != nil {
		return false, "", err
	}
	s, ok := value.(string)
	return ok && runeLength(s) <= hi, "", nil
}

// ruleIn checks membership in the first parameter's container. Associative
// map parameters compare against keys, lists against values. An optional
// second parameter switches to strict (type-sensitive) comparison.
func ruleIn(field string, value any, params []any, data map[string]any) (bool, string, error) {
	ok, err := memberOf("in", value, params)
	return ok, "", err
}

func ruleNotIn(field string, value any, params []any, data map[string]any) (bool, string, error) {
	ok, err := memberOf("notIn", value, params)
	return err == nil && !ok, "", err
}

func memberOf(ruleName string, value any, params []any) (bool, error) {
	p, err := paramRequired(ruleName, params, 0)
	if err != nil {
		return false, err
	}
	members, ok := containerValues(p)
	if !ok {
		return false, fmt.Errorf("%w: %s needs a list parameter", ErrInvalidParameter, ruleName)
	}
	strict := flagAt(params, 1, false)
	for _, member := range members {
		if strict {
			if strictEqual(value, member) {
				return true, nil
			}
		} else if looseEqual(value, member) {
			return true, nil
		}
	}
	return false, nil
}

// ruleListContains inverts in: the field value is the container and the
// first parameter the needle.
func ruleListContains(field string, value any, params []any, data map[string]any) (bool, string, error) {
	needle, err := paramRequired("listContains", params, 0)
	if err != nil {
		return false, "", err
	}
	members, ok := containerValues(value)
	if !ok {
		return false, "", nil
	}
	strict := flagAt(params, 1, false)
	for _, member := range members {
		if strict {
			if strictEqual(needle, member) {
				return true, "", nil
			}
		} else if looseEqual(needle, member) {
			return true, "", nil
		}
	}
	return false, "", nil
}

// ruleContains checks for a substring, case-sensitively unless the second
// parameter is falsy.
func ruleContains(field string, value any, params []any, data map[string]any) (bool, string, error) {
	needle, err := paramString("contains", params, 0)
	if err != nil {
		return false, "", err
	}
	s, ok := value.(string)
	if !ok {
		return false, "", nil
	}
	if flagAt(params, 1, true) {
		return strings.Contains(s, needle), "", nil
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(needle)), "", nil
}
