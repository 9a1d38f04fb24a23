package valicomb

import "fmt"

func init() {
	registerBuiltin("subset", ruleSubset)
	registerBuiltin("containsUnique", ruleContainsUnique)
	registerBuiltin("arrayHasKeys", ruleArrayHasKeys)
}

// ruleSubset passes when every element of the field's value is a member of
// the first parameter's container. Scalars are treated as one-element sets.
func ruleSubset(field string, value any, params []any, data map[string]any) (bool, string, error) {
	p, err := paramRequired("subset", params, 0)
	if err != nil {
		return false, "", err
	}
	allowed, ok := containerValues(p)
	if !ok {
		return false, "", fmt.Errorf("%w: subset needs a list parameter", ErrInvalidParameter)
	}

	elements, ok := containerValues(value)
	if !ok {
		elements = []any{value}
	}
	for _, el := range elements {
		found := false
		for _, member := range allowed {
			if looseEqual(el, member) {
				found = true
				break
			}
		}
		if !found {
			return false, "", nil
		}
	}
	return true, "", nil
}

// ruleContainsUnique passes when a list holds no duplicate elements. Equality
// is type-sensitive: 1 and "1" are distinct.
func ruleContainsUnique(field string, value any, params []any, data map[string]any) (bool, string, error) {
	seq, ok := value.([]any)
	if !ok {
		return false, "", nil
	}
	seen := make(map[string]struct{}, len(seq))
	for _, el := range seq {
		key := fmt.Sprintf("%T|%v", el, el)
		if _, dup := seen[key]; dup {
			return false, "", nil
		}
		seen[key] = struct{}{}
	}
	return true, "", nil
}

// ruleArrayHasKeys requires the value to be a map containing every key named
// by the first parameter. An empty key list fails: nothing to assert against.
func ruleArrayHasKeys(field string, value any, params []any, data map[string]any) (bool, string, error) {
	keys, err := paramFields("arrayHasKeys", params, 0)
	if err != nil {
		return false, "", err
	}
	m, ok := value.(map[string]any)
	if !ok || len(keys) == 0 {
		return false, "", nil
	}
	for _, key := range keys {
		if _, present := m[key]; !present {
			return false, "", nil
		}
	}
	return true, "", nil
}
