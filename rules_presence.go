package valicomb

func init() {
	registerBuiltin("required", ruleRequired)
	registerBuiltin("requiredWith", ruleRequiredWith)
	registerBuiltin("requiredWithout", ruleRequiredWithout)
	registerBuiltin("accepted", ruleAccepted)
	registerBuiltin("optional", ruleMarker)
	registerBuiltin("nullable", ruleMarker)
}

// ruleRequired fails on an absent key, nil value or blank string. With a
// truthy first parameter only key presence is checked, so explicitly empty
// values pass.
func ruleRequired(field string, value any, params []any, data map[string]any) (bool, string, error) {
	if flagAt(params, 0, false) {
		resolved, exists := resolveValue(data, fieldPath(field), true)
		if exists {
			return true, "", nil
		}
		// Wildcard paths resolve to aggregates; presence there means at
		// least one match.
		if seq, ok := resolved.([]any); ok {
			return len(seq) > 0, "", nil
		}
		return false, "", nil
	}

	if _, exists := resolveValue(data, fieldPath(field), true); !exists && value == nil {
		return false, "", nil
	}
	return requiredValue(value), "", nil
}

// ruleRequiredWith makes the field required when sibling fields are filled:
// any of them by default, all of them with a truthy strict flag. It always
// executes regardless of this field's own emptiness.
func ruleRequiredWith(field string, value any, params []any, data map[string]any) (bool, string, error) {
	siblings, err := paramFields("requiredWith", params, 0)
	if err != nil {
		return false, "", err
	}
	strict := flagAt(params, 1, false)

	conditionMet := strict
	for _, sibling := range siblings {
		filled := fieldFilled(data, sibling)
		if strict && !filled {
			conditionMet = false
			break
		}
		if !strict && filled {
			conditionMet = true
			break
		}
	}

	if !conditionMet {
		return true, "", nil
	}
	return requiredValue(value), "", nil
}

// ruleRequiredWithout mirrors requiredWith for absent siblings: the field is
// required when any sibling is missing or empty (all of them with strict).
func ruleRequiredWithout(field string, value any, params []any, data map[string]any) (bool, string, error) {
	siblings, err := paramFields("requiredWithout", params, 0)
	if err != nil {
		return false, "", err
	}
	strict := flagAt(params, 1, false)

	conditionMet := strict
	for _, sibling := range siblings {
		filled := fieldFilled(data, sibling)
		if strict && filled {
			conditionMet = false
			break
		}
		if !strict && !filled {
			conditionMet = true
			break
		}
	}

	if !conditionMet {
		return true, "", nil
	}
	return requiredValue(value), "", nil
}

// ruleAccepted passes only for affirmative values: true, "yes", "on", "1"
// or the number one. Used for terms-of-service style checkboxes.
func ruleAccepted(field string, value any, params []any, data map[string]any) (bool, string, error) {
	switch t := value.(type) {
	case bool:
		return t, "", nil
	case string:
		return t == "yes" || t == "on" || t == "1", "", nil
	default:
		f, ok := toFloat(value)
		return ok && f == 1, "", nil
	}
}

// ruleMarker backs optional and nullable. Both only influence the skip
// policy; as predicates they always pass.
func ruleMarker(field string, value any, params []any, data map[string]any) (bool, string, error) {
	return true, "", nil
}
