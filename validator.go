package valicomb

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/frostybee/valicomb/lang"
)

// Validator holds the data tree under validation, an ordered list of rule
// entries and the per-field error state produced by Validate. Instance state
// is exclusively owned by one caller; only the process-wide rule registry is
// shared.
type Validator struct {
	data          map[string]any
	entries       []ruleEntry
	instanceRules map[string]registryEntry
	labels        map[string]string
	errors        map[string][]string
	templates     map[string]string
	extraFields   []string

	strict          bool
	stopOnFirstFail bool
	prependLabels   bool

	// First configuration error recorded during registration, surfaced by
	// Validate before any rule runs.
	configErr error
}

// ruleEntry is one registered (rule, fields, params, message) tuple. Entries
// run in registration order; fields run in the order they were given.
type ruleEntry struct {
	name    string
	fields  []string
	params  []any
	message string
}

// RuleDef describes one rule registration for bulk loading, e.g. from a
// decoded ruleset file.
type RuleDef struct {
	Rule    string   `yaml:"rule" json:"rule"`
	Fields  []string `yaml:"fields" json:"fields"`
	Params  []any    `yaml:"params" json:"params"`
	Message string   `yaml:"message" json:"message"`
}

// New creates a validator for the given data tree. The tree is only ever
// read. By default messages come from the embedded English catalog and field
// labels are prepended via the {field} placeholder.
func New(data map[string]any, opts ...Option) *Validator {
	v := &Validator{
		data:          data,
		instanceRules: make(map[string]registryEntry),
		labels:        make(map[string]string),
		errors:        make(map[string][]string),
		templates:     lang.Default(lang.DefaultLanguage),
		prependLabels: true,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Rule appends a named rule for one or more fields. The name must resolve
// through the instance, global or built-in scope at registration time;
// unknown names are configuration errors reported by Validate.
func (v *Validator) Rule(name string, fields []string, params ...any) *Entry {
	if len(fields) == 0 {
		v.recordConfigErr(fmt.Errorf("%w: %s", ErrNoFields, name))
	} else if !v.RuleExists(name) {
		v.recordConfigErr(fmt.Errorf("%w: %s", ErrUnknownRule, name))
	}
	return v.appendEntry(name, fields, params)
}

// RuleFunc appends an anonymous rule. The callable is registered on the
// instance scope under a synthetic collision-free name so later lookups and
// message resolution behave exactly like named rules.
func (v *Validator) RuleFunc(fn RuleFunc, fields []string, params ...any) *Entry {
	if fn == nil {
		v.recordConfigErr(ErrNilRuleFunc)
		return v.appendEntry("", fields, params)
	}
	if len(fields) == 0 {
		v.recordConfigErr(ErrNoFields)
		return v.appendEntry("", fields, params)
	}
	name := v.uniqueRuleName(fields)
	v.instanceRules[name] = registryEntry{fn: adaptRuleFunc(fn)}
	return v.appendEntry(name, fields, params)
}

// RuleMessageFunc is RuleFunc for callables that produce their own failure
// message.
func (v *Validator) RuleMessageFunc(fn MessageRuleFunc, fields []string, params ...any) *Entry {
	if fn == nil {
		v.recordConfigErr(ErrNilRuleFunc)
		return v.appendEntry("", fields, params)
	}
	if len(fields) == 0 {
		v.recordConfigErr(ErrNoFields)
		return v.appendEntry("", fields, params)
	}
	name := v.uniqueRuleName(fields)
	v.instanceRules[name] = registryEntry{fn: adaptMessageRuleFunc(fn)}
	return v.appendEntry(name, fields, params)
}

// AddRules bulk-registers rule definitions in order.
func (v *Validator) AddRules(defs ...RuleDef) {
	for _, def := range defs {
		entry := v.Rule(def.Rule, def.Fields, def.Params...)
		if def.Message != "" {
			entry.Message(def.Message)
		}
	}
}

func (v *Validator) appendEntry(name string, fields []string, params []any) *Entry {
	v.entries = append(v.entries, ruleEntry{
		name:   name,
		fields: slices.Clone(fields),
		params: params,
	})
	return &Entry{v: v, idx: len(v.entries) - 1}
}

func (v *Validator) recordConfigErr(err error) {
	if v.configErr == nil {
		v.configErr = err
	}
}

// SetStrict toggles strict mode: after all rules run, any top-level input key
// not covered by some rule's root segment is reported as an error.
func (v *Validator) SetStrict(strict bool) {
	v.strict = strict
}

// SetStopOnFirstFail toggles short-circuiting: the first recorded failure
// aborts all remaining rule, field and strict-mode evaluation.
func (v *Validator) SetStopOnFirstFail(stop bool) {
	v.stopOnFirstFail = stop
}

// WithData forks the validator for a new data tree: rule entries, labels and
// toggles carry over, instance rules are deep-copied and the error state is
// cleared. The fork shares nothing mutable with the original, so both may be
// validated independently by different callers.
func (v *Validator) WithData(data map[string]any) *Validator {
	return &Validator{
		data:            data,
		entries:         slices.Clone(v.entries),
		instanceRules:   maps.Clone(v.instanceRules),
		labels:          maps.Clone(v.labels),
		errors:          make(map[string][]string),
		templates:       v.templates,
		strict:          v.strict,
		stopOnFirstFail: v.stopOnFirstFail,
		prependLabels:   v.prependLabels,
		configErr:       v.configErr,
	}
}

// ExtraFields returns the top-level input keys not covered by any rule, as
// computed by the most recent strict-mode Validate.
func (v *Validator) ExtraFields() []string {
	return v.extraFields
}

// Validate runs every rule entry against its fields in registration order and
// reports whether the data passed. The boolean is false iff at least one
// error was recorded. A non-nil error is always a configuration problem
// (unknown rule, missing parameter, invalid pattern), never a data failure,
// and aborts validation immediately.
//
// Validate is idempotent: error state is rebuilt from scratch on every call.
func (v *Validator) Validate() (bool, error) {
	if v.configErr != nil {
		return false, v.configErr
	}

	v.errors = make(map[string][]string)
	v.extraFields = nil

	stopped := false
outer:
	for _, entry := range v.entries {
		for _, field := range entry.fields {
			value, aggregate := resolveValue(v.data, fieldPath(field), false)
			if !v.shouldRun(entry.name, field, value, aggregate) {
				continue
			}

			fn, ok := v.resolveRule(entry.name)
			if !ok {
				return false, fmt.Errorf("%w: %s", ErrUnknownRule, entry.name)
			}

			pass, failedValue, customMsg, err := v.runRule(fn, entry, field, value, aggregate)
			if err != nil {
				return false, fmt.Errorf("rule %q on field %q: %w", entry.name, field, err)
			}
			if pass {
				continue
			}

			v.addError(field, v.templateFor(entry, customMsg), entry.params, failedValue)
			if v.stopOnFirstFail {
				stopped = true
				break outer
			}
		}
	}

	if v.strict && !stopped {
		v.applyStrict()
	}

	return len(v.errors) == 0, nil
}

// shouldRun is the skip-decision policy, evaluated per (rule, field) pair in
// this precedence:
//
//  1. requiredWith/requiredWithout always execute; they must observe sibling
//     fields regardless of this field's own emptiness.
//  2. A nullable field whose value is nil skips every rule except nullable,
//     required and accepted.
//  3. An optional field skips all rules while its key is unset; once set, it
//     is validated even when empty.
//  4. Without a required rule on the field, non-required/accepted rules skip
//     empty values (nil or "" scalars, zero-element aggregates).
func (v *Validator) shouldRun(ruleName, field string, value any, aggregate bool) bool {
	if ruleName == "requiredWith" || ruleName == "requiredWithout" {
		return true
	}

	if value == nil && !aggregate && v.hasRule("nullable", field) {
		switch ruleName {
		case "nullable", "required", "accepted":
		default:
			return false
		}
	}

	if v.hasRule("optional", field) {
		return aggregate || value != nil
	}

	if ruleName != "required" && ruleName != "accepted" && !v.hasRule("required", field) {
		if isEmptyResolved(value, aggregate) {
			return false
		}
	}

	return true
}

// runRule invokes the callable once per element (aggregates fan out, scalars
// are a single-element run) and ANDs the outcomes. The first failing
// element's value and the first non-empty returned message win.
func (v *Validator) runRule(fn ruleFn, entry ruleEntry, field string, value any, aggregate bool) (bool, any, string, error) {
	var elements []any
	if aggregate {
		elements, _ = value.([]any)
		// Wildcard matches may legitimately include gaps; drop them unless
		// the field is explicitly required.
		if !v.hasRule("required", field) {
			kept := elements[:0:0]
			for _, el := range elements {
				if el == nil || el == "" {
					continue
				}
				kept = append(kept, el)
			}
			elements = kept
		}
	} else {
		elements = []any{value}
	}

	pass := true
	var failedValue any
	customMsg := ""
	for _, el := range elements {
		ok, msg, err := fn(field, el, entry.params, v.data)
		if err != nil {
			return false, nil, "", err
		}
		if !ok {
			if pass {
				failedValue = el
			}
			if customMsg == "" && msg != "" {
				customMsg = msg
			}
			pass = false
		}
	}
	return pass, failedValue, customMsg, nil
}

// applyStrict records one error per extra field: a top-level input key whose
// root segment no rule references. The extra-field list is always computed in
// full for introspection; error recording still honors stop-on-first-fail.
func (v *Validator) applyStrict() {
	covered := make(map[string]bool)
	for _, entry := range v.entries {
		for _, field := range entry.fields {
			covered[fieldPath(field)[0]] = true
		}
	}

	keys := make([]string, 0, len(v.data))
	for k := range v.data {
		if !covered[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	v.extraFields = keys

	template, ok := v.templates[lang.KeyNotAllowed]
	if !ok {
		template = "{field} is not an allowed field"
	}
	for _, field := range keys {
		v.addError(field, template, nil, nil)
		if v.stopOnFirstFail {
			return
		}
	}
}

// hasRule reports whether any entry applies the named rule to the field.
func (v *Validator) hasRule(name, field string) bool {
	for _, entry := range v.entries {
		if entry.name == name && slices.Contains(entry.fields, field) {
			return true
		}
	}
	return false
}

// templateFor picks the message template for a failing entry: a message
// returned by the callable wins, then the entry's own message, then the
// template attached at rule registration, then the language catalog, then
// the generic fallback.
func (v *Validator) templateFor(entry ruleEntry, customMsg string) string {
	if customMsg != "" {
		return customMsg
	}
	if entry.message != "" {
		return entry.message
	}
	if msg := v.registeredMessage(entry.name); msg != "" {
		return msg
	}
	if template, ok := v.templates[entry.name]; ok {
		return template
	}
	return fallbackTemplate
}

// isEmptyResolved is the skip policy's emptiness notion: aggregates are empty
// at zero elements, scalars at nil or empty string.
func isEmptyResolved(value any, aggregate bool) bool {
	if aggregate {
		elements, ok := value.([]any)
		return !ok || len(elements) == 0
	}
	return value == nil || value == ""
}
