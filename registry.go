package valicomb

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// RuleFunc is the simple predicate shape for custom rules. It receives the
// field name, the resolved value, the rule parameters and the entire top-level
// data tree so cross-field rules can resolve sibling paths.
type RuleFunc func(field string, value any, params []any, data map[string]any) bool

// MessageRuleFunc is the extended predicate shape. The returned string, when
// non-empty on failure, becomes the error message for this failure and takes
// precedence over any static template.
type MessageRuleFunc func(field string, value any, params []any, data map[string]any) (bool, string)

// ruleFn is the normalized internal callable every registered shape is
// adapted to. The error return is reserved for configuration problems
// (missing parameters, invalid patterns); it aborts validation entirely and
// is never recorded as a field error.
type ruleFn func(field string, value any, params []any, data map[string]any) (bool, string, error)

type registryEntry struct {
	fn      ruleFn
	message string
}

// The global scope is shared by every validator in the process. It is
// append/override only and guarded for concurrent use; instance scopes are
// exclusively owned and need no locking. Test suites should register under
// unique names rather than rely on resetting this table.
var (
	globalMu    sync.RWMutex
	globalRules = make(map[string]registryEntry)
)

// builtinRules is the lowest-precedence scope, populated at package init by
// the rules_*.go files.
var builtinRules = make(map[string]ruleFn)

func registerBuiltin(name string, fn ruleFn) {
	builtinRules[name] = fn
}

func adaptRuleFunc(fn RuleFunc) ruleFn {
	return func(field string, value any, params []any, data map[string]any) (bool, string, error) {
		return fn(field, value, params, data), "", nil
	}
}

func adaptMessageRuleFunc(fn MessageRuleFunc) ruleFn {
	return func(field string, value any, params []any, data map[string]any) (bool, string, error) {
		ok, msg := fn(field, value, params, data)
		return ok, msg, nil
	}
}

// Register adds a process-wide rule under the given name. Later registrations
// under the same name win. The optional message is the default template used
// when a rule entry carries no message of its own.
func Register(name string, fn RuleFunc, message ...string) {
	if name == "" || fn == nil {
		return
	}
	registerGlobal(name, adaptRuleFunc(fn), firstOrEmpty(message))
}

// RegisterMessageRule is Register for callables that produce their own
// failure message.
func RegisterMessageRule(name string, fn MessageRuleFunc, message ...string) {
	if name == "" || fn == nil {
		return
	}
	registerGlobal(name, adaptMessageRuleFunc(fn), firstOrEmpty(message))
}

func registerGlobal(name string, fn ruleFn, message string) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalRules[name] = registryEntry{fn: fn, message: message}
}

func lookupGlobal(name string) (registryEntry, bool) {
	globalMu.RLock()
	defer globalMu.RUnlock()
	entry, ok := globalRules[name]
	return entry, ok
}

// RuleExists reports whether a name resolves through any scope: an instance
// rule of this validator, a process-wide rule, or a built-in.
func (v *Validator) RuleExists(name string) bool {
	if _, ok := v.instanceRules[name]; ok {
		return true
	}
	if _, ok := lookupGlobal(name); ok {
		return true
	}
	_, ok := builtinRules[name]
	return ok
}

// AddRule registers a rule on this validator instance only. Instance rules
// shadow process-wide rules of the same name and are deep-copied into forks
// created by WithData.
func (v *Validator) AddRule(name string, fn RuleFunc, message ...string) {
	if name == "" || fn == nil {
		return
	}
	v.instanceRules[name] = registryEntry{fn: adaptRuleFunc(fn), message: firstOrEmpty(message)}
}

// AddMessageRule is AddRule for callables that produce their own failure
// message.
func (v *Validator) AddMessageRule(name string, fn MessageRuleFunc, message ...string) {
	if name == "" || fn == nil {
		return
	}
	v.instanceRules[name] = registryEntry{fn: adaptMessageRuleFunc(fn), message: firstOrEmpty(message)}
}

// resolveRule walks the lookup chain: instance scope, then global scope, then
// the built-in table.
func (v *Validator) resolveRule(name string) (ruleFn, bool) {
	if entry, ok := v.instanceRules[name]; ok {
		return entry.fn, true
	}
	if entry, ok := lookupGlobal(name); ok {
		return entry.fn, true
	}
	if fn, ok := builtinRules[name]; ok {
		return fn, true
	}
	return nil, false
}

// registeredMessage returns the default template attached at registration
// time, instance scope first.
func (v *Validator) registeredMessage(name string) string {
	if entry, ok := v.instanceRules[name]; ok && entry.message != "" {
		return entry.message
	}
	if entry, ok := lookupGlobal(name); ok && entry.message != "" {
		return entry.message
	}
	return ""
}

// uniqueRuleName manufactures a collision-free synthetic name for an
// anonymous callable from the fields it applies to. Collisions are resolved
// by appending a random disambiguator until the name is free.
func (v *Validator) uniqueRuleName(fields []string) string {
	name := strings.Join(fields, "_") + "_rule"
	for v.RuleExists(name) {
		name = strings.Join(fields, "_") + "_" + uuid.NewString()[:8] + "_rule"
	}
	return name
}

func firstOrEmpty(s []string) string {
	if len(s) > 0 {
		return s[0]
	}
	return ""
}
