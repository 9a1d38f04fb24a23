package valicomb

import "errors"

// Configuration errors indicate a programming mistake in how rules were
// registered or parameterized. They are returned from Validate and are never
// recorded in the per-field error map, which is reserved for data failures.
var (
	ErrUnknownRule      = errors.New("unknown validation rule")
	ErrNoFields         = errors.New("rule requires at least one field")
	ErrMissingParameter = errors.New("missing required rule parameter")
	ErrInvalidParameter = errors.New("invalid rule parameter")
	ErrInvalidPattern   = errors.New("invalid regex pattern")
	ErrNilRuleFunc      = errors.New("rule function is nil")
)
