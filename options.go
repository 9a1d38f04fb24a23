package valicomb

import "github.com/frostybee/valicomb/lang"

// Option configures a Validator at construction time.
type Option func(*Validator)

// WithLanguage selects the embedded message catalog for the given two-letter
// language code. Unknown codes fall back to English.
func WithLanguage(code string) Option {
	return func(v *Validator) {
		v.templates = lang.Default(code)
	}
}

// WithCatalog supplies the rule-name to message-template map directly, e.g. a
// catalog loaded from disk with the lang package.
func WithCatalog(templates map[string]string) Option {
	return func(v *Validator) {
		if templates != nil {
			v.templates = templates
		}
	}
}

// WithoutLabelPrefix disables label substitution: the "{field} " prefix token
// is stripped from templates, so messages read as bare clauses.
func WithoutLabelPrefix() Option {
	return func(v *Validator) {
		v.prependLabels = false
	}
}

// WithStrict enables strict mode from construction.
func WithStrict() Option {
	return func(v *Validator) {
		v.strict = true
	}
}

// WithStopOnFirstFail enables short-circuiting from construction.
func WithStopOnFirstFail() Option {
	return func(v *Validator) {
		v.stopOnFirstFail = true
	}
}
