// Package valicomb validates trees of untyped input data against a
// declaratively registered set of rules per field, producing either acceptance
// or a structured, localizable collection of per-field error messages.
//
// The data under validation is an arbitrary nesting of map[string]any, []any
// and scalar leaves, exactly as produced by decoding a JSON body, an HTML form
// (see the binder package) or a CLI argument map. The engine only reads the
// tree; it never coerces or transforms values.
//
// # Basic Usage
//
//	v := valicomb.New(map[string]any{
//		"name":  "",
//		"email": "alice@example.com",
//	})
//	v.Rule("required", []string{"name", "email"})
//	v.Rule("email", []string{"email"})
//
//	ok, err := v.Validate()
//	if err != nil {
//		// configuration error: unknown rule, bad parameter, invalid pattern
//	}
//	if !ok {
//		errs := v.Errors() // map[string][]string
//		// errs["name"] == []string{"Name is required"}
//	}
//
// # Field Paths
//
// Fields are addressed by dot-separated paths into the tree. A `*` segment
// fans out over every element of the current level, so "users.*.email"
// validates the email of every entry in a list of user objects. Missing
// intermediate keys never fail resolution; they degrade to "no match".
//
//	v := valicomb.New(data)
//	v.Rule("email", []string{"users.*.email"})
//
// # Custom Rules
//
// Rules are resolved by name through three scopes in order: rules registered
// on the validator instance, rules registered process-wide with Register, and
// the built-in rule table. Anonymous callables may be attached directly:
//
//	valicomb.Register("even", func(field string, value any, params []any, data map[string]any) bool {
//		n, ok := value.(int)
//		return ok && n%2 == 0
//	}, "{field} must be even")
//
//	v.RuleFunc(func(field string, value any, params []any, data map[string]any) bool {
//		return value != "forbidden"
//	}, []string{"nickname"}).Message("{field} is not available")
//
// # Error Messages
//
// Message templates support the {field} placeholder (replaced with the field
// label), {fieldN} placeholders (replaced with the label of the field named by
// the N-th rule parameter), {value} (the failing value) and printf-style
// conversion specifiers fed from the rule parameters. Labels default to a
// title-cased form of the field name and can be overridden per field. Catalogs
// of default templates for several languages live in the lang package and are
// selected with WithLanguage.
//
// # Validation vs Configuration Errors
//
// Validate never returns an error for bad input data; missing keys and wrong
// types simply produce entries in the error map. A non-nil error from Validate
// always indicates a configuration problem (unknown rule name, missing rule
// parameter, malformed pattern) that should surface during development, not on
// user input.
package valicomb
