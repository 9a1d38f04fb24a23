package valicomb

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fallbackTemplate is used when neither the rule entry, the registry nor the
// message catalog supplies a template for a failing rule.
const fallbackTemplate = "{field} is invalid"

var (
	// Printf-style conversion specifiers, including Go positional ([1]) and
	// PHP-style positional (1$) forms.
	specifierRe = regexp.MustCompile(`%(?:\[\d+\])?(?:\d+\$)?[-+ 0#]*\d*(?:\.\d+)?[a-zA-Z]`)
	// PHP-style positional prefix, rewritten to Go's %[n] notation.
	phpPositionalRe = regexp.MustCompile(`%(\d+)\$`)

	titleCaser = cases.Title(language.English)
)

// Label sets the human-readable display name used when the {field}
// placeholder is rendered for the given field. Labels have their own
// lifecycle: they survive WithData forks and are independent of rules.
func (v *Validator) Label(field, label string) {
	v.labels[field] = label
}

// Labels sets display names for several fields at once.
func (v *Validator) Labels(labels map[string]string) {
	for field, label := range labels {
		v.labels[field] = label
	}
}

// Errors returns the full error map: field name to formatted messages in rule
// evaluation order. An empty map means the last Validate passed.
func (v *Validator) Errors() map[string][]string {
	return v.errors
}

// FieldErrors returns the messages recorded for a single field, or nil when
// the field passed.
func (v *Validator) FieldErrors(field string) []string {
	return v.errors[field]
}

// addError formats a raw message template and appends the result to the
// field's error list. Messages are never deduplicated or reordered.
func (v *Validator) addError(field, template string, params []any, failedValue any) {
	v.errors[field] = append(v.errors[field], v.formatMessage(field, template, params, failedValue))
}

// formatMessage runs the templating pipeline: label substitution for {field}
// and {fieldN}, {value} interpolation, parameter stringification and
// printf-style formatting with graceful degradation.
func (v *Validator) formatMessage(field, template string, params []any, failedValue any) string {
	msg := template

	if v.prependLabels {
		msg = strings.ReplaceAll(msg, "{field}", v.labelFor(field))
	} else {
		// With label prefixing disabled the "{field} " token is stripped so
		// templates read as bare clauses ("is required").
		msg = strings.ReplaceAll(msg, "{field} ", "")
		msg = strings.ReplaceAll(msg, "{field}", "")
	}

	// Positional {fieldN} placeholders render as the label of the field named
	// by the N-th parameter when one exists, else as the literal parameter.
	for i, p := range params {
		token := fmt.Sprintf("{field%d}", i+1)
		if !strings.Contains(msg, token) {
			continue
		}
		replacement := stringifyParam(p)
		if name, ok := p.(string); ok {
			if label, exists := v.labels[name]; exists {
				replacement = label
			}
		}
		msg = strings.ReplaceAll(msg, token, replacement)
	}

	msg = strings.ReplaceAll(msg, "{value}", stringifyParam(failedValue))

	return formatParams(msg, params)
}

// labelFor returns the configured label for a field, falling back to an
// auto-generated one: underscores become spaces, words are title-cased.
func (v *Validator) labelFor(field string) string {
	if label, ok := v.labels[field]; ok {
		return label
	}
	return titleCaser.String(strings.ReplaceAll(field, "_", " "))
}

// formatParams applies printf-style formatting when the template calls for
// it. Templates with no conversion specifiers, or invocations with no
// parameters, pass through verbatim so literal % signs survive. Missing
// values pad with empty strings; a formatting mismatch falls back to the
// unformatted template rather than failing.
func formatParams(template string, params []any) string {
	if len(params) == 0 {
		return template
	}

	specifiers := specifierRe.FindAllString(template, -1)
	if len(specifiers) == 0 {
		return template
	}

	goTemplate := phpPositionalRe.ReplaceAllString(template, "%[$1]")

	args := make([]any, 0, len(specifiers))
	for _, p := range params {
		args = append(args, stringifyParam(p))
	}
	for len(args) < len(specifiers) {
		args = append(args, "")
	}
	if len(args) > len(specifiers) {
		args = args[:len(specifiers)]
	}

	formatted := fmt.Sprintf(goTemplate, args...)
	if strings.Contains(formatted, "%!") {
		return template
	}
	return formatted
}

// stringifyParam renders a rule parameter for safe interpolation into a
// message. The closed set of renderable kinds: nil, booleans, strings,
// numbers, dates, sequences and a type-name fallback for everything
// structured.
func stringifyParam(p any) string {
	switch t := p.(type) {
	case nil:
		return "null"
	case bool:
		if t {
			return "true"
		}
		return "false"
	case string:
		return t
	case time.Time:
		return t.Format("2006-01-02")
	case []any:
		return stringifySequence(t)
	}

	rv := reflect.ValueOf(p)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		seq := make([]any, rv.Len())
		for i := range rv.Len() {
			seq[i] = rv.Index(i).Interface()
		}
		return stringifySequence(seq)
	case reflect.Map, reflect.Struct, reflect.Ptr, reflect.Chan, reflect.Func:
		return reflect.TypeOf(p).String()
	default:
		return fmt.Sprint(p)
	}
}

// stringifySequence renders a sequence as a bracketed list, quoting string
// elements: ['a', 'b'] or [1, 2].
func stringifySequence(seq []any) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, el := range seq {
		if i > 0 {
			b.WriteString(", ")
		}
		if s, ok := el.(string); ok {
			b.WriteByte('\'')
			b.WriteString(s)
			b.WriteByte('\'')
			continue
		}
		b.WriteString(stringifyParam(el))
	}
	b.WriteByte(']')
	return b.String()
}
