package valicomb

// Entry is a handle to one registered rule entry, returned from Rule,
// RuleFunc and RuleMessageFunc. It carries an explicit reference to the entry
// it configures, so chained configuration has no ambient "last added" cursor.
type Entry struct {
	v   *Validator
	idx int
}

// Message sets the error message template for this entry, overriding the
// registered and catalog defaults. Templates may use {field}, {fieldN},
// {value} and printf-style specifiers.
func (e *Entry) Message(message string) *Entry {
	e.v.entries[e.idx].message = message
	return e
}

// Label sets the display label of the entry's first field. Use
// Validator.Labels to label several fields at once.
func (e *Entry) Label(label string) *Entry {
	if fields := e.v.entries[e.idx].fields; len(fields) > 0 {
		e.v.labels[fields[0]] = label
	}
	return e
}
