// Package binder converts untyped HTTP input into the map[string]any data
// trees the validator consumes.
//
// JSON bodies decode directly into nested maps and lists. Form and query
// input use bracket notation to express nesting:
//
//	user[email]=a@b.com   ->  {"user": {"email": "a@b.com"}}
//	tags[]=go&tags[]=web  ->  {"tags": ["go", "web"]}
//
// Example:
//
//	data, err := binder.JSON(r)
//	if err != nil {
//		http.Error(w, err.Error(), http.StatusBadRequest)
//		return
//	}
//	v := valicomb.New(data)
//	v.Rule("required", []string{"user.email"})
//	v.Rule("email", []string{"user.email"})
//	ok, err := v.Validate()
package binder
