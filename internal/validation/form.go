// Package validation checks submitted forms in two stages: per-field
// constraints that stop at the first failing field, then custom rules that
// all run and each report their own violation.
package validation

import "strings"

// File describes an uploaded file.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Form is a submitted form: text values plus at most one file per field.
type Form struct {
	Values map[string][]string
	Files  map[string]File
}

// Get returns the first value of name, trimmed.
func (f Form) Get(name string) string {
	if vals := f.Values[name]; len(vals) > 0 {
		return strings.TrimSpace(vals[0])
	}
	return ""
}

// All returns every non-empty value of name.
func (f Form) All(name string) []string {
	var out []string
	for _, v := range f.Values[name] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// File returns the uploaded file for name, if any.
func (f Form) File(name string) (File, bool) {
	file, ok := f.Files[name]
	if !ok || file.Name == "" {
		return File{}, false
	}
	return file, true
}

// Violation is one failed check. Target names the element that shows the
// message; an empty target means the field's own inline feedback.
type Violation struct {
	Field   string `json:"field"`
	Target  string `json:"target,omitempty"`
	Message string `json:"message"`
}

// Result is the outcome of Schema.Validate.
type Result struct {
	Violations []Violation `json:"violations"`
	// Focus is the field that should receive focus, empty when valid.
	Focus string `json:"focus,omitempty"`
}

func (r Result) Valid() bool { return len(r.Violations) == 0 }

// Field binds constraints to a named form field.
type Field struct {
	Name        string
	Constraints []Constraint
}

// Rule is a cross-field check; nil means the rule passed.
type Rule func(Form) *Violation

// Schema is the full validation of one form.
type Schema struct {
	Fields []Field
	Rules  []Rule
}

// Validate runs field constraints in order and returns on the first failure.
// When every field passes, all rules run and every violation is kept.
func (s Schema) Validate(f Form) Result {
	for _, field := range s.Fields {
		value := f.Get(field.Name)
		for _, c := range field.Constraints {
			if msg := c(value); msg != "" {
				return Result{
					Violations: []Violation{{Field: field.Name, Message: msg}},
					Focus:      field.Name,
				}
			}
		}
	}

	var res Result
	for _, rule := range s.Rules {
		if v := rule(f); v != nil {
			res.Violations = append(res.Violations, *v)
		}
	}
	if len(res.Violations) > 0 {
		res.Focus = res.Violations[0].Field
	}
	return res
}
