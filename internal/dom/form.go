package dom

import (
	"slices"
	"strings"
)

// Fields returns the form controls named name.
func (e *Element) Fields(name string) []*Element {
	return e.Find(func(el *Element) bool {
		switch el.Tag() {
		case "input", "textarea", "select":
			return el.Attr("name") == name
		}
		return false
	})
}

// Field returns the first control named name, or nil.
func (e *Element) Field(name string) *Element {
	fields := e.Fields(name)
	if len(fields) == 0 {
		return nil
	}
	return fields[0]
}

// Focus marks the element as the one to receive focus when the markup is
// shown, clearing the mark from every other element of the document.
func (d *Document) Focus(el *Element) {
	for _, other := range d.Root().Find(func(x *Element) bool { return x.HasAttr("autofocus") }) {
		other.RemoveAttr("autofocus")
	}
	el.SetAttr("autofocus", "")
}

// FillForm writes submitted values back into the controls of form so a
// rejected submission keeps what the visitor typed. File inputs are left
// untouched.
func (e *Element) FillForm(values map[string][]string) {
	for _, el := range e.Find(func(x *Element) bool {
		switch x.Tag() {
		case "input", "textarea", "select":
			return x.Attr("name") != ""
		}
		return false
	}) {
		vals := values[el.Attr("name")]
		switch el.Tag() {
		case "textarea":
			if len(vals) > 0 {
				el.SetText(vals[0])
			}
		case "select":
			for _, opt := range el.Find(func(x *Element) bool { return x.Tag() == "option" }) {
				if slices.Contains(vals, optionValue(opt)) {
					opt.SetAttr("selected", "")
				} else {
					opt.RemoveAttr("selected")
				}
			}
		case "input":
			switch strings.ToLower(el.Attr("type")) {
			case "file", "submit", "button", "reset", "hidden", "password":
			case "checkbox", "radio":
				if slices.Contains(vals, el.Attr("value")) {
					el.SetAttr("checked", "")
				} else {
					el.RemoveAttr("checked")
				}
			default:
				if len(vals) > 0 {
					el.SetAttr("value", vals[0])
				}
			}
		}
	}
}

func optionValue(opt *Element) string {
	if opt.HasAttr("value") {
		return opt.Attr("value")
	}
	return strings.TrimSpace(opt.Text())
}
