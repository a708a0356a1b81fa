package validation

import "testing"

func form(values map[string][]string) Form {
	return Form{Values: values, Files: map[string]File{}}
}

func TestPhoneWhenPreferred(t *testing.T) {
	rule := PhoneWhenPreferred("preference", "phone", "phone", "form-feedback")
	tests := []struct {
		name       string
		preference string
		phone      string
		wantErr    bool
	}{
		{name: "phone preference empty phone", preference: "phone", phone: "", wantErr: true},
		{name: "phone preference bad phone", preference: "phone", phone: "1234", wantErr: true},
		{name: "phone preference valid phone", preference: "phone", phone: "(11) 91234-5678"},
		{name: "phone preference compact phone", preference: "phone", phone: "1132345678"},
		{name: "email preference empty phone", preference: "email", phone: ""},
		{name: "whatsapp preference empty phone", preference: "whatsapp", phone: ""},
		{name: "no preference empty phone", preference: "", phone: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := rule(form(map[string][]string{"preference": {tc.preference}, "phone": {tc.phone}}))
			if (v != nil) != tc.wantErr {
				t.Fatalf("rule() = %#v, wantErr %v", v, tc.wantErr)
			}
			if v != nil && (v.Field != "phone" || v.Target != "form-feedback") {
				t.Fatalf("unexpected violation %#v", v)
			}
		})
	}
}

func TestUpload(t *testing.T) {
	rule := Upload("logo", LogoTypes, MaxLogoBytes, "logo-feedback")
	tests := []struct {
		name    string
		file    *File
		wantMsg string
	}{
		{name: "no file"},
		{name: "gif rejected even when tiny", file: &File{Name: "a.gif", ContentType: "image/gif", Size: 10}, wantMsg: "Invalid format. Use PNG or JPG."},
		{name: "png over limit", file: &File{Name: "a.png", ContentType: "image/png", Size: MaxLogoBytes + 1}, wantMsg: "File too large. Max 2MB."},
		{name: "jpeg over limit", file: &File{Name: "a.jpg", ContentType: "image/jpeg", Size: 3 * 1024 * 1024}, wantMsg: "File too large. Max 2MB."},
		{name: "png at limit", file: &File{Name: "a.png", ContentType: "image/png", Size: MaxLogoBytes}},
		{name: "jpeg under limit", file: &File{Name: "a.jpg", ContentType: "image/jpeg", Size: 1024}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := form(nil)
			if tc.file != nil {
				f.Files["logo"] = *tc.file
			}
			v := rule(f)
			if tc.wantMsg == "" {
				if v != nil {
					t.Fatalf("expected pass, got %#v", v)
				}
				return
			}
			if v == nil || v.Message != tc.wantMsg {
				t.Fatalf("rule() = %#v, want message %q", v, tc.wantMsg)
			}
		})
	}
}

func TestSchemaFieldStageShortCircuits(t *testing.T) {
	calls := 0
	schema := Schema{
		Fields: []Field{
			{Name: "name", Constraints: []Constraint{Required()}},
			{Name: "email", Constraints: []Constraint{Required(), Email()}},
		},
		Rules: []Rule{func(Form) *Violation { calls++; return nil }},
	}

	res := schema.Validate(form(map[string][]string{"name": {" "}, "email": {"bad"}}))
	if res.Valid() {
		t.Fatalf("expected invalid result")
	}
	if len(res.Violations) != 1 || res.Violations[0].Field != "name" || res.Focus != "name" {
		t.Fatalf("expected only the first offending field, got %#v", res)
	}
	if calls != 0 {
		t.Fatalf("custom rules must not run after a field failure")
	}

	res = schema.Validate(form(map[string][]string{"name": {"Ana"}, "email": {"bad"}}))
	if res.Focus != "email" || res.Violations[0].Message != "Enter a valid email address." {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestSchemaRulesAllRun(t *testing.T) {
	schema := Schema{
		Rules: []Rule{
			AtLeastOneChecked("services", "services-feedback", "Pick a service."),
			OneSelected("category", []string{"association", "foundation"}, "category-feedback", "Pick a category."),
			YearRange("year", 1900, 2026, ""),
			MinLength("message", 10, "form-feedback", "Too short."),
		},
	}

	res := schema.Validate(form(map[string][]string{"year": {"1850"}, "message": {"short"}}))
	if len(res.Violations) != 4 {
		t.Fatalf("expected 4 independent violations, got %#v", res.Violations)
	}
	if res.Focus != "services" {
		t.Fatalf("focus should be the first violation, got %q", res.Focus)
	}

	res = schema.Validate(form(map[string][]string{
		"services": {"education"},
		"category": {"foundation"},
		"year":     {"2001"},
		"message":  {"long enough message"},
	}))
	if !res.Valid() || res.Focus != "" {
		t.Fatalf("expected valid result, got %#v", res)
	}
}

func TestConstraints(t *testing.T) {
	tests := []struct {
		name  string
		c     Constraint
		value string
		ok    bool
	}{
		{name: "required empty", c: Required(), value: "", ok: false},
		{name: "required set", c: Required(), value: "x", ok: true},
		{name: "email optional", c: Email(), value: "", ok: true},
		{name: "email valid", c: Email(), value: "ana@example.org", ok: true},
		{name: "email display name rejected", c: Email(), value: "Ana <ana@example.org>", ok: false},
		{name: "url valid", c: URL(), value: "https://ong.example.org", ok: true},
		{name: "url missing scheme", c: URL(), value: "ong.example.org", ok: false},
		{name: "number in range", c: Number(1, 10), value: "5", ok: true},
		{name: "number out of range", c: Number(1, 10), value: "11", ok: false},
		{name: "number not numeric", c: Number(1, 10), value: "five", ok: false},
		{name: "min len", c: MinLen(3), value: "ab", ok: false},
		{name: "min len runes", c: MinLen(3), value: "çãé", ok: true},
		{name: "max len", c: MaxLen(2), value: "abc", ok: false},
		{name: "one of", c: OneOf("SP", "RJ"), value: "MG", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c(tc.value) == ""; got != tc.ok {
				t.Fatalf("constraint(%q) ok = %v, want %v", tc.value, got, tc.ok)
			}
		})
	}
}
