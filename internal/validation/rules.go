package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"unicode/utf8"
)

// PhonePattern accepts Brazilian style numbers such as (11) 91234-5678.
var PhonePattern = regexp.MustCompile(`^\(?\d{2}\)?\s?\d{4,5}-?\d{4}$`)

// MaxLogoBytes is the largest accepted logo upload.
const MaxLogoBytes = 2 * 1024 * 1024

// LogoTypes are the accepted logo MIME types.
var LogoTypes = []string{"image/png", "image/jpeg"}

// PhoneWhenPreferred requires a phone matching PhonePattern only when the
// preference field equals want. Any other preference lets the phone be empty.
func PhoneWhenPreferred(prefField, want, phoneField, target string) Rule {
	return func(f Form) *Violation {
		if f.Get(prefField) != want {
			return nil
		}
		if !PhonePattern.MatchString(f.Get(phoneField)) {
			return &Violation{
				Field:   phoneField,
				Target:  target,
				Message: "You chose to be contacted by phone: enter a valid phone number.",
			}
		}
		return nil
	}
}

// MinLength requires field to hold at least n characters.
func MinLength(field string, n int, target, msg string) Rule {
	return func(f Form) *Violation {
		if utf8.RuneCountInString(f.Get(field)) < n {
			return &Violation{Field: field, Target: target, Message: msg}
		}
		return nil
	}
}

// Upload checks an optional file against allowed MIME types and a size cap.
// A type mismatch is reported regardless of size.
func Upload(field string, allowed []string, maxBytes int64, target string) Rule {
	return func(f Form) *Violation {
		file, ok := f.File(field)
		if !ok {
			return nil
		}
		if !slices.Contains(allowed, file.ContentType) {
			return &Violation{Field: field, Target: target, Message: "Invalid format. Use PNG or JPG."}
		}
		if file.Size > maxBytes {
			return &Violation{Field: field, Target: target, Message: fmt.Sprintf("File too large. Max %dMB.", maxBytes/(1024*1024))}
		}
		return nil
	}
}

// AtLeastOneChecked requires at least one value for a checkbox group.
func AtLeastOneChecked(field, target, msg string) Rule {
	return func(f Form) *Violation {
		if len(f.All(field)) == 0 {
			return &Violation{Field: field, Target: target, Message: msg}
		}
		return nil
	}
}

// OneSelected requires a radio group selection among options.
func OneSelected(field string, options []string, target, msg string) Rule {
	return func(f Form) *Violation {
		if !slices.Contains(options, f.Get(field)) {
			return &Violation{Field: field, Target: target, Message: msg}
		}
		return nil
	}
}

// YearRange requires an integer year within [min, max].
func YearRange(field string, min, max int, target string) Rule {
	return func(f Form) *Violation {
		year, err := strconv.Atoi(f.Get(field))
		if err != nil || year < min || year > max {
			return &Violation{
				Field:   field,
				Target:  target,
				Message: fmt.Sprintf("Enter a year between %d and %d.", min, max),
			}
		}
		return nil
	}
}
