package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"unicode/utf8"
)

// Constraint checks a single trimmed value and returns a message on failure.
// Every constraint except Required accepts the empty value, matching how
// browsers treat optional fields.
type Constraint func(value string) string

func Required() Constraint {
	return func(v string) string {
		if v == "" {
			return "This field is required."
		}
		return ""
	}
}

func Pattern(re *regexp.Regexp, msg string) Constraint {
	return func(v string) string {
		if v != "" && !re.MatchString(v) {
			return msg
		}
		return ""
	}
}

func Email() Constraint {
	return func(v string) string {
		if v == "" {
			return ""
		}
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v {
			return "Enter a valid email address."
		}
		return ""
	}
}

func URL() Constraint {
	return func(v string) string {
		if v == "" {
			return ""
		}
		u, err := url.Parse(v)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "Enter a valid URL."
		}
		return ""
	}
}

// Number accepts integers within [min, max].
func Number(min, max int) Constraint {
	return func(v string) string {
		if v == "" {
			return ""
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return "Enter a number."
		}
		if n < min || n > max {
			return fmt.Sprintf("Enter a value between %d and %d.", min, max)
		}
		return ""
	}
}

func MinLen(n int) Constraint {
	return func(v string) string {
		if v != "" && utf8.RuneCountInString(v) < n {
			return fmt.Sprintf("Use at least %d characters.", n)
		}
		return ""
	}
}

func MaxLen(n int) Constraint {
	return func(v string) string {
		if utf8.RuneCountInString(v) > n {
			return fmt.Sprintf("Use at most %d characters.", n)
		}
		return ""
	}
}

// OneOf accepts only the listed values.
func OneOf(options ...string) Constraint {
	return func(v string) string {
		if v == "" {
			return ""
		}
		for _, o := range options {
			if v == o {
				return ""
			}
		}
		return "Select one of the available options."
	}
}
