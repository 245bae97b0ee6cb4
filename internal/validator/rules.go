// internal/validator/rules.go
//
// Folio – Validator library: pure string predicates.
//
// Context
//   Every rule the contact form can apply lives here as a plain function.
//   Rules hold no state, never panic, and treat empty or malformed input as
//   an ordinary false.  The form controller strings them together in
//   FieldSpecs; nothing in this file knows about fields, pages, or HTTP.
//
// Notes
//   •  Lengths count runes, not bytes, so “José-María” is ten characters.
//   •  Letters and digits in passwordStrength are ASCII, matching the
//      character classes the rendered form advertises.
//   •  Oxford commas, two spaces after periods.
//
//------------------------------------------------------------------------------

package validator

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule judges a single value.
type Rule func(value string) bool

// PairRule judges a value against a reference value, e.g. a password and
// its confirmation.
type PairRule func(reference, value string) bool

// minPasswordLen is the floor enforced by PasswordStrength.
const minPasswordLen = 8

// space is the whitespace class shared by every rule: ASCII whitespace,
// Unicode separators (NBSP included), and the byte-order mark.
const space = `\s\v\p{Z}\x{FEFF}`

var (
	// one-or-more non-space, non-@ characters around “@” and a later “.”.
	emailRe = regexp.MustCompile(`^[^@` + space + `]+@[^@` + space + `]+\.[^@` + space + `]+$`)

	// ASCII letters, whitespace, apostrophes, and hyphens.
	nameRe = regexp.MustCompile(`^[A-Za-z` + space + `'-]+$`)
)

// isSpace matches the same runes as the space class.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.In(r, unicode.Z) || r == '\uFEFF'
}

// -----------------------------------------------------------------------------
// Single-value rules
// -----------------------------------------------------------------------------

// Required reports whether value holds anything besides whitespace.
func Required(value string) bool {
	return len(strings.TrimFunc(value, isSpace)) > 0
}

// EmailFormat reports whether value looks like local@domain.tld.
func EmailFormat(value string) bool {
	return emailRe.MatchString(value)
}

// MinLength returns a Rule that passes values at least n characters long.
// Negative n is treated as zero.
func MinLength(n int) Rule {
	if n < 0 {
		n = 0
	}
	return func(value string) bool {
		return utf8.RuneCountInString(value) >= n
	}
}

// NameCharacters reports whether value is a non-empty run of letters,
// whitespace, apostrophes, and hyphens.
func NameCharacters(value string) bool {
	return nameRe.MatchString(value)
}

// PasswordStrength reports whether value has at least eight characters,
// one letter, and one digit.  Line terminators disqualify the value.
func PasswordStrength(value string) bool {
	if utf8.RuneCountInString(value) < minPasswordLen {
		return false
	}
	var letter, digit bool
	for _, r := range value {
		switch {
		case r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029':
			return false
		case r >= '0' && r <= '9':
			digit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letter = true
		}
	}
	return letter && digit
}

// -----------------------------------------------------------------------------
// Pair rules
// -----------------------------------------------------------------------------

// PasswordsMatch reports whether confirm equals password and password is
// itself strong.
func PasswordsMatch(password, confirm string) bool {
	return confirm == password && PasswordStrength(password)
}
