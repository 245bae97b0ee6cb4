// internal/validator/registry.go
//
// Folio – Validator library: name lookup and struct-tag bridge.
//
// Context
//   Form definitions refer to rules by name (“required”, “minLength”, …).
//   Lookup resolves those names into Rules and PairRules so YAML stays the
//   single place where a form's rule order is declared.  RegisterTags
//   exposes the same predicates to go-playground/validator so structs
//   elsewhere in Folio (project form, config) share one definition of
//   “blank”, “email”, and friends.
//
//------------------------------------------------------------------------------

package validator

import (
	"fmt"
	"strconv"

	playground "github.com/go-playground/validator/v10"
)

// Rule names accepted in form definitions.
const (
	NameRequired         = "required"
	NameEmailFormat      = "emailFormat"
	NameMinLength        = "minLength"
	NameNameCharacters   = "nameCharacters"
	NamePasswordStrength = "passwordStrength"
	NamePasswordsMatch   = "passwordsMatch"
)

var singles = map[string]Rule{
	NameRequired:         Required,
	NameEmailFormat:      EmailFormat,
	NameNameCharacters:   NameCharacters,
	NamePasswordStrength: PasswordStrength,
}

var pairs = map[string]PairRule{
	NamePasswordsMatch: PasswordsMatch,
}

// Lookup returns the single-value Rule registered under name.  Parametrised
// rules read their argument from params; minLength expects params["min"].
func Lookup(name string, params map[string]string) (Rule, error) {
	if name == NameMinLength {
		raw, ok := params["min"]
		if !ok {
			return nil, fmt.Errorf("rule %s: missing 'min'", name)
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("rule %s: bad 'min' %q", name, raw)
		}
		return MinLength(n), nil
	}
	r, ok := singles[name]
	if !ok {
		return nil, fmt.Errorf("unknown rule %q", name)
	}
	return r, nil
}

// LookupPair returns the PairRule registered under name.
func LookupPair(name string) (PairRule, bool) {
	r, ok := pairs[name]
	return r, ok
}

// IsPair reports whether name refers to a two-value rule.
func IsPair(name string) bool {
	_, ok := pairs[name]
	return ok
}

// -----------------------------------------------------------------------------
// go-playground/validator bridge
// -----------------------------------------------------------------------------

// Struct tags registered by RegisterTags.
const (
	TagNotBlank    = "notblank"
	TagEmailFormat = "emailformat"
	TagNameChars   = "namechars"
	TagPwStrength  = "pwstrength"
)

// RegisterTags installs Folio's predicates as validation tags on v.
func RegisterTags(v *playground.Validate) error {
	tags := map[string]Rule{
		TagNotBlank:    Required,
		TagEmailFormat: EmailFormat,
		TagNameChars:   NameCharacters,
		TagPwStrength:  PasswordStrength,
	}
	for tag, rule := range tags {
		rule := rule
		err := v.RegisterValidation(tag, func(fl playground.FieldLevel) bool {
			return rule(fl.Field().String())
		})
		if err != nil {
			return fmt.Errorf("register tag %s: %w", tag, err)
		}
	}
	return nil
}

// New returns a go-playground validator with Folio's tags installed.
func New() *playground.Validate {
	v := playground.New()
	if err := RegisterTags(v); err != nil {
		panic(err) // tag names are constants; failure is a programming error
	}
	return v
}
