// internal/validator/rules_test.go
//
// Unit-tests for the predicate library and the struct-tag bridge.
//
// Run: go test ./internal/validator -v

package validator

import "testing"

func TestRequired(t *testing.T) {
	cases := map[string]bool{
		"":             false,
		"  ":           false,
		"\t\n ":        false,
		"a":            true,
		" a ":          true,
		"\u00a0":       false,
		"\ufeff":       false,
		"\u2028\u3000": false,
		"\ufeffa":      true,
	}
	for in, want := range cases {
		if got := Required(in); got != want {
			t.Errorf("Required(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestEmailFormat(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"a@b.co", true},
		{"jo@x.com", true},
		{"first.last@sub.example.org", true},
		{"a@b", false},
		{"a b@c.com", false},
		{"a@b c.com", false},
		{"@b.co", false},
		{"a@@b.co", false},
		{"a@b.", false},
		{"a\ufeffb@c.co", false},
		{"a\u00a0b@c.co", false},
		{"", false},
	}
	for _, c := range cases {
		if got := EmailFormat(c.in); got != c.want {
			t.Errorf("EmailFormat(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestWhitespaceClassShared(t *testing.T) {
	for _, sp := range []string{" ", "\t", "\u00a0", "\u2009", "\ufeff"} {
		if !NameCharacters("Mary" + sp + "Ann") {
			t.Errorf("NameCharacters rejected separator %q", sp)
		}
		if EmailFormat("a" + sp + "b@c.co") {
			t.Errorf("EmailFormat accepted separator %q", sp)
		}
		if Required(sp) {
			t.Errorf("Required accepted separator %q", sp)
		}
	}
}

func TestMinLength(t *testing.T) {
	if !MinLength(0)("") {
		t.Fatal("MinLength(0) must accept the empty string")
	}
	if !MinLength(-3)("") {
		t.Fatal("negative minimum must behave like zero")
	}
	if MinLength(3)("ab") {
		t.Fatal("MinLength(3) accepted a two-character value")
	}
	if !MinLength(3)("abc") {
		t.Fatal("MinLength(3) rejected a three-character value")
	}
	if !MinLength(4)("José") {
		t.Fatal("MinLength counts characters, not bytes")
	}
}

func TestNameCharacters(t *testing.T) {
	cases := map[string]bool{
		"Jo":             true,
		"Mary Ann":       true,
		"O'Brien":        true,
		"Smith-Jones":    true,
		"":               false,
		"R2D2":           false,
		"Jo!":            false,
		"<script>":       false,
		"Anne  -  Marie": true,
	}
	for in, want := range cases {
		if got := NameCharacters(in); got != want {
			t.Errorf("NameCharacters(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPasswordStrength(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"abcdefg1", true},
		{"abcd1234", true},
		{"abcdefgh", false},
		{"1234567", false},
		{"12345678", false},
		{"abc123", false},
		{"abcd\n1234", false},
		{"", false},
	}
	for _, c := range cases {
		if got := PasswordStrength(c.in); got != c.want {
			t.Errorf("PasswordStrength(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestPasswordsMatch(t *testing.T) {
	if !PasswordsMatch("abc12345", "abc12345") {
		t.Fatal("identical strong passwords must match")
	}
	if PasswordsMatch("abc12345", "abc12346") {
		t.Fatal("different passwords matched")
	}
	if PasswordsMatch("abcdefgh", "abcdefgh") {
		t.Fatal("weak passwords must not match even when equal")
	}
}

func TestRulesAreRepeatable(t *testing.T) {
	for i := 0; i < 3; i++ {
		if !EmailFormat("a@b.co") || Required("") || !PasswordStrength("abcdefg1") {
			t.Fatalf("iteration %d produced a different answer", i)
		}
	}
}

func TestLookup(t *testing.T) {
	r, err := Lookup(NameRequired, nil)
	if err != nil || r("") {
		t.Fatalf("Lookup(required) = %v, %v", r, err)
	}

	r, err = Lookup(NameMinLength, map[string]string{"min": "2"})
	if err != nil {
		t.Fatalf("Lookup(minLength): %v", err)
	}
	if r("a") || !r("ab") {
		t.Fatal("minLength(2) misbehaves")
	}

	if _, err := Lookup(NameMinLength, nil); err == nil {
		t.Fatal("minLength without 'min' must fail")
	}
	if _, err := Lookup(NameMinLength, map[string]string{"min": "-1"}); err == nil {
		t.Fatal("negative 'min' must fail")
	}
	if _, err := Lookup("nope", nil); err == nil {
		t.Fatal("unknown rule must fail")
	}
	if !IsPair(NamePasswordsMatch) || IsPair(NameRequired) {
		t.Fatal("IsPair misclassifies rules")
	}
	if _, ok := LookupPair(NamePasswordsMatch); !ok {
		t.Fatal("passwordsMatch not registered")
	}
}

func TestRegisterTags(t *testing.T) {
	type signup struct {
		Name     string `validate:"notblank,namechars"`
		Email    string `validate:"emailformat"`
		Password string `validate:"pwstrength"`
	}

	v := New()
	if err := v.Struct(signup{Name: "Jo", Email: "jo@x.com", Password: "abcd1234"}); err != nil {
		t.Fatalf("valid struct rejected: %v", err)
	}
	if err := v.Struct(signup{Name: "  ", Email: "jo@x.com", Password: "abcd1234"}); err == nil {
		t.Fatal("blank name accepted")
	}
	if err := v.Struct(signup{Name: "Jo", Email: "jo@x", Password: "abcd1234"}); err == nil {
		t.Fatal("bad email accepted")
	}
	if err := v.Struct(signup{Name: "Jo", Email: "jo@x.com", Password: "abcdefgh"}); err == nil {
		t.Fatal("weak password accepted")
	}
}
