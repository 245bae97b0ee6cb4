package form

import (
	"testing"

	"github.com/yanizio/folio/internal/dom"
)

const (
	msgFirstRequired = "First name is required"
	msgLastRequired  = "Last name is required"
	msgNameChars     = "Please use letters, spaces, apostrophes, or hyphens only"
	msgEmailRequired = "Email is required"
	msgEmailFormat   = "Please enter a valid email address"
	msgPassword      = "Password must be 8+ characters with at least one letter and one number"
	msgConfirmEmpty  = "Please confirm your password"
	msgMismatch      = "Passwords do not match"
)

const signupYAML = `
id: contactForm
title: Get in touch
action: /contact
submit: Send
confirm:
  field: confirmPassword
  of: password
fields:
  - name: firstName
    label: First name
    type: text
    rules:
      - rule: required
        message: First name is required
      - rule: nameCharacters
        message: Please use letters, spaces, apostrophes, or hyphens only
  - name: lastName
    label: Last name
    type: text
    rules:
      - rule: required
        message: Last name is required
      - rule: nameCharacters
        message: Please use letters, spaces, apostrophes, or hyphens only
  - name: email
    label: Email
    type: email
    rules:
      - rule: required
        message: Email is required
      - rule: emailFormat
        message: Please enter a valid email address
  - name: password
    label: Password
    type: password
    rules:
      - rule: passwordStrength
        message: Password must be 8+ characters with at least one letter and one number
  - name: confirmPassword
    label: Confirm password
    type: password
    rules:
      - rule: required
        message: Please confirm your password
      - rule: passwordStrength
        message: Password must be 8+ characters with at least one letter and one number
      - rule: passwordsMatch
        against: password
        message: Passwords do not match
`

func signupDef(t *testing.T) *FormDef {
	t.Helper()
	fd, err := ParseFormDef([]byte(signupYAML), "signup.yaml")
	if err != nil {
		t.Fatalf("ParseFormDef: %v", err)
	}
	return fd
}

// fixture is a page plus a controller bound to it.
type fixture struct {
	doc      *dom.Document
	c        *Controller
	accepted []Result
}

func newFixture(t *testing.T, values map[string]string) *fixture {
	t.Helper()
	fd := signupDef(t)
	specs, err := Specs(fd)
	if err != nil {
		t.Fatalf("Specs: %v", err)
	}

	fx := &fixture{doc: dom.New()}
	for _, f := range fd.Fields {
		fx.doc.AddInput(f.Name, values[f.Name])
		fx.doc.AddText(ErrorID(f.Name), "")
	}
	fx.c = Initialize(Bind(fx.doc), specs,
		WithName(fd.ID),
		WithConfirmation("confirmPassword", "password"),
		WithAcceptor(AcceptFunc(func(r Result) { fx.accepted = append(fx.accepted, r) })),
	)
	return fx
}

func (fx *fixture) el(t *testing.T, id string) *dom.Element {
	t.Helper()
	el, ok := fx.doc.Element(id)
	if !ok {
		t.Fatalf("no element %q", id)
	}
	return el
}

func (fx *fixture) msg(t *testing.T, id string) string {
	t.Helper()
	txt, ok := fx.doc.Text(ErrorID(id))
	if !ok {
		t.Fatalf("no error slot for %q", id)
	}
	return txt.Text()
}

func validValues() map[string]string {
	return map[string]string{
		"firstName":       "Jo",
		"lastName":        "Smith",
		"email":           "jo@x.com",
		"password":        "abcd1234",
		"confirmPassword": "abcd1234",
	}
}
