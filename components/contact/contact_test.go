package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/folio/internal/component"
	"github.com/yanizio/folio/internal/config"
	"github.com/yanizio/folio/internal/form"
	"github.com/yanizio/folio/internal/message"
	"github.com/yanizio/folio/internal/theme"
	"github.com/yanizio/folio/internal/view"
)

type harness struct {
	h      http.Handler
	csrf   *form.CSRF
	outbox *recordingOutbox
}

type recordingOutbox struct{ sent []message.Email }

func (o *recordingOutbox) EnqueueEmail(_ context.Context, msg message.Email) error {
	o.sent = append(o.sent, msg)
	return nil
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	th, err := theme.Default()
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	csrf, err := form.NewCSRF(bytes.Repeat([]byte("k"), 32), time.Hour)
	if err != nil {
		t.Fatalf("csrf: %v", err)
	}
	cfg := &config.Config{Site: config.Site{
		Title:       "Folio",
		Owner:       "Jo Smith",
		ConfirmPath: "/thankyou",
		NotifyEmail: "owner@example.com",
	}}
	outbox := &recordingOutbox{}
	deps := component.Deps{Config: cfg, View: view.New(th, cfg.Site), CSRF: csrf, Outbox: outbox}

	r := chi.NewRouter()
	if err := component.Mount(r, deps, []component.Component{&Comp{}}); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return &harness{h: r, csrf: csrf, outbox: outbox}
}

func (hs *harness) postForm(t *testing.T, vals url.Values) *httptest.ResponseRecorder {
	t.Helper()
	tok, _ := hs.csrf.Issue()
	vals.Set(form.CSRFField, tok)
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	hs.h.ServeHTTP(rec, req)
	return rec
}

// postEvents sends body as JSON, adding a fresh csrf token unless body
// already names one.
func (hs *harness) postEvents(t *testing.T, body map[string]any) (*httptest.ResponseRecorder, eventResponse) {
	t.Helper()
	if _, ok := body["csrf"]; !ok {
		tok, _ := hs.csrf.Issue()
		body["csrf"] = tok
	}
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/contact/events", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	hs.h.ServeHTTP(rec, req)

	var resp eventResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, resp
}

func valid() url.Values {
	return url.Values{
		"firstName":       {"Jo"},
		"lastName":        {"Smith"},
		"email":           {"jo@x.com"},
		"password":        {"abcd1234"},
		"confirmPassword": {"abcd1234"},
	}
}

func TestShow(t *testing.T) {
	hs := newHarness(t)
	rec := httptest.NewRecorder()
	hs.h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contact", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`<form id="contactForm"`,
		`id="confirmPasswordError"`,
		`name="csrf_token"`,
		`<title>Contact | Folio</title>`,
		`data-form-events="/contact/events"`,
		`<script src="/assets/js/contact.js" defer></script>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body lacks %s", want)
		}
	}
}

func TestSubmit_Accepted(t *testing.T) {
	hs := newHarness(t)
	vals := valid()
	vals.Set("message", "Hello there")
	rec := hs.postForm(t, vals)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/thankyou" {
		t.Fatalf("status = %d location = %q", rec.Code, rec.Header().Get("Location"))
	}

	if len(hs.outbox.sent) != 1 {
		t.Fatalf("sent = %d emails", len(hs.outbox.sent))
	}
	msg := hs.outbox.sent[0]
	if msg.To[0] != "owner@example.com" || msg.ReplyTo != "jo@x.com" {
		t.Errorf("envelope = %+v", msg)
	}
	if !strings.Contains(msg.Text, "message: Hello there") || strings.Contains(msg.Text, "abcd1234") {
		t.Errorf("text = %q", msg.Text)
	}
}

func TestSubmit_RejectedRerenders(t *testing.T) {
	vals := valid()
	vals.Set("firstName", "")
	vals.Set("confirmPassword", "abcd9999")

	hs := newHarness(t)
	rec := hs.postForm(t, vals)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(hs.outbox.sent) != 0 {
		t.Error("rejected submission notified")
	}
	body := rec.Body.String()
	for _, want := range []string{
		"First name is required",
		"Passwords do not match",
		`id="firstName" name="firstName" aria-describedby="firstNameError" autocomplete="given-name" aria-invalid="true" autofocus`,
		`value="Smith"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body lacks %s", want)
		}
	}
	if strings.Contains(body, "abcd1234") {
		t.Error("password echoed back")
	}
}

func TestSubmit_Forged(t *testing.T) {
	hs := newHarness(t)
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(valid().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	hs.h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestEvents_Blur(t *testing.T) {
	rec, resp := newHarness(t).postEvents(t, map[string]any{
		"values": map[string]string{"email": "nope"},
		"events": []map[string]string{{"type": "blur", "target": "email"}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	v, ok := resp.View("email")
	if !ok || !v.Invalid || v.Message != "Please enter a valid email address" {
		t.Fatalf("email = %+v", v)
	}
	if resp.Accepted || resp.Redirect != "" {
		t.Fatal("blur reported acceptance")
	}
	if strings.Contains(rec.Body.String(), `"value"`) {
		t.Fatal("field values echoed in response")
	}
}

func TestEvents_StaleMismatchCleared(t *testing.T) {
	rec, resp := newHarness(t).postEvents(t, map[string]any{
		"values":  map[string]string{"password": "abcd9999", "confirmPassword": "abcd9999"},
		"errors":  map[string]string{"confirmPassword": "Passwords do not match"},
		"focused": "password",
		"events": []map[string]string{
			{"type": "input", "target": "password"},
			{"type": "blur", "target": "password"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	v, _ := resp.View("confirmPassword")
	if v.Invalid || v.Message != "" || v.Status != "pending" {
		t.Fatalf("confirmPassword = %+v", v)
	}
}

func TestEvents_SubmitAccepted(t *testing.T) {
	hs := newHarness(t)
	_, resp := hs.postEvents(t, map[string]any{
		"values": validEventValues(),
		"events": []map[string]string{{"type": "submit", "target": FormID}},
	})
	if !resp.Accepted || resp.Redirect != "/thankyou" {
		t.Fatalf("resp = %+v", resp)
	}
	if len(hs.outbox.sent) != 1 {
		t.Fatalf("sent = %d emails", len(hs.outbox.sent))
	}
}

func TestEvents_SubmitRejectedFocus(t *testing.T) {
	_, resp := newHarness(t).postEvents(t, map[string]any{
		"values": map[string]string{"firstName": "Jo"},
		"events": []map[string]string{{"type": "submit", "target": FormID}},
	})
	if resp.Accepted || resp.Focus != "lastName" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestEvents_BadRequests(t *testing.T) {
	hs := newHarness(t)
	many := make([]map[string]string, maxEvents+1)
	for i := range many {
		many[i] = map[string]string{"type": "blur", "target": "email"}
	}
	cases := map[string]map[string]any{
		"unknown type":  map[string]any{"events": []map[string]string{{"type": "click", "target": "email"}}},
		"unknown field": map[string]any{"bogus": true},
		"too many":      map[string]any{"events": many},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec, _ := hs.postEvents(t, body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
		})
	}
}

func validEventValues() map[string]string {
	vals := map[string]string{}
	for k, v := range valid() {
		vals[k] = v[0]
	}
	return vals
}

func TestEvents_RepeatedSubmitsNotifyOnce(t *testing.T) {
	hs := newHarness(t)
	events := make([]map[string]string, maxEvents)
	for i := range events {
		events[i] = map[string]string{"type": "submit", "target": FormID}
	}
	rec, resp := hs.postEvents(t, map[string]any{"values": validEventValues(), "events": events})
	if rec.Code != http.StatusOK || !resp.Accepted {
		t.Fatalf("status = %d accepted = %v", rec.Code, resp.Accepted)
	}
	if len(hs.outbox.sent) != 1 {
		t.Fatalf("sent = %d emails", len(hs.outbox.sent))
	}
}

func TestEvents_RequiresCSRF(t *testing.T) {
	hs := newHarness(t)
	for name, tok := range map[string]string{"missing": "", "forged": "not-a-token"} {
		t.Run(name, func(t *testing.T) {
			rec, _ := hs.postEvents(t, map[string]any{
				"csrf":   tok,
				"values": validEventValues(),
				"events": []map[string]string{{"type": "submit", "target": FormID}},
			})
			if rec.Code != http.StatusForbidden {
				t.Fatalf("status = %d", rec.Code)
			}
		})
	}
	if len(hs.outbox.sent) != 0 {
		t.Fatalf("sent = %d emails", len(hs.outbox.sent))
	}
}

// A cross-site text/plain form can spell a JSON body as name=value.
func TestEvents_RejectsTextPlainBody(t *testing.T) {
	hs := newHarness(t)
	tok, _ := hs.csrf.Issue()
	body := `{"csrf":"` + tok + `","values":{"firstName":"Jo","lastName":"Smith","email":"jo@x.com",` +
		`"password":"abcd1234","confirmPassword":"abcd1234"},` +
		`"events":[{"type":"submit","target":"contactForm"}],"errors":{"x":"` + `=` + `"}}`

	for _, ct := range []string{"text/plain", "", "application/x-www-form-urlencoded"} {
		req := httptest.NewRequest(http.MethodPost, "/contact/events", strings.NewReader(body))
		if ct != "" {
			req.Header.Set("Content-Type", ct)
		}
		rec := httptest.NewRecorder()
		hs.h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnsupportedMediaType {
			t.Errorf("Content-Type %q: status = %d", ct, rec.Code)
		}
	}
	if len(hs.outbox.sent) != 0 {
		t.Fatalf("sent = %d emails", len(hs.outbox.sent))
	}
}

func TestEvents_JSONWithCharset(t *testing.T) {
	hs := newHarness(t)
	tok, _ := hs.csrf.Issue()
	body := `{"csrf":"` + tok + `","values":{"email":"nope"},"events":[{"type":"blur","target":"email"}]}`
	req := httptest.NewRequest(http.MethodPost, "/contact/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()
	hs.h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}
