package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/yanizio/folio/internal/config"
	"github.com/yanizio/folio/internal/theme"
)

func newSet(t *testing.T) *Set {
	t.Helper()
	th, err := theme.Default()
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	r := New(th, config.Site{Title: "Folio", Owner: "Jo Smith", ConfirmPath: "/thankyou"})
	r.now = func() time.Time { return time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC) }

	s, err := r.Component("demo", fstest.MapFS{
		"templates/hello.html": {Data: []byte(`{{define "content"}}<h1>Hi {{.Data}}</h1>{{end}}`)},
		"templates/bye.html":   {Data: []byte(`{{define "content"}}<h1>Bye</h1>{{end}}`)},
	})
	if err != nil {
		t.Fatalf("Component: %v", err)
	}
	return s
}

func TestRender(t *testing.T) {
	s := newSet(t)
	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	rec := httptest.NewRecorder()

	s.Render(rec, req, http.StatusTeapot, "hello", s.NewPage(req, "About", "<you>"))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<title>About | Folio</title>",
		"<h1>Hi &lt;you&gt;</h1>",
		"&copy; 2031 Jo Smith",
		`aria-current="page"`,
		`href="/assets/css/site.css"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body lacks %s", want)
		}
	}
}

func TestRender_PagesDoNotCollide(t *testing.T) {
	s := newSet(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	out, err := s.RenderToString("bye", s.NewPage(req, "", nil))
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	if !strings.Contains(string(out), "<h1>Bye</h1>") || strings.Contains(string(out), "Hi") {
		t.Fatal("wrong content block rendered")
	}
}

func TestRender_UnknownPage(t *testing.T) {
	s := newSet(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Render(rec, req, http.StatusOK, "nope", s.NewPage(req, "", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
