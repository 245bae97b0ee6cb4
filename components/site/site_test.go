package site

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/folio/internal/component"
	"github.com/yanizio/folio/internal/config"
	"github.com/yanizio/folio/internal/theme"
	"github.com/yanizio/folio/internal/view"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	th, err := theme.Default()
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	deps := component.Deps{View: view.New(th, config.Site{Title: "Folio", Owner: "Jo Smith", ConfirmPath: "/thankyou"})}
	r := chi.NewRouter()
	if err := component.Mount(r, deps, []component.Component{&Comp{}}); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return r
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPages(t *testing.T) {
	h := newRouter(t)
	cases := map[string]string{
		"/":         "<title>Folio</title>",
		"/about":    "<title>About | Folio</title>",
		"/resume":   `id="experience"`,
		"/thankyou": "Thank you",
	}
	for path, want := range cases {
		rec := get(h, path)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
			continue
		}
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("%s body lacks %q", path, want)
		}
		if !strings.Contains(rec.Body.String(), "Jo Smith") {
			t.Errorf("%s lacks owner", path)
		}
	}
}

func TestNotFoundRendersHome(t *testing.T) {
	rec := get(newRouter(t), "/no/such/page")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `class="hero"`) {
		t.Fatal("404 did not render the home page")
	}
}

func TestAssets(t *testing.T) {
	rec := get(newRouter(t), "/assets/css/site.css")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "--transition-duration") {
		t.Fatalf("asset status = %d", rec.Code)
	}
}

func TestContactScriptServed(t *testing.T) {
	rec := get(newRouter(t), "/assets/js/contact.js")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "data-form-events") {
		t.Fatalf("script status = %d", rec.Code)
	}
}

func TestNavToggleWithoutScript(t *testing.T) {
	rec := get(newRouter(t), "/about?nav=closed")
	body := rec.Body.String()
	if !strings.Contains(body, `aria-expanded="false"`) || !strings.Contains(body, `href="/about?nav=open"`) {
		t.Fatal("closed nav not reflected in markup")
	}
}
