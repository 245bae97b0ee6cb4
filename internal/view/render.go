// internal/view/render.go
//
// View engine: per-page template sets built on the theme layout.
//
// Context
// -------
// Each component embeds its own templates/*.html.  Every file defines a
// "content" block; Component clones the theme's base set once per file
// and parses the file into the clone, so pages can share block names
// without colliding.  Sets are built once at component Init.
//
// Public helpers
// --------------
//   - Renderer.Component – parse a component's pages.
//   - Set.Render         – write a full page with the given status code.
//   - Set.RenderToString – return template.HTML, for tests and fragments.
//
// Data
// ----
// Templates receive a *Page: Head, Chrome, Info, Site, CSRF, and Data.

package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/yanizio/folio/internal/config"
	"github.com/yanizio/folio/internal/head"
	"github.com/yanizio/folio/internal/logger"
	"github.com/yanizio/folio/internal/page"
	"github.com/yanizio/folio/internal/requestinfo"
	"github.com/yanizio/folio/internal/theme"
)

// Page is the data every template receives.
type Page struct {
	Head   *head.Builder
	Chrome page.Chrome
	Info   *requestinfo.RequestInfo
	Site   config.Site
	CSRF   string
	Data   any
}

// Renderer builds component sets on a theme.
type Renderer struct {
	theme *theme.Theme
	site  config.Site
	now   func() time.Time
}

// New returns a Renderer for th and the site section of the config.
func New(th *theme.Theme, site config.Site) *Renderer {
	return &Renderer{theme: th, site: site, now: time.Now}
}

// Theme returns the theme the renderer draws on.
func (r *Renderer) Theme() *theme.Theme { return r.theme }

// Set holds one component's parsed pages.
type Set struct {
	r     *Renderer
	comp  string
	pages map[string]*template.Template
}

// Component parses every templates/*.html file in fsys.  The page name is
// the file name without extension.
func (r *Renderer) Component(comp string, fsys fs.FS) (*Set, error) {
	files, err := theme.CollectHTML(fsys, "templates")
	if err != nil {
		return nil, fmt.Errorf("component %s templates: %w", comp, err)
	}
	s := &Set{r: r, comp: comp, pages: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		t, err := r.theme.Base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(fsys, f); err != nil {
			return nil, fmt.Errorf("component %s parse %s: %w", comp, f, err)
		}
		s.pages[strings.TrimSuffix(path.Base(f), path.Ext(f))] = t
	}
	return s, nil
}

// NewPage builds the template data for req.
func (s *Set) NewPage(req *http.Request, title string, data any) *Page {
	h := head.New(s.r.site.Title)
	h.SetTitle(title)
	return &Page{
		Head:   h,
		Chrome: page.FromRequest(req, s.r.now()),
		Info:   requestinfo.FromContext(req.Context()),
		Site:   s.r.site,
		Data:   data,
	}
}

// Render executes page name with p and writes it with status.  The page
// is rendered to a buffer first so a template error never leaves a
// half-written response.
func (s *Set) Render(w http.ResponseWriter, req *http.Request, status int, name string, p *Page) {
	html, err := s.RenderToString(name, p)
	if err != nil {
		logger.FromContext(req.Context()).Errorw("render failed", "component", s.comp, "page", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(html))
}

// RenderToString executes page name and returns the markup.
func (s *Set) RenderToString(name string, p *Page) (template.HTML, error) {
	t, ok := s.pages[name]
	if !ok {
		return "", fmt.Errorf("component %s has no page %q", s.comp, name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
