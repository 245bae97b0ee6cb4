// components/site/site.go
//
// Site component: the static portfolio pages and the theme's assets.
//
// Routes
//
//	GET /          home
//	GET /about     about
//	GET /resume    resume
//	GET /thankyou  contact confirmation
//	GET /assets/*  theme assets
//	anything else  home with 404
package site

import (
	"embed"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/folio/internal/component"
	"github.com/yanizio/folio/internal/theme"
	"github.com/yanizio/folio/internal/view"
)

//go:embed templates
var templates embed.FS

var _ component.Component = (*Comp)(nil)

// Comp serves the static pages.
type Comp struct {
	pages  *view.Set
	assets http.Handler
}

func init() { component.Register(&Comp{}) }

func (c *Comp) Name() string         { return "site" }
func (c *Comp) Migrations() []string { return nil }

// Init parses the page templates.
func (c *Comp) Init(deps component.Deps) error {
	pages, err := deps.View.Component(c.Name(), templates)
	if err != nil {
		return err
	}
	c.pages = pages
	c.assets = http.StripPrefix(theme.AssetPrefix, http.FileServer(http.FS(deps.View.Theme().Assets)))
	return nil
}

func (c *Comp) Routes(r chi.Router) {
	r.Get("/", c.page("home", "", http.StatusOK))
	r.Get("/about", c.page("about", "About", http.StatusOK))
	r.Get("/resume", c.page("resume", "Resume", http.StatusOK))
	r.Get("/thankyou", c.page("thankyou", "Thank you", http.StatusOK))
	r.Handle(theme.AssetPrefix+"*", c.assets)
	r.NotFound(c.page("home", "Not found", http.StatusNotFound))
}

// page returns a handler rendering name with title and status.
func (c *Comp) page(name, title string, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.pages.Render(w, r, status, name, c.pages.NewPage(r, title, nil))
	}
}
