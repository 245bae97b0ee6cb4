// components/projects/projects.go
//
// Projects component: the portfolio list and its admin forms.
//
// Routes
//
//	GET  /projects              list, newest first
//	GET  /add_project           empty add form
//	POST /add_project           validate, insert, 303 to /projects
//	POST /delete_project/{id}   delete, 303 to /projects
//
// Every POST carries a CSRF token.  Validation uses the struct tags on
// project.Project; a rejected add re-renders with status 422.
package projects

import (
	"embed"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	playground "github.com/go-playground/validator/v10"

	"github.com/yanizio/folio/internal/component"
	"github.com/yanizio/folio/internal/form"
	"github.com/yanizio/folio/internal/logger"
	"github.com/yanizio/folio/internal/metrics"
	"github.com/yanizio/folio/internal/project"
	"github.com/yanizio/folio/internal/validator"
	"github.com/yanizio/folio/internal/view"
)

//go:embed templates
var templates embed.FS

const formName = "add_project"

var _ component.Component = (*Comp)(nil)

// Comp serves the projects pages.
type Comp struct {
	repo  *project.Repository
	pages *view.Set
	csrf  *form.CSRF
	v     *playground.Validate
}

func init() { component.Register(&Comp{}) }

func (c *Comp) Name() string         { return "projects" }
func (c *Comp) Migrations() []string { return []string{project.Schema} }

// Init wires the repository, templates, CSRF, and validator.
func (c *Comp) Init(deps component.Deps) error {
	if deps.DB == nil {
		return errors.New("projects: database required")
	}
	pages, err := deps.View.Component(c.Name(), templates)
	if err != nil {
		return err
	}
	c.repo = project.NewRepository(deps.DB)
	c.pages = pages
	c.csrf = deps.CSRF
	c.v = validator.New()
	c.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return nil
}

func (c *Comp) Routes(r chi.Router) {
	r.Get("/projects", c.list)
	r.Get("/add_project", c.showAdd)
	r.Post("/add_project", c.add)
	r.Post("/delete_project/{id}", c.remove)
}

/*──────────────────────────── handlers ─────────────────────────────────────*/

type listData struct {
	Projects []project.Project
}

func (c *Comp) list(w http.ResponseWriter, r *http.Request) {
	ps, err := c.repo.All(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Errorw("list projects", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	c.render(w, r, http.StatusOK, "projects", "Projects", listData{Projects: ps})
}

type addData struct {
	Project project.Project
	Errors  map[string]string
}

func (c *Comp) showAdd(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "add_project", "Add project", addData{})
}

func (c *Comp) add(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	if !c.verify(w, r) {
		return
	}

	p := project.Project{
		Title:         strings.TrimSpace(r.PostFormValue("title")),
		Description:   strings.TrimSpace(r.PostFormValue("description")),
		ImageFilename: strings.TrimSpace(r.PostFormValue("image_filename")),
	}
	if errs := c.check(p); len(errs) > 0 {
		metrics.FormSubmissions.WithLabelValues(formName, metrics.OutcomeRejected).Inc()
		for f := range errs {
			metrics.FieldInvalid.WithLabelValues(formName, f).Inc()
		}
		log.Debugw("project rejected", "form", formName, "invalid", errs)
		c.render(w, r, http.StatusUnprocessableEntity, "add_project", "Add project", addData{Project: p, Errors: errs})
		return
	}

	id, err := c.repo.Insert(r.Context(), p)
	if err != nil {
		log.Errorw("insert project", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	metrics.FormSubmissions.WithLabelValues(formName, metrics.OutcomeAccepted).Inc()
	log.Infow("project added", "id", id, "title", p.Title)
	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

func (c *Comp) remove(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	if !c.verify(w, r) {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}

	switch err := c.repo.Delete(r.Context(), id); {
	case errors.Is(err, project.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		log.Errorw("delete project", "id", id, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	log.Infow("project deleted", "id", id)
	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// verify checks the CSRF token and writes 403 when it fails.
func (c *Comp) verify(w http.ResponseWriter, r *http.Request) bool {
	if c.csrf.Verify(r.PostFormValue(form.CSRFField)) {
		return true
	}
	metrics.FormSubmissions.WithLabelValues(formName, metrics.OutcomeForged).Inc()
	logger.FromContext(r.Context()).Warnw("csrf check failed", "path", r.URL.Path)
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	return false
}

var labels = map[string]string{
	"title":          "Title",
	"description":    "Description",
	"image_filename": "Image filename",
}

// check validates p and returns messages keyed by form field.
func (c *Comp) check(p project.Project) map[string]string {
	err := c.v.Struct(p)
	if err == nil {
		return nil
	}
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		label := labels[fe.Field()]
		switch fe.Tag() {
		case "max":
			out[fe.Field()] = label + " must be at most " + fe.Param() + " characters"
		default:
			out[fe.Field()] = label + " is required"
		}
	}
	return out
}

func (c *Comp) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	p := c.pages.NewPage(r, title, data)
	tok, err := c.csrf.Issue()
	if err != nil {
		logger.FromContext(r.Context()).Errorw("issue csrf token", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	p.CSRF = tok
	c.pages.Render(w, r, status, name, p)
}
