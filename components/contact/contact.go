// components/contact/contact.go
//
// Contact component: the contact form, its submission gate, and the
// real-time event channel.
//
// Routes
//
//	GET  /contact          render the form
//	POST /contact          replay a submit; 303 to the confirm page when
//	                       accepted, 422 re-render with messages otherwise
//	POST /contact/events   replay blur/input/submit events sent as JSON and
//	                       answer with each field's state and the focus
//	                       target; the body must be application/json and
//	                       carry the form's csrf token.  An accepted submit
//	                       here counts as the submission, so the client
//	                       follows the redirect instead of posting again
//
// The form definition lives in forms/contact.yaml and is loaded into the
// form registry at Init.
package contact

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/folio/internal/component"
	"github.com/yanizio/folio/internal/form"
	"github.com/yanizio/folio/internal/logger"
	"github.com/yanizio/folio/internal/message"
	"github.com/yanizio/folio/internal/metrics"
	"github.com/yanizio/folio/internal/requestinfo"
	"github.com/yanizio/folio/internal/view"
)

//go:embed forms templates
var embedded embed.FS

// FormID is the id of forms/contact.yaml.
const FormID = "contactForm"

const (
	maxEventBody = 64 << 10
	maxEvents    = 64
)

var _ component.Component = (*Comp)(nil)

// Comp serves the contact pages.
type Comp struct {
	fd      *form.FormDef
	pages   *view.Set
	csrf    *form.CSRF
	confirm string
	notify  string
	outbox  message.Outbox
}

func init() { component.Register(&Comp{}) }

func (c *Comp) Name() string         { return "contact" }
func (c *Comp) Migrations() []string { return nil }

// Init loads the form definition and templates.
func (c *Comp) Init(deps component.Deps) error {
	if err := form.RegisterFS(embedded, "forms"); err != nil {
		return err
	}
	fd, ok := form.GetFormDef(FormID)
	if !ok {
		return fmt.Errorf("contact: %w: %s", form.ErrUnknownForm, FormID)
	}
	pages, err := deps.View.Component(c.Name(), embedded)
	if err != nil {
		return err
	}
	c.fd = fd
	c.pages = pages
	c.csrf = deps.CSRF
	c.confirm = deps.Config.Site.ConfirmPath
	c.notify = deps.Config.Site.NotifyEmail
	c.outbox = deps.Outbox
	return nil
}

func (c *Comp) Routes(r chi.Router) {
	r.Get("/contact", c.show)
	r.Post("/contact", c.submit)
	r.With(chimw.AllowContentType("application/json")).Post("/contact/events", c.events)
}

/*──────────────────────────── page handlers ────────────────────────────────*/

type pageData struct {
	Form template.HTML
}

func (c *Comp) show(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, form.View{})
}

func (c *Comp) submit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context()).With("form", c.fd.ID)

	if !c.csrf.Verify(r.PostFormValue(form.CSRFField)) {
		metrics.FormSubmissions.WithLabelValues(c.fd.ID, metrics.OutcomeForged).Inc()
		log.Warnw("csrf check failed")
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	snap := form.Snapshot{Values: make(map[string]string, len(c.fd.Fields))}
	for _, f := range c.fd.Fields {
		snap.Values[f.Name] = r.PostFormValue(f.Name)
	}

	out, err := form.Replay(c.fd, snap,
		[]form.EventRecord{{Type: form.EventSubmit, Target: c.fd.ID}},
		form.WithLogger(log),
		form.WithAcceptor(c.acceptor(r, log, snap.Values)),
	)
	if err != nil {
		log.Errorw("replay failed", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if out.Accepted {
		http.Redirect(w, r, c.confirm, http.StatusSeeOther)
		return
	}
	recordRejection(c.fd.ID, out)
	c.render(w, r, http.StatusUnprocessableEntity, form.ViewOf(out, ""))
}

// acceptor records an accepted submission and notifies the owner.  Field
// values are not logged and password fields are never mailed.
func (c *Comp) acceptor(r *http.Request, log *zap.SugaredLogger, values map[string]string) form.Acceptor {
	return form.AcceptFunc(func(res form.Result) {
		metrics.FormSubmissions.WithLabelValues(res.Form, metrics.OutcomeAccepted).Inc()
		kv := []any{"fields", len(res.Fields)}
		if info := requestinfo.FromContext(r.Context()); info != nil {
			kv = append(kv, "country", info.Geo.CountryISO, "device", info.UA.Device)
		}
		log.Infow("contact accepted", kv...)

		if c.outbox == nil || c.notify == "" {
			return
		}
		known := make(map[string]string, len(c.fd.Fields))
		for _, f := range c.fd.Fields {
			known[f.Name] = values[f.Name]
		}
		msg := message.Submission(c.notify, "New contact message", known, c.secretFields()...)
		msg.ReplyTo = known["email"]
		if err := c.outbox.EnqueueEmail(r.Context(), msg); err != nil {
			log.Warnw("contact notification failed", "err", err)
		}
	})
}

// secretFields lists the password inputs of the form.
func (c *Comp) secretFields() []string {
	var out []string
	for _, f := range c.fd.Fields {
		if f.Type == "password" {
			out = append(out, f.Name)
		}
	}
	return out
}

func (c *Comp) render(w http.ResponseWriter, r *http.Request, status int, v form.View) {
	tok, err := c.csrf.Issue()
	if err != nil {
		logger.FromContext(r.Context()).Errorw("issue csrf token", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	v.CSRF = tok
	markup, err := form.RenderForm(c.fd, v)
	if err != nil {
		logger.FromContext(r.Context()).Errorw("render form", "form", c.fd.ID, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	p := c.pages.NewPage(r, "Contact", pageData{Form: markup})
	p.CSRF = tok
	c.pages.Render(w, r, status, "contact", p)
}

/*──────────────────────────── event channel ───────────────────────────────*/

// eventRequest is the JSON body of POST /contact/events.  CSRF carries the
// token from the rendered form.
type eventRequest struct {
	form.Snapshot
	Events []form.EventRecord `json:"events"`
	CSRF   string             `json:"csrf"`
}

// eventResponse mirrors form.Outcome plus the redirect for an accepted
// submit.
type eventResponse struct {
	form.Outcome
	Redirect string `json:"redirect,omitempty"`
}

var errTooManyEvents = errors.New("too many events")

func (c *Comp) events(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context()).With("form", c.fd.ID)

	req, err := decodeEvents(w, r)
	if err != nil {
		log.Debugw("bad event request", "err", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if !c.csrf.Verify(req.CSRF) {
		metrics.FormSubmissions.WithLabelValues(c.fd.ID, metrics.OutcomeForged).Inc()
		log.Warnw("csrf check failed", "channel", "events")
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "invalid csrf token"})
		return
	}
	for _, ev := range req.Events {
		metrics.FormEvents.WithLabelValues(string(ev.Type)).Inc()
	}

	out, err := form.Replay(c.fd, req.Snapshot, req.Events,
		form.WithLogger(log),
		form.WithAcceptor(c.acceptor(r, log, req.Values)),
	)
	if err != nil {
		log.Errorw("replay failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "replay failed"})
		return
	}

	resp := eventResponse{Outcome: out}
	if out.Result != nil && !out.Accepted {
		recordRejection(c.fd.ID, out)
	}
	if out.Accepted {
		resp.Redirect = c.confirm
	}
	writeJSON(w, http.StatusOK, resp)
}

func decodeEvents(w http.ResponseWriter, r *http.Request) (eventRequest, error) {
	var req eventRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("decode: %w", err)
	}
	if len(req.Events) > maxEvents {
		return req, errTooManyEvents
	}
	for _, ev := range req.Events {
		switch ev.Type {
		case form.EventBlur, form.EventInput, form.EventSubmit:
		default:
			return req, fmt.Errorf("unknown event type %q", ev.Type)
		}
	}
	return req, nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func recordRejection(formID string, out form.Outcome) {
	metrics.FormSubmissions.WithLabelValues(formID, metrics.OutcomeRejected).Inc()
	if out.Result == nil {
		return
	}
	for _, id := range out.Result.Invalid() {
		metrics.FieldInvalid.WithLabelValues(formID, id).Inc()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
