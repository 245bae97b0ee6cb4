// internal/form/replay.go
//
// Folio – Forms subsystem: replaying browser events into the page model.
//
// Context
//   Folio has no script of its own in the browser.  Instead the browser
//   reports what the user did: the current field values, the messages it is
//   showing, which field holds focus, and the events that fired since the
//   last exchange.  Replay rebuilds that page as a dom.Document, initialises
//   a Controller on it, dispatches the events in order, and reads the page
//   back.  A plain POST of the form is the same thing with one submit event.
//
// Workflow
//   1.  Build inputs and error slots for every FieldDef, seeded from the
//       Snapshot.
//   2.  Initialize the controller (handlers bind through the Dispatcher).
//   3.  Dispatch each EventRecord.  Unknown targets simply find no listener.
//   4.  Collect per-field views, the focused field, and the submit Result.
//
//------------------------------------------------------------------------------

package form

import (
	"github.com/yanizio/folio/internal/dom"
)

// Snapshot is the client's view of the page before the events ran.
type Snapshot struct {
	Values  map[string]string `json:"values"`
	Errors  map[string]string `json:"errors,omitempty"`
	Focused string            `json:"focused,omitempty"`
}

// EventRecord is one event to replay.  Submit events target the form ID.
type EventRecord struct {
	Type   Event  `json:"type"`
	Target string `json:"target"`
}

// FieldView is one field after replay.
type FieldView struct {
	ID      string `json:"id"`
	Value   string `json:"-"`
	Status  string `json:"status"`
	Invalid bool   `json:"invalid"`
	Message string `json:"message"`
}

// Outcome is the page after replay.
type Outcome struct {
	Form     string      `json:"form"`
	Fields   []FieldView `json:"fields"`
	Focus    string      `json:"focus,omitempty"`
	Accepted bool        `json:"accepted"`
	Result   *Result     `json:"-"`
}

// View returns the named field's view.
func (o Outcome) View(id string) (FieldView, bool) {
	for _, f := range o.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return FieldView{}, false
}

// Errors returns the displayed messages keyed by field, omitting empty ones.
func (o Outcome) Errors() map[string]string {
	out := make(map[string]string)
	for _, f := range o.Fields {
		if f.Message != "" {
			out[f.ID] = f.Message
		}
	}
	return out
}

// Replay runs events against a page built from fd and snap.  opts are
// appended after the options derived from fd, so callers may add an
// Acceptor or a request-scoped logger.  Accepted reflects the last submit
// among events, and the Acceptor runs at most once, for that submit.
func Replay(fd *FormDef, snap Snapshot, events []EventRecord, opts ...Option) (Outcome, error) {
	specs, err := Specs(fd)
	if err != nil {
		return Outcome{}, err
	}

	doc := dom.New()
	for _, f := range fd.Fields {
		el := doc.AddInput(f.Name, snap.Values[f.Name])
		msg := snap.Errors[f.Name]
		doc.AddText(ErrorID(f.Name), msg)
		if msg != "" {
			el.SetInvalid(true)
		}
	}
	if el, ok := doc.Element(snap.Focused); ok {
		el.Focus()
	}

	base := []Option{WithName(fd.ID)}
	if fd.Confirm != nil {
		base = append(base, WithConfirmation(fd.Confirm.Field, fd.Confirm.Of))
	}
	c := Initialize(Bind(doc), specs, append(base, opts...)...)
	accept := c.accept
	c.accept = nil

	for _, ev := range events {
		doc.Dispatch(ev.Target, string(ev.Type))
	}

	out := Outcome{Form: fd.ID}
	if r, ok := c.Last(); ok {
		out.Result = &r
		out.Accepted = r.Valid
		if r.Valid && accept != nil {
			accept.Accept(r)
		}
	}
	for _, f := range fd.Fields {
		el, _ := doc.Element(f.Name)
		txt, _ := doc.Text(ErrorID(f.Name))
		view := FieldView{ID: f.Name, Value: el.Value(), Invalid: el.Invalid(), Message: txt.Text()}
		if st, ok := c.State(f.Name); ok {
			view.Status = st.Status.String()
		}
		out.Fields = append(out.Fields, view)
	}
	if a := doc.ActiveElement(); a != nil {
		out.Focus = a.ID()
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// dom adapter
// -----------------------------------------------------------------------------

// DOMPage adapts a dom.Document to Page and Dispatcher.  Error slots are
// looked up as ErrorID(field).
type DOMPage struct{ doc *dom.Document }

// Bind wraps doc.
func Bind(doc *dom.Document) DOMPage { return DOMPage{doc} }

func (p DOMPage) Field(id string) (Field, bool) {
	el, ok := p.doc.Element(id)
	if !ok {
		return nil, false
	}
	return el, true
}

func (p DOMPage) ErrorDisplay(fieldID string) (ErrorDisplay, bool) {
	t, ok := p.doc.Text(ErrorID(fieldID))
	if !ok {
		return nil, false
	}
	return t, true
}

func (p DOMPage) On(target string, ev Event, handler func()) {
	p.doc.AddEventListener(target, string(ev), handler)
}
