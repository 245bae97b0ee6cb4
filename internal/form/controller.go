// internal/form/controller.go
//
// Folio – Forms subsystem: field controller and submission gate.
//
// Context
//   A Controller owns the tracked fields of one page.  It judges a field
//   when it loses focus, clears stale confirmation errors when the password
//   changes, and on submit judges every field in declared order, focuses
//   the first invalid one, and either hands control to the Acceptor or
//   leaves the annotations in place.
//
//   Handlers run to completion and never block.  A Controller belongs to a
//   single page and is not safe for use from several goroutines at once.
//
// Cross-field transitions
//   •  clearStaleConfirmation – editing the password resets a confirmation
//      error raised by the comparison step.  The confirmation is not judged
//      again until its own blur or the next submit.
//   •  resolvePasswordOnMatch – a confirmation blur that passes every step
//      also clears a lingering password error.
//
//------------------------------------------------------------------------------

package form

import (
	"go.uber.org/zap"
)

// tracked is the controller's record for one field.
type tracked struct {
	spec   FieldSpec
	el     Field
	out    ErrorDisplay
	status Status
	msg    string

	// failedStep is the index of the step that produced msg, or -1.
	failedStep int
	// judgedAgainst holds the comparison value seen at the last in-session
	// evaluation.  known is false for adopted annotations.
	judgedAgainst string
	known         bool
}

// Controller is created by Initialize.
type Controller struct {
	name    string
	page    Page
	fields  []*tracked
	byID    map[string]*tracked
	confirm *PairDef
	accept  Acceptor
	log     *zap.SugaredLogger
	last    *Result
}

// Option tunes a Controller.
type Option func(*Controller)

// WithName sets the form identifier used as the submit event target and in
// logs.
func WithName(name string) Option { return func(c *Controller) { c.name = name } }

// WithAcceptor installs the post-submit hand-off.
func WithAcceptor(a Acceptor) Option { return func(c *Controller) { c.accept = a } }

// WithLogger overrides the default zap.S() logger.
func WithLogger(l *zap.SugaredLogger) Option { return func(c *Controller) { c.log = l } }

// WithConfirmation names the confirmation field and the field it confirms.
func WithConfirmation(field, of string) Option {
	return func(c *Controller) { c.confirm = &PairDef{Field: field, Of: of} }
}

// Initialize binds specs to the elements of page and returns the controller.
// Fields missing from the page, or lacking an error slot, are skipped.  When
// page also implements Dispatcher the blur, input, and submit handlers are
// registered on it.  Existing annotations on the page are adopted.
func Initialize(page Page, specs []FieldSpec, opts ...Option) *Controller {
	c := &Controller{
		name: "form",
		page: page,
		byID: make(map[string]*tracked, len(specs)),
		log:  zap.S(),
	}
	for _, o := range opts {
		o(c)
	}

	for _, spec := range specs {
		el, ok := page.Field(spec.ID)
		if !ok {
			c.log.Debugw("field not on page, skipped", "form", c.name, "field", spec.ID)
			continue
		}
		out, ok := page.ErrorDisplay(spec.ID)
		if !ok {
			c.log.Debugw("field has no error slot, skipped", "form", c.name, "field", spec.ID)
			continue
		}
		t := &tracked{spec: spec, el: el, out: out, failedStep: -1}
		c.adopt(t)
		c.fields = append(c.fields, t)
		c.byID[spec.ID] = t
	}

	if d, ok := page.(Dispatcher); ok {
		c.bind(d)
	}
	return c
}

// bind registers named handlers on d.
func (c *Controller) bind(d Dispatcher) {
	for _, t := range c.fields {
		id := t.spec.ID
		d.On(id, EventBlur, func() { c.Blur(id) })
		if c.isPassword(id) {
			d.On(id, EventInput, func() { c.Input(id) })
		}
	}
	d.On(c.name, EventSubmit, func() { c.Submit() })
}

// adopt copies an annotation already present on the page into t.
func (c *Controller) adopt(t *tracked) {
	if !t.el.Invalid() {
		return
	}
	t.status = StatusInvalid
	t.msg = t.out.Text()
	for i, st := range t.spec.Steps {
		if st.Message == t.msg {
			t.failedStep = i
			break
		}
	}
}

// -----------------------------------------------------------------------------
// Event handlers
// -----------------------------------------------------------------------------

// Blur judges field id.  Unknown IDs are ignored.
func (c *Controller) Blur(id string) {
	t, ok := c.byID[id]
	if !ok {
		c.log.Debugw("blur on untracked field", "form", c.name, "field", id)
		return
	}
	valid := c.evaluate(t)
	c.log.Debugw("field evaluated", "form", c.name, "field", id, "event", EventBlur, "valid", valid)

	switch {
	case c.isConfirmation(id) && valid:
		c.resolvePasswordOnMatch()
	case c.isPassword(id):
		if c.confirmationStale(false) {
			c.clearStaleConfirmation()
		}
	}
}

// Input handles an edit of field id.  Only the confirmed password reacts.
func (c *Controller) Input(id string) {
	if _, ok := c.byID[id]; !ok {
		c.log.Debugw("input on untracked field", "form", c.name, "field", id)
		return
	}
	if c.isPassword(id) && c.confirmationStale(true) {
		c.clearStaleConfirmation()
	}
}

// Submit judges every tracked field in declared order, applies the focus
// policy, and signals the Acceptor when all fields pass.
func (c *Controller) Submit() Result {
	res := Result{Form: c.name, Valid: true, Fields: make([]FieldResult, 0, len(c.fields))}

	var target *tracked
	for _, t := range c.fields {
		ok := c.evaluate(t)
		res.Fields = append(res.Fields, FieldResult{ID: t.spec.ID, Valid: ok, Message: t.msg})
		if ok {
			continue
		}
		res.Valid = false
		if target == nil {
			target = t
		}
	}

	if target != nil {
		res.Focus = target.spec.ID
		if !target.el.Focused() {
			target.el.Focus()
		}
	}
	c.last = &res

	if !res.Valid {
		c.log.Debugw("submission blocked", "form", c.name, "invalid", res.Invalid(), "focus", res.Focus)
		return res
	}
	c.log.Infow("submission accepted", "form", c.name, "fields", len(res.Fields))
	if c.accept != nil {
		c.accept.Accept(res)
	}
	return res
}

// -----------------------------------------------------------------------------
// Read access
// -----------------------------------------------------------------------------

// State returns the controller's view of field id.
func (c *Controller) State(id string) (FieldState, bool) {
	t, ok := c.byID[id]
	if !ok {
		return FieldState{}, false
	}
	return FieldState{ID: id, Status: t.status, Message: t.msg}, true
}

// trackedIDs lists tracked field IDs in declared order.
func (c *Controller) trackedIDs() []string {
	out := make([]string, len(c.fields))
	for i, t := range c.fields {
		out[i] = t.spec.ID
	}
	return out
}

// Last returns the Result of the most recent Submit.
func (c *Controller) Last() (Result, bool) {
	if c.last == nil {
		return Result{}, false
	}
	return *c.last, true
}

// -----------------------------------------------------------------------------
// Evaluation
// -----------------------------------------------------------------------------

// evaluate runs t's steps in order and annotates the page.  It reports
// whether the field is valid.
func (c *Controller) evaluate(t *tracked) bool {
	value := t.el.Value()
	if c.isConfirmation(t.spec.ID) {
		t.judgedAgainst, _ = c.peer(c.confirm.Of)
		t.known = true
	}
	for i, st := range t.spec.Steps {
		if !st.passes(value, c.peer) {
			c.markInvalid(t, i)
			return false
		}
	}
	c.markValid(t)
	return true
}

// peer reads another field's current value straight from the page, so a
// comparison works even when that field is not tracked.
func (c *Controller) peer(id string) (string, bool) {
	el, ok := c.page.Field(id)
	if !ok {
		return "", false
	}
	return el.Value(), true
}

func (c *Controller) markInvalid(t *tracked, step int) {
	t.status = StatusInvalid
	t.failedStep = step
	t.msg = t.spec.Steps[step].Message
	t.el.SetInvalid(true)
	t.out.SetText(t.msg)
}

func (c *Controller) markValid(t *tracked) {
	t.status = StatusValid
	t.failedStep = -1
	t.msg = ""
	t.el.SetInvalid(false)
	t.out.SetText("")
}

// reset clears t's annotation without judging it.
func (c *Controller) reset(t *tracked) {
	t.status = StatusPending
	t.failedStep = -1
	t.msg = ""
	t.known = false
	t.el.SetInvalid(false)
	t.out.SetText("")
}

// -----------------------------------------------------------------------------
// Cross-field transitions
// -----------------------------------------------------------------------------

func (c *Controller) isPassword(id string) bool {
	return c.confirm != nil && c.confirm.Of == id
}

func (c *Controller) isConfirmation(id string) bool {
	return c.confirm != nil && c.confirm.Field == id
}

// confirmationStale reports whether the confirmation shows a comparison
// error whose reference value no longer holds.  edited is true for input
// events, which always change the reference.
func (c *Controller) confirmationStale(edited bool) bool {
	if c.confirm == nil {
		return false
	}
	t, ok := c.byID[c.confirm.Field]
	if !ok || t.status != StatusInvalid || t.el.Value() == "" {
		return false
	}
	if t.failedStep < 0 || !t.spec.Steps[t.failedStep].comparative() {
		return false
	}
	if edited {
		return true
	}
	current, _ := c.peer(c.confirm.Of)
	return t.known && current != t.judgedAgainst
}

func (c *Controller) clearStaleConfirmation() {
	t := c.byID[c.confirm.Field]
	c.reset(t)
	c.log.Debugw("stale confirmation cleared", "form", c.name, "field", t.spec.ID)
}

func (c *Controller) resolvePasswordOnMatch() {
	t, ok := c.byID[c.confirm.Of]
	if !ok || t.status == StatusValid {
		return
	}
	c.markValid(t)
	c.log.Debugw("password error resolved by confirmation", "form", c.name, "field", t.spec.ID)
}
