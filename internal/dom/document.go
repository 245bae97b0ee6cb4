// internal/dom/document.go
//
// Folio – In-memory page model.
//
// Context
//   Handlers that would run in a browser run here against a tiny document:
//   input elements with a value, attributes, and focus, text slots for
//   messages, and a listener table keyed by (target, event).  Dispatch is
//   synchronous; every listener for an event runs to completion before
//   Dispatch returns, in registration order.
//
//   A Document belongs to one request.  It is not safe for concurrent use.
//
// Notes
//   •  Focus moves the active element without firing blur.  Blur events
//      only happen when a caller dispatches them.
//   •  Oxford commas, two spaces after periods.
//
//------------------------------------------------------------------------------

package dom

// AttrInvalid is the marker set on inputs that fail validation.
const AttrInvalid = "aria-invalid"

// Document holds elements by ID.
type Document struct {
	elements  map[string]*Element
	texts     map[string]*Text
	order     []string
	active    *Element
	listeners map[listenerKey][]func()
}

type listenerKey struct{ target, event string }

// New returns an empty Document.
func New() *Document {
	return &Document{
		elements:  make(map[string]*Element),
		texts:     make(map[string]*Text),
		listeners: make(map[listenerKey][]func()),
	}
}

// AddInput creates (or replaces) an input element with the given value.
func (d *Document) AddInput(id, value string) *Element {
	e := &Element{doc: d, id: id, value: value, attrs: make(map[string]string)}
	if _, exists := d.elements[id]; !exists {
		d.order = append(d.order, id)
	}
	d.elements[id] = e
	return e
}

// AddText creates (or replaces) a text slot.
func (d *Document) AddText(id, content string) *Text {
	t := &Text{id: id, content: content}
	d.texts[id] = t
	return t
}

// Element returns the input with the given ID.
func (d *Document) Element(id string) (*Element, bool) {
	e, ok := d.elements[id]
	return e, ok
}

// Text returns the text slot with the given ID.
func (d *Document) Text(id string) (*Text, bool) {
	t, ok := d.texts[id]
	return t, ok
}

// Inputs returns every input in insertion order.
func (d *Document) Inputs() []*Element {
	out := make([]*Element, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.elements[id])
	}
	return out
}

// ActiveElement returns the focused input, or nil.
func (d *Document) ActiveElement() *Element { return d.active }

// AddEventListener registers fn for event on target.  target may be any
// identifier, including one with no element (e.g. the form itself).
func (d *Document) AddEventListener(target, event string, fn func()) {
	k := listenerKey{target, event}
	d.listeners[k] = append(d.listeners[k], fn)
}

// Dispatch runs the listeners for (target, event) and reports how many ran.
func (d *Document) Dispatch(target, event string) int {
	fns := d.listeners[listenerKey{target, event}]
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// -----------------------------------------------------------------------------
// Element
// -----------------------------------------------------------------------------

// Element is an input control.
type Element struct {
	doc   *Document
	id    string
	value string
	attrs map[string]string
}

func (e *Element) ID() string               { return e.id }
func (e *Element) Value() string            { return e.value }
func (e *Element) SetValue(v string)        { e.value = v }
func (e *Element) SetAttribute(k, v string) { e.attrs[k] = v }
func (e *Element) RemoveAttribute(k string) { delete(e.attrs, k) }

// Attribute returns the attribute value and whether it is present.
func (e *Element) Attribute(k string) (string, bool) {
	v, ok := e.attrs[k]
	return v, ok
}

// SetInvalid sets aria-invalid="true", or removes it.
func (e *Element) SetInvalid(invalid bool) {
	if invalid {
		e.SetAttribute(AttrInvalid, "true")
		return
	}
	e.RemoveAttribute(AttrInvalid)
}

// Invalid reports whether aria-invalid="true" is present.
func (e *Element) Invalid() bool { return e.attrs[AttrInvalid] == "true" }

// Focus makes e the document's active element.
func (e *Element) Focus() { e.doc.active = e }

// Focused reports whether e is the active element.
func (e *Element) Focused() bool { return e.doc.active == e }

// -----------------------------------------------------------------------------
// Text
// -----------------------------------------------------------------------------

// Text is a message slot.
type Text struct {
	id      string
	content string
}

func (t *Text) ID() string       { return t.id }
func (t *Text) SetText(s string) { t.content = s }
func (t *Text) Text() string     { return t.content }
