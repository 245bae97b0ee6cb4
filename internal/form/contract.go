// internal/form/contract.go
//
// Folio – Forms subsystem: page contracts consumed by the controller.
//
// Context
//   The controller never touches HTML, HTTP, or a browser.  It sees the page
//   through the small interfaces below: an input it can read, mark, and
//   focus, a slot that shows an error message, and (optionally) a dispatcher
//   that calls named handlers when events fire.  internal/dom provides the
//   in-memory implementation Folio uses; tests may supply their own.
//
//------------------------------------------------------------------------------

package form

// Event names understood by the controller.
type Event string

const (
	EventBlur   Event = "blur"
	EventInput  Event = "input"
	EventSubmit Event = "submit"
)

// Field is one input element on the page.
type Field interface {
	Value() string
	SetValue(string)
	// SetInvalid sets or clears the invalid marker (aria-invalid).
	SetInvalid(bool)
	Invalid() bool
	Focus()
	Focused() bool
}

// ErrorDisplay is the message slot paired with a Field.  An empty string
// clears it.
type ErrorDisplay interface {
	SetText(string)
	Text() string
}

// Page resolves elements by identifier.  The boolean is false when the page
// has no such element.
type Page interface {
	Field(id string) (Field, bool)
	ErrorDisplay(fieldID string) (ErrorDisplay, bool)
}

// Dispatcher is implemented by pages that deliver events.  Initialize wires
// the controller's handlers through it when present.
type Dispatcher interface {
	On(target string, ev Event, handler func())
}

// Acceptor receives control after a submit in which every field is valid.
type Acceptor interface {
	Accept(Result)
}

// AcceptFunc adapts a plain function to Acceptor.
type AcceptFunc func(Result)

// Accept implements Acceptor.
func (f AcceptFunc) Accept(r Result) { f(r) }
