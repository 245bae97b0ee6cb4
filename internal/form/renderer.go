// internal/form/renderer.go
//
// Folio – Forms subsystem: HTML renderer.
//
// Context
//   Given a parsed FormDef this file converts the definition into plain,
//   accessible HTML.  The markup carries exactly the hooks the controller
//   works with: each input has id="{name}", an error slot with
//   id="{name}Error", and aria-invalid when the field failed.  The field
//   chosen by the focus policy gets autofocus, so a re-rendered page lands
//   the cursor where the controller put it.
//
// Workflow
//   •  RenderForm writes a <form novalidate> wrapper, each field via
//      writeField, the CSRF hidden input, and the submit button.
//   •  Password values are never written back into the markup.
//   •  The caller receives template.HTML so the surrounding template does
//      not double-escape the markup.
//
// Style
//   Output HTML is deliberately plain, no framework classes, so the theme
//   styles via element selectors or the form-field/error class hooks.
//
//------------------------------------------------------------------------------

package form

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
)

// View is the per-render state of a form.
type View struct {
	Values map[string]string // Prefill by field name.
	Errors map[string]string // Displayed messages by field name.
	Focus  string            // Field receiving autofocus, optional.
	CSRF   string            // Token for the hidden csrf_token input.
}

// ViewOf converts a replay Outcome into a View for re-rendering.
func ViewOf(o Outcome, csrf string) View {
	v := View{
		Values: make(map[string]string, len(o.Fields)),
		Errors: o.Errors(),
		Focus:  o.Focus,
		CSRF:   csrf,
	}
	for _, f := range o.Fields {
		v.Values[f.ID] = f.Value
	}
	return v
}

// RenderForm returns the HTML markup for fd.
func RenderForm(fd *FormDef, v View) (template.HTML, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, `<form id="%s" class="folio-form" method="post" action="%s" novalidate>`+"\n",
		html.EscapeString(fd.ID), html.EscapeString(fd.Action))
	if fd.Title != "" {
		buf.WriteString(`<h2>` + html.EscapeString(fd.Title) + `</h2>` + "\n")
	}

	// Iterate fields in definition order.
	for i := range fd.Fields {
		if err := writeField(&buf, &fd.Fields[i], v); err != nil {
			return "", err
		}
	}

	if v.CSRF != "" {
		fmt.Fprintf(&buf, `<input type="hidden" name="%s" value="%s">`+"\n", CSRFField, html.EscapeString(v.CSRF))
	}

	label := fd.Submit
	if label == "" {
		label = "Submit"
	}
	buf.WriteString(`<button type="submit">` + html.EscapeString(label) + `</button>` + "\n")
	buf.WriteString(`</form>`)
	return template.HTML(buf.String()), nil
}

// writeField emits HTML for one field, wrapped in <div class="form-field">.
func writeField(buf *bytes.Buffer, f *FieldDef, v View) error {
	name := html.EscapeString(f.Name)
	errID := html.EscapeString(ErrorID(f.Name))
	msg := v.Errors[f.Name]
	val := v.Values[f.Name]

	buf.WriteString(`<div class="form-field">` + "\n")
	buf.WriteString(`<label for="` + name + `">` + html.EscapeString(f.Label) + `</label>` + "\n")

	attrs := `id="` + name + `" name="` + name + `" aria-describedby="` + errID + `"`
	if f.Placeholder != "" {
		attrs += ` placeholder="` + html.EscapeString(f.Placeholder) + `"`
	}
	if f.Autocomplete != "" {
		attrs += ` autocomplete="` + html.EscapeString(f.Autocomplete) + `"`
	}
	if msg != "" {
		attrs += ` aria-invalid="true"`
	}
	if v.Focus == f.Name {
		attrs += ` autofocus`
	}

	switch f.Type {
	case "text", "email", "password", "tel":
		buf.WriteString(`<input type="` + f.Type + `" ` + attrs)
		// password fields are not prefilled.
		if val != "" && f.Type != "password" {
			buf.WriteString(` value="` + html.EscapeString(val) + `"`)
		}
		buf.WriteString(`>` + "\n")

	case "textarea":
		buf.WriteString(`<textarea ` + attrs + `>` + html.EscapeString(val) + `</textarea>` + "\n")

	default:
		return fmt.Errorf("writeField: unsupported field type %q in form field %s", f.Type, f.Name)
	}

	buf.WriteString(`<span id="` + errID + `" class="error" aria-live="polite">` + html.EscapeString(msg) + `</span>` + "\n")
	buf.WriteString(`</div>` + "\n")
	return nil
}
