package dom

import "testing"

func TestDispatchRunsListenersInOrder(t *testing.T) {
	d := New()
	d.AddInput("email", "")

	var got []int
	d.AddEventListener("email", "blur", func() { got = append(got, 1) })
	d.AddEventListener("email", "blur", func() { got = append(got, 2) })
	d.AddEventListener("email", "input", func() { got = append(got, 9) })

	if n := d.Dispatch("email", "blur"); n != 2 {
		t.Fatalf("Dispatch ran %d listeners, want 2", n)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("listener order = %v", got)
	}
	if n := d.Dispatch("missing", "blur"); n != 0 {
		t.Fatalf("Dispatch on unknown target ran %d listeners", n)
	}
}

func TestFocusAndInvalidMarker(t *testing.T) {
	d := New()
	a := d.AddInput("a", "x")
	b := d.AddInput("b", "y")

	if d.ActiveElement() != nil {
		t.Fatal("new document has an active element")
	}
	a.Focus()
	if !a.Focused() || b.Focused() {
		t.Fatal("focus not tracked")
	}
	b.Focus()
	if a.Focused() || d.ActiveElement() != b {
		t.Fatal("focus did not move")
	}

	a.SetInvalid(true)
	if v, ok := a.Attribute(AttrInvalid); !ok || v != "true" || !a.Invalid() {
		t.Fatalf("aria-invalid = %q, %v", v, ok)
	}
	a.SetInvalid(false)
	if _, ok := a.Attribute(AttrInvalid); ok || a.Invalid() {
		t.Fatal("aria-invalid not removed")
	}
}

func TestInputsKeepInsertionOrder(t *testing.T) {
	d := New()
	d.AddInput("first", "")
	d.AddInput("second", "")
	d.AddInput("first", "replaced")

	in := d.Inputs()
	if len(in) != 2 || in[0].ID() != "first" || in[1].ID() != "second" {
		t.Fatalf("Inputs order wrong: %v", in)
	}
	if in[0].Value() != "replaced" {
		t.Fatalf("replaced input kept old value %q", in[0].Value())
	}
}
