package form

// Status is a field's validity as last judged by the controller.
type Status int

const (
	StatusPending Status = iota // not yet evaluated, or reset by a transition
	StatusValid
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	default:
		return "pending"
	}
}

// FieldState is the controller's view of one tracked field.
type FieldState struct {
	ID      string
	Status  Status
	Message string
}

// FieldResult is one entry of a submit-time Result.
type FieldResult struct {
	ID      string
	Valid   bool
	Message string
}

// Result aggregates one submit attempt.  Fields follow declared order and
// Valid is true iff every entry is valid.  Focus names the first invalid
// field, or is empty.
type Result struct {
	Form   string
	Fields []FieldResult
	Valid  bool
	Focus  string
}

// Invalid returns the identifiers of invalid fields in declared order.
func (r Result) Invalid() []string {
	var out []string
	for _, f := range r.Fields {
		if !f.Valid {
			out = append(out, f.ID)
		}
	}
	return out
}
