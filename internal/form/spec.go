// internal/form/spec.go
//
// Folio – Forms subsystem: FieldSpecs.
//
// Context
//   A FieldSpec binds one field to the ordered steps that judge it.  Each
//   step pairs a predicate from internal/validator with the message shown
//   when it fails.  Steps run in slice order and the first failure wins, so
//   “required” always speaks before a format rule does.
//
//   Comparison steps (Pair + Against) read another field's current value
//   through the page.  When that field is absent the comparison is skipped.
//
//------------------------------------------------------------------------------

package form

import (
	"fmt"

	"github.com/yanizio/folio/internal/validator"
)

// Step is one (rule, message) pair.  Exactly one of Rule or Pair is set.
type Step struct {
	Rule    validator.Rule
	Pair    validator.PairRule
	Against string // field ID supplying the reference value for Pair
	Message string
}

// Check returns a single-value Step.
func Check(rule validator.Rule, msg string) Step {
	return Step{Rule: rule, Message: msg}
}

// Compare returns a Step judging the value against field against.
func Compare(rule validator.PairRule, against, msg string) Step {
	return Step{Pair: rule, Against: against, Message: msg}
}

func (s Step) comparative() bool { return s.Pair != nil }

// passes applies the step.  peer resolves the reference value for
// comparison steps.
func (s Step) passes(value string, peer func(id string) (string, bool)) bool {
	if !s.comparative() {
		return s.Rule(value)
	}
	ref, ok := peer(s.Against)
	if !ok {
		return true
	}
	return s.Pair(ref, value)
}

// FieldSpec is the static rule sequence for one field.
type FieldSpec struct {
	ID    string
	Steps []Step
}

// Specs converts a FormDef's fields into FieldSpecs in declared order.
func Specs(fd *FormDef) ([]FieldSpec, error) {
	out := make([]FieldSpec, 0, len(fd.Fields))
	for _, f := range fd.Fields {
		spec := FieldSpec{ID: f.Name}
		for _, rd := range f.Rules {
			st, err := stepFor(rd)
			if err != nil {
				return nil, fmt.Errorf("form %s: field %s: %w", fd.ID, f.Name, err)
			}
			spec.Steps = append(spec.Steps, st)
		}
		out = append(out, spec)
	}
	return out, nil
}

func stepFor(rd RuleDef) (Step, error) {
	if pr, ok := validator.LookupPair(rd.Rule); ok {
		if rd.Against == "" {
			return Step{}, fmt.Errorf("rule %s needs 'against'", rd.Rule)
		}
		return Compare(pr, rd.Against, rd.Message), nil
	}
	r, err := validator.Lookup(rd.Rule, rd.Params)
	if err != nil {
		return Step{}, err
	}
	return Check(r, rd.Message), nil
}
