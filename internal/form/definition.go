// internal/form/definition.go
//
// Folio – Forms subsystem: YAML definition loader.
//
// Context
//   Each form is declared in a YAML file that lives next to the component
//   serving it (“components/<comp>/forms/*.yaml”, embedded at build time).
//   The file names the form, its fields in display order, and for every
//   field the ordered rules with the message each one shows on failure.
//   Definitions are parsed once at start-up and kept in an in-memory
//   registry, so the renderer, the controller, and the handlers all read
//   the same source of truth.
//
// Workflow
//   •  Structs mirror the YAML schema: FormDef → FieldDef → RuleDef.
//   •  ParseFormDef parses one document and validates structural rules.
//   •  RegisterFS walks an fs.FS for “*.yaml” files and registers each.
//   •  GetFormDef offers read-only access to a parsed form by ID.
//
// Style
//   Full sentences, two spaces after periods, Oxford commas.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/yanizio/folio/internal/validator"
)

// ErrUnknownForm is returned when a form ID has not been registered.
var ErrUnknownForm = errors.New("unknown form")

// -----------------------------------------------------------------------------
// Data structures
// -----------------------------------------------------------------------------

// FormDef represents one form definition loaded from YAML.
//
// Fields are evaluated and focused in the order they appear.  Confirm, when
// present, names the password/confirmation pair that gets the cross-field
// transitions described in controller.go.
type FormDef struct {
	ID      string     `yaml:"id"`      // Component-scoped identifier.
	Title   string     `yaml:"title"`   // Display heading, optional.
	Action  string     `yaml:"action"`  // POST target.
	Submit  string     `yaml:"submit"`  // Button label, optional.
	Confirm *PairDef   `yaml:"confirm"` // Password confirmation pair, optional.
	Fields  []FieldDef `yaml:"fields"`
}

// PairDef names the field that confirms another.
type PairDef struct {
	Field string `yaml:"field"` // e.g. confirmPassword
	Of    string `yaml:"of"`    // e.g. password
}

// FieldDef describes a single input control.
type FieldDef struct {
	Name         string    `yaml:"name"`         // Element ID and submission key.
	Label        string    `yaml:"label"`        // Human-readable label.
	Type         string    `yaml:"type"`         // text, email, password, tel, textarea.
	Placeholder  string    `yaml:"placeholder"`  // Optional.
	Autocomplete string    `yaml:"autocomplete"` // Optional autocomplete hint.
	Rules        []RuleDef `yaml:"rules"`        // Evaluated in order; first failure wins.
}

// RuleDef binds one rule name to its failure message.
type RuleDef struct {
	Rule    string            `yaml:"rule"`
	Message string            `yaml:"message"`
	Against string            `yaml:"against"` // Comparison rules only.
	Params  map[string]string `yaml:"params"`  // e.g. {min: "2"} for minLength.
}

// ErrorID returns the identifier of the field's error slot.
func ErrorID(field string) string { return field + "Error" }

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*FormDef)
)

// GetFormDef returns a parsed FormDef by ID.  The boolean is false when the
// ID is unknown.
func GetFormDef(id string) (*FormDef, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fd, ok := registry[id]
	return fd, ok
}

// Register inserts or replaces fd in the registry after validating it.
func Register(fd *FormDef) error {
	if err := validateFormDef(fd, fd.ID); err != nil {
		return err
	}
	registryMu.Lock()
	registry[fd.ID] = fd
	registryMu.Unlock()
	return nil
}

// -----------------------------------------------------------------------------
// Loader API
// -----------------------------------------------------------------------------

// ParseFormDef parses one YAML document and validates it.  It never touches
// the registry.  src names the document in error messages.
func ParseFormDef(raw []byte, src string) (*FormDef, error) {
	var fd FormDef
	if err := yaml.Unmarshal(raw, &fd); err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", src, err)
	}
	if err := validateFormDef(&fd, src); err != nil {
		return nil, err
	}
	return &fd, nil
}

// RegisterFS loads every “*.yaml” under root in fsys.  Later files override
// earlier ones with the same ID.
func RegisterFS(fsys fs.FS, root string) error {
	return fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".yaml") {
			return nil
		}
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read form file %s: %w", p, err)
		}
		fd, err := ParseFormDef(raw, p)
		if err != nil {
			return err // fail fast so issues surface loudly.
		}
		registryMu.Lock()
		registry[fd.ID] = fd
		registryMu.Unlock()
		zap.S().Debugw("form registered", "form", fd.ID, "file", path.Clean(p), "fields", len(fd.Fields))
		return nil
	})
}

// -----------------------------------------------------------------------------
// Validation helpers
// -----------------------------------------------------------------------------

var fieldTypes = map[string]bool{
	"text":     true,
	"email":    true,
	"password": true,
	"tel":      true,
	"textarea": true,
}

// validateFormDef enforces structural rules that YAML tags cannot express.
func validateFormDef(fd *FormDef, src string) error {
	if fd.ID == "" {
		return fmt.Errorf("form definition %s: missing required 'id'", src)
	}
	if len(fd.Fields) == 0 {
		return fmt.Errorf("form definition %s: must have 'fields'", src)
	}

	names := make(map[string]struct{}, len(fd.Fields))
	for i := range fd.Fields {
		f := &fd.Fields[i]
		if err := validateField(f, src); err != nil {
			return err
		}
		if _, dup := names[f.Name]; dup {
			return fmt.Errorf("form %s: duplicate field name '%s'", src, f.Name)
		}
		names[f.Name] = struct{}{}
	}

	// Comparison targets must exist.
	for _, f := range fd.Fields {
		for _, rd := range f.Rules {
			if rd.Against == "" {
				continue
			}
			if _, ok := names[rd.Against]; !ok {
				return fmt.Errorf("form %s: field '%s' compares against unknown field '%s'", src, f.Name, rd.Against)
			}
		}
	}

	if fd.Confirm != nil {
		_, okField := names[fd.Confirm.Field]
		_, okOf := names[fd.Confirm.Of]
		if !okField || !okOf || fd.Confirm.Field == fd.Confirm.Of {
			return fmt.Errorf("form %s: confirm pair %s/%s is not two declared fields", src, fd.Confirm.Field, fd.Confirm.Of)
		}
	}
	return nil
}

// validateField confirms that essential attributes are present and sane.
func validateField(f *FieldDef, src string) error {
	if f.Name == "" {
		return fmt.Errorf("form %s: field missing 'name'", src)
	}
	if f.Label == "" {
		return fmt.Errorf("form %s: field '%s' missing 'label'", src, f.Name)
	}
	if !fieldTypes[f.Type] {
		return fmt.Errorf("form %s: field '%s' has unsupported type %q", src, f.Name, f.Type)
	}
	for _, rd := range f.Rules {
		if rd.Message == "" {
			return fmt.Errorf("form %s: field '%s' rule %q missing 'message'", src, f.Name, rd.Rule)
		}
		if _, err := stepFor(rd); err != nil {
			return fmt.Errorf("form %s: field '%s': %w", src, f.Name, err)
		}
		if rd.Against != "" && !validator.IsPair(rd.Rule) {
			return fmt.Errorf("form %s: field '%s' rule %q does not compare", src, f.Name, rd.Rule)
		}
	}
	return nil
}
