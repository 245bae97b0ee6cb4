// internal/component/registry.go
//
// Component registry.
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  At boot, cmd/web runs every
// component's Migrations, calls Init with the shared Deps, and lets
// Routes register its handlers on the root router.

package component

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Component contract.
//
// Migrations may return nil when the component owns no tables.  Routes
// registers the component's pages and endpoints on the shared router,
// e.g.:
//
//	r.Get("/contact", c.show)
//	r.Post("/contact", c.submit)
type Component interface {
	Name() string
	Init(Deps) error
	Routes(r chi.Router)
	Migrations() []string
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.  Registering the
// same name twice replaces the earlier component.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Migrate executes every statement of every component in comps.  Statements
// must be idempotent (CREATE TABLE IF NOT EXISTS and friends).
func Migrate(ctx context.Context, db *sqlx.DB, comps []Component) error {
	for _, c := range comps {
		for i, stmt := range c.Migrations() {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("component %s migration %d: %w", c.Name(), i, err)
			}
		}
		zap.S().Debugw("component migrated", "component", c.Name(), "statements", len(c.Migrations()))
	}
	return nil
}

// Mount initialises each component with deps and registers its routes on
// r.  Each component gets its own inline group so middleware it adds stays
// local.
func Mount(r chi.Router, deps Deps, comps []Component) error {
	for _, c := range comps {
		if err := c.Init(deps); err != nil {
			return fmt.Errorf("init component %s: %w", c.Name(), err)
		}
		r.Group(c.Routes)
		zap.S().Infow("component mounted", "component", c.Name())
	}
	return nil
}
