// Package theme holds the visual theme: the base layout template, shared
// partials, and static assets, embedded into the binary.
//
// A Theme combines:
//
//   - Name       – the theme directory name ("default").
//   - Assets     – static files served under /assets/.
//   - Base       – parsed layout and partials, cloned per page.
//   - AssetFunc  – resolves {{ asset "css/site.css" }} to a URL.
package theme

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
)

//go:embed default
var embedded embed.FS

// AssetPrefix is the URL path static assets are served from.
const AssetPrefix = "/assets/"

// Theme is a parsed theme ready for rendering.
type Theme struct {
	Name      string
	Assets    fs.FS
	Base      *template.Template
	AssetFunc func(string) string
}

// Default loads the embedded default theme.
func Default() (*Theme, error) {
	sub, err := fs.Sub(embedded, "default")
	if err != nil {
		return nil, err
	}
	return Load("default", sub)
}

// Load parses every templates/**/*.html file of fsys into one base set.
// The set must define "layout".
func Load(name string, fsys fs.FS) (*Theme, error) {
	assets, err := fs.Sub(fsys, "assets")
	if err != nil {
		return nil, fmt.Errorf("theme %s assets: %w", name, err)
	}
	th := &Theme{
		Name:      name,
		Assets:    assets,
		AssetFunc: func(p string) string { return path.Join(AssetPrefix, p) },
	}

	files, err := CollectHTML(fsys, "templates")
	if err != nil {
		return nil, fmt.Errorf("theme %s templates: %w", name, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("theme %s has no templates", name)
	}
	base, err := template.New(name).Funcs(FuncMap(th.AssetFunc)).ParseFS(fsys, files...)
	if err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", name, err)
	}
	if base.Lookup("layout") == nil {
		return nil, fmt.Errorf("theme %s does not define \"layout\"", name)
	}
	th.Base = base
	return th, nil
}
