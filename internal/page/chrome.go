// Package page builds the per-request chrome shared by every Folio page:
// navigation state, the copyright year, and motion preferences.  All of
// it is derived on the server, so pages work without script.
package page

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/yanizio/folio/internal/requestinfo"
)

// NavParam is the query parameter that toggles the navigation region.
const NavParam = "nav"

// Link is one navigation entry.
type Link struct {
	Href   string
	Label  string
	Active bool
}

// DefaultLinks is the site navigation in display order.
var DefaultLinks = []Link{
	{Href: "/", Label: "Home"},
	{Href: "/about", Label: "About"},
	{Href: "/resume", Label: "Resume"},
	{Href: "/projects", Label: "Projects"},
	{Href: "/contact", Label: "Contact"},
}

// Nav is the collapsible navigation region.
type Nav struct {
	Open  bool
	Links []Link
	path  string
}

// Close collapses the region.  Escape and outside clicks map here.
func (n *Nav) Close() { n.Open = false }

// Expanded is the aria-expanded value for the toggle button.
func (n Nav) Expanded() string {
	if n.Open {
		return "true"
	}
	return "false"
}

// ToggleHref links to the current page with the region flipped.
func (n Nav) ToggleHref() string {
	state := "open"
	if n.Open {
		state = "closed"
	}
	return n.path + "?" + NavParam + "=" + state
}

// Chrome is the shared page state handed to the layout template.
type Chrome struct {
	Year          int
	Nav           Nav
	ReducedMotion bool
}

// MotionStyle is the inline custom-property block for the root element.
func (c Chrome) MotionStyle() template.CSS {
	if c.ReducedMotion {
		return "--transition-duration: 0ms; scroll-behavior: auto;"
	}
	return "--transition-duration: 200ms; scroll-behavior: smooth;"
}

// FromRequest derives the chrome for r.  The navigation starts collapsed
// on compact devices and open elsewhere; ?nav=open|closed overrides it.
func FromRequest(r *http.Request, now time.Time) Chrome {
	info := requestinfo.FromContext(r.Context())

	nav := Nav{Open: !info.Compact(), path: r.URL.Path}
	switch strings.ToLower(r.URL.Query().Get(NavParam)) {
	case "open":
		nav.Open = true
	case "closed":
		nav.Close()
	}
	nav.Links = make([]Link, len(DefaultLinks))
	for i, l := range DefaultLinks {
		l.Active = l.Href == r.URL.Path
		nav.Links[i] = l
	}

	c := Chrome{Year: now.Year(), Nav: nav}
	if info != nil {
		c.ReducedMotion = info.Hints.ReducedMotion
	}
	return c
}

// AnchorTarget returns the element ID a same-page anchor points at.  A bare
// "#" and links to other pages report false.
func AnchorTarget(href string) (string, bool) {
	if !strings.HasPrefix(href, "#") || len(href) == 1 {
		return "", false
	}
	return href[1:], true
}
