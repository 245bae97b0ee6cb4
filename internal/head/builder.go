// internal/head/builder.go
//
// The Builder collects what goes inside a page's <head>: the title, meta
// description, and extra link or meta tags.  One Builder per render; the
// layout template emits it with {{ .Head.Render }}.
//
// Features
// --------
//   - SetTitle     – "<page> | <site>" or just the site name.
//   - Description  – <meta name="description">, last call wins.
//   - Meta, Link   – raw tags, deduplicated, emitted in insertion order.
package head

import (
	"html/template"
	"strings"
)

// Builder is not safe for concurrent use.
type Builder struct {
	site        string
	title       string
	description string
	tags        []string
	seen        map[string]struct{}
}

// New returns a Builder for a site named site, seeded with the charset and
// viewport tags every page needs.
func New(site string) *Builder {
	b := &Builder{site: site, seen: make(map[string]struct{})}
	b.Meta(`<meta charset="utf-8">`)
	b.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	return b
}

// SetTitle sets the page part of the title.
func (b *Builder) SetTitle(page string) { b.title = page }

// Description sets the meta description.
func (b *Builder) Description(d string) { b.description = d }

// Meta adds a raw <meta> tag once.
func (b *Builder) Meta(tag string) { b.add(tag) }

// Link adds a raw <link> tag once.
func (b *Builder) Link(tag string) { b.add(tag) }

func (b *Builder) add(tag string) {
	if _, dup := b.seen[tag]; dup {
		return
	}
	b.seen[tag] = struct{}{}
	b.tags = append(b.tags, tag)
}

// Title returns the full title text.
func (b *Builder) Title() string {
	switch {
	case b.title == "":
		return b.site
	case b.site == "" || b.title == b.site:
		return b.title
	default:
		return b.title + " | " + b.site
	}
}

// Render emits the head contents.  Tags passed to Meta and Link are
// trusted markup; title and description are escaped.
func (b *Builder) Render() template.HTML {
	var sb strings.Builder
	for _, t := range b.tags {
		sb.WriteString(t)
		sb.WriteByte('\n')
	}
	sb.WriteString("<title>" + template.HTMLEscapeString(b.Title()) + "</title>\n")
	if b.description != "" {
		sb.WriteString(`<meta name="description" content="` + template.HTMLEscapeString(b.description) + `">` + "\n")
	}
	return template.HTML(sb.String())
}
