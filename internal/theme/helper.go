//
//  internal/theme/helper.go
//
//  Template functions shared by the layout and every component template.
//  Request helpers take the *RequestInfo the view layer passes in as
//  .Info and tolerate nil.
//

package theme

import (
	"html/template"

	"github.com/yanizio/folio/internal/page"
	"github.com/yanizio/folio/internal/requestinfo"
)

// FuncMap returns the template function map.  asset resolves asset paths.
func FuncMap(asset func(string) string) template.FuncMap {
	return template.FuncMap{
		"asset": asset,
		"dict":  dict,

		// anchorID turns "#section" into "section", or "" for other links.
		"anchorID": func(href string) string {
			id, _ := page.AnchorTarget(href)
			return id
		},
		"slug": page.Slug,

		"device": func(i *requestinfo.RequestInfo) string {
			if i == nil {
				return ""
			}
			return i.UA.Device
		},
		"isBot": func(i *requestinfo.RequestInfo) bool {
			return i != nil && i.UA.IsBot
		},
		"lang": func(i *requestinfo.RequestInfo) string {
			if i == nil || i.UA.PrimaryLang == "" {
				return "en"
			}
			return i.UA.PrimaryLang
		},
	}
}

// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}
