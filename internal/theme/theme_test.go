package theme

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

func TestDefault(t *testing.T) {
	th, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	for _, name := range []string{"layout", "header", "footer"} {
		if th.Base.Lookup(name) == nil {
			t.Errorf("template %q missing", name)
		}
	}
	if _, err := fs.Stat(th.Assets, "css/site.css"); err != nil {
		t.Fatalf("stylesheet not embedded: %v", err)
	}
	if got := th.AssetFunc("css/site.css"); got != "/assets/css/site.css" {
		t.Fatalf("asset = %q", got)
	}
}

func TestLoad_RequiresLayout(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/x.html": {Data: []byte(`{{define "header"}}h{{end}}`)},
		"assets/a.css":     {Data: []byte(``)},
	}
	_, err := Load("broken", fsys)
	if err == nil || !strings.Contains(err.Error(), "layout") {
		t.Fatalf("err = %v", err)
	}
}

func TestCollectHTML(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/a.html":     {},
		"templates/sub/B.HTML": {},
		"templates/readme.txt": {},
	}
	files, err := CollectHTML(fsys, "templates")
	if err != nil {
		t.Fatalf("CollectHTML: %v", err)
	}
	if strings.Join(files, ",") != "templates/a.html,templates/sub/B.HTML" {
		t.Fatalf("files = %v", files)
	}
	if files, err := CollectHTML(fsys, "missing"); err != nil || files != nil {
		t.Fatalf("missing root = %v, %v", files, err)
	}
}

func TestDict(t *testing.T) {
	m := dict("a", 1, "b", "x", "dangling")
	if m["a"] != 1 || m["b"] != "x" || len(m) != 2 {
		t.Fatalf("dict = %v", m)
	}
}
