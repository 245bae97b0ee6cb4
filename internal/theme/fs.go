// fs.go holds the helper that finds template files in a theme or component
// filesystem, since fs.Glob has no "**" pattern.
package theme

import (
	"io/fs"
	"strings"
)

// CollectHTML walks root inside fsys and returns every *.html path, in
// lexical order, ready for template.ParseFS.  A missing root yields no
// files and no error.
func CollectHTML(fsys fs.FS, root string) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		if _, statErr := fs.Stat(fsys, root); statErr != nil {
			return nil, nil
		}
		return nil, err
	}
	return files, nil
}
