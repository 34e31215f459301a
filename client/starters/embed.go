// Package starters ships a few Typst templates that can be uploaded as-is to
// get a first report rendering.
package starters

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

const ext = ".typ"

// templateFS holds the embedded starter templates.
//
//go:embed templates/*.typ
var templateFS embed.FS

// FS exposes the embedded templates, rooted at their directory, for use with
// client.UploadTemplateFS.
func FS() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Path returns the file name of a starter inside FS.
func Path(name string) string { return name + ext }

// Load returns the Typst source of the named starter template.
func Load(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("starter name cannot be empty")
	}
	b, err := fs.ReadFile(templateFS, path.Join("templates", Path(name)))
	if err != nil {
		return "", fmt.Errorf("unknown starter template %q: %w", name, err)
	}
	return string(b), nil
}

// List returns the names of all starter templates, sorted.
func List() ([]string, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(out)
	return out, nil
}
