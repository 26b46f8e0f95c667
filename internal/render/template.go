// Package render fills note templates with citation placeholders.
package render

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/litnote/litnote/internal/reference"
)

//go:embed templates/*.md
var defaults embed.FS

// Placeholder is one {{name}} substitution.
type Placeholder struct {
	Name  string
	Value string
}

// Template is a loaded note template.
type Template struct {
	Text string
	// Path is the file the template came from, or "" for the built-in default.
	Path string
	// Fallback is set when the file in the template directory was missing.
	Fallback bool
}

// Token returns the literal token replaced for name.
func Token(name string) string {
	return "{{" + name + "}}"
}

// Render replaces every {{name}} token with its value in one pass, so values
// are never rescanned. Tokens without a placeholder are left as they are.
func Render(template string, placeholders []Placeholder) string {
	if len(placeholders) == 0 {
		return template
	}
	pairs := make([]string, 0, 2*len(placeholders))
	for _, p := range placeholders {
		pairs = append(pairs, Token(p.Name), p.Value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Load reads <dir>/<kind>_template.md. When dir is empty or the file does not
// exist the built-in default is returned with Fallback set.
func Load(dir string, kind reference.Kind) (Template, error) {
	if dir != "" {
		path := filepath.Join(dir, kind.TemplateFile())
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			return Template{Text: string(data), Path: path}, nil
		case !errors.Is(err, fs.ErrNotExist):
			return Template{}, fmt.Errorf("reading template %s: %w", path, err)
		}
	}

	t, err := Default(kind)
	if err != nil {
		return Template{}, err
	}
	t.Fallback = dir != ""
	return t, nil
}

// Default returns the built-in template for kind.
func Default(kind reference.Kind) (Template, error) {
	data, err := defaults.ReadFile("templates/" + kind.TemplateFile())
	if err != nil {
		return Template{}, fmt.Errorf("no built-in template for %s: %w", kind, err)
	}
	return Template{Text: string(data)}, nil
}

// WriteDefaults copies the built-in templates into dir, leaving existing files
// alone. It returns the paths it wrote.
func WriteDefaults(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating template directory: %w", err)
	}
	var written []string
	for _, k := range reference.Kinds {
		path := filepath.Join(dir, k.TemplateFile())
		if _, err := os.Stat(path); err == nil {
			continue
		}
		t, err := Default(k)
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(path, []byte(t.Text), 0644); err != nil {
			return written, fmt.Errorf("writing template %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
