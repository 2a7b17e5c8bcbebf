// Package examples provides the ready-made HTML/CSS pairs the player can
// load into its editors.
package examples

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	yamlv3 "gopkg.in/yaml.v3"
)

//go:embed library
var builtin embed.FS

// File names inside an example directory.
const (
	cssFile  = "style.css"
	htmlFile = "index.html"
	metaFile = "meta.yml"
)

// Example is one HTML/CSS pair.
type Example struct {
	Name            string `json:"name"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	DescriptionHTML string `json:"description_html,omitempty"`
	HTML            string `json:"html"`
	CSS             string `json:"css"`
	Order           int    `json:"order"`
}

type meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Order       int    `yaml:"order"`
}

// Library is an ordered set of examples keyed by name.
type Library struct {
	byName map[string]Example
	md     goldmark.Markdown
}

// NewLibrary creates an empty library. Descriptions are rendered with
// code blocks highlighted in the given chroma style.
func NewLibrary(style string) *Library {
	return &Library{
		byName: make(map[string]Example),
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle(style),
				),
			),
		),
	}
}

// Builtin returns a library holding the bundled examples.
func Builtin(style string) (*Library, error) {
	sub, err := fs.Sub(builtin, "library")
	if err != nil {
		return nil, err
	}
	l := NewLibrary(style)
	if err := l.Load(sub); err != nil {
		return nil, fmt.Errorf("loading bundled examples: %w", err)
	}
	return l, nil
}

// LoadDir adds every example found below dir. Examples with the name of an
// existing one replace it.
func (l *Library) LoadDir(dir string) error {
	return l.Load(os.DirFS(dir))
}

// Load adds every directory in fsys that holds a style.css. index.html and
// meta.yml are optional.
func (l *Library) Load(fsys fs.FS) error {
	matches, err := doublestar.Glob(fsys, "**/"+cssFile)
	if err != nil {
		return fmt.Errorf("finding examples: %w", err)
	}
	for _, m := range matches {
		dir := path.Dir(m)
		ex, err := l.read(fsys, dir)
		if err != nil {
			return fmt.Errorf("reading example %s: %w", dir, err)
		}
		l.byName[ex.Name] = ex
	}
	return nil
}

func (l *Library) read(fsys fs.FS, dir string) (Example, error) {
	name := path.Base(dir)
	if dir == "." {
		name = "example"
	}
	ex := Example{Name: name, Title: name}

	css, err := fs.ReadFile(fsys, path.Join(dir, cssFile))
	if err != nil {
		return Example{}, err
	}
	ex.CSS = string(css)

	html, err := fs.ReadFile(fsys, path.Join(dir, htmlFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Example{}, err
	}
	ex.HTML = string(html)

	raw, err := fs.ReadFile(fsys, path.Join(dir, metaFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ex, nil
	case err != nil:
		return Example{}, err
	}

	var m meta
	if err := yamlv3.Unmarshal(raw, &m); err != nil {
		return Example{}, fmt.Errorf("parsing %s: %w", metaFile, err)
	}
	if m.Title != "" {
		ex.Title = m.Title
	}
	ex.Order = m.Order
	ex.Description = m.Description
	if m.Description != "" {
		var buf bytes.Buffer
		if err := l.md.Convert([]byte(m.Description), &buf); err != nil {
			return Example{}, fmt.Errorf("rendering description: %w", err)
		}
		ex.DescriptionHTML = buf.String()
	}
	return ex, nil
}

// Get returns the example with the given name.
func (l *Library) Get(name string) (Example, bool) {
	ex, ok := l.byName[name]
	return ex, ok
}

// List returns all examples sorted by order, then name.
func (l *Library) List() []Example {
	out := make([]Example, 0, len(l.byName))
	for _, ex := range l.byName {
		out = append(out, ex)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Names returns the example names in List order.
func (l *Library) Names() []string {
	list := l.List()
	names := make([]string, len(list))
	for i, ex := range list {
		names[i] = ex.Name
	}
	return names
}
