package terminal

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/css-player/internal/preview"
)

// Document captures what a browser preview would show so it can be saved
// as a standalone page.
type Document struct {
	html       string
	css        string
	background string
}

// PublishDocument implements preview.Publisher.
func (d *Document) PublishDocument(html string) error {
	d.html = html
	d.css = ""
	d.background = ""
	return nil
}

// PublishStyle implements preview.Publisher.
func (d *Document) PublishStyle(css string) error {
	d.css = css
	return nil
}

// PublishBackground implements preview.Publisher.
func (d *Document) PublishBackground(color string) error {
	d.background = color
	return nil
}

// CSS returns the style last written into the document.
func (d *Document) CSS() string { return d.css }

// Render returns the page with the current style inlined.
func (d *Document) Render() (string, error) {
	if d.html == "" {
		return "", preview.ErrNoDocument
	}
	empty := fmt.Sprintf(`<style id="%s"></style>`, preview.StyleElementID)
	if !strings.Contains(d.html, empty) {
		return d.html, nil
	}
	css := d.css
	if d.background != "" {
		css += fmt.Sprintf("\nbody { background-color: %s; }", d.background)
	}
	filled := fmt.Sprintf(`<style id="%s">%s</style>`, preview.StyleElementID, css)
	return strings.Replace(d.html, empty, filled, 1), nil
}
