// Package highlight renders CSS and HTML source as highlighted markup.
package highlight

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Language tags understood by the highlighter.
const (
	LangCSS  = "css"
	LangHTML = "html"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// ErrUnknownStyle is returned for a style name chroma does not know.
var ErrUnknownStyle = errors.New("unknown highlight style")

// Container is a live text area that can display highlighted markup and
// remembers whether it has already been highlighted.
type Container interface {
	Text() string
	SetMarkup(markup string)
	Highlighted() bool
	SetHighlighted(highlighted bool)
}

// Highlighter turns source text into markup using a chroma formatter.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
	html      *html.Formatter
}

// KnownStyle reports whether chroma ships a style with the given name.
func KnownStyle(name string) bool {
	_, ok := styles.Registry[strings.ToLower(name)]
	return ok
}

func lookupStyle(name string) (*chroma.Style, error) {
	if name == "" {
		name = DefaultStyle
	}
	if !KnownStyle(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return styles.Get(strings.ToLower(name)), nil
}

// NewHTML returns a highlighter producing class-annotated HTML spans
// without a surrounding <pre>, suitable for injecting into an editor.
func NewHTML(styleName string) (*Highlighter, error) {
	style, err := lookupStyle(styleName)
	if err != nil {
		return nil, err
	}
	f := html.New(
		html.WithClasses(true),
		html.PreventSurroundingPre(true),
	)
	return &Highlighter{style: style, formatter: f, html: f}, nil
}

// NewTerminal returns a highlighter producing 256-colour ANSI sequences.
func NewTerminal(styleName string) (*Highlighter, error) {
	style, err := lookupStyle(styleName)
	if err != nil {
		return nil, err
	}
	return &Highlighter{style: style, formatter: formatters.Get("terminal256")}, nil
}

// Highlight renders source in the given language.
func (h *Highlighter) Highlight(source, lang string) (string, error) {
	if source == "" {
		return "", nil
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("tokenising %s: %w", lang, err)
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return "", fmt.Errorf("formatting %s: %w", lang, err)
	}
	return b.String(), nil
}

// Apply highlights the container's text in place and tags it. A container
// that is already tagged is left alone.
func (h *Highlighter) Apply(c Container, lang string) error {
	if c.Highlighted() {
		return nil
	}
	markup, err := h.Highlight(c.Text(), lang)
	if err != nil {
		return err
	}
	c.SetMarkup(markup)
	c.SetHighlighted(true)
	return nil
}

// Reapply clears the container's tag and highlights it again.
func (h *Highlighter) Reapply(c Container, lang string) error {
	c.SetHighlighted(false)
	return h.Apply(c, lang)
}

// WriteCSS writes the stylesheet for the classes emitted by an HTML
// highlighter.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	if h.html == nil {
		return errors.New("highlighter does not emit HTML")
	}
	return h.html.WriteCSS(w, h.style)
}
