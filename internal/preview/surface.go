package preview

import (
	"errors"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
)

// ErrNoDocument is returned when the preview has no live document to update.
var ErrNoDocument = errors.New("preview has no live document")

// StyleSheet is the mutable style element of a loaded preview.
type StyleSheet interface {
	SetText(css string) error
}

// Surface is where HTML and a live style sheet are composed.
type Surface interface {
	// Load replaces the document with htmlBody and returns its fresh,
	// empty style sheet.
	Load(htmlBody, background string) (StyleSheet, error)
	// Blank replaces the document with an empty body that only has the
	// background colour applied.
	Blank(background string) error
	// SetBackground recolours the body of a loaded document.
	SetBackground(color string) error
	// Live reports whether a loaded document with a style sheet exists.
	Live() bool
}

// Publisher delivers preview changes to whatever renders them.
type Publisher interface {
	PublishDocument(html string) error
	PublishStyle(css string) error
	PublishBackground(color string) error
}

// Frame is a Surface that renders documents server-side and hands them to
// a Publisher.
type Frame struct {
	pub      Publisher
	policy   *bluemonday.Policy
	sheet    *frameSheet
	lastBody string
}

// Option configures a Frame.
type Option func(*Frame)

// WithSanitizer strips scripts and event handlers from loaded HTML while
// keeping class and id attributes the CSS can target.
func WithSanitizer() Option {
	return func(f *Frame) {
		p := bluemonday.UGCPolicy()
		p.AllowStyling()
		p.AllowAttrs("id").Globally()
		f.policy = p
	}
}

// NewFrame creates a Frame publishing to pub.
func NewFrame(pub Publisher, opts ...Option) *Frame {
	f := &Frame{pub: pub}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load implements Surface.
func (f *Frame) Load(htmlBody, background string) (StyleSheet, error) {
	f.sheet = nil
	if f.policy != nil {
		htmlBody = f.policy.Sanitize(htmlBody)
	}
	doc, err := Document(htmlBody, background)
	if err != nil {
		return nil, err
	}
	if err := f.pub.PublishDocument(doc); err != nil {
		return nil, fmt.Errorf("publishing preview document: %w", err)
	}
	f.lastBody = htmlBody
	f.sheet = &frameSheet{f: f}
	return f.sheet, nil
}

// Blank implements Surface.
func (f *Frame) Blank(background string) error {
	f.sheet = nil
	f.lastBody = ""
	doc, err := BlankDocument(background)
	if err != nil {
		return err
	}
	if err := f.pub.PublishDocument(doc); err != nil {
		return fmt.Errorf("publishing blank document: %w", err)
	}
	return nil
}

// SetBackground implements Surface.
func (f *Frame) SetBackground(color string) error {
	if f.sheet == nil {
		return ErrNoDocument
	}
	return f.pub.PublishBackground(color)
}

// Live implements Surface.
func (f *Frame) Live() bool { return f.sheet != nil }

// Body returns the HTML body of the loaded document after sanitising.
func (f *Frame) Body() string { return f.lastBody }

type frameSheet struct {
	f *Frame
}

func (s *frameSheet) SetText(css string) error {
	// A sheet from a replaced document no longer reaches the preview.
	if s.f.sheet != s {
		return ErrNoDocument
	}
	return s.f.pub.PublishStyle(css)
}
