package terminal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ziadkadry99/css-player/internal/highlight"
	"github.com/ziadkadry99/css-player/internal/player"
	"github.com/ziadkadry99/css-player/internal/preview"
	"github.com/ziadkadry99/css-player/internal/progress"
	"github.com/ziadkadry99/css-player/internal/status"
)

func newPlayback(t *testing.T, css string, speed int) (Playback, *bytes.Buffer) {
	t.Helper()
	hl, err := highlight.NewTerminal(highlight.DefaultStyle)
	if err != nil {
		t.Fatalf("creating highlighter: %v", err)
	}
	var out bytes.Buffer
	return Playback{
		CSS:         css,
		HTML:        `<div class="box">hi</div>`,
		SpeedMs:     speed,
		Background:  "#161616",
		Screen:      NewScreen(&out, 10, false),
		Highlighter: hl,
		Status:      NewStatusLine(&out, false),
		Reporter:    progress.NewReporter(&out),
	}, &out
}

func TestPlayToCompletion(t *testing.T) {
	p, out := newPlayback(t, "  a{}\n", 0)

	res, err := Play(context.Background(), p)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if res.Interrupted {
		t.Error("expected an uninterrupted run")
	}
	if res.CSS != "a{}" {
		t.Errorf("expected trimmed CSS, got %q", res.CSS)
	}
	if res.Ticks != 4 {
		t.Errorf("expected 4 ticks, got %d", res.Ticks)
	}
	page, err := res.Document.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(page, `<style id="dynamic-style">a{}</style>`) {
		t.Errorf("expected inlined CSS, got:\n%s", page)
	}
	if !strings.Contains(page, `<div class="box">hi</div>`) {
		t.Error("expected the HTML body in the page")
	}
	if !strings.Contains(out.String(), "[success] Animation complete!") {
		t.Errorf("expected completion status, got:\n%s", out.String())
	}
}

func TestPlayInterrupted(t *testing.T) {
	p, _ := newPlayback(t, "a { color: red; }", 60000)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Play(ctx, p)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !res.Interrupted {
		t.Fatal("expected the run to be interrupted")
	}
	if res.CSS != "a { color: red; }" {
		t.Errorf("expected original CSS restored, got %q", res.CSS)
	}
	page, err := res.Document.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(page, preview.StyleElementID) {
		t.Error("expected the preview to be blank after stop")
	}
}

func TestPlayRejectsInvalidInput(t *testing.T) {
	p, _ := newPlayback(t, "   ", 0)
	if _, err := Play(context.Background(), p); !errors.Is(err, player.ErrEmptyCSS) {
		t.Errorf("expected ErrEmptyCSS, got %v", err)
	}

	p, _ = newPlayback(t, "a{}", -1)
	if _, err := Play(context.Background(), p); !errors.Is(err, player.ErrInvalidSpeed) {
		t.Errorf("expected ErrInvalidSpeed, got %v", err)
	}
}

func TestEditorScroll(t *testing.T) {
	s := NewScreen(&bytes.Buffer{}, 3, false)
	ed := s.CSS()
	ed.SetText("1\n2\n3\n4\n5")

	m := ed.Scroll()
	if m.ClientHeight != 3 || m.ScrollHeight != 5 {
		t.Fatalf("unexpected metrics %+v", m)
	}
	if !m.NeedsScroll() {
		t.Fatal("expected overflowing text to need scrolling")
	}
	ed.ScrollTo(m.ScrollHeight)
	if got := ed.Scroll().Top; got != 2 {
		t.Errorf("expected top clamped to 2, got %d", got)
	}
	if ed.Scroll().NeedsScroll() {
		t.Error("expected no further scrolling at the bottom")
	}
	ed.ScrollTo(-4)
	if got := ed.Scroll().Top; got != 0 {
		t.Errorf("expected top 0, got %d", got)
	}
}

func TestScreenDrawsVisibleLines(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, 2, true)
	s.CSS().SetText("a\nb\nc")
	s.CSS().SetTyping(true)
	s.CSS().ScrollTo(1)
	out.Reset()

	s.View().Overlay.SetMarkup("a\nb\nc")

	got := out.String()
	if !strings.HasPrefix(got, clearScreen) {
		t.Fatalf("expected a cleared screen, got %q", got)
	}
	if body := strings.TrimPrefix(got, clearScreen); body != "b\nc" {
		t.Errorf("expected last two lines, got %q", body)
	}
}

func TestRenderWithoutDocument(t *testing.T) {
	if _, err := (&Document{}).Render(); !errors.Is(err, preview.ErrNoDocument) {
		t.Errorf("expected ErrNoDocument, got %v", err)
	}
}

func TestStatusLine(t *testing.T) {
	var buf bytes.Buffer
	l := NewStatusLine(&buf, true)
	l.ShowStatus(status.Status{Message: "hello", Severity: status.SeverityError, Visible: true})
	l.ShowStatus(status.Status{Message: "hello", Severity: status.SeverityError})

	if buf.String() != "\x1b[31mhello\x1b[0m\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestDocumentBackground(t *testing.T) {
	d := &Document{}
	doc, err := preview.Document("<p>x</p>", "#000000")
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	d.PublishDocument(doc)
	d.PublishStyle("p{}")
	d.PublishBackground("#ffffff")

	page, err := d.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(page, "p{}\nbody { background-color: #ffffff; }</style>") {
		t.Errorf("expected background override, got:\n%s", page)
	}
}
