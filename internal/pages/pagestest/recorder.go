// Package pagestest provides a recording Canvas for render function tests.
package pagestest

import (
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
)

// TextOp is one recorded Text call.
type TextOp struct {
	Text  string
	X, Y  int
	Font  pages.Font
	Color color.Color
	Align pages.Align
}

// LinkOp is one recorded Link call.
type LinkOp struct {
	Rect image.Rectangle
	URL  string
}

// Recorder is a Canvas that records what was drawn. Every glyph measures
// CharWidth pixels.
type Recorder struct {
	mu        sync.Mutex
	CharWidth int
	Texts     []TextOp
	Icons     []string
	Images    int
	Boxes     int
	Links     []LinkOp
}

// New returns a Recorder with 10 pixel glyphs.
func New() *Recorder { return &Recorder{CharWidth: 10} }

func (r *Recorder) Text(s string, x, y int, f pages.Font, c color.Color, a pages.Align) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Texts = append(r.Texts, TextOp{Text: s, X: x, Y: y, Font: f, Color: c, Align: a})
}

func (r *Recorder) Measure(s string, _ pages.Font) int {
	return len([]rune(s)) * r.CharWidth
}

func (r *Recorder) LineHeight(pages.Font) int { return 20 }

func (r *Recorder) Fill(image.Rectangle, color.Color) {}

func (r *Recorder) Box(image.Rectangle, color.Color, color.Color) {
	r.mu.Lock()
	r.Boxes++
	r.mu.Unlock()
}

func (r *Recorder) Image(image.Image, image.Rectangle) {
	r.mu.Lock()
	r.Images++
	r.mu.Unlock()
}

func (r *Recorder) Icon(name string, _ image.Rectangle) {
	r.mu.Lock()
	r.Icons = append(r.Icons, name)
	r.mu.Unlock()
}

func (r *Recorder) Clip(_ image.Rectangle, draw func()) { draw() }

func (r *Recorder) Link(rect image.Rectangle, url string) {
	r.mu.Lock()
	r.Links = append(r.Links, LinkOp{Rect: rect, URL: url})
	r.mu.Unlock()
}

// Strings returns the recorded text in draw order.
func (r *Recorder) Strings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Texts))
	for i, t := range r.Texts {
		out[i] = t.Text
	}
	return out
}

// Has reports whether any recorded text contains sub.
func (r *Recorder) Has(sub string) bool {
	for _, s := range r.Strings() {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Find returns the first recorded text op containing sub.
func (r *Recorder) Find(sub string) (TextOp, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.Texts {
		if strings.Contains(t.Text, sub) {
			return t, true
		}
	}
	return TextOp{}, false
}

var _ pages.Canvas = (*Recorder)(nil)
