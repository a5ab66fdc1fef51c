package render

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"golang.org/x/image/font"

	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
)

// Banner geometry and speed of the scrolling ticker.
const (
	TickerSpeed = 100.0 // px/s
	bannerY     = 430
	bannerH     = 30
	tickerTextY = 432
)

var bannerColor = color.RGBA{0, 0, 80, 255}

// Ticker is the banner that scrolls across the bottom of every page. Its
// position is independent of page changes.
type Ticker struct {
	mu      sync.Mutex
	items   []string
	next    int
	current string
	onMain  bool
	x       float64
}

// NewTicker creates a ticker whose text enters from the right edge.
func NewTicker() *Ticker {
	return &Ticker{x: pages.Width}
}

// SetItems replaces the rotation. The first item is the main conditions
// line; when it is on screen it is swapped for the new text in place, other
// items finish scrolling before the new rotation starts.
func (t *Ticker) SetItems(items []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append([]string(nil), items...)
	t.next = 0
	if len(t.items) == 0 {
		return
	}
	if t.current == "" || t.onMain {
		t.current = t.items[0]
		t.onMain = true
		t.next = 1 % len(t.items)
	}
}

// Current returns the text on screen and its x position.
func (t *Ticker) Current() (string, float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current, t.x
}

// Advance moves the text left by dt and cycles to the next item once the
// current one has fully left the screen.
func (t *Ticker) Advance(dt time.Duration, width func(string) int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.x -= TickerSpeed * dt.Seconds()
	if t.x >= -float64(width(t.current)) {
		return
	}
	t.x = pages.Width
	if len(t.items) > 0 {
		i := t.next % len(t.items)
		t.current = t.items[i]
		t.onMain = i == 0
		t.next = (i + 1) % len(t.items)
	}
}

// Draw paints the banner and the text.
func (t *Ticker) Draw(dst draw.Image, face font.Face) {
	draw.Draw(dst, image.Rect(0, bannerY, pages.Width, bannerY+bannerH), image.NewUniform(bannerColor), image.Point{}, draw.Src)
	text, x := t.Current()
	if text == "" {
		return
	}
	drawString(dst, face, text, int(x), tickerTextY, pages.White, pages.AlignLeft)
}
