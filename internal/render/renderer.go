// Package render composes slideshow frames: background, the current page,
// the page transition, the scrolling ticker and the overlays.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/font"

	"github.com/wesellis/WeatherStar-4000-Python/internal/anim"
	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
	"github.com/wesellis/WeatherStar-4000-Python/internal/settings"
	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

// Fade transition: starts opaque and loses fadeStep alpha per frame.
const (
	fadeStart = 255
	fadeStep  = 10
)

// Input is everything the renderer needs for one frame.
type Input struct {
	Page     pages.PageID
	HasPage  bool
	Index    int
	Count    int
	Paused   bool
	Menu     bool
	Snapshot *weather.Snapshot
	Display  settings.Display
	Now      time.Time
	DT       time.Duration
}

// Frame is a composed frame. Image is owned by the renderer and reused for
// the next frame; copy it to keep it.
type Frame struct {
	Image *image.RGBA
	Links []Link
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithIcons sets the icon source.
func WithIcons(icons *IconSet) Option {
	return func(r *Renderer) { r.icons = icons }
}

// WithFrameObserver receives the time spent composing each frame.
func WithFrameObserver(fn func(time.Duration)) Option {
	return func(r *Renderer) { r.observe = fn }
}

// Renderer draws frames. It is used from the render loop only.
type Renderer struct {
	registry *pages.Registry
	anim     *anim.Store
	ticker   *Ticker
	fonts    *Fonts
	icons    *IconSet
	log      *zap.SugaredLogger
	observe  func(time.Duration)

	background *image.RGBA
	frame      *image.RGBA
	prev       *image.RGBA
	fade       int
	lastPage   pages.PageID
	hadPage    bool
}

// NewRenderer creates a renderer over a validated registry.
func NewRenderer(registry *pages.Registry, store *anim.Store, ticker *Ticker, fonts *Fonts, log *zap.SugaredLogger, opts ...Option) *Renderer {
	bounds := image.Rect(0, 0, pages.Width, pages.Height)
	r := &Renderer{
		registry:   registry,
		anim:       store,
		ticker:     ticker,
		fonts:      fonts,
		log:        log,
		background: gradient(bounds),
		frame:      image.NewRGBA(bounds),
		prev:       image.NewRGBA(bounds),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// gradient paints the header band and the blue body gradient.
func gradient(bounds image.Rectangle) *image.RGBA {
	img := image.NewRGBA(bounds)
	const headerH = 90
	draw.Draw(img, image.Rect(0, 0, bounds.Dx(), headerH), image.NewUniform(pages.PurpleHeader), image.Point{}, draw.Src)
	span := float64(bounds.Dy() - headerH)
	for y := headerH; y < bounds.Dy(); y++ {
		t := float64(y-headerH) / span
		c := color.RGBA{
			R: lerp(pages.BlueGradient1.R, pages.BlueGradient2.R, t),
			G: lerp(pages.BlueGradient1.G, pages.BlueGradient2.G, t),
			B: lerp(pages.BlueGradient1.B, pages.BlueGradient2.B, t),
			A: 255,
		}
		draw.Draw(img, image.Rect(0, y, bounds.Dx(), y+1), image.NewUniform(c), image.Point{}, draw.Src)
	}
	return img
}

// Fade reports the alpha of the outgoing page still blended over the frame.
func (r *Renderer) Fade() int { return r.fade }

// Render composes one frame.
func (r *Renderer) Render(in Input) Frame {
	start := time.Now()

	if in.HasPage && r.hadPage && in.Page != r.lastPage {
		draw.Draw(r.prev, r.prev.Bounds(), r.frame, image.Point{}, draw.Src)
		r.fade = fadeStart
	}
	r.lastPage, r.hadPage = in.Page, in.HasPage

	draw.Draw(r.frame, r.frame.Bounds(), r.background, image.Point{}, draw.Src)
	canvas := NewImageCanvas(r.frame, r.fonts, r.icons, in.Now)

	if in.HasPage {
		r.renderPage(canvas, in)
	} else {
		placeholder(canvas)
	}

	if r.fade > 0 {
		mask := image.NewUniform(color.Alpha{A: uint8(r.fade)})
		draw.DrawMask(r.frame, r.frame.Bounds(), r.prev, image.Point{}, mask, image.Point{}, draw.Over)
		r.fade = max(r.fade-fadeStep, 0)
	}

	tickerFace := r.fonts.Ticker()
	r.ticker.Advance(in.DT, func(s string) int { return font.MeasureString(tickerFace, s).Round() })
	r.ticker.Draw(r.frame, tickerFace)

	pageDots(canvas, in.Index, in.Count)
	if in.Paused {
		canvas.Text("PAUSED", 585, 66, pages.FontSmall, pages.Orange, pages.AlignRight)
	}
	if in.Menu {
		menu(canvas, in.Display)
	}

	if r.observe != nil {
		r.observe(time.Since(start))
	}
	return Frame{Image: r.frame, Links: canvas.Links()}
}

// renderPage runs the page's render function. A panicking page is logged
// and the rest of the frame is still drawn.
func (r *Renderer) renderPage(canvas *ImageCanvas, in Input) {
	desc, ok := r.registry.Lookup(in.Page)
	if !ok || desc.Render == nil {
		r.log.Errorw("no render function", "page", in.Page.String())
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Errorw("page render panicked",
				"page", in.Page.String(),
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
			)
		}
	}()
	desc.Render(&pages.Context{
		Canvas:   canvas,
		Snapshot: in.Snapshot,
		Anim:     r.anim.Handle(in.Page.String(), in.DT, in.Now),
		Now:      in.Now,
		Display:  in.Display,
		Page:     in.Page,
	})
}

func placeholder(c pages.Canvas) {
	c.Text("WEATHERSTAR 4000+", pages.Width/2, 180, pages.FontTitle, pages.Yellow, pages.AlignCenter)
	c.Text("NO PAGES ENABLED", pages.Width/2, 230, pages.FontExtended, pages.White, pages.AlignCenter)
	c.Text("Press M for settings", pages.Width/2, 280, pages.FontSmall, pages.LightBlue, pages.AlignCenter)
}

// pageDots marks the position of the current page below the ticker.
func pageDots(c pages.Canvas, index, count int) {
	if count <= 1 {
		return
	}
	const size, gap = 6, 6
	x := (pages.Width - (count*size + (count-1)*gap)) / 2
	for i := 0; i < count; i++ {
		col := pages.LightBlue
		if i == index {
			col = pages.Yellow
		}
		c.Fill(image.Rect(x, 467, x+size, 467+size), col)
		x += size + gap
	}
}

// menu draws the settings overlay with the numbered toggles.
func menu(c pages.Canvas, d settings.Display) {
	const w, h = 340, 300
	box := image.Rect((pages.Width-w)/2, (pages.Height-h)/2, (pages.Width+w)/2, (pages.Height+h)/2)
	c.Box(box, pages.DarkBlue, pages.Yellow)

	x, y := box.Min.X+20, box.Min.Y+14
	c.Text("SETTINGS", pages.Width/2, y, pages.FontExtended, pages.Yellow, pages.AlignCenter)
	y += 38
	for _, item := range d.Menu() {
		c.Text(fmt.Sprintf("[%d] %s", item.Key, item.Label), x, y, pages.FontSmall, pages.White, pages.AlignLeft)
		c.Text(item.Value, box.Max.X-20, y, pages.FontSmall, pages.Cyan, pages.AlignRight)
		y += 24
	}
	y += 10
	c.Text("[R] Refresh Weather", x, y, pages.FontSmall, pages.White, pages.AlignLeft)
	y += 24
	c.Text("[ESC] Close Menu", x, y, pages.FontSmall, pages.White, pages.AlignLeft)
}
