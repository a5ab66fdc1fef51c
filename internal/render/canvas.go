package render

import (
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
)

// Link is a clickable region of a frame.
type Link struct {
	Rect image.Rectangle
	URL  string
}

// ImageCanvas draws a page onto an RGBA frame.
type ImageCanvas struct {
	dst   *image.RGBA
	fonts *Fonts
	icons *IconSet
	now   time.Time
	links []Link
}

// NewImageCanvas wraps dst. icons may be nil, in which case icons are skipped.
func NewImageCanvas(dst *image.RGBA, fonts *Fonts, icons *IconSet, now time.Time) *ImageCanvas {
	return &ImageCanvas{dst: dst, fonts: fonts, icons: icons, now: now}
}

// Links returns the clickable regions registered so far.
func (c *ImageCanvas) Links() []Link { return c.links }

func drawString(dst draw.Image, face font.Face, s string, x, y int, col color.Color, a pages.Align) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	switch a {
	case pages.AlignCenter:
		x -= d.MeasureString(s).Round() / 2
	case pages.AlignRight:
		x -= d.MeasureString(s).Round()
	}
	d.Dot = fixed.P(x, y+face.Metrics().Ascent.Round())
	d.DrawString(s)
}

func (c *ImageCanvas) Text(s string, x, y int, f pages.Font, col color.Color, a pages.Align) {
	drawString(c.dst, c.fonts.Face(f), s, x, y, col, a)
}

func (c *ImageCanvas) Measure(s string, f pages.Font) int {
	return font.MeasureString(c.fonts.Face(f), s).Round()
}

func (c *ImageCanvas) LineHeight(f pages.Font) int {
	m := c.fonts.Face(f).Metrics()
	return m.Ascent.Round() + m.Descent.Round()
}

func (c *ImageCanvas) Fill(r image.Rectangle, col color.Color) {
	draw.Draw(c.dst, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// Box draws a rounded panel with a border.
func (c *ImageCanvas) Box(r image.Rectangle, fill, border color.Color) {
	if r.Empty() {
		return
	}
	w, h := r.Dx(), r.Dy()
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	gc := draw2dimg.NewGraphicContext(tmp)
	gc.SetFillColor(fill)
	gc.SetStrokeColor(border)
	gc.SetLineWidth(2)
	draw2dkit.RoundedRectangle(gc, 1, 1, float64(w-1), float64(h-1), 12, 12)
	gc.FillStroke()
	draw.Draw(c.dst, r, tmp, image.Point{}, draw.Over)
}

// Image scales img into r.
func (c *ImageCanvas) Image(img image.Image, r image.Rectangle) {
	if img == nil || r.Empty() {
		return
	}
	xdraw.ApproxBiLinear.Scale(c.dst, r, img, img.Bounds(), xdraw.Over, nil)
}

// Icon draws the current frame of a named icon into r.
func (c *ImageCanvas) Icon(name string, r image.Rectangle) {
	if c.icons == nil || r.Empty() {
		return
	}
	img := c.icons.Frame(name, r.Dx(), r.Dy(), c.now)
	if img == nil {
		return
	}
	if img.Bounds().Size() == r.Size() {
		draw.Draw(c.dst, r, img, img.Bounds().Min, draw.Over)
		return
	}
	c.Image(img, r)
}

// Clip restricts drawing done by fn to r.
func (c *ImageCanvas) Clip(r image.Rectangle, fn func()) {
	prev := c.dst
	c.dst = prev.SubImage(r.Intersect(prev.Bounds())).(*image.RGBA)
	defer func() { c.dst = prev }()
	fn()
}

func (c *ImageCanvas) Link(r image.Rectangle, url string) {
	r = r.Intersect(c.dst.Bounds())
	if r.Empty() || url == "" {
		return
	}
	c.links = append(c.links, Link{Rect: r, URL: url})
}

var _ pages.Canvas = (*ImageCanvas)(nil)
