package pages

import (
	"image"
	"image/color"
	"time"

	"github.com/wesellis/WeatherStar-4000-Python/internal/anim"
	"github.com/wesellis/WeatherStar-4000-Python/internal/settings"
	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

// Screen size of the slideshow.
const (
	Width  = 640
	Height = 480
)

// Font selects one of the display faces.
type Font int

const (
	FontNormal Font = iota
	FontSmall
	FontLarge
	FontTitle
	FontExtended
)

// Align is the horizontal anchor of drawn text.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Canvas is the drawing surface handed to render functions. Coordinates are
// screen pixels; text y is the top of the line.
type Canvas interface {
	Text(s string, x, y int, f Font, c color.Color, a Align)
	Measure(s string, f Font) int
	LineHeight(f Font) int
	Fill(r image.Rectangle, c color.Color)
	Box(r image.Rectangle, fill, border color.Color)
	Image(img image.Image, r image.Rectangle)
	Icon(name string, r image.Rectangle)
	Clip(r image.Rectangle, draw func())
	Link(r image.Rectangle, url string)
}

// Context is everything a render function may read for one frame.
type Context struct {
	Canvas   Canvas
	Snapshot *weather.Snapshot
	Anim     *anim.Handle
	Now      time.Time
	Display  settings.Display
	Page     PageID
}

// Palette of the classic display.
var (
	Yellow        = color.RGBA{255, 255, 0, 255}
	White         = color.RGBA{255, 255, 255, 255}
	Black         = color.RGBA{0, 0, 0, 255}
	PurpleHeader  = color.RGBA{32, 0, 87, 255}
	BlueGradient1 = color.RGBA{16, 32, 128, 255}
	BlueGradient2 = color.RGBA{0, 16, 64, 255}
	LightBlue     = color.RGBA{128, 128, 255, 255}
	Cyan          = color.RGBA{0, 255, 255, 255}
	Red           = color.RGBA{255, 0, 0, 255}
	DarkBlue      = color.RGBA{0, 50, 100, 255}
	Orange        = color.RGBA{255, 140, 0, 255}
)
