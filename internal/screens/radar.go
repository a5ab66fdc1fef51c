package screens

import (
	"image"
	"image/color"
	"strings"

	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
)

var (
	radarLand   = color.RGBA{20, 40, 20, 255}
	radarBorder = color.RGBA{60, 80, 120, 255}
)

var radarLegend = []struct {
	label string
	color color.RGBA
}{
	{"Light", color.RGBA{0, 200, 0, 255}},
	{"Moderate", color.RGBA{255, 255, 0, 255}},
	{"Heavy", color.RGBA{255, 100, 0, 255}},
	{"Severe", color.RGBA{255, 0, 0, 255}},
}

func radarImage(ctx *pages.Context) image.Image {
	if ctx.Snapshot == nil || ctx.Snapshot.Radar == nil || ctx.Snapshot.Radar.Image == nil {
		return nil
	}
	if ctx.Snapshot.Radar.Image.Bounds().Empty() {
		return nil
	}
	return ctx.Snapshot.Radar.Image
}

// Radar draws the latest composite scaled into the map area, or a notice
// when no image could be fetched.
func Radar(ctx *pages.Context) {
	c := ctx.Canvas
	area := rect(60, 100, 520, 280)
	center := area.Min.Add(area.Size().Div(2))

	c.Box(area, radarLand, radarBorder)

	if img := radarImage(ctx); img != nil {
		b := img.Bounds()
		scale := min(float64(area.Dx())/float64(b.Dx()), float64(area.Dy())/float64(b.Dy())) * 0.8
		w, h := int(float64(b.Dx())*scale), int(float64(b.Dy())*scale)
		c.Image(img, rect(center.X-w/2, center.Y-h/2, w, h))
	} else {
		centered(c, "RADAR UNAVAILABLE", center.X, center.Y, pages.FontNormal, pages.White)
	}

	// Header after the image so the logo stays on top.
	header(ctx, "Local", "Radar")

	c.Text("N", center.X-5, area.Min.Y+5, pages.FontSmall, pages.White, pages.AlignLeft)
	c.Text("S", center.X-5, area.Max.Y-20, pages.FontSmall, pages.White, pages.AlignLeft)
	c.Text("E", area.Max.X-15, center.Y-5, pages.FontSmall, pages.White, pages.AlignLeft)
	c.Text("W", area.Min.X+5, center.Y-5, pages.FontSmall, pages.White, pages.AlignLeft)

	if ctx.Snapshot != nil {
		l := ctx.Snapshot.Location
		label := strings.Trim(strings.TrimSpace(l.City+", "+l.State), ", ")
		if label != "" {
			centered(c, label, pages.Width/2, 400, pages.FontSmall, pages.Yellow)
		}
	}

	for i, item := range radarLegend {
		x := 160 + i*80
		c.Fill(rect(x, 420, 12, 8), item.color)
		c.Text(item.label, x+15, 419, pages.FontSmall, pages.White, pages.AlignLeft)
	}
}
