// Package screens implements the render function of every slideshow page.
// Render functions read the snapshot and never modify it; an element whose
// data is missing is left out.
package screens

import (
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
)

// Descriptors returns one descriptor per page in display order.
func Descriptors() []pages.Descriptor {
	table := []struct {
		id     pages.PageID
		title  string
		render pages.RenderFunc
	}{
		{pages.CurrentConditions, "Current Conditions", CurrentConditions},
		{pages.LocalForecast, "Local Forecast", LocalForecast},
		{pages.HourlyForecast, "Hourly Forecast", HourlyForecast},
		{pages.RegionalObservations, "Latest Observations", RegionalObservations},
		{pages.TravelCities, "Travel Cities Weather", TravelCities},
		{pages.Almanac, "Weather Almanac", Almanac},
		{pages.Radar, "Local Radar", Radar},
		{pages.MarineForecast, "Marine Forecast", MarineForecast},
		{pages.MSNNews, "MSN Top Stories", MSNNews},
		{pages.RedditNews, "Reddit Headlines", RedditNews},
		{pages.LocalNews, "Local News", LocalNews},
	}

	out := make([]pages.Descriptor, 0, len(table))
	for _, row := range table {
		out = append(out, pages.Descriptor{
			ID:        row.id,
			Title:     row.title,
			Render:    row.render,
			EnabledIf: pages.EnabledIf(row.id),
		})
	}
	return out
}

func rect(x, y, w, h int) image.Rectangle { return image.Rect(x, y, x+w, y+h) }

// header draws the logo, the one or two line title and the clock.
func header(ctx *pages.Context, top, bottom string) {
	c := ctx.Canvas
	c.Icon("logo", rect(50, 25, 85, 50))
	if bottom == "" {
		c.Text(strings.ToUpper(top), 170, 40, pages.FontTitle, pages.Yellow, pages.AlignLeft)
	} else {
		c.Text(strings.ToUpper(top), 170, 27, pages.FontTitle, pages.Yellow, pages.AlignLeft)
		c.Text(strings.ToUpper(bottom), 170, 53, pages.FontTitle, pages.Yellow, pages.AlignLeft)
	}
	c.Text(clock(ctx.Now), 585, 44, pages.FontSmall, pages.White, pages.AlignRight)
}

func clock(t time.Time) string { return t.Format("3:04 PM") }

// unavailable draws the no-data indicator in the content area.
func unavailable(ctx *pages.Context, what string) {
	ctx.Canvas.Text(what, pages.Width/2, 230, pages.FontExtended, pages.Yellow, pages.AlignCenter)
}

// centered draws text centered on (cx, cy).
func centered(c pages.Canvas, s string, cx, cy int, f pages.Font, col color.Color) {
	c.Text(s, cx, cy-c.LineHeight(f)/2, f, col, pages.AlignCenter)
}
