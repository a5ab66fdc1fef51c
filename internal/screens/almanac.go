package screens

import (
	"fmt"
	"time"

	"github.com/wesellis/WeatherStar-4000-Python/internal/astro"
	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

func sunTime(t time.Time, err error) string {
	if err != nil {
		return "--"
	}
	return t.Format("3:04 PM")
}

// Almanac draws today's statistics, sunrise and sunset for today and
// tomorrow, and the moon phase.
func Almanac(ctx *pages.Context) {
	header(ctx, "Weather", "Almanac")
	c := ctx.Canvas
	now := ctx.Now

	centered(c, "Weather Statistics for "+now.Format("January 02, 2006"), pages.Width/2, 100, pages.FontNormal, pages.Yellow)

	y := 130
	if ctx.Snapshot != nil && ctx.Snapshot.Observation != nil {
		o := ctx.Snapshot.Observation
		c.Text("CURRENT CONDITIONS", 60, y, pages.FontExtended, pages.Yellow, pages.AlignLeft)
		y += 35

		var lines []string
		if o.Temperature != nil {
			lines = append(lines, fmt.Sprintf("Temperature: %d°F", weather.CelsiusToFahrenheit(*o.Temperature)))
		}
		if o.RelativeHumidity != nil {
			lines = append(lines, fmt.Sprintf("Humidity: %.0f%%", *o.RelativeHumidity))
		}
		if o.Dewpoint != nil {
			lines = append(lines, fmt.Sprintf("Dewpoint: %d°F", weather.CelsiusToFahrenheit(*o.Dewpoint)))
		}
		if o.Pressure != nil {
			lines = append(lines, fmt.Sprintf("Pressure: %.2f in", weather.PascalToInHg(*o.Pressure)))
		}
		for _, l := range lines {
			c.Text(l, 80, y, pages.FontNormal, pages.White, pages.AlignLeft)
			y += 25
		}
		y += 10
	}

	c.Text("SUN & MOON", 60, y, pages.FontExtended, pages.Yellow, pages.AlignLeft)
	y += 35

	if ctx.Snapshot != nil {
		lat, lon := ctx.Snapshot.Location.Latitude, ctx.Snapshot.Location.Longitude
		loc := now.Location()
		tomorrow := now.AddDate(0, 0, 1)

		c.Text("Today", 200, y, pages.FontSmall, pages.Yellow, pages.AlignLeft)
		c.Text("Tomorrow", 360, y, pages.FontSmall, pages.Yellow, pages.AlignLeft)
		y += 25

		rise, err := astro.Sunrise(now, lat, lon, loc)
		rise2, err2 := astro.Sunrise(tomorrow, lat, lon, loc)
		c.Text("Sunrise:", 80, y, pages.FontNormal, pages.White, pages.AlignLeft)
		c.Text(sunTime(rise, err), 200, y, pages.FontNormal, pages.White, pages.AlignLeft)
		c.Text(sunTime(rise2, err2), 360, y, pages.FontNormal, pages.White, pages.AlignLeft)
		y += 25

		set, err := astro.Sunset(now, lat, lon, loc)
		set2, err2 := astro.Sunset(tomorrow, lat, lon, loc)
		c.Text("Sunset:", 80, y, pages.FontNormal, pages.White, pages.AlignLeft)
		c.Text(sunTime(set, err), 200, y, pages.FontNormal, pages.White, pages.AlignLeft)
		c.Text(sunTime(set2, err2), 360, y, pages.FontNormal, pages.White, pages.AlignLeft)
		y += 25
	}

	c.Text("Moon Phase: "+astro.MoonPhase(now), 80, y, pages.FontNormal, pages.White, pages.AlignLeft)
	c.Text(fmt.Sprintf("%.0f%% illuminated", astro.Illumination(now)*100), 360, y, pages.FontSmall, pages.White, pages.AlignLeft)
}
