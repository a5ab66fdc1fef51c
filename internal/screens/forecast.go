package screens

import (
	"fmt"
	"strings"

	"github.com/wesellis/WeatherStar-4000-Python/internal/anim"
	"github.com/wesellis/WeatherStar-4000-Python/internal/common"
	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

const (
	forecastColWidth   = 180
	forecastColSpacing = 30
	forecastLineHeight = 18
	forecastMaxLines   = 10
)

// columnName labels the three local forecast columns.
func columnName(i int, name string) string {
	switch i {
	case 0:
		fields := strings.Fields(name)
		if common.HasAny(name, "Tonight", "Overnight") ||
			(len(fields) > 0 && strings.Contains(fields[len(fields)-1], "Night")) {
			return "TONIGHT"
		}
		return "TODAY"
	case 1:
		return "TOMORROW"
	}
	day := strings.NewReplacer(" Night", "", " Afternoon", "", " Morning", "").Replace(name)
	return common.Truncate(strings.ToUpper(day), 9)
}

// LocalForecast draws the next three forecast periods side by side.
func LocalForecast(ctx *pages.Context) {
	header(ctx, "Local", "Forecast")
	c := ctx.Canvas

	if ctx.Snapshot == nil || len(ctx.Snapshot.Forecast) < 3 {
		unavailable(ctx, "DATA UNAVAILABLE")
		return
	}

	total := forecastColWidth*3 + forecastColSpacing*2
	startX := (pages.Width - total) / 2
	columns := [3]int{
		startX + 10,
		startX + forecastColWidth + forecastColSpacing,
		startX + (forecastColWidth+forecastColSpacing)*2 - 10,
	}

	for i, p := range ctx.Snapshot.Forecast[:3] {
		center := columns[i] + forecastColWidth/2
		centered(c, columnName(i, p.Name), center, 120, pages.FontExtended, pages.Yellow)
		if p.Temperature != nil {
			centered(c, fmt.Sprintf("%d°", int(*p.Temperature)), center, 150, pages.FontNormal, pages.White)
		}

		measure := func(s string) int { return c.Measure(s, pages.FontSmall) }
		lines := common.WrapWords(p.DetailedForecast, forecastColWidth-20, measure)
		if len(lines) > forecastMaxLines {
			lines = lines[:forecastMaxLines]
		}
		y := 180
		for _, line := range lines {
			centered(c, line, center, y, pages.FontSmall, pages.White)
			y += forecastLineHeight
		}
	}
}

const (
	hourlyTop        = 125
	hourlyBottom     = 390
	hourlyLineHeight = 25
	hourlyMaxRows    = 24
	hourlyRate       = 12.5 // px/s
)

// hourlyLine formats one hourly row to line up under the column header.
func hourlyLine(ctx *pages.Context, p weather.ForecastPeriod) string {
	label := common.Truncate(p.Name, 7)
	if !p.StartTime.IsZero() {
		label = p.StartTime.In(ctx.Now.Location()).Format("3 PM")
	}
	temp := "   "
	if p.Temperature != nil {
		temp = fmt.Sprintf("%3d", int(*p.Temperature))
	}
	return fmt.Sprintf("%7s   %s°  %s", label, temp, common.Truncate(p.ShortForecast, 35))
}

// HourlyForecast scrolls up to a day of hourly periods upwards in a loop.
// It falls back to the named periods when no hourly data is present.
func HourlyForecast(ctx *pages.Context) {
	header(ctx, "Hourly", "Forecast")
	c := ctx.Canvas

	var periods []weather.ForecastPeriod
	if ctx.Snapshot != nil {
		periods = ctx.Snapshot.Hourly
		if len(periods) == 0 {
			periods = ctx.Snapshot.Forecast
		}
	}
	if len(periods) == 0 {
		unavailable(ctx, "DATA UNAVAILABLE")
		return
	}
	if len(periods) > hourlyMaxRows {
		periods = periods[:hourlyMaxRows]
	}

	c.Text("TIME      TEMP  CONDITIONS", 60, hourlyTop, pages.FontSmall, pages.Yellow, pages.AlignLeft)

	visible := hourlyBottom - hourlyTop - 30
	cycle := float64(len(periods)*hourlyLineHeight + visible)
	scroll := ctx.Anim.Scroll("rows", anim.Scroller{Rate: hourlyRate}, 0, cycle)
	startY := hourlyBottom - int(scroll)

	c.Clip(rect(0, hourlyTop+30, pages.Width, visible), func() {
		// The second pass draws the wrapped copy so the loop is seamless.
		for _, base := range []int{startY, startY + int(cycle)} {
			for i, p := range periods {
				y := base + i*hourlyLineHeight
				if y < hourlyTop-50 || y > hourlyBottom+50 {
					continue
				}
				c.Text(hourlyLine(ctx, p), 60, y, pages.FontNormal, pages.White, pages.AlignLeft)
			}
		}
	})
}
