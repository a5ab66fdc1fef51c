package screens

import (
	"fmt"
	"strings"

	"github.com/wesellis/WeatherStar-4000-Python/internal/common"
	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

const (
	contentLeft   = 64
	leftColCenter = contentLeft + 127
	rightColX     = contentLeft + 257
	labelX        = rightColX + 20
	valueX        = pages.Width - 64 - 10
	rowSpacing    = 36
	windY         = 320
)

type row struct{ label, value string }

// conditionRows lists the right column rows for which data exists.
func conditionRows(o *weather.Observation, trend weather.Trend, showTrend bool) []row {
	var rows []row
	if o.RelativeHumidity != nil {
		rows = append(rows, row{"Humidity:", fmt.Sprintf("%d%%", int(*o.RelativeHumidity))})
	}
	if o.Dewpoint != nil {
		rows = append(rows, row{"Dewpoint:", fmt.Sprintf("%d°", weather.CelsiusToFahrenheit(*o.Dewpoint))})
	}
	if ft, ok := o.Ceiling(); ok {
		rows = append(rows, row{"Ceiling:", fmt.Sprintf("%d ft", ft)})
	} else {
		rows = append(rows, row{"Ceiling:", "Unlimited"})
	}
	if vis, ok := o.VisibilityText(); ok {
		rows = append(rows, row{"Visibility:", vis})
	}
	if o.Pressure != nil {
		value := fmt.Sprintf("%.2f\"", weather.PascalToInHg(*o.Pressure))
		if showTrend && trend != weather.TrendUnknown {
			value += " " + trend.Arrow()
		}
		rows = append(rows, row{"Pressure:", value})
	}
	switch {
	case o.HeatIndex != nil && o.Temperature != nil && *o.Temperature > 26:
		rows = append(rows, row{"Heat Index:", fmt.Sprintf("%d°", weather.CelsiusToFahrenheit(*o.HeatIndex))})
	case o.WindChill != nil && o.Temperature != nil && *o.Temperature < 10:
		rows = append(rows, row{"Wind Chill:", fmt.Sprintf("%d°", weather.CelsiusToFahrenheit(*o.WindChill))})
	}
	return rows
}

// CurrentConditions draws temperature, sky, wind and the detail rows.
func CurrentConditions(ctx *pages.Context) {
	header(ctx, "Current", "Conditions")
	c := ctx.Canvas

	if ctx.Snapshot == nil || ctx.Snapshot.Observation == nil {
		unavailable(ctx, "DATA UNAVAILABLE")
		return
	}
	o := ctx.Snapshot.Observation

	if o.Temperature != nil {
		centered(c, fmt.Sprintf("%d°", weather.CelsiusToFahrenheit(*o.Temperature)), leftColCenter, 140, pages.FontLarge, pages.White)
	}
	if o.Description != "" {
		centered(c, common.Truncate(o.Description, 15), leftColCenter, 190, pages.FontExtended, pages.White)
	}
	if name := weather.IconName(o.IconURL); name != "" {
		c.Icon(name, rect(leftColCenter-43, 260-37, 86, 75))
	}

	c.Text("Wind:", contentLeft+10, windY, pages.FontExtended, pages.White, pages.AlignLeft)
	c.Text(o.WindText(), contentLeft+245, windY, pages.FontExtended, pages.White, pages.AlignRight)
	if gust, ok := o.GustText(); ok {
		c.Text(gust, contentLeft+245, windY+35, pages.FontNormal, pages.White, pages.AlignRight)
	}

	y := 100
	if city := strings.TrimSpace(ctx.Snapshot.Location.City); city != "" {
		c.Text(common.Truncate(city, 20), rightColX, y, pages.FontNormal, pages.Yellow, pages.AlignLeft)
		y += 34
	}
	for _, r := range conditionRows(o, ctx.Snapshot.PressureTrend, ctx.Display.ShowTrends) {
		c.Text(r.label, labelX, y, pages.FontNormal, pages.White, pages.AlignLeft)
		c.Text(r.value, valueX, y, pages.FontNormal, pages.White, pages.AlignRight)
		y += rowSpacing
	}
}

// RegionalObservations draws the reporting station's latest values.
func RegionalObservations(ctx *pages.Context) {
	header(ctx, "Latest", "Observations")
	c := ctx.Canvas
	s := ctx.Snapshot

	if s == nil || s.Observation == nil {
		unavailable(ctx, "DATA UNAVAILABLE")
		return
	}
	o := s.Observation

	y := 120
	station := "Station"
	if s.Station != nil {
		station = s.Station.Name
		if station == "" {
			station = s.Station.ID
		}
	}
	c.Text("Station: "+station, 60, y, pages.FontNormal, pages.Yellow, pages.AlignLeft)
	y += 40

	if o.Temperature != nil {
		c.Text(fmt.Sprintf("Temperature: %d°", weather.CelsiusToFahrenheit(*o.Temperature)), 60, y, pages.FontNormal, pages.White, pages.AlignLeft)
		y += 30
	}
	if o.WindSpeed != nil {
		c.Text(fmt.Sprintf("Wind: %d mph", weather.KmhToMph(*o.WindSpeed)), 60, y, pages.FontNormal, pages.White, pages.AlignLeft)
		y += 30
	}
	if o.Description != "" {
		c.Text("Sky: "+o.Description, 60, y, pages.FontNormal, pages.White, pages.AlignLeft)
		y += 30
	}
	if !o.Timestamp.IsZero() {
		observed := o.Timestamp.In(ctx.Now.Location()).Format("3:04 PM 01/02")
		c.Text("Observed: "+observed, 60, y, pages.FontNormal, pages.White, pages.AlignLeft)
	}
}
