package screens

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/wesellis/WeatherStar-4000-Python/internal/anim"
	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
)

// City is one row of the travel cities page.
type City struct {
	Name       string
	Temp       int
	Conditions string
}

// TravelCityList is the fixed set of cities on the travel page.
var TravelCityList = []City{
	{"NEW YORK", 72, "Partly Cloudy"},
	{"LOS ANGELES", 78, "Sunny"},
	{"CHICAGO", 65, "Cloudy"},
	{"MIAMI", 85, "T-Storms"},
	{"DALLAS", 88, "Mostly Sunny"},
	{"SEATTLE", 62, "Rain"},
	{"DENVER", 70, "Clear"},
	{"ATLANTA", 79, "Partly Cloudy"},
}

var stripe = color.RGBA{0, 0, 60, 255}

// TravelCities draws the travel city table with alternating row stripes.
func TravelCities(ctx *pages.Context) {
	header(ctx, "Travel Cities", "Weather")
	c := ctx.Canvas

	y := 120
	for i, city := range TravelCityList {
		if i%2 == 1 {
			c.Fill(rect(60, y-5, 520, 30), stripe)
		}
		c.Text(city.Name, 80, y, pages.FontNormal, pages.Yellow, pages.AlignLeft)
		c.Text(fmt.Sprintf("%d°", city.Temp), 320, y, pages.FontNormal, pages.White, pages.AlignLeft)
		c.Text(city.Conditions, 400, y, pages.FontNormal, pages.White, pages.AlignLeft)
		y += 35
	}
}

type marineRow struct{ label, value string }

var marineConditions = []marineRow{
	{"Water Temperature", "72°F"},
	{"Wave Height", "2-4 ft"},
	{"Wave Period", "6 seconds"},
	{"Rip Current Risk", "MODERATE"},
	{"UV Index", "8 (Very High)"},
	{"Tide", "High @ 2:30 PM"},
	{"Wind", "E 10-15 mph"},
	{"Visibility", "10+ miles"},
}

const (
	marineBob  = 4.0  // px each way
	marineRate = 15.0 // px/s
)

// MarineForecast draws the coastal bulletin in a gently bobbing panel.
func MarineForecast(ctx *pages.Context) {
	header(ctx, "Marine", "Forecast")
	c := ctx.Canvas

	bob := int(ctx.Anim.Bounce("panel", anim.Oscillator{Rate: marineRate, Direction: 1}, -marineBob, marineBob))
	y := 120 + bob

	c.Box(rect(50, y-10, 540, 40+len(marineConditions)*28), pages.DarkBlue, pages.LightBlue)
	c.Text("COASTAL CONDITIONS", 60, y, pages.FontExtended, pages.Yellow, pages.AlignLeft)
	y += 35

	for _, r := range marineConditions {
		c.Text(r.label+":", 80, y, pages.FontNormal, pages.White, pages.AlignLeft)
		col := pages.White
		if strings.Contains(r.value, "MODERATE") || strings.Contains(r.value, "High") {
			col = pages.Yellow
		}
		c.Text(r.value, 300, y, pages.FontNormal, col, pages.AlignLeft)
		y += 28
	}
}
