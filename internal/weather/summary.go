package weather

import (
	"fmt"
	"math"
	"strings"
)

const tickerBrand = "WeatherStar 4000+"

// TickerItems composes the bottom crawl text from a snapshot. The first item
// is the location and current conditions line; active alerts follow.
func TickerItems(s *Snapshot) []string {
	if s == nil {
		return []string{tickerBrand}
	}

	var b strings.Builder
	b.WriteString(tickerBrand)
	b.WriteString(" - ")
	b.WriteString(s.Location.Label())

	if obs := s.Observation; obs != nil && obs.Temperature != nil {
		fmt.Fprintf(&b, "  •  Currently: %d°F", CelsiusToFahrenheit(*obs.Temperature))
		if obs.Description != "" {
			b.WriteString(", ")
			b.WriteString(obs.Description)
		}
		if obs.RelativeHumidity != nil && *obs.RelativeHumidity > 0 {
			fmt.Fprintf(&b, ", %d%% humidity", int(*obs.RelativeHumidity))
		}
		if len(s.Forecast) > 0 {
			p := s.Forecast[0]
			fmt.Fprintf(&b, "  •  %s: %s", p.Name, p.ShortForecast)
		}
	}

	items := []string{b.String()}
	for _, a := range s.Alerts {
		text := a.Headline
		if text == "" {
			text = a.Event
		}
		if text != "" {
			items = append(items, "ALERT: "+text)
		}
	}
	return items
}

// PressureTrend compares the newest reading against the oldest of the given
// history (oldest first). A change beyond 0.02 inHg counts as movement.
func PressureTrend(history []Observation) Trend {
	var readings []float64
	for _, o := range history {
		if o.Pressure != nil {
			readings = append(readings, PascalToInHg(*o.Pressure))
		}
	}
	if len(readings) < 2 {
		return TrendUnknown
	}
	change := readings[len(readings)-1] - readings[0]
	switch {
	case change > 0.02:
		return TrendRising
	case change < -0.02:
		return TrendFalling
	}
	return TrendSteady
}

// CelsiusToFahrenheit truncates toward zero, matching the classic display.
func CelsiusToFahrenheit(c float64) int {
	return int(c*9/5 + 32)
}

// KmhToMph converts and truncates a wind speed.
func KmhToMph(kmh float64) int {
	return int(kmh * 0.621371)
}

// PascalToInHg converts barometric pressure.
func PascalToInHg(pa float64) float64 {
	return pa * 0.0002953
}

// MetersToMiles converts a visibility distance.
func MetersToMiles(m float64) float64 {
	return m * 0.000621371
}

// MetersToFeet converts a cloud base height.
func MetersToFeet(m float64) int {
	return int(m * 3.28084)
}

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CompassPoint maps a bearing in degrees to one of 16 compass names.
func CompassPoint(deg float64) string {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return compassPoints[int((deg+11.25)/22.5)%16]
}

// Ceiling returns the base of the lowest broken or overcast layer in feet.
func (o *Observation) Ceiling() (int, bool) {
	for _, l := range o.CloudLayers {
		if (l.Amount == "BKN" || l.Amount == "OVC") && l.BaseM != nil {
			ft := MetersToFeet(*l.BaseM)
			if ft == 0 {
				return 0, false
			}
			return ft, true
		}
	}
	return 0, false
}

// WindText formats speed and direction as shown on the conditions page:
// direction padded to three columns, speed right aligned.
func (o *Observation) WindText() string {
	switch {
	case o.WindSpeed == nil:
		return "N/A"
	case *o.WindSpeed == 0:
		return "Calm"
	}
	dir := ""
	if o.WindDirection != nil {
		dir = CompassPoint(*o.WindDirection)
	}
	return fmt.Sprintf("%-3s%3d", dir, KmhToMph(*o.WindSpeed))
}

// GustText reports "Gusts to N" when a gust was measured.
func (o *Observation) GustText() (string, bool) {
	if o.WindGust == nil {
		return "", false
	}
	return fmt.Sprintf("Gusts to %d", KmhToMph(*o.WindGust)), true
}

// VisibilityText formats visibility in miles, capped at ten.
func (o *Observation) VisibilityText() (string, bool) {
	if o.Visibility == nil {
		return "", false
	}
	mi := MetersToMiles(*o.Visibility)
	if mi >= 10 {
		return "10 mi", true
	}
	return fmt.Sprintf("%.1f mi", mi), true
}
