package weather

import "strings"

var iconNames = map[string]string{
	"skc":          "Clear",
	"few":          "Clear",
	"sct":          "Partly-Cloudy",
	"bkn":          "Cloudy",
	"ovc":          "Cloudy",
	"rain":         "Rain",
	"rain_showers": "Shower",
	"tsra":         "Thunderstorm",
	"snow":         "Light-Snow",
	"fog":          "Fog",
	"wind":         "Windy",
}

// IconName maps a condition icon URL such as
// https://api.weather.gov/icons/land/day/rain_showers,40?size=medium
// to a local icon name. Unknown conditions map to "Clear"; an empty URL to "".
func IconName(iconURL string) string {
	if iconURL == "" {
		return ""
	}
	code := iconURL
	if i := strings.LastIndex(code, "/"); i >= 0 {
		code = code[i+1:]
	}
	if i := strings.IndexAny(code, "?,"); i >= 0 {
		code = code[:i]
	}
	if name, ok := iconNames[code]; ok {
		return name
	}
	return "Clear"
}
