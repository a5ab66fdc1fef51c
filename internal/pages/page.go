// Package pages defines the closed set of slideshow pages, the registry that
// binds each page to its render function, and the drawing contract render
// functions are written against.
package pages

import (
	"fmt"

	"github.com/wesellis/WeatherStar-4000-Python/internal/settings"
)

// PageID identifies a slideshow page.
type PageID int

const (
	CurrentConditions PageID = iota
	LocalForecast
	HourlyForecast
	RegionalObservations
	TravelCities
	Almanac
	Radar
	MarineForecast
	MSNNews
	RedditNews
	LocalNews

	numPages
)

var slugs = [numPages]string{
	CurrentConditions:    "current-conditions",
	LocalForecast:        "local-forecast",
	HourlyForecast:       "hourly-forecast",
	RegionalObservations: "regional-observations",
	TravelCities:         "travel-cities",
	Almanac:              "almanac",
	Radar:                "radar",
	MarineForecast:       "marine-forecast",
	MSNNews:              "msn-news",
	RedditNews:           "reddit-news",
	LocalNews:            "local-news",
}

func (p PageID) String() string {
	if p < 0 || p >= numPages {
		return fmt.Sprintf("page(%d)", int(p))
	}
	return slugs[p]
}

// Valid reports whether p is one of the declared pages.
func (p PageID) Valid() bool { return p >= 0 && p < numPages }

// All returns every page in display order.
func All() []PageID {
	out := make([]PageID, 0, numPages)
	for p := PageID(0); p < numPages; p++ {
		out = append(out, p)
	}
	return out
}

// Parse resolves a slug back to its PageID.
func Parse(slug string) (PageID, bool) {
	for p, s := range slugs {
		if s == slug {
			return PageID(p), true
		}
	}
	return 0, false
}

// Strings converts a page list to slugs.
func Strings(ids []PageID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// Optional pages and the display flag that enables each one.
func showMarine(d settings.Display) bool    { return d.ShowMarine }
func showMSN(d settings.Display) bool       { return d.ShowMSN }
func showReddit(d settings.Display) bool    { return d.ShowReddit }
func showLocalNews(d settings.Display) bool { return d.ShowLocalNews }

// EnabledIf returns the display predicate of an optional page, or nil for a
// core page that is always shown.
func EnabledIf(p PageID) func(settings.Display) bool {
	switch p {
	case MarineForecast:
		return showMarine
	case MSNNews:
		return showMSN
	case RedditNews:
		return showReddit
	case LocalNews:
		return showLocalNews
	}
	return nil
}
