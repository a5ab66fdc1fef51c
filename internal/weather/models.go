package weather

import (
	"fmt"
	"image"
	"time"
)

// Location is the point the display reports on. Coordinates are always set;
// the descriptive fields are filled in once the grid point resolves.
type Location struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	City        string  `json:"city,omitempty"`
	State       string  `json:"state,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Label is the human readable name used by headers and the ticker.
func (l Location) Label() string {
	switch {
	case l.City != "" && l.State != "":
		return l.City + ", " + l.State
	case l.City != "":
		return l.City
	case l.Description != "":
		return l.Description
	}
	return fmt.Sprintf("%.2f, %.2f", l.Latitude, l.Longitude)
}

// GridPoint is the forecast office grid cell covering a coordinate.
type GridPoint struct {
	Office                 string `json:"office"`
	GridX                  int    `json:"gridX"`
	GridY                  int    `json:"gridY"`
	ObservationStationsURL string `json:"observationStations"`
	City                   string `json:"city,omitempty"`
	State                  string `json:"state,omitempty"`
	RadarStation           string `json:"radarStation,omitempty"`
	TimeZone               string `json:"timeZone,omitempty"`
}

// Station is an observation station near the grid point.
type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CloudLayer is one reported cloud layer.
type CloudLayer struct {
	Amount string   `json:"amount"`
	BaseM  *float64 `json:"baseM,omitempty"`
}

// Observation is the latest station report. Every measured quantity is optional.
// Units follow the upstream feed: Celsius, km/h, Pa, meters, degrees, percent.
type Observation struct {
	Timestamp        time.Time    `json:"timestamp"`
	Description      string       `json:"description"`
	IconURL          string       `json:"icon,omitempty"`
	Temperature      *float64     `json:"temperatureC,omitempty"`
	Dewpoint         *float64     `json:"dewpointC,omitempty"`
	WindDirection    *float64     `json:"windDirectionDeg,omitempty"`
	WindSpeed        *float64     `json:"windSpeedKmh,omitempty"`
	WindGust         *float64     `json:"windGustKmh,omitempty"`
	Pressure         *float64     `json:"pressurePa,omitempty"`
	Visibility       *float64     `json:"visibilityM,omitempty"`
	RelativeHumidity *float64     `json:"relativeHumidity,omitempty"`
	HeatIndex        *float64     `json:"heatIndexC,omitempty"`
	WindChill        *float64     `json:"windChillC,omitempty"`
	CloudLayers      []CloudLayer `json:"cloudLayers,omitempty"`
}

// ForecastPeriod is one named period ("Tonight", "Tuesday") or one hour of
// the hourly forecast.
type ForecastPeriod struct {
	Number              int       `json:"number"`
	Name                string    `json:"name"`
	StartTime           time.Time `json:"startTime"`
	EndTime             time.Time `json:"endTime"`
	IsDaytime           bool      `json:"isDaytime"`
	Temperature         *float64  `json:"temperature,omitempty"`
	TemperatureUnit     string    `json:"temperatureUnit"`
	PrecipitationChance *float64  `json:"precipitationChance,omitempty"`
	WindSpeed           string    `json:"windSpeed"`
	WindDirection       string    `json:"windDirection"`
	IconURL             string    `json:"icon,omitempty"`
	ShortForecast       string    `json:"shortForecast"`
	DetailedForecast    string    `json:"detailedForecast"`
}

// Alert is an active watch, warning or advisory for the point.
type Alert struct {
	ID       string    `json:"id"`
	Event    string    `json:"event"`
	Headline string    `json:"headline"`
	Severity string    `json:"severity"`
	URL      string    `json:"url,omitempty"`
	Expires  time.Time `json:"expires"`
}

// Feed names a headline feed shown by one of the news pages.
type Feed string

const (
	FeedMSN    Feed = "msn"
	FeedReddit Feed = "reddit"
	FeedLocal  Feed = "local"
)

// Headline is a news item. Link is nil for plain-text items.
type Headline struct {
	Text string  `json:"text"`
	Link *string `json:"link,omitempty"`
}

// RadarImage is a composite radar frame and the time it represents.
type RadarImage struct {
	Image     image.Image `json:"-"`
	URL       string      `json:"url"`
	ValidTime time.Time   `json:"validTime"`
}

// Trend describes barometric pressure movement over recent readings.
type Trend int

const (
	TrendUnknown Trend = iota
	TrendSteady
	TrendRising
	TrendFalling
)

// Arrow is the glyph drawn next to the pressure reading.
func (t Trend) Arrow() string {
	switch t {
	case TrendRising:
		return "↑"
	case TrendFalling:
		return "↓"
	case TrendSteady:
		return "→"
	}
	return ""
}

func (t Trend) String() string {
	switch t {
	case TrendRising:
		return "rising"
	case TrendFalling:
		return "falling"
	case TrendSteady:
		return "steady"
	}
	return "unknown"
}

// Snapshot is the complete set of data one frame renders from. A published
// snapshot is never modified; refreshes build a new one.
type Snapshot struct {
	Location      Location            `json:"location"`
	GridPoint     *GridPoint          `json:"gridPoint,omitempty"`
	Station       *Station            `json:"station,omitempty"`
	Observation   *Observation        `json:"observation,omitempty"`
	PressureTrend Trend               `json:"pressureTrend"`
	Forecast      []ForecastPeriod    `json:"forecast,omitempty"`
	Hourly        []ForecastPeriod    `json:"hourly,omitempty"`
	Alerts        []Alert             `json:"alerts,omitempty"`
	Headlines     map[Feed][]Headline `json:"headlines,omitempty"`
	Radar         *RadarImage         `json:"radar,omitempty"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// Clone returns a shallow copy whose map can be replaced without touching s.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return &Snapshot{}
	}
	c := *s
	if s.Headlines != nil {
		c.Headlines = make(map[Feed][]Headline, len(s.Headlines))
		for k, v := range s.Headlines {
			c.Headlines[k] = v
		}
	}
	return &c
}
