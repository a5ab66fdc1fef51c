package weather

import (
	"context"
)

// API is the upstream weather feed. Every method reports "no data" with
// ok=false instead of an error; failures are logged by the implementation.
type API interface {
	GetGridPoint(ctx context.Context, lat, lon float64) (GridPoint, bool)
	GetStations(ctx context.Context, stationsURL string) ([]Station, bool)
	SelectStation(stations []Station) (Station, bool)
	GetCurrentObservations(ctx context.Context, stationID string) (Observation, bool)
	GetForecast(ctx context.Context, office string, gridX, gridY int) ([]ForecastPeriod, bool)
	GetHourlyForecast(ctx context.Context, office string, gridX, gridY int) ([]ForecastPeriod, bool)
	GetActiveAlerts(ctx context.Context, lat, lon float64) ([]Alert, bool)
}

// HeadlineSource supplies one news feed.
type HeadlineSource interface {
	Feed() Feed
	Headlines(ctx context.Context, loc Location, alerts []Alert) ([]Headline, bool)
}

// RadarSource supplies the latest radar composite, or nothing.
type RadarSource interface {
	Latest(ctx context.Context) (RadarImage, bool)
}

// Store keeps the observation history used for trends.
type Store interface {
	SaveObservation(stationID string, obs Observation)
	Recent(stationID string, n int) []Observation
}
