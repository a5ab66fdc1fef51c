// Package nws is a read-only client for the National Weather Service API
// (api.weather.gov). Every response is cached by URL; a failed request is
// logged and reported as "no data".
package nws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/wesellis/WeatherStar-4000-Python/internal/cache"
	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

const (
	DefaultBaseURL   = "https://api.weather.gov"
	DefaultUserAgent = "WeatherStar4000/1.0 (github.com/wesellis/WeatherStar-4000-Python)"
	DefaultTimeout   = 10 * time.Second

	PointsMaxAge      = 3600 * time.Second
	StationsMaxAge    = 3600 * time.Second
	ObservationMaxAge = 300 * time.Second
	ForecastMaxAge    = 1800 * time.Second
	HourlyMaxAge      = 1800 * time.Second
	AlertsMaxAge      = 300 * time.Second

	maxBodyBytes = 8 << 20
)

var errInvalidJSON = errors.New("response is not valid json")

// Recorder is told about every upstream request that produced no data.
type Recorder interface {
	UpstreamFailure(endpoint string)
}

// Client talks to api.weather.gov.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
	cache      *cache.Cache[[]byte]
	recorder   Recorder
	log        *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another host, e.g. an httptest server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithUserAgent sets the identifying User-Agent the API requires.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithHTTPClient replaces the default 10 second client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache shares a response cache with other components.
func WithCache(rc *cache.Cache[[]byte]) Option {
	return func(c *Client) { c.cache = rc }
}

// WithRecorder registers a failure recorder, typically the metrics collector.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// New creates a Client.
func New(log *zap.SugaredLogger, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		circuit:    newBreaker("nws"),
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = cache.New[[]byte]()
	}
	return c
}

// GetGridPoint resolves a coordinate to its forecast office grid cell.
func (c *Client) GetGridPoint(ctx context.Context, lat, lon float64) (weather.GridPoint, bool) {
	var p pointResponse
	u := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, lat, lon)
	if !c.getJSON(ctx, "points", u, PointsMaxAge, &p) {
		return weather.GridPoint{}, false
	}
	return p.toGridPoint(), true
}

// GetStations lists the observation stations for a grid point. The URL comes
// from the grid point response.
func (c *Client) GetStations(ctx context.Context, stationsURL string) ([]weather.Station, bool) {
	var s stationsResponse
	if !c.getJSON(ctx, "stations", stationsURL, StationsMaxAge, &s) {
		return nil, false
	}
	return s.toStations(), true
}

// SelectStation applies the package-level selection rule.
func (c *Client) SelectStation(stations []weather.Station) (weather.Station, bool) {
	return SelectStation(stations)
}

// GetCurrentObservations returns the latest observation for a station.
func (c *Client) GetCurrentObservations(ctx context.Context, stationID string) (weather.Observation, bool) {
	var o observationResponse
	u := fmt.Sprintf("%s/stations/%s/observations/latest", c.baseURL, stationID)
	if !c.getJSON(ctx, "observations", u, ObservationMaxAge, &o) {
		return weather.Observation{}, false
	}
	return o.toObservation(), true
}

// GetForecast returns the named-period forecast for a grid cell.
func (c *Client) GetForecast(ctx context.Context, office string, gridX, gridY int) ([]weather.ForecastPeriod, bool) {
	var f forecastResponse
	u := fmt.Sprintf("%s/gridpoints/%s/%d,%d/forecast", c.baseURL, office, gridX, gridY)
	if !c.getJSON(ctx, "forecast", u, ForecastMaxAge, &f) {
		return nil, false
	}
	return f.toPeriods(), true
}

// GetHourlyForecast returns the hourly forecast for a grid cell.
func (c *Client) GetHourlyForecast(ctx context.Context, office string, gridX, gridY int) ([]weather.ForecastPeriod, bool) {
	var f forecastResponse
	u := fmt.Sprintf("%s/gridpoints/%s/%d,%d/forecast/hourly", c.baseURL, office, gridX, gridY)
	if !c.getJSON(ctx, "hourly", u, HourlyMaxAge, &f) {
		return nil, false
	}
	return f.toPeriods(), true
}

// GetActiveAlerts returns watches and warnings in effect for the point.
func (c *Client) GetActiveAlerts(ctx context.Context, lat, lon float64) ([]weather.Alert, bool) {
	var a alertsResponse
	u := fmt.Sprintf("%s/alerts/active?point=%.4f,%.4f", c.baseURL, lat, lon)
	if !c.getJSON(ctx, "alerts", u, AlertsMaxAge, &a) {
		return nil, false
	}
	return a.toAlerts(), true
}

// SelectStation prefers the first four-letter identifier that does not start
// with U or C, falling back to the first station.
func SelectStation(stations []weather.Station) (weather.Station, bool) {
	for _, s := range stations {
		if len(s.ID) == 4 && s.ID[0] != 'U' && s.ID[0] != 'C' {
			return s, true
		}
	}
	if len(stations) > 0 {
		return stations[0], true
	}
	return weather.Station{}, false
}

func (c *Client) getJSON(ctx context.Context, endpoint, url string, maxAge time.Duration, dst any) bool {
	body, err := c.cache.GetOrFetch(url, maxAge, func() ([]byte, error) {
		return c.fetch(ctx, url)
	})
	if err == nil {
		err = json.Unmarshal(body, dst)
	}
	if err != nil {
		c.log.Warnw("weather api request failed", "endpoint", endpoint, "url", url, "error", err)
		if c.recorder != nil {
			c.recorder.UpstreamFailure(endpoint)
		}
		return false
	}
	return true
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := doRequestWithResilience(ctx, c.httpClient, c.circuit, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/geo+json")
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if !json.Valid(body) {
		return nil, errInvalidJSON
	}
	c.log.Debugw("weather api response", "url", url, "bytes", len(body))
	return body, nil
}
