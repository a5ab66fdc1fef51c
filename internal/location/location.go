// Package location decides which point the display reports on.
package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kelvins/geocoder"
	"go.uber.org/zap"

	"github.com/wesellis/WeatherStar-4000-Python/internal/settings"
	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

// ErrUnresolved is returned when no source produced a location and no
// fallback is configured.
var ErrUnresolved = errors.New("location could not be resolved")

const (
	ipapiURL      = "https://ipapi.co/json/"
	ipAPIURL      = "http://ip-api.com/json/"
	lookupTimeout = 5 * time.Second
)

// Geocoder turns a free-form address into coordinates.
type Geocoder interface {
	Geocode(address string) (lat, lon float64, err error)
}

// GoogleGeocoder geocodes through the Google Geocoding API.
type GoogleGeocoder struct{}

// NewGoogleGeocoder configures the API key used for every lookup.
func NewGoogleGeocoder(apiKey string) GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return GoogleGeocoder{}
}

// Geocode implements Geocoder. A five digit address is looked up as a US
// postal code.
func (GoogleGeocoder) Geocode(address string) (float64, float64, error) {
	addr := geocoder.Address{Street: address}
	if isZip(address) {
		addr = geocoder.Address{PostalCode: address, Country: "US"}
	}
	loc, err := geocoder.Geocoding(addr)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %q: %w", address, err)
	}
	return loc.Latitude, loc.Longitude, nil
}

func isZip(s string) bool {
	if len(s) != 5 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Request is what the caller knows before resolution starts.
type Request struct {
	Lat, Lon *float64
	Address  string
	Saved    settings.Location
}

// Resolver tries each location source in order.
type Resolver struct {
	client   *http.Client
	geocoder Geocoder
	fallback *weather.Location
	log      *zap.SugaredLogger

	ipapiURL string
	ipAPIURL string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithGeocoder enables address lookups.
func WithGeocoder(g Geocoder) Option {
	return func(r *Resolver) { r.geocoder = g }
}

// WithFallback is used when every other source fails.
func WithFallback(loc weather.Location) Option {
	return func(r *Resolver) { r.fallback = &loc }
}

// WithIPLookupURLs overrides the two IP geolocation endpoints.
func WithIPLookupURLs(primary, secondary string) Option {
	return func(r *Resolver) {
		r.ipapiURL = primary
		r.ipAPIURL = secondary
	}
}

// NewResolver creates a resolver. client may be nil.
func NewResolver(client *http.Client, log *zap.SugaredLogger, opts ...Option) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: lookupTimeout}
	}
	r := &Resolver{
		client:   client,
		log:      log,
		ipapiURL: ipapiURL,
		ipAPIURL: ipAPIURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns, in order of preference: the explicit coordinates, the
// saved manual location, the geocoded address, the IP location (when the
// saved settings allow auto-detection) and the fallback.
func (r *Resolver) Resolve(ctx context.Context, req Request) (weather.Location, error) {
	if req.Lat != nil && req.Lon != nil {
		r.log.Infow("using location from command line", "lat", *req.Lat, "lon", *req.Lon)
		return weather.Location{Latitude: *req.Lat, Longitude: *req.Lon}, nil
	}

	if req.Saved.Manual() {
		r.log.Infow("using saved location", "description", req.Saved.Description)
		return weather.Location{
			Latitude:    *req.Saved.Lat,
			Longitude:   *req.Saved.Lon,
			Description: req.Saved.Description,
		}, nil
	}

	if req.Address != "" {
		if r.geocoder == nil {
			r.log.Warnw("address given but no geocoder configured", "address", req.Address)
		} else if lat, lon, err := r.geocoder.Geocode(req.Address); err != nil {
			r.log.Warnw("geocoding failed", "address", req.Address, "error", err)
		} else {
			r.log.Infow("geocoded address", "address", req.Address, "lat", lat, "lon", lon)
			return weather.Location{Latitude: lat, Longitude: lon, Description: req.Address}, nil
		}
	}

	if req.Saved.AutoDetect {
		if loc, ok := r.detect(ctx); ok {
			return loc, nil
		}
		r.log.Infow("automatic location detection failed")
	}

	if r.fallback != nil {
		r.log.Infow("using fallback location", "location", r.fallback.Label())
		return *r.fallback, nil
	}
	return weather.Location{}, ErrUnresolved
}

type ipapiPayload struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	RegionCode  string  `json:"region_code"`
	CountryCode string  `json:"country_code"`
}

type ipAPIPayload struct {
	Status      string  `json:"status"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	RegionName  string  `json:"regionName"`
	CountryCode string  `json:"countryCode"`
}

// detect asks the IP geolocation services. Only US results count since the
// forecast source covers the US only.
func (r *Resolver) detect(ctx context.Context) (weather.Location, bool) {
	var a ipapiPayload
	if err := r.getJSON(ctx, r.ipapiURL, &a); err != nil {
		r.log.Debugw("ip geolocation failed", "url", r.ipapiURL, "error", err)
	} else if loc, ok := usLocation(a.CountryCode, a.Latitude, a.Longitude, a.City, firstNonEmpty(a.RegionCode, a.Region)); ok {
		r.log.Infow("location detected", "location", loc.Description, "lat", loc.Latitude, "lon", loc.Longitude)
		return loc, true
	}

	var b ipAPIPayload
	if err := r.getJSON(ctx, r.ipAPIURL, &b); err != nil {
		r.log.Debugw("ip geolocation failed", "url", r.ipAPIURL, "error", err)
	} else if b.Status == "success" {
		if loc, ok := usLocation(b.CountryCode, b.Lat, b.Lon, b.City, firstNonEmpty(b.Region, b.RegionName)); ok {
			r.log.Infow("location detected", "location", loc.Description, "lat", loc.Latitude, "lon", loc.Longitude)
			return loc, true
		}
	}
	return weather.Location{}, false
}

func usLocation(country string, lat, lon float64, city, region string) (weather.Location, bool) {
	if country != "US" || lat == 0 || lon == 0 {
		return weather.Location{}, false
	}
	if city == "" {
		city = "Unknown"
	}
	desc := city
	if region != "" {
		desc += ", " + region
	}
	return weather.Location{Latitude: lat, Longitude: lon, Description: desc}, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func (r *Resolver) getJSON(ctx context.Context, url string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
