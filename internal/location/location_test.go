package location

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wesellis/WeatherStar-4000-Python/internal/settings"
	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

type fakeGeocoder struct {
	lat, lon float64
	err      error
	calls    int
}

func (f *fakeGeocoder) Geocode(string) (float64, float64, error) {
	f.calls++
	return f.lat, f.lon, f.err
}

func ptr(f float64) *float64 { return &f }

func jsonServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

var kansasCity = weather.Location{Latitude: 39.0997, Longitude: -94.5786, Description: "Kansas City, MO"}

func TestResolve_Order(t *testing.T) {
	seattleIP := `{"latitude":47.6,"longitude":-122.3,"city":"Seattle","region":"Washington","region_code":"WA","country_code":"US"}`
	torontoIP := `{"latitude":43.7,"longitude":-79.4,"city":"Toronto","region_code":"ON","country_code":"CA"}`
	denverIP := `{"status":"success","lat":39.7,"lon":-104.9,"city":"Denver","region":"CO","regionName":"Colorado","countryCode":"US"}`
	failIP := `{"status":"fail"}`

	saved := settings.Location{Lat: ptr(35.0), Lon: ptr(-97.0), Description: "Norman, OK"}
	auto := settings.Location{AutoDetect: true}

	tests := []struct {
		name      string
		req       Request
		primary   string
		secondary string
		geo       *fakeGeocoder
		want      weather.Location
	}{
		{
			name: "explicit coordinates win",
			req:  Request{Lat: ptr(40), Lon: ptr(-105), Saved: saved, Address: "Boulder"},
			want: weather.Location{Latitude: 40, Longitude: -105},
		},
		{
			name: "saved manual location",
			req:  Request{Saved: saved, Address: "Boulder"},
			want: weather.Location{Latitude: 35, Longitude: -97, Description: "Norman, OK"},
		},
		{
			name: "geocoded address",
			req:  Request{Address: "66044", Saved: auto},
			geo:  &fakeGeocoder{lat: 38.97, lon: -95.23},
			want: weather.Location{Latitude: 38.97, Longitude: -95.23, Description: "66044"},
		},
		{
			name:    "failed geocode falls through to ip lookup",
			req:     Request{Address: "nowhere", Saved: auto},
			geo:     &fakeGeocoder{err: errors.New("ZERO_RESULTS")},
			primary: seattleIP,
			want:    weather.Location{Latitude: 47.6, Longitude: -122.3, Description: "Seattle, WA"},
		},
		{
			name:      "non-US primary result uses the secondary service",
			req:       Request{Saved: auto},
			primary:   torontoIP,
			secondary: denverIP,
			want:      weather.Location{Latitude: 39.7, Longitude: -104.9, Description: "Denver, CO"},
		},
		{
			name:      "ip lookups fail so the fallback is used",
			req:       Request{Saved: auto},
			primary:   torontoIP,
			secondary: failIP,
			want:      kansasCity,
		},
		{
			name:    "auto-detect off skips ip lookup",
			req:     Request{},
			primary: seattleIP,
			want:    kansasCity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := jsonServer(t, tt.primary, http.StatusOK)
			secondary := jsonServer(t, tt.secondary, http.StatusOK)
			opts := []Option{WithFallback(kansasCity), WithIPLookupURLs(primary.URL, secondary.URL)}
			if tt.geo != nil {
				opts = append(opts, WithGeocoder(tt.geo))
			}
			r := NewResolver(nil, zap.NewNop().Sugar(), opts...)

			got, err := r.Resolve(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_NoFallback(t *testing.T) {
	down := jsonServer(t, `oops`, http.StatusServiceUnavailable)
	r := NewResolver(nil, zap.NewNop().Sugar(), WithIPLookupURLs(down.URL, down.URL))

	_, err := r.Resolve(context.Background(), Request{Saved: settings.Location{AutoDetect: true}})
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestResolve_AddressWithoutGeocoder(t *testing.T) {
	r := NewResolver(nil, zap.NewNop().Sugar(), WithFallback(kansasCity))

	got, err := r.Resolve(context.Background(), Request{Address: "Lawrence, KS"})
	require.NoError(t, err)
	assert.Equal(t, kansasCity, got)
}

func TestIsZip(t *testing.T) {
	assert.True(t, isZip("64106"))
	assert.False(t, isZip("6410"))
	assert.False(t, isZip("6410a"))
	assert.False(t, isZip("Kansas City"))
}
