package nws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wesellis/WeatherStar-4000-Python/internal/cache"
	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

const pointBody = `{
  "properties": {
    "gridId": "EAX", "gridX": 44, "gridY": 51,
    "observationStations": "%s/gridpoints/EAX/44,51/stations",
    "radarStation": "KEAX",
    "relativeLocation": {"properties": {"city": "Kansas City", "state": "MO"}}
  }
}`

const observationBody = `{
  "properties": {
    "timestamp": "2026-10-18T12:00:00+00:00",
    "textDescription": "Mostly Cloudy",
    "icon": "https://api.weather.gov/icons/land/day/bkn?size=medium",
    "temperature": {"unitCode": "wmoUnit:degC", "value": 18.3},
    "dewpoint": {"value": null},
    "windSpeed": {"value": 14.8},
    "windDirection": {"value": 200},
    "relativeHumidity": {"value": null},
    "cloudLayers": [{"base": {"value": 1200}, "amount": "OVC"}]
  }
}`

type failureCounter struct {
	mu       sync.Mutex
	failures map[string]int
}

func (f *failureCounter) UpstreamFailure(endpoint string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures == nil {
		f.failures = make(map[string]int)
	}
	f.failures[endpoint]++
}

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client, *failureCounter) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	rec := &failureCounter{}
	c := New(zap.NewNop().Sugar(), WithBaseURL(srv.URL), WithUserAgent("test-agent/1.0"), WithRecorder(rec))
	return srv, c, rec
}

func TestGetGridPoint(t *testing.T) {
	var hits int
	var srvURL string
	srv, c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "test-agent/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "/points/39.0997,-94.5786", r.URL.Path)
		w.Write([]byte(strings.Replace(pointBody, "%s", srvURL, 1)))
	})
	srvURL = srv.URL

	grid, ok := c.GetGridPoint(context.Background(), 39.0997, -94.5786)
	require.True(t, ok)
	assert.Equal(t, "EAX", grid.Office)
	assert.Equal(t, 44, grid.GridX)
	assert.Equal(t, 51, grid.GridY)
	assert.Equal(t, "Kansas City", grid.City)
	assert.Equal(t, "KEAX", grid.RadarStation)
	assert.Equal(t, srv.URL+"/gridpoints/EAX/44,51/stations", grid.ObservationStationsURL)

	_, ok = c.GetGridPoint(context.Background(), 39.0997, -94.5786)
	require.True(t, ok)
	assert.Equal(t, 1, hits, "second lookup within an hour is served from cache")
}

func TestGetCurrentObservations_NullValues(t *testing.T) {
	_, c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stations/KMKC/observations/latest", r.URL.Path)
		w.Write([]byte(observationBody))
	})

	obs, ok := c.GetCurrentObservations(context.Background(), "KMKC")
	require.True(t, ok)
	require.NotNil(t, obs.Temperature)
	assert.InDelta(t, 18.3, *obs.Temperature, 0.001)
	assert.Nil(t, obs.Dewpoint)
	assert.Nil(t, obs.RelativeHumidity)
	assert.Nil(t, obs.Pressure)
	assert.Equal(t, "Mostly Cloudy", obs.Description)
	ft, ok := obs.Ceiling()
	assert.True(t, ok)
	assert.Equal(t, 3937, ft)
}

func TestFailuresBecomeNoData(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{name: "server error", handler: func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{name: "not found", handler: func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
		{name: "malformed body", handler: func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("<html>oops</html>"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c, rec := newTestServer(t, tt.handler)
			periods, ok := c.GetForecast(context.Background(), "EAX", 44, 51)
			assert.False(t, ok)
			assert.Nil(t, periods)
			assert.Equal(t, 1, rec.failures["forecast"])
		})
	}
}

func TestServerErrorsAreNotRetried(t *testing.T) {
	var hits atomic.Int32
	_, c, rec := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, ok := c.GetForecast(context.Background(), "EAX", 44, 51)
	assert.False(t, ok)
	assert.Equal(t, int32(1), hits.Load(), "one request per call")

	// Four more failures trip the breaker; later calls never reach the server.
	for i := 0; i < 6; i++ {
		c.GetForecast(context.Background(), "EAX", 44, 51)
	}
	assert.Equal(t, int32(5), hits.Load())
	assert.Equal(t, 7, rec.failures["forecast"])
}

func TestFailureKeepsCachedEntry(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	fail := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"properties":{"periods":[{"number":1,"name":"Tonight","temperature":55,"shortForecast":"Clear"}]}}`))
	}))
	t.Cleanup(srv.Close)

	rc := cache.New[[]byte](cache.WithClock[[]byte](func() time.Time { return now }))
	c := New(zap.NewNop().Sugar(), WithBaseURL(srv.URL), WithCache(rc))

	periods, ok := c.GetHourlyForecast(context.Background(), "EAX", 1, 2)
	require.True(t, ok)
	require.Len(t, periods, 1)
	assert.Equal(t, 55.0, *periods[0].Temperature)

	fail = true
	now = now.Add(HourlyMaxAge)
	_, ok = c.GetHourlyForecast(context.Background(), "EAX", 1, 2)
	assert.False(t, ok)

	body, fetchedAt, cached := rc.Peek(srv.URL + "/gridpoints/EAX/1,2/forecast/hourly")
	require.True(t, cached)
	assert.Contains(t, string(body), "Tonight")
	assert.Equal(t, now.Add(-HourlyMaxAge), fetchedAt)
}

func TestGetStationsAndSelect(t *testing.T) {
	_, c, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"features":[
			{"properties":{"stationIdentifier":"UMKC"}},
			{"properties":{"stationIdentifier":"CXYZ"}},
			{"properties":{"stationIdentifier":"K3DW1"}},
			{"properties":{"stationIdentifier":"KMKC","name":"Kansas City Downtown"}}
		]}`))
	})
	stations, ok := c.GetStations(context.Background(), c.baseURL+"/stations")
	require.True(t, ok)
	require.Len(t, stations, 4)

	st, ok := c.SelectStation(stations)
	require.True(t, ok)
	assert.Equal(t, "KMKC", st.ID)
}

func TestSelectStation(t *testing.T) {
	tests := []struct {
		name   string
		ids    []string
		want   string
		wantOK bool
	}{
		{name: "empty", ids: nil, wantOK: false},
		{name: "prefers four letter non U/C", ids: []string{"CYYZ", "KMCI"}, want: "KMCI", wantOK: true},
		{name: "falls back to first", ids: []string{"UAAA", "C123", "AB"}, want: "UAAA", wantOK: true},
		{name: "skips long ids", ids: []string{"KMKC1", "PAFA"}, want: "PAFA", wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stations []weather.Station
			for _, id := range tt.ids {
				stations = append(stations, weather.Station{ID: id})
			}
			got, ok := SelectStation(stations)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestGetActiveAlerts(t *testing.T) {
	_, c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alerts/active", r.URL.Path)
		assert.Equal(t, "39.0997,-94.5786", r.URL.Query().Get("point"))
		w.Write([]byte(`{"features":[{"properties":{"@id":"https://api.weather.gov/alerts/x","id":"x","event":"Wind Advisory","headline":"Wind Advisory until 6 PM","severity":"Moderate","expires":null}}]}`))
	})
	alerts, ok := c.GetActiveAlerts(context.Background(), 39.0997, -94.5786)
	require.True(t, ok)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Wind Advisory", alerts[0].Event)
	assert.Equal(t, "https://api.weather.gov/alerts/x", alerts[0].URL)
}
