package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>results</title>
<item><title>Streetcar extension opens downtown - The Star</title><link>https://example.com/a</link></item>
<item><title>Breaking: Storms roll through metro - KSHB</title><link>https://example.com/b</link></item>
<item><title>Chiefs win again</title><link>https://example.com/c</link></item>
</channel></rss>`

func TestStaticFeeds(t *testing.T) {
	for _, src := range []*StaticSource{MSN(), Reddit()} {
		items, ok := src.Headlines(context.Background(), weather.Location{}, nil)
		require.True(t, ok)
		assert.Len(t, items, MaxHeadlines)
		for _, h := range items {
			require.NotNil(t, h.Link)
		}
	}
	assert.Equal(t, weather.FeedMSN, MSN().Feed())
	assert.Equal(t, weather.FeedReddit, Reddit().Feed())
}

func TestAlertHeadlines(t *testing.T) {
	alerts := []weather.Alert{
		{Event: "Tornado Warning", Severity: "Extreme", URL: "https://api.weather.gov/alerts/1"},
		{Event: "Frost Advisory", Severity: "Minor"},
		{Event: ""},
		{Event: "Wind Advisory"},
		{Event: "Flood Watch"},
	}
	got := AlertHeadlines(alerts)
	require.Len(t, got, 3)
	assert.Equal(t, "Alert: Tornado Warning in Effect", got[0].Text)
	assert.Equal(t, "https://api.weather.gov/alerts/1", *got[0].Link)
	assert.Equal(t, "Weather: Frost Advisory Issued", got[1].Text)
	assert.Equal(t, "https://www.weather.gov", *got[1].Link)
}

func TestCategory(t *testing.T) {
	cat, rest, ok := Category("Emergency: Severe Weather Warning")
	require.True(t, ok)
	assert.Equal(t, "Emergency", cat)
	assert.Equal(t, "Severe Weather Warning", rest)
	assert.True(t, IsUrgent(cat))
	assert.False(t, IsUrgent("Local"))

	_, rest, ok = Category("No category here")
	assert.False(t, ok)
	assert.Equal(t, "No category here", rest)
}

func TestLocalSource_RSS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Kansas City, MO news", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssBody))
	}))
	defer srv.Close()

	src := NewLocalSource("test/1.0", zap.NewNop().Sugar(), WithRSSBaseURL(srv.URL))
	loc := weather.Location{City: "Kansas City", State: "MO"}
	alerts := []weather.Alert{{Event: "Heat Advisory", Severity: "Moderate"}}

	items, ok := src.Headlines(context.Background(), loc, alerts)
	require.True(t, ok)
	require.Len(t, items, 4)
	assert.Equal(t, "Weather: Heat Advisory Issued", items[0].Text)
	assert.Equal(t, "Local: Streetcar extension opens downtown", items[1].Text)
	assert.Equal(t, "Breaking: Storms roll through metro", items[2].Text)
	assert.Equal(t, "https://example.com/c", *items[3].Link)
}

func TestLocalSource_FallsBackWhenFeedFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewLocalSource("test/1.0", zap.NewNop().Sugar(), WithRSSBaseURL(srv.URL))
	items, ok := src.Headlines(context.Background(), weather.Location{City: "Omaha"}, nil)
	require.True(t, ok)
	require.Len(t, items, 10)
	assert.Equal(t, "Local: Omaha Community News and Updates", items[0].Text)
}
