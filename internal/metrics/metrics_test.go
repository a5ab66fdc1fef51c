package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCountsCacheOutcomes(t *testing.T) {
	c := NewCollector("test")

	c.Miss("forecast")
	c.Hit("forecast")
	c.Hit("forecast")
	c.Failed("alerts")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.CacheHitsTotal.WithLabelValues("forecast")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CacheMissesTotal.WithLabelValues("forecast")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CacheFailuresTotal.WithLabelValues("alerts")))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector("test")
	b := NewCollector("test")

	a.UpstreamFailure("points")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.UpstreamFailuresTotal.WithLabelValues("points")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.UpstreamFailuresTotal.WithLabelValues("points")))
}

func TestSnapshotAgeClampsNegative(t *testing.T) {
	c := NewCollector("test")

	c.SetSnapshotAge(-time.Second)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.SnapshotAgeSeconds))

	c.SetSnapshotAge(90 * time.Second)
	assert.Equal(t, 90.0, testutil.ToFloat64(c.SnapshotAgeSeconds))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector("weatherstar")
	c.RecordPageChange("radar")
	c.ObserveFrame(5 * time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, `weatherstar_page_changes_total{page="radar"} 1`))
	assert.True(t, strings.Contains(text, "weatherstar_frame_render_duration_seconds_count 1"))
}
