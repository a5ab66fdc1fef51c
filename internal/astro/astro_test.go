package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func within(t *testing.T, want, got time.Time, tol time.Duration) {
	t.Helper()
	d := got.Sub(want)
	if d < 0 {
		d = -d
	}
	assert.LessOrEqual(t, d, tol, "want %s got %s", want, got)
}

func TestSunriseSunset_KansasCity(t *testing.T) {
	loc := time.FixedZone("CDT", -5*3600)
	day := time.Date(2024, time.June, 21, 12, 0, 0, 0, loc)

	rise, err := Sunrise(day, 39.0997, -94.5786, loc)
	require.NoError(t, err)
	within(t, time.Date(2024, time.June, 21, 5, 52, 0, 0, loc), rise, 10*time.Minute)

	set, err := Sunset(day, 39.0997, -94.5786, loc)
	require.NoError(t, err)
	within(t, time.Date(2024, time.June, 21, 20, 48, 0, 0, loc), set, 10*time.Minute)
	assert.True(t, set.After(rise))
}

func TestSunrise_PolarNight(t *testing.T) {
	day := time.Date(2024, time.December, 21, 12, 0, 0, 0, time.UTC)
	_, err := Sunrise(day, 78.2, 15.6, time.UTC)
	assert.ErrorIs(t, err, ErrNoEvent)
}

func TestMoonPhase(t *testing.T) {
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2024, time.January, 11, 12, 0, 0, 0, time.UTC), "New Moon"},
		{time.Date(2024, time.January, 25, 18, 0, 0, 0, time.UTC), "Full Moon"},
		{time.Date(2024, time.January, 18, 4, 0, 0, 0, time.UTC), "First Quarter"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, MoonPhase(tt.at))
		})
	}

	assert.Less(t, Illumination(time.Date(2024, time.January, 11, 12, 0, 0, 0, time.UTC)), 0.05)
	assert.Greater(t, Illumination(time.Date(2024, time.January, 25, 18, 0, 0, 0, time.UTC)), 0.95)
}
