package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

var base = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func obsAt(minutes int, pa float64) weather.Observation {
	return weather.Observation{Timestamp: base.Add(time.Duration(minutes) * time.Minute), Pressure: &pa}
}

func TestMemoryStore_RetentionByCount(t *testing.T) {
	s := NewMemoryStore(3, 0)
	for i := 0; i < 5; i++ {
		s.SaveObservation("KMKC", obsAt(i*5, float64(100000+i)))
	}
	recent := s.Recent("KMKC", 10)
	require.Len(t, recent, 3)
	assert.Equal(t, base.Add(10*time.Minute), recent[0].Timestamp)
	assert.Equal(t, 100004.0, *recent[2].Pressure)
}

func TestMemoryStore_DeduplicatesSameTimestamp(t *testing.T) {
	s := NewMemoryStore(0, 0)
	s.SaveObservation("KMKC", obsAt(0, 100000))
	s.SaveObservation("KMKC", obsAt(0, 100010))
	s.SaveObservation("KMKC", obsAt(-5, 99000))

	recent := s.Recent("KMKC", 5)
	require.Len(t, recent, 1)
	assert.Equal(t, 100010.0, *recent[0].Pressure)
}

func TestMemoryStore_RetentionByAge(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)
	s.now = func() time.Time { return base.Add(90 * time.Minute) }

	s.SaveObservation("KMKC", obsAt(0, 1))
	s.SaveObservation("KMKC", obsAt(60, 2))
	s.SaveObservation("KMKC", obsAt(80, 3))

	recent := s.Recent("KMKC", 10)
	require.Len(t, recent, 2)
	assert.Equal(t, 2.0, *recent[0].Pressure)
}

func TestMemoryStore_Recent(t *testing.T) {
	s := NewMemoryStore(0, 0)
	assert.Nil(t, s.Recent("none", 5))

	for i := 0; i < 4; i++ {
		s.SaveObservation("KMKC", obsAt(i*10, float64(i)))
	}
	got := s.Recent("KMKC", 2)
	require.Len(t, got, 2)
	assert.Equal(t, 2.0, *got[0].Pressure)
	assert.Equal(t, 3.0, *got[1].Pressure)
	assert.Nil(t, s.Recent("KMKC", 0))

	// The result is a copy.
	got[0] = obsAt(99, 99)
	assert.Equal(t, 2.0, *s.Recent("KMKC", 2)[0].Pressure)
}
