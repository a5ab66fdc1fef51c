package store

import (
	"sync"
	"time"

	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

// ObservationHistory holds a time-ordered list of observations for a station.
type ObservationHistory struct {
	Observations []weather.Observation
}

// MemoryStore is a concurrency-safe in-memory observation history.
type MemoryStore struct {
	mu sync.RWMutex

	// key: station id
	data map[string]*ObservationHistory

	maxHistory int           // max observations per station
	maxAge     time.Duration // optional max age for observations
	now        func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*ObservationHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveObservation appends an observation and enforces retention. An
// observation with the same timestamp as the newest stored one replaces it,
// so a cached re-read does not count twice.
func (s *MemoryStore) SaveObservation(stationID string, obs weather.Observation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[stationID]
	if !ok {
		history = &ObservationHistory{}
		s.data[stationID] = history
	}

	n := len(history.Observations)
	switch {
	case n > 0 && !obs.Timestamp.IsZero() && history.Observations[n-1].Timestamp.Equal(obs.Timestamp):
		history.Observations[n-1] = obs
	case n > 0 && obs.Timestamp.Before(history.Observations[n-1].Timestamp):
		// Out of order; keep the history sorted.
		return
	default:
		history.Observations = append(history.Observations, obs)
	}

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Observations) > s.maxHistory {
		over := len(history.Observations) - s.maxHistory
		history.Observations = history.Observations[over:]
	}

	// Enforce retention by age, always keeping the newest.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Observations)-1; i++ {
			if !history.Observations[i].Timestamp.Before(cutoff) {
				break
			}
		}
		history.Observations = history.Observations[i:]
	}
}

// Recent returns up to n of the newest observations, oldest first.
func (s *MemoryStore) Recent(stationID string, n int) []weather.Observation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[stationID]
	if !ok || n <= 0 {
		return nil
	}
	obs := history.Observations
	if len(obs) > n {
		obs = obs[len(obs)-n:]
	}
	out := make([]weather.Observation, len(obs))
	copy(out, obs)
	return out
}
