package weather

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrGridUnavailable is returned when the point cannot be resolved to a
// forecast grid cell.
var ErrGridUnavailable = errors.New("grid point unavailable")

// trendWindow is the number of observations the pressure trend looks back over.
const trendWindow = 5

// Service resolves the location once and then builds snapshots from the
// upstream feed, the radar source and the headline sources.
type Service struct {
	api       API
	store     Store
	radar     RadarSource
	headlines []HeadlineSource
	log       *zap.SugaredLogger
	now       func() time.Time

	// mu serializes Initialize and Refresh. Readers use latest.
	mu      sync.Mutex
	loc     Location
	grid    *GridPoint
	station *Station

	latest atomic.Pointer[Snapshot]
}

// ServiceOption configures optional collaborators.
type ServiceOption func(*Service)

// WithRadar attaches a radar source.
func WithRadar(r RadarSource) ServiceOption {
	return func(s *Service) { s.radar = r }
}

// WithHeadlines attaches news feeds.
func WithHeadlines(sources ...HeadlineSource) ServiceOption {
	return func(s *Service) { s.headlines = append(s.headlines, sources...) }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates a new Service for loc. The initial snapshot carries only
// the location.
func NewService(api API, store Store, loc Location, log *zap.SugaredLogger, opts ...ServiceOption) *Service {
	s := &Service{
		api:   api,
		store: store,
		loc:   loc,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.latest.Store(&Snapshot{Location: loc})
	return s
}

// Latest returns the most recently published snapshot. Never nil.
func (s *Service) Latest() *Snapshot {
	return s.latest.Load()
}

// Initialize resolves the grid point, the place name and the observation
// station. It may be retried; Refresh calls it until it succeeds.
func (s *Service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initializeLocked(ctx)
}

func (s *Service) initializeLocked(ctx context.Context) error {
	s.log.Infow("initializing location", "lat", s.loc.Latitude, "lon", s.loc.Longitude)

	grid, ok := s.api.GetGridPoint(ctx, s.loc.Latitude, s.loc.Longitude)
	if !ok {
		return ErrGridUnavailable
	}
	s.grid = &grid
	if grid.City != "" {
		s.loc.City = grid.City
		s.loc.State = grid.State
	}
	s.log.Infow("grid resolved",
		"office", grid.Office, "gridX", grid.GridX, "gridY", grid.GridY,
		"radarStation", grid.RadarStation, "city", s.loc.City, "state", s.loc.State)

	if grid.ObservationStationsURL == "" {
		s.log.Warnw("no observation stations url for grid point")
		return nil
	}
	stations, ok := s.api.GetStations(ctx, grid.ObservationStationsURL)
	if !ok {
		s.log.Warnw("observation stations unavailable")
		return nil
	}
	if st, ok := s.api.SelectStation(stations); ok {
		s.station = &st
		s.log.Infow("selected observation station", "station", st.ID)
	}
	return nil
}

// Refresh fetches everything the pages draw from and publishes a new
// snapshot. A sub-fetch that fails keeps the previous snapshot's value.
func (s *Service) Refresh(ctx context.Context) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.grid == nil {
		if err := s.initializeLocked(ctx); err != nil {
			s.log.Warnw("location not initialized; refreshing what is available", "error", err)
		}
	}

	next := s.latest.Load().Clone()
	next.Location = s.loc
	next.GridPoint = s.grid
	next.Station = s.station

	if s.station != nil {
		if obs, ok := s.api.GetCurrentObservations(ctx, s.station.ID); ok {
			next.Observation = &obs
			if s.store != nil {
				s.store.SaveObservation(s.station.ID, obs)
				next.PressureTrend = PressureTrend(s.store.Recent(s.station.ID, trendWindow))
			}
		}
	}

	if s.grid != nil {
		if periods, ok := s.api.GetForecast(ctx, s.grid.Office, s.grid.GridX, s.grid.GridY); ok {
			next.Forecast = periods
		}
		if periods, ok := s.api.GetHourlyForecast(ctx, s.grid.Office, s.grid.GridX, s.grid.GridY); ok {
			next.Hourly = periods
		}
	}

	if alerts, ok := s.api.GetActiveAlerts(ctx, s.loc.Latitude, s.loc.Longitude); ok {
		next.Alerts = alerts
	}

	for _, src := range s.headlines {
		items, ok := src.Headlines(ctx, next.Location, next.Alerts)
		if !ok {
			continue
		}
		if next.Headlines == nil {
			next.Headlines = make(map[Feed][]Headline)
		}
		next.Headlines[src.Feed()] = items
	}

	if s.radar != nil {
		if img, ok := s.radar.Latest(ctx); ok {
			next.Radar = &img
		}
	}

	next.UpdatedAt = s.now()
	s.latest.Store(next)

	s.log.Infow("weather data refreshed",
		"hasObservation", next.Observation != nil,
		"forecastPeriods", len(next.Forecast),
		"hourlyPeriods", len(next.Hourly),
		"alerts", len(next.Alerts),
		"hasRadar", next.Radar != nil)
	return next
}
