package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

const (
	DefaultInterval = 5 * time.Minute
	refreshTimeout  = 60 * time.Second
)

// Refresher builds a new snapshot.
type Refresher interface {
	Refresh(ctx context.Context) *weather.Snapshot
}

// Publisher receives every snapshot the scheduler builds.
type Publisher interface {
	Publish(*weather.Snapshot)
}

// Scheduler periodically refreshes the weather snapshot and hands it to the
// render loop.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	publisher Publisher
	interval  time.Duration
	log       *zap.SugaredLogger

	// running keeps RunNow from overlapping the periodic job.
	running sync.Mutex
	// OnRefresh, when set, receives the duration of each refresh.
	OnRefresh func(time.Duration)
}

// New creates a new Scheduler.
func New(interval time.Duration, service Refresher, publisher Publisher, log *zap.SugaredLogger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		publisher: publisher,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the periodic job and starts the underlying scheduler. The
// first run happens one interval from now; use RunNow for the initial load.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).SingletonMode().WaitForSchedule().Do(func() {
		s.log.Infow("scheduled weather update", "interval", s.interval)
		s.refresh(context.Background())
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunNow refreshes immediately unless a refresh is already in flight. It
// reports whether a refresh ran.
func (s *Scheduler) RunNow(ctx context.Context) bool {
	if !s.running.TryLock() {
		s.log.Debugw("refresh already running; skipping")
		return false
	}
	defer s.running.Unlock()
	s.run(ctx)
	return true
}

func (s *Scheduler) refresh(ctx context.Context) {
	s.running.Lock()
	defer s.running.Unlock()
	s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	start := time.Now()
	snap := s.service.Refresh(ctx)
	took := time.Since(start)
	if s.OnRefresh != nil {
		s.OnRefresh(took)
	}
	s.publisher.Publish(snap)
	s.log.Infow("weather refresh published", "took", took)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
