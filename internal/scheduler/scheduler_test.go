package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

type fakeService struct {
	calls atomic.Int32
	block chan struct{}
}

func (f *fakeService) Refresh(ctx context.Context) *weather.Snapshot {
	n := f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return nil
	}
	return &weather.Snapshot{Location: weather.Location{City: "call", Latitude: float64(n)}}
}

type sink struct {
	mu  sync.Mutex
	got []*weather.Snapshot
}

func (s *sink) Publish(snap *weather.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, snap)
}

func (s *sink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.got)
}

func TestRunNow_PublishesWithDeadline(t *testing.T) {
	svc := &fakeService{}
	out := &sink{}
	var took time.Duration
	s := New(time.Hour, svc, out, zap.NewNop().Sugar())
	s.OnRefresh = func(d time.Duration) { took = d }

	require.True(t, s.RunNow(context.Background()))

	require.Equal(t, 1, out.len())
	require.NotNil(t, out.got[0], "refresh runs with a bounded context")
	assert.GreaterOrEqual(t, took, time.Duration(0))
}

func TestRunNow_SkipsWhileRunning(t *testing.T) {
	svc := &fakeService{block: make(chan struct{})}
	out := &sink{}
	s := New(time.Hour, svc, out, zap.NewNop().Sugar())

	done := make(chan bool)
	go func() { done <- s.RunNow(context.Background()) }()
	require.Eventually(t, func() bool { return svc.calls.Load() == 1 }, time.Second, time.Millisecond)

	assert.False(t, s.RunNow(context.Background()))

	close(svc.block)
	assert.True(t, <-done)
	assert.Equal(t, 1, out.len())
}

func TestStart_RunsPeriodically(t *testing.T) {
	svc := &fakeService{}
	out := &sink{}
	s := New(100*time.Millisecond, svc, out, zap.NewNop().Sugar())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Equal(t, 0, out.len(), "first run waits for the schedule")
	require.Eventually(t, func() bool { return out.len() >= 2 }, 3*time.Second, 10*time.Millisecond)
}

func TestNew_DefaultInterval(t *testing.T) {
	s := New(0, &fakeService{}, &sink{}, zap.NewNop().Sugar())
	assert.Equal(t, DefaultInterval, s.interval)
}
