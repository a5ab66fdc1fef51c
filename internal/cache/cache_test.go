package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

type countingObserver struct {
	hits, misses, failures int
}

func (o *countingObserver) Hit(string)    { o.hits++ }
func (o *countingObserver) Miss(string)   { o.misses++ }
func (o *countingObserver) Failed(string) { o.failures++ }

func TestGetOrFetch_FreshEntrySkipsFetch(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := New[string](WithClock[string](clock.Now))

	calls := 0
	fetch := func() (string, error) {
		calls++
		return "v1", nil
	}

	v, err := c.GetOrFetch("points", 3600*time.Second, fetch)
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	clock.Advance(100 * time.Second)
	v, err = c.GetOrFetch("points", 3600*time.Second, fetch)
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
	assert.Equal(t, 1, calls)
}

func TestGetOrFetch_ExpiryBoundary(t *testing.T) {
	tests := []struct {
		name      string
		age       time.Duration
		wantFetch bool
	}{
		{name: "just inside window", age: 299 * time.Second, wantFetch: false},
		{name: "exactly max age", age: 300 * time.Second, wantFetch: true},
		{name: "well past", age: time.Hour, wantFetch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
			c := New[int](WithClock[int](clock.Now))

			_, err := c.GetOrFetch("obs", 300*time.Second, func() (int, error) { return 1, nil })
			require.NoError(t, err)

			clock.Advance(tt.age)
			fetched := false
			v, err := c.GetOrFetch("obs", 300*time.Second, func() (int, error) {
				fetched = true
				return 2, nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantFetch, fetched)
			if tt.wantFetch {
				assert.Equal(t, 2, v)
			} else {
				assert.Equal(t, 1, v)
			}
		})
	}
}

func TestGetOrFetch_FailureLeavesEntryUntouched(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	obs := &countingObserver{}
	c := New[string](WithClock[string](clock.Now), WithObserver[string](obs))

	_, err := c.GetOrFetch("forecast", time.Minute, func() (string, error) { return "old", nil })
	require.NoError(t, err)
	_, firstFetched, _ := c.Peek("forecast")

	clock.Advance(2 * time.Minute)
	boom := errors.New("upstream down")
	_, err = c.GetOrFetch("forecast", time.Minute, func() (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)

	v, fetchedAt, ok := c.Peek("forecast")
	require.True(t, ok)
	assert.Equal(t, "old", v)
	assert.Equal(t, firstFetched, fetchedAt)
	assert.Equal(t, 2, obs.misses)
	assert.Equal(t, 1, obs.failures)
	assert.Equal(t, 0, obs.hits)
}

func TestGetOrFetch_SuccessOverwrites(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := New[[]int](WithClock[[]int](clock.Now))

	_, _ = c.GetOrFetch("k", time.Second, func() ([]int, error) { return []int{1, 2, 3}, nil })
	clock.Advance(time.Second)
	v, err := c.GetOrFetch("k", time.Second, func() ([]int, error) { return []int{9}, nil })
	require.NoError(t, err)
	assert.Equal(t, []int{9}, v)

	_, at, _ := c.Peek("k")
	assert.Equal(t, clock.Now(), at)
	assert.Equal(t, 1, c.Len())
}

func TestPeek_Missing(t *testing.T) {
	c := New[string]()
	_, _, ok := c.Peek("nope")
	assert.False(t, ok)
}

func TestGetOrFetch_Concurrent(t *testing.T) {
	c := New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := c.GetOrFetch("shared", time.Hour, func() (int, error) { return i, nil })
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
}
