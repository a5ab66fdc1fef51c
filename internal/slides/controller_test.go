package slides

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
	"github.com/wesellis/WeatherStar-4000-Python/internal/settings"
)

func corePages() []pages.PageID {
	return []pages.PageID{
		pages.CurrentConditions, pages.LocalForecast, pages.HourlyForecast,
		pages.RegionalObservations, pages.TravelCities, pages.Almanac, pages.Radar,
	}
}

func TestTick_AdvancesExactlyOnce(t *testing.T) {
	c := New(corePages())

	for i := 0; i < 15; i++ {
		c.Tick(time.Second)
	}

	st := c.State()
	assert.Equal(t, 1, st.CurrentIndex)
	assert.Zero(t, st.Elapsed)
}

func TestTick_PausedAccumulates(t *testing.T) {
	c := New(corePages())
	assert.False(t, c.ToggleAutoAdvance())

	c.Tick(20 * time.Second)
	st := c.State()
	assert.Equal(t, 0, st.CurrentIndex)
	assert.Equal(t, 20*time.Second, st.Elapsed)

	assert.True(t, c.ToggleAutoAdvance())
	assert.Equal(t, 20*time.Second, c.State().Elapsed, "toggle keeps elapsed")
	c.Tick(0)
	assert.Equal(t, 1, c.State().CurrentIndex)
}

func TestColdStartScenario(t *testing.T) {
	c := New(corePages())

	c.Tick(15 * time.Second)
	require.Equal(t, 1, c.State().CurrentIndex)

	c.Previous()
	c.Previous()
	c.Previous()
	assert.Equal(t, 5, c.State().CurrentIndex)
}

func TestNext_WrapsAround(t *testing.T) {
	c := New(corePages())
	c.Jump(3)

	for range corePages() {
		c.Next()
	}
	assert.Equal(t, 3, c.State().CurrentIndex)
}

func TestNavigationResetsElapsed(t *testing.T) {
	c := New(corePages())
	c.Tick(5 * time.Second)
	c.Next()
	assert.Zero(t, c.State().Elapsed)

	c.Tick(5 * time.Second)
	c.Previous()
	assert.Zero(t, c.State().Elapsed)

	c.Tick(5 * time.Second)
	require.True(t, c.Jump(4))
	assert.Zero(t, c.State().Elapsed)
}

func TestJump_OutOfRangeIsNoop(t *testing.T) {
	c := New(corePages())
	c.Jump(2)
	c.Tick(3 * time.Second)

	assert.False(t, c.Jump(7))
	assert.False(t, c.Jump(-1))

	st := c.State()
	assert.Equal(t, 2, st.CurrentIndex)
	assert.Equal(t, 3*time.Second, st.Elapsed)
}

func TestEmptyActivePages(t *testing.T) {
	c := New(nil)

	c.Tick(time.Minute)
	c.Next()
	c.Previous()
	assert.False(t, c.Jump(0))

	_, ok := c.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, c.State().CurrentIndex)
}

func TestSettingsToggleScenario(t *testing.T) {
	descs := make([]pages.Descriptor, 0)
	for _, id := range pages.All() {
		descs = append(descs, pages.Descriptor{ID: id, Render: func(*pages.Context) {}, EnabledIf: pages.EnabledIf(id)})
	}
	var d settings.Display

	c := New(pages.BuildActivePages(descs, d))
	require.True(t, c.Jump(6))

	// Disabling a page that was never enabled changes nothing.
	d.ShowReddit = false
	c.RebuildPages(pages.BuildActivePages(descs, d))
	st := c.State()
	assert.Len(t, st.ActivePages, 7)
	assert.Equal(t, 6, st.CurrentIndex)

	d.ShowMarine = true
	c.RebuildPages(pages.BuildActivePages(descs, d))
	st = c.State()
	require.Len(t, st.ActivePages, 8)
	assert.Equal(t, pages.MarineForecast, st.ActivePages[7])
	assert.Equal(t, 6, st.CurrentIndex)
	cur, _ := st.Current()
	assert.Equal(t, pages.Radar, cur)

	d.ShowMarine = false
	c.RebuildPages(pages.BuildActivePages(descs, d))
	assert.Equal(t, corePages(), c.State().ActivePages)
}

func TestRebuildPages_RepointsToSamePage(t *testing.T) {
	c := New([]pages.PageID{pages.CurrentConditions, pages.MSNNews, pages.Radar})
	c.Jump(2)
	c.Tick(4 * time.Second)

	c.RebuildPages([]pages.PageID{pages.CurrentConditions, pages.Radar})

	st := c.State()
	assert.Equal(t, 1, st.CurrentIndex)
	cur, _ := st.Current()
	assert.Equal(t, pages.Radar, cur)
	assert.Zero(t, st.Elapsed, "index changed")
}

func TestRebuildPages_ClampsWhenPageRemoved(t *testing.T) {
	c := New([]pages.PageID{pages.CurrentConditions, pages.Radar, pages.LocalNews})
	c.Jump(2)

	c.RebuildPages([]pages.PageID{pages.CurrentConditions, pages.Radar})
	assert.Equal(t, 1, c.State().CurrentIndex)

	c.RebuildPages(nil)
	_, ok := c.Current()
	assert.False(t, ok)

	c.RebuildPages(corePages())
	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, pages.CurrentConditions, cur)
}

func TestOnChange(t *testing.T) {
	type move struct{ from, to pages.PageID }
	var got []move
	c := New(corePages(), WithOnChange(func(from pages.PageID, hadFrom bool, to pages.PageID) {
		require.True(t, hadFrom)
		got = append(got, move{from, to})
	}), WithPageDuration(time.Second))

	c.Tick(time.Second)
	c.Previous()
	c.Jump(0) // same page, no change
	c.RebuildPages(corePages())

	assert.Equal(t, []move{
		{pages.CurrentConditions, pages.LocalForecast},
		{pages.LocalForecast, pages.CurrentConditions},
	}, got)
}

func TestIndexInvariant_RandomCommands(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	all := pages.All()
	c := New(corePages())

	for i := 0; i < 2000; i++ {
		switch rng.Intn(5) {
		case 0:
			c.Next()
		case 1:
			c.Previous()
		case 2:
			c.Jump(rng.Intn(14) - 2)
		case 3:
			c.Tick(time.Duration(rng.Intn(20000)) * time.Millisecond)
		case 4:
			n := rng.Intn(len(all) + 1)
			c.RebuildPages(all[:n])
		}

		st := c.State()
		if len(st.ActivePages) == 0 {
			_, ok := st.Current()
			require.False(t, ok)
			continue
		}
		require.GreaterOrEqual(t, st.CurrentIndex, 0)
		require.Less(t, st.CurrentIndex, len(st.ActivePages))
	}
}
