// Package slides holds the slideshow state machine: which page is showing,
// how long it has been showing and whether pages advance on their own.
package slides

import (
	"sync"
	"time"

	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
)

// DefaultPageDuration is how long a page stays up when auto-advance is on.
const DefaultPageDuration = 15 * time.Second

// State is a copy of the controller state.
type State struct {
	ActivePages  []pages.PageID
	CurrentIndex int
	Elapsed      time.Duration
	AutoAdvance  bool
}

// Current returns the page at CurrentIndex, or false when no page is active.
func (s State) Current() (pages.PageID, bool) {
	if len(s.ActivePages) == 0 {
		return 0, false
	}
	return s.ActivePages[s.CurrentIndex], true
}

// ChangeFunc observes page changes. from is only meaningful when hadFrom is
// true. It is called without the controller lock held.
type ChangeFunc func(from pages.PageID, hadFrom bool, to pages.PageID)

// Option configures a Controller.
type Option func(*Controller)

// WithPageDuration overrides DefaultPageDuration.
func WithPageDuration(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.pageDuration = d
		}
	}
}

// WithOnChange registers a page change observer.
func WithOnChange(fn ChangeFunc) Option {
	return func(c *Controller) { c.onChange = append(c.onChange, fn) }
}

// Controller is the slide state machine. It is safe for concurrent use,
// though in practice only the render loop mutates it.
type Controller struct {
	mu           sync.Mutex
	active       []pages.PageID
	index        int
	elapsed      time.Duration
	autoAdvance  bool
	pageDuration time.Duration
	onChange     []ChangeFunc
}

// New creates a controller showing the first of active with auto-advance on.
func New(active []pages.PageID, opts ...Option) *Controller {
	c := &Controller{
		active:       clonePages(active),
		autoAdvance:  true,
		pageDuration: DefaultPageDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func clonePages(p []pages.PageID) []pages.PageID {
	out := make([]pages.PageID, len(p))
	copy(out, p)
	return out
}

type change struct {
	from    pages.PageID
	hadFrom bool
	to      pages.PageID
}

// moveTo sets the index and resets elapsed. Callers hold mu and guarantee a
// non-empty page list.
func (c *Controller) moveTo(i int) *change {
	prev := c.active[c.index]
	c.index = i
	c.elapsed = 0
	if c.active[i] == prev {
		return nil
	}
	return &change{from: prev, hadFrom: true, to: c.active[i]}
}

func (c *Controller) current() (pages.PageID, bool) {
	if len(c.active) == 0 {
		return 0, false
	}
	return c.active[c.index], true
}

func (c *Controller) notify(ch *change) {
	if ch == nil {
		return
	}
	c.mu.Lock()
	hooks := c.onChange
	c.mu.Unlock()
	for _, fn := range hooks {
		fn(ch.from, ch.hadFrom, ch.to)
	}
}

// Tick adds dt to the time on the current page and advances once the page
// duration is reached while auto-advance is on.
func (c *Controller) Tick(dt time.Duration) {
	c.mu.Lock()
	if len(c.active) == 0 {
		c.mu.Unlock()
		return
	}
	c.elapsed += dt
	var ch *change
	if c.autoAdvance && c.elapsed >= c.pageDuration {
		ch = c.moveTo((c.index + 1) % len(c.active))
	}
	c.mu.Unlock()
	c.notify(ch)
}

func (c *Controller) step(delta int) {
	c.mu.Lock()
	n := len(c.active)
	if n == 0 {
		c.mu.Unlock()
		return
	}
	ch := c.moveTo(((c.index+delta)%n + n) % n)
	c.mu.Unlock()
	c.notify(ch)
}

// Next moves to the following page, wrapping after the last.
func (c *Controller) Next() { c.step(1) }

// Previous moves to the preceding page, wrapping before the first.
func (c *Controller) Previous() { c.step(-1) }

// Jump moves to index. Out of range indexes are ignored.
func (c *Controller) Jump(index int) bool {
	c.mu.Lock()
	if index < 0 || index >= len(c.active) {
		c.mu.Unlock()
		return false
	}
	ch := c.moveTo(index)
	c.mu.Unlock()
	c.notify(ch)
	return true
}

// ToggleAutoAdvance flips auto-advance and returns the new value. Elapsed
// time is kept.
func (c *Controller) ToggleAutoAdvance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoAdvance = !c.autoAdvance
	return c.autoAdvance
}

// RebuildPages replaces the active pages. The current page keeps showing
// when it is still active; otherwise the index is clamped to the new range.
func (c *Controller) RebuildPages(active []pages.PageID) {
	c.mu.Lock()
	prev, hadPrev := c.current()
	c.active = clonePages(active)

	if len(c.active) == 0 {
		c.index = 0
		c.elapsed = 0
		c.mu.Unlock()
		return
	}

	next := -1
	if hadPrev {
		for i, id := range c.active {
			if id == prev {
				next = i
				break
			}
		}
	}
	if next < 0 {
		next = min(c.index, len(c.active)-1)
	}

	if next != c.index {
		c.elapsed = 0
	}
	var ch *change
	if !hadPrev || c.active[next] != prev {
		c.elapsed = 0
		ch = &change{from: prev, hadFrom: hadPrev, to: c.active[next]}
	}
	c.index = next
	c.mu.Unlock()
	c.notify(ch)
}

// Current returns the page being shown, or false when no page is active.
func (c *Controller) Current() (pages.PageID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current()
}

// State returns a copy of the controller state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		ActivePages:  clonePages(c.active),
		CurrentIndex: c.index,
		Elapsed:      c.elapsed,
		AutoAdvance:  c.autoAdvance,
	}
}

// PageDuration is the auto-advance interval.
func (c *Controller) PageDuration() time.Duration { return c.pageDuration }
