package anim

import (
	"image"
	"sync"
	"time"
)

// Key identifies one animated region of one page.
type Key struct {
	Page   string
	Region string
}

// Store holds animation state for every region rendered so far. Entries are
// created on first use and survive revisits of their page; Prune drops the
// entries of pages that are no longer shown.
type Store struct {
	mu          sync.Mutex
	scrollers   map[Key]*Scroller
	oscillators map[Key]*Oscillator
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		scrollers:   make(map[Key]*Scroller),
		oscillators: make(map[Key]*Oscillator),
	}
}

func (s *Store) scroller(k Key, init Scroller) *Scroller {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.scrollers[k]
	if !ok {
		sc = &init
		s.scrollers[k] = sc
	}
	return sc
}

func (s *Store) oscillator(k Key, init Oscillator) *Oscillator {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.oscillators[k]
	if !ok {
		o = &init
		s.oscillators[k] = o
	}
	return o
}

// Prune removes state for pages not in active.
func (s *Store) Prune(active []string) {
	keep := make(map[string]struct{}, len(active))
	for _, p := range active {
		keep[p] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.scrollers {
		if _, ok := keep[k.Page]; !ok {
			delete(s.scrollers, k)
		}
	}
	for k := range s.oscillators {
		if _, ok := keep[k.Page]; !ok {
			delete(s.oscillators, k)
		}
	}
}

// Len reports the number of tracked regions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scrollers) + len(s.oscillators)
}

// Handle scopes the store to one page for one frame.
func (s *Store) Handle(page string, dt time.Duration, now time.Time) *Handle {
	return &Handle{store: s, page: page, dt: dt, now: now}
}

// Handle is what a page render function uses to animate its regions.
type Handle struct {
	store *Store
	page  string
	dt    time.Duration
	now   time.Time
}

// Scroll advances the named wrapping region and returns its offset. init is
// the state used the first time the region is seen.
func (h *Handle) Scroll(region string, init Scroller, lo, hi float64) float64 {
	return h.store.scroller(Key{h.page, region}, init).Advance(h.dt, lo, hi)
}

// Bounce advances the named oscillating region and returns its offset.
func (h *Handle) Bounce(region string, init Oscillator, lo, hi float64) float64 {
	return h.store.oscillator(Key{h.page, region}, init).Advance(h.dt, lo, hi)
}

// Frame picks the current frame of an animated icon.
func (h *Handle) Frame(ic *Icon) image.Image {
	if ic == nil {
		return nil
	}
	return ic.Frame(h.now)
}

// Now is the frame's wall-clock time.
func (h *Handle) Now() time.Time { return h.now }
