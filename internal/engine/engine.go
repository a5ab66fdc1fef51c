// Package engine runs the render loop. Once per frame it takes the newest
// snapshot, applies queued commands, advances the slide controller and
// publishes the composed frame.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wesellis/WeatherStar-4000-Python/internal/anim"
	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
	"github.com/wesellis/WeatherStar-4000-Python/internal/render"
	"github.com/wesellis/WeatherStar-4000-Python/internal/settings"
	"github.com/wesellis/WeatherStar-4000-Python/internal/slides"
	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

// ErrQuit is returned by Step and Run after a quit command.
var ErrQuit = errors.New("quit requested")

const (
	DefaultFPS   = 30
	commandQueue = 64
	// maxStep bounds dt after a stall so a page is not skipped outright.
	maxStep = time.Second
)

// DisplaySaver persists display preferences.
type DisplaySaver interface {
	SaveDisplay(settings.Display) error
}

// Deps are the collaborators the engine drives. Renderer must have been
// built over the same Ticker and Anim store.
type Deps struct {
	Registry *pages.Registry
	Renderer *render.Renderer
	Ticker   *render.Ticker
	Anim     *anim.Store
	Frames   *render.FrameBuffer
	Log      *zap.SugaredLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithFPS sets the frame rate of Run.
func WithFPS(fps int) Option {
	return func(e *Engine) {
		if fps > 0 {
			e.fps = fps
		}
	}
}

// WithPageDuration sets how long a page stays up.
func WithPageDuration(d time.Duration) Option {
	return func(e *Engine) { e.pageDuration = d }
}

// WithSettings persists display changes made from the menu or the API.
func WithSettings(s DisplaySaver) Option {
	return func(e *Engine) { e.saver = s }
}

// WithRefresher is called, off the render loop, for refresh commands.
func WithRefresher(fn func()) Option {
	return func(e *Engine) { e.refresh = fn }
}

// WithPageObserver is told about every page change.
func WithPageObserver(fn func(pages.PageID)) Option {
	return func(e *Engine) { e.onPage = fn }
}

// WithSnapshotAge receives the age of the displayed snapshot each frame.
func WithSnapshotAge(fn func(time.Duration)) Option {
	return func(e *Engine) { e.onAge = fn }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Status is what the engine reports to the HTTP API.
type Status struct {
	slides.State
	MenuOpen          bool
	Display           settings.Display
	SnapshotUpdatedAt time.Time
	Location          weather.Location
}

// Engine owns the slide controller and the render loop.
type Engine struct {
	deps         Deps
	log          *zap.SugaredLogger
	ctrl         *slides.Controller
	fps          int
	pageDuration time.Duration
	saver        DisplaySaver
	refresh      func()
	onPage       func(pages.PageID)
	onAge        func(time.Duration)
	now          func() time.Time

	commands  chan Command
	snapshots chan *weather.Snapshot

	// Settings writes run off the loop; saveMu orders them and savedSeq
	// lets an older write lose to a newer one.
	saves    sync.WaitGroup
	saveMu   sync.Mutex
	saveSeq  uint64
	savedSeq uint64

	// mu guards the fields below, written by the render loop and read by
	// Status.
	mu       sync.RWMutex
	snapshot *weather.Snapshot
	display  settings.Display
	menuOpen bool
}

// New creates an engine showing the pages display enables.
func New(deps Deps, display settings.Display, opts ...Option) *Engine {
	e := &Engine{
		deps:         deps,
		log:          deps.Log,
		fps:          DefaultFPS,
		pageDuration: slides.DefaultPageDuration,
		now:          time.Now,
		commands:     make(chan Command, commandQueue),
		snapshots:    make(chan *weather.Snapshot, 1),
		display:      display,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.ctrl = slides.New(deps.Registry.Active(display),
		slides.WithPageDuration(e.pageDuration),
		slides.WithOnChange(e.pageChanged),
	)
	return e
}

func (e *Engine) pageChanged(from pages.PageID, hadFrom bool, to pages.PageID) {
	if hadFrom {
		e.log.Infow("display changed", "from", from.String(), "to", to.String())
	} else {
		e.log.Infow("display changed", "to", to.String())
	}
	if e.onPage != nil {
		e.onPage(to)
	}
}

// Controller exposes the slide controller.
func (e *Engine) Controller() *slides.Controller { return e.ctrl }

// Submit queues a command for the next frame. It never blocks and reports
// false when the queue is full.
func (e *Engine) Submit(cmd Command) bool {
	select {
	case e.commands <- cmd:
		return true
	default:
		e.log.Warnw("command queue full, dropping command", "command", cmd.Kind.String())
		return false
	}
}

// Publish hands a new snapshot to the render loop. Only the newest
// unconsumed snapshot is kept.
func (e *Engine) Publish(s *weather.Snapshot) {
	if s == nil {
		return
	}
	for {
		select {
		case e.snapshots <- s:
			return
		default:
		}
		select {
		case <-e.snapshots:
		default:
		}
	}
}

// Status returns a consistent view for the API.
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	st := Status{
		State:    e.ctrl.State(),
		MenuOpen: e.menuOpen,
		Display:  e.display,
	}
	if e.snapshot != nil {
		st.SnapshotUpdatedAt = e.snapshot.UpdatedAt
		st.Location = e.snapshot.Location
	}
	return st
}

// Snapshot returns the snapshot the render loop is drawing from.
func (e *Engine) Snapshot() *weather.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// Run steps the engine at the configured frame rate until ctx is done or a
// quit command arrives, in which case it returns ErrQuit.
func (e *Engine) Run(ctx context.Context) error {
	t := time.NewTicker(time.Second / time.Duration(e.fps))
	defer t.Stop()
	defer e.saves.Wait()

	e.log.Infow("render loop started", "fps", e.fps, "pageDuration", e.pageDuration)
	last := e.now()
	for {
		select {
		case <-ctx.Done():
			e.log.Infow("render loop stopped")
			return nil
		case <-t.C:
			now := e.now()
			dt := now.Sub(last)
			last = now
			if err := e.Step(dt); err != nil {
				return err
			}
		}
	}
}

// Step runs one frame.
func (e *Engine) Step(dt time.Duration) error {
	dt = min(max(dt, 0), maxStep)

	select {
	case s := <-e.snapshots:
		e.swapSnapshot(s)
	default:
	}

	if err := e.drainCommands(); err != nil {
		return err
	}

	e.mu.RLock()
	menuOpen, display, snap := e.menuOpen, e.display, e.snapshot
	e.mu.RUnlock()

	// The slideshow holds still under the settings menu.
	if !menuOpen {
		e.ctrl.Tick(dt)
	}

	now := e.now()
	st := e.ctrl.State()
	page, ok := st.Current()
	frame := e.deps.Renderer.Render(render.Input{
		Page:     page,
		HasPage:  ok,
		Index:    st.CurrentIndex,
		Count:    len(st.ActivePages),
		Paused:   !st.AutoAdvance,
		Menu:     menuOpen,
		Snapshot: snap,
		Display:  display,
		Now:      now,
		DT:       dt,
	})
	e.deps.Frames.Publish(frame, now)

	if e.onAge != nil && snap != nil && !snap.UpdatedAt.IsZero() {
		e.onAge(now.Sub(snap.UpdatedAt))
	}
	return nil
}

func (e *Engine) swapSnapshot(s *weather.Snapshot) {
	e.mu.Lock()
	e.snapshot = s
	e.mu.Unlock()
	e.deps.Ticker.SetItems(weather.TickerItems(s))
}

func (e *Engine) drainCommands() error {
	for {
		select {
		case cmd := <-e.commands:
			if err := e.handle(cmd); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}
