// Package anim holds per-region animation state: wrapping scrollers,
// bouncing oscillators and wall-clock driven icon animations.
package anim

import (
	"image"
	"time"
)

// Scroller moves at a constant rate and jumps back to Restart once the offset
// leaves the allowed range.
type Scroller struct {
	Offset  float64
	Rate    float64 // units per second; negative scrolls up or left
	Restart float64
}

// Advance moves the offset by Rate*dt and wraps it when it falls outside
// [lo, hi]. It returns the new offset.
func (s *Scroller) Advance(dt time.Duration, lo, hi float64) float64 {
	s.Offset += s.Rate * dt.Seconds()
	if s.Offset < lo || s.Offset > hi {
		s.Offset = s.Restart
	}
	return s.Offset
}

// Oscillator moves back and forth between two extremes.
type Oscillator struct {
	Offset    float64
	Rate      float64 // units per second, always positive
	Direction int     // +1 or -1
}

// Advance moves the offset and flips direction at lo and hi. A range with no
// room to move pins the offset to hi.
func (o *Oscillator) Advance(dt time.Duration, lo, hi float64) float64 {
	if hi <= lo {
		o.Offset = hi
		return o.Offset
	}
	if o.Direction == 0 {
		o.Direction = 1
	}
	o.Offset += float64(o.Direction) * o.Rate * dt.Seconds()
	switch {
	case o.Offset > hi:
		o.Offset = hi
		o.Direction = -1
	case o.Offset < lo:
		o.Offset = lo
		o.Direction = 1
	}
	return o.Offset
}

// defaultDelay replaces zero GIF delays, as browsers do.
const defaultDelay = 100 * time.Millisecond

// Icon replays a multi-frame image in real time regardless of frame rate.
type Icon struct {
	frames []image.Image
	delays []time.Duration
	total  time.Duration
	start  time.Time
}

// NewIcon creates an Icon. delays[i] is how long frames[i] stays up; missing
// or zero delays use 100ms.
func NewIcon(frames []image.Image, delays []time.Duration) *Icon {
	d := make([]time.Duration, len(frames))
	var total time.Duration
	for i := range frames {
		if i < len(delays) && delays[i] > 0 {
			d[i] = delays[i]
		} else {
			d[i] = defaultDelay
		}
		total += d[i]
	}
	return &Icon{frames: frames, delays: d, total: total}
}

// FrameIndex returns the frame that should be showing at now. The schedule
// starts on the first call.
func (ic *Icon) FrameIndex(now time.Time) int {
	if len(ic.frames) <= 1 {
		return 0
	}
	if ic.start.IsZero() || now.Before(ic.start) {
		ic.start = now
	}
	elapsed := now.Sub(ic.start) % ic.total
	for i, d := range ic.delays {
		if elapsed < d {
			return i
		}
		elapsed -= d
	}
	return len(ic.frames) - 1
}

// Frame returns the image for now, or nil for an empty icon.
func (ic *Icon) Frame(now time.Time) image.Image {
	if len(ic.frames) == 0 {
		return nil
	}
	return ic.frames[ic.FrameIndex(now)]
}

// Len is the number of frames.
func (ic *Icon) Len() int { return len(ic.frames) }
