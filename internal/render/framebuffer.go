package render

import (
	"errors"
	"image"
	"image/draw"
	"image/png"
	"io"
	"sync"
	"time"
)

// ErrNoFrame is returned before the first frame is published.
var ErrNoFrame = errors.New("no frame available")

// FrameBuffer keeps a copy of the latest frame for readers outside the
// render loop.
type FrameBuffer struct {
	mu    sync.RWMutex
	img   *image.RGBA
	links []Link
	seq   uint64
	at    time.Time
}

// NewFrameBuffer creates an empty buffer.
func NewFrameBuffer() *FrameBuffer { return &FrameBuffer{} }

// Publish copies f into the buffer.
func (b *FrameBuffer) Publish(f Frame, at time.Time) {
	if f.Image == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.img == nil || b.img.Bounds() != f.Image.Bounds() {
		b.img = image.NewRGBA(f.Image.Bounds())
	}
	draw.Draw(b.img, b.img.Bounds(), f.Image, f.Image.Bounds().Min, draw.Src)
	b.links = append(b.links[:0], f.Links...)
	b.seq++
	b.at = at
}

// WritePNG encodes the latest frame.
func (b *FrameBuffer) WritePNG(w io.Writer) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.img == nil {
		return ErrNoFrame
	}
	return png.Encode(w, b.img)
}

// LinkAt returns the link under (x, y). Later links win where regions
// overlap.
func (b *FrameBuffer) LinkAt(x, y int) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p := image.Pt(x, y)
	for i := len(b.links) - 1; i >= 0; i-- {
		if p.In(b.links[i].Rect) {
			return b.links[i].URL, true
		}
	}
	return "", false
}

// Seq counts published frames.
func (b *FrameBuffer) Seq() (uint64, time.Time) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.seq, b.at
}
