package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
	"sync"
	"time"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"

	"github.com/wesellis/WeatherStar-4000-Python/internal/anim"
)

// Icon view box. Generated icons are drawn in this space and scaled on
// rasterisation.
const (
	iconViewW = 86
	iconViewH = 75
)

const (
	sunStyle   = "fill:#FFD200;stroke:#FF9600;stroke-width:2"
	cloudStyle = "fill:#E6E6F0;stroke:#8C8CA0;stroke-width:1"
	darkCloud  = "fill:#9696A5;stroke:#5A5A6E;stroke-width:1"
	rainStyle  = "stroke:#50A0FF;stroke-width:3;stroke-linecap:round"
	snowStyle  = "fill:#FFFFFF"
	boltStyle  = "fill:#FFE600;stroke:#FF9600;stroke-width:1"
	fogStyle   = "stroke:#C8C8D2;stroke-width:4;stroke-linecap:round"
)

func sun(canvas *svg.SVG, cx, cy, r int) {
	for i := 0; i < 8; i++ {
		dx := []int{0, 1, 1, 1, 0, -1, -1, -1}[i]
		dy := []int{-1, -1, 0, 1, 1, 1, 0, -1}[i]
		l := r + 8
		canvas.Line(cx+dx*(r+3), cy+dy*(r+3), cx+dx*l, cy+dy*l, "stroke:#FFD200;stroke-width:3")
	}
	canvas.Circle(cx, cy, r, sunStyle)
}

func cloud(canvas *svg.SVG, x, y int, style string) {
	canvas.Circle(x+18, y+14, 12, style)
	canvas.Circle(x+34, y+10, 15, style)
	canvas.Ellipse(x+28, y+22, 26, 10, style)
}

// iconSVG generates the SVG document of a condition icon. Unknown names
// produce the clear sky icon.
func iconSVG(name string) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(iconViewW, iconViewH, 0, 0, iconViewW, iconViewH)

	switch name {
	case "logo":
		canvas.Roundrect(2, 2, iconViewW-4, iconViewH-4, 10, 10, "fill:#202080;stroke:#FFFFFF;stroke-width:3")
		canvas.Roundrect(12, 14, 62, 10, 3, 3, "fill:#FF3C3C")
		canvas.Roundrect(12, 32, 62, 10, 3, 3, "fill:#FFD200")
		canvas.Roundrect(12, 50, 62, 10, 3, 3, "fill:#3CC8FF")
	case "Partly-Cloudy":
		sun(canvas, 30, 26, 14)
		cloud(canvas, 24, 30, cloudStyle)
	case "Cloudy":
		cloud(canvas, 8, 14, darkCloud)
		cloud(canvas, 22, 26, cloudStyle)
	case "Rain", "Shower":
		if name == "Shower" {
			sun(canvas, 62, 18, 10)
		}
		cloud(canvas, 14, 8, darkCloud)
		for i := 0; i < 4; i++ {
			x := 22 + i*12
			canvas.Line(x, 44, x-5, 60, rainStyle)
		}
	case "Thunderstorm":
		cloud(canvas, 14, 8, darkCloud)
		canvas.Polygon([]int{40, 30, 40, 34, 50, 42}, []int{38, 54, 54, 70, 50, 50}, boltStyle)
	case "Light-Snow":
		cloud(canvas, 14, 8, cloudStyle)
		for i := 0; i < 4; i++ {
			canvas.Circle(22+i*12, 50+(i%2)*8, 3, snowStyle)
		}
	case "Fog":
		for i := 0; i < 4; i++ {
			canvas.Line(10+(i%2)*6, 20+i*12, 76-(i%2)*6, 20+i*12, fogStyle)
		}
	case "Windy":
		for i := 0; i < 3; i++ {
			y := 22 + i*14
			canvas.Line(10, y, 60+i*6, y, "stroke:#DCDCE6;stroke-width:4;stroke-linecap:round")
		}
	default:
		sun(canvas, iconViewW/2, iconViewH/2, 18)
	}

	canvas.End()
	return buf.Bytes()
}

// rasterize renders an SVG document at w x h.
func rasterize(doc []byte, w, h int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("read svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return img, nil
}

// decodeGIF composes every frame of an animated GIF onto a full canvas.
func decodeGIF(path string) (*anim.Icon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("decode %s: no frames", path)
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	acc := image.NewRGBA(bounds)
	frames := make([]image.Image, 0, len(g.Image))
	delays := make([]time.Duration, 0, len(g.Image))
	for i, p := range g.Image {
		draw.Draw(acc, p.Bounds(), p, p.Bounds().Min, draw.Over)
		frame := image.NewRGBA(bounds)
		draw.Draw(frame, bounds, acc, bounds.Min, draw.Src)
		frames = append(frames, frame)

		var d time.Duration
		if i < len(g.Delay) {
			d = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		delays = append(delays, d)

		if i < len(g.Disposal) && g.Disposal[i] == gif.DisposalBackground {
			draw.Draw(acc, p.Bounds(), image.Transparent, image.Point{}, draw.Src)
		}
	}
	return anim.NewIcon(frames, delays), nil
}

type rasterKey struct {
	name string
	w, h int
}

// IconSet resolves icon names to images. An animated GIF named <name>.gif
// in the icon directory wins; otherwise a generated vector icon is used.
type IconSet struct {
	dir string
	log *zap.SugaredLogger

	mu     sync.Mutex
	gifs   map[string]*anim.Icon
	raster map[rasterKey]image.Image
}

// NewIconSet creates an icon set. An empty dir disables GIF lookup.
func NewIconSet(dir string, log *zap.SugaredLogger) *IconSet {
	return &IconSet{
		dir:    dir,
		log:    log,
		gifs:   make(map[string]*anim.Icon),
		raster: make(map[rasterKey]image.Image),
	}
}

func (s *IconSet) loadGIF(name string) *anim.Icon {
	if s.dir == "" {
		return nil
	}
	if ic, seen := s.gifs[name]; seen {
		return ic
	}
	ic, err := decodeGIF(filepath.Join(s.dir, name+".gif"))
	if err != nil && !os.IsNotExist(err) {
		s.log.Warnw("icon load failed", "icon", name, "error", err)
	}
	s.gifs[name] = ic
	return ic
}

// Frame returns the image to draw for name at the given size and time.
func (s *IconSet) Frame(name string, w, h int, now time.Time) image.Image {
	if w <= 0 || h <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if ic := s.loadGIF(name); ic != nil {
		return ic.Frame(now)
	}

	key := rasterKey{name, w, h}
	if img, ok := s.raster[key]; ok {
		return img
	}
	img, err := rasterize(iconSVG(name), w, h)
	if err != nil {
		s.log.Warnw("icon rasterize failed", "icon", name, "error", err)
		s.raster[key] = nil
		return nil
	}
	s.raster[key] = img
	return img
}
