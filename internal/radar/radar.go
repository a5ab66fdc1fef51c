// Package radar fetches the national radar composite from the Iowa
// Environmental Mesonet and restyles it with the classic palette.
package radar

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/wesellis/WeatherStar-4000-Python/internal/cache"
	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

const (
	DefaultBaseURL = "https://mesonet.agron.iastate.edu"
	MaxAge         = 300 * time.Second

	archiveSteps = 6
	stepMinutes  = 5
	cacheKey     = "radar"
	maxBodyBytes = 16 << 20
)

var errNoRadar = errors.New("no radar image available from any source")

// Candidate is one URL to try and the time its image represents.
type Candidate struct {
	URL       string
	ValidTime time.Time
}

// CandidateURLs lists sources in the order they are tried: the current N0Q
// composite, the current N0R composite, then N0R archives from the latest
// five-minute mark back thirty minutes.
func CandidateURLs(baseURL string, now time.Time) []Candidate {
	now = now.UTC()
	mark := now.Truncate(stepMinutes * time.Minute)

	out := []Candidate{
		{URL: baseURL + "/data/gis/images/4326/us/USCOMP-N0Q_0.png", ValidTime: mark},
		{URL: baseURL + "/data/gis/images/4326/conus/USCOMP-N0R_0.png", ValidTime: mark},
	}
	for i := 0; i < archiveSteps; i++ {
		t := mark.Add(-time.Duration(i*stepMinutes) * time.Minute)
		out = append(out, Candidate{
			URL: fmt.Sprintf("%s/archive/data/%s/GIS/uscomp/n0r_%s.png",
				baseURL, t.Format("2006/01/02"), t.Format("200601021504")),
			ValidTime: t,
		})
	}
	return out
}

// Fetcher implements weather.RadarSource.
type Fetcher struct {
	baseURL   string
	userAgent string
	client    *http.Client
	cache     *cache.Cache[weather.RadarImage]
	now       func() time.Time
	log       *zap.SugaredLogger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithBaseURL overrides the mesonet host.
func WithBaseURL(u string) Option {
	return func(f *Fetcher) { f.baseURL = u }
}

// WithClock overrides time.Now for both candidate selection and caching.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

// WithObserver reports cache outcomes.
func WithObserver(o cache.Observer) Option {
	return func(f *Fetcher) {
		f.cache = cache.New[weather.RadarImage](
			cache.WithClock[weather.RadarImage](func() time.Time { return f.now() }),
			cache.WithObserver[weather.RadarImage](o))
	}
}

// New creates a Fetcher.
func New(userAgent string, log *zap.SugaredLogger, opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL:   DefaultBaseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
		now:       time.Now,
		log:       log,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.cache == nil {
		f.cache = cache.New[weather.RadarImage](
			cache.WithClock[weather.RadarImage](func() time.Time { return f.now() }))
	}
	return f
}

// Latest returns the newest composite, re-downloading at most every five
// minutes.
func (f *Fetcher) Latest(ctx context.Context) (weather.RadarImage, bool) {
	img, err := f.cache.GetOrFetch(cacheKey, MaxAge, func() (weather.RadarImage, error) {
		return f.download(ctx)
	})
	if err != nil {
		f.log.Warnw("radar unavailable", "error", err)
		return weather.RadarImage{}, false
	}
	return img, true
}

func (f *Fetcher) download(ctx context.Context) (weather.RadarImage, error) {
	for _, c := range CandidateURLs(f.baseURL, f.now()) {
		img, err := f.get(ctx, c.URL)
		if err != nil {
			if ctx.Err() != nil {
				return weather.RadarImage{}, ctx.Err()
			}
			f.log.Debugw("radar candidate failed", "url", c.URL, "error", err)
			continue
		}
		f.log.Infow("radar image loaded", "url", c.URL, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
		return weather.RadarImage{Image: Stylize(img), URL: c.URL, ValidTime: c.ValidTime}, nil
	}
	return weather.RadarImage{}, errNoRadar
}

func (f *Fetcher) get(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	img, _, err := image.Decode(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("decode radar image: %w", err)
	}
	return img, nil
}

// Background is the dark blue drawn where there is no echo.
var Background = color.RGBA{15, 25, 45, 255}

// Stylize maps echo intensity onto the green-yellow-red ramp of the
// original broadcast and paints empty areas dark blue.
func Stylize(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := src.At(x, y).RGBA()
			r8, g8, b8 := r>>8, g>>8, bl>>8
			c := Background
			if r8 > 100 || g8 > 100 || b8 > 100 {
				c = rampColor(int(0.299*float64(r8) + 0.587*float64(g8) + 0.114*float64(b8)))
			}
			dst.SetRGBA(x-b.Min.X, y-b.Min.Y, c)
		}
	}
	return dst
}

func rampColor(intensity int) color.RGBA {
	switch {
	case intensity < 60:
		return color.RGBA{0, 180, 0, 255}
	case intensity < 100:
		return color.RGBA{0, 220, 0, 255}
	case intensity < 140:
		return color.RGBA{255, 255, 0, 255}
	case intensity < 180:
		return color.RGBA{255, 140, 0, 255}
	case intensity < 220:
		return color.RGBA{255, 50, 0, 255}
	}
	return color.RGBA{255, 0, 100, 255}
}
