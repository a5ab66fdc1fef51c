package radar

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCandidateURLs(t *testing.T) {
	now := time.Date(2026, 10, 18, 14, 7, 42, 0, time.UTC)
	got := CandidateURLs("https://m", now)
	require.Len(t, got, 8)
	assert.Equal(t, "https://m/data/gis/images/4326/us/USCOMP-N0Q_0.png", got[0].URL)
	assert.Equal(t, "https://m/data/gis/images/4326/conus/USCOMP-N0R_0.png", got[1].URL)
	assert.Equal(t, "https://m/archive/data/2026/10/18/GIS/uscomp/n0r_202610181405.png", got[2].URL)
	assert.Equal(t, "https://m/archive/data/2026/10/18/GIS/uscomp/n0r_202610181340.png", got[7].URL)
	assert.Equal(t, time.Date(2026, 10, 18, 14, 5, 0, 0, time.UTC), got[0].ValidTime)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.RGBA{0, 0, 0, 255})
	img.Set(1, 0, color.RGBA{255, 255, 255, 255})
	img.Set(2, 0, color.RGBA{0, 200, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFetcher_FallsThroughToArchive(t *testing.T) {
	body := pngBytes(t)
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if r.URL.Path == "/archive/data/2026/10/18/GIS/uscomp/n0r_202610181400.png" {
			w.Write(body)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	now := time.Date(2026, 10, 18, 14, 7, 0, 0, time.UTC)
	f := New("test/1.0", zap.NewNop().Sugar(), WithBaseURL(srv.URL), WithClock(func() time.Time { return now }))

	img, ok := f.Latest(context.Background())
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 18, 14, 0, 0, 0, time.UTC), img.ValidTime)
	assert.Equal(t, 4, img.Image.Bounds().Dx())
	assert.EqualValues(t, 4, atomic.LoadInt32(&requests))

	_, ok = f.Latest(context.Background())
	require.True(t, ok)
	assert.EqualValues(t, 4, atomic.LoadInt32(&requests), "cached for five minutes")
}

func TestFetcher_NothingAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := New("test/1.0", zap.NewNop().Sugar(), WithBaseURL(srv.URL))
	_, ok := f.Latest(context.Background())
	assert.False(t, ok)
}

func TestStylize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 1))
	src.Set(0, 0, color.RGBA{0, 0, 0, 255})
	src.Set(1, 0, color.RGBA{255, 255, 255, 255})
	src.Set(2, 0, color.RGBA{0, 101, 0, 255})

	out := Stylize(src)
	assert.Equal(t, Background, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 100, 255}, out.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{0, 180, 0, 255}, out.RGBAAt(2, 0))
}
