package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.json"))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
}

func TestLoad_MergesDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	doc := `{"display": {"show_marine": true, "show_msn": false}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	got, err := NewStore(path).Load()
	require.NoError(t, err)

	assert.True(t, got.Display.ShowMarine)
	assert.False(t, got.Display.ShowMSN)
	assert.True(t, got.Display.ShowReddit)
	assert.True(t, got.Display.ShowLocalNews)
	assert.InDelta(t, 0.3, got.Display.MusicVolume, 1e-9)
	assert.True(t, got.Location.AutoDetect)
	assert.False(t, got.Location.Manual())
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got, err := NewStore(path).Load()
	require.Error(t, err)
	assert.Equal(t, Defaults(), got)
}

func TestSaveLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := NewStore(path)

	st := Defaults()
	st.Display.ShowMarine = true
	require.NoError(t, s.Save(st))
	require.NoError(t, s.SaveLocation(47.6062, -122.3321, ""))

	got, err := s.Load()
	require.NoError(t, err)
	require.True(t, got.Location.Manual())
	assert.InDelta(t, 47.6062, *got.Location.Lat, 1e-9)
	assert.InDelta(t, -122.3321, *got.Location.Lon, 1e-9)
	assert.Equal(t, "47.6062, -122.3321", got.Location.Description)
	assert.True(t, got.Display.ShowMarine, "display preferences survive")
}

func TestSaveDisplayKeepsLocation(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, s.SaveLocation(39.0997, -94.5786, "Kansas City, MO"))

	d := Defaults().Display
	d.ShowReddit = false
	require.NoError(t, s.SaveDisplay(d))

	got, err := s.Load()
	require.NoError(t, err)
	assert.False(t, got.Display.ShowReddit)
	assert.Equal(t, "Kansas City, MO", got.Location.Description)
}

func TestDisplayToggle(t *testing.T) {
	d := Defaults().Display

	require.True(t, d.Toggle(1))
	assert.True(t, d.ShowMarine)
	require.True(t, d.Toggle(7))
	assert.False(t, d.ShowLocalNews)
	assert.False(t, d.Toggle(9))

	d.MusicVolume = 0.9
	d.Toggle(4)
	assert.InDelta(t, 1.0, d.MusicVolume, 1e-9)
	d.Toggle(4)
	assert.InDelta(t, 0.0, d.MusicVolume, 1e-9)
}

func TestDisplayMenu(t *testing.T) {
	menu := Defaults().Display.Menu()
	require.Len(t, menu, 7)
	assert.Equal(t, MenuItem{1, "Marine Forecast", "OFF"}, menu[0])
	assert.Equal(t, "30%", menu[3].Value)
}
