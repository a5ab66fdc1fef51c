// Package settings persists user preferences to a JSON file in the home
// directory. The slideshow core only reads the display flags.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// FileName is the settings file created in the user's home directory.
const FileName = ".weatherstar4000_settings.json"

// Location is a saved manual location.
type Location struct {
	AutoDetect  bool     `mapstructure:"auto_detect" json:"auto_detect"`
	Lat         *float64 `mapstructure:"lat" json:"lat"`
	Lon         *float64 `mapstructure:"lon" json:"lon"`
	Zip         string   `mapstructure:"zip" json:"zip,omitempty"`
	Description string   `mapstructure:"description" json:"description,omitempty"`
}

// Manual reports whether a saved manual location should be used.
func (l Location) Manual() bool {
	return !l.AutoDetect && l.Lat != nil && l.Lon != nil
}

// Display holds the page toggles and presentation preferences.
type Display struct {
	ShowMarine     bool    `mapstructure:"show_marine" json:"show_marine"`
	ShowTrends     bool    `mapstructure:"show_trends" json:"show_trends"`
	ShowHistorical bool    `mapstructure:"show_historical" json:"show_historical"`
	ShowMSN        bool    `mapstructure:"show_msn" json:"show_msn"`
	ShowReddit     bool    `mapstructure:"show_reddit" json:"show_reddit"`
	ShowLocalNews  bool    `mapstructure:"show_local_news" json:"show_local_news"`
	MusicVolume    float64 `mapstructure:"music_volume" json:"music_volume"`
}

// MenuItem is one numbered entry of the settings menu.
type MenuItem struct {
	Key   int
	Label string
	Value string
}

// Menu lists the settings menu entries in key order.
func (d Display) Menu() []MenuItem {
	check := func(b bool) string {
		if b {
			return "ON"
		}
		return "OFF"
	}
	return []MenuItem{
		{1, "Marine Forecast", check(d.ShowMarine)},
		{2, "Weather Trends", check(d.ShowTrends)},
		{3, "Historical Data", check(d.ShowHistorical)},
		{4, "Music Volume", fmt.Sprintf("%d%%", int(d.MusicVolume*100+0.5))},
		{5, "MSN Top Stories", check(d.ShowMSN)},
		{6, "Reddit Headlines", check(d.ShowReddit)},
		{7, "Local News", check(d.ShowLocalNews)},
	}
}

// Toggle flips the setting bound to a menu key and reports whether the key
// is known. Key 4 steps the volume by 10% and wraps to zero past 100%.
func (d *Display) Toggle(key int) bool {
	switch key {
	case 1:
		d.ShowMarine = !d.ShowMarine
	case 2:
		d.ShowTrends = !d.ShowTrends
	case 3:
		d.ShowHistorical = !d.ShowHistorical
	case 4:
		v := float64(int(d.MusicVolume*10+0.5)+1) / 10
		if v > 1.0 {
			v = 0
		}
		d.MusicVolume = v
	case 5:
		d.ShowMSN = !d.ShowMSN
	case 6:
		d.ShowReddit = !d.ShowReddit
	case 7:
		d.ShowLocalNews = !d.ShowLocalNews
	default:
		return false
	}
	return true
}

// Settings is the whole settings document.
type Settings struct {
	Location Location `mapstructure:"location" json:"location"`
	Display  Display  `mapstructure:"display" json:"display"`
}

// Defaults returns the settings used for keys missing from the file.
func Defaults() Settings {
	return Settings{
		Location: Location{AutoDetect: true},
		Display: Display{
			ShowTrends:     true,
			ShowHistorical: true,
			ShowMSN:        true,
			ShowReddit:     true,
			ShowLocalNews:  true,
			MusicVolume:    0.3,
		},
	}
}

// DefaultPath returns the settings file path in the user's home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Store loads and saves settings at a fixed path.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store for the given file. An empty path selects
// DefaultPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

func setDefaults(v *viper.Viper, d Settings) {
	v.SetDefault("location.auto_detect", d.Location.AutoDetect)
	v.SetDefault("display.show_marine", d.Display.ShowMarine)
	v.SetDefault("display.show_trends", d.Display.ShowTrends)
	v.SetDefault("display.show_historical", d.Display.ShowHistorical)
	v.SetDefault("display.show_msn", d.Display.ShowMSN)
	v.SetDefault("display.show_reddit", d.Display.ShowReddit)
	v.SetDefault("display.show_local_news", d.Display.ShowLocalNews)
	v.SetDefault("display.music_volume", d.Display.MusicVolume)
}

// Load reads the settings file, merging defaults for missing keys. A
// missing file yields the defaults and no error.
func (s *Store) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := viper.New()
	setDefaults(v, Defaults())
	v.SetConfigFile(s.path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Defaults(), fmt.Errorf("read settings %s: %w", s.path, err)
		}
	}

	var out Settings
	if err := v.Unmarshal(&out); err != nil {
		return Defaults(), fmt.Errorf("decode settings %s: %w", s.path, err)
	}
	return out, nil
}

// Save writes the settings document back to the file.
func (s *Store) Save(st Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := viper.New()
	v.SetConfigType("json")

	loc := map[string]any{
		"auto_detect": st.Location.AutoDetect,
		"zip":         st.Location.Zip,
		"description": st.Location.Description,
	}
	if st.Location.Lat != nil {
		loc["lat"] = *st.Location.Lat
	}
	if st.Location.Lon != nil {
		loc["lon"] = *st.Location.Lon
	}
	v.Set("location", loc)
	v.Set("display", map[string]any{
		"show_marine":     st.Display.ShowMarine,
		"show_trends":     st.Display.ShowTrends,
		"show_historical": st.Display.ShowHistorical,
		"show_msn":        st.Display.ShowMSN,
		"show_reddit":     st.Display.ShowReddit,
		"show_local_news": st.Display.ShowLocalNews,
		"music_volume":    st.Display.MusicVolume,
	})

	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	return nil
}

// SaveLocation stores a manual location, keeping the display preferences.
func (s *Store) SaveLocation(lat, lon float64, description string) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	if description == "" {
		description = fmt.Sprintf("%.4f, %.4f", lat, lon)
	}
	st.Location = Location{Lat: &lat, Lon: &lon, Description: description}
	return s.Save(st)
}

// SaveDisplay stores the display preferences, keeping the location.
func (s *Store) SaveDisplay(d Display) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	st.Display = d
	return s.Save(st)
}
