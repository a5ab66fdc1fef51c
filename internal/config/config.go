package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/wesellis/WeatherStar-4000-Python/internal/settings"
)

const (
	defaultUserAgent = "WeatherStar4000Go/1.0 (github.com/wesellis/WeatherStar-4000-Python)"
	defaultBaseURL   = "https://api.weather.gov"
)

var validate = validator.New()

type AppConfig struct {
	UserAgent   string        `validate:"required"`
	BaseURL     string        `validate:"required,url"`
	HTTPTimeout time.Duration `validate:"gt=0"`

	// RefreshInterval controls how often the snapshot is rebuilt.
	RefreshInterval time.Duration `validate:"gte=1s"`
	PageDuration    time.Duration `validate:"gte=1s"`
	FPS             int           `validate:"min=1,max=120"`

	HTTPAddr     string `validate:"required"`
	SettingsPath string `validate:"required"`
	IconDir      string
	Environment  string
	LogLevel     string `validate:"oneof=debug info warn error"`

	// Location overrides. Lat/Lon are set only when both flags are given.
	Lat     *float64 `validate:"omitempty,latitude"`
	Lon     *float64 `validate:"omitempty,longitude"`
	Address string

	GeocoderAPIKey string
	FallbackLat    float64 `validate:"latitude"`
	FallbackLon    float64 `validate:"longitude"`
	FallbackName   string
	// NoFallback makes an unresolved location fatal.
	NoFallback bool

	// InputDevice is a Linux evdev node; empty disables keyboard input.
	InputDevice string
}

// Load reads configuration from the environment (after an optional .env
// file) and lets command-line flags override it.
func Load(args []string) (*AppConfig, error) {
	// A missing .env file is normal.
	_ = godotenv.Load()

	cfg := &AppConfig{
		UserAgent:    getenvDefault("WEATHER_USER_AGENT", defaultUserAgent),
		BaseURL:      getenvDefault("WEATHER_BASE_URL", defaultBaseURL),
		HTTPAddr:     getenvDefault("HTTP_ADDR", ":8080"),
		SettingsPath: getenvDefault("SETTINGS_PATH", settings.DefaultPath()),
		IconDir:      getenvDefault("ICON_DIR", "icons"),
		Environment:  getenvDefault("ENVIRONMENT", "development"),
		LogLevel:     getenvDefault("LOG_LEVEL", "info"),
		FPS:          getenvInt("FPS", 30),
		InputDevice:  os.Getenv("INPUT_DEVICE"),

		GeocoderAPIKey: os.Getenv("GEOCODER_API_KEY"),
		FallbackLat:    getenvFloat("FALLBACK_LAT", 39.0997),
		FallbackLon:    getenvFloat("FALLBACK_LON", -94.5786),
		FallbackName:   getenvDefault("FALLBACK_NAME", "Kansas City, MO"),
		NoFallback:     os.Getenv("FALLBACK_DISABLED") == "true",
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.PageDuration, err = getenvDuration("PAGE_DURATION", 15*time.Second); err != nil {
		return nil, err
	}

	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (cfg *AppConfig) parseFlags(args []string) error {
	fs := flag.NewFlagSet("weatherstar", flag.ContinueOnError)
	lat := fs.Float64("lat", 0, "latitude of the location to show")
	lon := fs.Float64("lon", 0, "longitude of the location to show")
	fs.StringVar(&cfg.Address, "address", "", "address or ZIP code to geocode")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "listen address of the HTTP API")
	fs.StringVar(&cfg.InputDevice, "input-device", cfg.InputDevice, "evdev keyboard device, e.g. /dev/input/event0")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "frames per second")
	if err := fs.Parse(args); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	switch {
	case set["lat"] && set["lon"]:
		cfg.Lat, cfg.Lon = lat, lon
	case set["lat"] || set["lon"]:
		return errors.New("--lat and --lon must be given together")
	}
	return nil
}

// Production reports whether ENVIRONMENT selects production logging.
func (cfg *AppConfig) Production() bool {
	return cfg.Environment == "production"
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
