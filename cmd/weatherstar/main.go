package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/wesellis/WeatherStar-4000-Python/internal/anim"
	httpapi "github.com/wesellis/WeatherStar-4000-Python/internal/api/http"
	"github.com/wesellis/WeatherStar-4000-Python/internal/cache"
	"github.com/wesellis/WeatherStar-4000-Python/internal/config"
	"github.com/wesellis/WeatherStar-4000-Python/internal/engine"
	"github.com/wesellis/WeatherStar-4000-Python/internal/input"
	"github.com/wesellis/WeatherStar-4000-Python/internal/location"
	"github.com/wesellis/WeatherStar-4000-Python/internal/logging"
	"github.com/wesellis/WeatherStar-4000-Python/internal/metrics"
	"github.com/wesellis/WeatherStar-4000-Python/internal/news"
	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
	"github.com/wesellis/WeatherStar-4000-Python/internal/radar"
	"github.com/wesellis/WeatherStar-4000-Python/internal/render"
	"github.com/wesellis/WeatherStar-4000-Python/internal/scheduler"
	"github.com/wesellis/WeatherStar-4000-Python/internal/screens"
	"github.com/wesellis/WeatherStar-4000-Python/internal/settings"
	"github.com/wesellis/WeatherStar-4000-Python/internal/store"
	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
	"github.com/wesellis/WeatherStar-4000-Python/internal/weather/nws"
)

// Observation history kept for the pressure trend.
const (
	storeMaxHistory = 96
	storeMaxAge     = 24 * time.Hour
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run starts the display and returns the process exit code: 0 after a
// normal shutdown or -h, 1 when startup cannot complete.
func run(args []string) int {
	// Load configuration.
	cfg, err := config.Load(args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Production())
	if err != nil {
		log.Printf("failed to build logger: %v", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	logger.Infow("weatherstar 4000 starting", "httpAddr", cfg.HTTPAddr, "fps", cfg.FPS)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector("weatherstar")

	settingsStore := settings.NewStore(cfg.SettingsPath)
	saved, err := settingsStore.Load()
	if err != nil {
		logger.Warnw("failed to load settings; using defaults", "path", settingsStore.Path(), "error", err)
	}

	loc, err := resolveLocation(ctx, cfg, saved, logger)
	if err != nil {
		logger.Errorw("no location available", "error", err)
		return 1
	}

	registry, err := pages.NewRegistry(screens.Descriptors())
	if err != nil {
		logger.Errorw("page registry incomplete", "error", err)
		return 1
	}

	fonts, err := render.LoadFonts()
	if err != nil {
		logger.Warnw("failed to load fonts; using fallback face", "error", err)
		fonts = render.BasicFonts()
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	client := nws.New(logger,
		nws.WithBaseURL(cfg.BaseURL),
		nws.WithUserAgent(cfg.UserAgent),
		nws.WithHTTPClient(httpClient),
		nws.WithCache(cache.New[[]byte](cache.WithObserver[[]byte](collector))),
		nws.WithRecorder(collector),
	)

	service := weather.NewService(client, store.NewMemoryStore(storeMaxHistory, storeMaxAge), loc, logger,
		weather.WithRadar(radar.New(cfg.UserAgent, logger, radar.WithObserver(collector))),
		weather.WithHeadlines(
			news.MSN(),
			news.Reddit(),
			news.NewLocalSource(cfg.UserAgent, logger, news.WithRSSClient(httpClient)),
		),
	)

	animStore := anim.NewStore()
	ticker := render.NewTicker()
	frames := render.NewFrameBuffer()
	renderer := render.NewRenderer(registry, animStore, ticker, fonts, logger,
		render.WithIcons(render.NewIconSet(cfg.IconDir, logger)),
		render.WithFrameObserver(collector.ObserveFrame),
	)

	var sched *scheduler.Scheduler
	eng := engine.New(engine.Deps{
		Registry: registry,
		Renderer: renderer,
		Ticker:   ticker,
		Anim:     animStore,
		Frames:   frames,
		Log:      logger,
	}, saved.Display,
		engine.WithFPS(cfg.FPS),
		engine.WithPageDuration(cfg.PageDuration),
		engine.WithSettings(settingsStore),
		engine.WithRefresher(func() { sched.RunNow(ctx) }),
		engine.WithPageObserver(func(p pages.PageID) { collector.RecordPageChange(p.String()) }),
		engine.WithSnapshotAge(collector.SetSnapshotAge),
	)

	// Scheduler that periodically refreshes the snapshot.
	sched = scheduler.New(cfg.RefreshInterval, service, eng, logger)
	sched.OnRefresh = collector.ObserveRefresh
	if err := sched.Start(); err != nil {
		logger.Errorw("failed to start scheduler", "error", err)
		return 1
	}
	defer sched.Stop()

	// Initial load in the background; pages show their unavailable state
	// until it lands.
	go sched.RunNow(ctx)

	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		logger.Errorw("failed to listen", "addr", cfg.HTTPAddr, "error", err)
		return 1
	}
	app := httpapi.NewApp(httpapi.Deps{
		Engine:  eng,
		Frames:  frames,
		Metrics: collector.Handler(),
	}, !cfg.Production())
	go func() {
		if err := app.Listener(ln); err != nil {
			logger.Warnw("fiber server stopped", "error", err)
		}
	}()

	if cfg.InputDevice != "" {
		go func() {
			if err := input.Run(ctx, cfg.InputDevice, eng, logger); err != nil {
				logger.Warnw("keyboard input disabled", "device", cfg.InputDevice, "error", err)
			}
		}()
	}

	code := 0
	if err := eng.Run(ctx); err != nil && !errors.Is(err, engine.ErrQuit) {
		logger.Errorw("render loop failed", "error", err)
		code = 1
	}
	logger.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warnw("error during shutdown", "error", err)
	}
	return code
}

func resolveLocation(ctx context.Context, cfg *config.AppConfig, saved settings.Settings, logger *zap.SugaredLogger) (weather.Location, error) {
	var opts []location.Option
	if !cfg.NoFallback {
		opts = append(opts, location.WithFallback(weather.Location{
			Latitude:    cfg.FallbackLat,
			Longitude:   cfg.FallbackLon,
			Description: cfg.FallbackName,
		}))
	}
	if cfg.GeocoderAPIKey != "" {
		logger.Debugw("geocoding enabled", "apiKey", logging.MaskSensitiveString(cfg.GeocoderAPIKey, 4, 2))
		opts = append(opts, location.WithGeocoder(location.NewGoogleGeocoder(cfg.GeocoderAPIKey)))
	}

	address := cfg.Address
	if address == "" {
		address = saved.Location.Zip
	}
	return location.NewResolver(nil, logger, opts...).Resolve(ctx, location.Request{
		Lat:     cfg.Lat,
		Lon:     cfg.Lon,
		Address: address,
		Saved:   saved.Location,
	})
}
