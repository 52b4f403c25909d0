package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"lingomap/internal/api"
	"lingomap/pkg/cache"
	"lingomap/pkg/catalog"
	"lingomap/pkg/config"
	"lingomap/pkg/db"
	"lingomap/pkg/db/maintenance"
	"lingomap/pkg/dialect"
	"lingomap/pkg/geo"
	"lingomap/pkg/logging"
	"lingomap/pkg/mapstyle"
	"lingomap/pkg/playback"
	"lingomap/pkg/probe"
	"lingomap/pkg/request"
	"lingomap/pkg/tracker"
	"lingomap/pkg/tts"
	"lingomap/pkg/version"
	"lingomap/pkg/voice"
)

const defaultConfigPath = "configs/lingomap.yaml"

var (
	configPath = flag.String("config", defaultConfigPath, "Path to the config file")
	initConfig = flag.Bool("init-config", false, "Generate default config file and exit")
)

func main() {
	flag.Parse()

	if *initConfig {
		if err := config.GenerateDefault(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config file generated: %s\n", *configPath)
		return
	}

	// API keys may live in .env; a missing file is fine
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to read .env: %v\n", err)
	}

	if err := run(context.Background(), *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

// services holds everything the HTTP layer needs.
type services struct {
	catalog  *catalog.Catalog
	rules    *dialect.Rules
	tracker  *tracker.Tracker
	chain    *voice.Chain
	playback *playback.Service
	resolver *mapstyle.Resolver
	snap     *mapstyle.Snapshotter
	regions  *geo.RegionService
	locator  *geo.Locator
	order    []string
}

func run(ctx context.Context, configPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	appCfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogs, err := logging.Init(&appCfg.Log, &appCfg.History)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	if appCfg.History.TTS.Enabled {
		tts.SetLogPath(appCfg.History.TTS.Path)
	}

	slog.Info("lingomap Started", "version", version.Version)

	dbConn, err := db.Init(appCfg.DB.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbConn.Close()

	go runMaintenance(ctx, dbConn, appCfg.Cache.TTL.Std())

	svcs, err := initServices(appCfg, dbConn)
	if err != nil {
		return err
	}

	probes := []probe.Probe{probe.Catalog(svcs.catalog)}
	if svcs.regions != nil {
		probes = append(probes, probe.Regions(svcs.regions.Codes))
	} else {
		probes = append(probes, probe.Regions(nil))
	}
	probes = append(probes, probe.Providers(svcs.chain.Providers())...)

	results := probe.Run(ctx, probes)
	if err := probe.AnalyzeResults(results); err != nil {
		return fmt.Errorf("startup checks failed: %w", err)
	}

	return runServer(ctx, appCfg, svcs)
}

func initServices(cfg *config.Config, dbConn *db.DB) (*services, error) {
	cat, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	tr := tracker.New()
	rules := dialect.New(cfg.Voice.DefaultLocale)
	client := request.New(cfg.Request.Timeout.Std())

	providers, order := buildProviders(cfg, client)

	var audioCache cache.Cacher = cache.Nop{}
	if cfg.Cache.Enabled {
		audioCache = cache.NewSQLiteCache(dbConn)
	}

	chain, err := voice.New(voice.Config{
		Providers:       providers,
		Rules:           rules,
		Catalog:         cat,
		Store:           voice.NewAudioStore(cfg.Voice.AudioTTL.Std()),
		Cache:           audioCache,
		Tracker:         tr,
		ProviderTimeout: cfg.Voice.ProviderTimeout.Std(),
		MaxTextLength:   cfg.Voice.MaxTextLength,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize voice chain: %w", err)
	}

	regions, err := geo.NewRegionService(cfg.Map.RegionsFile)
	if err != nil {
		slog.Warn("Region boundaries not available, map lookups disabled", "path", cfg.Map.RegionsFile, "error", err)
		regions = nil
	}

	locator, err := geo.NewLocator(cat.All(), regions, cfg.Map.H3Resolution)
	if err != nil {
		return nil, fmt.Errorf("failed to index language centers: %w", err)
	}

	res := mapstyle.NewResolver(cat, mapstyle.Options{
		FillOpacity:   cfg.Map.FillOpacity,
		MutedOpacity:  cfg.Map.MutedOpacity,
		StrokeColor:   cfg.Map.StrokeColor,
		StrokeWeight:  cfg.Map.StrokeWeight,
		ExcludedColor: cfg.Map.ExcludedColor,
		NoDataColor:   cfg.Map.NoDataColor,
	})
	var codes func() []string
	if regions != nil {
		codes = regions.Codes
	}

	return &services{
		catalog:  cat,
		rules:    rules,
		tracker:  tr,
		chain:    chain,
		playback: playback.NewService(playback.NewManager(), chain),
		resolver: res,
		snap:     mapstyle.NewSnapshotter(res, codes),
		regions:  regions,
		locator:  locator,
		order:    order,
	}, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		cat, err := catalog.LoadEmbedded()
		if err != nil {
			return nil, fmt.Errorf("failed to load bundled catalogue: %w", err)
		}
		return cat, nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogue %s: %w", path, err)
	}
	return cat, nil
}

func buildProviders(cfg *config.Config, client *request.Client) ([]tts.Provider, []string) {
	selected, unknown := voice.BuildProviders(cfg.Voice, client)
	if len(unknown) > 0 {
		slog.Warn("Ignoring unknown voice providers in config", "names", unknown)
	}
	order := voice.Names(selected)
	slog.Info("Voice provider order", "providers", order)
	return selected, order
}

// runMaintenance prunes the audio cache at startup and then hourly.
func runMaintenance(ctx context.Context, dbConn *db.DB, ttl time.Duration) {
	if err := maintenance.Run(ctx, dbConn, ttl); err != nil {
		slog.Error("Maintenance tasks failed", "error", err)
	}
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := maintenance.Run(ctx, dbConn, ttl); err != nil {
				slog.Error("Maintenance tasks failed", "error", err)
			}
		}
	}
}

func runServer(ctx context.Context, cfg *config.Config, svcs *services) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	shutdownFunc := func() { quit <- syscall.SIGTERM }

	srv := api.NewServer(cfg.Server.Address,
		api.NewLanguageHandler(svcs.catalog),
		api.NewMapHandler(svcs.resolver, svcs.snap, svcs.regions, svcs.locator, cfg.Map.NearbyRings),
		api.NewVoiceHandler(svcs.playback, svcs.chain, svcs.catalog),
		api.NewDialectHandler(dialect.NewDetector(dialect.DefaultThreshold), svcs.rules),
		api.NewStatsHandler(svcs.tracker, svcs.chain.Store(), svcs.order),
		api.NewEventsHandler(svcs.playback.Manager()),
		shutdownFunc,
	)

	err := runServerLifecycle(ctx, srv, quit)
	// abandon in-flight voice requests
	svcs.playback.Manager().StopAll()
	return err
}

func runServerLifecycle(ctx context.Context, srv *http.Server, quit chan os.Signal) error {
	slog.Info("Starting server", "addr", srv.Addr)
	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()
	select {
	case <-quit:
		slog.Info("Shutting down server...")
	case <-ctx.Done():
		slog.Info("Context cancelled, shutting down...")
	case err := <-serverErrors:
		return fmt.Errorf("server failed: %w", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
