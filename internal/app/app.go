package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"JobScanner/internal/config"
	"JobScanner/internal/inference"
	"JobScanner/internal/infrastructure/adapters"
	"JobScanner/internal/infrastructure/lock"
	"JobScanner/internal/infrastructure/scheduler"
	"JobScanner/internal/infrastructure/session"
	"JobScanner/internal/infrastructure/storage"
	"JobScanner/internal/logging"
	"JobScanner/internal/ports"
	"JobScanner/internal/scraper"
	"JobScanner/internal/usecase"
)

// Application wires config to use cases and lifecycle orchestration.
type Application struct {
	cfg          config.Config
	logger       *slog.Logger
	orchestrator *usecase.Orchestrator
	sweeper      *usecase.Sweeper
	cronjobs     ports.Scheduler
}

// New builds a runnable application instance.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := storage.Open(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	var cycleLock ports.CycleLock
	if cfg.Redis.URL != "" {
		client, err := lock.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		cycleLock = lock.NewRedisCycleLock(client)
	}

	organizations := storage.NewOrganizationRepository(db)
	listings := storage.NewListingRepository(db)
	skillDemand := storage.NewSkillDemandRepository(db)

	engine := inference.NewEngine(cfg.Inference.Skills, cfg.Inference.Counties)
	ingestor := usecase.NewIngestor(organizations, listings, engine, nil)

	adapterDeps := adapters.Deps{
		Sessions: session.NewFactory(nil),
		Pacing: scraper.Pacing{
			Min: time.Duration(cfg.Scraping.DelayMinMs) * time.Millisecond,
			Max: time.Duration(cfg.Scraping.DelayMaxMs) * time.Millisecond,
		},
		PageTimeout: time.Duration(cfg.Scraping.PageTimeoutSec) * time.Second,
		Logger:      baseLogger,
	}

	registry := scraper.NewRegistry()
	registry.Register(adapters.NewLinkedIn(adapterDeps))
	registry.Register(adapters.NewIndeed(adapterDeps))
	registry.Register(adapters.NewGlassdoor(adapterDeps))
	registry.Register(adapters.NewCareerPages(adapterDeps, careerPages(cfg.Scraping.CareerPages)))

	orchestrator := usecase.NewOrchestrator(usecase.OrchestratorDeps{
		Registry:    registry,
		Ingestor:    ingestor,
		SkillDemand: usecase.NewSkillDemandRefresher(listings, skillDemand, baseLogger.With("component", "skilldemand")),
		Lock:        cycleLock,
		SearchTerms: cfg.Scraping.SearchTerms,
		Locations:   cfg.Scraping.Locations,
		MaxPages:    cfg.Scraping.MaxPages,
		Logger:      baseLogger.With("component", "orchestrator"),
	})

	sweeper := usecase.NewSweeper(
		listings,
		time.Duration(cfg.Retention.Days)*24*time.Hour,
		baseLogger.With("component", "sweeper"),
		nil,
	)

	return &Application{
		cfg:          cfg,
		logger:       baseLogger,
		orchestrator: orchestrator,
		sweeper:      sweeper,
		cronjobs:     scheduler.New(cfg.Scheduler.Location()),
	}, nil
}

// Run starts the schedules and serves the trigger boundary until ctx ends.
func (a *Application) Run(ctx context.Context) error {
	if err := a.cronjobs.Add(a.cfg.Scheduler.ScrapeCron, func() {
		a.orchestrator.RunCycle(ctx)
	}); err != nil {
		return fmt.Errorf("schedule scrape cycle: %w", err)
	}
	if err := a.cronjobs.Add(a.cfg.Scheduler.RetentionCron, func() {
		a.sweeper.Sweep(ctx)
	}); err != nil {
		return fmt.Errorf("schedule retention sweep: %w", err)
	}

	a.cronjobs.Start()
	defer a.cronjobs.Stop()

	// Populate the store without waiting for the first tick.
	a.orchestrator.RunCycle(ctx)

	srv := &http.Server{
		Addr:    ":" + a.cfg.HTTP.Port,
		Handler: a.routes(ctx),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		a.orchestrator.Wait()
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}

// routes exposes the health check and the fire-and-trigger scrape boundary.
func (a *Application) routes(ctx context.Context) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "jobscanner"})
	})

	mux.HandleFunc("POST /scrape", func(w http.ResponseWriter, _ *http.Request) {
		a.orchestrator.RunCycle(ctx)
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "scrape cycle triggered"})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func careerPages(cfg []config.CareerPage) []adapters.CareerPage {
	pages := make([]adapters.CareerPage, 0, len(cfg))
	for _, p := range cfg {
		pages = append(pages, adapters.CareerPage{Organization: p.Organization, URL: p.URL})
	}
	return pages
}
