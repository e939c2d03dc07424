package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kuriftu/essence/internal/api"
	"github.com/kuriftu/essence/internal/api/middleware"
	"github.com/kuriftu/essence/internal/catalog"
	"github.com/kuriftu/essence/internal/checkin"
	"github.com/kuriftu/essence/internal/config"
	"github.com/kuriftu/essence/internal/events"
	"github.com/kuriftu/essence/internal/jobs"
	"github.com/kuriftu/essence/internal/ledger"
	"github.com/kuriftu/essence/internal/logging"
	"github.com/kuriftu/essence/internal/loyalty"
	"github.com/kuriftu/essence/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	slog.Info("essence server starting",
		"port", cfg.Port,
		"dbPath", cfg.DBPath,
		"tiersFile", cfg.TiersFile,
		"seedPoints", cfg.SeedPoints,
		"maxActiveCheckIns", cfg.MaxActiveCheckIns,
	)

	// Open database and run migrations.
	db, err := store.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Check-ins cannot survive a restart: their timers lived in the old process.
	if _, err := db.ExpireOpenCheckIns(); err != nil {
		slog.Error("failed to expire stale check-ins", "error", err)
		os.Exit(1)
	}

	tiers, err := loyalty.LoadOrCreateTiers(cfg.TiersFile)
	if err != nil {
		slog.Error("failed to load tiers", "error", err)
		os.Exit(1)
	}
	slog.Info("tiers loaded", "count", len(tiers), "file", cfg.TiersFile)

	calculator := loyalty.NewCalculator(tiers)
	cat := catalog.Default()
	svc := ledger.NewService(db, calculator, cat, cfg.SeedPoints)

	if cfg.SeedDemo {
		if _, err := svc.SeedDemo(config.DemoMemberID); err != nil {
			slog.Error("failed to seed demo member", "error", err)
			os.Exit(1)
		}
	}

	checkins := checkin.NewManager(db, svc, cat, cfg)

	hub := events.NewHub()
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	go hub.Run(hubCtx)
	svc.SetEvents(hub)
	checkins.SetEvents(hub)

	scheduler := jobs.NewScheduler(db, hub, cfg.LogDir)
	if err := scheduler.Start(); err != nil {
		slog.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	deps := &api.Dependencies{
		DB:         db,
		Calculator: calculator,
		Catalog:    cat,
		Ledger:     svc,
		CheckIns:   checkins,
		Events:     hub,
		Allowlist:  middleware.NewIPAllowlist(cfg.AdminAllowIPs),
		Limiter:    middleware.NewRateLimiter(cfg.RateLimitRPS, config.RateLimitBurst),
		Config:     cfg,
	}
	router := api.NewRouter(deps)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
	}

	// Graceful shutdown.
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sig := <-done
	slog.Info("shutdown signal received", "signal", sig)

	// Stop check-ins first (cancel all sessions, wait for goroutines).
	checkins.Stop()

	// Close event streams so Shutdown does not wait on them.
	hubCancel()
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("essence server stopped")
}
