package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/config"
	"github.com/mamadbah2/inventory/internal/lock"
	"github.com/mamadbah2/inventory/internal/repository/sheets"
	"github.com/mamadbah2/inventory/internal/scheduler"
	"github.com/mamadbah2/inventory/internal/server/handlers"
	"github.com/mamadbah2/inventory/internal/server/middleware"
	"github.com/mamadbah2/inventory/internal/server/router"
	"github.com/mamadbah2/inventory/internal/service/inventory"
	reportingsvc "github.com/mamadbah2/inventory/internal/service/reporting"
	unitsvc "github.com/mamadbah2/inventory/internal/service/units"
	"github.com/mamadbah2/inventory/internal/storage"
	"github.com/mamadbah2/inventory/pkg/clients/webhook"
	"github.com/mamadbah2/inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startupCtx, cancelStartup := context.WithTimeout(ctx, 30*time.Second)
	defer cancelStartup()

	backend, err := storage.Open(startupCtx, cfg, baseLogger.Named("repo"))
	if err != nil {
		baseLogger.Fatal("failed to open storage", zap.Error(err))
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close storage", zap.Error(err))
		}
	}()

	locker, closeLocker, err := lock.FromConfig(startupCtx, cfg.Redis, baseLogger.Named("lock"))
	if err != nil {
		baseLogger.Fatal("failed to init unit lock", zap.Error(err))
	}
	defer func() {
		if err := closeLocker(); err != nil {
			baseLogger.Error("failed to close redis client", zap.Error(err))
		}
	}()

	unitService := unitsvc.NewService(backend.Units, baseLogger.Named("svc.units"))
	inventoryService := inventory.NewService(backend.Units, backend.Stock, locker, baseLogger.Named("svc.inventory"))
	reportingService := reportingsvc.NewService(unitService, inventoryService, baseLogger.Named("svc.reporting"))

	var sinks []scheduler.Sink
	if cfg.Reporting.WebhookURL != "" {
		sinks = append(sinks, scheduler.NewWebhookSink(webhook.NewClient(cfg.Reporting.WebhookURL, 15*time.Second)))
		baseLogger.Info("report webhook enabled")
	}
	if cfg.Sheets.CredentialsPath != "" {
		exporter, err := sheets.NewReportExporter(startupCtx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		sinks = append(sinks, exporter)
		baseLogger.Info("report spreadsheet export enabled")
	} else {
		baseLogger.Warn("google sheets credentials missing, spreadsheet export disabled")
	}

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingService, sinks, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	limiter := middleware.NewLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	limiter.StartJanitor(ctx, 2*time.Minute)

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(router.Handlers{
		Units:    handlers.NewUnitHandler(unitService, inventoryService, baseLogger.Named("handlers.units")),
		Products: handlers.NewProductHandler(inventoryService, baseLogger.Named("handlers.products")),
		Reports:  handlers.NewReportHandler(reportingService, baseLogger.Named("handlers.reports")),
	}, limiter, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
