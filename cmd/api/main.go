package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos-api/internal/application/service"
	"github.com/sangkips/restopos-api/internal/clock"
	"github.com/sangkips/restopos-api/internal/config"
	domainRepo "github.com/sangkips/restopos-api/internal/domain/repository"
	"github.com/sangkips/restopos-api/internal/infrastructure/database"
	"github.com/sangkips/restopos-api/internal/infrastructure/repository"
	"github.com/sangkips/restopos-api/internal/logger"
	"github.com/sangkips/restopos-api/internal/metrics"
	"github.com/sangkips/restopos-api/internal/presentation/http/handler"
	"github.com/sangkips/restopos-api/internal/presentation/http/routes"
	"github.com/sangkips/restopos-api/pkg/printer"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(&cfg.Database, zlog, cfg.App.Debug)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db, zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	posMetrics := metrics.New(cfg.App.Name, cfg.App.Env)
	clk := clock.NewSystem()

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Thermal printer
	thermalPrinter, err := printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		zlog.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}

	// Services
	settingsService, err := service.NewSettingsService(settingsRepo, cfg.Locale, zlog, posMetrics)
	if err != nil {
		zlog.Fatal("invalid locale configuration", zap.Error(err))
	}
	orderService := service.NewOrderService(orderRepo, settingsService, clk, cfg.Restaurant, zlog, posMetrics)
	receiptService := service.NewReceiptService(orderRepo, settingsService, thermalPrinter, cfg.Printer, cfg.Restaurant, cfg.Locale.Currency, zlog, posMetrics)
	reportService := service.NewReportService(orderRepo, settingsService, clk)

	handlers := &routes.Handlers{
		Order:    handler.NewOrderHandler(orderService),
		Receipt:  handler.NewReceiptHandler(receiptService),
		Report:   handler.NewReportHandler(reportService),
		Settings: handler.NewSettingsHandler(settingsService),
		Printer:  handler.NewPrinterHandler(receiptService),
	}

	deps := &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Clock:           clk,
		Log:             zlog,
		Metrics:         posMetrics,
	}
	router := routes.Setup(handlers, deps)
	defer deps.RateLimiter.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go purgeIdempotencyKeys(ctx, idempotencyRepo, clk, zlog)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server starting",
			zap.String("service", cfg.App.Name),
			zap.String("env", cfg.App.Env),
			zap.String("port", port),
			zap.String("default_timezone", settingsService.DefaultTimezone().Name()),
			zap.String("printer", thermalPrinter.Kind()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}

// purgeIdempotencyKeys drops expired keys once an hour until ctx ends.
func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, clk clock.Clock, log *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx, clk.Now())
			if err != nil {
				log.Warn("idempotency purge failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("idempotency keys purged", zap.Int64("count", n))
			}
		}
	}
}
