package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos-api/internal/clock"
	"github.com/sangkips/restopos-api/internal/config"
	domainRepo "github.com/sangkips/restopos-api/internal/domain/repository"
	"github.com/sangkips/restopos-api/internal/metrics"
	"github.com/sangkips/restopos-api/internal/presentation/http/handler"
	"github.com/sangkips/restopos-api/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Order    *handler.OrderHandler
	Receipt  *handler.ReceiptHandler
	Report   *handler.ReportHandler
	Settings *handler.SettingsHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
	Clock           clock.Clock
	Log             *zap.Logger
	Metrics         *metrics.POSMetrics
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	router := gin.New()
	if err := router.SetTrustedProxies(deps.Cfg.App.TrustedProxies); err != nil {
		deps.Log.Warn("invalid trusted proxies, forwarding headers ignored", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	router.Use(middleware.IdentityMiddleware())

	if deps.RateLimiter == nil {
		deps.RateLimiter = newRateLimiter(deps.Cfg.RateLimit)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":       "ok",
			"service":      deps.Cfg.App.Name,
			"rate_limiter": deps.RateLimiter.Stats(),
		})
	})
	if deps.Cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	v1.Use(deps.RateLimiter.Middleware())
	{
		idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
			Repo:  deps.IdempotencyRepo,
			Clock: deps.Clock,
			Log:   deps.Log,
		})

		registerOrderRoutes(v1, h, idempotent)
		registerReceiptRoutes(v1, h)
		registerReportRoutes(v1, h)
		registerPrinterRoutes(v1, h)

		v1.GET("/settings", h.Settings.GetSettings)
		v1.PUT("/settings", h.Settings.UpdateSettings)
	}

	return router
}

// newRateLimiter spreads cfg.Requests over cfg.Duration seconds.
func newRateLimiter(cfg config.RateLimitConfig) *middleware.ClientRateLimiter {
	rlCfg := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rlCfg.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rlCfg.BurstSize = cfg.Requests
	}
	rlCfg.CleanupInterval = 5 * time.Minute
	rlCfg.EntryTTL = 10 * time.Minute
	return middleware.NewClientRateLimiter(rlCfg)
}

func registerOrderRoutes(v1 *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	orders := v1.Group("/orders")
	{
		orders.GET("", h.Order.List)
		// retried POSTs from a terminal replay the first response
		orders.POST("", idempotent, h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/cancel", idempotent, h.Order.Cancel)
		orders.POST("/:id/pay", idempotent, h.Order.PayDue)
	}
}

func registerReceiptRoutes(v1 *gin.RouterGroup, h *Handlers) {
	receipts := v1.Group("/receipts")
	{
		receipts.POST("/preview", h.Receipt.Preview)
		receipts.GET("/orders/:id", h.Receipt.Get)
		receipts.GET("/orders/:id/pdf", h.Receipt.PDF)
		receipts.POST("/orders/:id/print", h.Receipt.Print)
		receipts.POST("/orders/:id/kot", h.Receipt.KOT)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/sales", h.Report.Sales)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printerGroup := v1.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/print", h.Printer.Print)
	}
}
