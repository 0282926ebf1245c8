package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"

	"payment/internal/handler"
	"payment/internal/metrics"
	"payment/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	PaymentHandler *handler.PaymentHandler
	HealthHandler  *handler.HealthHandler
	Extractor      middleware.ClaimExtractor
	Metrics        *metrics.Metrics
	Logger         *zap.Logger
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RequestMetrics(deps.Metrics))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
		router.Use(middleware.NewRelicAttributes())
	}

	// Platform routes.
	router.GET("/health", deps.HealthHandler.Health)
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	requireAuth := middleware.AuthMiddleware(deps.Extractor, logger)

	// Payment routes. Creation attempts are counted before authentication
	// so that rejected requests show up in payment_service_payments_total.
	payments := router.Group("/payments")
	{
		payments.POST("", middleware.CountAttempt(deps.Metrics.PaymentsTotal), requireAuth, deps.PaymentHandler.CreatePayment)
		payments.GET("", requireAuth, deps.PaymentHandler.ListPayments)
	}

	return router
}
