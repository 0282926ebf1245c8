package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"

	"payment/internal/app"
	"payment/internal/auth"
	"payment/internal/config"
	"payment/internal/handler"
	"payment/internal/logger"
	"payment/internal/metrics"
	internalRedis "payment/internal/redis"
	"payment/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()
	gin.SetMode(cfg.Server.GinMode)

	zl, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.Log.Development,
	})
	if err != nil {
		zl = logger.Default()
		zl.Warn("Invalid log configuration, using defaults", zap.Error(err))
	}
	defer zl.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the store and Redis can be instrumented.
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			zl.Warn("Failed to initialize New Relic", zap.Error(err))
		} else {
			zl.Info("New Relic enabled", zap.String("app", cfg.NewRelic.AppName))
		}
	}

	paymentRepo, closeStore, err := app.NewPaymentRepository(ctx, cfg, nrApp)
	if err != nil {
		zl.Fatal("Failed to initialize payment store", zap.Error(err))
	}
	defer closeStore()
	zl.Info("Payment store ready", zap.String("driver", cfg.Store.Driver))

	// Redis is optional: without it payment.created events are not published.
	var publisher service.EventPublisher
	if cfg.Redis.Enabled() {
		redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			zl.Warn("Cannot connect to Redis, payment events will not be published", zap.Error(err))
		} else {
			defer redisClient.Close()
			publisher = internalRedis.NewPaymentPublisher(redisClient, cfg.Redis.Channel)
			zl.Info("Connected to Redis", zap.String("channel", cfg.Redis.Channel))
		}
	}

	extractor := auth.NewExtractor(auth.Config{
		Secret:          cfg.Auth.JWTSecret,
		VerifySignature: cfg.Auth.VerifySignature,
	})
	if !extractor.VerifiesSignature() {
		zl.Warn("JWT signature verification is disabled; any well-formed token is accepted")
	}

	paymentService := service.NewPaymentService(paymentRepo, publisher, zl)
	server := wireServer(cfg, paymentService, extractor, nrApp, zl)

	// Start server in goroutine.
	go func() {
		zl.Info("Starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("Server error", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("Server forced to shutdown", zap.Error(err))
	}
	paymentService.Close()

	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	zl.Info("Server exited")
}

// wireServer wires the HTTP layer and returns the server.
func wireServer(cfg *config.Config, paymentService *service.PaymentService, extractor *auth.Extractor, nrApp *newrelic.Application, zl *zap.Logger) *http.Server {
	router := app.NewRouter(app.RouterDeps{
		PaymentHandler: handler.NewPaymentHandler(paymentService),
		HealthHandler:  handler.NewHealthHandler(cfg.Server.ServiceName),
		Extractor:      extractor,
		Metrics:        metrics.New(),
		Logger:         zl,
		NewRelicApp:    nrApp,
	})

	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
