package app

import (
	"context"
	"fmt"
	"invoices/internal/platform/db"
	httpserver "invoices/internal/platform/http"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"invoices/internal/adapters/cache"
	"invoices/internal/adapters/httpclient"
	"invoices/internal/adapters/postgres"
	"invoices/internal/api"
	"invoices/internal/config"
	"invoices/internal/invoice"
	"invoices/internal/invoice/handler"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and the health monitor
func Run(configPath string) error {
	appCfg, err := config.Init(configPath)
	if err != nil {
		return err
	}
	configureLogger(appCfg.Logging)
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if appCfg.HealthCheck.IntervalSeconds > 0 {
		monitor := db.NewHealthMonitor(pool, time.Duration(appCfg.HealthCheck.IntervalSeconds)*time.Second)
		// Ensure monitor stops before DB pool closes
		defer func() {
			if shutDownErr := monitor.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Health monitor shutdown error: %v", shutDownErr)
			}
		}()
		if startErr := monitor.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start health monitor")
			return startErr
		}
		logrus.Info("✅ Health monitor activation successful")
	}

	// Shared HTTP client for outbound calls
	baseHTTPClient := &http.Client{Timeout: appCfg.HTTPClient.Timeout()}
	rateClient := httpclient.NewExchangeRateClient(
		baseHTTPClient,
		strings.TrimSuffix(appCfg.ExchangeRateAPI.BaseURL, "/"),
		appCfg.ExchangeRateAPI.APIKey,
	)

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	manager := invoice.NewManager(invoiceRepo, rateClient)

	idempotencyCache, err := cache.NewIdempotencyCache(appCfg.Idempotency.MaxItems)
	if err != nil {
		return err
	}
	defer idempotencyCache.Close()

	// Handlers and router
	invoiceHandler := handler.NewInvoiceHandler(manager)
	router, err := api.NewRouter(invoiceHandler, api.RouterOptions{
		RateLimit:      appCfg.RateLimit.Rate,
		Idempotency:    idempotencyCache,
		IdempotencyTTL: appCfg.Idempotency.TTL(),
	})
	if err != nil {
		return err
	}

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

func configureLogger(cfg config.Logging) {
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(cfg.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// Version is overridden at build time with -ldflags.
var Version = "dev"

func VersionString() string {
	return fmt.Sprintf("invoices %s", Version)
}
