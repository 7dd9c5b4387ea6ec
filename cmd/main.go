package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"myinventory/api"
	"myinventory/handlers"
	"myinventory/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting MyInventory service")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"inventory_source", config.Source,
		"window_size", config.WindowSize,
		"cache_capacity", config.CacheCapacity,
		"cache_ttl", config.CacheTTL,
		"validation_timeout", config.ValidationTimeout,
		"lock_striping", config.LockStriping,
		"tls", config.TLSCertFile != "",
	)

	if err := handlers.CheckLimits(config.WindowSize); err != nil {
		level.Error(logger).Log("msg", "WINDOW_SIZE does not fit the page limits", "err", err)
		os.Exit(1)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := service.NewMetrics(registry)

	// Inventory source
	source, closeSource, err := newInventorySource(context.Background(), config, logger)
	if err != nil {
		level.Error(logger).Log("msg", "Failed to create inventory source", "err", err)
		os.Exit(1)
	}
	defer closeSource()

	// Create core services
	var httpServer handlers.ServerInterface
	{
		clock := service.NewTimeProvider(func() time.Time { return time.Now().UTC() })
		store := service.NewRegionStore(source, clock, config.CacheCapacity, metrics, logger)
		validator := service.NewFreshnessValidator(store, source, clock, service.ValidatorConfig{
			TTL:            config.CacheTTL,
			Timeout:        config.ValidationTimeout,
			StripeByRegion: config.LockStriping,
		}, metrics, logger)
		pages := service.NewPageService(store, validator, config.WindowSize, metrics, logger)
		httpServer = handlers.NewHTTPServer(pages, source, logger)

		if len(config.PrewarmRegions) > 0 {
			level.Info(logger).Log("msg", "Warming regions", "regions", strings.Join(config.PrewarmRegions, ","))
			warmer := service.NewRegionWarmer(validator, config.PrewarmRegions, config.PrewarmInterval, logger)
			defer warmer.Close()
		}
	}

	requestValidator, err := handlers.NewRequestValidator(api.Spec)
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load OpenAPI document", "err", err)
		os.Exit(1)
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterHandlers(e, httpServer, requestValidator)
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		var err error
		if config.TLSCertFile != "" {
			err = e.StartTLS(addr, config.TLSCertFile, config.TLSKeyFile)
		} else {
			err = e.Start(addr)
		}
		if err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
			quit <- syscall.SIGTERM
		}
	}()

	// Wait for interrupt signal
	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}

	level.Info(logger).Log("msg", "Server stopped")
}
