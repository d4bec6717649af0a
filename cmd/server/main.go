package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"gopet/internal/config"
	"gopet/internal/handlers"
	"gopet/internal/observability"
	"gopet/internal/services"
	"gopet/pkg/logger"
	"gopet/pkg/websocket"
	"gopet/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:   logger.LogLevel(cfg.App.LogLevel),
		Format:  cfg.App.LogFormat,
		Output:  "stdout",
		Caller:  cfg.App.Debug,
		AppName: cfg.App.Name,
		Version: cfg.App.Version,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("Server stopped with error")
	}
	log.Info("Server stopped")
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	backends, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backends.close(log)

	deps := services.Dependencies{
		Metrics:  metrics,
		Logger:   log,
		CacheTTL: cfg.App.SnapshotTTL,
	}
	if backends.cache != nil {
		deps.Cache = backends.cache
	}

	hub := websocket.NewHub(log)
	feed := services.NewLiveFeed(hub)

	store := services.NewDataStore(backends.drivers, deps)
	store.AddNotifier(feed)
	driverService := services.NewDriverService(backends.drivers, deps, store, feed)
	simulator := services.NewLifecycleSimulator(store, cfg.Lifecycle.StepInterval, deps)

	wsHandler := websocket.NewHandler(hub, websocket.Options{
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		PingInterval:    cfg.WebSocket.PingInterval,
		PongTimeout:     cfg.WebSocket.PongTimeout,
		MaxMessageSize:  cfg.WebSocket.MaxMessageSize,
		AllowedOrigins:  cfg.WebSocket.AllowedOrigins,
	})

	if config.IsProduction() || !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.SetupRouter(routes.Dependencies{
		Logger:         log,
		Metrics:        metrics,
		Gatherer:       registry,
		AllowedOrigins: cfg.Security.CORSAllowedOrigins,
		Dashboard:      handlers.NewDashboardHandler(store, log),
		Drivers:        handlers.NewDriverHandler(driverService, log),
		Rides:          handlers.NewRideHandler(store, simulator, log),
		Support:        handlers.NewSupportHandler(store, log),
		Uploads:        handlers.NewUploadHandler(backends.storage, cfg.Security.MaxUploadBytes, log),
		WebSocket:      handlers.NewWebSocketHandler(wsHandler, store, log),
		Health:         handlers.NewHealthHandler(backends.healthChecks()),
	})
	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		return fmt.Errorf("invalid trusted proxies: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		log.WithFields(map[string]interface{}{
			"address":        server.Addr,
			"driver_storage": cfg.App.DriverStorage,
			"storage":        cfg.Storage.Provider,
			"redis":          cfg.Redis.Enabled,
		}).Info("Starting HTTP server")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownGrace)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if simErr := simulator.Shutdown(shutdownCtx); simErr != nil {
			log.WithError(simErr).Warn("Lifecycle simulator did not stop in time")
		}
		return err
	})

	return g.Wait()
}
