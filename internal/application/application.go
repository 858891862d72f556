package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/parceldyn/shipment-balancer/internal/api"
	"github.com/parceldyn/shipment-balancer/internal/balancer"
	"github.com/parceldyn/shipment-balancer/internal/config"
	"github.com/parceldyn/shipment-balancer/internal/metrics"
	"github.com/parceldyn/shipment-balancer/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage storage.Storage
	handler *api.Handler
	router  http.Handler
	metrics *metrics.Metrics
	logger  *zap.Logger
	server  *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store := storage.NewMemoryStorage()
	if err := store.SetContainerCount(cfg.DefaultContainers); err != nil {
		return nil, fmt.Errorf("failed to apply default container count: %w", err)
	}

	m := metrics.New()
	handler := api.NewHandler(balancer.New(), balancer.NewGreedy(), store,
		api.WithMetrics(m),
		api.WithMaxWeights(cfg.MaxWeightsPerRequest),
	)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	rootHandler := BuildRootHandler(apiRouter, m)
	server := NewServer(cfg, rootHandler)

	return &App{
		storage: store,
		handler: handler,
		router:  apiRouter,
		metrics: m,
		logger:  logger,
		server:  server,
	}, nil
}

// BuildRootHandler constructs the root HTTP handler that routes API requests
// and serves the Prometheus exposition endpoint.
func BuildRootHandler(apiHandler http.Handler, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("GET /metrics", m.Handler())
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
