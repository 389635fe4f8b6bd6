package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/hermes/internal/metrics"
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// SnapshotSource provides the traffic snapshot the handlers work on.
type SnapshotSource interface {
	Latest() models.TrafficSnapshot
	Interval() time.Duration
}

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server exposes route estimation, traffic insights and monitoring over HTTP.
type Server struct {
	log       *slog.Logger        // Logger for request and server events
	snapshots SnapshotSource      // snapshots is read once per request
	metrics   *metrics.Metrics    // Metrics for requests and estimations
	gatherer  prometheus.Gatherer // gatherer backs the /metrics endpoint
	db        Pinger              // db is checked by /healthz, nil when unused
	now       func() time.Time
}

// New creates a server. db may be nil when no database is configured.
func New(
	log *slog.Logger,
	snapshots SnapshotSource,
	metrics *metrics.Metrics,
	gatherer prometheus.Gatherer,
	db Pinger,
) *Server {
	return &Server{
		log:       log,
		snapshots: snapshots,
		metrics:   metrics,
		gatherer:  gatherer,
		db:        db,
		now:       time.Now,
	}
}

// Handler returns the instrumented router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/traffic/route", s.handleRoute)
	mux.HandleFunc("GET /api/traffic/status", s.handleStatus)
	mux.HandleFunc("GET /api/traffic/density", s.handleDensity)
	mux.HandleFunc("GET /api/traffic/parking", s.handleParking)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	return otelhttp.NewHandler(s.withRequestID(s.withLogging(mux)), "hermes-api")
}

// Run serves on the given port until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port int) error {
	const (
		readTimeout     = 5 * time.Second
		writeTimeout    = 10 * time.Second
		shutdownTimeout = 10 * time.Second
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.InfoContext(ctx, "Starting API server", "port", port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	s.log.InfoContext(ctx, "Shutting down API server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down api server: %w", err)
	}

	return nil
}
