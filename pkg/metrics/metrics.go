// Package metrics exposes scenario execution metrics for Prometheus
// scraping. A Server owns its own registry so repeated runs in one
// process never collide with the default registry.
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/apiprobe/apiprobe/pkg/duration"
	"github.com/apiprobe/apiprobe/pkg/executor"
)

// Compile-time interface check.
var _ executor.Recorder = (*Server)(nil)

// Options configures the metrics server.
type Options struct {
	// Port for the metrics server (default: 9090).
	Port int

	// Path for the metrics endpoint (default: "/metrics").
	Path string

	// ReadTimeout for the HTTP server.
	ReadTimeout time.Duration

	// WriteTimeout for the HTTP server.
	WriteTimeout time.Duration
}

// Server records per-scenario observations and serves them over HTTP.
type Server struct {
	server   *http.Server
	registry *prometheus.Registry
	opts     Options

	requestsTotal *prometheus.CounterVec
	failuresTotal *prometheus.CounterVec
	responseTime  *prometheus.HistogramVec

	mu     sync.Mutex
	closed bool
}

// NewServer creates a metrics server and starts serving immediately.
// It runs until Close is called.
func NewServer(opts Options) (*Server, error) {
	if opts.Port == 0 {
		opts.Port = 9090
	}
	if opts.Path == "" {
		opts.Path = "/metrics"
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = duration.MetricsReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = duration.MetricsWriteTimeout
	}

	s := &Server{
		registry: prometheus.NewRegistry(),
		opts:     opts,
	}
	if err := s.initMetrics(); err != nil {
		return nil, fmt.Errorf("metrics: register collectors: %w", err)
	}
	s.startServer()
	return s, nil
}

func (s *Server) initMetrics() error {
	s.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apiprobe_requests_total",
			Help: "Total number of scenario requests executed",
		},
		[]string{"scenario", "status"},
	)

	s.failuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apiprobe_failures_total",
			Help: "Total number of scenarios whose status did not match the expectation",
		},
		[]string{"scenario"},
	)

	s.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "apiprobe_response_time_seconds",
			Help:    "Response time distribution in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"scenario"},
	)

	for _, c := range []prometheus.Collector{s.requestsTotal, s.failuresTotal, s.responseTime} {
		if err := s.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) startServer() {
	mux := http.NewServeMux()
	mux.Handle(s.opts.Path, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.opts.Port),
		Handler:      mux,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server error", "error", err)
		}
	}()
}

// ObserveRequest records one scenario execution. Status 0 means the
// request never produced a response.
func (s *Server) ObserveRequest(scenarioName string, status int, passed bool, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.requestsTotal.WithLabelValues(scenarioName, strconv.Itoa(status)).Inc()
	if !passed {
		s.failuresTotal.WithLabelValues(scenarioName).Inc()
	}
	if elapsed > 0 {
		s.responseTime.WithLabelValues(scenarioName).Observe(elapsed.Seconds())
	}
}

// Addr returns the address where metrics are served.
func (s *Server) Addr() string {
	return fmt.Sprintf("http://localhost:%d%s", s.opts.Port, s.opts.Path)
}

// Close shuts down the metrics server.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), duration.MetricsWriteTimeout)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}
