// Package metrics собирает метрики HTTP запросов для Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gonotes/internal/notes/config"
)

const namespace = "notes"

// Metrics хранит собственный реестр и коллекторы запросов.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	notes    prometheus.GaugeFunc
}

// New создает реестр. count, если не nil, экспортируется как текущее число заметок.
func New(count func() int) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of handled HTTP requests.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		m.requests,
		m.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if count != nil {
		m.notes = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stored",
			Help:      "Number of notes currently held in memory.",
		}, func() float64 { return float64(count()) })
		registry.MustRegister(m.notes)
	}

	return m
}

// Observe учитывает один завершенный запрос.
func (m *Metrics) Observe(method, route string, status int, latency time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(latency.Seconds())
}

// Registry возвращает реестр метрик.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler отдает метрики в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Server отдельный HTTP listener для метрик.
type Server struct {
	srv *http.Server
}

// NewServer создает listener метрик по конфигурации.
func NewServer(cfg *config.MetricsConfig, m *Metrics) *Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, m.Handler())

	return &Server{srv: &http.Server{
		Addr:              cfg.GetAddress(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

// Start блокируется до остановки сервера.
func (s *Server) Start() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

// Shutdown останавливает listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("metrics server shutdown: %w", err)
	}
	return nil
}
