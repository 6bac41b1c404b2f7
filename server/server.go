// Package server exposes constrained path searches over one loaded graph as a
// JSON HTTP API.
//
// Routes:
//
//	POST /api/v1/paths            best path within budget (objective per request)
//	POST /api/v1/paths/frontier   every non-dominated (cost, time) within budget
//	GET  /api/v1/paths/cheapest   unconstrained shortest path on one metric
//	GET  /api/v1/graph            vertex and edge counts
//	GET  /healthz                 liveness
//	GET  /metrics                 Prometheus exposition
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/katalvlaran/cspath/core"
	"github.com/katalvlaran/cspath/csp"
	"github.com/katalvlaran/cspath/logging"
)

// Server serves searches over a graph. The graph may be mutated by its owner
// between requests; every search reads the current snapshot.
type Server struct {
	graph    *core.Graph[int64]
	log      *slog.Logger
	defaults []csp.Option
	timeout  time.Duration
	origins  []string
	registry *prometheus.Registry
	metrics  *metrics
	router   *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithSearchDefaults sets options applied before each request's own.
func WithSearchDefaults(opts ...csp.Option) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithTimeout bounds each search. Non-positive disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithCORSOrigins sets the allowed origins; "*" allows any.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

// New builds a Server for g with its own Prometheus registry.
func New(g *core.Graph[int64], opts ...Option) *Server {
	s := &Server{
		graph:    g,
		log:      logging.Discard(),
		timeout:  10 * time.Second,
		origins:  []string{"*"},
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	s.metrics = newMetrics(s.registry)
	s.metrics.vertices.Set(float64(g.VertexCount()))
	s.metrics.edges.Set(float64(g.EdgeCount()))

	s.router = mux.NewRouter()
	s.routes()

	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/paths", s.handlePath).Methods(http.MethodPost).Name("paths")
	api.HandleFunc("/paths/frontier", s.handleFrontier).Methods(http.MethodPost).Name("frontier")
	api.HandleFunc("/paths/cheapest", s.handleCheapest).Methods(http.MethodGet).Name("cheapest")
	api.HandleFunc("/graph", s.handleGraph).Methods(http.MethodGet).Name("graph")

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet).Name("healthz")
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).
		Methods(http.MethodGet).Name("metrics")

	s.router.Use(s.observe)
}

// Handler returns the CORS-wrapped router.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         600,
	})

	return c.Handler(s.router)
}

// Registry exposes the Prometheus registry, mainly for tests.
func (s *Server) Registry() *prometheus.Registry { return s.registry }
