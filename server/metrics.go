package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the collectors registered for one Server.
type metrics struct {
	requests  *prometheus.CounterVec
	searches  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	finalized prometheus.Histogram
	vertices  prometheus.Gauge
	edges     prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)

	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cspath",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cspath",
			Name:      "searches_total",
			Help:      "Searches by kind and outcome (feasible, infeasible, error).",
		}, []string{"kind", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cspath",
			Name:      "search_duration_seconds",
			Help:      "Wall time of one search.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"kind"}),
		finalized: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cspath",
			Name:      "search_labels_finalized",
			Help:      "Labels finalized per constrained search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
		vertices: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "cspath",
			Name:      "graph_vertices",
			Help:      "Vertices in the served graph.",
		}),
		edges: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "cspath",
			Name:      "graph_edges",
			Help:      "Undirected edges in the served graph.",
		}),
	}
}
