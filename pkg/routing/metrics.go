package routing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultFound   = "found"
	resultNoPath  = "no_path"
	resultAborted = "aborted"
	resultInvalid = "invalid"
)

var (
	routeSearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "osm_route_searches_total",
			Help: "Total number of shortest path searches by result",
		},
		[]string{"result"},
	)

	routeSearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "osm_route_search_duration_seconds",
			Help:    "Duration of shortest path searches in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	routeSearchIterations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "osm_route_search_iterations",
			Help:    "Number of settled vertices per shortest path search",
			Buckets: prometheus.ExponentialBuckets(16, 4, 10),
		},
	)

	GraphVertices = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "osm_route_graph_vertices",
			Help: "Number of vertices in the road network graph",
		},
	)
)
