package routing

import (
	"context"
	"errors"
	"time"

	"github.com/lintang-b-s/osm-route/pkg/concurrent"
	"github.com/lintang-b-s/osm-route/pkg/datastructure"
	"github.com/lintang-b-s/osm-route/pkg/geo"

	geojson "github.com/paulmach/go.geojson"
	"go.uber.org/zap"
)

// RoutingEngine answers route queries on a graph that is no longer mutated. safe for concurrent use.
type RoutingEngine struct {
	graph         *datastructure.Graph
	bounds        geo.BoundingBox
	astar         *AStar
	log           *zap.Logger
	maxIterations int
	batchWorkers  int
}

type EngineOption func(*RoutingEngine)

// WithMaxIterations bounds the number of settled vertices per search. <= 0 is unbounded.
func WithMaxIterations(maxIterations int) EngineOption {
	return func(e *RoutingEngine) {
		e.maxIterations = maxIterations
	}
}

func WithBatchWorkers(workers int) EngineOption {
	return func(e *RoutingEngine) {
		e.batchWorkers = workers
	}
}

func WithEngineLogger(log *zap.Logger) EngineOption {
	return func(e *RoutingEngine) {
		e.log = log
	}
}

func NewRoutingEngine(g *datastructure.Graph, options ...EngineOption) *RoutingEngine {
	e := &RoutingEngine{
		graph:        g,
		bounds:       g.Bounds(),
		log:          zap.NewNop(),
		batchWorkers: 4,
	}
	for _, option := range options {
		option(e)
	}
	if e.batchWorkers < 1 {
		e.batchWorkers = 1
	}
	e.astar = NewAStar(g, e.maxIterations)
	GraphVertices.Set(float64(g.NumVertices()))
	return e
}

func (e *RoutingEngine) Graph() *datastructure.Graph {
	return e.graph
}

func (e *RoutingEngine) Closest(lon, lat float64) (int64, error) {
	return Closest(e.graph, lon, lat)
}

// Route snaps both coordinates to their closest vertices and returns the shortest vertex sequence.
// empty route with nil error = no path. ErrNotFound on an empty graph, ErrSearchAborted on cancellation
// or when the iteration bound is hit.
func (e *RoutingEngine) Route(ctx context.Context, startLon, startLat, destLon, destLat float64) ([]int64, error) {
	if !e.bounds.Contains(startLat, startLon) || !e.bounds.Contains(destLat, destLon) {
		e.log.Debug("route query outside graph bounds",
			zap.Float64s("start", []float64{startLon, startLat}),
			zap.Float64s("dest", []float64{destLon, destLat}))
	}

	start, err := e.Closest(startLon, startLat)
	if err != nil {
		routeSearchesTotal.WithLabelValues(resultInvalid).Inc()
		return nil, err
	}
	goal, err := e.Closest(destLon, destLat)
	if err != nil {
		routeSearchesTotal.WithLabelValues(resultInvalid).Inc()
		return nil, err
	}

	startOffset := geo.HaversineDistance(startLon, startLat, e.graph.Lon(start), e.graph.Lat(start))

	st := time.Now()
	route, stats, err := e.astar.ShortestPath(ctx, start, goal, startOffset)
	routeSearchDuration.Observe(time.Since(st).Seconds())
	routeSearchIterations.Observe(float64(stats.Iterations))

	switch {
	case err != nil:
		routeSearchesTotal.WithLabelValues(resultAborted).Inc()
		e.log.Warn("route search aborted", zap.Int64("start", start), zap.Int64("goal", goal),
			zap.Int("iterations", stats.Iterations), zap.Error(err))
		return nil, err
	case len(route) == 0:
		routeSearchesTotal.WithLabelValues(resultNoPath).Inc()
		e.log.Debug("no path", zap.Int64("start", start), zap.Int64("goal", goal))
	default:
		routeSearchesTotal.WithLabelValues(resultFound).Inc()
	}

	e.log.Debug("route search done", zap.Int64("start", start), zap.Int64("goal", goal),
		zap.Int("iterations", stats.Iterations), zap.Int("relaxed", stats.Relaxed),
		zap.Duration("took", time.Since(st)))
	return route, nil
}

func (e *RoutingEngine) Directions(route []int64) []Step {
	return Directions(e.graph, route)
}

// RouteLength total length of route in miles.
func (e *RoutingEngine) RouteLength(route []int64) float64 {
	return PathLength(e.graph, route)
}

// RouteGeometry GeoJSON LineString of the route ([lon, lat] pairs).
func (e *RoutingEngine) RouteGeometry(route []int64) *geojson.Geometry {
	coords := make([][]float64, 0, len(route))
	for _, id := range route {
		coords = append(coords, []float64{e.graph.Lon(id), e.graph.Lat(id)})
	}
	return geojson.NewLineStringGeometry(coords)
}

type RouteQuery struct {
	StartLon float64 `json:"start_lon"`
	StartLat float64 `json:"start_lat"`
	DestLon  float64 `json:"dest_lon"`
	DestLat  float64 `json:"dest_lat"`
}

type RouteResult struct {
	Route    []int64 `json:"route"`
	Distance float64 `json:"distance_miles"`
	Err      error   `json:"-"`
}

func (r RouteResult) NoPath() bool {
	return r.Err == nil && len(r.Route) == 0
}

func (r RouteResult) Aborted() bool {
	return errors.Is(r.Err, ErrSearchAborted)
}

type batchJob struct {
	index int
	query RouteQuery
}

type batchResult struct {
	index  int
	result RouteResult
}

// RouteBatch runs the queries concurrently on the shared graph. results keep the order of queries.
func (e *RoutingEngine) RouteBatch(ctx context.Context, queries []RouteQuery) []RouteResult {
	worker := concurrent.NewBackgroundWorker(e.batchWorkers, len(queries), func(job batchJob) batchResult {
		q := job.query
		route, err := e.Route(ctx, q.StartLon, q.StartLat, q.DestLon, q.DestLat)
		res := RouteResult{Route: route, Err: err}
		if err == nil {
			res.Distance = e.RouteLength(route)
		}
		return batchResult{index: job.index, result: res}
	})
	worker.Start()

	for i, q := range queries {
		worker.TriggerProcessing(batchJob{index: i, query: q})
	}

	results := make([]RouteResult, len(queries))
	for _, done := range worker.Close() {
		results[done.index] = done.result
	}
	return results
}
