package routing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/lintang-b-s/osm-route/pkg/datastructure"
	"github.com/lintang-b-s/osm-route/pkg/geo"
)

const (
	// goalTolerance miles. a popped vertex this close to the goal vertex ends the search.
	goalTolerance = 1e-6

	ctxCheckInterval = 1024
)

var (
	ErrSearchAborted = errors.New("route search aborted")
)

// SearchStats counters of a single search.
type SearchStats struct {
	Iterations int
	Relaxed    int
}

// AStar shortest path search over an immutable graph. safe for concurrent use.
type AStar struct {
	graph         *datastructure.Graph
	maxIterations int
}

// NewAStar maxIterations <= 0 means unbounded.
func NewAStar(g *datastructure.Graph, maxIterations int) *AStar {
	return &AStar{
		graph:         g,
		maxIterations: maxIterations,
	}
}

// ShortestPath returns the vertex sequence from start to goal, both inclusive.
// startOffset is the initial cost of start (distance from the query coordinate to the snapped start vertex).
// an empty path with nil error means goal is unreachable.
func (as *AStar) ShortestPath(ctx context.Context, start, goal int64, startOffset float64) ([]int64, SearchStats, error) {
	stats := SearchStats{}
	g := as.graph

	goalLon, goalLat := g.Lon(goal), g.Lat(goal)
	heuristic := func(id int64) float64 {
		v, _ := g.Vertex(id)
		return geo.HaversineDistance(v.Lon, v.Lat, goalLon, goalLat)
	}

	gScore := map[int64]float64{start: startOffset}
	cameFrom := make(map[int64]int64)

	pq := datastructure.NewMinPriorityQueue[int64, float64]()
	pq.Upsert(start, startOffset+heuristic(start))

	for pq.Len() > 0 {
		if as.maxIterations > 0 && stats.Iterations >= as.maxIterations {
			return []int64{}, stats, fmt.Errorf("%w: iteration limit %d reached", ErrSearchAborted, as.maxIterations)
		}
		if stats.Iterations%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return []int64{}, stats, fmt.Errorf("%w: %w", ErrSearchAborted, err)
			}
		}
		stats.Iterations++

		current := pq.PopMin().GetItem()
		currentVertex, _ := g.Vertex(current)

		if geo.HaversineDistance(currentVertex.Lon, currentVertex.Lat, goalLon, goalLat) <= goalTolerance {
			return backtrack(current, cameFrom), stats, nil
		}

		for neighbor := range g.NeighborSeq(current) {
			neighborVertex, _ := g.Vertex(neighbor)
			tentative := gScore[current] + geo.HaversineDistance(currentVertex.Lon, currentVertex.Lat,
				neighborVertex.Lon, neighborVertex.Lat)

			best, ok := gScore[neighbor]
			if !ok {
				best = math.Inf(1)
			}
			if tentative < best {
				stats.Relaxed++
				gScore[neighbor] = tentative
				cameFrom[neighbor] = current
				pq.Upsert(neighbor, tentative+heuristic(neighbor))
			}
		}
	}

	return []int64{}, stats, nil
}

func backtrack(current int64, cameFrom map[int64]int64) []int64 {
	path := []int64{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	slices.Reverse(path)
	return path
}

// PathLength total great-circle length in miles of a vertex sequence.
func PathLength(g *datastructure.Graph, path []int64) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += g.Distance(path[i-1], path[i])
	}
	return total
}
