package routing

import (
	"errors"
	"math"

	"github.com/lintang-b-s/osm-route/pkg/datastructure"
	"github.com/lintang-b-s/osm-route/pkg/geo"
)

var (
	ErrNotFound = errors.New("no vertex found")
)

// Closest returns the vertex nearest to (lon, lat). linear scan over all vertices in insertion order;
// on ties the first vertex found wins.
func Closest(g *datastructure.Graph, lon, lat float64) (int64, error) {
	var (
		nearest int64
		found   bool
	)
	minDist := math.Inf(1)

	for id := range g.Vertices() {
		v, _ := g.Vertex(id)
		dist := geo.HaversineDistance(lon, lat, v.Lon, v.Lat)
		if dist < minDist {
			minDist = dist
			nearest = id
			found = true
		}
	}

	if !found {
		return 0, ErrNotFound
	}
	return nearest, nil
}
