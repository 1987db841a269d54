package routing

import (
	"testing"

	"github.com/lintang-b-s/osm-route/pkg/datastructure"
	"github.com/stretchr/testify/require"
)

type testVertex struct {
	id       int64
	lon, lat float64
}

type testEdge struct {
	from, to int64
	wayID    int64
	name     string
}

func newTestGraph(t *testing.T, vertices []testVertex, edges []testEdge) *datastructure.Graph {
	t.Helper()
	g := datastructure.NewGraph()
	for _, v := range vertices {
		g.AddVertex(v.id, v.lon, v.lat)
	}
	for _, e := range edges {
		tags := map[string]string{"highway": "residential"}
		if e.name != "" {
			tags["name"] = e.name
		}
		require.NoError(t, g.Connect(e.from, e.to, e.wayID, tags))
	}
	g.Prune()
	return g
}

// squareGraph vertices at the corners of a 1 degree square, edges along the sides only.
func squareGraph(t *testing.T) *datastructure.Graph {
	return newTestGraph(t,
		[]testVertex{{1, 0, 0}, {2, 0, 1}, {3, 1, 1}, {4, 1, 0}},
		[]testEdge{{1, 2, 10, "Square Street"}, {2, 3, 10, "Square Street"}, {3, 4, 10, "Square Street"}, {4, 1, 10, "Square Street"}},
	)
}

func twoTrianglesGraph(t *testing.T) *datastructure.Graph {
	return newTestGraph(t,
		[]testVertex{
			{1, 0, 0}, {2, 0, 0.1}, {3, 0.1, 0},
			{11, 5, 5}, {12, 5, 5.1}, {13, 5.1, 5},
		},
		[]testEdge{
			{1, 2, 10, "A"}, {2, 3, 10, "A"}, {3, 1, 10, "A"},
			{11, 12, 20, "B"}, {12, 13, 20, "B"}, {13, 11, 20, "B"},
		},
	)
}
