package datastructure

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareGraph(t *testing.T) *Graph {
	g := NewGraph()
	g.AddVertex(1, 0, 0)
	g.AddVertex(2, 0, 1)
	g.AddVertex(3, 1, 1)
	g.AddVertex(4, 1, 0)

	tags := map[string]string{"highway": "residential", "name": "Square Street"}
	require.NoError(t, g.Connect(1, 2, 100, tags))
	require.NoError(t, g.Connect(2, 3, 100, tags))
	require.NoError(t, g.Connect(3, 4, 100, tags))
	require.NoError(t, g.Connect(4, 1, 100, tags))
	return g
}

func TestConnectSymmetric(t *testing.T) {
	g := squareGraph(t)

	for id := range g.Vertices() {
		neighbors, ok := g.Neighbors(id)
		require.True(t, ok)
		for _, n := range neighbors {
			back, ok := g.Neighbors(n)
			require.True(t, ok)
			assert.Contains(t, back, id)

			forward, _ := g.Edge(id, n)
			backward, _ := g.Edge(n, id)
			assert.Same(t, forward, backward)
		}
	}
	assert.Equal(t, 4, g.NumEdges())
}

func TestConnectUnknownVertex(t *testing.T) {
	g := NewGraph()
	g.AddVertex(1, 0, 0)

	err := g.Connect(1, 2, 10, map[string]string{"highway": "primary"})
	assert.ErrorIs(t, err, ErrUnknownVertex)

	err = g.Connect(3, 1, 10, map[string]string{"highway": "primary"})
	assert.ErrorIs(t, err, ErrUnknownVertex)

	neighbors, ok := g.Neighbors(1)
	assert.True(t, ok)
	assert.Empty(t, neighbors)
}

func TestConnectLastWriteWins(t *testing.T) {
	g := NewGraph()
	g.AddVertex(1, 0, 0)
	g.AddVertex(2, 0, 1)

	require.NoError(t, g.Connect(1, 2, 10, map[string]string{"highway": "primary", "name": "First", "ref": "A1"}))
	require.NoError(t, g.Connect(2, 1, 11, map[string]string{"highway": "secondary", "name": "Second"}))

	edge, ok := g.Edge(1, 2)
	require.True(t, ok)
	assert.Equal(t, int64(11), edge.WayID)
	name, named := edge.Name()
	assert.True(t, named)
	assert.Equal(t, "Second", name)
	assert.Equal(t, "secondary", edge.Tags["highway"])
	assert.Equal(t, "A1", edge.Tags["ref"])

	neighbors, _ := g.Neighbors(1)
	assert.Equal(t, []int64{2}, neighbors)
}

func TestConnectCopiesTags(t *testing.T) {
	g := NewGraph()
	g.AddVertex(1, 0, 0)
	g.AddVertex(2, 0, 1)

	tags := map[string]string{"highway": "primary", "name": "First"}
	require.NoError(t, g.Connect(1, 2, 10, tags))
	tags["name"] = "Changed"

	edge, _ := g.Edge(1, 2)
	assert.Equal(t, "First", edge.Tags["name"])
}

func TestPrune(t *testing.T) {
	g := squareGraph(t)
	g.AddVertex(5, 5, 5)
	g.AddVertex(6, 6, 6)

	removed := g.Prune()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 4, g.NumVertices())
	assert.False(t, g.HasVertex(5))
	assert.False(t, g.HasVertex(6))

	_, ok := g.Neighbors(5)
	assert.False(t, ok)

	t.Run("single vertex graph", func(t *testing.T) {
		g := NewGraph()
		g.AddVertex(1, 0, 0)
		g.Prune()
		assert.Empty(t, slices.Collect(g.Vertices()))
	})
}

func TestVerticesInsertionOrder(t *testing.T) {
	g := NewGraph()
	ids := []int64{42, 7, 1000, 3}
	for i, id := range ids {
		g.AddVertex(id, float64(i), float64(i))
	}
	g.AddVertex(7, 9, 9)

	assert.Equal(t, ids, slices.Collect(g.Vertices()))
	// restartable
	assert.Equal(t, ids, slices.Collect(g.Vertices()))
	assert.Equal(t, 9.0, g.Lon(7))

	for id := range g.Vertices() {
		if id == 7 {
			break
		}
	}
}

func TestLonLatUnknownVertexPanics(t *testing.T) {
	g := NewGraph()
	assert.Panics(t, func() { g.Lon(1) })
	assert.Panics(t, func() { g.Lat(1) })
}

func TestSetVertexName(t *testing.T) {
	g := NewGraph()
	g.AddVertex(1, 0, 0)

	assert.True(t, g.SetVertexName(1, "Oxford St"))
	assert.False(t, g.SetVertexName(2, "Nowhere"))

	v, ok := g.Vertex(1)
	require.True(t, ok)
	assert.Equal(t, "Oxford St", v.Name)
}

func TestNeighborsReturnsCopy(t *testing.T) {
	g := NewGraph()
	g.AddVertex(1, 0, 0)
	g.AddVertex(2, 0, 1)
	g.AddVertex(3, 1, 1)
	require.NoError(t, g.Connect(1, 2, 10, map[string]string{"highway": "primary"}))
	require.NoError(t, g.Connect(1, 3, 10, map[string]string{"highway": "primary"}))

	neighbors, ok := g.Neighbors(1)
	require.True(t, ok)
	neighbors[0] = 99

	again, _ := g.Neighbors(1)
	assert.Equal(t, []int64{2, 3}, again)
	assert.Equal(t, []int64{2, 3}, slices.Collect(g.NeighborSeq(1)))
	assert.Empty(t, slices.Collect(g.NeighborSeq(7)))
}
