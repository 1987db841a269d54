package osmgraph

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodeEvents(id int64, lon, lat float64, tags ...string) []Event {
	events := []Event{NodeStartEvent(id, lon, lat)}
	for i := 0; i+1 < len(tags); i += 2 {
		events = append(events, NodeTagEvent(tags[i], tags[i+1]))
	}
	return append(events, NodeEndEvent())
}

func wayEvents(id int64, refs []int64, tags ...string) []Event {
	events := []Event{WayStartEvent(id)}
	for _, ref := range refs {
		events = append(events, WayNodeRefEvent(ref))
	}
	for i := 0; i+1 < len(tags); i += 2 {
		events = append(events, WayTagEvent(tags[i], tags[i+1]))
	}
	return append(events, WayEndEvent())
}

func concat(parts ...[]Event) []Event {
	events := []Event{}
	for _, p := range parts {
		events = append(events, p...)
	}
	return events
}

func TestBuildSquare(t *testing.T) {
	events := concat(
		nodeEvents(1, 0, 0),
		nodeEvents(2, 0, 1),
		nodeEvents(3, 1, 1),
		nodeEvents(4, 1, 0),
		wayEvents(10, []int64{1, 2, 3, 4, 1}, "highway", "residential", "name", "Square Street"),
	)

	g, err := Build(events)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, slices.Collect(g.Vertices()))

	for id := range g.Vertices() {
		neighbors, ok := g.Neighbors(id)
		require.True(t, ok)
		assert.Len(t, neighbors, 2)
		for _, n := range neighbors {
			back, _ := g.Neighbors(n)
			assert.Contains(t, back, id)
			edge, ok := g.Edge(id, n)
			require.True(t, ok)
			assert.Equal(t, int64(10), edge.WayID)
			name, _ := edge.Name()
			assert.Equal(t, "Square Street", name)
		}
	}

	_, diagonal := g.Edge(1, 3)
	assert.False(t, diagonal)
}

func TestBuildFiltering(t *testing.T) {
	tests := []struct {
		name string
		tags []string
	}{
		{name: "service road", tags: []string{"highway", "service", "name", "Alley"}},
		{name: "footway", tags: []string{"highway", "footway"}},
		{name: "no highway tag", tags: []string{"name", "Railway", "railway", "rail"}},
		{name: "no tags", tags: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := concat(
				nodeEvents(1, 0, 0),
				nodeEvents(2, 0, 1),
				wayEvents(10, []int64{1, 2}, tt.tags...),
			)
			g, err := Build(events)
			require.NoError(t, err)
			_, ok := g.Edge(1, 2)
			assert.False(t, ok)
			assert.Equal(t, 0, g.NumVertices())
		})
	}

	t.Run("link roads are allowed", func(t *testing.T) {
		for _, highway := range []string{"motorway_link", "trunk_link", "primary_link", "secondary_link", "tertiary_link", "living_street"} {
			events := concat(
				nodeEvents(1, 0, 0),
				nodeEvents(2, 0, 1),
				wayEvents(10, []int64{1, 2}, "highway", highway),
			)
			g, err := Build(events)
			require.NoError(t, err)
			_, ok := g.Edge(1, 2)
			assert.True(t, ok, highway)
		}
	})

	t.Run("custom allow-list", func(t *testing.T) {
		events := concat(
			nodeEvents(1, 0, 0),
			nodeEvents(2, 0, 1),
			nodeEvents(3, 0, 2),
			wayEvents(10, []int64{1, 2}, "highway", "service"),
			wayEvents(11, []int64{2, 3}, "highway", "primary"),
		)
		g, err := Build(events, WithHighwayConfig(NewHighwayConfig([]string{"service"})))
		require.NoError(t, err)
		_, ok := g.Edge(1, 2)
		assert.True(t, ok)
		_, ok = g.Edge(2, 3)
		assert.False(t, ok)
		assert.False(t, g.HasVertex(3))
	})
}

func TestBuildPrune(t *testing.T) {
	events := concat(
		nodeEvents(1, 0, 0),
		nodeEvents(2, 0, 1),
		nodeEvents(3, 5, 5, "name", "Lonely Tree"),
		wayEvents(10, []int64{1, 2}, "highway", "primary"),
	)

	b := NewBuilder()
	require.NoError(t, Replay(events, b))
	g, err := b.Finish()
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, slices.Collect(g.Vertices()))
	assert.False(t, g.HasVertex(3))

	locations := b.Locations()
	require.Len(t, locations, 1)
	assert.Equal(t, int64(3), locations[0].ID)
	assert.Equal(t, "Lonely Tree", locations[0].Name)
}

func TestBuildSingleVertex(t *testing.T) {
	g, err := Build(nodeEvents(1, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, slices.Collect(g.Vertices()))
}

func TestBuildUnknownNodeReference(t *testing.T) {
	events := concat(
		nodeEvents(1, 0, 0),
		nodeEvents(2, 0, 1),
		nodeEvents(4, 0, 3),
		wayEvents(10, []int64{1, 2, 3, 4}, "highway", "primary"),
	)

	t.Run("skip edge", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, Replay(events, b))
		g, err := b.Finish()
		require.NoError(t, err)

		_, ok := g.Edge(1, 2)
		assert.True(t, ok)
		assert.False(t, g.HasVertex(4))

		buildErrs := b.Errors()
		require.Len(t, buildErrs, 2)
		for _, buildErr := range buildErrs {
			assert.Equal(t, int64(10), buildErr.WayID)
			assert.Equal(t, int64(3), buildErr.NodeID)
			assert.ErrorIs(t, buildErr, ErrUnknownNode)
		}
		assert.ErrorIs(t, b.Err(), ErrUnknownNode)
	})

	t.Run("strict mode", func(t *testing.T) {
		_, err := Build(events, WithStrictMode(true))
		require.Error(t, err)

		var buildErr *BuildError
		require.True(t, errors.As(err, &buildErr))
		assert.Equal(t, int64(10), buildErr.WayID)
		assert.Equal(t, int64(3), buildErr.NodeID)
	})
}

func TestBuildLastWayWins(t *testing.T) {
	events := concat(
		nodeEvents(1, 0, 0),
		nodeEvents(2, 0, 1),
		wayEvents(10, []int64{1, 2}, "highway", "primary", "name", "Old Road"),
		wayEvents(11, []int64{2, 1}, "highway", "secondary", "name", "New Road"),
	)
	g, err := Build(events)
	require.NoError(t, err)

	forward, _ := g.Edge(1, 2)
	backward, _ := g.Edge(2, 1)
	assert.Same(t, forward, backward)
	assert.Equal(t, int64(11), forward.WayID)
	name, _ := forward.Name()
	assert.Equal(t, "New Road", name)
}

func TestBuildDuplicateWayStart(t *testing.T) {
	events := concat(
		nodeEvents(1, 0, 0),
		nodeEvents(2, 0, 1),
		nodeEvents(3, 0, 2),
		wayEvents(10, []int64{1, 2}, "highway", "primary"),
		wayEvents(10, []int64{3}),
	)
	g, err := Build(events)
	require.NoError(t, err)

	_, ok := g.Edge(1, 2)
	assert.True(t, ok)
	_, ok = g.Edge(2, 3)
	assert.True(t, ok)
}

func TestBuildNodeName(t *testing.T) {
	events := concat(
		nodeEvents(1, 0, 0, "name", "Top Dog", "amenity", "restaurant"),
		nodeEvents(2, 0, 1),
		wayEvents(10, []int64{1, 2}, "highway", "primary"),
	)
	g, err := Build(events)
	require.NoError(t, err)

	v, ok := g.Vertex(1)
	require.True(t, ok)
	assert.Equal(t, "Top Dog", v.Name)
}

func TestBuilderStateMachine(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
	}{
		{name: "node tag while idle", events: []Event{NodeTagEvent("name", "x")}},
		{name: "way tag while idle", events: []Event{WayTagEvent("highway", "primary")}},
		{name: "way node ref while idle", events: []Event{WayNodeRefEvent(1)}},
		{name: "way tag inside node", events: []Event{NodeStartEvent(1, 0, 0), WayTagEvent("highway", "primary")}},
		{name: "node start inside way", events: []Event{WayStartEvent(1), NodeStartEvent(1, 0, 0)}},
		{name: "node end while idle", events: []Event{NodeEndEvent()}},
		{name: "way end inside node", events: []Event{NodeStartEvent(1, 0, 0), WayEndEvent()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Replay(tt.events, NewBuilder())
			assert.ErrorIs(t, err, ErrUnexpectedEvent)
		})
	}

	t.Run("finish inside way", func(t *testing.T) {
		b := NewBuilder()
		require.NoError(t, b.WayStart(1))
		_, err := b.Finish()
		assert.ErrorIs(t, err, ErrUnexpectedEvent)
	})

	t.Run("events after finish", func(t *testing.T) {
		b := NewBuilder()
		_, err := b.Finish()
		require.NoError(t, err)
		assert.ErrorIs(t, b.NodeStart(1, 0, 0), ErrUnexpectedEvent)
		_, err = b.Finish()
		assert.ErrorIs(t, err, ErrBuildFinished)
	})
}

func TestHighwayConfigTypes(t *testing.T) {
	cfg := NewHighwayConfig([]string{"tertiary", "primary"})
	assert.Equal(t, []string{"primary", "tertiary"}, cfg.Types())
	assert.True(t, cfg.CheckTag("primary"))
	assert.False(t, cfg.CheckTag("service"))
}

func TestBuilderDirectCallsAfterFinish(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddVertex(1, 0, 0))
	require.NoError(t, b.AddVertex(2, 0, 1))
	require.NoError(t, b.BeginWay(10))
	require.NoError(t, b.AddWayNodeRef(10, 1))
	require.NoError(t, b.AddWayNodeRef(10, 2))
	require.NoError(t, b.SetWayTag(10, "highway", "primary"))
	require.NoError(t, b.EndWay(10))
	_, err := b.Finish()
	require.NoError(t, err)

	assert.ErrorIs(t, b.AddVertex(3, 1, 1), ErrBuildFinished)
	assert.ErrorIs(t, b.SetVertexName(1, "Late"), ErrBuildFinished)
	assert.ErrorIs(t, b.BeginWay(11), ErrBuildFinished)
	assert.ErrorIs(t, b.AddWayNodeRef(10, 1), ErrBuildFinished)
	assert.ErrorIs(t, b.SetWayTag(10, "name", "Late"), ErrBuildFinished)
	assert.ErrorIs(t, b.EndWay(10), ErrBuildFinished)
	assert.ErrorIs(t, b.WayStart(11), ErrUnexpectedEvent)

	_, err = b.Finish()
	assert.ErrorIs(t, err, ErrBuildFinished)
}

func TestBuildRedeclaredNodeDropsLocation(t *testing.T) {
	events := concat(
		nodeEvents(1, 0, 0, "name", "Old"),
		nodeEvents(2, 0, 1, "name", "Kept"),
		nodeEvents(1, 3, 4),
		nodeEvents(3, 5, 6, "name", "Renamed"),
		nodeEvents(3, 7, 8, "name", "Fresh"),
	)

	b := NewBuilder()
	require.NoError(t, Replay(events, b))

	v, ok := b.graph.Vertex(1)
	require.True(t, ok)
	assert.Empty(t, v.Name)

	locations := b.Locations()
	require.Len(t, locations, 2)
	assert.Equal(t, int64(2), locations[0].ID)
	assert.Equal(t, "Kept", locations[0].Name)
	assert.Equal(t, int64(3), locations[1].ID)
	assert.Equal(t, "Fresh", locations[1].Name)
	assert.Equal(t, 8.0, locations[1].Lat)
	assert.Equal(t, 7.0, locations[1].Lon)
}
