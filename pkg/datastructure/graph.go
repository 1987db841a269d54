package datastructure

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/lintang-b-s/osm-route/pkg/geo"
)

var (
	ErrUnknownVertex = errors.New("vertex not exists")
)

// EdgeInfo metadata of an undirected road segment. the same pointer is stored in both directions.
type EdgeInfo struct {
	WayID int64
	Tags  map[string]string
}

func newEdgeInfo(wayID int64, tags map[string]string) *EdgeInfo {
	return &EdgeInfo{
		WayID: wayID,
		Tags:  maps.Clone(tags),
	}
}

// merge later way wins on every key it carries; keys only present in earlier ways are kept.
func (e *EdgeInfo) merge(wayID int64, tags map[string]string) {
	e.WayID = wayID
	if e.Tags == nil {
		e.Tags = make(map[string]string, len(tags))
	}
	maps.Copy(e.Tags, tags)
}

// Name returns the road name tag and whether the road is named.
func (e *EdgeInfo) Name() (string, bool) {
	name, ok := e.Tags["name"]
	return name, ok
}

// Vertex road intersection / endpoint.
type Vertex struct {
	ID   int64
	Lon  float64
	Lat  float64
	Name string

	adjacency map[int64]*EdgeInfo
	// neighbor ids in connect order, keeps search deterministic.
	neighborOrder []int64
}

func newVertex(id int64, lon, lat float64) *Vertex {
	return &Vertex{
		ID:        id,
		Lon:       lon,
		Lat:       lat,
		adjacency: make(map[int64]*EdgeInfo),
	}
}

func (v *Vertex) Degree() int {
	return len(v.neighborOrder)
}

func (v *Vertex) connectTo(to int64, edge *EdgeInfo) {
	if _, ok := v.adjacency[to]; !ok {
		v.neighborOrder = append(v.neighborOrder, to)
	}
	v.adjacency[to] = edge
}

// Graph undirected road network graph. ids are osm node ids.
// mutated only while building, read only afterwards.
type Graph struct {
	vertices map[int64]*Vertex
	// insertion order of vertex ids.
	order []int64
}

func NewGraph() *Graph {
	return &Graph{
		vertices: make(map[int64]*Vertex),
		order:    make([]int64, 0),
	}
}

// AddVertex inserts the vertex or overwrites the coordinates of an existing one.
// an overwritten vertex keeps its insertion position and its adjacency.
func (g *Graph) AddVertex(id int64, lon, lat float64) {
	if v, ok := g.vertices[id]; ok {
		v.Lon = lon
		v.Lat = lat
		v.Name = ""
		return
	}
	g.vertices[id] = newVertex(id, lon, lat)
	g.order = append(g.order, id)
}

// SetVertexName no-op if the vertex is unknown.
func (g *Graph) SetVertexName(id int64, name string) bool {
	v, ok := g.vertices[id]
	if !ok {
		return false
	}
	v.Name = name
	return true
}

// Connect connects from and to in both directions with the same edge metadata.
func (g *Graph) Connect(from, to int64, wayID int64, tags map[string]string) error {
	fromVertex, ok := g.vertices[from]
	if !ok {
		return fmt.Errorf("connect %d -> %d: vertex %d: %w", from, to, from, ErrUnknownVertex)
	}
	toVertex, ok := g.vertices[to]
	if !ok {
		return fmt.Errorf("connect %d -> %d: vertex %d: %w", from, to, to, ErrUnknownVertex)
	}

	edge, ok := fromVertex.adjacency[to]
	if ok {
		edge.merge(wayID, tags)
	} else {
		edge = newEdgeInfo(wayID, tags)
	}

	fromVertex.connectTo(to, edge)
	toVertex.connectTo(from, edge)
	return nil
}

// Prune removes every vertex without neighbors. returns the number of removed vertices.
func (g *Graph) Prune() int {
	kept := g.order[:0]
	removed := 0
	for _, id := range g.order {
		if g.vertices[id].Degree() == 0 {
			delete(g.vertices, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	g.order = kept
	return removed
}

// Vertices yields all vertex ids in insertion order. the sequence can be ranged over many times.
func (g *Graph) Vertices() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for _, id := range g.order {
			if !yield(id) {
				return
			}
		}
	}
}

func (g *Graph) NumVertices() int {
	return len(g.order)
}

func (g *Graph) NumEdges() int {
	count := 0
	for _, v := range g.vertices {
		count += v.Degree()
	}
	return count / 2
}

func (g *Graph) HasVertex(id int64) bool {
	_, ok := g.vertices[id]
	return ok
}

func (g *Graph) Vertex(id int64) (*Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

// Neighbors returns the neighbor ids of id in connect order. false if id not exists.
func (g *Graph) Neighbors(id int64) ([]int64, bool) {
	v, ok := g.vertices[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(v.neighborOrder), true
}

// NeighborSeq yields the neighbors of id without copying. empty for an unknown id.
func (g *Graph) NeighborSeq(id int64) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		v, ok := g.vertices[id]
		if !ok {
			return
		}
		for _, n := range v.neighborOrder {
			if !yield(n) {
				return
			}
		}
	}
}

// Edge returns metadata of the edge from -> to.
func (g *Graph) Edge(from, to int64) (*EdgeInfo, bool) {
	v, ok := g.vertices[from]
	if !ok {
		return nil, false
	}
	edge, ok := v.adjacency[to]
	return edge, ok
}

func (g *Graph) mustVertex(id int64) *Vertex {
	v, ok := g.vertices[id]
	if !ok {
		panic(fmt.Sprintf("vertex %d not exists", id))
	}
	return v
}

// Lon panics if id not exists.
func (g *Graph) Lon(id int64) float64 {
	return g.mustVertex(id).Lon
}

// Lat panics if id not exists.
func (g *Graph) Lat(id int64) float64 {
	return g.mustVertex(id).Lat
}

// Distance great-circle distance in miles between vertices v and w.
func (g *Graph) Distance(v, w int64) float64 {
	a, b := g.mustVertex(v), g.mustVertex(w)
	return geo.HaversineDistance(a.Lon, a.Lat, b.Lon, b.Lat)
}

// Bearing initial bearing in degrees from vertex v to vertex w.
func (g *Graph) Bearing(v, w int64) float64 {
	a, b := g.mustVertex(v), g.mustVertex(w)
	return geo.Bearing(a.Lon, a.Lat, b.Lon, b.Lat)
}

func (g *Graph) Bounds() geo.BoundingBox {
	lats := make([]float64, 0, len(g.order))
	lons := make([]float64, 0, len(g.order))
	for _, id := range g.order {
		v := g.vertices[id]
		lats = append(lats, v.Lat)
		lons = append(lons, v.Lon)
	}
	return geo.NewBoundingBox(lats, lons)
}
