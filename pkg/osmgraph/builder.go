package osmgraph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lintang-b-s/osm-route/pkg/datastructure"
	"go.uber.org/zap"
)

type buildState int

const (
	IDLE buildState = iota
	IN_NODE
	IN_WAY
	FINISHED
)

func (s buildState) String() string {
	switch s {
	case IDLE:
		return "idle"
	case IN_NODE:
		return "in node"
	case IN_WAY:
		return "in way"
	case FINISHED:
		return "finished"
	}
	return "unknown"
}

const (
	logEveryElements = 100000
)

// Builder builds the road network graph from ingestion events. single goroutine only.
// a way referencing an undeclared node loses only that edge: the error is recorded and the build continues,
// unless strict mode is enabled.
type Builder struct {
	graph  *datastructure.Graph
	cfg    HighwayConfig
	log    *zap.Logger
	strict bool

	state       buildState
	currentNode int64
	currentWay  int64
	ways        map[int64]*datastructure.Way

	namedNodes map[int64]datastructure.Location
	namedOrder []int64

	buildErrors []*BuildError

	nodeCount  int
	wayCount   int
	validWays  int
	edgeCount  int
	prunedSize int
}

type Option func(*Builder)

func WithHighwayConfig(cfg HighwayConfig) Option {
	return func(b *Builder) {
		b.cfg = cfg
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) {
		b.log = log
	}
}

// WithStrictMode makes the first build error fatal.
func WithStrictMode(strict bool) Option {
	return func(b *Builder) {
		b.strict = strict
	}
}

func NewBuilder(options ...Option) *Builder {
	b := &Builder{
		graph:       datastructure.NewGraph(),
		cfg:         DefaultHighwayConfig(),
		log:         zap.NewNop(),
		state:       IDLE,
		ways:        make(map[int64]*datastructure.Way),
		namedNodes:  make(map[int64]datastructure.Location),
		namedOrder:  make([]int64, 0),
		buildErrors: make([]*BuildError, 0),
	}
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *Builder) unexpected(event string) error {
	return fmt.Errorf("%w: %s while %s", ErrUnexpectedEvent, event, b.state)
}

func (b *Builder) NodeStart(id int64, lon, lat float64) error {
	if b.state != IDLE {
		return b.unexpected("NodeStart")
	}
	if err := b.AddVertex(id, lon, lat); err != nil {
		return err
	}
	b.currentNode = id
	b.state = IN_NODE
	return nil
}

func (b *Builder) NodeTag(key, value string) error {
	if b.state != IN_NODE {
		return b.unexpected("NodeTag")
	}
	if key == NAME_TAG {
		return b.SetVertexName(b.currentNode, value)
	}
	return nil
}

func (b *Builder) NodeEnd() error {
	if b.state != IN_NODE {
		return b.unexpected("NodeEnd")
	}
	b.state = IDLE
	return nil
}

func (b *Builder) WayStart(id int64) error {
	if b.state != IDLE {
		return b.unexpected("WayStart")
	}
	if err := b.BeginWay(id); err != nil {
		return err
	}
	b.currentWay = id
	b.state = IN_WAY
	return nil
}

func (b *Builder) WayNodeRef(nodeID int64) error {
	if b.state != IN_WAY {
		return b.unexpected("WayNodeRef")
	}
	return b.AddWayNodeRef(b.currentWay, nodeID)
}

func (b *Builder) WayTag(key, value string) error {
	if b.state != IN_WAY {
		return b.unexpected("WayTag")
	}
	return b.SetWayTag(b.currentWay, key, value)
}

func (b *Builder) WayEnd() error {
	if b.state != IN_WAY {
		return b.unexpected("WayEnd")
	}
	b.state = IDLE
	return b.EndWay(b.currentWay)
}

// AddVertex inserts or overwrites the vertex for id. an overwritten vertex loses its name,
// so it is also dropped from the named locations.
func (b *Builder) AddVertex(id int64, lon, lat float64) error {
	if b.state == FINISHED {
		return ErrBuildFinished
	}
	b.graph.AddVertex(id, lon, lat)
	b.forgetLocation(id)
	b.nodeCount++
	if b.nodeCount%logEveryElements == 0 {
		b.log.Sugar().Infof("building road network graph: %d nodes...", b.nodeCount)
	}
	return nil
}

func (b *Builder) forgetLocation(id int64) {
	if _, ok := b.namedNodes[id]; !ok {
		return
	}
	delete(b.namedNodes, id)
	b.namedOrder = slices.DeleteFunc(b.namedOrder, func(named int64) bool {
		return named == id
	})
}

// SetVertexName no-op if id unknown.
func (b *Builder) SetVertexName(id int64, name string) error {
	if b.state == FINISHED {
		return ErrBuildFinished
	}
	if !b.graph.SetVertexName(id, name) {
		return nil
	}
	v, _ := b.graph.Vertex(id)
	if _, ok := b.namedNodes[id]; !ok {
		b.namedOrder = append(b.namedOrder, id)
	}
	b.namedNodes[id] = datastructure.NewLocation(id, name, v.Lat, v.Lon)
	return nil
}

// BeginWay starts accumulating way id. a second WayStart for the same id keeps appending to the existing way.
func (b *Builder) BeginWay(id int64) error {
	if b.state == FINISHED {
		return ErrBuildFinished
	}
	if _, ok := b.ways[id]; ok {
		return nil
	}
	b.ways[id] = datastructure.NewWay(id)
	b.wayCount++
	if b.wayCount%logEveryElements == 0 {
		b.log.Sugar().Infof("building road network graph: %d ways...", b.wayCount)
	}
	return nil
}

func (b *Builder) AddWayNodeRef(wayID, nodeID int64) error {
	if b.state == FINISHED {
		return ErrBuildFinished
	}
	if way, ok := b.ways[wayID]; ok {
		way.AddNodeRef(nodeID)
	}
	return nil
}

func (b *Builder) SetWayTag(wayID int64, key, value string) error {
	if b.state == FINISHED {
		return ErrBuildFinished
	}
	if way, ok := b.ways[wayID]; ok {
		way.SetTag(key, value)
	}
	return nil
}

// EndWay connects consecutive node refs of a valid way. besides ErrBuildFinished it returns an error only in strict mode.
func (b *Builder) EndWay(wayID int64) error {
	if b.state == FINISHED {
		return ErrBuildFinished
	}
	way, ok := b.ways[wayID]
	if !ok || !b.cfg.IsValid(way) {
		return nil
	}
	b.validWays++

	for i := 0; i+1 < len(way.NodeIDs); i++ {
		from, to := way.NodeIDs[i], way.NodeIDs[i+1]

		missing, ok := b.missingEndpoint(from, to)
		if ok {
			buildErr := &BuildError{WayID: way.ID, NodeID: missing, Err: ErrUnknownNode}
			b.buildErrors = append(b.buildErrors, buildErr)
			b.log.Warn("skipping road segment", zap.Int64("way_id", way.ID), zap.Int64("node_id", missing),
				zap.Error(ErrUnknownNode))
			if b.strict {
				return buildErr
			}
			continue
		}

		if err := b.graph.Connect(from, to, way.ID, way.Tags); err != nil {
			return err
		}
		b.edgeCount++
	}
	return nil
}

func (b *Builder) missingEndpoint(from, to int64) (int64, bool) {
	if !b.graph.HasVertex(from) {
		return from, true
	}
	if !b.graph.HasVertex(to) {
		return to, true
	}
	return 0, false
}

// Finish prunes isolated vertices and returns the immutable graph. no events are accepted afterwards.
func (b *Builder) Finish() (*datastructure.Graph, error) {
	if b.state == FINISHED {
		return nil, ErrBuildFinished
	}
	if b.state != IDLE {
		return nil, b.unexpected("Finish")
	}
	b.state = FINISHED

	b.prunedSize = b.graph.Prune()
	clear(b.ways)

	b.log.Info("road network graph built",
		zap.Int("nodes", b.nodeCount),
		zap.Int("ways", b.wayCount),
		zap.Int("valid_ways", b.validWays),
		zap.Int("segments", b.edgeCount),
		zap.Int("pruned_vertices", b.prunedSize),
		zap.Int("vertices", b.graph.NumVertices()),
		zap.Int("build_errors", len(b.buildErrors)),
	)
	return b.graph, nil
}

// Errors structural errors collected so far.
func (b *Builder) Errors() []*BuildError {
	return b.buildErrors
}

// Err joins all collected build errors, nil if there are none.
func (b *Builder) Err() error {
	errs := make([]error, 0, len(b.buildErrors))
	for _, err := range b.buildErrors {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Locations named nodes seen during ingestion in arrival order, including nodes removed by pruning.
func (b *Builder) Locations() []datastructure.Location {
	locations := make([]datastructure.Location, 0, len(b.namedOrder))
	for _, id := range b.namedOrder {
		locations = append(locations, b.namedNodes[id])
	}
	return locations
}

// Build replays events into a new builder and finishes it.
func Build(events []Event, options ...Option) (*datastructure.Graph, error) {
	b := NewBuilder(options...)
	if err := Replay(events, b); err != nil {
		return nil, err
	}
	return b.Finish()
}
