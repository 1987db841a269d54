package graph_di

import (
	"context"
	"runtime"
	"time"

	"github.com/lintang-b-s/osm-route/pkg/datastructure"
	"github.com/lintang-b-s/osm-route/pkg/di/config"
	"github.com/lintang-b-s/osm-route/pkg/location"
	"github.com/lintang-b-s/osm-route/pkg/osmgraph"
	"github.com/lintang-b-s/osm-route/pkg/osmsource"
	"github.com/lintang-b-s/osm-route/pkg/routing"

	"go.uber.org/zap"
)

// Network road graph plus every named node seen while reading the map file.
type Network struct {
	Graph     *datastructure.Graph
	Locations []datastructure.Location
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Network, error) {
	highwayCfg := osmgraph.NewHighwayConfig(cfg.HighwayTypes)
	log.Info("building road network graph", zap.String("map_file", cfg.MapFile),
		zap.Strings("highway_types", highwayCfg.Types()))

	b := osmgraph.NewBuilder(
		osmgraph.WithHighwayConfig(highwayCfg),
		osmgraph.WithLogger(log),
	)

	st := time.Now()
	_, err := osmsource.Read(ctx, cfg.MapFile, b,
		osmsource.WithLogger(log),
		osmsource.WithProgress(cfg.ShowProgress),
		osmsource.WithPBFProcs(runtime.GOMAXPROCS(0)),
	)
	if err != nil {
		return nil, err
	}

	g, err := b.Finish()
	if err != nil {
		return nil, err
	}
	if n := len(b.Errors()); n > 0 {
		log.Warn("map file has broken ways", zap.Int("build_errors", n))
	}
	bounds := g.Bounds()
	log.Info("road network graph ready",
		zap.Int("vertices", g.NumVertices()),
		zap.Int("edges", g.NumEdges()),
		zap.Float64s("bounds_min", bounds.GetMin()),
		zap.Float64s("bounds_max", bounds.GetMax()),
	)
	log.Sugar().Infof("road network graph from %s ready in %s", cfg.MapFile, time.Since(st))

	return &Network{
		Graph:     g,
		Locations: b.Locations(),
	}, nil
}

func NewRoutingEngine(network *Network, cfg *config.Config, log *zap.Logger) *routing.RoutingEngine {
	return routing.NewRoutingEngine(network.Graph,
		routing.WithMaxIterations(cfg.MaxIterations),
		routing.WithBatchWorkers(cfg.BatchWorkers),
		routing.WithEngineLogger(log),
	)
}

func NewLocationIndex(network *Network) (*location.Index, error) {
	return location.NewIndex(network.Locations)
}
