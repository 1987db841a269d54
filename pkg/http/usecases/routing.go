package usecases

import (
	"context"

	"github.com/lintang-b-s/osm-route/pkg/datastructure"
	"github.com/lintang-b-s/osm-route/pkg/routing"

	"go.uber.org/zap"
)

type RoutingService struct {
	log    *zap.Logger
	engine RoutingEngine
	locIdx LocationIndex
}

func New(log *zap.Logger, engine RoutingEngine, locIdx LocationIndex) *RoutingService {
	return &RoutingService{
		log:    log,
		engine: engine,
		locIdx: locIdx,
	}
}

func (s *RoutingService) ShortestPath(ctx context.Context, startLon, startLat, destLon, destLat float64) (RouteAnswer, error) {
	route, err := s.engine.Route(ctx, startLon, startLat, destLon, destLat)
	if err != nil {
		return RouteAnswer{}, err
	}

	answer := RouteAnswer{
		Found:      len(route) > 0,
		Route:      route,
		Directions: s.engine.Directions(route),
		Navigation: []string{},
	}
	if !answer.Found {
		return answer, nil
	}

	answer.Distance = s.engine.RouteLength(route)
	answer.Geometry = s.engine.RouteGeometry(route)
	for _, step := range answer.Directions {
		answer.Navigation = append(answer.Navigation, step.String())
	}
	return answer, nil
}

func (s *RoutingService) Closest(lon, lat float64) (ClosestVertex, error) {
	id, err := s.engine.Closest(lon, lat)
	if err != nil {
		return ClosestVertex{}, err
	}
	v, _ := s.engine.Graph().Vertex(id)
	return ClosestVertex{
		ID:   v.ID,
		Lon:  v.Lon,
		Lat:  v.Lat,
		Name: v.Name,
	}, nil
}

// Locations exact cleaned name match, or fuzzy match when editDistance > 0.
func (s *RoutingService) Locations(name string, editDistance int) ([]datastructure.Location, error) {
	if editDistance > 0 {
		return s.locIdx.Fuzzy(name, editDistance)
	}
	return s.locIdx.Locations(name), nil
}

func (s *RoutingService) Autocomplete(prefix string, limit int) ([]string, error) {
	return s.locIdx.Prefix(prefix, limit)
}

func (s *RoutingService) RouteBatch(ctx context.Context, queries []routing.RouteQuery) []BatchAnswer {
	results := s.engine.RouteBatch(ctx, queries)

	answers := make([]BatchAnswer, 0, len(results))
	for i, res := range results {
		answer := BatchAnswer{
			Route:    res.Route,
			Distance: res.Distance,
			Found:    res.Err == nil && len(res.Route) > 0,
		}
		if answer.Route == nil {
			answer.Route = []int64{}
		}
		if res.Err != nil {
			answer.Error = res.Err.Error()
			s.log.Debug("batch query failed", zap.Int("query", i), zap.Error(res.Err))
		}
		answers = append(answers, answer)
	}
	return answers
}
