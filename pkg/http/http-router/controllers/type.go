package controllers

import (
	"context"

	"github.com/lintang-b-s/osm-route/pkg/datastructure"
	"github.com/lintang-b-s/osm-route/pkg/http/usecases"
	"github.com/lintang-b-s/osm-route/pkg/routing"
)

type RoutingService interface {
	ShortestPath(ctx context.Context, startLon, startLat, destLon, destLat float64) (usecases.RouteAnswer, error)
	Closest(lon, lat float64) (usecases.ClosestVertex, error)
	Locations(name string, editDistance int) ([]datastructure.Location, error)
	Autocomplete(prefix string, limit int) ([]string, error)
	RouteBatch(ctx context.Context, queries []routing.RouteQuery) []usecases.BatchAnswer
}
