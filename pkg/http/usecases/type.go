package usecases

import (
	"context"

	"github.com/lintang-b-s/osm-route/pkg/datastructure"
	"github.com/lintang-b-s/osm-route/pkg/routing"

	geojson "github.com/paulmach/go.geojson"
)

type RoutingEngine interface {
	Graph() *datastructure.Graph
	Closest(lon, lat float64) (int64, error)
	Route(ctx context.Context, startLon, startLat, destLon, destLat float64) ([]int64, error)
	Directions(route []int64) []routing.Step
	RouteLength(route []int64) float64
	RouteGeometry(route []int64) *geojson.Geometry
	RouteBatch(ctx context.Context, queries []routing.RouteQuery) []routing.RouteResult
}

type LocationIndex interface {
	Locations(name string) []datastructure.Location
	Prefix(prefix string, limit int) ([]string, error)
	Fuzzy(name string, editDistance int) ([]datastructure.Location, error)
}

// RouteAnswer model info
// @Description shortest route between two coordinates.
type RouteAnswer struct {
	Found      bool              `json:"found"`
	Route      []int64           `json:"route"`
	Distance   float64           `json:"distance_miles"`
	Directions []routing.Step    `json:"directions"`
	Navigation []string          `json:"navigation"`
	Geometry   *geojson.Geometry `json:"geometry,omitempty"`
}

// ClosestVertex model info
// @Description road graph vertex nearest to a coordinate.
type ClosestVertex struct {
	ID   int64   `json:"id"`
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
	Name string  `json:"name,omitempty"`
}

// BatchAnswer model info
// @Description result of one query of a batch route request.
type BatchAnswer struct {
	Route    []int64 `json:"route"`
	Distance float64 `json:"distance_miles"`
	Found    bool    `json:"found"`
	Error    string  `json:"error,omitempty"`
}
