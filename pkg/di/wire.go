//go:build wireinject

//go:generate wire
package di

import (
	"context"

	"github.com/lintang-b-s/osm-route/pkg/di/config"
	shortcontext "github.com/lintang-b-s/osm-route/pkg/di/context"
	graph_di "github.com/lintang-b-s/osm-route/pkg/di/graph"
	logger_di "github.com/lintang-b-s/osm-route/pkg/di/logger"
	routeHttp "github.com/lintang-b-s/osm-route/pkg/http"
	"github.com/lintang-b-s/osm-route/pkg/http/http-router/controllers"
	"github.com/lintang-b-s/osm-route/pkg/http/usecases"
	"github.com/lintang-b-s/osm-route/pkg/location"
	"github.com/lintang-b-s/osm-route/pkg/routing"

	"github.com/google/wire"
	"go.uber.org/zap"
)

var defaultSet = wire.NewSet(
	shortcontext.New,
	config.New,
	logger_di.New,
	graph_di.New,
	graph_di.NewRoutingEngine,
)

var routingSet = wire.NewSet(
	defaultSet,
	graph_di.NewLocationIndex,
	NewRoutingService,
	NewRoutingAPIServer,
)

func NewRoutingService(log *zap.Logger, engine *routing.RoutingEngine, locIdx *location.Index) controllers.RoutingService {
	return usecases.New(log, engine, locIdx)
}

func NewRoutingAPIServer(ctx context.Context, log *zap.Logger,
	routingService controllers.RoutingService) (*routeHttp.Server, error) {
	api := routeHttp.NewServer(log)

	apiService, err := api.Use(
		ctx, log, routingService,
	)
	if err != nil {
		return nil, err
	}

	return apiService, nil
}

func InitializeRoutingService() (*routeHttp.Server, func(), error) {

	panic(wire.Build(routingSet))
}

func InitializeRoutingEngine() (*routing.RoutingEngine, func(), error) {

	panic(wire.Build(defaultSet))
}
