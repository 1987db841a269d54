package http_router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lintang-b-s/osm-route/pkg/http/http-router/controllers"
	router_helper "github.com/lintang-b-s/osm-route/pkg/http/http-router/router-helper"
	http_server "github.com/lintang-b-s/osm-route/pkg/http/server"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 10 * time.Second
)

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

// Handler full middleware chain around the api routes.
func (api *API) Handler(routingService controllers.RoutingService) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", REQUEST_ID_HEADER},
		ExposedHeaders:   []string{"Link", REQUEST_ID_HEADER},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore

	})

	group := router_helper.NewRouteGroup(router, "/api")

	routingRoutes := controllers.New(routingService, api.log)

	routingRoutes.Routes(group)

	router_helper.NewRouteGroup(router, "/").Handler(http.MethodGet, "/metrics", promhttp.Handler())

	return alice.New(corsHandler.Handler, RequestID, api.recoverPanic, RealIP, Heartbeat("healthz"),
		Logger(api.log), EnforceJSONHandler).Then(router)
}

// Run serves the api until ctx is cancelled, then shuts the server down gracefully.
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,

	routingService controllers.RoutingService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(routingService), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		api.log.Info("shutting down API")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
