package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lintang-b-s/osm-route/pkg/datastructure"
	helper "github.com/lintang-b-s/osm-route/pkg/http/http-router/router-helper"
	"github.com/lintang-b-s/osm-route/pkg/http/usecases"
	"github.com/lintang-b-s/osm-route/pkg/routing"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

const (
	DEFAULT_PREFIX_SIZE = 10
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
	validator      *requestValidator
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
		validator:      newRequestValidator(),
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/route", api.shortestPath)
	group.POST("/route/batch", api.routeBatch)
	group.GET("/closest", api.closest)
	group.GET("/locations", api.locations)
	group.GET("/autocomplete", api.autocomplete)
}

// shortestPathRequest model info
//
//	@Description	query parameters of a route request.
type shortestPathRequest struct {
	StartLon float64 `json:"start_lon" validate:"min=-180,max=180"`
	StartLat float64 `json:"start_lat" validate:"min=-90,max=90"`
	DestLon  float64 `json:"dest_lon" validate:"min=-180,max=180"`
	DestLat  float64 `json:"dest_lat" validate:"min=-90,max=90"`
}

// shortestPathResponse model info
//
//	@Description	response body of a route request.
type shortestPathResponse struct {
	Data usecases.RouteAnswer `json:"data"`
}

func (api *routingAPI) respondRouteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, routing.ErrNotFound):
		api.NotFoundResponse(w, r, err)
	case errors.Is(err, routing.ErrSearchAborted):
		api.SearchAbortedResponse(w, r, err)
	default:
		api.ServerErrorResponse(w, r, err)
	}
}

// shortestPath godoc
// @Summary		shortest route between two coordinates, with turn by turn directions.
// @Description	both coordinates are snapped to their closest road graph vertex.
// @Tags			routing
// @ID shortest-path
// @Param			start_lon	query	number	true	"start longitude"
// @Param			start_lat	query	number	true	"start latitude"
// @Param			dest_lon	query	number	true	"destination longitude"
// @Param			dest_lat	query	number	true	"destination latitude"
// @Produce		application/json
// @Router			/api/route [get]
// @Success		200	{object}	shortestPathResponse
// @Failure		400	{object}	errorResponse
// @Failure		404	{object}	errorResponse
// @Failure		503	{object}	errorResponse
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	qs := r.URL.Query()
	var (
		request shortestPathRequest
		err     error
	)
	params := []struct {
		key string
		dst *float64
	}{
		{"start_lon", &request.StartLon},
		{"start_lat", &request.StartLat},
		{"dest_lon", &request.DestLon},
		{"dest_lat", &request.DestLat},
	}
	for _, p := range params {
		if *p.dst, err = readFloat(qs, p.key); err != nil {
			api.BadRequestResponse(w, r, err)
			return
		}
	}

	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	answer, err := api.routingService.ShortestPath(r.Context(), request.StartLon, request.StartLat,
		request.DestLon, request.DestLat)
	if err != nil {
		api.respondRouteError(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": answer}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// routeBatchRequest model info
//
//	@Description	request body for many route queries evaluated concurrently.
type routeBatchRequest struct {
	Queries []shortestPathRequest `json:"queries" validate:"required,min=1,max=100,dive"`
}

// routeBatch godoc
// @Summary		evaluate many route queries concurrently.
// @Description	results keep the order of the queries. a query without path has found=false.
// @Tags			routing
// @ID route-batch
// @Param			body	body	routeBatchRequest	true	"queries"
// @Accept			application/json
// @Produce		application/json
// @Router			/api/route/batch [post]
// @Failure		400	{object}	errorResponse
func (api *routingAPI) routeBatch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var request routeBatchRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	queries := make([]routing.RouteQuery, 0, len(request.Queries))
	for _, q := range request.Queries {
		queries = append(queries, routing.RouteQuery{
			StartLon: q.StartLon,
			StartLat: q.StartLat,
			DestLon:  q.DestLon,
			DestLat:  q.DestLat,
		})
	}

	answers := api.routingService.RouteBatch(r.Context(), queries)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": answers}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

type closestRequest struct {
	Lon float64 `validate:"min=-180,max=180"`
	Lat float64 `validate:"min=-90,max=90"`
}

// closest godoc
// @Summary		road graph vertex closest to a coordinate.
// @Tags			routing
// @ID closest
// @Param			lon	query	number	true	"longitude"
// @Param			lat	query	number	true	"latitude"
// @Produce		application/json
// @Router			/api/closest [get]
// @Failure		400	{object}	errorResponse
// @Failure		404	{object}	errorResponse
func (api *routingAPI) closest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	qs := r.URL.Query()
	var request closestRequest
	var err error
	if request.Lon, err = readFloat(qs, "lon"); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.Lat, err = readFloat(qs, "lat"); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	vertex, err := api.routingService.Closest(request.Lon, request.Lat)
	if err != nil {
		api.respondRouteError(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": vertex}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

type locationsRequest struct {
	Name     string `validate:"required,max=200"`
	Distance int    `validate:"min=0,max=2"`
}

// locationsResponse model info
//
//	@Description	named osm nodes matching the query.
type locationsResponse struct {
	Data []datastructure.Location `json:"data"`
}

// locations godoc
// @Summary		named osm nodes whose cleaned name matches the given name.
// @Description	exact match on the name without punctuation and case, fuzzy match when distance > 0.
// @Tags			locations
// @ID locations
// @Param			name		query	string	true	"location name"
// @Param			distance	query	int		false	"edit distance, 0..2"
// @Produce		application/json
// @Router			/api/locations [get]
// @Success		200	{object}	locationsResponse
// @Failure		400	{object}	errorResponse
func (api *routingAPI) locations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	qs := r.URL.Query()
	request := locationsRequest{Name: qs.Get("name")}
	var err error
	if request.Distance, err = readInt(qs, "distance", 0); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	locations, err := api.routingService.Locations(request.Name, request.Distance)
	if err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": locations}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

type autocompleteRequest struct {
	Prefix string `validate:"required,max=200"`
	Limit  int    `validate:"min=1,max=100"`
}

// autocomplete godoc
// @Summary		full names of locations starting with the prefix.
// @Tags			locations
// @ID autocomplete
// @Param			prefix	query	string	true	"name prefix"
// @Param			limit	query	int		false	"max results"
// @Produce		application/json
// @Router			/api/autocomplete [get]
// @Failure		400	{object}	errorResponse
func (api *routingAPI) autocomplete(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	qs := r.URL.Query()
	request := autocompleteRequest{Prefix: qs.Get("prefix")}
	var err error
	if request.Limit, err = readInt(qs, "limit", DEFAULT_PREFIX_SIZE); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	names, err := api.routingService.Autocomplete(request.Prefix, request.Limit)
	if err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": names}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}
