package http_router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lintang-b-s/osm-route/pkg/datastructure"
	"github.com/lintang-b-s/osm-route/pkg/http/usecases"
	router_helper "github.com/lintang-b-s/osm-route/pkg/http/http-router/router-helper"
	"github.com/lintang-b-s/osm-route/pkg/routing"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type panickingService struct{}

func (panickingService) ShortestPath(ctx context.Context, startLon, startLat, destLon, destLat float64) (usecases.RouteAnswer, error) {
	panic("boom")
}

func (panickingService) Closest(lon, lat float64) (usecases.ClosestVertex, error) {
	return usecases.ClosestVertex{ID: 7, Lon: lon, Lat: lat}, nil
}

func (panickingService) Locations(name string, editDistance int) ([]datastructure.Location, error) {
	return []datastructure.Location{}, nil
}

func (panickingService) Autocomplete(prefix string, limit int) ([]string, error) {
	return []string{}, nil
}

func (panickingService) RouteBatch(ctx context.Context, queries []routing.RouteQuery) []usecases.BatchAnswer {
	return []usecases.BatchAnswer{}
}

func TestHandlerHeartbeat(t *testing.T) {
	h := NewAPI(zap.NewNop()).Handler(panickingService{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(REQUEST_ID_HEADER))
}

func TestHandlerRequestID(t *testing.T) {
	h := NewAPI(zap.NewNop()).Handler(panickingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/closest?lon=1&lat=2", nil)
	req.Header.Set(REQUEST_ID_HEADER, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(REQUEST_ID_HEADER))

	var body struct {
		Data usecases.ClosestVertex `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.Data.ID)
}

func TestHandlerRecoversPanic(t *testing.T) {
	h := NewAPI(zap.NewNop()).Handler(panickingService{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/route?start_lon=0&start_lat=0&dest_lon=1&dest_lat=1", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not process your request")
}

func TestHandlerEnforceJSON(t *testing.T) {
	h := NewAPI(zap.NewNop()).Handler(panickingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/route/batch", strings.NewReader("queries"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestHandlerMetrics(t *testing.T) {
	h := NewAPI(zap.NewNop()).Handler(panickingService{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/closest?lon=1&lat=2", nil))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "osm_route_http_requests_total")
}

func TestRealIP(t *testing.T) {
	var got string
	h := RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.RemoteAddr
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.7, 172.16.0.1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "10.0.0.7", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "not an ip")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "192.0.2.1:1234", got)
}

func TestHandlerMetricsUnknownPathsShareSeries(t *testing.T) {
	h := NewAPI(zap.NewNop()).Handler(panickingService{})
	unmatched := httpRequestsTotal.WithLabelValues(http.MethodGet, router_helper.UNMATCHED_ROUTE, "404")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/closest?lon=1&lat=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	seriesBefore := testutil.CollectAndCount(httpRequestsTotal)
	unmatchedBefore := testutil.ToFloat64(unmatched)

	for i := 0; i < 200; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/nope/%d", i), nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/closest?lon=%d&lat=2", i), nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, seriesBefore, testutil.CollectAndCount(httpRequestsTotal))
	assert.InDelta(t, unmatchedBefore+200, testutil.ToFloat64(unmatched), 1e-9)
	assert.GreaterOrEqual(t, testutil.ToFloat64(
		httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/closest", "200")), 51.0)
}
