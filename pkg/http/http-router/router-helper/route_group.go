package router_helper

import (
	"context"
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"
)

const (
	UNMATCHED_ROUTE = "unmatched"
)

type routePatternKey struct{}

// WithRoutePattern returns ctx with an empty slot that handles registered through a RouteGroup
// fill with their route pattern. the slot keeps UNMATCHED_ROUTE if no group handle ran.
func WithRoutePattern(ctx context.Context) (context.Context, *string) {
	pattern := UNMATCHED_ROUTE
	return context.WithValue(ctx, routePatternKey{}, &pattern), &pattern
}

func setRoutePattern(ctx context.Context, pattern string) {
	if slot, ok := ctx.Value(routePatternKey{}).(*string); ok {
		*slot = pattern
	}
}

// RouteGroup registers httprouter handles under a common path prefix.
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{
		router: router,
		prefix: prefix,
	}
}

func (g *RouteGroup) Group(prefix string) *RouteGroup {
	return NewRouteGroup(g.router, g.path(prefix))
}

func (g *RouteGroup) path(p string) string {
	return path.Join(g.prefix, p)
}

func (g *RouteGroup) Handle(method, p string, handle httprouter.Handle) {
	pattern := g.path(p)
	g.router.Handle(method, pattern, func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		setRoutePattern(r.Context(), pattern)
		handle(w, r, ps)
	})
}

func (g *RouteGroup) Handler(method, p string, handler http.Handler) {
	pattern := g.path(p)
	g.router.Handler(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setRoutePattern(r.Context(), pattern)
		handler.ServeHTTP(w, r)
	}))
}

func (g *RouteGroup) GET(p string, handle httprouter.Handle) {
	g.Handle(http.MethodGet, p, handle)
}

func (g *RouteGroup) POST(p string, handle httprouter.Handle) {
	g.Handle(http.MethodPost, p, handle)
}

func (g *RouteGroup) PUT(p string, handle httprouter.Handle) {
	g.Handle(http.MethodPut, p, handle)
}

func (g *RouteGroup) DELETE(p string, handle httprouter.Handle) {
	g.Handle(http.MethodDelete, p, handle)
}
