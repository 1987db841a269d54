package controllers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

func (api *routingAPI) logError(r *http.Request, err error) {
	api.log.Error("request failed", zap.Error(err), zap.String("method", r.Method), zap.String("url", r.URL.String()))
}

func (api *routingAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	env := envelope{"error": message}

	err := api.writeJSON(w, status, env, nil)
	if err != nil {
		api.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *routingAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.logError(r, err)

	message := "the server encountered a problem and could not process your request"
	api.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (api *routingAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (api *routingAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusNotFound, err.Error())
}

func (api *routingAPI) SearchAbortedResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Warn("route search aborted", zap.Error(err), zap.String("url", r.URL.String()))
	api.errorResponse(w, r, http.StatusServiceUnavailable, fmt.Sprintf("route search aborted: %v", err))
}
