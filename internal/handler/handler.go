// Package handler exposes the emotion and client services over HTTP.
package handler

import (
	"encoding/json"
	"net/http"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Handler serves the root document and the router's fallback responses.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// RootResponse describes the service at GET /.
type RootResponse struct {
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Resources []string `json:"resources"`
}

// Hello handles GET /.
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Service:   "emotionlog",
		Version:   Version,
		Resources: []string{"/api/v1/emotions", "/api/v1/clients"},
	})
}

// NotFound answers unmatched routes with the standard error envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path)
}

func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" is not allowed on "+r.URL.Path)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
