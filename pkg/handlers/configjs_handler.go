package handlers

import (
	"fmt"
	"net/http"
)

// ConfigJSHandler serves the runtime configuration stub consumed by the
// web frontend before it makes its first API call.
type ConfigJSHandler struct {
	baseURL string
}

// NewConfigJSHandler creates a new config.js handler. baseURL overrides the
// advertised API base URL; when empty it is derived per request from the
// Host header and forwarded proto.
func NewConfigJSHandler(baseURL string) *ConfigJSHandler {
	return &ConfigJSHandler{baseURL: baseURL}
}

// RegisterRoutes registers the config.js route on the given mux.
func (h *ConfigJSHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /config.js", h.Serve)
}

// Serve handles GET /config.js
func (h *ConfigJSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	base := h.baseURL
	if base == "" {
		scheme := "http"
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		} else if r.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}

	w.Header().Set("Content-Type", "application/javascript")
	fmt.Fprintf(w, "window.API_BASE_URL = %q;", base)
}
