package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestID_GeneratesID(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/consumables", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if seen == "" {
		t.Fatal("expected a generated request ID in context")
	}
	if rec.Header().Get("X-Request-ID") != seen {
		t.Errorf("expected response header %q to match context ID %q",
			rec.Header().Get("X-Request-ID"), seen)
	}
}

func TestRequestID_HonorsIncomingHeader(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/consumables", nil)
	req.Header.Set("X-Request-ID", "upstream-id-42")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if seen != "upstream-id-42" {
		t.Errorf("expected upstream-id-42, got %q", seen)
	}
	if rec.Header().Get("X-Request-ID") != "upstream-id-42" {
		t.Errorf("expected echoed header, got %q", rec.Header().Get("X-Request-ID"))
	}
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := RequestIDFromContext(req.Context()); id != "" {
		t.Errorf("expected empty ID without middleware, got %q", id)
	}
}
