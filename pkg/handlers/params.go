package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// ParseLimit extracts and validates the limit query parameter. A missing
// parameter falls back to def. Returns the parsed limit and true on success,
// or 0 and false after writing an error response. Values above the service
// maximum are accepted here and clamped downstream.
func ParseLimit(w http.ResponseWriter, r *http.Request, logger *zap.Logger, def int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		if err := ErrorResponse(w, http.StatusBadRequest, "Limit must be a positive integer."); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return 0, false
	}

	return limit, true
}
