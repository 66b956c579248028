package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/applianceiq/consumables-engine/pkg/apperrors"
	"github.com/applianceiq/consumables-engine/pkg/services"
)

// SuggestionsHandler handles model number autocomplete HTTP requests.
type SuggestionsHandler struct {
	suggestService services.SuggestService
	defaultLimit   int
	logger         *zap.Logger
}

// NewSuggestionsHandler creates a new suggestions handler. defaultLimit is
// used when the request omits the limit parameter.
func NewSuggestionsHandler(suggestService services.SuggestService, defaultLimit int, logger *zap.Logger) *SuggestionsHandler {
	return &SuggestionsHandler{
		suggestService: suggestService,
		defaultLimit:   defaultLimit,
		logger:         logger,
	}
}

// RegisterRoutes registers the suggestions handler's routes on the given mux.
func (h *SuggestionsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/suggestions", h.Suggest)
}

// Suggest handles GET /api/suggestions?q=<partial>&limit=<n>
//
// Responds with a JSON array of ranked suggestions. Queries below the
// minimum length get an empty array so client-side debouncing can fire
// on every keystroke without special-casing.
func (h *SuggestionsHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit, ok := ParseLimit(w, r, h.logger, h.defaultLimit)
	if !ok {
		return
	}

	suggestions, err := h.suggestService.Suggest(r.Context(), query, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidParameter) {
			if err := ErrorResponse(w, http.StatusBadRequest, "Limit must be a positive integer."); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}

		if errors.Is(err, apperrors.ErrStoreUnavailable) {
			if err := ErrorResponse(w, http.StatusServiceUnavailable, "Catalog is temporarily unavailable."); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}

		h.logger.Error("Failed to suggest models",
			zap.String("query", query),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "Internal server error."); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, suggestions); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
