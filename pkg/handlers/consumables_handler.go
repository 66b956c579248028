package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/applianceiq/consumables-engine/pkg/apperrors"
	"github.com/applianceiq/consumables-engine/pkg/services"
)

// ConsumablesHandler handles consumable search HTTP requests.
type ConsumablesHandler struct {
	catalogService services.CatalogService
	logger         *zap.Logger
}

// NewConsumablesHandler creates a new consumables handler.
func NewConsumablesHandler(catalogService services.CatalogService, logger *zap.Logger) *ConsumablesHandler {
	return &ConsumablesHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the consumables handler's routes on the given mux.
func (h *ConsumablesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/consumables", h.Search)
}

// Search handles GET /api/consumables?model=<query>
//
// Responds with a JSON array of matching appliances and their consumables.
// Zero matches is a 200 with an empty array, not an error.
func (h *ConsumablesHandler) Search(w http.ResponseWriter, r *http.Request) {
	model := r.URL.Query().Get("model")

	results, err := h.catalogService.Search(r.Context(), model)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidQuery) {
			if err := ErrorResponse(w, http.StatusBadRequest, "Model query cannot be empty."); err != nil {
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

		h.logger.Error("Failed to search consumables",
			zap.String("model", model),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "Internal server error."); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, results); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
