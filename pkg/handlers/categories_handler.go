package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/applianceiq/consumables-engine/pkg/apperrors"
	"github.com/applianceiq/consumables-engine/pkg/services"
)

// CategoriesHandler handles catalog browse HTTP requests.
type CategoriesHandler struct {
	catalogService services.CatalogService
	logger         *zap.Logger
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(catalogService services.CatalogService, logger *zap.Logger) *CategoriesHandler {
	return &CategoriesHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the categories handler's routes on the given mux.
func (h *CategoriesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/categories", h.List)
}

// List handles GET /api/categories
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.catalogService.CategoryGroups(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrStoreUnavailable) {
			if err := ErrorResponse(w, http.StatusServiceUnavailable, "Catalog is temporarily unavailable."); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}

		h.logger.Error("Failed to list categories", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "Internal server error."); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, groups); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
