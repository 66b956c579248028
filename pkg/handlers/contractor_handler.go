package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/applianceiq/consumables-engine/pkg/apperrors"
	"github.com/applianceiq/consumables-engine/pkg/services"
)

// ContractorHandler handles featured contractor HTTP requests.
type ContractorHandler struct {
	contractorService services.ContractorService
	logger            *zap.Logger
}

// NewContractorHandler creates a new contractor handler.
func NewContractorHandler(contractorService services.ContractorService, logger *zap.Logger) *ContractorHandler {
	return &ContractorHandler{
		contractorService: contractorService,
		logger:            logger,
	}
}

// RegisterRoutes registers the contractor handler's routes on the given mux.
func (h *ContractorHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/contractor", h.Get)
}

// Get handles GET /api/contractor
func (h *ContractorHandler) Get(w http.ResponseWriter, r *http.Request) {
	contractor, err := h.contractorService.Featured(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "Contractor not configured."); err != nil {
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

		h.logger.Error("Failed to load contractor", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "Internal server error."); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, contractor); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
