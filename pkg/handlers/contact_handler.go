package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/applianceiq/consumables-engine/pkg/models"
	"github.com/applianceiq/consumables-engine/pkg/services"
)

// ContactAckResponse acknowledges a submitted contact request.
type ContactAckResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ContactHandler handles contact request submissions.
type ContactHandler struct {
	contactService services.ContactService
	logger         *zap.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService services.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// RegisterRoutes registers the contact handler's routes on the given mux.
func (h *ContactHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/contact", h.Submit)
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "Invalid request body."); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if detail, ok := validateContactRequest(&req); !ok {
		if err := ErrorResponse(w, http.StatusBadRequest, detail); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := h.contactService.Submit(r.Context(), &req); err != nil {
		h.logger.Error("Failed to submit contact request", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "Internal server error."); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := ContactAckResponse{
		Status:  "received",
		Message: "A local pro will reach out soon.",
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// validateContactRequest checks the required fields. Returns a detail
// message and false when validation fails.
func validateContactRequest(req *models.ContactRequest) (string, bool) {
	if strings.TrimSpace(req.Name) == "" {
		return "Name is required.", false
	}

	email := strings.TrimSpace(req.Email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "A valid email address is required.", false
	}

	return "", true
}
