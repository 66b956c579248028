package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/applianceiq/consumables-engine/pkg/apperrors"
	"github.com/applianceiq/consumables-engine/pkg/models"
)

func TestContractorHandler_Get_ReturnsContractor(t *testing.T) {
	mock := &mockContractorService{
		contractor: &models.Contractor{
			ID:          7,
			Name:        "Sam Rivera",
			Company:     "Rivera Appliance Repair",
			Phone:       "555-123-4567",
			Email:       "sam@riverarepair.example",
			ServiceArea: "East Bay",
			Photo:       "/assets/sam.jpg",
		},
	}
	handler := NewContractorHandler(mock, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/contractor", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Sam Rivera", body["name"])
	assert.Equal(t, "Rivera Appliance Repair", body["company"])
	assert.Equal(t, "East Bay", body["service_area"])

	// Internal row fields stay out of the payload.
	_, hasID := body["id"]
	assert.False(t, hasID)
	_, hasCreatedAt := body["created_at"]
	assert.False(t, hasCreatedAt)
}

func TestContractorHandler_Get_OmitsEmptyOptionalFields(t *testing.T) {
	mock := &mockContractorService{
		contractor: &models.Contractor{
			Name:    "Sam Rivera",
			Company: "Rivera Appliance Repair",
			Phone:   "555-123-4567",
			Email:   "sam@riverarepair.example",
		},
	}
	handler := NewContractorHandler(mock, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/contractor", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	_, hasBio := body["bio"]
	assert.False(t, hasBio)
	_, hasLicense := body["license"]
	assert.False(t, hasLicense)
}

func TestContractorHandler_Get_NotConfigured(t *testing.T) {
	mock := &mockContractorService{err: apperrors.ErrNotFound}
	handler := NewContractorHandler(mock, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/contractor", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "Contractor not configured.", errResp["detail"])
}

func TestContractorHandler_Get_StoreUnavailable(t *testing.T) {
	mock := &mockContractorService{err: apperrors.ErrStoreUnavailable}
	handler := NewContractorHandler(mock, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/contractor", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
