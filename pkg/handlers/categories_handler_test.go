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

func TestCategoriesHandler_List_ReturnsGroups(t *testing.T) {
	mock := &mockCatalogService{
		groups: []*models.CategoryGroup{
			{
				Category: "Dishwasher",
				Brands: []models.BrandGroup{
					{
						Brand: "Whirlpool",
						Appliances: []models.ApplianceResult{
							{
								Model:       "WDT780SAEM1",
								Brand:       "Whirlpool",
								Category:    "Dishwasher",
								Consumables: []models.ConsumableEntry{},
							},
						},
					},
				},
			},
			{
				Category: "Refrigerator",
				Brands:   []models.BrandGroup{},
			},
		},
	}
	handler := NewCategoriesHandler(mock, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var groups []models.CategoryGroup
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&groups))
	require.Len(t, groups, 2)
	assert.Equal(t, "Dishwasher", groups[0].Category)
	require.Len(t, groups[0].Brands, 1)
	assert.Equal(t, "Whirlpool", groups[0].Brands[0].Brand)
	require.Len(t, groups[0].Brands[0].Appliances, 1)
	assert.Equal(t, "WDT780SAEM1", groups[0].Brands[0].Appliances[0].Model)
}

func TestCategoriesHandler_List_EmptyCatalog(t *testing.T) {
	mock := &mockCatalogService{groups: []*models.CategoryGroup{}}
	handler := NewCategoriesHandler(mock, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCategoriesHandler_List_StoreUnavailable(t *testing.T) {
	mock := &mockCatalogService{err: apperrors.ErrStoreUnavailable}
	handler := NewCategoriesHandler(mock, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
