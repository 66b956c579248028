package handlers

import (
	"context"

	"github.com/applianceiq/consumables-engine/pkg/models"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockCatalogService implements services.CatalogService for handler tests.
type mockCatalogService struct {
	results  []*models.ApplianceResult
	groups   []*models.CategoryGroup
	err      error
	gotQuery string
}

func (m *mockCatalogService) Search(ctx context.Context, query string) ([]*models.ApplianceResult, error) {
	m.gotQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockCatalogService) CategoryGroups(ctx context.Context) ([]*models.CategoryGroup, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.groups, nil
}

// mockSuggestService implements services.SuggestService for handler tests.
type mockSuggestService struct {
	suggestions []*models.Suggestion
	err         error
	called      bool
	gotQuery    string
	gotLimit    int
}

func (m *mockSuggestService) Suggest(ctx context.Context, query string, limit int) ([]*models.Suggestion, error) {
	m.called = true
	m.gotQuery = query
	m.gotLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.suggestions, nil
}

// mockContractorService implements services.ContractorService for handler tests.
type mockContractorService struct {
	contractor *models.Contractor
	err        error
}

func (m *mockContractorService) Featured(ctx context.Context) (*models.Contractor, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.contractor, nil
}

// mockContactService implements services.ContactService for handler tests.
type mockContactService struct {
	err    error
	gotReq *models.ContactRequest
}

func (m *mockContactService) Submit(ctx context.Context, req *models.ContactRequest) error {
	m.gotReq = req
	return m.err
}
