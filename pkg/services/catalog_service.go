package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/applianceiq/consumables-engine/pkg/apperrors"
	"github.com/applianceiq/consumables-engine/pkg/models"
	"github.com/applianceiq/consumables-engine/pkg/repositories"
)

// CatalogService provides read operations over the appliance catalog.
type CatalogService interface {
	// Search returns every appliance whose model number contains the query,
	// case-insensitively, with its consumables. Returns
	// apperrors.ErrInvalidQuery when the query is blank after trimming.
	Search(ctx context.Context, query string) ([]*models.ApplianceResult, error)

	// CategoryGroups returns the whole catalog grouped by category and brand.
	CategoryGroups(ctx context.Context) ([]*models.CategoryGroup, error)
}

type catalogService struct {
	catalogRepo repositories.CatalogRepository
	logger      *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalogRepo repositories.CatalogRepository, logger *zap.Logger) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		logger:      logger.Named("catalog-service"),
	}
}

var _ CatalogService = (*catalogService)(nil)

func (s *catalogService) Search(ctx context.Context, query string) ([]*models.ApplianceResult, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, apperrors.ErrInvalidQuery
	}

	results, err := s.catalogRepo.SearchByModelNumber(ctx, q)
	if err != nil {
		s.logger.Error("Failed to search catalog",
			zap.String("query", q),
			zap.Error(err))
		return nil, apperrors.ErrStoreUnavailable
	}

	return results, nil
}

func (s *catalogService) CategoryGroups(ctx context.Context) ([]*models.CategoryGroup, error) {
	groups, err := s.catalogRepo.CategoryGroups(ctx)
	if err != nil {
		s.logger.Error("Failed to load category groups", zap.Error(err))
		return nil, apperrors.ErrStoreUnavailable
	}

	return groups, nil
}
