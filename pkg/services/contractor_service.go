package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/applianceiq/consumables-engine/pkg/apperrors"
	"github.com/applianceiq/consumables-engine/pkg/models"
	"github.com/applianceiq/consumables-engine/pkg/repositories"
)

// ContractorService exposes the featured local contractor.
type ContractorService interface {
	// Featured returns the current contractor, reloaded on every call so a
	// reload of the contractors table shows up without a restart. Returns
	// apperrors.ErrNotFound when no contractor has been loaded.
	Featured(ctx context.Context) (*models.Contractor, error)
}

type contractorService struct {
	contractorRepo repositories.ContractorRepository
	logger         *zap.Logger
}

// NewContractorService creates a new ContractorService.
func NewContractorService(contractorRepo repositories.ContractorRepository, logger *zap.Logger) ContractorService {
	return &contractorService{
		contractorRepo: contractorRepo,
		logger:         logger.Named("contractor-service"),
	}
}

var _ ContractorService = (*contractorService)(nil)

func (s *contractorService) Featured(ctx context.Context) (*models.Contractor, error) {
	contractor, err := s.contractorRepo.Latest(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.logger.Error("Failed to load contractor", zap.Error(err))
		return nil, apperrors.ErrStoreUnavailable
	}

	return contractor, nil
}
