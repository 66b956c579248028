package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/applianceiq/consumables-engine/pkg/apperrors"
	"github.com/applianceiq/consumables-engine/pkg/database"
	"github.com/applianceiq/consumables-engine/pkg/models"
)

// ContractorRepository provides data access for the featured contractor.
type ContractorRepository interface {
	// Latest returns the most recently added contractor, or
	// apperrors.ErrNotFound when none has been loaded.
	Latest(ctx context.Context) (*models.Contractor, error)
}

type contractorRepository struct {
	db *database.DB
}

// NewContractorRepository creates a new ContractorRepository backed by db.
func NewContractorRepository(db *database.DB) ContractorRepository {
	return &contractorRepository{db: db}
}

var _ ContractorRepository = (*contractorRepository)(nil)

func (r *contractorRepository) Latest(ctx context.Context) (*models.Contractor, error) {
	query := `
		SELECT id, name, company, phone, email, service_area, license, photo, bio, created_at
		FROM contractors
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	var c models.Contractor
	var serviceArea, license, photo, bio *string

	err := r.db.Pool.QueryRow(ctx, query).Scan(
		&c.ID,
		&c.Name,
		&c.Company,
		&c.Phone,
		&c.Email,
		&serviceArea,
		&license,
		&photo,
		&bio,
		&c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query contractor: %w", err)
	}

	if serviceArea != nil {
		c.ServiceArea = *serviceArea
	}
	if license != nil {
		c.License = *license
	}
	if photo != nil {
		c.Photo = *photo
	}
	if bio != nil {
		c.Bio = *bio
	}

	return &c, nil
}
