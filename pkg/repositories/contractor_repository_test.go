//go:build integration

package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/applianceiq/consumables-engine/pkg/apperrors"
	"github.com/applianceiq/consumables-engine/pkg/testhelpers"
)

func setupContractorRepo(t *testing.T) (ContractorRepository, *testhelpers.TestDB) {
	t.Helper()
	testDB := testhelpers.GetTestDB(t)
	return NewContractorRepository(testDB.DB), testDB
}

func insertContractor(t *testing.T, testDB *testhelpers.TestDB, name string, ageInterval string) int64 {
	t.Helper()
	var id int64
	err := testDB.DB.Pool.QueryRow(context.Background(), `
		INSERT INTO contractors (name, company, phone, email, service_area, bio, created_at)
		VALUES ($1, 'Oakland Appliance Pros', '(510) 555-0199', 'dispatch@example.com',
			'East Bay', 'Factory-trained appliance technicians.', now() - $2::interval)
		RETURNING id`, name, ageInterval).Scan(&id)
	require.NoError(t, err, "Failed to insert test contractor")
	return id
}

func deleteContractors(testDB *testhelpers.TestDB, ids ...int64) {
	for _, id := range ids {
		_, _ = testDB.DB.Pool.Exec(context.Background(), "DELETE FROM contractors WHERE id = $1", id)
	}
}

func TestContractorRepository_Latest_ReturnsNewest(t *testing.T) {
	repo, testDB := setupContractorRepo(t)
	ctx := context.Background()

	oldID := insertContractor(t, testDB, "Old Profile", "2 days")
	newID := insertContractor(t, testDB, "Current Profile", "1 hour")
	defer deleteContractors(testDB, oldID, newID)

	contractor, err := repo.Latest(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Current Profile", contractor.Name)
	assert.Equal(t, "Oakland Appliance Pros", contractor.Company)
	assert.Equal(t, "(510) 555-0199", contractor.Phone)
	assert.Equal(t, "East Bay", contractor.ServiceArea)
	assert.Equal(t, "Factory-trained appliance technicians.", contractor.Bio)
	assert.False(t, contractor.CreatedAt.IsZero())
}

func TestContractorRepository_Latest_TieBreaksOnID(t *testing.T) {
	repo, testDB := setupContractorRepo(t)
	ctx := context.Background()

	// Identical timestamps, so the higher id (the later insert) wins
	var firstID, secondID int64
	err := testDB.DB.Pool.QueryRow(ctx, `
		INSERT INTO contractors (name, company, phone, email, created_at)
		VALUES ('First Insert', 'Test Co', '555-0101', 'first@example.com', '2026-01-15T08:00:00Z')
		RETURNING id`).Scan(&firstID)
	require.NoError(t, err)
	err = testDB.DB.Pool.QueryRow(ctx, `
		INSERT INTO contractors (name, company, phone, email, created_at)
		VALUES ('Second Insert', 'Test Co', '555-0102', 'second@example.com', '2026-01-15T08:00:00Z')
		RETURNING id`).Scan(&secondID)
	require.NoError(t, err)
	defer deleteContractors(testDB, firstID, secondID)

	contractor, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Second Insert", contractor.Name)
}

func TestContractorRepository_Latest_OptionalFieldsEmpty(t *testing.T) {
	repo, testDB := setupContractorRepo(t)
	ctx := context.Background()

	var id int64
	err := testDB.DB.Pool.QueryRow(ctx, `
		INSERT INTO contractors (name, company, phone, email)
		VALUES ('Minimal Profile', 'Test Co', '555-0103', 'minimal@example.com')
		RETURNING id`).Scan(&id)
	require.NoError(t, err)
	defer deleteContractors(testDB, id)

	contractor, err := repo.Latest(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Minimal Profile", contractor.Name)
	assert.Empty(t, contractor.ServiceArea)
	assert.Empty(t, contractor.License)
	assert.Empty(t, contractor.Photo)
	assert.Empty(t, contractor.Bio)
}

func TestContractorRepository_Latest_NotFound(t *testing.T) {
	repo, testDB := setupContractorRepo(t)
	ctx := context.Background()

	_, err := testDB.DB.Pool.Exec(ctx, "DELETE FROM contractors")
	require.NoError(t, err)

	_, err = repo.Latest(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "Empty table should map to ErrNotFound, got %v", err)
}
