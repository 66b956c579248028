//go:build integration

package migrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/applianceiq/consumables-engine/pkg/testhelpers"
)

// Test_003_Contractors verifies the contractors table shape: required
// contact fields, nullable profile fields, and a created_at default.
func Test_003_Contractors(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	ctx := context.Background()

	required := []string{"name", "company", "phone", "email"}
	for _, column := range required {
		var nullable string
		err := testDB.DB.Pool.QueryRow(ctx, `
			SELECT is_nullable FROM information_schema.columns
			WHERE table_name = 'contractors' AND column_name = $1`, column).Scan(&nullable)
		require.NoError(t, err, "Failed to query column %s", column)
		assert.Equal(t, "NO", nullable, "%s should be NOT NULL", column)
	}

	optional := []string{"service_area", "license", "photo", "bio"}
	for _, column := range optional {
		var nullable string
		err := testDB.DB.Pool.QueryRow(ctx, `
			SELECT is_nullable FROM information_schema.columns
			WHERE table_name = 'contractors' AND column_name = $1`, column).Scan(&nullable)
		require.NoError(t, err, "Failed to query column %s", column)
		assert.Equal(t, "YES", nullable, "%s should be nullable", column)
	}

	// created_at defaults to now() so the loader can append without timestamps
	var columnDefault string
	err := testDB.DB.Pool.QueryRow(ctx, `
		SELECT column_default FROM information_schema.columns
		WHERE table_name = 'contractors' AND column_name = 'created_at'`).Scan(&columnDefault)
	require.NoError(t, err, "Failed to query created_at default")
	assert.Contains(t, columnDefault, "now()", "created_at should default to now()")

	var id int64
	err = testDB.DB.Pool.QueryRow(ctx, `
		INSERT INTO contractors (name, company, phone, email)
		VALUES ('Migration Test', 'Test Co', '555-0100', 'migration@example.com')
		RETURNING id`).Scan(&id)
	require.NoError(t, err, "Insert without optional fields should succeed")

	defer func() {
		_, _ = testDB.DB.Pool.Exec(ctx, "DELETE FROM contractors WHERE id = $1", id)
	}()

	var createdAtSet bool
	err = testDB.DB.Pool.QueryRow(ctx,
		"SELECT created_at IS NOT NULL FROM contractors WHERE id = $1", id).Scan(&createdAtSet)
	require.NoError(t, err)
	assert.True(t, createdAtSet, "created_at should be populated by default")
}
