//go:build integration

package testhelpers

import (
	"context"
	"testing"
)

func TestCatalogTestDB_Connection(t *testing.T) {
	testDB := GetTestDB(t)

	ctx := context.Background()

	// Verify migrations created the catalog tables
	tables := []string{"brands", "categories", "models", "consumables", "model_consumables", "contractors"}
	for _, table := range tables {
		var exists bool
		err := testDB.DB.Pool.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = $1
			)`, table).Scan(&exists)
		if err != nil {
			t.Fatalf("failed to check table %s: %v", table, err)
		}
		if !exists {
			t.Errorf("expected table %s to exist after migrations", table)
		}
	}
}

func TestCatalogTestDB_TrigramExtension(t *testing.T) {
	testDB := GetTestDB(t)

	ctx := context.Background()

	var installed bool
	err := testDB.DB.Pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'pg_trgm')").
		Scan(&installed)
	if err != nil {
		t.Fatalf("failed to check pg_trgm extension: %v", err)
	}
	if !installed {
		t.Error("expected pg_trgm extension to be installed by migrations")
	}

	// similarity() must be callable for the fuzzy suggestion tier
	var score float64
	err = testDB.DB.Pool.QueryRow(ctx,
		"SELECT similarity('wdt780saem1', 'wdt780saem0')").Scan(&score)
	if err != nil {
		t.Fatalf("failed to call similarity(): %v", err)
	}
	if score <= 0 {
		t.Errorf("expected positive similarity score, got %f", score)
	}
}

func TestSeedCatalog_Idempotent(t *testing.T) {
	testDB := GetTestDB(t)
	SeedCatalog(t, testDB.DB)

	ctx := context.Background()

	var modelCount int
	err := testDB.DB.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM models").Scan(&modelCount)
	if err != nil {
		t.Fatalf("failed to count models: %v", err)
	}
	if modelCount < 6 {
		t.Errorf("expected at least 6 fixture models, got %d", modelCount)
	}

	// Re-running the underlying seed must not duplicate rows
	if err := seedCatalog(testDB.DB); err != nil {
		t.Fatalf("re-seeding failed: %v", err)
	}

	var afterCount int
	err = testDB.DB.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM models").Scan(&afterCount)
	if err != nil {
		t.Fatalf("failed to count models after re-seed: %v", err)
	}
	if afterCount != modelCount {
		t.Errorf("re-seeding changed model count from %d to %d", modelCount, afterCount)
	}
}
