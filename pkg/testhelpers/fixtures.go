// Package testhelpers provides utilities for testing consumables-engine components.
package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/applianceiq/consumables-engine/pkg/database"
)

// catalogFixture mirrors the shape of testdata/catalog.yaml.
type catalogFixture struct {
	Brands      []string            `yaml:"brands"`
	Categories  []string            `yaml:"categories"`
	Consumables []fixtureConsumable `yaml:"consumables"`
	Models      []fixtureModel      `yaml:"models"`
}

type fixtureConsumable struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	SKU         string `yaml:"sku"`
	ASIN        string `yaml:"asin"`
	PurchaseURL string `yaml:"purchase_url"`
}

type fixtureModel struct {
	ModelNumber string        `yaml:"model_number"`
	Brand       string        `yaml:"brand"`
	Category    string        `yaml:"category"`
	Consumables []fixtureLink `yaml:"consumables"`
}

type fixtureLink struct {
	SKU   string `yaml:"sku"`
	Notes string `yaml:"notes"`
}

var (
	seedCatalogOnce sync.Once
	seedCatalogErr  error
)

// SeedCatalog loads testdata/catalog.yaml into the shared test database.
// Seeding happens once per run; tests treat the fixture rows as read-only
// and clean up any rows they add themselves.
func SeedCatalog(t *testing.T, db *database.DB) {
	t.Helper()

	seedCatalogOnce.Do(func() {
		seedCatalogErr = seedCatalog(db)
	})

	if seedCatalogErr != nil {
		t.Fatalf("Failed to seed catalog fixture: %v", seedCatalogErr)
	}
}

func seedCatalog(db *database.DB) error {
	ctx := context.Background()

	data, err := os.ReadFile(fixturePath("catalog.yaml"))
	if err != nil {
		return fmt.Errorf("failed to read catalog fixture: %w", err)
	}

	var fixture catalogFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return fmt.Errorf("failed to parse catalog fixture: %w", err)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin fixture transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback on defer is best-effort

	brandIDs := map[string]int64{}
	for _, name := range fixture.Brands {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO brands (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, name).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to seed brand %q: %w", name, err)
		}
		brandIDs[name] = id
	}

	categoryIDs := map[string]int64{}
	for _, name := range fixture.Categories {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO categories (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, name).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
		categoryIDs[name] = id
	}

	consumableIDs := map[string]int64{}
	for _, c := range fixture.Consumables {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO consumables (name, type, sku, asin, purchase_url)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`,
			c.Name, c.Type, nullable(c.SKU), nullable(c.ASIN), nullable(c.PurchaseURL)).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to seed consumable %q: %w", c.Name, err)
		}
		consumableIDs[c.SKU] = id
	}

	for _, m := range fixture.Models {
		brandID, ok := brandIDs[m.Brand]
		if !ok {
			return fmt.Errorf("fixture model %s references unknown brand %q", m.ModelNumber, m.Brand)
		}
		categoryID, ok := categoryIDs[m.Category]
		if !ok {
			return fmt.Errorf("fixture model %s references unknown category %q", m.ModelNumber, m.Category)
		}

		var modelID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO models (brand_id, category_id, model_number)
			VALUES ($1, $2, $3)
			ON CONFLICT (brand_id, category_id, model_number) DO UPDATE SET model_number = EXCLUDED.model_number
			RETURNING id`, brandID, categoryID, m.ModelNumber).Scan(&modelID)
		if err != nil {
			return fmt.Errorf("failed to seed model %q: %w", m.ModelNumber, err)
		}

		for _, link := range m.Consumables {
			consumableID, ok := consumableIDs[link.SKU]
			if !ok {
				return fmt.Errorf("fixture model %s references unknown consumable sku %q", m.ModelNumber, link.SKU)
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO model_consumables (model_id, consumable_id, notes)
				VALUES ($1, $2, $3)
				ON CONFLICT (model_id, consumable_id) DO NOTHING`,
				modelID, consumableID, nullable(link.Notes))
			if err != nil {
				return fmt.Errorf("failed to link %s to %s: %w", m.ModelNumber, link.SKU, err)
			}
		}
	}

	return tx.Commit(ctx)
}

// nullable maps empty strings to NULL for optional text columns.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fixturePath(name string) string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "testdata", name)
}
