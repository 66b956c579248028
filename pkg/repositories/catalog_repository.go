package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/applianceiq/consumables-engine/pkg/database"
	"github.com/applianceiq/consumables-engine/pkg/models"
)

// CatalogRepository provides data access for the appliance catalog.
// Queries that match on model numbers expect the query string already
// lowercased and trimmed by the caller.
type CatalogRepository interface {
	// SearchByModelNumber returns every model whose lowercased model number
	// contains the query as a substring, with consumables attached.
	SearchByModelNumber(ctx context.Context, query string) ([]*models.ApplianceResult, error)

	// SubstringSuggestions returns up to limit suggestions whose lowercased
	// model number contains the query as a substring.
	SubstringSuggestions(ctx context.Context, query string, limit int) ([]*models.Suggestion, error)

	// SimilaritySuggestions returns up to limit suggestions ranked by trigram
	// similarity against the query, excluding substring matches so the two
	// suggestion tiers never overlap.
	SimilaritySuggestions(ctx context.Context, query string, cutoff float64, limit int) ([]*models.Suggestion, error)

	// CategoryGroups returns the full catalog grouped by category and brand,
	// each level sorted by name.
	CategoryGroups(ctx context.Context) ([]*models.CategoryGroup, error)
}

type catalogRepository struct {
	db *database.DB
}

// NewCatalogRepository creates a new CatalogRepository backed by db.
func NewCatalogRepository(db *database.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

var _ CatalogRepository = (*catalogRepository)(nil)

// applianceColumns is the shared projection for queries that hydrate full
// appliance results. Consumable columns come from LEFT JOINs and may be NULL
// for models with no linked consumables.
const applianceColumns = `
	m.model_number, b.name, cat.name,
	c.name, c.type, c.sku, c.asin, c.purchase_url, mc.notes`

const applianceJoins = `
	FROM models m
	JOIN brands b ON b.id = m.brand_id
	JOIN categories cat ON cat.id = m.category_id
	LEFT JOIN model_consumables mc ON mc.model_id = m.id
	LEFT JOIN consumables c ON c.id = mc.consumable_id`

// ============================================================================
// Search
// ============================================================================

func (r *catalogRepository) SearchByModelNumber(ctx context.Context, query string) ([]*models.ApplianceResult, error) {
	sql := `
		SELECT` + applianceColumns + applianceJoins + `
		WHERE lower(m.model_number) LIKE $1
		ORDER BY m.model_number, b.name, cat.name, c.type, c.name`

	rows, err := r.db.Pool.Query(ctx, sql, likePattern(query))
	if err != nil {
		return nil, fmt.Errorf("failed to query models: %w", err)
	}
	defer rows.Close()

	return scanApplianceRows(rows)
}

// ============================================================================
// Suggestions
// ============================================================================

func (r *catalogRepository) SubstringSuggestions(ctx context.Context, query string, limit int) ([]*models.Suggestion, error) {
	sql := `
		SELECT m.model_number, b.name, cat.name
		FROM models m
		JOIN brands b ON b.id = m.brand_id
		JOIN categories cat ON cat.id = m.category_id
		WHERE lower(m.model_number) LIKE $1
		ORDER BY m.model_number, b.name, cat.name
		LIMIT $2`

	rows, err := r.db.Pool.Query(ctx, sql, likePattern(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query substring suggestions: %w", err)
	}
	defer rows.Close()

	return scanSuggestionRows(rows)
}

func (r *catalogRepository) SimilaritySuggestions(ctx context.Context, query string, cutoff float64, limit int) ([]*models.Suggestion, error) {
	// Substring matches are excluded here because the caller already has
	// them from SubstringSuggestions; ranking is by descending similarity
	// with model_number as the tiebreaker.
	sql := `
		SELECT m.model_number, b.name, cat.name
		FROM models m
		JOIN brands b ON b.id = m.brand_id
		JOIN categories cat ON cat.id = m.category_id
		WHERE similarity(lower(m.model_number), $1) >= $2
		  AND lower(m.model_number) NOT LIKE $3
		ORDER BY similarity(lower(m.model_number), $1) DESC, m.model_number, b.name, cat.name
		LIMIT $4`

	rows, err := r.db.Pool.Query(ctx, sql, query, cutoff, likePattern(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query similarity suggestions: %w", err)
	}
	defer rows.Close()

	return scanSuggestionRows(rows)
}

// ============================================================================
// Category Browse
// ============================================================================

func (r *catalogRepository) CategoryGroups(ctx context.Context) ([]*models.CategoryGroup, error) {
	sql := `
		SELECT` + applianceColumns + applianceJoins + `
		ORDER BY cat.name, b.name, m.model_number, c.type, c.name`

	rows, err := r.db.Pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	appliances, err := scanApplianceRows(rows)
	if err != nil {
		return nil, err
	}

	return groupByCategory(appliances), nil
}

// groupByCategory folds an ordered flat appliance list into the nested
// category -> brand -> appliances shape. Input must already be sorted by
// category then brand.
func groupByCategory(appliances []*models.ApplianceResult) []*models.CategoryGroup {
	groups := []*models.CategoryGroup{}

	for _, a := range appliances {
		if len(groups) == 0 || groups[len(groups)-1].Category != a.Category {
			groups = append(groups, &models.CategoryGroup{
				Category: a.Category,
				Brands:   []models.BrandGroup{},
			})
		}
		g := groups[len(groups)-1]

		if len(g.Brands) == 0 || g.Brands[len(g.Brands)-1].Brand != a.Brand {
			g.Brands = append(g.Brands, models.BrandGroup{
				Brand:      a.Brand,
				Appliances: []models.ApplianceResult{},
			})
		}
		bg := &g.Brands[len(g.Brands)-1]
		bg.Appliances = append(bg.Appliances, *a)
	}

	return groups
}

// ============================================================================
// Helper Functions
// ============================================================================

// scanApplianceRows groups the joined rows into one ApplianceResult per
// model. Rows must be ordered so that rows for the same model are adjacent.
func scanApplianceRows(rows pgx.Rows) ([]*models.ApplianceResult, error) {
	results := []*models.ApplianceResult{}
	var current *models.ApplianceResult

	for rows.Next() {
		var (
			modelNumber, brand, category       string
			cName, cType, sku, asin, url, note *string
		)
		if err := rows.Scan(&modelNumber, &brand, &category, &cName, &cType, &sku, &asin, &url, &note); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}

		if current == nil || current.Model != modelNumber || current.Brand != brand || current.Category != category {
			current = &models.ApplianceResult{
				Model:       modelNumber,
				Brand:       brand,
				Category:    category,
				Consumables: []models.ConsumableEntry{},
			}
			results = append(results, current)
		}

		// NULL consumable name means the model has no linked consumables.
		if cName == nil {
			continue
		}

		entry := models.ConsumableEntry{
			Name: *cName,
		}
		if cType != nil {
			entry.Type = *cType
		}
		if sku != nil {
			entry.SKU = *sku
		}
		if asin != nil {
			entry.ASIN = *asin
		}
		if url != nil {
			entry.PurchaseURL = *url
		}
		if note != nil {
			entry.Notes = *note
		}
		current.Consumables = append(current.Consumables, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog rows: %w", err)
	}

	return results, nil
}

func scanSuggestionRows(rows pgx.Rows) ([]*models.Suggestion, error) {
	suggestions := []*models.Suggestion{}
	for rows.Next() {
		var s models.Suggestion
		if err := rows.Scan(&s.ModelNumber, &s.Brand, &s.Category); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion row: %w", err)
		}
		suggestions = append(suggestions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating suggestion rows: %w", err)
	}

	return suggestions, nil
}

// likePattern wraps the query in wildcards for a containment match,
// escaping LIKE metacharacters so the query is always treated literally.
func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	return "%" + escaped + "%"
}
