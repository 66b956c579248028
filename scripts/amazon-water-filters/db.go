package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type catalogModel struct {
	id          int64
	modelNumber string
	brand       string
}

// loadModels returns models in the target category. With onlyMissing,
// models that already link a water filter consumable are excluded, as
// are models flagged water_filter_missing by an earlier run.
func loadModels(ctx context.Context, conn *pgx.Conn, category string, limit int, onlyMissing bool) ([]catalogModel, error) {
	query := `
		SELECT m.id, m.model_number, b.name
		FROM models m
		JOIN categories c ON m.category_id = c.id
		JOIN brands b ON m.brand_id = b.id
		WHERE LOWER(c.name) = LOWER($1)
		ORDER BY b.name, m.model_number
		LIMIT $2`
	if onlyMissing {
		query = `
		SELECT m.id, m.model_number, b.name
		FROM models m
		JOIN categories c ON m.category_id = c.id
		JOIN brands b ON m.brand_id = b.id
		LEFT JOIN model_consumables mc ON mc.model_id = m.id
		LEFT JOIN consumables cons ON cons.id = mc.consumable_id
			AND LOWER(cons.name) LIKE '%water filter%'
		WHERE LOWER(c.name) = LOWER($1)
			AND COALESCE(m.water_filter_missing, false) = false
		GROUP BY m.id, m.model_number, b.name
		HAVING COUNT(cons.id) = 0
		ORDER BY b.name, m.model_number
		LIMIT $2`
	}

	rows, err := conn.Query(ctx, query, category, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load models: %w", err)
	}
	defer rows.Close()

	var models []catalogModel
	for rows.Next() {
		var m catalogModel
		if err := rows.Scan(&m.id, &m.modelNumber, &m.brand); err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		models = append(models, m)
	}
	return models, rows.Err()
}

// storeFilter upserts the found consumable by ASIN, links it to the
// model, and clears the missing flag, all in one transaction. A fresh
// search result refreshes the stored purchase URL.
func storeFilter(ctx context.Context, conn *pgx.Conn, modelID int64, name, asin, purchaseURL, note string) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback on defer is best-effort

	var consumableID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO consumables (name, type, asin, sku, purchase_url)
		VALUES ($1, $2, $3, NULL, $4)
		ON CONFLICT (asin) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			purchase_url = COALESCE(EXCLUDED.purchase_url, consumables.purchase_url)
		RETURNING id`,
		name, "filter", asin, purchaseURL).Scan(&consumableID)
	if err != nil {
		return fmt.Errorf("failed to upsert consumable: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO model_consumables (model_id, consumable_id, notes)
		VALUES ($1, $2, $3)
		ON CONFLICT (model_id, consumable_id) DO NOTHING`,
		modelID, consumableID, note)
	if err != nil {
		return fmt.Errorf("failed to link consumable: %w", err)
	}

	_, err = tx.Exec(ctx, "UPDATE models SET water_filter_missing = false WHERE id = $1", modelID)
	if err != nil {
		return fmt.Errorf("failed to clear missing flag: %w", err)
	}
	return tx.Commit(ctx)
}

func setWaterFilterMissing(ctx context.Context, conn *pgx.Conn, modelID int64, missing bool) error {
	_, err := conn.Exec(ctx, "UPDATE models SET water_filter_missing = $1 WHERE id = $2", missing, modelID)
	if err != nil {
		return fmt.Errorf("failed to update missing flag: %w", err)
	}
	return nil
}
