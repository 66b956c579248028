// load-catalog loads appliance models and consumables into Postgres.
//
// The input is the appliances.json export produced by import-appliances:
// a list of models, each carrying its brand, category, and consumables.
// Contractor data can be loaded from a separate contractor.json; each run
// appends a new contractor row, and the API serves the most recent one.
//
// Usage: go run ./scripts/load-catalog --input appliances.json [--contractor contractor.json]
//
// Database connection: --database-url, DATABASE_URL, or standard PG*
// environment variables (a .env file is honored when present).
//
// Flags:
//
//	-input          Path to appliances.json (optional if only loading contractor data)
//	-contractor     Path to contractor.json (optional)
//	-database-url   Postgres connection string (default: DATABASE_URL env var)
//	-batch-size     Rows per insert batch (default: 1000)
//	-truncate       Truncate catalog tables before loading
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	input := flag.String("input", "", "Path to appliances.json (optional if only loading contractor data)")
	contractorPath := flag.String("contractor", "", "Path to contractor.json (optional)")
	databaseURL := flag.String("database-url", os.Getenv("DATABASE_URL"), "Postgres connection string (defaults to DATABASE_URL env var)")
	batchSize := flag.Int("batch-size", 1000, "Rows per insert batch")
	truncate := flag.Bool("truncate", false, "Truncate catalog tables before loading")
	flag.Parse()

	if *input == "" && *contractorPath == "" {
		fmt.Fprintln(os.Stderr, "Provide -input and/or -contractor.")
		os.Exit(1)
	}
	if *batchSize <= 0 {
		fmt.Fprintln(os.Stderr, "-batch-size must be positive.")
		os.Exit(1)
	}

	var appliances []Appliance
	if *input != "" {
		var err error
		appliances, err = loadAppliances(*input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	var contractor *ContractorJSON
	if *contractorPath != "" {
		var err error
		contractor, err = loadContractor(*contractorPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()

	conn, err := pgx.Connect(ctx, connString(*databaseURL))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	counts, err := loadCatalog(ctx, conn, appliances, contractor, *batchSize, *truncate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded brands=%d categories=%d models=%d consumables=%d links=%d contractors=%d\n",
		counts.brands, counts.categories, counts.models, counts.consumables, counts.links, counts.contractors)
}

type loadCounts struct {
	brands      int
	categories  int
	models      int
	consumables int
	links       int
	contractors int
}

type modelRow struct {
	brandID     int64
	categoryID  int64
	modelNumber string
}

type linkRow struct {
	modelID      int64
	consumableID int64
	notes        *string
}

func loadCatalog(ctx context.Context, conn *pgx.Conn, appliances []Appliance, contractor *ContractorJSON, batchSize int, truncate bool) (*loadCounts, error) {
	brands, categories, consumables := collectCatalog(appliances)
	counts := &loadCounts{brands: len(brands), categories: len(categories)}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback on defer is best-effort

	if truncate {
		_, err := tx.Exec(ctx,
			"TRUNCATE model_consumables, models, consumables, brands, categories, contractors RESTART IDENTITY CASCADE")
		if err != nil {
			return nil, fmt.Errorf("failed to truncate tables: %w", err)
		}
	}

	if err := execBatched(ctx, tx, batchSize, brands, func(batch *pgx.Batch, name string) {
		batch.Queue("INSERT INTO brands (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name)
	}); err != nil {
		return nil, fmt.Errorf("failed to insert brands: %w", err)
	}

	if err := execBatched(ctx, tx, batchSize, categories, func(batch *pgx.Batch, name string) {
		batch.Queue("INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name)
	}); err != nil {
		return nil, fmt.Errorf("failed to insert categories: %w", err)
	}

	brandMap, err := selectNameMap(ctx, tx, "SELECT id, name FROM brands")
	if err != nil {
		return nil, fmt.Errorf("failed to read brands: %w", err)
	}
	categoryMap, err := selectNameMap(ctx, tx, "SELECT id, name FROM categories")
	if err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	// Upsert consumables. An existing purchase_url is kept so hand-curated
	// links survive reloads.
	consumableRows := make([]consumableRecord, 0, len(consumables))
	for _, row := range consumables {
		if row.Name == "" || row.Type == "" {
			continue
		}
		consumableRows = append(consumableRows, row)
	}
	counts.consumables = len(consumableRows)

	if err := execBatched(ctx, tx, batchSize, consumableRows, func(batch *pgx.Batch, row consumableRecord) {
		batch.Queue(`
			INSERT INTO consumables (name, type, sku, purchase_url)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (sku) DO UPDATE SET
				name = EXCLUDED.name,
				type = EXCLUDED.type,
				purchase_url = COALESCE(consumables.purchase_url, EXCLUDED.purchase_url)`,
			row.Name, row.Type, nullable(row.SKU), nullable(row.PurchaseURL))
	}); err != nil {
		return nil, fmt.Errorf("failed to insert consumables: %w", err)
	}

	consumableMap, err := selectConsumableMap(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to read consumables: %w", err)
	}

	modelRows := buildModelRows(appliances, brandMap, categoryMap)
	counts.models = len(modelRows)

	if err := execBatched(ctx, tx, batchSize, modelRows, func(batch *pgx.Batch, row modelRow) {
		batch.Queue(`
			INSERT INTO models (brand_id, category_id, model_number)
			VALUES ($1, $2, $3)
			ON CONFLICT (brand_id, category_id, model_number) DO NOTHING`,
			row.brandID, row.categoryID, row.modelNumber)
	}); err != nil {
		return nil, fmt.Errorf("failed to insert models: %w", err)
	}

	modelMap, err := selectModelMap(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to read models: %w", err)
	}

	linkRows := buildLinkRows(appliances, brandMap, categoryMap, modelMap, consumableMap)
	counts.links = len(linkRows)

	if err := execBatched(ctx, tx, batchSize, linkRows, func(batch *pgx.Batch, row linkRow) {
		batch.Queue(`
			INSERT INTO model_consumables (model_id, consumable_id, notes)
			VALUES ($1, $2, $3)
			ON CONFLICT (model_id, consumable_id) DO NOTHING`,
			row.modelID, row.consumableID, row.notes)
	}); err != nil {
		return nil, fmt.Errorf("failed to insert links: %w", err)
	}

	if contractor != nil {
		_, err := tx.Exec(ctx, `
			INSERT INTO contractors (name, company, phone, email, service_area, license, photo, bio)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			contractor.Name, contractor.Company, contractor.Phone, contractor.Email,
			nullable(contractor.ServiceArea), nullable(contractor.License),
			nullable(contractor.Photo), nullable(contractor.Bio))
		if err != nil {
			return nil, fmt.Errorf("failed to insert contractor: %w", err)
		}
		counts.contractors = 1
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return counts, nil
}

// buildModelRows resolves each appliance to (brand_id, category_id, model)
// and drops duplicates and rows with unknown brands or categories.
func buildModelRows(appliances []Appliance, brandMap, categoryMap map[string]int64) []modelRow {
	var rows []modelRow
	seen := map[modelRow]bool{}
	for _, item := range appliances {
		row, ok := resolveModel(item, brandMap, categoryMap)
		if !ok || seen[row] {
			continue
		}
		seen[row] = true
		rows = append(rows, row)
	}
	return rows
}

func buildLinkRows(appliances []Appliance, brandMap, categoryMap map[string]int64, modelMap map[modelRow]int64, consumableMap map[string]int64) []linkRow {
	var rows []linkRow
	seen := map[[2]int64]bool{}
	for _, item := range appliances {
		model, ok := resolveModel(item, brandMap, categoryMap)
		if !ok {
			continue
		}
		modelID, ok := modelMap[model]
		if !ok {
			continue
		}
		for _, c := range item.Consumables {
			consumableID, ok := consumableMap[consumableKey(c.Name, c.Type, c.SKU.String())]
			if !ok {
				continue
			}
			key := [2]int64{modelID, consumableID}
			if seen[key] {
				continue
			}
			seen[key] = true
			rows = append(rows, linkRow{
				modelID:      modelID,
				consumableID: consumableID,
				notes:        nullable(strings.TrimSpace(c.Notes)),
			})
		}
	}
	return rows
}

func resolveModel(item Appliance, brandMap, categoryMap map[string]int64) (modelRow, bool) {
	brand := strings.TrimSpace(item.Brand)
	category := strings.TrimSpace(item.Category)
	modelNumber := strings.TrimSpace(item.Model)
	if brand == "" || category == "" || modelNumber == "" {
		return modelRow{}, false
	}
	brandID, ok := brandMap[brand]
	if !ok {
		return modelRow{}, false
	}
	categoryID, ok := categoryMap[category]
	if !ok {
		return modelRow{}, false
	}
	return modelRow{brandID: brandID, categoryID: categoryID, modelNumber: modelNumber}, true
}

// execBatched queues one statement per item and sends them in chunks.
func execBatched[T any](ctx context.Context, tx pgx.Tx, batchSize int, items []T, queue func(*pgx.Batch, T)) error {
	for chunk := range slices.Chunk(items, batchSize) {
		batch := &pgx.Batch{}
		for _, item := range chunk {
			queue(batch, item)
		}
		br := tx.SendBatch(ctx, batch)
		for range chunk {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return err
			}
		}
		if err := br.Close(); err != nil {
			return err
		}
	}
	return nil
}

func selectNameMap(ctx context.Context, tx pgx.Tx, query string) (map[string]int64, error) {
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[string]int64{}
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		result[name] = id
	}
	return result, rows.Err()
}

func selectConsumableMap(ctx context.Context, tx pgx.Tx) (map[string]int64, error) {
	rows, err := tx.Query(ctx, "SELECT id, sku, name, type FROM consumables")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[string]int64{}
	for rows.Next() {
		var id int64
		var sku, name, ctype *string
		if err := rows.Scan(&id, &sku, &name, &ctype); err != nil {
			return nil, err
		}
		key := consumableKey(deref(name), deref(ctype), deref(sku))
		if _, exists := result[key]; !exists {
			result[key] = id
		}
	}
	return result, rows.Err()
}

func selectModelMap(ctx context.Context, tx pgx.Tx) (map[modelRow]int64, error) {
	rows, err := tx.Query(ctx, "SELECT id, brand_id, category_id, model_number FROM models")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[modelRow]int64{}
	for rows.Next() {
		var id int64
		var row modelRow
		if err := rows.Scan(&id, &row.brandID, &row.categoryID, &row.modelNumber); err != nil {
			return nil, err
		}
		result[row] = id
	}
	return result, rows.Err()
}

// connString prefers an explicit URL and falls back to PG* environment
// variables.
func connString(databaseURL string) string {
	if databaseURL != "" {
		return databaseURL
	}
	host := getEnvOrDefault("PGHOST", "localhost")
	port := getEnvOrDefault("PGPORT", "5432")
	user := getEnvOrDefault("PGUSER", "postgres")
	password := os.Getenv("PGPASSWORD")
	dbname := getEnvOrDefault("PGDATABASE", "consumables_engine")
	sslmode := getEnvOrDefault("PGSSLMODE", "disable")

	connStr := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s",
		host, port, user, dbname, sslmode)
	if password != "" {
		connStr += fmt.Sprintf(" password=%s", password)
	}
	return connStr
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
