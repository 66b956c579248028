// amazon-water-filters finds water filters for refrigerator models via
// the Amazon Product Advertising API and links them into the catalog.
//
// For each model in the target category the tool searches for
// "<model number> water filter", stores the best match as a consumable
// keyed by ASIN, and links it to the model with an explanatory note.
// Models with no usable result are flagged so later --only-missing runs
// leave them alone. A progress file keeps long runs resumable.
//
// Usage: go run ./scripts/amazon-water-filters --only-missing --require-filter
//
// Credentials come from AMAZON_PAAPI_ACCESS_KEY, AMAZON_PAAPI_SECRET_KEY,
// and AMAZON_ASSOCIATE_TAG (a .env file is honored when present). The
// endpoint host and region come from AMAZON_PAAPI_HOST and
// AMAZON_PAAPI_REGION.
//
// Flags:
//
//	-database-url    Postgres connection string (default: DATABASE_URL env var)
//	-access-key      PA-API access key (default: AMAZON_PAAPI_ACCESS_KEY)
//	-secret-key      PA-API secret key (default: AMAZON_PAAPI_SECRET_KEY)
//	-partner-tag     Associate tag (default: AMAZON_ASSOCIATE_TAG)
//	-marketplace     Marketplace domain (default: www.amazon.com)
//	-search-index    PA-API search index (default: Appliances)
//	-category        Category name to target (default: refrigerator)
//	-limit           Max models to process (default: 100)
//	-delay           Seconds between API calls (default: 1.0)
//	-only-missing    Only process models with no water filter link yet
//	-require-filter  Only accept items with "water" and "filter" in the title
//	-progress-file   Progress JSON path (default: exports/amazon_water_filters_progress.json)
//	-no-resume       Ignore an existing progress file
//	-retry-errors    Reprocess models that previously errored
//	-dry-run         Log results without writing to the database
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

const defaultAffiliateTag = "be3857-20"

func main() {
	_ = godotenv.Load()

	databaseURL := flag.String("database-url", os.Getenv("DATABASE_URL"), "Postgres connection string (defaults to DATABASE_URL env var)")
	accessKey := flag.String("access-key", os.Getenv("AMAZON_PAAPI_ACCESS_KEY"), "Amazon PA-API access key")
	secretKey := flag.String("secret-key", os.Getenv("AMAZON_PAAPI_SECRET_KEY"), "Amazon PA-API secret key")
	partnerTagFlag := flag.String("partner-tag", os.Getenv("AMAZON_ASSOCIATE_TAG"), "Amazon associate tag (defaults to AMAZON_ASSOCIATE_TAG)")
	marketplace := flag.String("marketplace", getEnvOrDefault("AMAZON_PAAPI_MARKETPLACE", "www.amazon.com"), "Marketplace domain")
	searchIndex := flag.String("search-index", getEnvOrDefault("AMAZON_PAAPI_SEARCH_INDEX", "Appliances"), "PA-API search index")
	category := flag.String("category", "refrigerator", "Category name to target")
	limit := flag.Int("limit", 100, "Max models to process")
	delay := flag.Float64("delay", 1.0, "Delay between API calls in seconds")
	onlyMissing := flag.Bool("only-missing", false, "Only process models with no existing water filter link")
	requireFilter := flag.Bool("require-filter", false, "Only accept items with 'water' and 'filter' in the title")
	progressPath := flag.String("progress-file", "exports/amazon_water_filters_progress.json", "JSON file used to track progress and resume runs")
	noResume := flag.Bool("no-resume", false, "Do not resume from an existing progress file")
	retryErrors := flag.Bool("retry-errors", false, "Reprocess models that previously errored in the progress file")
	dryRun := flag.Bool("dry-run", false, "Log results without writing to the database")
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required.")
		os.Exit(1)
	}
	if *accessKey == "" || *secretKey == "" {
		fmt.Fprintln(os.Stderr, "AMAZON_PAAPI_ACCESS_KEY and AMAZON_PAAPI_SECRET_KEY are required.")
		os.Exit(1)
	}
	partnerTag := *partnerTagFlag
	if partnerTag == "" {
		partnerTag = defaultAffiliateTag
	}

	ctx := context.Background()

	conn, err := pgx.Connect(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	client := newPaapiClient(paapiConfig{
		accessKey:   *accessKey,
		secretKey:   *secretKey,
		partnerTag:  partnerTag,
		host:        getEnvOrDefault("AMAZON_PAAPI_HOST", "webservices.amazon.com"),
		region:      getEnvOrDefault("AMAZON_PAAPI_REGION", "us-east-1"),
		marketplace: *marketplace,
	})

	resume := !*noResume
	progress := &progressFile{Models: map[string]progressEntry{}}
	if resume && *progressPath != "" {
		progress = loadProgress(*progressPath)
	}
	saveProgress := func() {
		if *progressPath == "" {
			return
		}
		if err := progress.save(*progressPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write progress file: %v\n", err)
		}
	}

	models, err := loadModels(ctx, conn, *category, *limit, *onlyMissing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d models (category=%s).\n", len(models), *category)

	limiter := rate.NewLimiter(rate.Every(time.Duration(*delay*float64(time.Second))), 1)

	processed, added, skipped := 0, 0, 0
	for _, model := range models {
		if resume && progress.shouldSkip(model.id, *retryErrors) {
			skipped++
			continue
		}
		processed++

		if err := limiter.Wait(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		items, err := client.searchItems(ctx, model.modelNumber+" water filter", *searchIndex)
		if err != nil {
			fmt.Printf("[%d/%d] ERROR %s: %v\n", processed, len(models), model.modelNumber, err)
			progress.update(model.id, progressEntry{
				ModelNumber: model.modelNumber,
				Brand:       model.brand,
				Status:      statusError,
				Message:     err.Error(),
			})
			saveProgress()
			continue
		}

		item := extractItem(items, *requireFilter)
		if item == nil {
			fmt.Printf("[%d/%d] SKIP %s: no match\n", processed, len(models), model.modelNumber)
			progress.update(model.id, progressEntry{
				ModelNumber: model.modelNumber,
				Brand:       model.brand,
				Status:      statusNoMatch,
			})
			if !*dryRun {
				if err := setWaterFilterMissing(ctx, conn, model.id, true); err != nil {
					fmt.Fprintf(os.Stderr, "%v\n", err)
					os.Exit(1)
				}
			}
			saveProgress()
			continue
		}

		title := item.ItemInfo.Title.DisplayValue
		if title == "" {
			title = "Water filter"
		}
		if item.ASIN == "" {
			fmt.Printf("[%d/%d] SKIP %s: missing ASIN\n", processed, len(models), model.modelNumber)
			progress.update(model.id, progressEntry{
				ModelNumber: model.modelNumber,
				Brand:       model.brand,
				Status:      statusMissingASIN,
				Title:       title,
			})
			if !*dryRun {
				if err := setWaterFilterMissing(ctx, conn, model.id, true); err != nil {
					fmt.Fprintf(os.Stderr, "%v\n", err)
					os.Exit(1)
				}
			}
			saveProgress()
			continue
		}

		purchaseURL := addAffiliateTag(item.DetailPageURL, partnerTag)
		if purchaseURL == "" {
			purchaseURL = buildAmazonProductURL(item.ASIN, partnerTag)
		}
		note := fmt.Sprintf("Auto-added from Amazon search for model %s.", model.modelNumber)

		if *dryRun {
			fmt.Printf("[%d/%d] DRY %s -> %s %s\n", processed, len(models), model.modelNumber, item.ASIN, title)
		} else {
			if err := storeFilter(ctx, conn, model.id, title, item.ASIN, purchaseURL, note); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
			added++
			fmt.Printf("[%d/%d] OK %s -> %s\n", processed, len(models), model.modelNumber, item.ASIN)
		}
		progress.update(model.id, progressEntry{
			ModelNumber: model.modelNumber,
			Brand:       model.brand,
			Status:      statusFound,
			ASIN:        item.ASIN,
			Title:       title,
			DetailURL:   item.DetailPageURL,
		})
		saveProgress()
	}

	fmt.Printf("Done. Processed=%d Added/Linked=%d Skipped=%d\n", processed, added, skipped)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
