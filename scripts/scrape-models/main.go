// scrape-models collects appliance model numbers from a parts-site brand
// listing and writes them as JSON for the catalog import pipeline.
//
// The listing pages link each model as /Model-<number>-<brand>-..., and
// the page heading names the brand and appliance type. Pagination is
// discovered from the n= query parameters on the page links.
//
// Usage: go run ./scripts/scrape-models --base-url <listing-url> --output models.json
//
// Flags:
//
//	-base-url  Brand listing URL to scrape
//	-pages     Total pages to scrape (default: auto-detect from page 1)
//	-output    Path for the models JSON (default: models.json)
//	-delay     Seconds to wait between page fetches (default: 0.25)
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/applianceiq/consumables-engine/pkg/retry"
)

const defaultListingURL = "https://www.whirlpoolparts.com/PartSearch/ProductBrandAllModels?brandId=3&productId=4"

func main() {
	listingURL := flag.String("base-url", defaultListingURL, "Brand listing URL to scrape")
	pages := flag.Int("pages", 0, "Total pages to scrape (0 = auto-detect from page 1)")
	output := flag.String("output", "models.json", "Path for the models JSON")
	delay := flag.Float64("delay", 0.25, "Seconds to wait between page fetches")
	flag.Parse()

	ctx := context.Background()
	scraper := newScraper(*delay)

	firstPage, err := scraper.fetch(ctx, *listingURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch %s: %v\n", *listingURL, err)
		os.Exit(1)
	}

	brand, applianceType, ok := parseBrandAndType(firstPage)
	if !ok {
		fmt.Fprintf(os.Stderr, "Could not determine brand and appliance type from %s\n", *listingURL)
		os.Exit(1)
	}

	totalPages := findTotalPages(firstPage)
	if *pages > 0 {
		totalPages = *pages
	}
	seen := map[string]bool{}
	collect := func(page int, html string) {
		models := parseModels(html, brand)
		for _, m := range models {
			seen[m] = true
		}
		fmt.Printf("Page %d/%d: %d models (total %d)\n", page, totalPages, len(models), len(seen))
	}
	collect(1, firstPage)

	for page := 2; page <= totalPages; page++ {
		pageURL := buildPageURL(*listingURL, page)
		html, err := scraper.fetch(ctx, pageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch %s: %v\n", pageURL, err)
			os.Exit(1)
		}
		collect(page, html)
	}

	numbers := make([]string, 0, len(seen))
	for m := range seen {
		numbers = append(numbers, m)
	}
	sort.Strings(numbers)

	models := make([]Model, 0, len(numbers))
	for _, n := range numbers {
		models = append(models, Model{Brand: brand, ModelNumber: n, ApplianceType: applianceType})
	}

	data, err := json.MarshalIndent(models, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode models: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *output, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d models to %s\n", len(models), *output)
}

type scraper struct {
	client  *http.Client
	limiter *rate.Limiter
}

func newScraper(delaySeconds float64) *scraper {
	interval := time.Duration(delaySeconds * float64(time.Second))
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &scraper{
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// fetch downloads one listing page, pacing requests and retrying
// transient failures with backoff.
func (s *scraper) fetch(ctx context.Context, pageURL string) (string, error) {
	cfg := &retry.Config{
		MaxRetries:   3,
		InitialDelay: time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.1,
	}
	return retry.DoWithResult(ctx, cfg, func() (string, error) {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}
		return s.fetchOnce(ctx, pageURL)
	})
}

func (s *scraper) fetchOnce(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	// The parts site rejects requests without browser-looking headers.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/117.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Referer", "https://www.whirlpoolparts.com/")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
