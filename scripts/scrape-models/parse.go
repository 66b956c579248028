package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Model is one scraped appliance model.
type Model struct {
	Brand         string `json:"brand"`
	ModelNumber   string `json:"model_number"`
	ApplianceType string `json:"appliance_type"`
}

var (
	h1Pattern      = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	titlePattern   = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	tagPattern     = regexp.MustCompile(`<[^>]+>`)
	spacePattern   = regexp.MustCompile(`\s+`)
	headingPattern = regexp.MustCompile(`(?i)^(?:ALL\s+)?([A-Za-z0-9&]+)\s+(.+?)\s+MODELS$`)
	pageNumPattern = regexp.MustCompile(`[?&]n=(\d+)`)
)

// parseBrandAndType reads the brand and appliance type from the listing
// page heading, e.g. "ALL WHIRLPOOL DISHWASHER MODELS". The h1 is
// preferred; the title tag is the fallback.
func parseBrandAndType(html string) (string, string, bool) {
	for _, pattern := range []*regexp.Regexp{h1Pattern, titlePattern} {
		m := pattern.FindStringSubmatch(html)
		if m == nil {
			continue
		}
		text := tagPattern.ReplaceAllString(m[1], " ")
		text = strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))

		h := headingPattern.FindStringSubmatch(text)
		if h == nil {
			continue
		}
		brand, applianceType := h[1], h[2]
		// Shouting headings get title-cased, except short brand
		// initialisms like GE and LG.
		if isAllUpper(brand) && len(brand) > 2 {
			brand = titleWords(brand)
		}
		if isAllUpper(applianceType) {
			applianceType = titleWords(applianceType)
		}
		return brand, applianceType, true
	}
	return "", "", false
}

// parseModels extracts model numbers from listing links shaped like
// /Model-WDT780SAEM1-Whirlpool-Dishwasher-Parts. Duplicates within the
// page are dropped.
func parseModels(html, brand string) []string {
	pattern := regexp.MustCompile(`(?i)/Model-([A-Za-z0-9-]+?)-` + regexp.QuoteMeta(brand) + `-`)

	var models []string
	seen := map[string]bool{}
	for _, m := range pattern.FindAllStringSubmatch(html, -1) {
		model := strings.ToUpper(m[1])
		if seen[model] {
			continue
		}
		seen[model] = true
		models = append(models, model)
	}
	return models
}

// findTotalPages returns the highest page number referenced by the
// pagination links, or 1 when the listing fits on a single page.
func findTotalPages(html string) int {
	total := 1
	for _, m := range pageNumPattern.FindAllStringSubmatch(html, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > total {
			total = n
		}
	}
	return total
}

// buildPageURL appends the page number parameter to the listing URL.
func buildPageURL(base string, page int) string {
	if page <= 1 {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sn=%d", base, sep, page)
}

func isAllUpper(s string) bool {
	return s != strings.ToLower(s) && s == strings.ToUpper(s)
}

func titleWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
