package main

import (
	"fmt"
	"strings"
)

// buildAmazonProductURL returns the canonical product page for an ASIN
// with the associate tag applied.
func buildAmazonProductURL(asin, tag string) string {
	return fmt.Sprintf("https://www.amazon.com/dp/%s?tag=%s", asin, tag)
}

// addAffiliateTag appends the associate tag to an Amazon URL. Non-Amazon
// URLs and URLs that already carry a tag pass through unchanged.
func addAffiliateTag(rawURL, tag string) string {
	cleaned := strings.TrimSpace(rawURL)
	if cleaned == "" {
		return ""
	}
	if !strings.Contains(cleaned, "amazon.") {
		return cleaned
	}
	if strings.Contains(cleaned, "tag=") {
		return cleaned
	}
	joiner := "?"
	if strings.Contains(cleaned, "?") {
		joiner = "&"
	}
	return cleaned + joiner + "tag=" + tag
}
