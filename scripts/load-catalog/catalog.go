package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/applianceiq/consumables-engine/pkg/jsonutil"
)

// Appliance is one entry of the appliances.json export: a model with the
// consumables known to fit it.
type Appliance struct {
	Model       string           `json:"model"`
	Brand       string           `json:"brand"`
	Category    string           `json:"category"`
	Consumables []ConsumableJSON `json:"consumables"`
}

// ConsumableJSON is a consumable as it appears in the export. SKU uses
// FlexibleString because scraped feeds sometimes carry numeric SKUs.
type ConsumableJSON struct {
	Name        string                  `json:"name"`
	Type        string                  `json:"type"`
	SKU         jsonutil.FlexibleString `json:"sku"`
	PurchaseURL string                  `json:"purchase_url"`
	Notes       string                  `json:"notes"`
}

// ContractorJSON mirrors contractor.json.
type ContractorJSON struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	ServiceArea string `json:"service_area"`
	License     string `json:"license"`
	Photo       string `json:"photo"`
	Bio         string `json:"bio"`
}

// consumableRecord is a deduplicated consumable ready for insertion.
type consumableRecord struct {
	Name        string
	Type        string
	SKU         string
	PurchaseURL string
}

func loadAppliances(path string) ([]Appliance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var appliances []Appliance
	if err := json.Unmarshal(data, &appliances); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return appliances, nil
}

func loadContractor(path string) (*ContractorJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var contractor ContractorJSON
	if err := json.Unmarshal(data, &contractor); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &contractor, nil
}

func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// consumableKey identifies a consumable across feed entries: by SKU when one
// exists, otherwise by normalized name and type.
func consumableKey(name, ctype, sku string) string {
	if key := normalizeKey(sku); key != "" {
		return "sku:" + key
	}
	return "name:" + normalizeKey(name) + "|type:" + normalizeKey(ctype)
}

// collectCatalog walks the feed and produces deduplicated brands, categories,
// and consumables. First occurrence wins for consumables sharing a key.
func collectCatalog(appliances []Appliance) (brands, categories []string, consumables map[string]consumableRecord) {
	brandSet := map[string]bool{}
	categorySet := map[string]bool{}
	consumables = map[string]consumableRecord{}

	for _, item := range appliances {
		if brand := strings.TrimSpace(item.Brand); brand != "" {
			brandSet[brand] = true
		}
		if category := strings.TrimSpace(item.Category); category != "" {
			categorySet[category] = true
		}
		for _, c := range item.Consumables {
			key := consumableKey(c.Name, c.Type, c.SKU.String())
			if _, seen := consumables[key]; seen {
				continue
			}
			consumables[key] = consumableRecord{
				Name:        strings.TrimSpace(c.Name),
				Type:        strings.TrimSpace(c.Type),
				SKU:         strings.TrimSpace(c.SKU.String()),
				PurchaseURL: strings.TrimSpace(c.PurchaseURL),
			}
		}
	}

	for brand := range brandSet {
		brands = append(brands, brand)
	}
	for category := range categorySet {
		categories = append(categories, category)
	}
	sort.Strings(brands)
	sort.Strings(categories)
	return brands, categories, consumables
}
