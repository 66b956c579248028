package main

import (
	"fmt"
	"sort"
	"strings"
)

// Consumable is one part row from the CSV, attached to an appliance.
type Consumable struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	SKU         string `json:"sku"`
	Notes       string `json:"notes,omitempty"`
	PurchaseURL string `json:"purchase_url,omitempty"`
}

// Appliance groups the consumables of one model.
type Appliance struct {
	Model       string       `json:"model"`
	Brand       string       `json:"brand"`
	Category    string       `json:"category"`
	Consumables []Consumable `json:"consumables"`
}

var requiredColumns = []string{"model", "brand", "category", "consumable_name", "consumable_type", "sku"}

type applianceKey struct {
	model    string
	brand    string
	category string
}

// convertRows turns CSV records (header first) into grouped appliances.
// Rows missing the appliance identity or the consumable name/sku are
// skipped; rows sharing (model, brand, category) merge into one entry.
func convertRows(records [][]string) ([]Appliance, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("input has no header row")
	}

	columns := map[string]int{}
	for i, name := range records[0] {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	grouped := map[applianceKey]*Appliance{}
	var order []applianceKey

	for _, row := range records[1:] {
		get := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		key := applianceKey{model: get("model"), brand: get("brand"), category: get("category")}
		if key.model == "" || key.brand == "" || key.category == "" {
			continue
		}
		name := get("consumable_name")
		sku := get("sku")
		if name == "" || sku == "" {
			continue
		}

		appliance, ok := grouped[key]
		if !ok {
			appliance = &Appliance{Model: key.model, Brand: key.brand, Category: key.category}
			grouped[key] = appliance
			order = append(order, key)
		}
		appliance.Consumables = append(appliance.Consumables, Consumable{
			Name:        name,
			Type:        get("consumable_type"),
			SKU:         sku,
			Notes:       get("notes"),
			PurchaseURL: get("purchase_url"),
		})
	}

	appliances := make([]Appliance, 0, len(order))
	for _, key := range order {
		appliances = append(appliances, *grouped[key])
	}
	sort.Slice(appliances, func(i, j int) bool {
		if appliances[i].Category != appliances[j].Category {
			return appliances[i].Category < appliances[j].Category
		}
		if appliances[i].Brand != appliances[j].Brand {
			return appliances[i].Brand < appliances[j].Brand
		}
		return appliances[i].Model < appliances[j].Model
	})
	return appliances, nil
}
