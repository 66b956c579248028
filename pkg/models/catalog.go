package models

// Brand represents an appliance manufacturer.
// Stored in brands table, unique by name.
type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Category represents an appliance category (e.g. "Refrigerator").
// Stored in categories table, unique by name.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Model represents one appliance model under a brand and category.
// Stored in models table; model_number uniqueness is scoped to
// (brand_id, category_id) so the same string may recur elsewhere.
// Matching is always over the lowercased model_number.
type Model struct {
	ID                 int64  `json:"id"`
	BrandID            int64  `json:"brand_id"`
	CategoryID         int64  `json:"category_id"`
	ModelNumber        string `json:"model_number"`
	WaterFilterMissing bool   `json:"water_filter_missing"`
}

// Consumable represents a replaceable part (filter, bulb, etc.).
// Stored in consumables table. ASIN and SKU are each optionally unique
// marketplace identifiers; a consumable may lack either.
type Consumable struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	ASIN        string `json:"asin,omitempty"`
	SKU         string `json:"sku,omitempty"`
	PurchaseURL string `json:"purchase_url,omitempty"`
}

// ConsumableEntry is a consumable as presented within a search result,
// carrying the per-pairing notes from model_consumables.
type ConsumableEntry struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	SKU         string `json:"sku,omitempty"`
	ASIN        string `json:"asin,omitempty"`
	PurchaseURL string `json:"purchase_url,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// ApplianceResult is one search hit: a model with its consumables, grouped
// so each matching model appears exactly once.
type ApplianceResult struct {
	Model       string            `json:"model"`
	Brand       string            `json:"brand"`
	Category    string            `json:"category"`
	Consumables []ConsumableEntry `json:"consumables"`
}

// Suggestion is one autocomplete candidate. Models sharing a model_number
// under different brand/category each appear as their own suggestion.
type Suggestion struct {
	ModelNumber string `json:"model_number"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
}

// BrandGroup groups a brand's appliances within a category listing.
type BrandGroup struct {
	Brand      string            `json:"brand"`
	Appliances []ApplianceResult `json:"appliances"`
}

// CategoryGroup is one entry of the category browse listing:
// a category with its brands and their appliances, all sorted by name.
type CategoryGroup struct {
	Category string       `json:"category"`
	Brands   []BrandGroup `json:"brands"`
}
