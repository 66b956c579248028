package main

import (
	"testing"
)

func TestParseBrandAndType(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		brand   string
		appType string
		ok      bool
	}{
		{
			name:    "all caps heading",
			html:    `<html><h1 class="page-title">ALL WHIRLPOOL DISHWASHER MODELS</h1></html>`,
			brand:   "Whirlpool",
			appType: "Dishwasher",
			ok:      true,
		},
		{
			name:    "short brand stays upper",
			html:    `<h1>ALL GE REFRIGERATOR MODELS</h1>`,
			brand:   "GE",
			appType: "Refrigerator",
			ok:      true,
		},
		{
			name:    "multi word appliance type",
			html:    `<h1>ALL MAYTAG WASHING MACHINE MODELS</h1>`,
			brand:   "Maytag",
			appType: "Washing Machine",
			ok:      true,
		},
		{
			name:    "mixed case left alone",
			html:    `<h1>All Whirlpool Dishwasher Models</h1>`,
			brand:   "Whirlpool",
			appType: "Dishwasher",
			ok:      true,
		},
		{
			name:    "falls back to title tag",
			html:    `<head><title>ALL LG DRYER MODELS</title></head><body><h1>Welcome</h1></body>`,
			brand:   "LG",
			appType: "Dryer",
			ok:      true,
		},
		{
			name:    "nested markup inside heading",
			html:    `<h1><span>ALL</span> <b>WHIRLPOOL</b> DISHWASHER MODELS</h1>`,
			brand:   "Whirlpool",
			appType: "Dishwasher",
			ok:      true,
		},
		{
			name: "no heading at all",
			html: `<p>nothing useful here</p>`,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brand, appType, ok := parseBrandAndType(tt.html)
			if ok != tt.ok {
				t.Fatalf("parseBrandAndType ok = %v, want %v", ok, tt.ok)
			}
			if brand != tt.brand || appType != tt.appType {
				t.Errorf("parseBrandAndType = (%q, %q), want (%q, %q)", brand, appType, tt.brand, tt.appType)
			}
		})
	}
}

func TestParseModels(t *testing.T) {
	html := `
		<a href="/Model-WDT780SAEM1-Whirlpool-Dishwasher-Parts">WDT780SAEM1</a>
		<a href="/Model-WDT750SAHZ-Whirlpool-Dishwasher-Parts">WDT750SAHZ</a>
		<a href="/Model-wdt780saem1-whirlpool-dishwasher-parts">duplicate in lowercase</a>
		<a href="/Model-GNE27JSMSS-GE-Refrigerator-Parts">other brand</a>
	`

	models := parseModels(html, "Whirlpool")
	want := []string{"WDT780SAEM1", "WDT750SAHZ"}
	if len(models) != len(want) {
		t.Fatalf("got %d models %v, want %v", len(models), models, want)
	}
	for i, m := range want {
		if models[i] != m {
			t.Errorf("models[%d] = %q, want %q", i, models[i], m)
		}
	}
}

func TestParseModelsEscapesBrand(t *testing.T) {
	html := `<a href="/Model-ABC123-A.B-Dishwasher-Parts">odd brand</a><a href="/Model-XYZ9-AxB-Dishwasher-Parts">regex trap</a>`

	models := parseModels(html, "A.B")
	if len(models) != 1 || models[0] != "ABC123" {
		t.Errorf("brand should match literally, got %v", models)
	}
}

func TestFindTotalPages(t *testing.T) {
	tests := []struct {
		name string
		html string
		want int
	}{
		{
			name: "takes the highest page link",
			html: `<a href="?n=2">2</a> <a href="?n=3">3</a> <a href="/PartSearch/Models?brandId=3&n=17">last</a>`,
			want: 17,
		},
		{
			name: "no pagination",
			html: `<p>single page</p>`,
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findTotalPages(tt.html); got != tt.want {
				t.Errorf("findTotalPages = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildPageURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		page int
		want string
	}{
		{
			name: "first page is the base url",
			base: "https://example.com/list?brandId=3",
			page: 1,
			want: "https://example.com/list?brandId=3",
		},
		{
			name: "appends with ampersand when query exists",
			base: "https://example.com/list?brandId=3",
			page: 4,
			want: "https://example.com/list?brandId=3&n=4",
		},
		{
			name: "appends with question mark otherwise",
			base: "https://example.com/list",
			page: 2,
			want: "https://example.com/list?n=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildPageURL(tt.base, tt.page); got != tt.want {
				t.Errorf("buildPageURL(%q, %d) = %q, want %q", tt.base, tt.page, got, tt.want)
			}
		})
	}
}
