package main

import (
	"testing"
)

func TestAddAffiliateTag(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "appends with question mark",
			url:  "https://www.amazon.com/dp/B00UB016NC",
			want: "https://www.amazon.com/dp/B00UB016NC?tag=be3857-20",
		},
		{
			name: "appends with ampersand when query exists",
			url:  "https://www.amazon.com/dp/B00UB016NC?th=1",
			want: "https://www.amazon.com/dp/B00UB016NC?th=1&tag=be3857-20",
		},
		{
			name: "existing tag left alone",
			url:  "https://www.amazon.com/dp/B00UB016NC?tag=other-21",
			want: "https://www.amazon.com/dp/B00UB016NC?tag=other-21",
		},
		{
			name: "non-amazon url left alone",
			url:  "https://example.com/filters/B00UB016NC",
			want: "https://example.com/filters/B00UB016NC",
		},
		{
			name: "surrounding whitespace trimmed",
			url:  "  https://www.amazon.com/dp/B00UB016NC  ",
			want: "https://www.amazon.com/dp/B00UB016NC?tag=be3857-20",
		},
		{
			name: "empty url stays empty",
			url:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := addAffiliateTag(tt.url, "be3857-20"); got != tt.want {
				t.Errorf("addAffiliateTag(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestBuildAmazonProductURL(t *testing.T) {
	got := buildAmazonProductURL("B071WXS9SV", "be3857-20")
	want := "https://www.amazon.com/dp/B071WXS9SV?tag=be3857-20"
	if got != want {
		t.Errorf("buildAmazonProductURL = %q, want %q", got, want)
	}
}
