package main

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	contentEncoding = "amz-1.0"
	contentType     = "application/json; charset=utf-8"
	signingService  = "ProductAdvertisingAPI"
	searchTarget    = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.SearchItems"
	searchPath      = "/paapi5/searchitems"
	signedHeaders   = "content-encoding;content-type;host;x-amz-date;x-amz-target"
)

// paapiConfig carries the Product Advertising API credentials and
// endpoint settings.
type paapiConfig struct {
	accessKey   string
	secretKey   string
	partnerTag  string
	host        string
	region      string
	marketplace string
}

type paapiClient struct {
	httpClient *http.Client
	config     paapiConfig
	now        func() time.Time
}

func newPaapiClient(config paapiConfig) *paapiClient {
	return &paapiClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		config:     config,
		now:        time.Now,
	}
}

type searchRequest struct {
	Keywords    string   `json:"Keywords"`
	SearchIndex string   `json:"SearchIndex"`
	ItemCount   int      `json:"ItemCount"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
	Resources   []string `json:"Resources"`
}

type searchItem struct {
	ASIN          string `json:"ASIN"`
	DetailPageURL string `json:"DetailPageURL"`
	ItemInfo      struct {
		Title struct {
			DisplayValue string `json:"DisplayValue"`
		} `json:"Title"`
	} `json:"ItemInfo"`
}

type searchResponse struct {
	SearchResult struct {
		Items []searchItem `json:"Items"`
	} `json:"SearchResult"`
	Errors []struct {
		Code    string `json:"Code"`
		Message string `json:"Message"`
	} `json:"Errors"`
}

// searchItems runs a SearchItems call for the given keywords.
func (c *paapiClient) searchItems(ctx context.Context, keywords, searchIndex string) ([]searchItem, error) {
	payload, err := json.Marshal(searchRequest{
		Keywords:    keywords,
		SearchIndex: searchIndex,
		ItemCount:   5,
		PartnerTag:  c.config.partnerTag,
		PartnerType: "Associates",
		Marketplace: c.config.marketplace,
		Resources:   []string{"ItemInfo.Title", "Offers.Listings.Price"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	url := fmt.Sprintf("https://%s%s", c.config.host, searchPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	for name, value := range signedRequestHeaders(payload, c.config, c.now().UTC()) {
		if name == "Host" {
			req.Host = value
			continue
		}
		req.Header.Set(name, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response (status %d): %w", resp.StatusCode, err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("search failed: %s: %s", parsed.Errors[0].Code, parsed.Errors[0].Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed with status %d", resp.StatusCode)
	}
	return parsed.SearchResult.Items, nil
}

// signedRequestHeaders builds the SigV4 headers for a SearchItems call.
// The five signed headers are fixed; the signature covers them plus the
// payload hash.
func signedRequestHeaders(payload []byte, config paapiConfig, t time.Time) map[string]string {
	amzDate := t.Format("20060102T150405Z")
	dateStamp := t.Format("20060102")

	canonicalHeaders := fmt.Sprintf(
		"content-encoding:%s\ncontent-type:%s\nhost:%s\nx-amz-date:%s\nx-amz-target:%s\n",
		contentEncoding, contentType, config.host, amzDate, searchTarget)
	payloadHash := hexSHA256(payload)

	canonicalRequest := strings.Join([]string{
		http.MethodPost,
		searchPath,
		"",
		canonicalHeaders,
		signedHeaders,
		payloadHash,
	}, "\n")

	credentialScope := strings.Join([]string{dateStamp, config.region, signingService, "aws4_request"}, "/")
	stringToSign := strings.Join([]string{
		"AWS4-HMAC-SHA256",
		amzDate,
		credentialScope,
		hexSHA256([]byte(canonicalRequest)),
	}, "\n")

	key := hmacSHA256([]byte("AWS4"+config.secretKey), dateStamp)
	key = hmacSHA256(key, config.region)
	key = hmacSHA256(key, signingService)
	key = hmacSHA256(key, "aws4_request")
	signature := hex.EncodeToString(hmacSHA256(key, stringToSign))

	authorization := fmt.Sprintf("AWS4-HMAC-SHA256 Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		config.accessKey, credentialScope, signedHeaders, signature)

	return map[string]string{
		"Content-Encoding": contentEncoding,
		"Content-Type":     contentType,
		"Host":             config.host,
		"X-Amz-Date":       amzDate,
		"X-Amz-Target":     searchTarget,
		"Authorization":    authorization,
	}
}

func hexSHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func hmacSHA256(key []byte, message string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(message))
	return mac.Sum(nil)
}

// extractItem picks the result to use. Without the filter requirement
// the first item wins; with it, the first item whose title mentions
// both "water" and "filter".
func extractItem(items []searchItem, requireFilter bool) *searchItem {
	if len(items) == 0 {
		return nil
	}
	if !requireFilter {
		return &items[0]
	}
	for i := range items {
		title := strings.ToLower(items[i].ItemInfo.Title.DisplayValue)
		if strings.Contains(title, "water") && strings.Contains(title, "filter") {
			return &items[i]
		}
	}
	return nil
}
