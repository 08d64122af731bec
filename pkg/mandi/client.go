package mandi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// Agmarknet daily mandi price resource on data.gov.in.
	defaultResourceURL = "https://api.data.gov.in/resource/9ef84268-d588-465a-a308-a864a43d0070"
	recordLimit        = 100
)

// Price holds a rupee amount. The upstream dataset serves prices
// inconsistently as JSON strings or numbers, so decoding is lenient.
type Price int

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" || s == "NR" {
		*p = 0
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", s, err)
	}
	*p = Price(f)
	return nil
}

// Record is a single mandi price observation, verbatim from the provider.
type Record struct {
	State       string `json:"state"`
	District    string `json:"district"`
	Market      string `json:"market"`
	Commodity   string `json:"commodity"`
	Variety     string `json:"variety"`
	ArrivalDate string `json:"arrival_date"`
	MinPrice    Price  `json:"min_price"`
	MaxPrice    Price  `json:"max_price"`
	ModalPrice  Price  `json:"modal_price"`
}

type recordsResponse struct {
	Records []Record `json:"records"`
}

// Client fetches mandi price records from the data.gov.in resource API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

func NewClient(apiKey string, logger *log.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultResourceURL,
		client:  &http.Client{Timeout: 20 * time.Second},
		logger:  logger,
	}
}

// FetchRecords returns up to one page of records for the given commodity.
// Pass an empty commodity to fetch across all commodities. Non-200
// responses are logged and treated as an empty result set.
func (c *Client) FetchRecords(ctx context.Context, commodity string) ([]Record, error) {
	params := url.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(recordLimit))
	if commodity != "" {
		params.Set("filters[commodity]", commodity)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mandi price request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("WARN: mandi price API returned status %d", resp.StatusCode)
		return nil, nil
	}

	var result recordsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode mandi price response: %w", err)
	}
	return result.Records, nil
}

// ListCommodities returns the distinct commodity names in the current
// dataset page, sorted alphabetically.
func (c *Client) ListCommodities(ctx context.Context) ([]string, error) {
	records, err := c.FetchRecords(ctx, "")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	commodities := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.Commodity == "" {
			continue
		}
		if _, ok := seen[rec.Commodity]; ok {
			continue
		}
		seen[rec.Commodity] = struct{}{}
		commodities = append(commodities, rec.Commodity)
	}
	sort.Strings(commodities)
	return commodities, nil
}
