package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	forecastURL   = "https://api.openweathermap.org/data/2.5/forecast"
	forecastSlots = 8 // 8 x 3-hour slots = next 24 hours

	cacheTTL     = 10 * time.Minute
	cacheCleanup = 30 * time.Minute
)

// Client fetches 24-hour forecasts from OpenWeatherMap. Responses are
// cached per city so repeated queries within the TTL skip the provider.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	cache   *cache.Cache
	logger  *log.Logger
}

func NewClient(apiKey string, logger *log.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: forecastURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		cache:   cache.New(cacheTTL, cacheCleanup),
		logger:  logger,
	}
}

type forecastEntry struct {
	DtTxt   string `json:"dt_txt"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Rain struct {
		ThreeHour float64 `json:"3h"`
	} `json:"rain"`
}

type forecastResponse struct {
	Cod     json.Number     `json:"cod"`
	Message json.RawMessage `json:"message"`
	List    []forecastEntry `json:"list"`
}

// Forecast returns the next-24-hour forecast for a city as display text.
func (c *Client) Forecast(ctx context.Context, city string) (string, error) {
	cacheKey := strings.ToLower(strings.TrimSpace(city))
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(string), nil
	}

	c.logger.Printf("INFO: fetching forecast for city: %s", city)

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read weather response: %w", err)
	}

	var result forecastResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode weather response: %w", err)
	}

	// OpenWeatherMap signals errors in the body, not just the HTTP status.
	if result.Cod.String() != "200" {
		c.logger.Printf("WARN: could not fetch forecast for %s: %s", city, string(result.Message))
		return "", fmt.Errorf("could not fetch forecast for %s", city)
	}

	entries := result.List
	if len(entries) > forecastSlots {
		entries = entries[:forecastSlots]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Next 24-hour forecast for %s:\n", city)
	for _, entry := range entries {
		desc := ""
		if len(entry.Weather) > 0 {
			desc = entry.Weather[0].Description
		}
		fmt.Fprintf(&b, "\n%s:\n%s, Temp: %.1f°C, Humidity: %d%%, Rain (3h): %g mm",
			entry.DtTxt, desc, entry.Main.Temp, entry.Main.Humidity, entry.Rain.ThreeHour)
	}

	text := b.String()
	c.cache.Set(cacheKey, text, cache.DefaultExpiration)
	return text, nil
}
