package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"agri-assist-be/pkg/rag"
)

const (
	tavilyAPIURL  = "https://api.tavily.com/search"
	tavilyResults = 3
)

// TavilySource retrieves web search results from the Tavily search API.
type TavilySource struct {
	apiKey string
	client *http.Client
}

func NewTavilySource(apiKey string) *TavilySource {
	return &TavilySource{
		apiKey: apiKey,
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

func (s *TavilySource) Name() string {
	return "tavily"
}

type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type tavilyResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type tavilyResponse struct {
	Results []tavilyResult `json:"results"`
}

func (s *TavilySource) Retrieve(ctx context.Context, query string) ([]rag.Document, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("tavily api key is not configured")
	}

	payload, err := json.Marshal(tavilyRequest{
		APIKey:      s.apiKey,
		Query:       query,
		MaxResults:  tavilyResults,
		SearchDepth: "basic",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilyAPIURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tavily error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode tavily response: %w", err)
	}

	docs := make([]rag.Document, 0, len(result.Results))
	for _, r := range result.Results {
		if r.Content == "" {
			continue
		}
		docs = append(docs, rag.Document{
			Content: r.Content,
			Source:  s.Name(),
			Metadata: map[string]interface{}{
				"title": r.Title,
				"url":   r.URL,
				"score": r.Score,
			},
		})
	}
	return docs, nil
}
