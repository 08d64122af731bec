package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"agri-assist-be/pkg/rag"
)

const (
	duckduckgoAPIURL  = "https://api.duckduckgo.com/"
	duckduckgoResults = 3
)

// DuckDuckGoSource retrieves instant-answer abstracts from the DuckDuckGo API.
// It needs no API key, which makes it a useful free-tier fallback source.
type DuckDuckGoSource struct {
	client *http.Client
}

func NewDuckDuckGoSource() *DuckDuckGoSource {
	return &DuckDuckGoSource{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *DuckDuckGoSource) Name() string {
	return "duckduckgo"
}

type duckduckgoTopic struct {
	Text     string `json:"Text"`
	FirstURL string `json:"FirstURL"`
}

type duckduckgoResponse struct {
	AbstractText   string            `json:"AbstractText"`
	AbstractSource string            `json:"AbstractSource"`
	AbstractURL    string            `json:"AbstractURL"`
	RelatedTopics  []duckduckgoTopic `json:"RelatedTopics"`
}

func (s *DuckDuckGoSource) Retrieve(ctx context.Context, query string) ([]rag.Document, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, duckduckgoAPIURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("duckduckgo error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result duckduckgoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode duckduckgo response: %w", err)
	}

	docs := make([]rag.Document, 0, duckduckgoResults)
	if result.AbstractText != "" {
		docs = append(docs, rag.Document{
			Content: result.AbstractText,
			Source:  s.Name(),
			Metadata: map[string]interface{}{
				"origin": result.AbstractSource,
				"url":    result.AbstractURL,
			},
		})
	}
	for _, topic := range result.RelatedTopics {
		if len(docs) >= duckduckgoResults {
			break
		}
		if topic.Text == "" {
			continue
		}
		docs = append(docs, rag.Document{
			Content: topic.Text,
			Source:  s.Name(),
			Metadata: map[string]interface{}{
				"url": topic.FirstURL,
			},
		})
	}
	return docs, nil
}
