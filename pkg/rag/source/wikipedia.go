package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"agri-assist-be/pkg/rag"
)

const (
	wikipediaAPIURL  = "https://en.wikipedia.org/w/api.php"
	wikipediaResults = 3
)

// WikipediaSource retrieves article intro extracts from the MediaWiki API.
type WikipediaSource struct {
	client *http.Client
}

func NewWikipediaSource() *WikipediaSource {
	return &WikipediaSource{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *WikipediaSource) Name() string {
	return "wikipedia"
}

type wikipediaPage struct {
	PageId  int    `json:"pageid"`
	Title   string `json:"title"`
	Extract string `json:"extract"`
	Index   int    `json:"index"`
}

type wikipediaResponse struct {
	Query struct {
		Pages map[string]wikipediaPage `json:"pages"`
	} `json:"query"`
}

func (s *WikipediaSource) Retrieve(ctx context.Context, query string) ([]rag.Document, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("generator", "search")
	params.Set("gsrsearch", query)
	params.Set("gsrlimit", fmt.Sprintf("%d", wikipediaResults))
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wikipediaAPIURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("wikipedia error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result wikipediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode wikipedia response: %w", err)
	}

	// The pages map is unordered; the index field carries search rank.
	pages := make([]wikipediaPage, 0, len(result.Query.Pages))
	for _, p := range result.Query.Pages {
		if p.Extract != "" {
			pages = append(pages, p)
		}
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Index < pages[j].Index })

	docs := make([]rag.Document, 0, len(pages))
	for _, p := range pages {
		docs = append(docs, rag.Document{
			Content: p.Extract,
			Source:  s.Name(),
			Metadata: map[string]interface{}{
				"title": p.Title,
			},
		})
	}
	return docs, nil
}
