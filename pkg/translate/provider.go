package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Provider is the raw translation backend contract
type Provider interface {
	// Detect returns the BCP-47 language code of the given text (e.g. "en", "hi")
	Detect(ctx context.Context, text string) (string, error)

	// Translate converts text into the target language
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// GoogleProvider talks to the Google Cloud Translation v2 REST API
type GoogleProvider struct {
	APIKey string
	Client *http.Client
}

var _ Provider = &GoogleProvider{}

func NewGoogleProvider(apiKey string) *GoogleProvider {
	return &GoogleProvider{
		APIKey: apiKey,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

type googleDetectResponse struct {
	Data struct {
		Detections [][]struct {
			Language string `json:"language"`
		} `json:"detections"`
	} `json:"data"`
}

type googleTranslateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

func (p *GoogleProvider) Detect(ctx context.Context, text string) (string, error) {
	form := url.Values{}
	form.Set("q", text)

	var res googleDetectResponse
	if err := p.post(ctx, "https://translation.googleapis.com/language/translate/v2/detect", form, &res); err != nil {
		return "", err
	}

	if len(res.Data.Detections) == 0 || len(res.Data.Detections[0]) == 0 {
		return "", fmt.Errorf("detect returned no languages")
	}

	return strings.ToLower(res.Data.Detections[0][0].Language), nil
}

func (p *GoogleProvider) Translate(ctx context.Context, text, targetLang string) (string, error) {
	form := url.Values{}
	form.Set("q", text)
	form.Set("target", targetLang)
	form.Set("format", "text")

	var res googleTranslateResponse
	if err := p.post(ctx, "https://translation.googleapis.com/language/translate/v2", form, &res); err != nil {
		return "", err
	}

	if len(res.Data.Translations) == 0 {
		return "", fmt.Errorf("translate returned no translations")
	}

	return res.Data.Translations[0].TranslatedText, nil
}

func (p *GoogleProvider) post(ctx context.Context, endpoint string, form url.Values, out interface{}) error {
	form.Set("key", p.APIKey)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("translation error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	return json.Unmarshal(bodyBytes, out)
}
