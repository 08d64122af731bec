package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"agri-assist-be/pkg/llm"
)

// CityUnknown is the sentinel returned when no city could be extracted.
const CityUnknown = "unknown"

// EntitySet holds the structured fields pulled out of a mandi price query.
// An empty field means "not found" and must never be used as a lookup key.
type EntitySet struct {
	Crop     string `json:"crop"`
	Location string `json:"location"`
}

// Extractor pulls structured entities out of free-text queries via model
// calls with strict output instructions.
type Extractor struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewExtractor(llmProvider llm.LLMProvider, logger *log.Logger) *Extractor {
	return &Extractor{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// ExtractCity returns a bare city name, or CityUnknown when the model fails
// or answers with an empty/none-like response.
func (e *Extractor) ExtractCity(ctx context.Context, query string) string {
	var prompt strings.Builder
	prompt.WriteString("You are an assistant that extracts the Indian city name only from a user's query about weather.\n")
	prompt.WriteString("If no Indian city is found, reply with \"unknown\".\n")
	prompt.WriteString("Reply with the city name only, no explanation.\n")
	prompt.WriteString(fmt.Sprintf("User query: %q\n", query))
	prompt.WriteString("City name:")

	response, err := e.llmProvider.Generate(ctx, prompt.String(), llm.WithTemperature(0.0))
	if err != nil {
		e.logger.Printf("[ERROR] City extraction failed: %v", err)
		return CityUnknown
	}

	city := strings.TrimSpace(response)
	switch strings.ToLower(city) {
	case "", "none", "unknown", "null":
		e.logger.Printf("[WARN] Could not extract city from query: %s", query)
		return CityUnknown
	}

	return city
}

// ExtractCropLocation requests a two-field JSON response and soft-fails to an
// empty EntitySet on any model or parse error, so the caller can still run a
// degraded search.
func (e *Extractor) ExtractCropLocation(ctx context.Context, query string) EntitySet {
	var prompt strings.Builder
	prompt.WriteString("You are an assistant that extracts the crop name (singular form) and the location (Indian city or district) from a user's mandi price query.\n")
	prompt.WriteString("Crop names should be in singular form. For example, return \"tomato\" instead of \"tomatoes\".\n")
	prompt.WriteString("If either the crop or location is missing, leave it blank in the JSON.\n")
	prompt.WriteString("Reply only in this strict JSON format:\n")
	prompt.WriteString(`{ "crop": "<crop_name>", "location": "<location_name>" }` + "\n\n")
	prompt.WriteString(fmt.Sprintf("User query: %q\n", query))
	prompt.WriteString("JSON result:")

	response, err := e.llmProvider.Generate(ctx, prompt.String(), llm.WithTemperature(0.0))
	if err != nil {
		e.logger.Printf("[ERROR] Crop/location extraction failed: %v", err)
		return EntitySet{}
	}

	jsonContent := ExtractJSON(response)
	if jsonContent == "" {
		e.logger.Printf("[WARN] No JSON in extraction response: %s", response)
		return EntitySet{}
	}

	var entities EntitySet
	if err := json.Unmarshal([]byte(jsonContent), &entities); err != nil {
		e.logger.Printf("[WARN] Entity extraction parse failed: %v | Response: %s", err, response)
		return EntitySet{}
	}

	entities.Crop = singularize(strings.ToLower(strings.TrimSpace(entities.Crop)))
	entities.Location = strings.TrimSpace(entities.Location)

	return entities
}

// singularize trims a plural suffix from common crop names. The model is
// instructed to answer in singular form already; this only catches the cases
// where it doesn't.
func singularize(word string) string {
	switch {
	case strings.HasSuffix(word, "oes"):
		return strings.TrimSuffix(word, "es") // tomatoes -> tomato
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss"):
		return strings.TrimSuffix(word, "s")
	}
	return word
}

// ExtractJSON pulls the first {...} block out of a loosely formatted model
// response (models often wrap JSON in prose or markdown fences).
func ExtractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
