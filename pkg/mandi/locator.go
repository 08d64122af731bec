package mandi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"agri-assist-be/pkg/llm"
	"agri-assist-be/pkg/nlu"
)

// LocationUnknown is the sentinel for a city the model could not place.
const LocationUnknown = "Unknown"

// Locator resolves an Indian city to its state and district using the LLM.
type Locator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewLocator(llmProvider llm.LLMProvider, logger *log.Logger) *Locator {
	return &Locator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

type locationResult struct {
	State    string `json:"state"`
	District string `json:"district"`
}

// Locate returns the (state, district) pair for a city. Any provider or
// parse failure maps both fields to LocationUnknown rather than erroring.
func (l *Locator) Locate(ctx context.Context, city string) (string, string) {
	prompt := fmt.Sprintf(`Given a city in India, identify its state and district in JSON format.
City: %s
Respond strictly as:
{
  "state": "<state>",
  "district": "<district>"
}`, city)

	response, err := l.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		l.logger.Printf("WARN: location lookup for %q failed: %v", city, err)
		return LocationUnknown, LocationUnknown
	}

	var result locationResult
	if err := json.Unmarshal([]byte(nlu.ExtractJSON(response)), &result); err != nil {
		l.logger.Printf("WARN: failed to parse location response for %q: %v", city, err)
		return LocationUnknown, LocationUnknown
	}

	if result.State == "" {
		result.State = LocationUnknown
	}
	if result.District == "" {
		result.District = LocationUnknown
	}
	return result.State, result.District
}
