package nlu

import (
	"context"
	"fmt"
	"log"
	"strings"

	"agri-assist-be/pkg/llm"
)

// Intent labels. Routing happens on these and nothing else; any model output
// outside the set is coerced to IntentUnknown at this boundary.
const (
	IntentWeather     = "weather"
	IntentMandiPrices = "mandi_prices"
	IntentSchemes     = "schemes"
	IntentAgriInfo    = "agriculture_info"
	IntentUnknown     = "unknown"
)

var validIntents = map[string]bool{
	IntentWeather:     true,
	IntentMandiPrices: true,
	IntentSchemes:     true,
	IntentAgriInfo:    true,
}

// Classifier performs pure LLM-based intent classification over a closed
// label set. The model is non-deterministic on borderline phrasing, so no
// result is ever cached.
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewClassifier(llmProvider llm.LLMProvider, logger *log.Logger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Classify maps a normalized (English) query to one of the intent labels.
// Model failure or an out-of-set response yields IntentUnknown, never an error.
func (c *Classifier) Classify(ctx context.Context, query string) string {
	prompt := c.buildPrompt(query)

	response, err := c.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		c.logger.Printf("[ERROR] Intent classification failed: %v", err)
		return IntentUnknown
	}

	intent := strings.ToLower(strings.TrimSpace(response))
	if !validIntents[intent] {
		c.logger.Printf("[WARN] Invalid intent %q, coercing to %q", intent, IntentUnknown)
		return IntentUnknown
	}

	c.logger.Printf("[INTENT] Classified: %s", intent)
	return intent
}

func (c *Classifier) buildPrompt(query string) string {
	var prompt strings.Builder

	prompt.WriteString("You are classifying user queries for an Indian agricultural assistant.\n")
	prompt.WriteString("Identify the single best intent from the following options:\n")
	prompt.WriteString("- weather: weather forecasts, temperature, rainfall, climate updates.\n")
	prompt.WriteString("- mandi_prices: crop prices, market rates, mandi rates.\n")
	prompt.WriteString("- schemes: government schemes, subsidies, financial benefits.\n")
	prompt.WriteString("- agriculture_info: crop care, farming advice, aquaculture, pest control, agricultural machinery, and farming techniques.\n\n")
	prompt.WriteString("Reply with only the intent word: 'weather', 'mandi_prices', 'schemes', or 'agriculture_info'. No explanation.\n\n")
	prompt.WriteString(fmt.Sprintf("User Query: %q\n", query))
	prompt.WriteString("Intent:")

	return prompt.String()
}
