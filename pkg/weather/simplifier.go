package weather

import (
	"context"
	"fmt"
	"log"

	"agri-assist-be/pkg/llm"
)

// SimplificationFailedAnswer is returned when the advisory rewrite fails.
const SimplificationFailedAnswer = "Could not generate simplified forecast."

// Simplifier rewrites a raw forecast into plain advice for farmers.
type Simplifier struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewSimplifier(llmProvider llm.LLMProvider, logger *log.Logger) *Simplifier {
	return &Simplifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Simplify turns forecast text into farmer-friendly advice. Provider
// failures fall back to a fixed message rather than an error.
func (s *Simplifier) Simplify(ctx context.Context, city string, forecastText string) string {
	prompt := fmt.Sprintf(`You are an agricultural weather advisor helping Indian farmers understand weather forecasts.

Here is the forecast for %s:
%s

Summarize this forecast in simple and respectful words that a farmer can easily understand.
Explain how the weather will feel today and tomorrow, and whether it will be sunny, rainy, humid, or dry.
`, city, forecastText)

	response, err := s.llmProvider.Generate(ctx, prompt)
	if err != nil {
		s.logger.Printf("WARN: failed to simplify forecast: %v", err)
		return SimplificationFailedAnswer
	}
	return response
}
