package rag

import (
	"context"
	"fmt"
	"log"
	"strings"

	"agri-assist-be/pkg/llm"
)

// MaxContextDocuments caps how many compressed documents reach the final
// prompt. Documents past the cap are dropped in pool order.
const MaxContextDocuments = 5

// GenerationFailedAnswer is returned when the final model call fails.
const GenerationFailedAnswer = "Sorry, I couldn't generate an answer."

// Generator produces the final answer from a bounded context window and the
// user's original question.
type Generator struct {
	llmProvider llm.LLMProvider
	persona     string
	logger      *log.Logger
}

// NewGenerator creates a generator. persona is the expert framing injected
// into the final prompt (e.g. "government schemes advisor for Indian farmers").
func NewGenerator(llmProvider llm.LLMProvider, persona string, logger *log.Logger) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		persona:     persona,
		logger:      logger,
	}
}

// Generate answers the ORIGINAL question from at most MaxContextDocuments
// compressed documents. A model failure yields the fixed apology answer,
// never an error.
func (g *Generator) Generate(ctx context.Context, docs []Document, question string) string {
	bounded := docs
	if len(bounded) > MaxContextDocuments {
		bounded = bounded[:MaxContextDocuments]
	}

	contents := make([]string, len(bounded))
	for i, doc := range bounded {
		contents[i] = doc.Content
	}
	contextBlock := strings.Join(contents, "\n\n")

	prompt := g.buildPrompt(contextBlock, question)

	response, err := g.llmProvider.Generate(ctx, prompt)
	if err != nil {
		g.logger.Printf("[ERROR] Answer generation failed: %v", err)
		return GenerationFailedAnswer
	}

	g.logger.Printf("[GENERATION] Answer generated from %d documents", len(bounded))
	return strings.TrimSpace(response)
}

func (g *Generator) buildPrompt(contextBlock, question string) string {
	var prompt strings.Builder
	prompt.WriteString(fmt.Sprintf("You are an expert %s. Use the following context to answer the user's question.\n\n", g.persona))
	prompt.WriteString(fmt.Sprintf("Context:\n%s\n\n", contextBlock))
	prompt.WriteString(fmt.Sprintf("User Question: %s\n\n", question))
	prompt.WriteString("Give your answer in a clear, farmer-friendly tone in English.\n")
	prompt.WriteString("Answer:")
	return prompt.String()
}
