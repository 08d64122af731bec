package rag

import (
	"context"
	"fmt"
	"log"
	"strings"

	"agri-assist-be/pkg/llm"
)

// NoInformationAnswer is returned when no source contributed any documents.
const NoInformationAnswer = "Sorry, I couldn't find relevant information for your question."

// Pipeline is the retrieve-compress-generate cascade for open-domain
// questions. Retrieval sources are redundant and individually failure
// isolated; only the query rewrite can fail the whole run.
type Pipeline struct {
	llmProvider llm.LLMProvider
	aggregator  *Aggregator
	compressor  *Compressor
	generator   *Generator
	logger      *log.Logger
}

func NewPipeline(
	llmProvider llm.LLMProvider,
	aggregator *Aggregator,
	compressor *Compressor,
	generator *Generator,
	logger *log.Logger,
) *Pipeline {
	return &Pipeline{
		llmProvider: llmProvider,
		aggregator:  aggregator,
		compressor:  compressor,
		generator:   generator,
		logger:      logger,
	}
}

// Run executes the full cascade for the user's question. The only error it
// can return is a rewrite failure; every later stage degrades to a fixed
// answer instead.
func (p *Pipeline) Run(ctx context.Context, question string) (string, error) {
	p.logger.Printf("[PIPELINE] Running RAG cascade for: %s", truncate(question, 80))

	// 1. Rewrite the question for retrieval. No fallback rewrite exists, so
	// a failure here is fatal to the whole cascade.
	rewritten, err := p.rewriteQuery(ctx, question)
	if err != nil {
		return "", fmt.Errorf("query rewrite failed: %w", err)
	}
	p.logger.Printf("[PIPELINE] Rewritten query: %s", truncate(rewritten, 80))

	// 2. Fan out to all sources.
	pool := p.aggregator.Retrieve(ctx, rewritten)

	// 3. Nothing retrieved anywhere: skip compression and generation.
	if len(pool) == 0 {
		p.logger.Printf("[PIPELINE] Empty pool after all sources, short-circuiting")
		return NoInformationAnswer, nil
	}

	// 4. Compress against the rewritten query.
	compressed := p.compressor.Compress(ctx, pool, rewritten)

	// 5-6. Generate from the bounded context and the ORIGINAL question.
	return p.generator.Generate(ctx, compressed, question), nil
}

func (p *Pipeline) rewriteQuery(ctx context.Context, question string) (string, error) {
	var prompt strings.Builder
	prompt.WriteString("Rewrite the following user query to optimize it for document retrieval.\n")
	prompt.WriteString("Only return the rewritten query itself, no explanation.\n\n")
	prompt.WriteString(fmt.Sprintf("User Query: %s\n", question))
	prompt.WriteString("Rewritten Query:")

	response, err := p.llmProvider.Generate(ctx, prompt.String())
	if err != nil {
		return "", err
	}

	rewritten := strings.TrimSpace(response)
	if rewritten == "" {
		rewritten = question
	}
	return rewritten, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
