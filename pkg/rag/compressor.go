package rag

import (
	"context"
	"fmt"
	"log"
	"strings"

	"agri-assist-be/pkg/llm"
)

// Compressor reduces each candidate document to the spans relevant to the
// question, bounding context cost before generation.
type Compressor struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewCompressor(llmProvider llm.LLMProvider, logger *log.Logger) *Compressor {
	return &Compressor{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Compress runs one model call per document. A failed document is dropped
// from the result; the batch itself never fails. Pool order of the surviving
// documents is preserved.
func (c *Compressor) Compress(ctx context.Context, docs []Document, query string) []Document {
	compressed := make([]Document, 0, len(docs))

	for _, doc := range docs {
		prompt := c.buildPrompt(query, doc.Content)

		response, err := c.llmProvider.Generate(ctx, prompt)
		if err != nil {
			c.logger.Printf("[WARN] Compression failed for a %s document, dropping it: %v", doc.Source, err)
			continue
		}

		compressed = append(compressed, Document{
			Content:  strings.TrimSpace(response),
			Source:   doc.Source,
			Metadata: doc.Metadata,
		})
	}

	c.logger.Printf("[COMPRESSION] %d/%d documents survived", len(compressed), len(docs))
	return compressed
}

func (c *Compressor) buildPrompt(query, document string) string {
	var prompt strings.Builder
	prompt.WriteString("Summarize the following document by keeping only the parts relevant to answering the user's question.\n\n")
	prompt.WriteString(fmt.Sprintf("User Question: %s\n\n", query))
	prompt.WriteString(fmt.Sprintf("Document:\n%s\n\n", document))
	prompt.WriteString("Compressed Content:")
	return prompt.String()
}
