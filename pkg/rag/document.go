package rag

import "context"

// Document is a retrieval candidate. Documents are request-owned: they are
// created by a Source, flow through compression and generation, and are
// garbage once the answer is produced.
type Document struct {
	Content  string                 `json:"content"`
	Source   string                 `json:"source"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Source is one independent retrieval backend. Implementations must report
// failures as errors and never panic across the aggregator boundary.
type Source interface {
	Name() string
	Retrieve(ctx context.Context, query string) ([]Document, error)
}
