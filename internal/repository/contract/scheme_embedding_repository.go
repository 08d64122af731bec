package contract

import (
	"context"

	"agri-assist-be/internal/entity"
)

// ScoredSchemeEmbedding wraps SchemeEmbedding with its similarity score
type ScoredSchemeEmbedding struct {
	Embedding  *entity.SchemeEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type SchemeEmbeddingRepository interface {
	Count(ctx context.Context) (int64, error)
	// SearchSimilarWithScore returns embeddings with their similarity scores, filtered by threshold
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredSchemeEmbedding, error)
}
