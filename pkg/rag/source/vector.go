package source

import (
	"context"
	"fmt"

	"agri-assist-be/internal/repository/contract"
	"agri-assist-be/pkg/embedding"
	"agri-assist-be/pkg/rag"
)

const (
	vectorTopK      = 5
	vectorThreshold = 0.3
)

// VectorSource retrieves government scheme chunks from the pgvector store
// by embedding the query and running a cosine similarity search.
type VectorSource struct {
	embeddingProvider embedding.EmbeddingProvider
	repository        contract.SchemeEmbeddingRepository
}

func NewVectorSource(embeddingProvider embedding.EmbeddingProvider, repository contract.SchemeEmbeddingRepository) *VectorSource {
	return &VectorSource{
		embeddingProvider: embeddingProvider,
		repository:        repository,
	}
}

func (s *VectorSource) Name() string {
	return "scheme_vector_store"
}

func (s *VectorSource) Retrieve(ctx context.Context, query string) ([]rag.Document, error) {
	resp, err := s.embeddingProvider.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	scored, err := s.repository.SearchSimilarWithScore(ctx, resp.Embedding.Values, vectorTopK, vectorThreshold)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	docs := make([]rag.Document, 0, len(scored))
	for _, sc := range scored {
		docs = append(docs, rag.Document{
			Content: sc.Embedding.Document,
			Source:  s.Name(),
			Metadata: map[string]interface{}{
				"scheme_name": sc.Embedding.SchemeName,
				"similarity":  sc.Similarity,
			},
		})
	}
	return docs, nil
}
