package implementation

import (
	"context"

	"agri-assist-be/internal/mapper"
	"agri-assist-be/internal/model"
	"agri-assist-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type SchemeEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SchemeEmbeddingMapper
}

func NewSchemeEmbeddingRepository(db *gorm.DB) contract.SchemeEmbeddingRepository {
	return &SchemeEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewSchemeEmbeddingMapper(),
	}
}

func (r *SchemeEmbeddingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SchemeEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore returns embeddings with similarity scores, filtered by threshold
func (r *SchemeEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredSchemeEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is: 1 - cosine_similarity
	// So we compute: 1 - (embedding_value <=> query_vector) = cosine_similarity
	type result struct {
		model.SchemeEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("scheme_embeddings").
		Select("scheme_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("scheme_embeddings.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredSchemeEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredSchemeEmbedding{
			Embedding:  r.mapper.ToEntity(&res.SchemeEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
