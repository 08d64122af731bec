package mapper

import (
	"time"

	"agri-assist-be/internal/entity"
	"agri-assist-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type SchemeEmbeddingMapper struct{}

func NewSchemeEmbeddingMapper() *SchemeEmbeddingMapper {
	return &SchemeEmbeddingMapper{}
}

func (m *SchemeEmbeddingMapper) ToEntity(e *model.SchemeEmbedding) *entity.SchemeEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.SchemeEmbedding{
		Id:             e.Id,
		SchemeName:     e.SchemeName,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *SchemeEmbeddingMapper) ToModel(e *entity.SchemeEmbedding) *model.SchemeEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.SchemeEmbedding{
		Id:             e.Id,
		SchemeName:     e.SchemeName,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *SchemeEmbeddingMapper) ToEntities(embeddings []*model.SchemeEmbedding) []*entity.SchemeEmbedding {
	entities := make([]*entity.SchemeEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
