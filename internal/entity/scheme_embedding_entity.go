package entity

import (
	"time"

	"github.com/google/uuid"
)

type SchemeEmbedding struct {
	Id             uuid.UUID
	SchemeName     string
	Document       string
	EmbeddingValue []float32
	ChunkIndex     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
