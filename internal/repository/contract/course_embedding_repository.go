package contract

import (
	"context"

	"skill-exchange-ai/internal/entity"
)

type CourseEmbeddingRepository interface {
	FindByKey(ctx context.Context, key string) (*entity.CourseEmbedding, error)
	Upsert(ctx context.Context, embedding *entity.CourseEmbedding) error
}
