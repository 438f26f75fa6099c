package memory

import (
	"context"

	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type CourseEmbeddingRepository struct {
	store *Store
}

func NewCourseEmbeddingRepository(store *Store) contract.CourseEmbeddingRepository {
	return &CourseEmbeddingRepository{store: store}
}

func (r *CourseEmbeddingRepository) FindByKey(ctx context.Context, key string) (*entity.CourseEmbedding, error) {
	if x, found := r.store.courseEmbeddings.Get(key); found {
		cp := *x.(*entity.CourseEmbedding)
		cp.Embedding = append([]float32(nil), cp.Embedding...)
		return &cp, nil
	}
	return nil, nil
}

func (r *CourseEmbeddingRepository) Upsert(ctx context.Context, embedding *entity.CourseEmbedding) error {
	cp := *embedding
	cp.Embedding = append([]float32(nil), embedding.Embedding...)
	r.store.courseEmbeddings.Set(embedding.Key, &cp, cache.NoExpiration)
	return nil
}
