package implementation

import (
	"context"
	"errors"

	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/mapper"
	"skill-exchange-ai/internal/model"
	"skill-exchange-ai/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CourseEmbeddingMapper
}

func NewCourseEmbeddingRepository(db *gorm.DB) contract.CourseEmbeddingRepository {
	return &CourseEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewCourseEmbeddingMapper(),
	}
}

func (r *CourseEmbeddingRepositoryImpl) FindByKey(ctx context.Context, key string) (*entity.CourseEmbedding, error) {
	var m model.CourseEmbedding
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CourseEmbeddingRepositoryImpl) Upsert(ctx context.Context, embedding *entity.CourseEmbedding) error {
	m := r.mapper.ToModel(embedding)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(m).Error
}
