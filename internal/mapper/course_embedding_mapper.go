package mapper

import (
	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/model"

	"github.com/pgvector/pgvector-go"
)

type CourseEmbeddingMapper struct{}

func NewCourseEmbeddingMapper() *CourseEmbeddingMapper {
	return &CourseEmbeddingMapper{}
}

func (m *CourseEmbeddingMapper) ToEntity(c *model.CourseEmbedding) *entity.CourseEmbedding {
	if c == nil {
		return nil
	}
	return &entity.CourseEmbedding{
		Key:        c.Key,
		Model:      c.Model,
		SkillsText: c.SkillsText,
		Embedding:  c.Embedding.Slice(),
		CreatedAt:  c.CreatedAt,
	}
}

func (m *CourseEmbeddingMapper) ToModel(c *entity.CourseEmbedding) *model.CourseEmbedding {
	if c == nil {
		return nil
	}
	return &model.CourseEmbedding{
		Key:        c.Key,
		Model:      c.Model,
		SkillsText: c.SkillsText,
		Embedding:  pgvector.NewVector(c.Embedding),
		CreatedAt:  c.CreatedAt,
	}
}
