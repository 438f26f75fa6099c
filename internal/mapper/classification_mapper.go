package mapper

import (
	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/model"

	"gorm.io/datatypes"
)

type ClassificationMapper struct{}

func NewClassificationMapper() *ClassificationMapper {
	return &ClassificationMapper{}
}

func (m *ClassificationMapper) GroupToEntity(g *model.GroupClassification) *entity.GroupClassification {
	if g == nil {
		return nil
	}
	return &entity.GroupClassification{
		GroupId:     g.GroupId,
		Name:        g.Name,
		Category:    g.Category,
		Skills:      nonNil(g.Skills),
		Similarity:  g.Similarity,
		LastUpdated: g.LastUpdated,
	}
}

func (m *ClassificationMapper) GroupToModel(g *entity.GroupClassification) *model.GroupClassification {
	if g == nil {
		return nil
	}
	return &model.GroupClassification{
		GroupId:     g.GroupId,
		Name:        g.Name,
		Category:    g.Category,
		Skills:      datatypes.JSONSlice[string](nonNil(g.Skills)),
		Similarity:  g.Similarity,
		LastUpdated: g.LastUpdated,
	}
}

func (m *ClassificationMapper) UserToEntity(u *model.UserClassification) *entity.UserClassification {
	if u == nil {
		return nil
	}
	return &entity.UserClassification{
		UserId:      u.UserId,
		Keywords:    nonNil(u.Keywords),
		Category:    u.Category,
		Skills:      nonNil(u.Skills),
		Similarity:  u.Similarity,
		LastUpdated: u.LastUpdated,
	}
}

func (m *ClassificationMapper) UserToModel(u *entity.UserClassification) *model.UserClassification {
	if u == nil {
		return nil
	}
	return &model.UserClassification{
		UserId:      u.UserId,
		Keywords:    datatypes.JSONSlice[string](nonNil(u.Keywords)),
		Category:    u.Category,
		Skills:      datatypes.JSONSlice[string](nonNil(u.Skills)),
		Similarity:  u.Similarity,
		LastUpdated: u.LastUpdated,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
