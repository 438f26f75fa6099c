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

type GroupClassificationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ClassificationMapper
}

func NewGroupClassificationRepository(db *gorm.DB) contract.GroupClassificationRepository {
	return &GroupClassificationRepositoryImpl{
		db:     db,
		mapper: mapper.NewClassificationMapper(),
	}
}

func (r *GroupClassificationRepositoryImpl) FindByGroupID(ctx context.Context, groupId string) (*entity.GroupClassification, error) {
	var m model.GroupClassification
	if err := r.db.WithContext(ctx).Where("group_id = ?", groupId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.GroupToEntity(&m), nil
}

func (r *GroupClassificationRepositoryImpl) FindAll(ctx context.Context) ([]*entity.GroupClassification, error) {
	var models []*model.GroupClassification
	if err := r.db.WithContext(ctx).Order("group_id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]*entity.GroupClassification, len(models))
	for i, m := range models {
		res[i] = r.mapper.GroupToEntity(m)
	}
	return res, nil
}

func (r *GroupClassificationRepositoryImpl) Upsert(ctx context.Context, classification *entity.GroupClassification) error {
	m := r.mapper.GroupToModel(classification)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}},
		UpdateAll: true,
	}).Create(m).Error
}

type UserClassificationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ClassificationMapper
}

func NewUserClassificationRepository(db *gorm.DB) contract.UserClassificationRepository {
	return &UserClassificationRepositoryImpl{
		db:     db,
		mapper: mapper.NewClassificationMapper(),
	}
}

func (r *UserClassificationRepositoryImpl) FindByUserID(ctx context.Context, userId string) (*entity.UserClassification, error) {
	var m model.UserClassification
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.UserToEntity(&m), nil
}

func (r *UserClassificationRepositoryImpl) FindAll(ctx context.Context) ([]*entity.UserClassification, error) {
	var models []*model.UserClassification
	if err := r.db.WithContext(ctx).Order("user_id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]*entity.UserClassification, len(models))
	for i, m := range models {
		res[i] = r.mapper.UserToEntity(m)
	}
	return res, nil
}

func (r *UserClassificationRepositoryImpl) Upsert(ctx context.Context, classification *entity.UserClassification) error {
	m := r.mapper.UserToModel(classification)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(m).Error
}
