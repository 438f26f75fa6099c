package contract

import (
	"context"

	"skill-exchange-ai/internal/entity"
)

type GroupClassificationRepository interface {
	FindByGroupID(ctx context.Context, groupId string) (*entity.GroupClassification, error)
	FindAll(ctx context.Context) ([]*entity.GroupClassification, error)
	Upsert(ctx context.Context, classification *entity.GroupClassification) error
}

type UserClassificationRepository interface {
	FindByUserID(ctx context.Context, userId string) (*entity.UserClassification, error)
	FindAll(ctx context.Context) ([]*entity.UserClassification, error)
	Upsert(ctx context.Context, classification *entity.UserClassification) error
}
