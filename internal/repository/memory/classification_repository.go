package memory

import (
	"context"
	"sort"

	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type GroupClassificationRepository struct {
	store *Store
}

func NewGroupClassificationRepository(store *Store) contract.GroupClassificationRepository {
	return &GroupClassificationRepository{store: store}
}

func (r *GroupClassificationRepository) FindByGroupID(ctx context.Context, groupId string) (*entity.GroupClassification, error) {
	if x, found := r.store.groupClassifications.Get(groupId); found {
		return copyGroup(x.(*entity.GroupClassification)), nil
	}
	return nil, nil
}

func (r *GroupClassificationRepository) FindAll(ctx context.Context) ([]*entity.GroupClassification, error) {
	items := r.store.groupClassifications.Items()
	res := make([]*entity.GroupClassification, 0, len(items))
	for _, item := range items {
		res = append(res, copyGroup(item.Object.(*entity.GroupClassification)))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].GroupId < res[j].GroupId })
	return res, nil
}

func (r *GroupClassificationRepository) Upsert(ctx context.Context, classification *entity.GroupClassification) error {
	r.store.groupClassifications.Set(classification.GroupId, copyGroup(classification), cache.NoExpiration)
	return nil
}

type UserClassificationRepository struct {
	store *Store
}

func NewUserClassificationRepository(store *Store) contract.UserClassificationRepository {
	return &UserClassificationRepository{store: store}
}

func (r *UserClassificationRepository) FindByUserID(ctx context.Context, userId string) (*entity.UserClassification, error) {
	if x, found := r.store.userClassifications.Get(userId); found {
		return copyUser(x.(*entity.UserClassification)), nil
	}
	return nil, nil
}

func (r *UserClassificationRepository) FindAll(ctx context.Context) ([]*entity.UserClassification, error) {
	items := r.store.userClassifications.Items()
	res := make([]*entity.UserClassification, 0, len(items))
	for _, item := range items {
		res = append(res, copyUser(item.Object.(*entity.UserClassification)))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].UserId < res[j].UserId })
	return res, nil
}

func (r *UserClassificationRepository) Upsert(ctx context.Context, classification *entity.UserClassification) error {
	r.store.userClassifications.Set(classification.UserId, copyUser(classification), cache.NoExpiration)
	return nil
}

func copyGroup(g *entity.GroupClassification) *entity.GroupClassification {
	cp := *g
	cp.Skills = copyStrings(g.Skills)
	return &cp
}

func copyUser(u *entity.UserClassification) *entity.UserClassification {
	cp := *u
	cp.Keywords = copyStrings(u.Keywords)
	cp.Skills = copyStrings(u.Skills)
	return &cp
}
