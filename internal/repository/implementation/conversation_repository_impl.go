package implementation

import (
	"context"
	"errors"

	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/mapper"
	"skill-exchange-ai/internal/model"
	"skill-exchange-ai/internal/repository/contract"
	"skill-exchange-ai/internal/repository/scope"
	"skill-exchange-ai/internal/repository/specification"

	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationRepositoryImpl) Create(ctx context.Context, conversation *entity.Conversation) error {
	m := r.mapper.ToModel(conversation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*conversation = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConversationRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Conversation, error) {
	var m model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.WithParticipants), specification.ByID{ID: id})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ConversationRepositoryImpl) FindGroups(ctx context.Context) ([]*entity.Conversation, error) {
	return r.findAll(ctx, specification.GroupsOnly{}, specification.StableOrder{})
}

func (r *ConversationRepositoryImpl) FindByParticipant(ctx context.Context, userId string, groupsOnly bool) ([]*entity.Conversation, error) {
	specs := []specification.Specification{specification.ParticipantOf{UserID: userId}}
	if groupsOnly {
		specs = append(specs, specification.GroupsOnly{})
	}
	specs = append(specs, specification.StableOrder{})
	return r.findAll(ctx, specs...)
}

func (r *ConversationRepositoryImpl) UpdateLastMessage(ctx context.Context, id string, last entity.LastMessage) error {
	return r.db.WithContext(ctx).
		Model(&model.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_message_content":   last.Content,
			"last_message_sender_id": last.SenderId,
			"last_message_at":        last.CreatedAt,
		}).Error
}

func (r *ConversationRepositoryImpl) findAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	var models []*model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.WithParticipants), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
