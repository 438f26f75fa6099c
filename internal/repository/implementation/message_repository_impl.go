package implementation

import (
	"context"

	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/mapper"
	"skill-exchange-ai/internal/model"
	"skill-exchange-ai/internal/repository/contract"
	"skill-exchange-ai/internal/repository/scope"
	"skill-exchange-ai/internal/repository/specification"

	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MessageMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewMessageMapper(),
	}
}

func (r *MessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *MessageRepositoryImpl) FindForUser(ctx context.Context, userId string, conversationIds []string) ([]*entity.Message, error) {
	return r.findAll(ctx,
		specification.NonSystem{},
		specification.SentByOrIn{SenderID: userId, ConversationIDs: conversationIds},
	)
}

func (r *MessageRepositoryImpl) FindByConversation(ctx context.Context, conversationId string) ([]*entity.Message, error) {
	return r.findAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.NonSystem{},
		specification.HasContent{},
	)
}

func (r *MessageRepositoryImpl) findAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var models []*model.Message
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedAsc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
