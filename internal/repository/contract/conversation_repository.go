package contract

import (
	"context"

	"skill-exchange-ai/internal/entity"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	FindByID(ctx context.Context, id string) (*entity.Conversation, error)
	// FindGroups returns every group conversation ordered by created_at, id.
	FindGroups(ctx context.Context) ([]*entity.Conversation, error)
	FindByParticipant(ctx context.Context, userId string, groupsOnly bool) ([]*entity.Conversation, error)
	UpdateLastMessage(ctx context.Context, id string, last entity.LastMessage) error
}
