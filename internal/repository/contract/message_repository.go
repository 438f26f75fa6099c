package contract

import (
	"context"

	"skill-exchange-ai/internal/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// FindForUser returns non-system messages sent by the user or posted in any of the conversations.
	FindForUser(ctx context.Context, userId string, conversationIds []string) ([]*entity.Message, error)
	// FindByConversation returns non-system messages with content, oldest first.
	FindByConversation(ctx context.Context, conversationId string) ([]*entity.Message, error)
}
