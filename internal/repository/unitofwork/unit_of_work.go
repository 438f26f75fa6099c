package unitofwork

import (
	"context"

	"skill-exchange-ai/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
	GroupClassificationRepository() contract.GroupClassificationRepository
	UserClassificationRepository() contract.UserClassificationRepository
	LexiconRepository() contract.LexiconRepository
	FeedbackRepository() contract.FeedbackRepository
	CourseEmbeddingRepository() contract.CourseEmbeddingRepository
}
