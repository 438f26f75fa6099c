package contract

import (
	"context"

	"skill-exchange-ai/internal/entity"
)

type LexiconRepository interface {
	// FindByWord returns the entries of a word in every language.
	FindByWord(ctx context.Context, word string) ([]*entity.LexiconEntry, error)
	Upsert(ctx context.Context, entry *entity.LexiconEntry) error
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.SentimentFeedback) error
}
