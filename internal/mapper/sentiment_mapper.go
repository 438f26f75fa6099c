package mapper

import (
	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/model"

	"gorm.io/datatypes"
)

type SentimentMapper struct{}

func NewSentimentMapper() *SentimentMapper {
	return &SentimentMapper{}
}

func (m *SentimentMapper) LexiconToEntity(e *model.SentimentLexiconEntry) *entity.LexiconEntry {
	if e == nil {
		return nil
	}
	return &entity.LexiconEntry{
		Id:       e.Id,
		Word:     e.Word,
		Language: e.Language,
		Emotions: e.Emotions.Data(),
	}
}

func (m *SentimentMapper) LexiconToModel(e *entity.LexiconEntry) *model.SentimentLexiconEntry {
	if e == nil {
		return nil
	}
	return &model.SentimentLexiconEntry{
		Id:       e.Id,
		Word:     e.Word,
		Language: e.Language,
		Emotions: datatypes.NewJSONType(e.Emotions),
	}
}

func (m *SentimentMapper) FeedbackToModel(f *entity.SentimentFeedback) *model.SentimentFeedback {
	if f == nil {
		return nil
	}
	return &model.SentimentFeedback{
		Id:        f.Id,
		MessageId: f.MessageId,
		Feedback:  f.Feedback,
		CreatedAt: f.CreatedAt,
	}
}

func (m *SentimentMapper) FeedbackToEntity(f *model.SentimentFeedback) *entity.SentimentFeedback {
	if f == nil {
		return nil
	}
	return &entity.SentimentFeedback{
		Id:        f.Id,
		MessageId: f.MessageId,
		Feedback:  f.Feedback,
		CreatedAt: f.CreatedAt,
	}
}
