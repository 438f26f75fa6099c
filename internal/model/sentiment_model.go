package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SentimentLexiconEntry struct {
	Id       uuid.UUID                              `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Word     string                                 `gorm:"type:varchar(128);not null;uniqueIndex:idx_lexicon_word_language,priority:1"`
	Language string                                 `gorm:"type:varchar(16);not null;uniqueIndex:idx_lexicon_word_language,priority:2"`
	Emotions datatypes.JSONType[map[string]float64] `gorm:"type:jsonb"`
}

func (SentimentLexiconEntry) TableName() string {
	return "sentiment_lexicon"
}

type SentimentFeedback struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MessageId string    `gorm:"type:varchar(64);not null;index"`
	Feedback  string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (SentimentFeedback) TableName() string {
	return "sentiment_feedback"
}
