package entity

import (
	"time"

	"github.com/google/uuid"
)

type LexiconEntry struct {
	Id       uuid.UUID
	Word     string
	Language string
	Emotions map[string]float64
}

type SentimentFeedback struct {
	Id        uuid.UUID
	MessageId string
	Feedback  string
	CreatedAt time.Time
}
