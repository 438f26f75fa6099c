package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// CourseEmbedding caches the vector of a course skills text, keyed by model and text hash.
// The column is dimensionless so switching embedding models does not need a migration.
type CourseEmbedding struct {
	Key        string          `gorm:"type:varchar(64);primaryKey"`
	Model      string          `gorm:"type:varchar(128);not null;index"`
	SkillsText string          `gorm:"type:text"`
	Embedding  pgvector.Vector `gorm:"type:vector"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

func (CourseEmbedding) TableName() string {
	return "course_embeddings"
}

// All lists every table the service owns, in migration order.
func All() []interface{} {
	return []interface{}{
		&Conversation{},
		&ConversationParticipant{},
		&Message{},
		&GroupClassification{},
		&UserClassification{},
		&SentimentLexiconEntry{},
		&SentimentFeedback{},
		&CourseEmbedding{},
	}
}
