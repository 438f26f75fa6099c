package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Message struct {
	Id               uuid.UUID                              `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId   string                                 `gorm:"type:varchar(64);not null;index:idx_messages_conversation_system,priority:1"`
	SenderId         string                                 `gorm:"type:varchar(64);not null;index:idx_messages_sender_system,priority:1"`
	ReceiverId       *string                                `gorm:"type:varchar(64)"`
	Content          string                                 `gorm:"type:text"`
	Language         string                                 `gorm:"type:varchar(16)"`
	Emotions         datatypes.JSONType[map[string]float64] `gorm:"type:jsonb"`
	Emoji            string                                 `gorm:"type:varchar(16)"`
	ReceiverEmotions datatypes.JSONType[map[string]float64] `gorm:"type:jsonb"`
	ReceiverEmoji    string                                 `gorm:"type:varchar(16)"`
	IsSystemMessage  bool                                   `gorm:"not null;default:false;index:idx_messages_conversation_system,priority:2;index:idx_messages_sender_system,priority:2"`
	Read             bool                                   `gorm:"not null;default:false"`
	Edited           bool                                   `gorm:"not null;default:false"`
	CreatedAt        time.Time                              `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}
