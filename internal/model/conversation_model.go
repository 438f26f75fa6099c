package model

import (
	"time"
)

type Conversation struct {
	Id                  string `gorm:"type:varchar(64);primaryKey"`
	IsGroup             bool   `gorm:"not null;default:false;index:idx_conversations_is_group"`
	GroupName           string `gorm:"type:varchar(255)"`
	LastMessageContent  string `gorm:"type:text"`
	LastMessageSenderId string `gorm:"type:varchar(64)"`
	LastMessageAt       *time.Time
	CreatedAt           time.Time                 `gorm:"autoCreateTime;index"`
	UpdatedAt           time.Time                 `gorm:"autoUpdateTime"`
	Participants        []ConversationParticipant `gorm:"foreignKey:ConversationId;constraint:OnDelete:CASCADE"`
}

func (Conversation) TableName() string {
	return "conversations"
}

type ConversationParticipant struct {
	ConversationId string    `gorm:"type:varchar(64);primaryKey"`
	UserId         string    `gorm:"type:varchar(64);primaryKey;index:idx_participants_user"`
	JoinedAt       time.Time `gorm:"autoCreateTime"`
}

func (ConversationParticipant) TableName() string {
	return "conversation_participants"
}
