package specification

import (
	"gorm.io/gorm"
)

type NonSystem struct{}

func (s NonSystem) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_system_message = ?", false)
}

type ByConversationID struct {
	ConversationID string
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

// SentByOrIn matches messages the user sent or that belong to any of the conversations.
type SentByOrIn struct {
	SenderID        string
	ConversationIDs []string
}

func (s SentByOrIn) Apply(db *gorm.DB) *gorm.DB {
	if len(s.ConversationIDs) == 0 {
		return db.Where("sender_id = ?", s.SenderID)
	}
	return db.Where("(sender_id = ? OR conversation_id IN ?)", s.SenderID, s.ConversationIDs)
}

type HasContent struct{}

func (s HasContent) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("content IS NOT NULL AND content <> ''")
}
