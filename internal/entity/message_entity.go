package entity

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id               uuid.UUID
	ConversationId   string
	SenderId         string
	ReceiverId       *string
	Content          string
	Language         string
	Emotions         map[string]float64
	Emoji            string
	ReceiverEmotions map[string]float64
	ReceiverEmoji    string
	IsSystemMessage  bool
	Read             bool
	Edited           bool
	CreatedAt        time.Time
}
