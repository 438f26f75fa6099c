package dto

import "encoding/json"

// SocketEnvelope is the frame exchanged on /socket in both directions.
type SocketEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type SocketJoinRequest struct {
	GroupId string `json:"group_id" validate:"required"`
}

type SocketMessageRequest struct {
	Message    string `json:"message" validate:"required"`
	UserId     string `json:"user_id" validate:"required"`
	GroupId    string `json:"group_id" validate:"required"`
	ReceiverId string `json:"receiver_id"`
	Language   string `json:"language"`
}

type SocketErrorResponse struct {
	Message string `json:"message"`
}

// SocketMessageResponse is broadcast to the conversation room once a message is stored.
type SocketMessageResponse struct {
	Id               string             `json:"_id"`
	Sender           string             `json:"sender"`
	Conversation     string             `json:"conversation"`
	Content          string             `json:"content"`
	Language         string             `json:"language"`
	Emotions         map[string]float64 `json:"emotions"`
	Emoji            string             `json:"emoji"`
	CreatedAt        string             `json:"createdAt"`
	IsSystemMessage  bool               `json:"isSystemMessage"`
	Read             bool               `json:"read"`
	Edited           bool               `json:"edited"`
	Receiver         string             `json:"receiver,omitempty"`
	ReceiverEmotions map[string]float64 `json:"receiverEmotions,omitempty"`
	ReceiverEmoji    string             `json:"receiverEmoji,omitempty"`
}

// MessageStoredPayload travels on the internal bus after a message is persisted.
type MessageStoredPayload struct {
	MessageId      string `json:"message_id"`
	ConversationId string `json:"conversation_id"`
	SenderId       string `json:"sender_id"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
}
