package events

import (
	"context"
	"time"
)

const (
	TypeMessageCreated    = "MESSAGE_CREATED"
	TypeGroupsRecommended = "GROUPS_RECOMMENDED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "MESSAGE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher delivers events to the bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func NewMessageCreated(messageId, conversationId, senderId, language, emoji string, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeMessageCreated,
		Data: map[string]interface{}{
			"message_id":      messageId,
			"conversation_id": conversationId,
			"sender_id":       senderId,
			"language":        language,
			"emoji":           emoji,
		},
		OccurredAt: at,
	}
}

func NewGroupsRecommended(userId string, groupIds []string, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeGroupsRecommended,
		Data: map[string]interface{}{
			"user_id":   userId,
			"group_ids": groupIds,
			"count":     len(groupIds),
		},
		OccurredAt: at,
	}
}
