package service

import (
	"context"
	"time"

	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/pkg/logger"
	"skill-exchange-ai/pkg/events"
)

const eventsModule = "EVENTS"

// IEventPublisher emits domain events. Publishing is best effort: failures are logged, never returned.
type IEventPublisher interface {
	PublishMessageCreated(ctx context.Context, message *entity.Message)
	PublishGroupsRecommended(ctx context.Context, userId string, groupIds []string)
}

type eventPublisher struct {
	publisher events.Publisher
	logger    logger.ILogger
	now       func() time.Time
}

// NewEventPublisher accepts a nil publisher, in which case every call is a no-op.
func NewEventPublisher(publisher events.Publisher, logger logger.ILogger) IEventPublisher {
	return &eventPublisher{
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (p *eventPublisher) PublishMessageCreated(ctx context.Context, message *entity.Message) {
	if p.publisher == nil || message == nil {
		return
	}

	evt := events.NewMessageCreated(
		message.Id.String(),
		message.ConversationId,
		message.SenderId,
		message.Language,
		message.Emoji,
		message.CreatedAt,
	)
	p.publish(ctx, evt)
}

func (p *eventPublisher) PublishGroupsRecommended(ctx context.Context, userId string, groupIds []string) {
	if p.publisher == nil {
		return
	}
	p.publish(ctx, events.NewGroupsRecommended(userId, groupIds, p.now()))
}

func (p *eventPublisher) publish(ctx context.Context, evt events.Event) {
	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error(eventsModule, "Failed to publish event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}
