package service

import (
	"context"
	"encoding/json"
	"time"

	"skill-exchange-ai/internal/dto"
	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/pkg/logger"
	"skill-exchange-ai/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
)

const consumerModule = "CONSUMER"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService keeps conversation summaries in step with stored messages.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks, gochannel redelivers a nacked message immediately.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.MessageStoredPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(consumerModule, "Failed to unmarshal message", map[string]interface{}{
			"uuid":  msg.UUID,
			"error": err.Error(),
		})
		return
	}

	createdAt, err := time.Parse(time.RFC3339Nano, payload.CreatedAt)
	if err != nil {
		createdAt = time.Now()
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	err = uow.ConversationRepository().UpdateLastMessage(ctx, payload.ConversationId, entity.LastMessage{
		Content:   payload.Content,
		SenderId:  payload.SenderId,
		CreatedAt: createdAt,
	})
	if err != nil {
		cs.logger.Error(consumerModule, "Failed to update conversation last message", map[string]interface{}{
			"conversation_id": payload.ConversationId,
			"message_id":      payload.MessageId,
			"error":           err.Error(),
		})
		return
	}

	cs.logger.Debug(consumerModule, "Conversation last message updated", map[string]interface{}{
		"conversation_id": payload.ConversationId,
		"message_id":      payload.MessageId,
	})
}
