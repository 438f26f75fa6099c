package service

import (
	"context"
	"fmt"
	"time"

	"skill-exchange-ai/internal/dto"
	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/pkg/logger"
	"skill-exchange-ai/internal/repository/unitofwork"
	"skill-exchange-ai/pkg/sentiment"
)

const messageModule = "MESSAGE"

type IMessageService interface {
	// Send scores, stores and announces a chat message. The returned payload is what the room receives.
	Send(ctx context.Context, request *dto.SocketMessageRequest) (*dto.SocketMessageResponse, error)
}

type messageService struct {
	uowFactory unitofwork.RepositoryFactory
	sentiment  ISentimentService
	publisher  IPublisherService
	events     IEventPublisher
	logger     logger.ILogger
	now        func() time.Time
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	sentiment ISentimentService,
	publisher IPublisherService,
	events IEventPublisher,
	logger logger.ILogger,
) IMessageService {
	return &messageService{
		uowFactory: uowFactory,
		sentiment:  sentiment,
		publisher:  publisher,
		events:     events,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *messageService) Send(ctx context.Context, request *dto.SocketMessageRequest) (*dto.SocketMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	individual := false
	conversation, err := uow.ConversationRepository().FindByID(ctx, request.GroupId)
	if err != nil {
		s.logger.Warn(messageModule, "Failed to load conversation", map[string]interface{}{
			"conversation_id": request.GroupId,
			"error":           err.Error(),
		})
	} else if conversation != nil {
		individual = conversation.IsIndividual()
	}

	language := request.Language
	if language == "" {
		language = sentiment.LanguageAuto
	}
	scored := s.sentiment.AnalyzeMessage(ctx, request.Message, language)

	message := &entity.Message{
		ConversationId: request.GroupId,
		SenderId:       request.UserId,
		Content:        request.Message,
		Language:       scored.Language,
		Emotions:       scored.Emotions,
		Emoji:          scored.Emoji,
		Read:           true,
		CreatedAt:      s.now().UTC(),
	}
	if individual && request.ReceiverId != "" {
		receiver := request.ReceiverId
		message.ReceiverId = &receiver
		message.ReceiverEmotions = scored.Emotions
		message.ReceiverEmoji = scored.Emoji
	}

	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return nil, fmt.Errorf("store message: %w", err)
	}

	s.logger.Info(messageModule, "Message stored", map[string]interface{}{
		"message_id":      message.Id.String(),
		"conversation_id": message.ConversationId,
		"language":        message.Language,
		"emoji":           message.Emoji,
	})

	stored := dto.MessageStoredPayload{
		MessageId:      message.Id.String(),
		ConversationId: message.ConversationId,
		SenderId:       message.SenderId,
		Content:        message.Content,
		CreatedAt:      message.CreatedAt.Format(time.RFC3339Nano),
	}
	if err := s.publisher.Publish(ctx, stored); err != nil {
		s.logger.Error(messageModule, "Failed to queue conversation update", map[string]interface{}{
			"message_id": message.Id.String(),
			"error":      err.Error(),
		})
	}
	s.events.PublishMessageCreated(ctx, message)

	return toSocketMessage(message), nil
}

func toSocketMessage(m *entity.Message) *dto.SocketMessageResponse {
	res := &dto.SocketMessageResponse{
		Id:              m.Id.String(),
		Sender:          m.SenderId,
		Conversation:    m.ConversationId,
		Content:         m.Content,
		Language:        m.Language,
		Emotions:        m.Emotions,
		Emoji:           m.Emoji,
		CreatedAt:       m.CreatedAt.Format(time.RFC3339Nano),
		IsSystemMessage: m.IsSystemMessage,
		Read:            m.Read,
		Edited:          m.Edited,
	}
	if m.ReceiverId != nil {
		res.Receiver = *m.ReceiverId
		res.ReceiverEmotions = m.ReceiverEmotions
		res.ReceiverEmoji = m.ReceiverEmoji
	}
	return res
}
