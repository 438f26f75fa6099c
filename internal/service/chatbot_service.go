package service

import (
	"context"

	"skill-exchange-ai/internal/constant"
	"skill-exchange-ai/internal/dto"
)

// IChatbotService serves the assistant panel. Dialogue is handled by a separate service.
type IChatbotService interface {
	InitialMessage(ctx context.Context) *dto.ChatbotInitialMessageResponse
}

type chatbotService struct {
	greeting string
}

func NewChatbotService() IChatbotService {
	return &chatbotService{greeting: constant.ChatbotInitialMessage}
}

func (s *chatbotService) InitialMessage(ctx context.Context) *dto.ChatbotInitialMessageResponse {
	return &dto.ChatbotInitialMessageResponse{Message: s.greeting}
}
