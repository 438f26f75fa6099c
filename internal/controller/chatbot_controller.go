package controller

import (
	"skill-exchange-ai/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	InitialMessage(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
}

func NewChatbotController(chatbotService service.IChatbotService) IChatbotController {
	return &chatbotController{
		chatbotService: chatbotService,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chatbot")
	h.Get("/initial-message", c.InitialMessage)
}

func (c *chatbotController) InitialMessage(ctx *fiber.Ctx) error {
	return ctx.JSON(c.chatbotService.InitialMessage(ctx.UserContext()))
}
