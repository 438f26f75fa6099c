package controller

import (
	"skill-exchange-ai/internal/dto"
	"skill-exchange-ai/internal/pkg/serverutils"
	"skill-exchange-ai/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISentimentController interface {
	RegisterRoutes(r fiber.Router)
	Analyze(ctx *fiber.Ctx) error
	Feedback(ctx *fiber.Ctx) error
}

type sentimentController struct {
	sentimentService service.ISentimentService
}

func NewSentimentController(sentimentService service.ISentimentService) ISentimentController {
	return &sentimentController{
		sentimentService: sentimentService,
	}
}

func (c *sentimentController) RegisterRoutes(r fiber.Router) {
	r.Post("/analyze_sentiment", c.Analyze)
	r.Post("/feedback", c.Feedback)
}

func (c *sentimentController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalyzeSentimentRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.sentimentService.Analyze(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *sentimentController) Feedback(ctx *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.sentimentService.SubmitFeedback(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
