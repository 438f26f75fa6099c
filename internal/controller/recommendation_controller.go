package controller

import (
	"skill-exchange-ai/internal/dto"
	"skill-exchange-ai/internal/pkg/serverutils"
	"skill-exchange-ai/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRecommendationController interface {
	RegisterRoutes(r fiber.Router)
	RegisterRootRoutes(r fiber.Router)
	RecommendGroups(ctx *fiber.Ctx) error
	Recommend(ctx *fiber.Ctx) error
}

type recommendationController struct {
	recommendationService service.IRecommendationService
}

func NewRecommendationController(recommendationService service.IRecommendationService) IRecommendationController {
	return &recommendationController{
		recommendationService: recommendationService,
	}
}

func (c *recommendationController) RegisterRoutes(r fiber.Router) {
	r.Post("/recommend_groups", c.RecommendGroups)
}

// RegisterRootRoutes mounts the endpoints that live outside /api.
func (c *recommendationController) RegisterRootRoutes(r fiber.Router) {
	r.Post("/recommend", c.Recommend)
}

func (c *recommendationController) RecommendGroups(ctx *fiber.Ctx) error {
	var req dto.RecommendGroupsRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.recommendationService.RecommendGroups(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *recommendationController) Recommend(ctx *fiber.Ctx) error {
	var req dto.RecommendGroupsRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.recommendationService.RecommendWithCache(ctx.UserContext(), &req)
	if err != nil {
		if res == nil {
			return err
		}
		code, message := serverutils.StatusAndMessage(err)
		return ctx.Status(code).JSON(dto.RecommendErrorResponse{Error: message, Cache: res.Cache})
	}

	return ctx.JSON(res)
}
