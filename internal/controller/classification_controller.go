package controller

import (
	"skill-exchange-ai/internal/constant"
	"skill-exchange-ai/internal/pkg/serverutils"
	"skill-exchange-ai/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IClassificationController interface {
	RegisterRoutes(r fiber.Router)
	Cache(ctx *fiber.Ctx) error
}

type classificationController struct {
	classificationService service.IClassificationService
}

func NewClassificationController(classificationService service.IClassificationService) IClassificationController {
	return &classificationController{
		classificationService: classificationService,
	}
}

func (c *classificationController) RegisterRoutes(r fiber.Router) {
	r.Get("/cache", c.Cache)
}

func (c *classificationController) Cache(ctx *fiber.Ctx) error {
	res, err := c.classificationService.Snapshot(ctx.UserContext())
	if err != nil {
		return serverutils.Unavailable(constant.ErrMsgStoreUnavailable, err)
	}

	return ctx.JSON(res)
}
