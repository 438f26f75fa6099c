package controller

import (
	"skill-exchange-ai/internal/dto"
	"skill-exchange-ai/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Live(ctx *fiber.Ctx) error
	Ready(ctx *fiber.Ctx) error
}

type healthController struct {
	healthService service.IHealthService
}

func NewHealthController(healthService service.IHealthService) IHealthController {
	return &healthController{
		healthService: healthService,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/health")
	h.Get("", c.Live)
	h.Get("/ready", c.Ready)
}

// Live answers as long as the process serves HTTP.
func (c *healthController) Live(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{Status: service.StatusHealthy})
}

func (c *healthController) Ready(ctx *fiber.Ctx) error {
	res := c.healthService.Check(ctx.UserContext())
	if res.Status != service.StatusHealthy {
		return ctx.Status(fiber.StatusInternalServerError).JSON(res)
	}
	return ctx.JSON(res)
}
