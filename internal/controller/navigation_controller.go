package controller

import (
	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/pkg/serverutils"
	"civic-bridge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INavigationController interface {
	RegisterRoutes(r fiber.Router)
	Initial(ctx *fiber.Ctx) error
	Navigate(ctx *fiber.Ctx) error
}

type navigationController struct {
	service service.INavigationService
}

func NewNavigationController(service service.INavigationService) INavigationController {
	return &navigationController{service: service}
}

func (c *navigationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/navigation")
	h.Get("/initial", c.Initial)
	h.Post("/", c.Navigate)
}

func (c *navigationController) Initial(ctx *fiber.Ctx) error {
	res := c.service.Initial(ctx.UserContext(), callerOf(ctx))
	return ctx.JSON(serverutils.SuccessResponse("Initial view", res))
}

func (c *navigationController) Navigate(ctx *fiber.Ctx) error {
	var req dto.NavigateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Navigate(ctx.UserContext(), callerOf(ctx), &req)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Navigation resolved", res))
}
