package controller

import (
	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/entity"
	"civic-bridge-be/internal/pkg/serverutils"
	"civic-bridge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRepresentativeController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	RecordContact(ctx *fiber.Ctx) error
}

type representativeController struct {
	service service.IRepresentativeService
}

func NewRepresentativeController(service service.IRepresentativeService) IRepresentativeController {
	return &representativeController{service: service}
}

func (c *representativeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/representatives", serverutils.RequireSession(serverutils.ClassGuest, serverutils.ClassAuthenticated))
	h.Get("/", c.List)
	h.Post("/:id/contact", c.RecordContact)
}

func (c *representativeController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.UserContext(), callerOf(ctx))
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Representatives", res))
}

func (c *representativeController) RecordContact(ctx *fiber.Ctx) error {
	var req dto.RecordContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	details := service.ContactDetails{
		Method:  entity.ContactMethod(req.Method),
		Topic:   req.Topic,
		Excerpt: req.Excerpt,
	}
	res, err := c.service.RecordContact(ctx.UserContext(), callerOf(ctx), ctx.Params("id"), details)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Contact recorded", res))
}
