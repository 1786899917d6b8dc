package controller

import (
	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/pkg/serverutils"
	"civic-bridge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IContactController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	JoinWaitlist(ctx *fiber.Ctx) error
	SubscriptionLinks(ctx *fiber.Ctx) error
	Upgrade(ctx *fiber.Ctx) error
}

type contactController struct {
	service service.IContactService
}

func NewContactController(service service.IContactService) IContactController {
	return &contactController{service: service}
}

func (c *contactController) RegisterRoutes(r fiber.Router) {
	r.Post("/contact", c.Send)
	r.Post("/contact/waitlist", c.JoinWaitlist)
	r.Get("/subscription/links", c.SubscriptionLinks)
	r.Post("/subscription/upgrade", c.Upgrade)
}

func (c *contactController) Send(ctx *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Send(ctx.UserContext(), &req); err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(fiber.StatusBadGateway, "Could not send your message. Please try again later."))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Message sent", nil))
}

func (c *contactController) JoinWaitlist(ctx *fiber.Ctx) error {
	var req dto.WaitlistRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.JoinWaitlist(ctx.UserContext(), &req); err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(fiber.StatusBadGateway, "Could not join the waitlist. Please try again later."))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("You're on the list", nil))
}

func (c *contactController) SubscriptionLinks(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Subscription links", c.service.SubscriptionLinks()))
}

func (c *contactController) Upgrade(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Upgrade", c.service.Upgrade(ctx.UserContext(), callerOf(ctx))))
}
