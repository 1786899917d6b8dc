package controller

import (
	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/pkg/serverutils"
	"civic-bridge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGuestController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	End(ctx *fiber.Ctx) error
	DismissTour(ctx *fiber.Ctx) error
}

type guestController struct {
	service service.IGuestService
}

func NewGuestController(service service.IGuestService) IGuestController {
	return &guestController{service: service}
}

func (c *guestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/guest")
	h.Post("/session", c.Start)

	h.Delete("/session", serverutils.RequireSession(serverutils.ClassGuest), c.End)
	h.Post("/tour", serverutils.RequireSession(serverutils.ClassGuest), c.DismissTour)
}

// Start begins a guest session under the X-Guest-Session id, or a fresh one
// when the header is missing. The id to keep using comes back as guest_id.
func (c *guestController) Start(ctx *fiber.Ctx) error {
	var req dto.StartGuestSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Start(ctx.UserContext(), ctx.Get(serverutils.GuestHeader), &req)
	if err != nil {
		return writeError(ctx, err)
	}
	ctx.Set(serverutils.GuestHeader, res.GuestId)
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Guest session started", res))
}

func (c *guestController) End(ctx *fiber.Ctx) error {
	if err := c.service.End(ctx.UserContext(), callerOf(ctx)); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Guest session ended", nil))
}

func (c *guestController) DismissTour(ctx *fiber.Ctx) error {
	var req dto.DismissTourRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := c.service.DismissTour(ctx.UserContext(), callerOf(ctx), &req); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Tour dismissed", nil))
}
