package controller

import (
	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/pkg/serverutils"
	"civic-bridge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAddressController interface {
	RegisterRoutes(r fiber.Router)
	Autocomplete(ctx *fiber.Ctx) error
	Validate(ctx *fiber.Ctx) error
}

type addressController struct {
	service service.IAddressService
}

func NewAddressController(service service.IAddressService) IAddressController {
	return &addressController{service: service}
}

func (c *addressController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/address")
	h.Get("/autocomplete", c.Autocomplete)
	h.Post("/validate", c.Validate)
}

func (c *addressController) Autocomplete(ctx *fiber.Ctx) error {
	res, err := c.service.Autocomplete(ctx.UserContext(), ctx.Query("text", ""))
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Address suggestions", res))
}

func (c *addressController) Validate(ctx *fiber.Ctx) error {
	var req dto.ValidateAddressRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Validate(ctx.UserContext(), &req)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Address accepted", res))
}
