package controller

import (
	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/pkg/serverutils"
	"civic-bridge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDraftingController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	GenerateDraft(ctx *fiber.Ctx) error
	UpdateDraft(ctx *fiber.Ctx) error
	Refine(ctx *fiber.Ctx) error
	Letter(ctx *fiber.Ctx) error
	Label(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
	SubmitWebform(ctx *fiber.Ctx) error
}

type draftingController struct {
	service service.IDraftingService
}

func NewDraftingController(service service.IDraftingService) IDraftingController {
	return &draftingController{service: service}
}

func (c *draftingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/drafting/sessions", serverutils.RequireSession(serverutils.ClassGuest, serverutils.ClassAuthenticated))
	h.Post("/", c.Start)
	h.Get("/:id", c.Get)
	h.Post("/:id/messages", c.SendMessage)
	h.Post("/:id/draft", c.GenerateDraft)
	h.Put("/:id/draft", c.UpdateDraft)
	h.Post("/:id/refine", c.Refine)
	h.Get("/:id/letter.pdf", c.Letter)
	h.Get("/:id/label.pdf", c.Label)
	h.Post("/:id/complete", c.Complete)
	h.Post("/:id/webform", c.SubmitWebform)
}

func (c *draftingController) Start(ctx *fiber.Ctx) error {
	var req dto.StartDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Start(ctx.UserContext(), callerOf(ctx), &req)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Drafting session started", res))
}

func (c *draftingController) Get(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.Get(ctx.UserContext(), callerOf(ctx), id)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Drafting session", res))
}

func (c *draftingController) SendMessage(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.UserContext(), callerOf(ctx), id, &req)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Message sent", res))
}

func (c *draftingController) GenerateDraft(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.GenerateDraft(ctx.UserContext(), callerOf(ctx), id)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Draft generated", res))
}

func (c *draftingController) UpdateDraft(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}
	var req dto.UpdateDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateDraft(ctx.UserContext(), callerOf(ctx), id, &req)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Draft updated", res))
}

func (c *draftingController) Refine(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.Refine(ctx.UserContext(), callerOf(ctx), id)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Draft refined", res))
}

func (c *draftingController) Letter(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}
	doc, err := c.service.RenderLetter(ctx.UserContext(), callerOf(ctx), id)
	if err != nil {
		return writeError(ctx, err)
	}
	return sendPDF(ctx, doc)
}

func (c *draftingController) Label(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}
	doc, err := c.service.RenderLabel(ctx.UserContext(), callerOf(ctx), id)
	if err != nil {
		return writeError(ctx, err)
	}
	return sendPDF(ctx, doc)
}

func (c *draftingController) Complete(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.Complete(ctx.UserContext(), callerOf(ctx), id)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Letter recorded", res))
}

func (c *draftingController) SubmitWebform(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.SubmitWebform(ctx.UserContext(), callerOf(ctx), id)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Web form ready", res))
}
