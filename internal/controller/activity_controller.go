package controller

import (
	"civic-bridge-be/internal/pkg/serverutils"
	"civic-bridge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IActivityController interface {
	RegisterRoutes(r fiber.Router)
	ListLogs(ctx *fiber.Ctx) error
	ListDocuments(ctx *fiber.Ctx) error
}

type activityController struct {
	service service.IActivityService
	feed    fiber.Handler
}

// NewActivityController serves the archive. feed, when set, is mounted at
// /activity/ws.
func NewActivityController(service service.IActivityService, feed fiber.Handler) IActivityController {
	return &activityController{service: service, feed: feed}
}

func (c *activityController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/activity")
	if c.feed != nil {
		// The browser cannot set headers on a websocket upgrade, so the feed
		// authenticates itself from the query string.
		h.Get("/ws", c.feed)
	}

	authenticated := serverutils.RequireSession(serverutils.ClassAuthenticated)
	h.Get("/logs", authenticated, c.ListLogs)
	h.Get("/documents", authenticated, c.ListDocuments)
}

func (c *activityController) ListLogs(ctx *fiber.Ctx) error {
	res, err := c.service.ListLogs(ctx.UserContext(), callerOf(ctx), ctx.QueryInt("page", 1), ctx.QueryInt("page_size", 20))
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Activity logs", res))
}

func (c *activityController) ListDocuments(ctx *fiber.Ctx) error {
	res, err := c.service.ListDocuments(ctx.UserContext(), callerOf(ctx))
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Archived documents", res))
}
