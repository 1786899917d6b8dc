package handler

import (
	"civic-bridge-be/internal/pkg/logger"
	"civic-bridge-be/internal/pkg/serverutils"
	internalWS "civic-bridge-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type ActivityFeedHandler struct {
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewActivityFeedHandler(hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *ActivityFeedHandler {
	return &ActivityFeedHandler{hub: hub, jwtSecret: jwtSecret, logger: log}
}

// ServeWs upgrades an authenticated request to the live activity feed.
func (h *ActivityFeedHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers cannot set headers on an upgrade, so the query wins.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		tokenStr, _ = serverutils.BearerToken(c.Get("Authorization"))
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).
			JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Missing token (Query 'token' or Header 'Authorization')"))
	}

	userIDStr, err := serverutils.ParseToken(h.jwtSecret, tokenStr)
	if err != nil {
		h.logger.Warn("ActivityFeed", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid user ID format in token"))
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ActivityFeed", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
			h.hub.Attach(conn, userID)
			h.logger.Info("ActivityFeed", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
