package controller

import (
	"fmt"
	"net/url"
	"time"

	"civic-bridge-be/internal/pkg/logger"
	"civic-bridge-be/internal/pkg/serverutils"
	"civic-bridge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const oauthStateCookie = "cb_oauth_state"

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	service   service.IOAuthService
	clientURL string
	logger    logger.ILogger
}

func NewOAuthController(service service.IOAuthService, clientURL string, log logger.ILogger) IOAuthController {
	return &oauthController{service: service, clientURL: clientURL, logger: log}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	// e.g., /auth/google
	h := r.Group("/auth")
	h.Get("/:provider/login", c.Login)
	h.Get("/:provider/callback", c.Callback)
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")

	loginURL, state, err := c.service.GetLoginURL(provider)
	if err != nil {
		return writeError(ctx, err)
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return ctx.Redirect(loginURL, fiber.StatusTemporaryRedirect)
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")
	code := ctx.Query("code")
	if code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing code"))
	}
	if state := ctx.Cookies(oauthStateCookie); state == "" || state != ctx.Query("state") {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid OAuth state"))
	}
	ctx.ClearCookie(oauthStateCookie)

	res, err := c.service.HandleCallback(ctx.UserContext(), provider, code)
	if err != nil {
		c.logger.Error("OAUTH", "Callback failed", map[string]interface{}{"provider": provider, "error": err.Error()})
		return writeError(ctx, err)
	}

	c.logger.Info("OAUTH", "User authenticated", map[string]interface{}{
		"user_id":     res.User.Id,
		"is_new_user": res.IsNewUser,
	})

	q := url.Values{}
	q.Set("token", res.AccessToken)
	q.Set("view", res.View)
	q.Set("new", fmt.Sprint(res.IsNewUser))
	return ctx.Redirect(c.clientURL+"/auth/callback?"+q.Encode(), fiber.StatusTemporaryRedirect)
}
