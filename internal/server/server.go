package server

import (
	"log"
	"time"

	"civic-bridge-be/internal/bootstrap"
	"civic-bridge-be/internal/config"
	"civic-bridge-be/internal/metrics"
	"civic-bridge-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		// Base64 evidence attachments ride in JSON bodies.
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + serverutils.GuestHeader,
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Content-Disposition, " + serverutils.GuestHeader,
	}))

	if cfg.App.OtelEnabled {
		// OpenTelemetry tracing middleware (traces all HTTP requests)
		app.Use(otelfiber.Middleware())
	}

	if cfg.App.MetricsEnabled {
		app.Use(metrics.Middleware())
		app.Get("/metrics", metrics.Handler())
	}

	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.JSON(serverutils.SuccessResponse[any]("ok", nil))
	})

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Routes
	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	api := app.Group("/api", serverutils.SessionMiddleware(cfg.Auth.JWTSecret, c.GuestStore))

	c.NavigationController.RegisterRoutes(api)
	c.GuestController.RegisterRoutes(api)
	c.AddressController.RegisterRoutes(api)
	c.RepresentativeController.RegisterRoutes(api)

	// Every drafting call can reach the model, so it is rate limited per caller.
	api.Use("/drafting", limiter.New(limiter.Config{
		Max:          cfg.App.DraftRateLimit,
		Expiration:   time.Minute,
		KeyGenerator: callerKey,
	}))
	c.DraftingController.RegisterRoutes(api)

	c.OAuthController.RegisterRoutes(api)
	c.UserController.RegisterRoutes(api)
	c.ActivityController.RegisterRoutes(api)
	c.ContactController.RegisterRoutes(api)
}

func callerKey(ctx *fiber.Ctx) string {
	s := serverutils.CurrentSession(ctx)
	switch {
	case s.IsAuthenticated():
		return "user:" + s.UserID.String()
	case s.GuestID != "":
		return "guest:" + s.GuestID
	}
	return ctx.IP()
}
