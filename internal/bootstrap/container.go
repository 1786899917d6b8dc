package bootstrap

import (
	"context"
	"fmt"
	"log"

	"civic-bridge-be/internal/config"
	"civic-bridge-be/internal/controller"
	"civic-bridge-be/internal/handler"
	"civic-bridge-be/internal/metrics"
	"civic-bridge-be/internal/pkg/logger"
	"civic-bridge-be/internal/pkg/mailer"
	"civic-bridge-be/internal/repository/memory"
	"civic-bridge-be/internal/repository/unitofwork"
	"civic-bridge-be/internal/service"
	"civic-bridge-be/internal/websocket"
	"civic-bridge-be/pkg/legislators"
	"civic-bridge-be/pkg/llm"
	"civic-bridge-be/pkg/llm/factory"
	pktNats "civic-bridge-be/pkg/nats"
	"civic-bridge-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// EventsTopic is the in-process topic letter-sent events travel on.
const EventsTopic = "civic_bridge.events"

type Container struct {
	// Controllers
	NavigationController     controller.INavigationController
	GuestController          controller.IGuestController
	RepresentativeController controller.IRepresentativeController
	DraftingController       controller.IDraftingController
	AddressController        controller.IAddressController
	OAuthController          controller.IOAuthController
	UserController           controller.IUserController
	ActivityController       controller.IActivityController
	ContactController        controller.IContactController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	// Session classification needs the same store the guest service writes.
	GuestStore store.KeyValueStore
	Logger     logger.ILogger

	closers []func()
}

// Overrides swaps infrastructure for tests. Nil fields use the configured
// implementation.
type Overrides struct {
	LLM        llm.LLMProvider
	Finder     service.RepresentativeFinder
	Mailer     mailer.IEmailService
	GuestStore store.KeyValueStore
	Logger     logger.ILogger
	FeedLogger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	return NewContainerWith(db, cfg, Overrides{})
}

func NewContainerWith(db *gorm.DB, cfg *config.Config, o Overrides) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	sysLogger := o.Logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	}
	feedLogger := o.FeedLogger
	if feedLogger == nil {
		feedLogger = logger.NewIsolatedLogger(cfg.App.FeedLogFilePath)
	}

	emailService := o.Mailer
	if emailService == nil {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
			cfg.SMTP.SupportInbox,
		)
	}

	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// NATS is optional; without it events stay in-process.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		p, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = p
			c.closers = append(c.closers, p.Close)
		}
	}

	// Redis backs guest state and websocket fan-out when configured.
	rdb := newRedisClient(cfg.App.RedisURL)
	if rdb != nil {
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	guestStore := o.GuestStore
	switch {
	case guestStore != nil:
	case rdb != nil:
		guestStore = store.NewRedisStore(rdb)
	default:
		guestStore = store.NewMemoryStore()
	}
	c.GuestStore = guestStore

	// 3. External data
	finder := o.Finder
	if finder == nil {
		client := legislators.NewClient(cfg.Civic.LegislatorMirrors, cfg.Civic.DatasetCacheTTL)
		client.MirrorFailed = func(url string, err error) {
			metrics.RecordMirrorFailure(url)
			sysLogger.Warn("LEGISLATORS", "Mirror failed", map[string]interface{}{"mirror": url, "error": err.Error()})
		}
		finder = client
	}

	llmProvider := o.LLM
	if llmProvider == nil {
		p, err := factory.NewLLMProvider(factory.ProviderConfig{
			Provider:       cfg.Ai.LLMProvider,
			Model:          cfg.Ai.LLMModel,
			OllamaBaseURL:  cfg.Ai.OllamaBaseURL,
			GeminiAPIKey:   cfg.Keys.GoogleGemini,
			GeminiBaseURL:  cfg.Ai.GeminiBaseURL,
			HuggingFaceKey: cfg.Keys.HuggingFace,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize LLM provider: %w", err)
		}
		llmProvider = p
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	// Only Gemini serves a separate drafting model.
	draftModel := ""
	if cfg.Ai.LLMProvider == "gemini" {
		draftModel = cfg.Ai.DraftModel
	}

	// 4. Services
	publisherService := service.NewPublisherService(EventsTopic, pubSub, natsPub, sysLogger)

	representativeService := service.NewRepresentativeService(
		finder,
		uowFactory,
		guestStore,
		publisherService,
		sysLogger,
		cfg.Civic.GuestTTL,
	)
	navigationService := service.NewNavigationService()
	guestService := service.NewGuestService(guestStore, representativeService, sysLogger, cfg.Civic.GuestTTL)
	draftingService := service.NewDraftingService(
		memory.NewDraftSessionRepository(cfg.Civic.DraftIdleTTL),
		representativeService,
		uowFactory,
		llmProvider,
		sysLogger,
		service.DraftingOptions{
			DraftModel:        draftModel,
			MaxAttachmentSize: cfg.Civic.MaxAttachmentSize,
			WebformFallback:   cfg.Civic.WebformFallback,
			Timeout:           cfg.Ai.Timeout,
		},
	)

	addressService := service.NewAddressService(cfg.Keys.Geoapify)

	oauthService := service.NewOAuthService(uowFactory, cfg.Auth, publisherService, sysLogger)
	userService := service.NewUserService(uowFactory, representativeService, sysLogger)
	activityService := service.NewActivityService(uowFactory)
	contactService := service.NewContactService(emailService, sysLogger, cfg.Civic.DonationURL, cfg.Civic.SubscriptionURL)

	// 5. Activity feed
	wsHub := websocket.NewHub(rdb, feedLogger)
	feedHandler := handler.NewActivityFeedHandler(wsHub, cfg.Auth.JWTSecret, feedLogger)

	c.ConsumerService = service.NewConsumerService(pubSub, EventsTopic, activityService, wsHub, sysLogger)
	c.WebSocketHub = wsHub

	// 6. Controllers
	c.NavigationController = controller.NewNavigationController(navigationService)
	c.GuestController = controller.NewGuestController(guestService)
	c.RepresentativeController = controller.NewRepresentativeController(representativeService)
	c.DraftingController = controller.NewDraftingController(draftingService)
	c.AddressController = controller.NewAddressController(addressService)
	c.OAuthController = controller.NewOAuthController(oauthService, cfg.App.ClientURL, sysLogger)
	c.UserController = controller.NewUserController(userService)
	c.ActivityController = controller.NewActivityController(activityService, feedHandler.ServeWs)
	c.ContactController = controller.NewContactController(contactService)

	return c, nil
}

// Start runs the background workers until ctx is done.
func (c *Container) Start(ctx context.Context) {
	go c.WebSocketHub.Run(ctx)
	go func() {
		c.Logger.Info("BOOTSTRAP", "Starting consumer service", nil)
		if err := c.ConsumerService.Consume(ctx); err != nil {
			c.Logger.Error("BOOTSTRAP", "Consumer stopped", map[string]interface{}{"error": err.Error()})
		}
	}()
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func newRedisClient(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	return rdb
}
