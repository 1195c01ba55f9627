package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-journal-be/internal/config"
	"ai-journal-be/internal/controller"
	"ai-journal-be/internal/pkg/logger"
	"ai-journal-be/internal/pkg/serverutils"
	"ai-journal-be/internal/repository/unitofwork"
	"ai-journal-be/internal/service"
	"ai-journal-be/pkg/ai"

	pktNats "ai-journal-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ThoughtController controller.IThoughtController
	TagController     controller.ITagController
	UserController    controller.IUserController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis (best-effort status cache)
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// 3. Services
	aiClient := ai.NewClient(cfg.Ai.BaseURL, cfg.Ai.APIKey)

	publisherService := service.NewPublisherService(cfg.Jobs.TopicName, pubSub)
	jobService := service.NewJobService(uowFactory)

	analyzerService := service.NewAnalyzerService(
		uowFactory,
		jobService,
		aiClient,
		cfg.Ai.TaggingModel,
		cfg.Ai.MoodModel,
		cfg.Jobs.RecentTagLimit,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Jobs.TopicName,
		analyzerService,
		time.Duration(cfg.Jobs.RetryDelaySeconds)*time.Second,
	)

	thoughtService := service.NewThoughtService(
		uowFactory,
		jobService,
		publisherService,
		natsPub,
		rdb,
	)
	tagService := service.NewTagService(uowFactory)
	userService := service.NewUserService(uowFactory)

	// 3.5 Activity trail (worker)
	if natsSub != nil {
		activityService := service.NewActivityService(natsSub, sysLogger)
		go func() {
			if err := activityService.Start(); err != nil {
				log.Printf("[WARN] Activity consumer failed to start: %v", err)
			}
		}()
	}

	// 4. HTTP middleware
	verifier := serverutils.NewAuthVerifier(
		cfg.Auth.JWTSecret,
		cfg.Auth.JWKSURL,
		time.Duration(cfg.Auth.KeyCacheTTLSeconds)*time.Second,
	)
	authMw := verifier.Middleware()
	touchMw := controller.TouchMiddleware(userService)

	return &Container{
		ThoughtController: controller.NewThoughtController(thoughtService, authMw, touchMw),
		TagController:     controller.NewTagController(tagService, authMw, touchMw),
		UserController:    controller.NewUserController(userService, authMw, touchMw),

		ConsumerService: consumerService,

		Logger: sysLogger,
	}
}
