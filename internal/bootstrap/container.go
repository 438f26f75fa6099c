package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"skill-exchange-ai/internal/config"
	"skill-exchange-ai/internal/constant"
	"skill-exchange-ai/internal/controller"
	"skill-exchange-ai/internal/handler"
	"skill-exchange-ai/internal/metrics"
	"skill-exchange-ai/internal/model"
	"skill-exchange-ai/internal/pkg/logger"
	"skill-exchange-ai/internal/repository/memory"
	"skill-exchange-ai/internal/repository/unitofwork"
	"skill-exchange-ai/internal/service"
	"skill-exchange-ai/internal/websocket"
	"skill-exchange-ai/pkg/catalog"
	"skill-exchange-ai/pkg/classifier"
	"skill-exchange-ai/pkg/database"
	"skill-exchange-ai/pkg/embedding"
	"skill-exchange-ai/pkg/embedding/jina"
	"skill-exchange-ai/pkg/events"
	pktNats "skill-exchange-ai/pkg/nats"
	"skill-exchange-ai/pkg/recommend"
	"skill-exchange-ai/pkg/sentiment"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

const catalogRetryInterval = 30 * time.Second

type Container struct {
	// Controllers
	RecommendationController controller.IRecommendationController
	ClassificationController controller.IClassificationController
	SentimentController      controller.ISentimentController
	HealthController         controller.IHealthController
	ChatbotController        controller.IChatbotController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	CatalogService  service.ICatalogService

	// WebSockets
	SocketHandler *handler.SocketHandler
	WebSocketHub  *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())

	uowFactory, err := newRepositoryFactory(cfg)
	if err != nil {
		return nil, err
	}

	rows, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	c := &Container{Logger: sysLogger}
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Embedding
	embedder, modelName := newEmbedder(cfg)

	// 4. Infrastructure
	// NATS
	var eventBus events.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventBus = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// Redis
	rdb := newRedisClient(cfg.App.RedisURL)
	if rdb != nil {
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.SocketLogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)

	// 5. Services
	catalogs := catalog.NewHolder()
	catalogOpts := service.CatalogOptions{Dimension: cfg.Ai.EmbeddingDimension}
	if cfg.Ai.CacheCourseEmbedding {
		catalogOpts.Model = modelName
	}
	catalogService := service.NewCatalogService(rows, embedder, uowFactory, catalogs, sysLogger, catalogOpts)

	healthService := service.NewHealthService(uowFactory, catalogs)
	eventPublisher := service.NewEventPublisher(eventBus, sysLogger)

	classificationService := service.NewClassificationService(
		uowFactory,
		catalogs,
		classifier.New(embedder, classifier.Options{Threshold: cfg.Recommend.MinSimilarity}),
		sysLogger,
		service.ClassificationOptions{
			TTL:                cfg.Recommend.ClassificationTTL,
			UserFallbackCorpus: cfg.Recommend.UserFallbackCorpus,
		},
	)
	recommendationService := service.NewRecommendationService(
		uowFactory,
		healthService,
		classificationService,
		recommend.NewRanker(embedder, recommend.Options{
			Limit:             cfg.Recommend.Limit,
			DefaultSimilarity: cfg.Recommend.DefaultSimilarity,
		}),
		eventPublisher,
		sysLogger,
	)

	sentimentService := service.NewSentimentService(uowFactory, sysLogger, sentimentOptions(cfg)...)

	publisherService := service.NewPublisherService(constant.TopicMessageStored, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		constant.TopicMessageStored,
		uowFactory,
		sysLogger,
	)
	messageService := service.NewMessageService(uowFactory, sentimentService, publisherService, eventPublisher, wsLogger)

	// Handler
	c.SocketHandler = handler.NewSocketHandler(messageService, wsHub, wsLogger)
	c.WebSocketHub = wsHub

	// 6. Controllers
	c.RecommendationController = controller.NewRecommendationController(recommendationService)
	c.ClassificationController = controller.NewClassificationController(classificationService)
	c.SentimentController = controller.NewSentimentController(sentimentService)
	c.HealthController = controller.NewHealthController(healthService)
	c.ChatbotController = controller.NewChatbotController(service.NewChatbotService())

	c.ConsumerService = consumerService
	c.CatalogService = catalogService

	return c, nil
}

// Start runs the background workers until ctx is done.
func (c *Container) Start(ctx context.Context) error {
	if err := c.ConsumerService.Consume(ctx); err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}
	go c.WebSocketHub.Run(ctx)
	c.CatalogService.LoadInBackground(ctx, catalogRetryInterval)
	return nil
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func newRepositoryFactory(cfg *config.Config) (unitofwork.RepositoryFactory, error) {
	if cfg.Database.Driver == "memory" {
		log.Printf("[INFO] Using in-memory store")
		return unitofwork.NewMemoryRepositoryFactory(memory.NewStore()), nil
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.App.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(db, model.All()...); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return unitofwork.NewRepositoryFactory(db), nil
}

// newEmbedder wraps the configured provider with a circuit breaker and metrics.
// The returned name identifies the model in course embedding cache keys.
func newEmbedder(cfg *config.Config) (*embedding.Embedder, string) {
	var provider embedding.EmbeddingProvider
	var modelName string
	switch cfg.Ai.EmbeddingProvider {
	case "jina":
		provider = jina.NewJinaProvider(cfg.Keys.Jina)
		modelName = "jina"
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	case "gemini":
		provider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		modelName = "gemini"
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	default:
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
		modelName = "ollama:" + cfg.Ai.OllamaModel
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	}

	providerName := cfg.Ai.EmbeddingProvider
	embedder := embedding.NewEmbedder(provider, "embedding-"+providerName,
		embedding.WithBreaker(uint32(cfg.Ai.BreakerMaxFailures), cfg.Ai.BreakerOpenTimeout),
		embedding.WithCallObserver(func(outcome string, elapsed time.Duration) {
			metrics.RecordEmbedding(providerName, outcome, elapsed)
		}),
		embedding.WithStateObserver(metrics.RecordBreakerTransition),
	)
	return embedder, modelName
}

func newRedisClient(url string) *redis.Client {
	if url == "" {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: url,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Socket rooms stay local", err)
		rdb.Close()
		return nil
	}
	return rdb
}

func sentimentOptions(cfg *config.Config) []sentiment.Option {
	if cfg.Catalog.EmojiPath == "" {
		return nil
	}
	emojis, err := sentiment.LoadEmojiFile(cfg.Catalog.EmojiPath)
	if err != nil {
		log.Printf("[WARN] Failed to load emoji file: %v. Using default emojis", err)
		return nil
	}
	return []sentiment.Option{sentiment.WithEmojis(emojis)}
}
