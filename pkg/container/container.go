package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"stayhub-backend/internal/aiclient"
	"stayhub-backend/internal/config"
	"stayhub-backend/internal/infrastructure/cache"
	"stayhub-backend/internal/infrastructure/database"
	"stayhub-backend/internal/infrastructure/queue"
	"stayhub-backend/internal/infrastructure/search"
	"stayhub-backend/internal/infrastructure/storage"
	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/internal/shared/metrics"
	"stayhub-backend/pkg/jwt"

	accommodationHandler "stayhub-backend/internal/domains/accommodation/handler"
	accommodationRepo "stayhub-backend/internal/domains/accommodation/repository"
	accommodationService "stayhub-backend/internal/domains/accommodation/service"
	destinationHandler "stayhub-backend/internal/domains/destination/handler"
	destinationModel "stayhub-backend/internal/domains/destination/model"
	destinationService "stayhub-backend/internal/domains/destination/service"
	eventHandler "stayhub-backend/internal/domains/event/handler"
	eventRepo "stayhub-backend/internal/domains/event/repository"
	eventService "stayhub-backend/internal/domains/event/service"
	postHandler "stayhub-backend/internal/domains/post/handler"
	postModel "stayhub-backend/internal/domains/post/model"
	postService "stayhub-backend/internal/domains/post/service"
	reviewHandler "stayhub-backend/internal/domains/review/handler"
	reviewModel "stayhub-backend/internal/domains/review/model"
	reviewService "stayhub-backend/internal/domains/review/service"
	tagHandler "stayhub-backend/internal/domains/tag/handler"
	tagModel "stayhub-backend/internal/domains/tag/model"
	tagRepo "stayhub-backend/internal/domains/tag/repository"
	tagService "stayhub-backend/internal/domains/tag/service"
	userHandler "stayhub-backend/internal/domains/user/handler"
	userModel "stayhub-backend/internal/domains/user/model"
	userService "stayhub-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Initialization order
// matters: config, infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *cache.RedisClient
	RateLimiter *cache.RateLimiter
	Storage     *storage.MinIOStorage
	Search      *search.Client
	JWTManager  *jwt.Manager
	Metrics     *metrics.Registry
	AI          *aiclient.Client
	Queue       *queue.Client

	// Services
	UserService          *userService.Service
	DestinationService   *destinationService.Service
	AccommodationService *accommodationService.Service
	ReviewService        *reviewService.Service
	EventService         *eventService.Service
	PostService          *postService.Service
	TagService           *tagService.Service

	// Handlers
	UserHandler          *userHandler.Handler
	DestinationHandler   *destinationHandler.Handler
	AccommodationHandler *accommodationHandler.Handler
	ReviewHandler        *reviewHandler.Handler
	EventHandler         *eventHandler.Handler
	PostHandler          *postHandler.Handler
	TagHandler           *tagHandler.Handler
}

// NewContainer builds and initializes the whole dependency graph
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")
	c := &Container{}

	// Step 1: Configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// Step 2: Database
	db := database.NewPostgresDB(&cfg.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	// Step 3: Redis (optional; rate limiting degrades without it)
	redisClient := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(ctx); err != nil {
		log.Printf("⚠️  Redis unavailable, rate limiting disabled: %v", err)
		c.RateLimiter = cache.NewRateLimiter(nil)
	} else {
		log.Println("✅ Redis connected")
		c.Redis = redisClient
		c.RateLimiter = cache.NewRateLimiter(redisClient.Client)
	}

	// Step 4: Object storage
	store, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	c.Storage = store
	log.Println("✅ Object storage ready")

	// Step 5: Search (optional; nil client falls back to SQL ILIKE)
	c.Search = search.New(cfg.Meili.Host, cfg.Meili.MasterKey)
	if c.Search.Enabled() {
		log.Println("✅ Search index connected")
	} else {
		log.Println("ℹ️  Search index not configured, using SQL fallback")
	}

	// Step 6: Cross-cutting helpers
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	c.Metrics = metrics.NewRegistry()
	c.AI = aiclient.NewClient(cfg.AI)
	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	// Step 7: Repositories, services, handlers
	pool := db.Pool

	userCrudRepo := crud.NewRepository[userModel.User, *userModel.User](pool, userModel.Table)
	c.UserService = userService.NewService(userCrudRepo, c.JWTManager)
	c.UserHandler = userHandler.NewHandler(c.UserService)

	destCrudRepo := crud.NewRepository[destinationModel.Destination, *destinationModel.Destination](pool, destinationModel.Table)
	c.DestinationService = destinationService.NewService(destCrudRepo, c.Search)
	c.DestinationHandler = destinationHandler.NewHandler(c.DestinationService)

	accRepo := accommodationRepo.NewRepository(pool)
	c.AccommodationService = accommodationService.NewService(accRepo, c.Search, c.Queue)
	c.AccommodationHandler = accommodationHandler.NewHandler(c.AccommodationService)

	reviewCrudRepo := crud.NewRepository[reviewModel.Review, *reviewModel.Review](pool, reviewModel.Table)
	c.ReviewService = reviewService.NewService(reviewCrudRepo, c.AccommodationService, c.RateLimiter)
	c.ReviewHandler = reviewHandler.NewHandler(c.ReviewService)

	evRepo := eventRepo.NewRepository(pool)
	c.EventService = eventService.NewService(evRepo, c.Search)
	c.EventHandler = eventHandler.NewHandler(c.EventService)

	postCrudRepo := crud.NewRepository[postModel.Post, *postModel.Post](pool, postModel.Table)
	c.PostService = postService.NewService(postCrudRepo, c.Search)
	c.PostHandler = postHandler.NewHandler(c.PostService)

	tgRepo := tagRepo.NewRepository(pool)
	c.TagService = tagService.NewService(tgRepo, map[string]tagService.OwnerResolver{
		tagModel.EntityAccommodation: c.AccommodationService,
		tagModel.EntityDestination:   c.DestinationService,
		tagModel.EntityEvent:         c.EventService,
		tagModel.EntityPost:          c.PostService,
	})
	c.TagHandler = tagHandler.NewHandler(c.TagService)

	log.Println("✅ Container ready")
	return c, nil
}

// Close releases infrastructure connections in reverse order
func (c *Container) Close() {
	if c.Queue != nil {
		c.Queue.Close()
	}
	if c.Redis != nil {
		c.Redis.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Println("👋 Container closed")
}
