package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"compliance-backend/internal/config"
	infraCache "compliance-backend/internal/infrastructure/cache"
	"compliance-backend/internal/infrastructure/database"
	"compliance-backend/internal/infrastructure/queue"
	"compliance-backend/internal/infrastructure/storage"
	"compliance-backend/pkg/cache"
	pkgdb "compliance-backend/pkg/database"
	"compliance-backend/pkg/jwt"

	contentHandler "compliance-backend/internal/domains/content/handler"
	contentJob "compliance-backend/internal/domains/content/job"
	contentRepo "compliance-backend/internal/domains/content/repository"
	contentService "compliance-backend/internal/domains/content/service"

	guidelineHandler "compliance-backend/internal/domains/guideline/handler"
	guidelineRepo "compliance-backend/internal/domains/guideline/repository"
	guidelineService "compliance-backend/internal/domains/guideline/service"

	reviewHandler "compliance-backend/internal/domains/review/handler"
	reviewRepo "compliance-backend/internal/domains/review/repository"
	reviewService "compliance-backend/internal/domains/review/service"

	userRepo "compliance-backend/internal/domains/user/repository"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph.
// Every component is a singleton for the process lifetime.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisCache
	Cache       cache.Cache
	Storage     *storage.MinIOStorage
	QueueClient *asynq.Client
	Transactor  pkgdb.Transactor
	JWTManager  *jwt.Manager

	// Repositories
	UserRepo      userRepo.UserRepository
	GuidelineRepo guidelineRepo.GuidelineRepository
	ContentRepo   contentRepo.ContentRepository
	ReviewRepo    reviewRepo.ReviewRepository

	// Services
	GuidelineService guidelineService.ServiceInterface
	ContentService   contentService.ServiceInterface
	ReviewService    reviewService.ServiceInterface

	// Handlers
	GuidelineHandler *guidelineHandler.GuidelineHandler
	ContentHandler   *contentHandler.ContentHandler
	ReviewHandler    *reviewHandler.ReviewHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the graph in dependency order:
// config -> infrastructure -> repositories -> services -> handlers
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container...")

	c := &Container{}

	// STEP 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// STEP 2: infrastructure
	if err := c.initInfrastructure(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// STEP 3..5: domain layers
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

func (c *Container) initInfrastructure() error {
	cfg := c.Config

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	c.Transactor = pkgdb.NewTransactor(db.Pool)
	log.Info().Msg("Database connected")

	// Redis backs the read cache; losing it only costs cache hits
	c.Redis = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
	} else {
		log.Info().Msg("Redis connected")
	}
	c.Cache = c.Redis

	store, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = store
	log.Info().Str("bucket", cfg.MinIO.Bucket).Msg("Object storage ready")

	c.QueueClient = queue.NewClient(cfg.Redis)
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresUserRepository(pool, c.Cache)
	c.GuidelineRepo = guidelineRepo.NewPostgresGuidelineRepository(pool, c.Cache)
	c.ContentRepo = contentRepo.NewPostgresContentRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(pool)
}

func (c *Container) initServices() {
	c.GuidelineService = guidelineService.NewGuidelineService(c.GuidelineRepo)

	c.ContentService = contentService.NewContentService(
		c.ContentRepo,
		c.ReviewRepo,
		c.UserRepo,
		c.Storage,
		contentJob.NewAsynqBlobCleaner(c.QueueClient, c.Config.Queue.Name, c.Config.Queue.MaxRetry),
		c.Transactor,
		c.Config.Upload,
	)

	c.ReviewService = reviewService.NewReviewService(
		c.ReviewRepo,
		c.ContentRepo,
		c.UserRepo,
		c.Transactor,
	)
}

func (c *Container) initHandlers() {
	c.GuidelineHandler = guidelineHandler.NewGuidelineHandler(c.GuidelineService)
	c.ContentHandler = contentHandler.NewContentHandler(c.ContentService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
}

// Cleanup releases connections; safe on a partially built container
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources...")

	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close queue client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("Container cleanup completed")
}
