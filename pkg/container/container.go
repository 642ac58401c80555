package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"roll-backend/internal/config"
	infraCache "roll-backend/internal/infrastructure/cache"
	"roll-backend/internal/infrastructure/database"
	"roll-backend/pkg/cache"
	pkgdb "roll-backend/pkg/database"

	categoryHandler "roll-backend/internal/domains/category/handler"
	categoryRepo "roll-backend/internal/domains/category/repository"
	categoryService "roll-backend/internal/domains/category/service"

	commentHandler "roll-backend/internal/domains/comment/handler"
	commentRepo "roll-backend/internal/domains/comment/repository"
	commentService "roll-backend/internal/domains/comment/service"

	placeHandler "roll-backend/internal/domains/place/handler"
	placeRepo "roll-backend/internal/domains/place/repository"
	placeService "roll-backend/internal/domains/place/service"

	userHandler "roll-backend/internal/domains/user/handler"
	userRepo "roll-backend/internal/domains/user/repository"
	userService "roll-backend/internal/domains/user/service"
)

// Container holds every dependency of the API process.
// Build order: config -> infrastructure -> repositories -> services -> handlers.
type Container struct {
	// ========================================
	// INFRASTRUCTURE
	// ========================================
	Config    *config.Config
	DB        *database.PostgresDB
	Cache     cache.Cache
	TxManager pkgdb.TxManager

	// ========================================
	// REPOSITORIES
	// ========================================
	CategoryRepo      categoryRepo.CategoryRepository
	UserRepo          userRepo.UserRepository
	PlaceRepo         placeRepo.PlaceRepository
	InfoPrivPlaceRepo placeRepo.InfoPrivPlaceRepository
	CommentRepo       commentRepo.CommentRepository

	// ========================================
	// SERVICES
	// ========================================
	CategoryService categoryService.ServiceInterface
	PlaceService    placeService.ServiceInterface
	UserService     userService.ServiceInterface
	CommentService  commentService.ServiceInterface

	// ========================================
	// HANDLERS
	// ========================================
	CategoryHandler *categoryHandler.CategoryHandler
	PlaceHandler    *placeHandler.PlaceHandler
	UserHandler     *userHandler.UserHandler
	CommentHandler  *commentHandler.CommentHandler
}

// NewContainer builds the container. Any infrastructure error aborts startup,
// except Redis which falls back to a no-op cache.
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIG
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.Name).Msg("connecting to database")

	db := database.NewPostgresDB(cfg.DBConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	c.DB = db
	c.TxManager = pkgdb.NewTxManager(db.Pool)
	log.Info().Msg("database connected")

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	c.Cache = c.initCache()

	// ========================================
	// STEP 4: REPOSITORIES
	// ========================================
	c.initRepositories()

	// ========================================
	// STEP 5: SERVICES
	// ========================================
	c.initServices()

	// ========================================
	// STEP 6: HANDLERS
	// ========================================
	c.initHandlers()

	log.Info().Msg("container initialized")
	return c, nil
}

// initCache connects Redis. Failure is not fatal: reads simply go to Postgres.
func (c *Container) initCache() cache.Cache {
	if !c.Config.Cache.Enabled {
		log.Info().Msg("cache disabled")
		return cache.NewNoopCache()
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(context.Background()); err != nil {
		log.Warn().Err(err).Str("addr", c.Config.Redis.Host).Msg("redis unavailable, running without cache")
		_ = rc.Close()
		return cache.NewNoopCache()
	}

	log.Info().Str("addr", c.Config.Redis.Host).Msg("redis connected")
	return rc
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool, c.Cache, c.Config.Cache.TTL)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.PlaceRepo = placeRepo.NewPostgresPlaceRepository(pool)
	c.InfoPrivPlaceRepo = placeRepo.NewPostgresInfoPrivPlaceRepository(pool)
	c.CommentRepo = commentRepo.NewPostgresRepository(pool)
}

// initServices wires the services. Place comes before user: the user cascade
// deletes owned places through the place service.
func (c *Container) initServices() {
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo)

	c.PlaceService = placeService.NewPlaceService(
		c.TxManager,
		c.PlaceRepo,
		c.InfoPrivPlaceRepo,
		c.CategoryRepo,
		c.UserRepo,
		c.CommentRepo,
		c.Cache,
		c.Config.Cache.TTL,
	)

	c.UserService = userService.NewUserService(
		c.TxManager,
		c.UserRepo,
		c.InfoPrivPlaceRepo,
		c.CommentRepo,
		c.PlaceService,
	)

	c.CommentService = commentService.NewCommentService(
		c.CommentRepo,
		c.UserRepo,
		c.PlaceRepo,
	)
}

func (c *Container) initHandlers() {
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.PlaceHandler = placeHandler.NewPlaceHandler(c.PlaceService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
}

// Cleanup releases connections. Called on graceful shutdown.
func (c *Container) Cleanup() {
	log.Info().Msg("cleaning up container resources")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close database")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}
}
