package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "esatalim/docs"
	"esatalim/internal/caching"
	"esatalim/internal/config"
	"esatalim/internal/handlers"
	"esatalim/internal/jobs"
	"esatalim/internal/middleware"
	"esatalim/internal/repositories"
	"esatalim/internal/services"
	"esatalim/pkg/database"
	"esatalim/pkg/logger"
)

const (
	version         = "1.0.0"
	bodyLimit       = "60M"
	shutdownTimeout = 15 * time.Second
)

// @title                       esatalim API
// @version                     1.0.0
// @description                 Second-hand marketplace: listings, categories, users and favorites.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.IsProduction())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Auth.JWTSecret == "" {
		if cfg.IsProduction() {
			return errors.New("JWT_SECRET environment variable is required in production")
		}
		cfg.Auth.JWTSecret = "dev-secret-change-me"
		log.Warn("JWT_SECRET not set, using the development secret")
	}

	// Database
	pool, err := database.NewPool(ctx, cfg.Database.URL, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.ApplySchema(ctx, pool); err != nil {
			return err
		}
		log.Info("Database schema applied")
	}

	// Redis
	redisClient := caching.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
	defer redisClient.Close()
	cacheSvc := caching.NewRedisCacheService(redisClient)

	// MinIO
	imageStore, err := services.NewMinioImageStore(cfg.Storage.Endpoint, cfg.Storage.AccessKey,
		cfg.Storage.SecretKey, cfg.Storage.UseSSL, cfg.Storage.Bucket, cfg.Storage.ImageBaseURL())
	if err != nil {
		return fmt.Errorf("failed to initialize MinIO: %w", err)
	}
	if err := imageStore.EnsureBucket(ctx); err != nil {
		// Image uploads fail until storage is reachable; browsing still works
		log.Warn("Image bucket not available", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
	}

	// Repositories
	listingRepo := repositories.NewListingRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	favoriteRepo := repositories.NewFavoriteRepo(pool)

	// Services
	authSvc := services.NewAuthService(userRepo, cacheSvc, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	listingSvc := services.NewListingService(listingRepo, categoryRepo, imageStore, cfg.Server.QueryTimeout, log)
	categorySvc := services.NewCategoryService(categoryRepo, cacheSvc, log)
	userSvc := services.NewUserService(userRepo, listingRepo, favoriteRepo, log)

	// Background jobs
	scheduler, err := jobs.NewScheduler(categorySvc, jobs.CategoryWarmInterval, log)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Warn("Failed to stop scheduler", zap.Error(err))
		}
	}()

	e := newServer(cfg, log, routeHandlers{
		auth:     handlers.NewAuthHandlers(authSvc),
		listings: handlers.NewListingHandlers(listingSvc),
		category: handlers.NewCategoryHandlers(categorySvc),
		users:    handlers.NewUserHandlers(userSvc),
		health:   handlers.NewHealthHandlers(pool, cacheSvc, version, log),
	}, authSvc)

	errCh := make(chan error, 1)
	go func() {
		log.Info("esatalim server starting",
			zap.String("version", version),
			zap.Int("port", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment))
		if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

type routeHandlers struct {
	auth     *handlers.AuthHandlers
	listings *handlers.ListingHandlers
	category *handlers.CategoryHandlers
	users    *handlers.UserHandlers
	health   *handlers.HealthHandlers
}

func newServer(cfg *config.Config, log *zap.Logger, h routeHandlers, tokens middleware.TokenValidator) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(log)

	// Global middleware
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
	}))
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.BodyLimit(bodyLimit))
	e.Use(echoMiddleware.ContextTimeoutWithConfig(echoMiddleware.ContextTimeoutConfig{
		Timeout: cfg.Server.RequestTimeout,
	}))

	versionMiddleware := middleware.NewVersionMiddleware(version)
	e.Use(versionMiddleware.VersionHeader())

	// Health endpoints (no auth required)
	e.GET("/health", h.health.LivenessCheck)
	e.GET("/health/ready", h.health.ReadinessCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireAuth := middleware.JWTMiddleware(tokens)
	requireAdmin := middleware.RequireAdmin()

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", h.auth.Register)
	auth.POST("/login", h.auth.Login)
	auth.GET("/me", h.auth.Me, requireAuth)

	products := api.Group("/products")
	products.GET("", h.listings.ListProducts)
	products.GET("/user/:userId", h.listings.ListSellerProducts)
	products.GET("/:id", h.listings.GetProduct)
	products.POST("", h.listings.CreateProduct, requireAuth)
	products.PUT("/:id", h.listings.UpdateProduct, requireAuth)
	products.PATCH("/:id/featured", h.listings.SetFeatured, requireAuth, requireAdmin)
	products.DELETE("/:id", h.listings.DeleteProduct, requireAuth)

	categories := api.Group("/categories")
	categories.GET("", h.category.ListCategories)
	categories.GET("/:id", h.category.GetCategory)
	categories.POST("", h.category.CreateCategory, requireAuth, requireAdmin)
	categories.PUT("/:id", h.category.UpdateCategory, requireAuth, requireAdmin)
	categories.DELETE("/:id", h.category.DeleteCategory, requireAuth, requireAdmin)

	users := api.Group("/users")
	users.GET("/:id", h.users.GetUser)
	users.PUT("/:id", h.users.UpdateUser, requireAuth)
	users.GET("/:id/favorites", h.users.GetFavorites)
	users.POST("/:id/favorites", h.users.AddFavorite, requireAuth)
	users.DELETE("/:id/favorites/:productId", h.users.RemoveFavorite, requireAuth)

	admin := api.Group("/admin", requireAuth, requireAdmin)
	admin.GET("/users", h.users.ListUsers)
	admin.GET("/categories", h.category.ListAllCategories)

	return e
}
