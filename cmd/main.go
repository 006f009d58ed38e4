package main

import (
	"os"
	"os/signal"
	"syscall"

	configs "github.com/Payphone-Digital/catalog-api/config"
	"github.com/Payphone-Digital/catalog-api/internal/handler"
	"github.com/Payphone-Digital/catalog-api/internal/middleware"
	"github.com/Payphone-Digital/catalog-api/internal/repository"
	"github.com/Payphone-Digital/catalog-api/internal/router"
	"github.com/Payphone-Digital/catalog-api/internal/service"
	"github.com/Payphone-Digital/catalog-api/pkg/database"
	"github.com/Payphone-Digital/catalog-api/pkg/logger"
	"github.com/Payphone-Digital/catalog-api/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize Zap logger
	if err := logger.InitLogger(config.App.Environment); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
	)

	db, err := database.NewPostgresDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
		ConnMaxIdleTime: config.Database.ConnMaxIdleTime,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	// Run auto migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	// Index every column the listing endpoints accept as a sort key
	if err := database.EnsureSortIndexes(db, "products", service.ProductSortPolicy.Columns()); err != nil {
		logger.GetLogger().Warn("Failed to ensure product sort indexes", zap.Error(err))
	}
	if err := database.EnsureSortIndexes(db, "users", service.UserSortPolicy.Columns()); err != nil {
		logger.GetLogger().Warn("Failed to ensure user sort indexes", zap.Error(err))
	}

	// Seed initial data; ignore failures since data may already exist
	if err := database.Seed(db); err != nil {
		logger.GetLogger().Error("Failed to seed database", zap.Error(err))
	} else {
		logger.GetLogger().Info("Database seeded successfully")
	}

	// Repositories
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)

	redisClient := redis.NewClient(redis.Config{
		Host:         config.Redis.Host,
		Port:         config.Redis.Port,
		Password:     config.Redis.Password,
		DB:           config.Redis.Database,
		Enabled:      config.Redis.Enabled,
		PoolSize:     config.Redis.PoolSize,
		MinIdleConns: config.Redis.MinIdleConns,
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
	}, logger.GetLogger())
	defer redisClient.Close()

	logger.GetLogger().Info("Redis client initialized",
		zap.Bool("enabled", redisClient.IsEnabled()),
	)

	// Services
	cacheService := service.NewCacheService(redisClient, config.Redis.CacheTTL)
	jwtService := service.NewJWTService(config.JWT.Secret, config.JWT.ExpirationTime)
	productService := service.NewProductService(productRepo, cacheService)
	userService := service.NewUserService(userRepo, jwtService)

	// Handlers
	productHandler := handler.NewProductHandler(productService)
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(userService, jwtService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Middleware
	validationMiddleware := middleware.NewValidationMiddleware()
	jwtMiddleware := middleware.NewJWTMiddleware(jwtService)

	r := router.NewRouter(
		productHandler,
		userHandler,
		authHandler,
		healthHandler,

		validationMiddleware,
		jwtMiddleware,
		redisClient,
		config,
	).SetupRoutes()

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := r.Run(":" + config.App.Port); err != nil {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")
}
