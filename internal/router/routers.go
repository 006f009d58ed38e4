package router

import (
	"github.com/Payphone-Digital/catalog-api/config"
	"github.com/Payphone-Digital/catalog-api/internal/handler"
	"github.com/Payphone-Digital/catalog-api/internal/middleware"
	"github.com/Payphone-Digital/catalog-api/pkg/redis"
	"github.com/gin-gonic/gin"
)

type Router struct {
	productHandler *handler.ProductHandler
	userHandler    *handler.UserHandler
	authHandler    *handler.AuthHandler
	healthHandler  *handler.HealthHandler

	validMw *middleware.ValidationMiddleware
	jwtMw   *middleware.JWTMiddleware
	cache   redis.Client
	cfg     *config.Config
}

func NewRouter(
	product *handler.ProductHandler,
	user *handler.UserHandler,
	auth *handler.AuthHandler,
	health *handler.HealthHandler,

	validMw *middleware.ValidationMiddleware,
	jwtMw *middleware.JWTMiddleware,
	cache redis.Client,
	cfg *config.Config,
) *Router {
	return &Router{
		productHandler: product,
		userHandler:    user,
		authHandler:    auth,
		healthHandler:  health,

		validMw: validMw,
		jwtMw:   jwtMw,
		cache:   cache,
		cfg:     cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if r.cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.ContextMiddleware("catalog-api"))
	router.Use(middleware.CORS())

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.Liveness)
		api.GET("/health/ready", r.healthHandler.Readiness)

		v1 := api.Group("/v1")
		{
			v1.Use(middleware.RateLimit(r.cache, r.cfg.RateLimit.Request, r.cfg.RateLimit.Duration))

			r.authRoutes(v1)
			r.productRoutes(v1)
			r.userRoutes(v1)
		}
	}

	return router
}
