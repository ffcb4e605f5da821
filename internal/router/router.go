package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dishtail/backend/config"
	"github.com/dishtail/backend/internal/api"
	"github.com/dishtail/backend/internal/metrics"
	"github.com/dishtail/backend/internal/middleware"
	"github.com/dishtail/backend/internal/service"
)

// Dependencies carries everything the routes are built from
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger
	Redis  *redis.Client

	AuthService service.IAuthService

	AuthHandler      *api.AuthHandler
	RecipeHandler    *api.RecipeHandler
	ContactHandler   *api.ContactHandler
	AnalyticsHandler *api.AnalyticsHandler
	HealthHandler    *api.HealthHandler
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.Metrics(),
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	router.GET("/health", deps.HealthHandler.HealthCheck)
	if cfg.Server.EnableMetrics {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// Function endpoints call the AI gateway or the mail provider and are
	// rate limited per client.
	functionChain := []gin.HandlerFunc{middleware.OptionalAuth(deps.AuthService)}
	if cfg.Auth.RequireForFunctions {
		functionChain = []gin.HandlerFunc{middleware.AuthMiddleware(deps.AuthService)}
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(deps.Redis, middleware.RateLimitConfig{
			Window:    cfg.RateLimit.Window,
			Limit:     cfg.RateLimit.RequestsPerWindow,
			KeyPrefix: cfg.RateLimit.KeyPrefix,
		}, deps.Logger)
		functionChain = append(functionChain, limiter.RateLimitMiddleware())
	}

	functions := router.Group("/functions/v1", functionChain...)
	{
		functions.POST("/search-recipes", deps.RecipeHandler.SearchRecipes)
		functions.POST("/analyze-nutrition", deps.RecipeHandler.AnalyzeNutrition)
		functions.POST("/send-contact-email", deps.ContactHandler.SendContactEmail)
	}

	v1 := router.Group("/api/v1")

	aliases := v1.Group("", functionChain...)
	{
		aliases.POST("/recipes/search", deps.RecipeHandler.SearchRecipes)
		aliases.POST("/recipes/nutrition", deps.RecipeHandler.AnalyzeNutrition)
		aliases.POST("/contact", deps.ContactHandler.SendContactEmail)
	}

	deps.AuthHandler.RegisterRoutes(v1)

	v1.POST("/analytics/events", middleware.OptionalAuth(deps.AuthService), deps.AnalyticsHandler.TrackEvent)

	protected := v1.Group("", middleware.AuthMiddleware(deps.AuthService))
	deps.RecipeHandler.RegisterRoutes(protected)

	admin := v1.Group("/admin", middleware.AuthMiddleware(deps.AuthService), middleware.RequireAdmin())
	deps.AnalyticsHandler.RegisterAdminRoutes(admin)
	deps.ContactHandler.RegisterRoutes(admin)

	return router
}
