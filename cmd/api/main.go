package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dishtail/backend/config"
	"github.com/dishtail/backend/internal/api"
	"github.com/dishtail/backend/internal/database"
	"github.com/dishtail/backend/internal/logger"
	"github.com/dishtail/backend/internal/router"
	"github.com/dishtail/backend/internal/server"
	"github.com/dishtail/backend/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.Environment().IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("Server error", zap.Error(err))
	}
	zapLogger.Info("Server stopped")
}

func run(cfg *config.Config, zapLogger *zap.Logger) error {
	if cfg.Environment().IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg, zapLogger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.Database.MigrationsDir, zapLogger); err != nil {
		return err
	}

	// Redis backs the search cache and the rate limiter; both degrade
	// gracefully without it.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = database.NewRedisClient(cfg.Redis, zapLogger)
		if err != nil {
			zapLogger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var searchCache service.SearchCache
	if redisClient != nil && cfg.Cache.Enabled {
		searchCache = service.NewRedisSearchCache(redisClient)
	}

	var store service.ObjectStore
	if cfg.Storage.AnalyticsBucket != "" {
		s3Config, err := config.NewS3Config(context.Background(), cfg.Storage)
		if err != nil {
			return err
		}
		store = s3Config
	} else {
		zapLogger.Info("Analytics export disabled, no bucket configured")
	}

	llmService := service.NewLLMService(cfg.AI, zapLogger)
	searchService := service.NewRecipeSearchService(llmService, searchCache, service.SearchOptions{
		MaxServingSize: cfg.Search.MaxServingSize,
		CacheTTL:       cfg.Cache.SearchTTL,
	}, zapLogger)
	nutritionService := service.NewNutritionService(llmService, cfg.Search.MaxServingSize, zapLogger)
	savedService := service.NewSavedRecipeService(db, cfg.Search.MaxServingSize, zapLogger)
	analyticsService := service.NewAnalyticsService(db, store, cfg.Storage.PresignTTL, zapLogger)
	contactService := service.NewContactService(db, service.NewEmailSender(cfg.Email, zapLogger), cfg.Email.From, cfg.Email.AdminEmail, zapLogger)
	authService := service.NewAuthService(db, service.AuthOptions{
		JWTSecret:   cfg.Auth.JWTSecret,
		Expiration:  cfg.Auth.JWTExpiration,
		BCryptCost:  cfg.Auth.BCryptCost,
		AdminEmails: cfg.Auth.AdminEmails,
	}, zapLogger)

	handler := router.SetupRouter(router.Dependencies{
		Config:           cfg,
		Logger:           zapLogger,
		Redis:            redisClient,
		AuthService:      authService,
		AuthHandler:      api.NewAuthHandler(authService, zapLogger),
		RecipeHandler:    api.NewRecipeHandler(searchService, nutritionService, savedService, analyticsService, zapLogger),
		ContactHandler:   api.NewContactHandler(contactService, zapLogger),
		AnalyticsHandler: api.NewAnalyticsHandler(analyticsService, zapLogger),
		HealthHandler:    api.NewHealthHandler(db, redisClient),
	})

	srv := server.New(cfg, handler, zapLogger)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		zapLogger.Info("Received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
