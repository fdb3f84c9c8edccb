package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/location-resolver/app/config"
	"github.com/location-resolver/app/controllers"
	"github.com/location-resolver/app/services"
	"github.com/location-resolver/internal/analyzer"
	"github.com/location-resolver/internal/gateway"
	"github.com/location-resolver/internal/normalizer"
	"github.com/location-resolver/internal/resolver"
	"github.com/location-resolver/internal/similarity"
	"github.com/location-resolver/routes"
)

func main() {
	// 1. Load configuration
	loadConfig()

	// 2. Initialize logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting Location Resolver Service")

	// 3. Load resolver thresholds if an override file exists
	if path := viper.GetString("resolver.config_path"); path != "" {
		if err := config.Load(path); err != nil && !os.IsNotExist(err) {
			logger.Fatal("Failed to load resolver config", zap.Error(err))
		}
	}

	// 4. Open the lookup store
	storePath := viper.GetString("store.path")
	store, err := gateway.Open(storePath, logger)
	if err != nil {
		logger.Fatal("Failed to open lookup store", zap.Error(err), zap.String("path", storePath))
	}
	defer store.Close()

	// 5. Build the resolution pipeline
	textNormalizer := normalizer.NewTextNormalizer()
	componentAnalyzer := analyzer.NewComponentAnalyzer()
	scorer := similarity.NewScorer()
	locationResolver := resolver.New(store, textNormalizer, componentAnalyzer, scorer, logger)

	// 6. Build cache services (in-process LRU, optionally layered over Redis)
	l1Size := viper.GetInt("cache.l1_size")
	l1TTL := viper.GetDuration("cache.l1_ttl")
	localCache, err := services.NewCacheService(l1Size, l1TTL)
	if err != nil {
		logger.Fatal("Failed to initialize local cache", zap.Error(err))
	}

	var cacheService services.ICacheService = localCache
	if redisURL := getEnv("REDIS_URL", viper.GetString("redis.url")); redisURL != "" {
		redisCache, err := services.NewRedisCacheService(redisURL, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis cache", zap.Error(err))
		}
		cacheService = services.NewHybridCacheService(localCache, redisCache, logger)
		logger.Info("Hybrid cache enabled", zap.String("redis_url", redisURL))
	}
	defer cacheService.Close()

	// 7. Build services
	resolutionService := services.NewResolutionService(
		locationResolver, store, textNormalizer, componentAnalyzer, scorer, cacheService, logger)

	// 8. Build controllers
	locationController := controllers.NewLocationController(resolutionService, logger)
	adminController := controllers.NewAdminController(cacheService, logger)

	// 9. Build the Gin router and routes
	if getEnv("APP_ENV", "development") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, locationController, adminController)

	// 10. Start the server
	port := getEnv("APP_PORT", viper.GetString("app.port"))
	logger.Info("Location Resolver Service starting", zap.String("port", port))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// loadConfig reads the yaml config file and environment overrides.
func loadConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("store.path", "data/locations.db")
	viper.SetDefault("redis.url", "")
	viper.SetDefault("cache.l1_size", 10000)
	viper.SetDefault("cache.l1_ttl", 24*time.Hour)
	viper.SetDefault("resolver.config_path", "")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Cannot read config file: %v", err)
	}
}

// initLogger builds the structured logger for the current environment.
func initLogger() *zap.Logger {
	env := getEnv("APP_ENV", "development")

	var logger *zap.Logger
	var err error
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Cannot initialize logger: %v", err)
	}
	return logger
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
