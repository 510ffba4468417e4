package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dharmasatrya/farescout/internal/cache"
	"github.com/dharmasatrya/farescout/internal/connection"
	"github.com/dharmasatrya/farescout/internal/engine"
	"github.com/dharmasatrya/farescout/internal/handler"
	"github.com/dharmasatrya/farescout/internal/orchestrator"
	"github.com/dharmasatrya/farescout/internal/provider"
	"github.com/dharmasatrya/farescout/internal/ratelimit"
	"github.com/dharmasatrya/farescout/internal/report"
	"github.com/dharmasatrya/farescout/pkg/money"
)

type Config struct {
	Port          string
	ResultsDir    string
	Hubs          []string
	SavingsMargin int64
	CacheEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisTTL      time.Duration
}

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	searchProvider, err := provider.NewFixtureProvider()
	if err != nil {
		log.Fatalf("Failed to initialize search provider: %v", err)
	}

	var offerCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		offerCache = redisCache
		log.Printf("Redis cache enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	} else {
		offerCache = cache.NewNoOpCache()
		log.Println("Cache disabled")
	}

	orch := orchestrator.New(searchProvider, orchestrator.Config{
		MaxAttempts: 3,
		RetryDelay:  5 * time.Second,
		Timeout:     30 * time.Second,
		RateLimiter: ratelimit.NewRouteLimiterWithDefaults(),
		Cache:       offerCache,
	})

	evaluator := connection.New(orch, connection.Config{
		Hubs:          cfg.Hubs,
		SavingsMargin: money.Amount(cfg.SavingsMargin),
	})

	reporter := report.NewReporter(cfg.ResultsDir)
	eng := engine.New(orch, evaluator, reporter, engine.Config{})

	fareHandler := handler.NewFareHandler(eng)

	api := e.Group("/api/v1")
	api.POST("/flights/search", fareHandler.Search)
	api.POST("/fares/evaluate", fareHandler.Evaluate)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting fare evaluation server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	return Config{
		Port:          getEnv("PORT", "8080"),
		ResultsDir:    getEnv("RESULTS_DIR", "./results"),
		Hubs:          getEnvList("HUB_CANDIDATES", connection.DefaultHubs),
		SavingsMargin: getEnvInt("SAVINGS_MARGIN", int64(connection.DefaultSavingsMargin)),
		CacheEnabled:  getEnvBool("CACHE_ENABLED", false),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisTTL:      getEnvDuration("REDIS_TTL", 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if t := strings.ToUpper(strings.TrimSpace(part)); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
